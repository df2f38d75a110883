package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"vibary/internal/application/lifecycle"
)

var titleCmd = &cobra.Command{
	Use:   "title <name>",
	Short: "Direct a journey from a well known title",
	Long: `Ask the content service whether it knows a book well enough to direct
it without a file. Unknown titles fail with a request for the file.

Examples:
  vibary-cli title "The Great Gatsby" -o gatsby.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		doc, err := drive(ctx, nil, lifecycle.SubmitTitle{Title: strings.Join(args, " ")})
		if err != nil {
			return err
		}
		return writeDocument(ctx, doc)
	},
}

func init() {
	rootCmd.AddCommand(titleCmd)
	titleCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the document to this file instead of stdout")
}
