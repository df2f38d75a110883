package cmd

import (
	"github.com/spf13/cobra"

	"vibary/internal/application/lifecycle"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Direct a journey from a book file",
	Long: `Extract the text of a book (PDF, FB2 or plain text) and ask the content
service for a journey.

Examples:
  vibary-cli analyze dune.pdf -o dune.json
  vibary-cli analyze notes.txt > notes.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		doc, err := drive(ctx, nil, lifecycle.SubmitFile{Path: args[0]})
		if err != nil {
			return err
		}
		return writeDocument(ctx, doc)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the document to this file instead of stdout")
}
