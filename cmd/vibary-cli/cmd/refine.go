package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"vibary/internal/application/lifecycle"
)

var refineInPlace bool

var refineCmd = &cobra.Command{
	Use:   "refine <document.json> <instruction>",
	Short: "Rewrite a journey following an instruction",
	Long: `Send a document and a free text instruction to the content service and
receive a full replacement. A failed refinement leaves the input untouched.

Examples:
  vibary-cli refine dune.json "Make it darker" -o dune-dark.json
  vibary-cli refine dune.json "Focus on the betrayal" --in-place`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		doc, err := loadDocument(ctx, args[0])
		if err != nil {
			return err
		}
		if refineInPlace {
			outputPath = args[0]
		}

		refined, err := drive(ctx, doc, lifecycle.SubmitEdit{Instruction: strings.Join(args[1:], " ")})
		if err != nil {
			return err
		}
		return writeDocument(ctx, refined)
	},
}

func init() {
	rootCmd.AddCommand(refineCmd)
	refineCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the document to this file instead of stdout")
	refineCmd.Flags().BoolVar(&refineInPlace, "in-place", false, "overwrite the input document")
}
