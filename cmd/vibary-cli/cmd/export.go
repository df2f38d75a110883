package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"vibary/internal/adapters/browser"
	"vibary/internal/adapters/htmlexport"
	"vibary/internal/application/commands"
)

var (
	exportDir  string
	exportOpen bool
)

var exportCmd = &cobra.Command{
	Use:   "export <document.json>",
	Short: "Export a journey as a standalone HTML page",
	Long: `Freeze a document into one self-contained HTML file that scrolls and
reveals its scenes without vibary.

Examples:
  vibary-cli export dune.json
  vibary-cli export dune.json --dir ~/exports --open`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		doc, err := loadDocument(ctx, args[0])
		if err != nil {
			return err
		}

		dir := exportDir
		if dir == "" {
			if dir, err = cfg.ExportPath(); err != nil {
				return err
			}
		}

		exporter, err := htmlexport.New(log)
		if err != nil {
			return err
		}
		result, err := commands.NewExportCommand(exporter, doc, dir).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Println(result.Message)

		if exportOpen {
			return browser.NewOpener().Open(result.Path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportDir, "dir", "d", "", "output directory (defaults to the configured export dir)")
	exportCmd.Flags().BoolVar(&exportOpen, "open", false, "open the exported page in the browser")
}
