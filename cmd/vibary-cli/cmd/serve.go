package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vibary/internal/adapters/htmlexport"
	"vibary/internal/adapters/httpserver"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve <document.json>",
	Short: "Preview a journey over HTTP",
	Long: `Serve a document locally: the exported page at /, the document at
/api/document and rendered scenes under /api/scenes.

Examples:
  vibary-cli serve dune.json
  vibary-cli serve dune.json --addr 127.0.0.1:9000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		doc, err := loadDocument(ctx, args[0])
		if err != nil {
			return err
		}
		exporter, err := htmlexport.New(log)
		if err != nil {
			return err
		}

		addr := serveAddr
		if addr == "" {
			addr = cfg.HTTPAddr
		}
		log.Info("Serving journey", zap.String("title", doc.Meta.Title), zap.String("addr", "http://"+addr))
		return httpserver.New(doc, exporter, log).ListenAndServe(ctx, addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (defaults to the configured http_addr)")
}
