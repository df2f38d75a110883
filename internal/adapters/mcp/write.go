package mcp

import (
	"context"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"vibary/internal/application/commands"
	"vibary/internal/ports"
)

// RegisterWriteTools adds the tools that write files.
func RegisterWriteTools(s *server.MCPServer, exporter ports.ArtifactExporter) {
	s.AddTool(exportTool(), exportHandler(exporter))
}

// --- export_html ---

func exportTool() mcp.Tool {
	return mcp.NewTool("export_html",
		mcp.WithDescription("Freeze a document into one self-contained HTML page and return the written path."),
		withDocumentArgs(),
		mcp.WithString("output_dir",
			mcp.Description("Directory to write into. Defaults to the current directory."),
		),
	)
}

func exportHandler(exporter ports.ArtifactExporter) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		doc, err := loadDocument(ctx, req)
		if err != nil {
			return toolError(err)
		}

		dir := req.GetString("output_dir", "")
		if dir == "" {
			if dir, err = os.Getwd(); err != nil {
				return toolError(err)
			}
		}

		result, err := commands.NewExportCommand(exporter, doc, dir).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
