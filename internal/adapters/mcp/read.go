package mcp

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"vibary/internal/adapters/raster"
	"vibary/internal/adapters/svg"
	"vibary/internal/application/commands"
	"vibary/internal/domain"
	"vibary/internal/render"
)

// RegisterReadTools adds the rendering tools, which never touch the filesystem
// except to read a document.
func RegisterReadTools(s *server.MCPServer) {
	s.AddTool(layoutsTool(), layoutsHandler())
	s.AddTool(resolveLayoutTool(), resolveLayoutHandler())
	s.AddTool(parseEmphasisTool(), parseEmphasisHandler())
	s.AddTool(renderSceneTool(), renderSceneHandler())
	s.AddTool(entitySVGTool(), entitySVGHandler())
}

// --- layouts ---

func layoutsTool() mcp.Tool {
	return mcp.NewTool("layouts",
		mcp.WithDescription("List the layout strategies a scene can use. The default is used for any unknown layout tag."),
	)
}

func layoutsHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		layouts, err := commands.NewListLayoutsCommand().Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		var sb strings.Builder
		for _, l := range layouts {
			sb.WriteString(string(l.Layout))
			if l.Default {
				sb.WriteString("  (default)")
			}
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- resolve_layout ---

func resolveLayoutTool() mcp.Tool {
	return mcp.NewTool("resolve_layout",
		mcp.WithDescription("Report which strategy renders a layout tag, with suggestions for unknown tags."),
		mcp.WithString("layout",
			mcp.Description("Layout tag as found in a scene (e.g. typographic_storm)"),
			mcp.Required(),
		),
	)
}

func resolveLayoutHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewResolveLayoutCommand(req.GetString("layout", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- parse_emphasis ---

func parseEmphasisTool() mcp.Tool {
	return mcp.NewTool("parse_emphasis",
		mcp.WithDescription("Split paragraph text into plain and emphasized runs. Text between asterisk pairs is emphasized."),
		mcp.WithString("text",
			mcp.Description("Paragraph text, e.g. 'The *spice* must flow.'"),
			mcp.Required(),
		),
	)
}

func parseEmphasisHandler() server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		runs := domain.ParseEmphasis(req.GetString("text", ""))
		if runs == nil {
			runs = []domain.Run{}
		}
		return jsonResult(runs)
	}
}

// --- render_scene ---

func renderSceneTool() mcp.Tool {
	return mcp.NewTool("render_scene",
		mcp.WithDescription("Render one scene of a document at a scroll progress and return its visual tree as JSON."),
		withDocumentArgs(),
		mcp.WithNumber("scene_index",
			mcp.Description("Zero-based scene index"),
			mcp.Required(),
		),
		mcp.WithNumber("progress",
			mcp.Description("Scroll progress of the scene in [0, 1]. Defaults to 0.5."),
		),
	)
}

func renderSceneHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		doc, err := loadDocument(ctx, req)
		if err != nil {
			return toolError(err)
		}
		cmd := commands.NewRenderSceneCommand(doc, req.GetInt("scene_index", 0), req.GetFloat("progress", 0.5))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return jsonResult(result.Tree)
	}
}

// --- entity_svg ---

func entitySVGTool() mcp.Tool {
	return mcp.NewTool("entity_svg",
		mcp.WithDescription("Draw the generative entity of a scene as SVG, or as a PNG image."),
		withDocumentArgs(),
		mcp.WithNumber("scene_index",
			mcp.Description("Zero-based scene index"),
			mcp.Required(),
		),
		mcp.WithNumber("progress",
			mcp.Description("Scroll progress in [0, 1]. Defaults to 0.5."),
		),
		mcp.WithString("format",
			mcp.Description("svg or png"),
			mcp.Enum("svg", "png"),
		),
		mcp.WithNumber("size",
			mcp.Description("Edge length in pixels. Defaults to 512."),
		),
	)
}

func entitySVGHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		doc, err := loadDocument(ctx, req)
		if err != nil {
			return toolError(err)
		}
		cmd := commands.NewRenderSceneCommand(doc, req.GetInt("scene_index", 0), req.GetFloat("progress", 0.5))
		if err := cmd.Validate(); err != nil {
			return toolError(err)
		}

		scene := doc.Screenplay[cmd.SceneIndex]
		palette := scene.Visual.Palette.WithDefaults()
		entity := render.Entity(scene.Visual.VisualParams, palette.Secondary, palette.Primary, cmd.Progress)
		size := req.GetInt("size", 512)

		if req.GetString("format", "svg") != "png" {
			return mcp.NewToolResultText(svg.Entity(entity, svg.Options{Size: size, Filters: true})), nil
		}

		var buf bytes.Buffer
		if err := raster.WritePNG(&buf, []byte(svg.Entity(entity, svg.Options{Size: size})), size, palette.Background); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultImage(
			fmt.Sprintf("%s entity", render.ChapterMarker(cmd.SceneIndex, len(doc.Screenplay))),
			base64.StdEncoding.EncodeToString(buf.Bytes()),
			"image/png",
		), nil
	}
}

// --- helpers ---

func withDocumentArgs() mcp.ToolOption {
	return func(t *mcp.Tool) {
		mcp.WithString("document_path",
			mcp.Description("Path to a document JSON file"),
		)(t)
		mcp.WithString("document_json",
			mcp.Description("Document JSON given inline; used when document_path is omitted"),
		)(t)
	}
}

func loadDocument(ctx context.Context, req mcp.CallToolRequest) (*domain.Document, error) {
	if path := req.GetString("document_path", ""); path != "" {
		result, err := commands.NewLoadDocumentCommand(path).Execute(ctx)
		if err != nil {
			return nil, err
		}
		return result.Document, nil
	}
	if raw := req.GetString("document_json", ""); raw != "" {
		return domain.DecodeDocument([]byte(raw))
	}
	return nil, fmt.Errorf("document_path or document_json is required")
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
