package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"vibary/internal/adapters/htmlexport"
	"vibary/internal/domain"
)

const documentJSON = `{"meta":{"title":"Dune","author":"Frank Herbert","essence":"Spice"},"screenplay":[{"id":"1","chapterTitle":"Arrakis","paragraphs":["The *spice* must flow."],"highlightPhrase":"spice","visual":{"layout":"typographic_storm","backgroundPattern":"dots","palette":{"primary":"#f4a460","secondary":"#8b4513","accent":"#ffd700","background":"#1a0f00","text":"#fff8dc"},"visualParams":{"shape":"spiky","motion":"explode","complexity":3,"speed":1}}}]}`

// newCallToolRequest builds a tool call request with arguments.
func newCallToolRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("empty result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", result.Content[0])
	}
	return text.Text
}

func TestLayoutsHandler(t *testing.T) {
	result, err := layoutsHandler()(context.Background(), newCallToolRequest(nil))
	if err != nil {
		t.Fatal(err)
	}
	text := resultText(t, result)
	for _, l := range domain.Layouts {
		if !strings.Contains(text, string(l)) {
			t.Errorf("layouts missing %q", l)
		}
	}
	if !strings.Contains(text, "split_dynamic  (default)") {
		t.Errorf("default not marked: %q", text)
	}
}

func TestResolveLayoutHandler(t *testing.T) {
	result, err := resolveLayoutHandler()(context.Background(), newCallToolRequest(map[string]any{"layout": "holographic"}))
	if err != nil {
		t.Fatal(err)
	}
	if text := resultText(t, result); !strings.Contains(text, "split_dynamic") {
		t.Errorf("resolve_layout = %q", text)
	}
}

func TestParseEmphasisHandler(t *testing.T) {
	result, err := parseEmphasisHandler()(context.Background(), newCallToolRequest(map[string]any{"text": "The *spice* must flow."}))
	if err != nil {
		t.Fatal(err)
	}
	var runs []domain.Run
	if err := json.Unmarshal([]byte(resultText(t, result)), &runs); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if len(runs) != 3 || !runs[1].Emphasized || runs[1].Text != "spice" {
		t.Errorf("runs = %+v", runs)
	}
}

func TestRenderSceneHandler(t *testing.T) {
	tests := []struct {
		name      string
		args      map[string]any
		wantError bool
		contains  string
	}{
		{
			name:     "inline document",
			args:     map[string]any{"document_json": documentJSON, "scene_index": float64(0), "progress": 0.5},
			contains: `"CHAPTER 1 / 1"`,
		},
		{
			name:      "index out of range",
			args:      map[string]any{"document_json": documentJSON, "scene_index": float64(3)},
			wantError: true,
		},
		{
			name:      "no document",
			args:      map[string]any{"scene_index": float64(0)},
			wantError: true,
		},
		{
			name:      "broken document",
			args:      map[string]any{"document_json": `{"screenplay":[]}`, "scene_index": float64(0)},
			wantError: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := renderSceneHandler()(context.Background(), newCallToolRequest(tt.args))
			if err != nil {
				t.Fatalf("expected nil error, got %v", err)
			}
			if result.IsError != tt.wantError {
				t.Fatalf("IsError = %v, want %v (%s)", result.IsError, tt.wantError, resultText(t, result))
			}
			if tt.contains != "" && !strings.Contains(resultText(t, result), tt.contains) {
				t.Errorf("result missing %s", tt.contains)
			}
		})
	}
}

func TestEntitySVGHandler(t *testing.T) {
	result, err := entitySVGHandler()(context.Background(), newCallToolRequest(map[string]any{
		"document_json": documentJSON,
		"scene_index":   float64(0),
		"size":          float64(64),
	}))
	if err != nil {
		t.Fatal(err)
	}
	if text := resultText(t, result); !strings.HasPrefix(text, "<svg") || !strings.Contains(text, `width="64"`) {
		t.Errorf("svg = %.100s", text)
	}

	result, err = entitySVGHandler()(context.Background(), newCallToolRequest(map[string]any{
		"document_json": documentJSON,
		"scene_index":   float64(0),
		"format":        "png",
		"size":          float64(32),
	}))
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError {
		t.Fatalf("png result is an error: %+v", result.Content)
	}
	found := false
	for _, c := range result.Content {
		if img, ok := c.(mcp.ImageContent); ok {
			found = img.MIMEType == "image/png" && img.Data != ""
		}
	}
	if !found {
		t.Error("png image content missing")
	}
}

func TestExportHandler(t *testing.T) {
	exporter, err := htmlexport.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()

	result, err := exportHandler(exporter)(context.Background(), newCallToolRequest(map[string]any{
		"document_json": documentJSON,
		"output_dir":    dir,
	}))
	if err != nil {
		t.Fatal(err)
	}
	if result.IsError {
		t.Fatalf("export failed: %s", resultText(t, result))
	}
	if _, err := os.Stat(filepath.Join(dir, "dune_vibary.html")); err != nil {
		t.Errorf("export file not written: %v", err)
	}
}
