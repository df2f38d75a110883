package claudecli

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"vibary/internal/application"
	"vibary/internal/domain"
)

const documentJSON = `{"meta":{"title":"Dune","author":"Frank Herbert","essence":"Spice","language":"en-US"},"screenplay":[{"id":"1","chapterTitle":"Arrakis","paragraphs":["The *spice* must flow."],"highlightPhrase":"spice","visual":{"layout":"entity_focus","backgroundPattern":"dots","palette":{"primary":"#f4a460","secondary":"#8b4513","accent":"#ffd700","background":"#1a0f00","text":"#fff8dc"},"visualParams":{"shape":"fluid","motion":"flow","complexity":3,"speed":1}}}]}`

// fakeCLI writes a script standing in for the claude binary. It drains
// stdin into prompt.txt and prints the canned CLI response.
func fakeCLI(t *testing.T, result string, isError bool, exitCode int) (binary, promptFile string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake CLI needs a POSIX shell")
	}
	dir := t.TempDir()

	out, err := json.Marshal(claudeResponse{Type: "result", Result: result, IsError: isError})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "response.json"), out, 0o644); err != nil {
		t.Fatal(err)
	}

	promptFile = filepath.Join(dir, "prompt.txt")
	script := "#!/bin/sh\ncat > '" + promptFile + "'\n"
	if exitCode != 0 {
		script += "echo 'rate limited' >&2\nexit 3\n"
	} else {
		script += "cat '" + filepath.Join(dir, "response.json") + "'\n"
	}
	binary = filepath.Join(dir, "claude")
	if err := os.WriteFile(binary, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return binary, promptFile
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		want    string
		wantErr bool
	}{
		{name: "result", output: `{"type":"result","result":"hello"}`, want: "hello"},
		{name: "is error", output: `{"type":"result","is_error":true,"result":"boom"}`, wantErr: true},
		{name: "not json", output: `Error: not logged in`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseResponse("analyze", []byte(tt.output))
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, application.ErrServiceFailure) {
				t.Errorf("error %v is not a service failure", err)
			}
			if got != tt.want {
				t.Errorf("parseResponse() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAssistant_Analyze(t *testing.T) {
	binary, promptFile := fakeCLI(t, "```json\n"+documentJSON+"\n```", false, 0)
	a := NewAssistant(WithBinary(binary), WithLanguage("es-ES"))

	doc, err := a.Analyze(context.Background(), "Book text goes here.")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if doc.Meta.Title != "Dune" {
		t.Errorf("title = %q, want Dune", doc.Meta.Title)
	}

	sent, err := os.ReadFile(promptFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(sent), "Book text goes here.") {
		t.Error("source text was not sent on stdin")
	}
	if !strings.Contains(string(sent), `"screenplay"`) {
		t.Error("response schema was not sent")
	}
}

func TestAssistant_CheckTitle(t *testing.T) {
	tests := []struct {
		name      string
		result    string
		wantKnown bool
	}{
		{"known", `{"known": true, "analysis": ` + documentJSON + `}`, true},
		{"unknown", `{"known": false}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			binary, _ := fakeCLI(t, tt.result, false, 0)
			check, err := NewAssistant(WithBinary(binary)).CheckTitle(context.Background(), "Dune")
			if err != nil {
				t.Fatalf("CheckTitle() error = %v", err)
			}
			if check.Known != tt.wantKnown {
				t.Errorf("Known = %v, want %v", check.Known, tt.wantKnown)
			}
			if tt.wantKnown && check.Document == nil {
				t.Error("known title without document")
			}
		})
	}
}

func TestAssistant_Refine(t *testing.T) {
	binary, promptFile := fakeCLI(t, documentJSON, false, 0)
	current, err := domain.DecodeDocument([]byte(documentJSON))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewAssistant(WithBinary(binary)).Refine(context.Background(), current, "more red"); err != nil {
		t.Fatalf("Refine() error = %v", err)
	}
	sent, _ := os.ReadFile(promptFile)
	if !strings.Contains(string(sent), "Current JSON:") || !strings.Contains(string(sent), `"more red"`) {
		t.Errorf("refine prompt incomplete: %.200s", sent)
	}
}

func TestAssistant_Failures(t *testing.T) {
	tests := []struct {
		name     string
		result   string
		isError  bool
		exitCode int
		wantIs   error
	}{
		{"cli exits", "", false, 3, application.ErrServiceFailure},
		{"reported error", "overloaded", true, 0, application.ErrServiceFailure},
		{"prose answer", "Sorry, I cannot do that.", false, 0, application.ErrMalformedResponse},
		{"empty screenplay", `{"meta":{},"screenplay":[]}`, false, 0, application.ErrMalformedResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			binary, _ := fakeCLI(t, tt.result, tt.isError, tt.exitCode)
			_, err := NewAssistant(WithBinary(binary)).Analyze(context.Background(), "text")
			if !errors.Is(err, tt.wantIs) {
				t.Errorf("Analyze() error = %v, want %v", err, tt.wantIs)
			}
		})
	}
}

func TestAssistant_Canceled(t *testing.T) {
	binary, _ := fakeCLI(t, documentJSON, false, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAssistant(WithBinary(binary)).Analyze(ctx, "text")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Analyze() error = %v, want context.Canceled", err)
	}
}

func TestAssistant_IsAvailable(t *testing.T) {
	if NewAssistant(WithBinary(filepath.Join(t.TempDir(), "missing-claude"))).IsAvailable() {
		t.Error("IsAvailable() = true for a missing binary")
	}
}
