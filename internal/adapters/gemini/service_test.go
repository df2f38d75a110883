package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"google.golang.org/genai"

	"vibary/internal/adapters/prompt"
	"vibary/internal/application"
	"vibary/internal/domain"
)

const documentJSON = `{"meta":{"title":"Dune","author":"Frank Herbert","essence":"Spice","language":"en-US"},"screenplay":[{"id":"1","chapterTitle":"Arrakis","paragraphs":["The *spice* must flow."],"highlightPhrase":"spice","visual":{"layout":"entity_focus","backgroundPattern":"dots","palette":{"primary":"#f4a460","secondary":"#8b4513","accent":"#ffd700","background":"#1a0f00","text":"#fff8dc"},"visualParams":{"shape":"fluid","motion":"flow","complexity":3,"speed":1}}}]}`

type fakeModels struct {
	text   string
	err    error
	model  string
	prompt string
	config *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.config = config
	for _, c := range contents {
		for _, p := range c.Parts {
			f.prompt += p.Text
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: genai.RoleModel, Parts: []*genai.Part{{Text: f.text}}},
		}},
	}, nil
}

func TestService_Analyze(t *testing.T) {
	fake := &fakeModels{text: documentJSON}
	s := newService(fake, WithLanguage("zh-CN"))

	doc, err := s.Analyze(context.Background(), "Once upon a time.")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if doc.Meta.Author != "Frank Herbert" {
		t.Errorf("author = %q", doc.Meta.Author)
	}
	if fake.model != DefaultModel {
		t.Errorf("model = %q, want %q", fake.model, DefaultModel)
	}
	if !strings.Contains(fake.prompt, "Once upon a time.") {
		t.Error("source text not sent")
	}
	if fake.config.ResponseMIMEType != "application/json" {
		t.Errorf("mime = %q", fake.config.ResponseMIMEType)
	}
	if fake.config.ResponseSchema == nil || fake.config.ResponseSchema.Type != genai.TypeObject {
		t.Error("response schema not attached")
	}
	sys := fake.config.SystemInstruction.Parts[0].Text
	if !strings.Contains(sys, `"zh-CN"`) {
		t.Error("system instruction does not carry the language")
	}
}

func TestService_CheckTitle(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantKnown bool
	}{
		{"known", `{"known": true, "analysis": ` + documentJSON + `}`, true},
		{"unknown", `{"known": false}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check, err := newService(&fakeModels{text: tt.text}).CheckTitle(context.Background(), "Dune")
			if err != nil {
				t.Fatalf("CheckTitle() error = %v", err)
			}
			if check.Known != tt.wantKnown {
				t.Errorf("Known = %v, want %v", check.Known, tt.wantKnown)
			}
		})
	}
}

func TestService_Refine(t *testing.T) {
	fake := &fakeModels{text: documentJSON}
	current, err := domain.DecodeDocument([]byte(documentJSON))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := newService(fake, WithModel("gemini-2.5-pro")).Refine(context.Background(), current, "colder"); err != nil {
		t.Fatalf("Refine() error = %v", err)
	}
	if fake.model != "gemini-2.5-pro" {
		t.Errorf("model = %q", fake.model)
	}
	if !strings.Contains(fake.prompt, `"colder"`) {
		t.Error("instruction not sent")
	}
}

func TestService_Failures(t *testing.T) {
	tests := []struct {
		name   string
		fake   *fakeModels
		wantIs error
	}{
		{"api error", &fakeModels{err: genai.APIError{Code: 503, Status: "UNAVAILABLE"}}, application.ErrServiceFailure},
		{"empty text", &fakeModels{text: ""}, application.ErrMalformedResponse},
		{"not json", &fakeModels{text: "sorry"}, application.ErrMalformedResponse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newService(tt.fake).Analyze(context.Background(), "text")
			if !errors.Is(err, tt.wantIs) {
				t.Errorf("Analyze() error = %v, want %v", err, tt.wantIs)
			}
		})
	}
}

func TestService_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newService(&fakeModels{err: errors.New("transport closed")}).Analyze(ctx, "text")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Analyze() error = %v, want context.Canceled", err)
	}
}

func TestToGenai(t *testing.T) {
	s := toGenai(prompt.DocumentSchema())
	scene := s.Properties["screenplay"].Items
	if scene == nil || scene.Type != genai.TypeObject {
		t.Fatal("scene schema missing")
	}
	layout := scene.Properties["visual"].Properties["layout"]
	if layout.Type != genai.TypeString || len(layout.Enum) != len(domain.Layouts) {
		t.Errorf("layout schema = %+v", layout)
	}
	if toGenai(nil) != nil {
		t.Error("nil schema should stay nil")
	}
}
