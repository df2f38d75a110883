// Package gemini implements the content service on the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"vibary/internal/adapters/prompt"
	"vibary/internal/application"
	"vibary/internal/domain"
	"vibary/internal/ports"
)

// DefaultModel is the model used when none is configured
const DefaultModel = "gemini-2.5-flash"

// generator is the part of genai.Models the service needs
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Service implements ports.ContentService
type Service struct {
	models   generator
	model    string
	language string
	hasKey   bool
	log      *zap.Logger
}

// Ensure Service implements ContentService
var _ ports.ContentService = (*Service)(nil)

// Option configures the Service
type Option func(*Service)

// WithModel sets the Gemini model
func WithModel(model string) Option {
	return func(s *Service) {
		if model != "" {
			s.model = model
		}
	}
}

// WithLanguage sets the language documents are written in
func WithLanguage(language string) Option {
	return func(s *Service) {
		s.language = language
	}
}

// WithLogger sets the logger
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a service talking to the Gemini API with apiKey
func New(ctx context.Context, apiKey string, opts ...Option) (*Service, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	s := newService(client.Models, opts...)
	s.hasKey = apiKey != ""
	return s, nil
}

func newService(models generator, opts ...Option) *Service {
	s := &Service{
		models:   models,
		model:    DefaultModel,
		language: prompt.DefaultLanguage,
		hasKey:   true,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.Named("gemini")
	return s
}

// Analyze produces a document from extracted source text
func (s *Service) Analyze(ctx context.Context, text string) (*domain.Document, error) {
	result, err := s.generate(ctx, "analyze", prompt.AnalyzePrompt(text), prompt.DocumentSchema())
	if err != nil {
		return nil, err
	}
	doc, err := prompt.DecodeDocument(result)
	if err != nil {
		return nil, &application.ServiceError{Op: "analyze", Err: err}
	}
	return doc, nil
}

// CheckTitle asks whether the model knows title well enough to direct it
func (s *Service) CheckTitle(ctx context.Context, title string) (ports.TitleCheck, error) {
	result, err := s.generate(ctx, "check title", prompt.TitlePrompt(title), prompt.TitleCheckSchema())
	if err != nil {
		return ports.TitleCheck{}, err
	}
	known, doc, err := prompt.DecodeTitleCheck(result)
	if err != nil {
		return ports.TitleCheck{}, &application.ServiceError{Op: "check title", Err: err}
	}
	return ports.TitleCheck{Known: known, Document: doc}, nil
}

// Refine returns a full replacement of doc following instruction
func (s *Service) Refine(ctx context.Context, doc *domain.Document, instruction string) (*domain.Document, error) {
	p, err := prompt.RefinePrompt(doc, instruction)
	if err != nil {
		return nil, err
	}
	result, err := s.generate(ctx, "refine", p, prompt.DocumentSchema())
	if err != nil {
		return nil, err
	}
	refined, err := prompt.DecodeDocument(result)
	if err != nil {
		return nil, &application.ServiceError{Op: "refine", Err: err}
	}
	return refined, nil
}

// IsAvailable reports whether an API key was configured
func (s *Service) IsAvailable() bool {
	return s.hasKey
}

func (s *Service) generate(ctx context.Context, op, userPrompt string, schema *prompt.Schema) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(prompt.SystemInstruction(s.language), genai.RoleUser),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    toGenai(schema),
	}

	s.log.Debug("Calling gemini", zap.String("op", op), zap.String("model", s.model), zap.Int("prompt", len(userPrompt)))
	resp, err := s.models.GenerateContent(ctx, s.model, genai.Text(userPrompt), config)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			s.log.Warn("Gemini rejected request", zap.String("op", op), zap.Int("code", apiErr.Code), zap.String("status", apiErr.Status))
		}
		return "", &application.ServiceError{Op: op, Err: err}
	}

	text := resp.Text()
	if text == "" {
		return "", &application.ServiceError{Op: op, Err: fmt.Errorf("%w: empty response", application.ErrMalformedResponse)}
	}
	return text, nil
}

var schemaTypes = map[string]genai.Type{
	prompt.TypeObject: genai.TypeObject,
	prompt.TypeArray:  genai.TypeArray,
	prompt.TypeString: genai.TypeString,
	prompt.TypeNumber: genai.TypeNumber,
	prompt.TypeBool:   genai.TypeBoolean,
}

// toGenai converts the shared schema into the SDK's schema type
func toGenai(s *prompt.Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        schemaTypes[s.Type],
		Description: s.Description,
		Enum:        s.Enum,
		Required:    s.Required,
		Items:       toGenai(s.Items),
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, p := range s.Properties {
			out.Properties[name] = toGenai(p)
		}
	}
	return out
}
