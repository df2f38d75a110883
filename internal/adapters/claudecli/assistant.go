package claudecli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"vibary/internal/adapters/prompt"
	"vibary/internal/application"
	"vibary/internal/domain"
	"vibary/internal/ports"
)

// Assistant implements ports.ContentService using the Claude Code CLI
type Assistant struct {
	binary   string
	model    string
	language string
	log      *zap.Logger
}

// Ensure Assistant implements ContentService
var _ ports.ContentService = (*Assistant)(nil)

// Option configures the Assistant
type Option func(*Assistant)

// WithModel sets the Claude model to use
func WithModel(model string) Option {
	return func(a *Assistant) {
		if model != "" {
			a.model = model
		}
	}
}

// WithLanguage sets the language documents are written in
func WithLanguage(language string) Option {
	return func(a *Assistant) {
		a.language = language
	}
}

// WithBinary overrides the claude executable
func WithBinary(path string) Option {
	return func(a *Assistant) {
		if path != "" {
			a.binary = path
		}
	}
}

// WithLogger sets the logger
func WithLogger(log *zap.Logger) Option {
	return func(a *Assistant) {
		if log != nil {
			a.log = log
		}
	}
}

// NewAssistant creates a new Claude CLI assistant
func NewAssistant(opts ...Option) *Assistant {
	a := &Assistant{
		binary:   "claude",
		model:    "sonnet", // documents are long; haiku truncates them
		language: prompt.DefaultLanguage,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.Named("claude")
	return a
}

// claudeResponse represents the JSON output from claude CLI
type claudeResponse struct {
	Type         string  `json:"type"`
	Subtype      string  `json:"subtype"`
	DurationMS   int     `json:"duration_ms"`
	IsError      bool    `json:"is_error"`
	NumTurns     int     `json:"num_turns"`
	Result       string  `json:"result"`
	SessionID    string  `json:"session_id"`
	TotalCostUSD float64 `json:"total_cost_usd"`
}

// Analyze produces a document from extracted source text
func (a *Assistant) Analyze(ctx context.Context, text string) (*domain.Document, error) {
	result, err := a.run(ctx, "analyze", prompt.AnalyzePrompt(text), prompt.DocumentSchema())
	if err != nil {
		return nil, err
	}
	doc, err := prompt.DecodeDocument(result)
	if err != nil {
		return nil, &application.ServiceError{Op: "analyze", Err: err}
	}
	return doc, nil
}

// CheckTitle asks whether Claude knows title well enough to direct it
func (a *Assistant) CheckTitle(ctx context.Context, title string) (ports.TitleCheck, error) {
	result, err := a.run(ctx, "check title", prompt.TitlePrompt(title), prompt.TitleCheckSchema())
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
func (a *Assistant) Refine(ctx context.Context, doc *domain.Document, instruction string) (*domain.Document, error) {
	p, err := prompt.RefinePrompt(doc, instruction)
	if err != nil {
		return nil, err
	}
	result, err := a.run(ctx, "refine", p, prompt.DocumentSchema())
	if err != nil {
		return nil, err
	}
	refined, err := prompt.DecodeDocument(result)
	if err != nil {
		return nil, &application.ServiceError{Op: "refine", Err: err}
	}
	return refined, nil
}

// run sends one prompt through the CLI and returns the result text. The
// prompt travels on stdin since source text can exceed argument limits.
func (a *Assistant) run(ctx context.Context, op, userPrompt string, schema *prompt.Schema) (string, error) {
	args := []string{
		"-p",
		"--output-format", "json",
		"--model", a.model,
		"--append-system-prompt", prompt.SystemInstruction(a.language),
	}

	cmd := exec.CommandContext(ctx, a.binary, args...)
	cmd.Stdin = strings.NewReader(userPrompt + "\n\n" + prompt.ResponseInstruction(schema))
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	a.log.Debug("Calling claude CLI", zap.String("op", op), zap.String("model", a.model), zap.Int("prompt", len(userPrompt)))
	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &application.ServiceError{Op: op, Err: fmt.Errorf("claude CLI error: %s", strings.TrimSpace(stderr.String()))}
		}
		return "", &application.ServiceError{Op: op, Err: fmt.Errorf("claude CLI error: %w", err)}
	}
	return parseResponse(op, output)
}

func parseResponse(op string, output []byte) (string, error) {
	var response claudeResponse
	if err := json.Unmarshal(output, &response); err != nil {
		return "", &application.ServiceError{Op: op, Err: fmt.Errorf("%w: %w", application.ErrMalformedResponse, err)}
	}
	if response.IsError {
		return "", &application.ServiceError{Op: op, Err: fmt.Errorf("claude returned an error: %s", response.Result)}
	}
	return response.Result, nil
}

// IsAvailable checks if the claude CLI is installed and accessible
func (a *Assistant) IsAvailable() bool {
	_, err := exec.LookPath(a.binary)
	return err == nil
}
