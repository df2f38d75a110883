package config

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"vibary/internal/adapters/claudecli"
	"vibary/internal/adapters/gemini"
	"vibary/internal/adapters/source"
	"vibary/internal/ports"
)

// ContentService builds the configured content provider
func (c *Config) ContentService(ctx context.Context, log *zap.Logger) (ports.ContentService, error) {
	switch c.Provider {
	case ProviderGemini:
		if c.APIKey == "" {
			return nil, errors.New("the gemini provider needs an API key (VIBARY_API_KEY or GEMINI_API_KEY)")
		}
		opts := []gemini.Option{gemini.WithLanguage(c.Language), gemini.WithLogger(log)}
		if c.Model != "" {
			opts = append(opts, gemini.WithModel(c.Model))
		}
		return gemini.New(ctx, c.APIKey, opts...)
	case ProviderClaude:
		opts := []claudecli.Option{claudecli.WithLanguage(c.Language), claudecli.WithLogger(log)}
		if c.Model != "" {
			opts = append(opts, claudecli.WithModel(c.Model))
		}
		a := claudecli.NewAssistant(opts...)
		if !a.IsAvailable() {
			return nil, errors.New("claude CLI not found in PATH")
		}
		return a, nil
	}
	return nil, fmt.Errorf("unknown provider %q", c.Provider)
}

// Extractor builds the source extractor with the configured caps
func (c *Config) Extractor(log *zap.Logger) *source.Extractor {
	return source.New(log, source.WithLimits(c.Source.MaxPages, c.Source.MaxChars))
}
