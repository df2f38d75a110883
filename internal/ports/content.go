package ports

import (
	"context"

	"vibary/internal/domain"
)

// TitleCheck is the answer of the content service to a title lookup
type TitleCheck struct {
	// Known is false when the service does not know the book well enough
	Known    bool
	Document *domain.Document
}

// ContentService produces and refines documents
type ContentService interface {
	// Analyze produces a document from extracted source text
	Analyze(ctx context.Context, text string) (*domain.Document, error)

	// CheckTitle asks whether the service knows a title and, if so, returns its document
	CheckTitle(ctx context.Context, title string) (TitleCheck, error)

	// Refine returns a full replacement for doc following the instruction
	Refine(ctx context.Context, doc *domain.Document, instruction string) (*domain.Document, error)

	// IsAvailable returns true if the service can be reached (e.g. CLI installed, key present)
	IsAvailable() bool
}
