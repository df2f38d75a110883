package commands

import (
	"context"
	"fmt"
	"os"

	"vibary/internal/application"
	"vibary/internal/domain"
)

// LoadDocumentResult contains a document read from disk
type LoadDocumentResult struct {
	Document *domain.Document
	Message  string
}

// LoadDocumentCommand reads a saved document
type LoadDocumentCommand struct {
	Path string
}

// NewLoadDocumentCommand creates a new LoadDocumentCommand
func NewLoadDocumentCommand(path string) *LoadDocumentCommand {
	return &LoadDocumentCommand{Path: path}
}

// Validate checks the command parameters
func (c *LoadDocumentCommand) Validate() error {
	return application.ValidateRequired("sourcePath", c.Path)
}

// Execute reads and decodes the document
func (c *LoadDocumentCommand) Execute(ctx context.Context) (*LoadDocumentResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	doc, err := domain.DecodeDocument(data)
	if err != nil {
		return nil, err
	}

	return &LoadDocumentResult{
		Document: doc,
		Message:  fmt.Sprintf("Loaded %q with %d scenes", doc.Meta.Title, len(doc.Screenplay)),
	}, nil
}

// SaveDocumentCommand writes a document as JSON
type SaveDocumentCommand struct {
	Document *domain.Document
	Path     string
}

// NewSaveDocumentCommand creates a new SaveDocumentCommand
func NewSaveDocumentCommand(doc *domain.Document, path string) *SaveDocumentCommand {
	return &SaveDocumentCommand{Document: doc, Path: path}
}

// Execute encodes and writes the document
func (c *SaveDocumentCommand) Execute(ctx context.Context) (string, error) {
	if err := application.ValidateRequired("outputPath", c.Path); err != nil {
		return "", err
	}
	if err := c.Document.Validate(); err != nil {
		return "", err
	}

	data, err := c.Document.Encode()
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	if err := os.WriteFile(c.Path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	return fmt.Sprintf("Saved %q to %s", c.Document.Meta.Title, c.Path), nil
}
