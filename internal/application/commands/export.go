package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"vibary/internal/application"
	"vibary/internal/domain"
	"vibary/internal/ports"
)

// ExportResult contains the result of exporting a document
type ExportResult struct {
	Path    string
	Bytes   int
	Message string
}

// ExportCommand freezes a document into a standalone file in OutputDir
type ExportCommand struct {
	exporter  ports.ArtifactExporter
	Document  *domain.Document
	OutputDir string
}

// NewExportCommand creates a new ExportCommand
func NewExportCommand(exporter ports.ArtifactExporter, doc *domain.Document, outputDir string) *ExportCommand {
	return &ExportCommand{
		exporter:  exporter,
		Document:  doc,
		OutputDir: outputDir,
	}
}

// Validate checks that there is something to export and somewhere to put it
func (c *ExportCommand) Validate() error {
	if err := application.ValidateRequired("outputDir", c.OutputDir); err != nil {
		return err
	}
	if err := c.Document.Validate(); err != nil {
		return &application.ValidationError{
			Field:   "document",
			Message: err.Error(),
		}
	}
	return nil
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context) (*ExportResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	data, err := c.exporter.Export(c.Document)
	if err != nil {
		return nil, fmt.Errorf("failed to export document: %w", err)
	}

	if err := os.MkdirAll(c.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(c.OutputDir, c.exporter.FileName(c.Document))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write export: %w", err)
	}

	return &ExportResult{
		Path:    path,
		Bytes:   len(data),
		Message: fmt.Sprintf("Exported %q to %s", c.Document.Meta.Title, path),
	}, nil
}
