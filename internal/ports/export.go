package ports

import "vibary/internal/domain"

// ArtifactExporter freezes a document into a standalone file
type ArtifactExporter interface {
	Export(doc *domain.Document) ([]byte, error)
	// FileName derives the artifact file name from the document title
	FileName(doc *domain.Document) string
}

// ArtifactOpener opens an exported artifact with the system viewer
type ArtifactOpener interface {
	Open(path string) error
}
