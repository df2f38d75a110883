package ports

import "context"

// SourceExtractor turns an uploaded book file into plain text
type SourceExtractor interface {
	// Extract returns the text of the file at path, capped to a bounded length
	Extract(ctx context.Context, path string) (string, error)
}
