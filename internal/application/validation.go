package application

import (
	"fmt"
	"strings"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// ValidateSceneIndex checks that index addresses one of total scenes
func ValidateSceneIndex(fieldName string, index, total int) error {
	if index < 0 || index >= total {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("scene %d out of range (document has %d)", index, total),
		}
	}
	return nil
}

// ValidateProgress checks that a progress value lies in [0, 1]
func ValidateProgress(fieldName string, progress float64) error {
	if progress < 0 || progress > 1 || progress != progress {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("progress must be within [0, 1], got %v", progress),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "sourcePath" -> "source path")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"sourcePath":  "source path",
		"title":       "title",
		"instruction": "instruction",
		"outputDir":   "output directory",
		"outputPath":  "output path",
		"sceneIndex":  "scene index",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	return fieldName
}
