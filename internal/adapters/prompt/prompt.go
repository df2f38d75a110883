// Package prompt holds the contract shared by content service adapters:
// the system instruction, response schemas, prompts and response decoding.
package prompt

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"vibary/internal/application"
	"vibary/internal/domain"
)

// DefaultLanguage is used when no output language is configured
const DefaultLanguage = "en-US"

// SystemInstruction tells the model how to direct a book as a visual journey.
// Output text is requested in language.
func SystemInstruction(language string) string {
	if strings.TrimSpace(language) == "" {
		language = DefaultLanguage
	}
	return fmt.Sprintf(`You are a digital art director and data visualization expert. Transform this book into a generative visual journey.

VISUAL RULES (STRICT):
1. No walls of text: split content into short, punchy paragraphs.
2. Highlighting: wrap key concepts or emotional words in asterisks *like this*. They are rendered in the accent color.
3. Every chapter must have a concrete visual concept:
   - Time or history: layout "timeline_process", shape "geometric".
   - Chaos or war: layout "typographic_storm", shape "spiky", motion "explode".
   - Lists or groups: layout "constellation_nodes" with galleryItems.
   - Analysis or deep dive: layout "architectural_lens".
4. Backgrounds: choose a backgroundPattern that fits the mood. Never use plain backgrounds.
5. Color: use high-contrast, artistic palettes. The accent color is for highlights.

JSON OUTPUT:
Cover the entire book structure. Write all text in %q.`, language)
}

// AnalyzePrompt asks for a document built from extracted source text
func AnalyzePrompt(text string) string {
	return "Analyze this book.\n\nTEXT:\n" + text
}

// TitlePrompt asks whether the model knows a book by title
func TitlePrompt(title string) string {
	return fmt.Sprintf(`Title: %q.

If you know this book well enough to describe its full structure, answer {"known": true, "analysis": <document>}.
Otherwise answer {"known": false}.`, title)
}

// RefinePrompt asks for a full replacement of doc following instruction
func RefinePrompt(doc *domain.Document, instruction string) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to encode current document: %w", err)
	}
	return fmt.Sprintf("Current JSON:\n%s\n\nUser change: %q\n\nRefine the visuals and return the complete document.", data, instruction), nil
}

// ResponseInstruction is appended for providers without native schema support
func ResponseInstruction(schema *Schema) string {
	data, _ := json.MarshalIndent(schema, "", "  ")
	return "Return ONLY JSON (no markdown, no commentary) matching this JSON schema:\n" + string(data)
}

var codeBlockRe = regexp.MustCompile("```(?:json)?\\s*\\n?([\\s\\S]*?)\\n?```")

// ExtractJSON isolates the JSON object in a model response, tolerating code
// fences and surrounding prose
func ExtractJSON(result string) (string, error) {
	result = strings.TrimSpace(result)

	if matches := codeBlockRe.FindStringSubmatch(result); len(matches) > 1 {
		result = strings.TrimSpace(matches[1])
	}

	start := strings.Index(result, "{")
	end := strings.LastIndex(result, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("%w: no JSON object found", application.ErrMalformedResponse)
	}
	return result[start : end+1], nil
}

// DecodeDocument parses a document out of a model response
func DecodeDocument(result string) (*domain.Document, error) {
	raw, err := ExtractJSON(result)
	if err != nil {
		return nil, err
	}
	doc, err := domain.DecodeDocument([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", application.ErrMalformedResponse, err)
	}
	return doc, nil
}

type titleCheckJSON struct {
	Known    bool             `json:"known"`
	Analysis *domain.Document `json:"analysis"`
}

// DecodeTitleCheck parses the known/analysis wrapper. A known answer without
// a usable document is treated as unknown.
func DecodeTitleCheck(result string) (known bool, doc *domain.Document, err error) {
	raw, err := ExtractJSON(result)
	if err != nil {
		return false, nil, err
	}
	var check titleCheckJSON
	if err := json.Unmarshal([]byte(raw), &check); err != nil {
		return false, nil, fmt.Errorf("%w: %w", application.ErrMalformedResponse, err)
	}
	if !check.Known || check.Analysis.Validate() != nil {
		return false, nil, nil
	}
	return true, check.Analysis, nil
}
