package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyScreenplay is returned when a document carries no scenes
var ErrEmptyScreenplay = errors.New("document has no scenes")

// Document is a complete visual narrative for one book
type Document struct {
	Meta       Meta    `json:"meta"`
	Screenplay []Scene `json:"screenplay"`
}

// Meta describes the book the document was produced for
type Meta struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Essence  string `json:"essence"`
	Language string `json:"language,omitempty"`
}

// Scene is one chapter of the journey
type Scene struct {
	ID              string       `json:"id"`
	ChapterTitle    string       `json:"chapterTitle"`
	Paragraphs      []string     `json:"paragraphs"`
	HighlightPhrase string       `json:"highlightPhrase"`
	Visual          VisualConfig `json:"visual"`
}

// VisualConfig carries the presentation hints of a scene
type VisualConfig struct {
	Layout            Layout        `json:"layout"`
	BackgroundPattern Pattern       `json:"backgroundPattern"`
	Palette           Palette       `json:"palette"`
	VisualParams      VisualParams  `json:"visualParams"`
	GalleryItems      []GalleryItem `json:"galleryItems,omitempty"`
}

// Palette holds the five scene colors as CSS color strings
type Palette struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

// VisualParams drives the generative entity
type VisualParams struct {
	Shape      Shape   `json:"shape"`
	Motion     Motion  `json:"motion"`
	Complexity float64 `json:"complexity"`
	Speed      float64 `json:"speed"`
}

// GalleryItem is a node of the constellation layout
type GalleryItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

// DefaultPalette is used before any scene is active
var DefaultPalette = Palette{
	Primary:    "#ffffff",
	Secondary:  "#888888",
	Accent:     "#ffffff",
	Background: "#050505",
	Text:       "#ffffff",
}

// DecodeDocument parses a document from JSON and checks that it can be rendered.
// Only structural access is checked; content is taken as produced.
func DecodeDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks the structural requirements of a document
func (d *Document) Validate() error {
	if d == nil || len(d.Screenplay) == 0 {
		return ErrEmptyScreenplay
	}
	return nil
}

// Encode serializes the document as indented JSON
func (d *Document) Encode() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Clone returns a deep copy of the document
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{Meta: d.Meta, Screenplay: make([]Scene, len(d.Screenplay))}
	for i, s := range d.Screenplay {
		s.Paragraphs = append([]string(nil), s.Paragraphs...)
		if s.Visual.GalleryItems != nil {
			s.Visual.GalleryItems = append([]GalleryItem(nil), s.Visual.GalleryItems...)
		}
		out.Screenplay[i] = s
	}
	return out
}

// Scene returns the scene at index i, or false when out of range
func (d *Document) Scene(i int) (Scene, bool) {
	if d == nil || i < 0 || i >= len(d.Screenplay) {
		return Scene{}, false
	}
	return d.Screenplay[i], true
}

// Palette returns the palette of scene i, or DefaultPalette when out of range
func (d *Document) Palette(i int) Palette {
	s, ok := d.Scene(i)
	if !ok {
		return DefaultPalette
	}
	return s.Visual.Palette.WithDefaults()
}

// WithDefaults fills empty colors from DefaultPalette
func (p Palette) WithDefaults() Palette {
	if p.Primary == "" {
		p.Primary = DefaultPalette.Primary
	}
	if p.Secondary == "" {
		p.Secondary = DefaultPalette.Secondary
	}
	if p.Accent == "" {
		p.Accent = DefaultPalette.Accent
	}
	if p.Background == "" {
		p.Background = DefaultPalette.Background
	}
	if p.Text == "" {
		p.Text = DefaultPalette.Text
	}
	return p
}
