// Package source extracts plain text from uploaded book files.
package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/beevik/etree"
	"github.com/coregx/gxpdf"
	"github.com/h2non/filetype"
	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	"go.uber.org/zap"

	"vibary/internal/application"
	"vibary/internal/ports"
)

const (
	// DefaultMaxPages bounds how many PDF pages are read
	DefaultMaxPages = 50
	// DefaultMaxChars bounds the text handed to the content service
	DefaultMaxChars = 250_000

	sniffLen = 512
)

// Kind is the detected format of a source file
type Kind string

const (
	KindPDF     Kind = "pdf"
	KindFB2     Kind = "fb2"
	KindText    Kind = "text"
	KindUnknown Kind = "unknown"
)

// Extractor implements ports.SourceExtractor
type Extractor struct {
	maxPages int
	maxChars int
	splitter *sentences.DefaultSentenceTokenizer
	log      *zap.Logger
}

// Ensure Extractor implements SourceExtractor
var _ ports.SourceExtractor = (*Extractor)(nil)

// Option configures an Extractor
type Option func(*Extractor)

// WithLimits overrides the page and character caps. Non-positive values keep the defaults.
func WithLimits(pages, chars int) Option {
	return func(e *Extractor) {
		if pages > 0 {
			e.maxPages = pages
		}
		if chars > 0 {
			e.maxChars = chars
		}
	}
}

// New creates an extractor. When the sentence model cannot be loaded the
// cap falls back to a hard cut.
func New(log *zap.Logger, opts ...Option) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Extractor{
		maxPages: DefaultMaxPages,
		maxChars: DefaultMaxChars,
		log:      log.Named("source"),
	}
	for _, opt := range opts {
		opt(e)
	}

	splitter, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		e.log.Warn("Unable to load sentences tokenizer data, capping on raw length", zap.Error(err))
	} else {
		e.splitter = splitter
	}
	return e
}

// Extract returns the capped text of the file at path
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	kind, err := Detect(path)
	if err != nil {
		return "", err
	}

	var text string
	switch kind {
	case KindPDF:
		text, err = e.extractPDF(ctx, path)
	case KindFB2:
		text, err = extractFB2(path)
	case KindText:
		text, err = extractText(path)
	default:
		return "", fmt.Errorf("%w: %s", application.ErrUnsupportedSource, filepath.Base(path))
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: no text found in %s", application.ErrUnsupportedSource, filepath.Base(path))
	}
	capped := e.Cap(text)
	e.log.Debug("Source read",
		zap.String("path", path),
		zap.String("kind", string(kind)),
		zap.Int("chars", utf8.RuneCountInString(capped)),
		zap.Bool("truncated", len(capped) < len(text)))
	return capped, nil
}

// Detect sniffs the format of the file at path from its leading bytes
func Detect(path string) (Kind, error) {
	f, err := os.Open(path)
	if err != nil {
		return KindUnknown, fmt.Errorf("failed to open source: %w", err)
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return KindUnknown, fmt.Errorf("failed to read source: %w", err)
	}
	return detectBytes(head[:n], filepath.Ext(path)), nil
}

func detectBytes(head []byte, ext string) Kind {
	if len(head) == 0 {
		return KindUnknown
	}
	if kind, err := filetype.Match(head); err == nil && kind != filetype.Unknown {
		if kind.MIME.Value == "application/pdf" {
			return KindPDF
		}
		return KindUnknown
	}

	trimmed := bytes.TrimLeft(bytes.TrimPrefix(head, []byte("\xef\xbb\xbf")), " \t\r\n")
	if bytes.HasPrefix(trimmed, []byte("<?xml")) || bytes.HasPrefix(trimmed, []byte("<FictionBook")) {
		if bytes.Contains(head, []byte("<FictionBook")) || strings.EqualFold(ext, ".fb2") {
			return KindFB2
		}
		return KindUnknown
	}

	// A multi-byte rune may be cut at the end of the sniffed window
	for i := 0; i < utf8.UTFMax && len(head) > 0; i++ {
		if utf8.Valid(head) {
			return KindText
		}
		head = head[:len(head)-1]
	}
	return KindUnknown
}

func (e *Extractor) extractPDF(ctx context.Context, path string) (string, error) {
	doc, err := gxpdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer doc.Close()

	pages := min(doc.PageCount(), e.maxPages)
	parts := make([]string, 0, pages)
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := doc.ExtractTextFromPage(i)
		if err != nil {
			e.log.Warn("Skipping unreadable page", zap.Int("page", i), zap.Error(err))
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n"), nil
}

func extractFB2(path string) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return "", fmt.Errorf("failed to parse fb2: %w", err)
	}

	var parts []string
	for _, body := range doc.FindElements("//body") {
		// notes bodies hold footnotes, not narrative
		if body.SelectAttrValue("name", "") == "notes" {
			continue
		}
		for _, p := range body.FindElements(".//p") {
			if text := strings.TrimSpace(elementText(p)); text != "" {
				parts = append(parts, text)
			}
		}
	}
	return strings.Join(parts, "\n\n"), nil
}

func elementText(el *etree.Element) string {
	var b strings.Builder
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			b.WriteString(t.Data)
		case *etree.Element:
			b.WriteString(elementText(t))
		}
	}
	return b.String()
}

func extractText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read source: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: text is not valid UTF-8", application.ErrUnsupportedSource)
	}
	return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
}

// Cap bounds text to the character limit, ending on the last complete
// sentence before the limit when one exists.
func (e *Extractor) Cap(text string) string {
	if utf8.RuneCountInString(text) <= e.maxChars {
		return text
	}
	prefix := string([]rune(text)[:e.maxChars])
	if e.splitter == nil {
		return prefix
	}

	sents := e.splitter.Tokenize(prefix)
	if len(sents) < 2 {
		return prefix
	}
	var b strings.Builder
	for _, s := range sents[:len(sents)-1] {
		b.WriteString(s.Text)
	}
	return strings.TrimSpace(b.String())
}
