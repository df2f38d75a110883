// Package htmlexport freezes a document into one self-contained HTML file.
package htmlexport

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"vibary/internal/adapters/svg"
	"vibary/internal/domain"
	"vibary/internal/ports"
	"vibary/internal/render"
)

//go:embed journey.html.tmpl
var journeyTemplate string

// FileSuffix ends every exported file name
const FileSuffix = "_vibary.html"

// snapshotProgress is the scroll pose frozen into exported entities
const snapshotProgress = 0.5

// Presentation names the static rendition of a scene
type Presentation string

const (
	PresentationStorm         Presentation = "storm"
	PresentationConstellation Presentation = "constellation"
	PresentationSplit         Presentation = "split"
)

// PresentationFor picks the static rendition of a scene. Constellations
// without gallery items have nothing to plot and use the split rendition.
func PresentationFor(scene domain.Scene) Presentation {
	switch scene.Visual.Layout {
	case domain.LayoutTypographicStorm:
		return PresentationStorm
	case domain.LayoutConstellationNodes:
		if len(scene.Visual.GalleryItems) > 0 {
			return PresentationConstellation
		}
	}
	return PresentationSplit
}

// Exporter implements ports.ArtifactExporter
type Exporter struct {
	tmpl *template.Template
	log  *zap.Logger
}

// Ensure Exporter implements ArtifactExporter
var _ ports.ArtifactExporter = (*Exporter)(nil)

// New parses the page template
func New(log *zap.Logger) (*Exporter, error) {
	if log == nil {
		log = zap.NewNop()
	}
	tmpl, err := template.New("journey").Funcs(sprig.HtmlFuncMap()).Parse(journeyTemplate)
	if err != nil {
		return nil, fmt.Errorf("unable to parse export template: %w", err)
	}
	return &Exporter{tmpl: tmpl, log: log.Named("export")}, nil
}

type paletteView struct {
	Primary    template.CSS
	Secondary  template.CSS
	Accent     template.CSS
	Background template.CSS
	Text       template.CSS
}

type sceneView struct {
	ID           string
	Presentation Presentation
	Chapter      string
	Marker       string
	Highlight    string
	Paragraphs   [][]domain.Run
	Lead         []domain.Run
	Annotations  [][]domain.Run
	Gallery      []domain.GalleryItem
	Palette      paletteView
	Pattern      template.CSS
	Entity       template.HTML
}

type pageView struct {
	Lang    string
	Meta    domain.Meta
	Palette paletteView
	Scenes  []sceneView
}

// Export renders doc as a standalone page. The same document always yields
// the same bytes.
func (e *Exporter) Export(doc *domain.Document) ([]byte, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	page := pageView{
		Lang:    language(doc.Meta.Language),
		Meta:    doc.Meta,
		Palette: safePalette(doc.Palette(0)),
		Scenes:  make([]sceneView, 0, len(doc.Screenplay)),
	}

	total := len(doc.Screenplay)
	for i, scene := range doc.Screenplay {
		palette := scene.Visual.Palette.WithDefaults()
		view := sceneView{
			ID:           scene.ID,
			Presentation: PresentationFor(scene),
			Chapter:      scene.ChapterTitle,
			Marker:       render.ChapterMarker(i, total),
			Highlight:    scene.HighlightPhrase,
			Gallery:      scene.Visual.GalleryItems,
			Palette:      safePalette(palette),
			Pattern:      patternCSS(scene.Visual.BackgroundPattern, palette),
		}
		for _, p := range scene.Paragraphs {
			view.Paragraphs = append(view.Paragraphs, domain.ParseEmphasis(p))
		}
		if len(view.Paragraphs) > 0 {
			view.Lead, view.Annotations = view.Paragraphs[0], view.Paragraphs[1:]
		}
		if view.Presentation != PresentationConstellation {
			entity := render.Entity(scene.Visual.VisualParams, palette.Secondary, palette.Primary, snapshotProgress)
			// Markup is generated from geometry with sanitized colors only
			view.Entity = template.HTML(svg.Entity(entity, svg.Options{Filters: true, IDPrefix: fmt.Sprintf("s%d", i)}))
		}
		page.Scenes = append(page.Scenes, view)
	}

	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("unable to render export: %w", err)
	}
	e.log.Debug("Document exported", zap.String("title", doc.Meta.Title), zap.Int("scenes", total), zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]`)

// FileName derives the artifact name from the title: transliterated,
// anything but ASCII letters and digits replaced with underscores.
func (e *Exporter) FileName(doc *domain.Document) string {
	return FileName(doc.Meta.Title)
}

// FileName is the title based naming rule used by the exporter
func FileName(title string) string {
	base := nonAlnum.ReplaceAllString(strings.ToLower(slug.Make(title)), "_")
	if strings.Trim(base, "_") == "" {
		base = "untitled"
	}
	return base + FileSuffix
}

func safePalette(p domain.Palette) paletteView {
	p = p.WithDefaults()
	return paletteView{
		Primary:    safeCSS(p.Primary, domain.DefaultPalette.Primary),
		Secondary:  safeCSS(p.Secondary, domain.DefaultPalette.Secondary),
		Accent:     safeCSS(p.Accent, domain.DefaultPalette.Accent),
		Background: safeCSS(p.Background, domain.DefaultPalette.Background),
		Text:       safeCSS(p.Text, domain.DefaultPalette.Text),
	}
}

func safeCSS(c, fallback string) template.CSS {
	// SafeColor admits only color syntax, so the value cannot break out of a declaration
	return template.CSS(svg.SafeColor(c, fallback))
}

// patternCSS returns the declarations drawing a scene's background pattern
func patternCSS(pattern domain.Pattern, p domain.Palette) template.CSS {
	layer := render.Background(pattern, p)
	c := string(safeCSS(p.Primary, domain.DefaultPalette.Primary))
	opacity := fmt.Sprintf("opacity: %g;", layer.Style.Opacity)

	var decl string
	switch layer.Pattern {
	case domain.PatternGrid:
		decl = fmt.Sprintf("background-image: linear-gradient(to right, %[1]s 1px, transparent 1px), linear-gradient(to bottom, %[1]s 1px, transparent 1px); background-size: %[2]gpx %[2]gpx;", c, layer.Cell)
	case domain.PatternDots:
		decl = fmt.Sprintf("background-image: radial-gradient(%s 1px, transparent 1px); background-size: %[2]gpx %[2]gpx;", c, layer.Cell)
	case domain.PatternLines:
		decl = fmt.Sprintf("background-image: repeating-linear-gradient(45deg, %s 0, %[1]s 1px, transparent 0, transparent 50%%); background-size: %[2]gpx %[2]gpx;", c, layer.Cell)
	case domain.PatternCrosshairs:
		decl = fmt.Sprintf("background-image: linear-gradient(%[1]s 1px, transparent 1px), linear-gradient(90deg, %[1]s 1px, transparent 1px); background-size: %[2]gpx %[2]gpx; background-position: center center;", c, layer.Cell)
	case domain.PatternGradientMesh:
		s := string(safeCSS(p.Secondary, domain.DefaultPalette.Secondary))
		decl = fmt.Sprintf("background-image: radial-gradient(at 20%% 30%%, %s 0, transparent 50%%), radial-gradient(at 80%% 70%%, %s 0, transparent 50%%);", c, s)
	default:
		decl = "background-image: repeating-radial-gradient(circle at 0 0, transparent 0, rgba(255,255,255,0.5) 1px, transparent 2px);"
	}
	return template.CSS(decl + " " + opacity)
}

var langRe = regexp.MustCompile(`^[A-Za-z]{2,3}(-[A-Za-z0-9]{2,8})*$`)

func language(tag string) string {
	if langRe.MatchString(tag) {
		return tag
	}
	return "en"
}
