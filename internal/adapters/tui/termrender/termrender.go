// Package termrender draws the visual tree in a terminal with lipgloss.
//
// Terminal cells cannot scale or overlap, so the renderer keeps reading
// order and color while dropping what only makes sense on a canvas:
// faint decorations, washes and the overlay positions of layers.
// Entities are rasterized and drawn with half blocks.
package termrender

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"vibary/internal/adapters/raster"
	"vibary/internal/adapters/svg"
	"vibary/internal/domain"
	"vibary/internal/render"
)

const (
	// nodes fainter than this are decoration a terminal cannot show usefully
	minOpacity = 0.15

	defaultEntityCols = 24
	columnGap         = 3
)

// Renderer renders trees for a terminal of a given width
type Renderer struct {
	width      int
	entityCols int
	background string
}

// New creates a renderer for width columns on a page of the given background color
func New(width int, background string) *Renderer {
	return &Renderer{
		width:      max(width, 10),
		entityCols: defaultEntityCols,
		background: background,
	}
}

// WithEntitySize sets the entity width in columns; entities take half as many rows
func (r *Renderer) WithEntitySize(cols int) *Renderer {
	if cols >= 2 {
		r.entityCols = cols - cols%2
	}
	return r
}

// Render draws n and its children
func (r *Renderer) Render(n *render.Node) string {
	return r.node(n, r.width, render.Style{})
}

func (r *Renderer) node(n *render.Node, width int, inherited render.Style) string {
	if n == nil || width <= 0 {
		return ""
	}
	style := merge(inherited, n.Style)

	switch n.Kind {
	case render.KindGroup:
		return r.group(n, width, style)
	case render.KindText:
		if n.Text == "" || faint(style) {
			return ""
		}
		text := n.Text
		if style.Uppercase {
			text = strings.ToUpper(text)
		}
		return r.textStyle(style, width).Render(text)
	case render.KindRichText:
		return r.richText(n, width, style)
	case render.KindRule:
		return r.rule(n, width, style)
	case render.KindEntity:
		return r.entity(n, width)
	case render.KindCircle:
		if style.Fill == "" {
			return ""
		}
		return lipgloss.NewStyle().Foreground(r.color(style.Fill, style.Opacity)).Render("●")
	}
	// Backgrounds, glows and washes are drawn by Pattern and Glow
	return ""
}

func (r *Renderer) group(n *render.Node, width int, style render.Style) string {
	// group styles describe their content, not a box
	inherit := style
	inherit.Background = ""

	switch n.Arrange {
	case render.ArrangeRow, render.ArrangeRowReverse, render.ArrangeColumns3:
		children := n.Children
		if n.Arrange == render.ArrangeRowReverse {
			children = reversed(children)
		}
		if len(children) == 0 {
			return ""
		}
		colWidth := (width - columnGap*(len(children)-1)) / len(children)
		if colWidth < 12 {
			// too narrow for columns, fall back to reading order
			return r.stack(n.Children, width, inherit, "\n")
		}
		var cols []string
		gap := strings.Repeat(" ", columnGap)
		for i, c := range children {
			block := r.node(c, colWidth, inherit)
			if c.Transform.TranslateY > 0 {
				block = "\n" + block
			}
			block = lipgloss.NewStyle().Width(colWidth).Render(block)
			if i > 0 {
				cols = append(cols, gap)
			}
			cols = append(cols, block)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	default:
		sep := "\n"
		if n.Role == "paragraphs" || n.Role == "annotations" || n.Role == "content" || n.Role == "panel" {
			sep = "\n\n"
		}
		return r.stack(n.Children, width, inherit, sep)
	}
}

func (r *Renderer) stack(children []*render.Node, width int, style render.Style, sep string) string {
	var parts []string
	for _, c := range children {
		if s := r.node(c, width, style); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep)
}

func (r *Renderer) richText(n *render.Node, width int, style render.Style) string {
	var b strings.Builder
	for _, run := range n.Runs {
		s := lipgloss.NewStyle().Foreground(r.color(style.Color, style.Opacity))
		if run.Color != "" {
			s = lipgloss.NewStyle().Foreground(r.color(run.Color, 1))
		}
		if run.Bold {
			s = s.Bold(true)
		}
		b.WriteString(s.Render(run.Text))
	}
	if b.Len() == 0 {
		return ""
	}
	return lipgloss.NewStyle().Width(width).Align(align(style.Align)).Render(b.String())
}

func (r *Renderer) rule(n *render.Node, width int, style render.Style) string {
	if faint(style) {
		return ""
	}
	line := strings.Repeat("─", width)
	if n.Height > 0 {
		// a partially filled rule, as on the timeline spine
		filled := int(render.Clamp01(n.Height) * float64(width))
		line = strings.Repeat("━", filled) + strings.Repeat("─", width-filled)
	}
	return lipgloss.NewStyle().Foreground(r.color(style.Color, style.Opacity)).Render(line)
}

func (r *Renderer) entity(n *render.Node, width int) string {
	cols := min(r.entityCols, width-width%2)
	if cols < 2 {
		return ""
	}
	img, err := raster.Rasterize([]byte(svg.Entity(n, svg.Options{Size: cols})), cols, r.background)
	if err != nil {
		return ""
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, HalfBlocks(img))
}

// HalfBlocks draws img with one cell per two vertical pixels
func HalfBlocks(img image.Image) string {
	bounds := img.Bounds()
	var lines []string
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		var b strings.Builder
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			top, _ := colorful.MakeColor(img.At(x, y))
			bottom := top
			if y+1 < bounds.Max.Y {
				bottom, _ = colorful.MakeColor(img.At(x, y+1))
			}
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top.Clamped().Hex())).
				Background(lipgloss.Color(bottom.Clamped().Hex())).
				Render("▀"))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// Pattern draws a background layer as a one line band of width columns
func (r *Renderer) Pattern(n *render.Node) string {
	if n == nil || n.Kind != render.KindBackground {
		return ""
	}
	var unit string
	switch n.Pattern {
	case domain.PatternGrid:
		unit = "┼───"
	case domain.PatternDots:
		unit = "· "
	case domain.PatternLines:
		unit = "╱"
	case domain.PatternCrosshairs:
		unit = "   +"
	case domain.PatternGradientMesh:
		return r.mesh(n)
	default:
		unit = "░"
	}
	line := strings.Repeat(unit, r.width/len([]rune(unit))+1)
	line = string([]rune(line)[:r.width])
	// patterns are faint on screen; lift them enough to be seen in a terminal
	return lipgloss.NewStyle().Foreground(r.color(n.Style.Color, max(n.Style.Opacity, 0.3))).Render(line)
}

func (r *Renderer) mesh(n *render.Node) string {
	if n.Style.Gradient == nil {
		return strings.Repeat(" ", r.width)
	}
	from, err1 := colorful.Hex(n.Style.Gradient.From)
	to, err2 := colorful.Hex(n.Style.Gradient.To)
	bg, err3 := colorful.Hex(r.background)
	if err1 != nil || err2 != nil || err3 != nil {
		return strings.Repeat(" ", r.width)
	}
	var b strings.Builder
	for x := 0; x < r.width; x++ {
		c := from.BlendLab(to, float64(x)/float64(max(r.width-1, 1)))
		c = bg.BlendLab(c, 0.3)
		b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(c.Clamped().Hex())).Render(" "))
	}
	return b.String()
}

// Glow draws the ambient light as a band lit around the pointer column
func (r *Renderer) Glow(n *render.Node) string {
	if n == nil || n.Kind != render.KindGlow {
		return ""
	}
	light, err := colorful.Hex(n.Style.Color)
	bg, err2 := colorful.Hex(r.background)
	if err != nil || err2 != nil {
		return strings.Repeat(" ", r.width)
	}
	var b strings.Builder
	for x := 0; x < r.width; x++ {
		d := float64(x)/float64(max(r.width-1, 1)) - n.At.X
		if d < 0 {
			d = -d
		}
		t := max(0, 1-d*3) * min(1, n.Style.Opacity*4)
		c := bg.BlendLab(light, t)
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Clamped().Hex())).Render("▔"))
	}
	return b.String()
}

// Blend mixes fg over bg at opacity and returns the hex result. Colors that
// do not parse are returned unchanged.
func Blend(fg, bg string, opacity float64) string {
	if opacity <= 0 || opacity >= 1 {
		return fg
	}
	f, err := colorful.Hex(fg)
	if err != nil {
		return fg
	}
	b, err := colorful.Hex(bg)
	if err != nil {
		return fg
	}
	return b.BlendRgb(f, opacity).Clamped().Hex()
}

func (r *Renderer) color(c string, opacity float64) lipgloss.Color {
	return lipgloss.Color(Blend(c, r.background, opacity))
}

func (r *Renderer) textStyle(style render.Style, width int) lipgloss.Style {
	s := lipgloss.NewStyle().
		Width(width).
		Align(align(style.Align)).
		Bold(style.Bold || style.Size >= 5).
		Italic(style.Italic)
	if style.Color != "" {
		s = s.Foreground(r.color(style.Color, style.Opacity))
	}
	if style.Background != "" {
		// a label: size to the text instead of the column
		s = s.UnsetWidth().Background(lipgloss.Color(style.Background)).Padding(0, 1)
	}
	return s
}

func merge(parent, child render.Style) render.Style {
	out := child
	if out.Color == "" {
		out.Color = parent.Color
	}
	if out.Opacity == 0 {
		out.Opacity = parent.Opacity
	}
	if out.Align == "" {
		out.Align = parent.Align
	}
	return out
}

func faint(s render.Style) bool {
	return s.Opacity > 0 && s.Opacity < minOpacity
}

func align(a string) lipgloss.Position {
	switch a {
	case "center":
		return lipgloss.Center
	case "right":
		return lipgloss.Right
	default:
		return lipgloss.Left
	}
}

func reversed(nodes []*render.Node) []*render.Node {
	out := make([]*render.Node, len(nodes))
	for i, n := range nodes {
		out[len(nodes)-1-i] = n
	}
	return out
}
