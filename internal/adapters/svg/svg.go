// Package svg serializes entity subtrees of the visual tree as SVG.
package svg

import (
	"fmt"
	"html"
	"math"
	"regexp"
	"strconv"
	"strings"

	"vibary/internal/render"
)

// Options tune the produced markup
type Options struct {
	// Size is the width and height attribute; 0 leaves the document unsized
	Size int
	// Filters enables blur filters. Rasterizers without filter support should leave it off.
	Filters bool
	// IDPrefix keeps gradient ids unique when several SVGs share a page
	IDPrefix string
}

var colorRe = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]{3,20}|(rgb|rgba|hsl|hsla)\([0-9.,%\s]+\))$`)

// SafeColor returns c when it is a plain CSS color, the fallback otherwise
func SafeColor(c, fallback string) string {
	c = strings.TrimSpace(c)
	if colorRe.MatchString(c) {
		return c
	}
	return fallback
}

type writer struct {
	opts  Options
	defs  strings.Builder
	body  strings.Builder
	nextG int
	nextF int
}

// Entity renders an entity node (render.KindEntity) as a standalone SVG document
func Entity(n *render.Node, opts Options) string {
	w := &writer{opts: opts}
	w.node(n)

	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 200"`)
	if opts.Size > 0 {
		fmt.Fprintf(&b, ` width="%d" height="%d"`, opts.Size, opts.Size)
	}
	b.WriteString(">")
	if w.defs.Len() > 0 {
		b.WriteString("<defs>")
		b.WriteString(w.defs.String())
		b.WriteString("</defs>")
	}
	b.WriteString(w.body.String())
	b.WriteString("</svg>")
	return b.String()
}

func (w *writer) node(n *render.Node) {
	if n == nil {
		return
	}
	attrs := w.common(n)

	switch n.Kind {
	case render.KindEntity, render.KindGroup:
		fmt.Fprintf(&w.body, "<g%s>", attrs)
		for _, c := range n.Children {
			w.node(c)
		}
		w.body.WriteString("</g>")

	case render.KindPolygon:
		pts := make([]string, len(n.Points))
		for i, p := range n.Points {
			pts[i] = num(p.X) + "," + num(p.Y)
		}
		fmt.Fprintf(&w.body, `<polygon points="%s"%s/>`, strings.Join(pts, " "), attrs)

	case render.KindCircle, render.KindBlob:
		fmt.Fprintf(&w.body, `<circle cx="%s" cy="%s" r="%s"%s/>`, num(n.At.X), num(n.At.Y), num(n.Radius), attrs)

	case render.KindRect:
		width, height := n.Width, n.Height
		if width == 0 && height == 0 {
			width, height = 200, 200
		}
		fmt.Fprintf(&w.body, `<rect x="%s" y="%s" width="%s" height="%s"%s/>`,
			num(n.At.X), num(n.At.Y), num(width), num(height), attrs)

	case render.KindLine:
		if len(n.Points) < 2 {
			return
		}
		a, b := n.Points[0], n.Points[1]
		fmt.Fprintf(&w.body, `<line x1="%s" y1="%s" x2="%s" y2="%s"%s/>`,
			num(a.X), num(a.Y), num(b.X), num(b.Y), attrs)
	}
}

// common builds the presentation attributes shared by all elements
func (w *writer) common(n *render.Node) string {
	var b strings.Builder

	if t := transform(n.Transform); t != "" {
		fmt.Fprintf(&b, ` transform="%s"`, t)
	}

	s := n.Style
	isShape := n.Kind != render.KindGroup && n.Kind != render.KindEntity
	switch {
	case s.Gradient != nil:
		fmt.Fprintf(&b, ` fill="url(#%s)"`, w.gradient(s.Gradient))
	case s.Fill != "":
		fmt.Fprintf(&b, ` fill="%s"`, attr(SafeColor(s.Fill, "#ffffff")))
	case isShape:
		b.WriteString(` fill="none"`)
	}
	if s.Stroke != "" {
		fmt.Fprintf(&b, ` stroke="%s"`, attr(SafeColor(s.Stroke, "#ffffff")))
		sw := s.StrokeWidth
		if sw == 0 {
			sw = 1
		}
		fmt.Fprintf(&b, ` stroke-width="%s"`, num(sw))
		if s.Dashed {
			b.WriteString(` stroke-dasharray="4 4"`)
		}
	}
	if s.Opacity > 0 && s.Opacity < 1 {
		fmt.Fprintf(&b, ` opacity="%s"`, num(s.Opacity))
	}
	if s.Blur > 0 && w.opts.Filters {
		id := fmt.Sprintf("%sf%d", w.opts.IDPrefix, w.nextF)
		w.nextF++
		fmt.Fprintf(&w.defs, `<filter id="%s"><feGaussianBlur stdDeviation="%s"/></filter>`, id, num(s.Blur/2))
		fmt.Fprintf(&b, ` filter="url(#%s)"`, id)
	}
	return b.String()
}

func (w *writer) gradient(g *render.Gradient) string {
	id := fmt.Sprintf("%sg%d", w.opts.IDPrefix, w.nextG)
	w.nextG++
	from := attr(SafeColor(g.From, "#ffffff"))
	to := attr(SafeColor(g.To, "#888888"))
	if g.Radial {
		fmt.Fprintf(&w.defs, `<radialGradient id="%s"><stop offset="0" stop-color="%s"/><stop offset="1" stop-color="%s"/></radialGradient>`, id, from, to)
	} else {
		fmt.Fprintf(&w.defs, `<linearGradient id="%s" x1="0" y1="0" x2="1" y2="1"><stop offset="0" stop-color="%s"/><stop offset="1" stop-color="%s"/></linearGradient>`, id, from, to)
	}
	return id
}

// transform maps a node transform onto SVG, pivoting on the entity center.
// Rotations around X and Y are projected as a squash along the other axis.
func transform(t render.Transform) string {
	var parts []string
	if t.TranslateX != 0 || t.TranslateY != 0 {
		parts = append(parts, fmt.Sprintf("translate(%s %s)", num(t.TranslateX), num(t.TranslateY)))
	}
	if t.Rotate != 0 {
		parts = append(parts, fmt.Sprintf("rotate(%s 100 100)", num(t.Rotate)))
	}

	sx, sy := t.ScaleOr(), t.ScaleOr()
	if t.RotateY != 0 {
		sx *= squash(t.RotateY)
	}
	if t.RotateX != 0 {
		sy *= squash(t.RotateX)
	}
	if sx != 1 || sy != 1 {
		parts = append(parts, fmt.Sprintf("translate(100 100) scale(%s %s) translate(-100 -100)", num(sx), num(sy)))
	}
	return strings.Join(parts, " ")
}

func squash(deg float64) float64 {
	return math.Max(math.Abs(math.Cos(deg*math.Pi/180)), 0.05)
}

func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

func attr(s string) string {
	return html.EscapeString(s)
}
