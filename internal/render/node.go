// Package render builds the retained visual tree of the journey.
//
// Everything here is a pure function of its inputs: a scene and a scroll
// progress in, a *Node out. Backends (terminal, SVG, HTML) walk the tree;
// none of them feed anything back.
package render

import "vibary/internal/domain"

// Kind is the primitive a node stands for
type Kind string

const (
	KindGroup      Kind = "group"
	KindText       Kind = "text"
	KindRichText   Kind = "rich_text"
	KindEntity     Kind = "entity"
	KindPolygon    Kind = "polygon"
	KindCircle     Kind = "circle"
	KindRect       Kind = "rect"
	KindBlob       Kind = "blob"
	KindLine       Kind = "line"
	KindRule       Kind = "rule"
	KindBackground Kind = "background"
	KindGlow       Kind = "glow"
)

// Arrange tells a backend how to place a group's children
type Arrange string

const (
	ArrangeStack      Arrange = "stack"
	ArrangeRow        Arrange = "row"
	ArrangeRowReverse Arrange = "row_reverse"
	ArrangeColumns3   Arrange = "columns_3"
	ArrangeOverlay    Arrange = "overlay"
)

// Point is a position in entity space (a 200x200 box centered on 100,100)
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Center of the entity coordinate space
var Center = Point{X: 100, Y: 100}

// Gradient is a two-stop color ramp
type Gradient struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Radial bool   `json:"radial,omitempty"`
}

// Style carries the visual attributes of a node
type Style struct {
	Color       string    `json:"color,omitempty"`
	Background  string    `json:"background,omitempty"`
	Fill        string    `json:"fill,omitempty"`
	Stroke      string    `json:"stroke,omitempty"`
	StrokeWidth float64   `json:"strokeWidth,omitempty"`
	Dashed      bool      `json:"dashed,omitempty"`
	Gradient    *Gradient `json:"gradient,omitempty"`
	Opacity     float64   `json:"opacity,omitempty"`
	Blur        float64   `json:"blur,omitempty"`
	Font        string    `json:"font,omitempty"`
	Size        int       `json:"size,omitempty"`
	Bold        bool      `json:"bold,omitempty"`
	Italic      bool      `json:"italic,omitempty"`
	Uppercase   bool      `json:"uppercase,omitempty"`
	Align       string    `json:"align,omitempty"`
}

// Transform positions a node relative to its parent. Rotations are degrees.
type Transform struct {
	Rotate     float64 `json:"rotate,omitempty"`
	RotateX    float64 `json:"rotateX,omitempty"`
	RotateY    float64 `json:"rotateY,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
	TranslateX float64 `json:"translateX,omitempty"`
	TranslateY float64 `json:"translateY,omitempty"`
}

// ScaleOr returns the scale, treating zero as identity
func (t Transform) ScaleOr() float64 {
	if t.Scale == 0 {
		return 1
	}
	return t.Scale
}

// TextRun is a styled piece of rich text
type TextRun struct {
	Text  string `json:"text"`
	Color string `json:"color,omitempty"`
	Bold  bool   `json:"bold,omitempty"`
}

// Node is one element of the visual tree
type Node struct {
	Kind      Kind      `json:"kind"`
	Role      string    `json:"role,omitempty"`
	Arrange   Arrange   `json:"arrange,omitempty"`
	Text      string    `json:"text,omitempty"`
	Runs      []TextRun `json:"runs,omitempty"`
	Style     Style     `json:"style,omitempty"`
	Transform Transform `json:"transform,omitempty"`

	// Geometry, in entity space
	Points []Point `json:"points,omitempty"`
	At     Point   `json:"at,omitempty"`
	Radius float64 `json:"radius,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Animation names a continuous, time based effect the backend may apply
	Animation string `json:"animation,omitempty"`
	// Pattern and Cell describe a background layer
	Pattern domain.Pattern `json:"pattern,omitempty"`
	Cell    float64        `json:"cell,omitempty"`

	Children []*Node `json:"children,omitempty"`
}

// Group creates a container node
func Group(role string, arrange Arrange, children ...*Node) *Node {
	return &Node{Kind: KindGroup, Role: role, Arrange: arrange, Children: compact(children)}
}

// Text creates a single-run text node
func Text(role, text string) *Node {
	return &Node{Kind: KindText, Role: role, Text: text}
}

// Rule creates a horizontal or vertical divider
func Rule(role, color string, opacity float64) *Node {
	return &Node{Kind: KindRule, Role: role, Style: Style{Color: color, Opacity: opacity}}
}

// WithStyle sets the style and returns the node
func (n *Node) WithStyle(s Style) *Node {
	n.Style = s
	return n
}

// WithTransform sets the transform and returns the node
func (n *Node) WithTransform(t Transform) *Node {
	n.Transform = t
	return n
}

// Add appends non-nil children and returns the node
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, compact(children)...)
	return n
}

// Find returns the first node in depth-first order with the given role
func (n *Node) Find(role string) *Node {
	if n == nil {
		return nil
	}
	if n.Role == role {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(role); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every node in depth-first order with the given role
func (n *Node) FindAll(role string) []*Node {
	var out []*Node
	n.Walk(func(c *Node) {
		if c.Role == role {
			out = append(out, c)
		}
	})
	return out
}

// Walk visits n and its descendants depth first
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// PlainText concatenates the text of n and its descendants in reading order
func (n *Node) PlainText() string {
	var out []byte
	n.Walk(func(c *Node) {
		switch c.Kind {
		case KindText:
			out = append(out, c.Text...)
			out = append(out, '\n')
		case KindRichText:
			for _, r := range c.Runs {
				out = append(out, r.Text...)
			}
			out = append(out, '\n')
		}
	})
	return string(out)
}

func compact(nodes []*Node) []*Node {
	out := nodes[:0:0]
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}
