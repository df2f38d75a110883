package render

import "vibary/internal/domain"

// Background renders the decorative layer behind a scene. Unknown patterns
// fall back to noise.
func Background(pattern domain.Pattern, palette domain.Palette) *Node {
	pattern = pattern.Resolve()
	n := &Node{
		Kind:    KindBackground,
		Role:    "background",
		Pattern: pattern,
		Style:   Style{Color: palette.Primary, Opacity: 0.15},
	}

	switch pattern {
	case domain.PatternGrid, domain.PatternCrosshairs:
		n.Cell = 40
	case domain.PatternDots, domain.PatternLines:
		n.Cell = 20
	case domain.PatternGradientMesh:
		n.Style.Gradient = &Gradient{From: palette.Primary, To: palette.Secondary, Radial: true}
	case domain.PatternNoise:
		n.Style.Opacity = 0.05
	}
	if pattern == domain.PatternLines {
		n.Transform = Transform{Rotate: 45}
	}
	return n
}

// Glow renders the ambient light following the pointer. x and y are
// fractions of the viewport.
func Glow(x, y float64, color string) *Node {
	return &Node{
		Kind:   KindGlow,
		Role:   "ambient-glow",
		At:     Point{X: Clamp01(x), Y: Clamp01(y)},
		Radius: 600,
		Style:  Style{Color: color, Opacity: 0.1},
	}
}
