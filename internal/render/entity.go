package render

import (
	"math"

	"vibary/internal/domain"
)

// EntityVariant is the drawing family an entity resolves to
type EntityVariant string

const (
	VariantSpiky     EntityVariant = "spiky"
	VariantGeometric EntityVariant = "geometric"
	VariantFluid     EntityVariant = "fluid"
	VariantDefault   EntityVariant = "default"
)

// ResolveVariant maps a shape onto the variant drawing it. Shapes without a
// dedicated drawing, and unknown shapes, use the default variant.
func ResolveVariant(shape domain.Shape) EntityVariant {
	switch shape {
	case domain.ShapeSpiky:
		return VariantSpiky
	case domain.ShapeGeometric:
		return VariantGeometric
	case domain.ShapeFluid:
		return VariantFluid
	default:
		return VariantDefault
	}
}

const defaultSpikes = 12

// SpikeCount returns how many spikes a spiky entity has for a complexity
// on the 1..10 scale. Complexity 4, or none, gives 12.
func SpikeCount(complexity float64) int {
	if complexity <= 0 || math.IsNaN(complexity) {
		return defaultSpikes
	}
	n := 6 + 2*(int(math.Round(complexity))-1)
	return max(6, min(n, 24))
}

// Entity draws the generative figure of a scene at the given progress.
// The result depends only on its arguments.
func Entity(params domain.VisualParams, color, secondary string, progress float64) *Node {
	progress = Clamp01(progress)
	rotate := Rotation(progress, params.Speed)
	scale := Pulse(progress)

	variant := ResolveVariant(params.Shape)
	root := &Node{
		Kind:      KindEntity,
		Role:      "entity",
		Text:      string(variant),
		Animation: string(params.Motion),
		Width:     200,
		Height:    200,
	}

	switch variant {
	case VariantSpiky:
		root.Transform = Transform{Rotate: rotate, Scale: scale}
		root.Add(spikes(SpikeCount(params.Complexity), color, secondary))
		root.Add(&Node{
			Kind:   KindCircle,
			Role:   "core",
			At:     Center,
			Radius: 30,
			Style:  Style{Fill: color, Blur: 10},
		})

	case VariantGeometric:
		root.Transform = Transform{RotateX: rotate, RotateY: rotate}
		root.Add(
			square("frame", 64, Style{Stroke: color, StrokeWidth: 2}),
			square("inner-frame", 48, Style{Stroke: secondary, StrokeWidth: 1, Opacity: 0.5}),
			square("diamond", 32, Style{Stroke: color, StrokeWidth: 1, Opacity: 0.3}).
				WithTransform(Transform{Rotate: 45}),
			square("core", 16, Style{Gradient: &Gradient{From: color, To: secondary}}).
				WithTransform(Transform{Scale: scale}),
		)

	case VariantFluid:
		root.Transform = Transform{Rotate: rotate}
		root.Add(&Node{
			Kind:      KindBlob,
			Role:      "blob",
			At:        Center,
			Radius:    80,
			Animation: "morph",
			Style: Style{
				Gradient: &Gradient{From: color, To: secondary, Radial: true},
				Blur:     20,
				Opacity:  0.7,
			},
		})

	default:
		root.Add(
			&Node{
				Kind:      KindCircle,
				Role:      "glow",
				At:        Center,
				Radius:    64,
				Style:     Style{Fill: color, Opacity: 0.3, Blur: 20},
				Transform: Transform{Scale: scale},
			},
			Group("rings", ArrangeOverlay,
				&Node{Kind: KindCircle, Role: "ring", At: Center, Radius: 48,
					Style: Style{Stroke: color, StrokeWidth: 0.5, Dashed: true}},
				&Node{Kind: KindCircle, Role: "ring", At: Center, Radius: 30,
					Style: Style{Stroke: secondary, StrokeWidth: 1}},
				&Node{Kind: KindLine, Role: "crosshair", Points: []Point{{100, 20}, {100, 180}},
					Style: Style{Stroke: color, StrokeWidth: 0.2}},
				&Node{Kind: KindLine, Role: "crosshair", Points: []Point{{20, 100}, {180, 100}},
					Style: Style{Stroke: color, StrokeWidth: 0.2}},
			),
		)
		root.Children[1].Animation = "spin"
	}

	return root
}

func spikes(count int, color, secondary string) *Node {
	g := Group("spikes", ArrangeOverlay)
	step := 360 / float64(count)
	for i := 0; i < count; i++ {
		g.Add(&Node{
			Kind:      KindPolygon,
			Role:      "spike",
			Points:    []Point{{100, 100}, {110, 20}, {100, 0}, {90, 20}},
			Transform: Transform{Rotate: float64(i) * step},
			Style: Style{
				Gradient: &Gradient{From: color, To: secondary},
				Opacity:  0.8,
			},
		})
	}
	return g
}

// square returns a square of the given half size centered in entity space
func square(role string, half float64, style Style) *Node {
	return &Node{
		Kind:   KindRect,
		Role:   role,
		At:     Point{X: Center.X - half, Y: Center.Y - half},
		Width:  2 * half,
		Height: 2 * half,
		Style:  style,
	}
}
