package render

import (
	"fmt"

	"vibary/internal/domain"
)

// Strategy renders the body of a scene for one layout
type Strategy interface {
	Layout() domain.Layout
	Render(scene domain.Scene, progress float64) *Node
}

// DefaultLayout is used for any layout tag outside the registry
const DefaultLayout = domain.LayoutSplitDynamic

var registry = map[domain.Layout]Strategy{
	domain.LayoutTypographicStorm:   stormStrategy{},
	domain.LayoutEntityFocus:        entityFocusStrategy{},
	domain.LayoutConstellationNodes: constellationStrategy{},
	domain.LayoutSplitDynamic:       splitStrategy{},
	domain.LayoutTimelineProcess:    timelineStrategy{},
	domain.LayoutArchitecturalLens:  architecturalStrategy{},
}

// Resolve returns the strategy for layout. It never fails: unknown or
// missing tags resolve to the split-dynamic strategy.
func Resolve(layout domain.Layout) Strategy {
	if s, ok := registry[layout]; ok {
		return s
	}
	return registry[DefaultLayout]
}

// Strategies returns the registered strategies in declaration order
func Strategies() []Strategy {
	out := make([]Strategy, 0, len(domain.Layouts))
	for _, l := range domain.Layouts {
		out = append(out, registry[l])
	}
	return out
}

// ChapterMarker formats the index marker of scene i (zero based) of total
func ChapterMarker(i, total int) string {
	return fmt.Sprintf("CHAPTER %d / %d", i+1, total)
}

// RenderScene renders scene index of total at progress: palette, background,
// the chapter marker and the body drawn by the scene's layout strategy.
func RenderScene(scene domain.Scene, index, total int, progress float64) *Node {
	progress = Clamp01(progress)
	palette := scene.Visual.Palette.WithDefaults()
	strategy := Resolve(scene.Visual.Layout)

	n := Group("scene", ArrangeOverlay,
		Background(scene.Visual.BackgroundPattern, palette),
		Group("content", ArrangeStack,
			Text("chapter-marker", ChapterMarker(index, total)).
				WithStyle(Style{Color: palette.Text, Font: "mono", Opacity: 0.5, Uppercase: true}),
			strategy.Render(scene, progress),
		),
	)
	n.Text = scene.ID
	n.Style = Style{Background: palette.Background, Color: palette.Text}
	return n
}
