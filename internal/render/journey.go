package render

import (
	"fmt"

	"vibary/internal/domain"
)

// ScrollState is the display state derived from scrolling and pointer movement
type ScrollState struct {
	// Progress holds one value per scene, 0 before it enters and 1 after it leaves
	Progress []float64
	// Active is the index of the scene owning navigation and theme
	Active int
	// PointerX and PointerY are fractions of the viewport
	PointerX float64
	PointerY float64
}

// ProgressOf returns the progress of scene i, 0 when unknown
func (s ScrollState) ProgressOf(i int) float64 {
	if i < 0 || i >= len(s.Progress) {
		return 0
	}
	return Clamp01(s.Progress[i])
}

// Journey renders the full frame for doc. It returns nil when the state
// carries no document.
func Journey(doc *domain.Document, st ScrollState, state domain.AppState) *Node {
	if doc == nil || !state.HasDocument() || len(doc.Screenplay) == 0 {
		return nil
	}

	active := max(0, min(st.Active, len(doc.Screenplay)-1))
	palette := doc.Palette(active)
	activeScene := doc.Screenplay[active]

	layer := Background(activeScene.Visual.BackgroundPattern, palette)
	layer.Role = "journey-background"

	root := Group("journey", ArrangeStack,
		layer,
		Glow(st.PointerX, st.PointerY, palette.Primary),
		Navigation(doc, active),
		Hero(doc),
	)
	root.Style = Style{Background: palette.Background, Color: palette.Text}

	total := len(doc.Screenplay)
	scenes := Group("scenes", ArrangeStack)
	for i, scene := range doc.Screenplay {
		scenes.Add(RenderScene(scene, i, total, st.ProgressOf(i)))
	}
	root.Add(scenes, Footer(doc))

	switch state {
	case domain.StateTransitioning:
		root.Add(Text("transition-veil", doc.Meta.Title).WithStyle(Style{Color: palette.Text, Opacity: 0.6}))
	case domain.StateUpdating:
		root.Add(Text("status", "Reimagining...").WithStyle(Style{Color: palette.Accent, Font: "mono"}))
	}
	return root
}

// Navigation renders the brand and the table of contents with the active chapter marked
func Navigation(doc *domain.Document, active int) *Node {
	palette := doc.Palette(active)
	toc := Group("toc", ArrangeStack)
	for i, scene := range doc.Screenplay {
		entry := Group("toc-entry", ArrangeStack,
			Text("toc-chapter", fmt.Sprintf("CHAPTER %d", i+1)),
			Text("toc-title", scene.ChapterTitle),
		)
		entry.Style = Style{Color: palette.Text, Opacity: 0.5, Font: "mono"}
		if i == active {
			entry.Style = Style{Color: palette.Primary, Bold: true, Font: "mono"}
		}
		toc.Add(entry)
	}
	return Group("nav", ArrangeRow,
		Text("brand", doc.Meta.Title).WithStyle(Style{Color: palette.Text, Font: "serif", Bold: true}),
		toc,
	)
}

// Hero renders the opening panel of the journey
func Hero(doc *domain.Document) *Node {
	first := doc.Palette(0)
	return Group("hero", ArrangeOverlay,
		&Node{Kind: KindGlow, Role: "aurora", At: Point{X: 0.5, Y: 0.5}, Radius: 800,
			Style: Style{Color: first.Primary, Opacity: 0.2}},
		Group("hero-text", ArrangeStack,
			Text("hero-title", doc.Meta.Title).WithStyle(Style{Color: first.Text, Font: "serif", Size: 9, Bold: true, Align: "center"}),
			Text("hero-author", doc.Meta.Author).WithStyle(Style{Color: first.Text, Font: "mono", Size: 1, Uppercase: true, Opacity: 0.6, Align: "center"}),
			Text("hero-essence", doc.Meta.Essence).WithStyle(Style{Color: first.Text, Font: "serif", Size: 3, Italic: true, Opacity: 0.8, Align: "center"}),
			Text("scroll-hint", "Scroll to begin").WithStyle(Style{Color: first.Text, Font: "mono", Size: 1, Opacity: 0.4, Align: "center"}),
		),
	)
}

// Footer renders the closing panel with the reset action
func Footer(doc *domain.Document) *Node {
	last := doc.Palette(len(doc.Screenplay) - 1)
	return Group("footer", ArrangeStack,
		Text("end-mark", "End of Volume").WithStyle(Style{Color: last.Text, Font: "mono", Uppercase: true, Opacity: 0.5, Align: "center"}),
		Text("footer-title", doc.Meta.Title).WithStyle(Style{Color: last.Text, Font: "serif", Size: 5, Align: "center"}),
		Text("reset-action", "Open New Book").WithStyle(Style{Color: last.Background, Background: last.Text, Font: "mono", Bold: true, Align: "center"}),
	)
}
