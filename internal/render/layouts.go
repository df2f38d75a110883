package render

import (
	"strconv"

	"vibary/internal/domain"
)

// Typographic storm: the headline drifts across the backdrop while the
// chapter title, highlight and text sit in a centered panel.
type stormStrategy struct{}

func (stormStrategy) Layout() domain.Layout { return domain.LayoutTypographicStorm }

func (stormStrategy) Render(scene domain.Scene, progress float64) *Node {
	p := scene.Visual.Palette.WithDefaults()

	backdrop := Text("backdrop", scene.HighlightPhrase).
		WithStyle(Style{Color: p.Text, Font: "serif", Size: 9, Bold: true, Uppercase: true, Opacity: 0.04}).
		WithTransform(Transform{TranslateX: Drift(progress)})

	entity := Entity(scene.Visual.VisualParams, p.Primary, p.Secondary, progress)
	entity.Style.Opacity = 0.4

	return Group("layout", ArrangeOverlay,
		backdrop,
		Group("panel", ArrangeStack,
			Text("chapter-title", scene.ChapterTitle).
				WithStyle(Style{Color: p.Background, Background: p.Accent, Font: "mono", Size: 1, Uppercase: true, Bold: true}),
			Highlight(scene.HighlightPhrase, Style{Color: p.Text, Font: "serif", Size: 6, Bold: true, Align: "center"}),
			Paragraphs(scene.Paragraphs, p.Accent, Style{Color: p.Text, Font: "sans", Size: 2, Align: "center", Opacity: 0.8}),
			entity,
		),
	)
}

// Entity focus: text column beside a large generative entity.
type entityFocusStrategy struct{}

func (entityFocusStrategy) Layout() domain.Layout { return domain.LayoutEntityFocus }

func (entityFocusStrategy) Render(scene domain.Scene, progress float64) *Node {
	p := scene.Visual.Palette.WithDefaults()

	return Group("layout", ArrangeRow,
		Group("text", ArrangeStack,
			Rule("accent-rule", p.Accent, 1),
			Highlight(scene.HighlightPhrase, Style{Color: p.Primary, Font: "serif", Size: 5}),
			Paragraphs(scene.Paragraphs, p.Accent, Style{Color: p.Text, Font: "sans", Size: 2, Opacity: 0.8}),
		),
		Group("visual", ArrangeOverlay,
			Entity(scene.Visual.VisualParams, p.Primary, p.Secondary, progress),
		),
	)
}

// Constellation nodes: the highlight and lead paragraph above a field of
// gallery nodes, alternately lowered and raised.
type constellationStrategy struct{}

func (constellationStrategy) Layout() domain.Layout { return domain.LayoutConstellationNodes }

func (constellationStrategy) Render(scene domain.Scene, _ float64) *Node {
	p := scene.Visual.Palette.WithDefaults()

	var lead, rest []string
	if len(scene.Paragraphs) > 0 {
		lead, rest = scene.Paragraphs[:1], scene.Paragraphs[1:]
	}

	nodes := Group("nodes", ArrangeRow)
	for i, item := range scene.Visual.GalleryItems {
		offset := -40.0
		if i%2 == 0 {
			offset = 40
		}
		nodes.Add(Group("gallery-item", ArrangeStack,
			&Node{Kind: KindCircle, Role: "node-dot", Radius: 4, Style: Style{Fill: p.Primary}},
			Text("gallery-title", item.Title).WithStyle(Style{Color: p.Text, Font: "serif", Size: 3, Bold: true}),
			Text("gallery-description", item.Description).WithStyle(Style{Color: p.Text, Font: "sans", Size: 1, Opacity: 0.6}),
		).WithTransform(Transform{TranslateY: offset}))
	}

	layout := Group("layout", ArrangeStack,
		Group("header", ArrangeStack,
			Highlight(scene.HighlightPhrase, Style{Color: p.Text, Font: "serif", Size: 5, Align: "center"}),
			Paragraphs(lead, p.Accent, Style{Color: p.Text, Font: "sans", Size: 2, Align: "center", Opacity: 0.7}),
		),
		nodes,
	)
	if len(rest) > 0 {
		notes := Paragraphs(rest, p.Accent, Style{Color: p.Text, Font: "sans", Size: 1, Opacity: 0.6})
		notes.Role = "annotations"
		layout.Add(notes)
	}
	return layout
}

// Split dynamic: text on one side, a slowly zooming visual panel on the
// other. The tree keeps reading order; the row is mirrored for display.
type splitStrategy struct{}

func (splitStrategy) Layout() domain.Layout { return domain.LayoutSplitDynamic }

func (splitStrategy) Render(scene domain.Scene, progress float64) *Node {
	p := scene.Visual.Palette.WithDefaults()

	visual := Group("visual", ArrangeOverlay,
		&Node{
			Kind:  KindRect,
			Role:  "panel-wash",
			Style: Style{Gradient: &Gradient{From: p.Primary, To: p.Background}, Opacity: 0.2},
		},
		Entity(scene.Visual.VisualParams, p.Secondary, p.Primary, progress),
	).WithTransform(Transform{Scale: Zoom(progress)})

	return Group("layout", ArrangeRowReverse,
		Group("text", ArrangeStack,
			Highlight(scene.HighlightPhrase, Style{Color: p.Text, Font: "serif", Size: 5}),
			Rule("accent-rule", p.Accent, 1),
			Paragraphs(scene.Paragraphs, p.Accent, Style{Color: p.Text, Font: "sans", Size: 2, Opacity: 0.8}),
		),
		visual,
	)
}

// Timeline process: numbered steps along a spine that fills with progress,
// with the entity as a sidecar.
type timelineStrategy struct{}

func (timelineStrategy) Layout() domain.Layout { return domain.LayoutTimelineProcess }

func (timelineStrategy) Render(scene domain.Scene, progress float64) *Node {
	p := scene.Visual.Palette.WithDefaults()

	spine := Rule("spine-progress", p.Primary, 1)
	spine.Height = TimelineFill(progress)

	steps := Group("steps", ArrangeStack)
	for i, text := range scene.Paragraphs {
		step := Group("step", ArrangeStack,
			Text("step-index", strconv.Itoa(i+1)).WithStyle(Style{Color: p.Primary, Font: "mono", Bold: true}),
		)
		if i == 0 {
			step.Add(Highlight(scene.HighlightPhrase, Style{Color: p.Text, Font: "serif", Size: 4}))
		}
		para := Paragraph(text, p.Accent)
		para.Style = Style{Color: p.Text, Font: "sans", Size: 2, Opacity: 0.8}
		step.Add(para)
		steps.Add(step)
	}
	if len(scene.Paragraphs) == 0 {
		steps.Add(Highlight(scene.HighlightPhrase, Style{Color: p.Text, Font: "serif", Size: 4}))
	}

	return Group("layout", ArrangeRow,
		Group("timeline", ArrangeOverlay,
			Rule("spine", p.Text, 0.1),
			spine,
			steps,
		),
		Group("sidecar", ArrangeOverlay,
			Entity(scene.Visual.VisualParams, p.Primary, p.Secondary, progress),
		),
	)
}

// Architectural lens: three columns with guide lines. A geometric study on
// the left, the text in the center, the scene's own entity framed on the right.
type architecturalStrategy struct{}

func (architecturalStrategy) Layout() domain.Layout { return domain.LayoutArchitecturalLens }

func (architecturalStrategy) Render(scene domain.Scene, progress float64) *Node {
	p := scene.Visual.Palette.WithDefaults()

	study := scene.Visual.VisualParams
	study.Shape = domain.ShapeGeometric

	framed := Entity(scene.Visual.VisualParams, p.Secondary, p.Accent, progress)
	frame := Group("frame", ArrangeOverlay, framed)
	frame.Style = Style{Stroke: p.Text, Dashed: true, Opacity: 0.2}

	return Group("layout", ArrangeOverlay,
		Group("guides", ArrangeOverlay,
			Rule("guide", p.Text, 0.1).WithTransform(Transform{TranslateX: 0.25}),
			Rule("guide", p.Text, 0.1).WithTransform(Transform{TranslateX: 0.75}),
		),
		Group("columns", ArrangeColumns3,
			Group("study", ArrangeStack,
				Text("mode-label", "Analysis Mode").WithStyle(Style{Color: p.Text, Font: "mono", Size: 1, Uppercase: true, Opacity: 0.5}),
				Text("title-word", FirstWord(scene.ChapterTitle)).WithStyle(Style{Color: p.Primary, Font: "serif", Size: 5, Bold: true}),
				Entity(study, p.Accent, p.Primary, progress),
			),
			Group("text", ArrangeStack,
				Highlight(scene.HighlightPhrase, Style{Color: p.Text, Font: "serif", Size: 4}),
				Paragraphs(scene.Paragraphs, p.Accent, Style{Color: p.Text, Font: "sans", Size: 2, Align: "justify", Opacity: 0.8}),
			),
			frame,
		),
	)
}
