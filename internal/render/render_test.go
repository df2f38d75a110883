package render

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"

	"vibary/internal/domain"
)

func testScene(layout domain.Layout) domain.Scene {
	return domain.Scene{
		ID:              "s1",
		ChapterTitle:    "The Long Winter",
		Paragraphs:      []string{"Snow fell on *everything*.", "Then it stopped."},
		HighlightPhrase: "Silence has weight",
		Visual: domain.VisualConfig{
			Layout:            layout,
			BackgroundPattern: domain.PatternGrid,
			Palette: domain.Palette{
				Primary:    "#e11d48",
				Secondary:  "#4c0519",
				Accent:     "#fda4af",
				Background: "#0a0a0a",
				Text:       "#fafafa",
			},
			VisualParams: domain.VisualParams{Shape: domain.ShapeSpiky, Motion: domain.MotionRotate, Complexity: 4, Speed: 2},
			GalleryItems: []domain.GalleryItem{
				{Title: "Stove", Description: "Warmth"},
				{Title: "Window", Description: "Frost"},
				{Title: "Door", Description: "Shut"},
			},
		},
	}
}

func TestResolve_Totality(t *testing.T) {
	tests := []struct {
		layout domain.Layout
		want   domain.Layout
	}{
		{domain.LayoutTypographicStorm, domain.LayoutTypographicStorm},
		{domain.LayoutEntityFocus, domain.LayoutEntityFocus},
		{domain.LayoutConstellationNodes, domain.LayoutConstellationNodes},
		{domain.LayoutSplitDynamic, domain.LayoutSplitDynamic},
		{domain.LayoutTimelineProcess, domain.LayoutTimelineProcess},
		{domain.LayoutArchitecturalLens, domain.LayoutArchitecturalLens},
		{"", domain.LayoutSplitDynamic},
		{"holographic_swirl", domain.LayoutSplitDynamic},
		{"TYPOGRAPHIC_STORM", domain.LayoutSplitDynamic},
	}

	for _, tt := range tests {
		t.Run(string(tt.layout), func(t *testing.T) {
			s := Resolve(tt.layout)
			if s == nil {
				t.Fatal("Resolve returned nil")
			}
			if s.Layout() != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.layout, s.Layout(), tt.want)
			}
		})
	}
}

func TestStrategies_CoverEveryLayout(t *testing.T) {
	got := Strategies()
	if len(got) != len(domain.Layouts) {
		t.Fatalf("strategies = %d, want %d", len(got), len(domain.Layouts))
	}
	for i, s := range got {
		if s.Layout() != domain.Layouts[i] {
			t.Errorf("strategy %d = %q, want %q", i, s.Layout(), domain.Layouts[i])
		}
	}
}

func TestRotation(t *testing.T) {
	tests := []struct {
		progress, speed, want float64
	}{
		{0.25, 2, 180},
		{0, 3, 0},
		{1, 1, 360},
		{0.5, 0, 0},
		{2, 1, 360},
		{-1, 1, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("p=%v,s=%v", tt.progress, tt.speed), func(t *testing.T) {
			if got := Rotation(tt.progress, tt.speed); got != tt.want {
				t.Errorf("Rotation(%v, %v) = %v, want %v", tt.progress, tt.speed, got, tt.want)
			}
		})
	}
}

func TestEntityRotationExact(t *testing.T) {
	params := domain.VisualParams{Speed: 2}
	for _, shape := range []domain.Shape{domain.ShapeSpiky, domain.ShapeFluid} {
		params.Shape = shape
		n := Entity(params, "#fff", "#000", 0.25)
		if n.Transform.Rotate != 180 {
			t.Errorf("%s rotation = %v, want 180", shape, n.Transform.Rotate)
		}
	}

	params.Shape = domain.ShapeGeometric
	n := Entity(params, "#fff", "#000", 0.25)
	if n.Transform.RotateX != 180 || n.Transform.RotateY != 180 {
		t.Errorf("geometric rotation = (%v, %v), want (180, 180)", n.Transform.RotateX, n.Transform.RotateY)
	}
}

func TestPulse(t *testing.T) {
	const eps = 1e-9
	if Pulse(0) != 1 || Pulse(1) != 1 {
		t.Errorf("Pulse ends = %v, %v, want 1", Pulse(0), Pulse(1))
	}
	if math.Abs(Pulse(0.5)-1.1) > eps {
		t.Errorf("Pulse(0.5) = %v, want 1.1", Pulse(0.5))
	}

	for i := 0; i <= 100; i++ {
		p := float64(i) / 100
		if math.Abs(Pulse(p)-Pulse(1-p)) > eps {
			t.Fatalf("Pulse not symmetric at %v: %v vs %v", p, Pulse(p), Pulse(1-p))
		}
	}

	prev := Pulse(0)
	for i := 1; i <= 50; i++ {
		cur := Pulse(float64(i) / 100)
		if cur < prev {
			t.Fatalf("Pulse decreasing on first half at %v", float64(i)/100)
		}
		prev = cur
	}
	for i := 51; i <= 100; i++ {
		cur := Pulse(float64(i) / 100)
		if cur > prev {
			t.Fatalf("Pulse increasing on second half at %v", float64(i)/100)
		}
		prev = cur
	}
}

func TestInterpolate(t *testing.T) {
	in := []float64{0.2, 0.8}
	out := []float64{0, 1}
	tests := []struct {
		x, want float64
	}{
		{0, 0},
		{0.2, 0},
		{0.5, 0.5},
		{0.8, 1},
		{1, 1},
	}
	for _, tt := range tests {
		if got := Interpolate(tt.x, in, out); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Interpolate(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
	if got := Interpolate(0.5, nil, nil); got != 0 {
		t.Errorf("Interpolate with no stops = %v, want 0", got)
	}
}

func TestResolveVariant(t *testing.T) {
	tests := []struct {
		shape domain.Shape
		want  EntityVariant
	}{
		{domain.ShapeSpiky, VariantSpiky},
		{domain.ShapeGeometric, VariantGeometric},
		{domain.ShapeFluid, VariantFluid},
		{domain.ShapeOrganic, VariantDefault},
		{domain.ShapeScattered, VariantDefault},
		{domain.ShapeArchitectural, VariantDefault},
		{"tesseract", VariantDefault},
		{"", VariantDefault},
	}
	for _, tt := range tests {
		if got := ResolveVariant(tt.shape); got != tt.want {
			t.Errorf("ResolveVariant(%q) = %q, want %q", tt.shape, got, tt.want)
		}
	}
}

func TestSpikeCount(t *testing.T) {
	tests := []struct {
		complexity float64
		want       int
	}{
		{0, 12},
		{-3, 12},
		{math.NaN(), 12},
		{1, 6},
		{4, 12},
		{10, 24},
		{50, 24},
	}
	for _, tt := range tests {
		if got := SpikeCount(tt.complexity); got != tt.want {
			t.Errorf("SpikeCount(%v) = %d, want %d", tt.complexity, got, tt.want)
		}
	}

	n := Entity(domain.VisualParams{Shape: domain.ShapeSpiky, Complexity: 4}, "#fff", "#000", 0)
	spikes := n.FindAll("spike")
	if len(spikes) != 12 {
		t.Fatalf("spikes = %d, want 12", len(spikes))
	}
	if spikes[3].Transform.Rotate != 90 {
		t.Errorf("spike 3 rotation = %v, want 90", spikes[3].Transform.Rotate)
	}
}

func TestEntity_DefaultVariant(t *testing.T) {
	n := Entity(domain.VisualParams{Shape: "unknown", Motion: domain.MotionPulse}, "#abc", "#def", 0.5)
	if n.Text != string(VariantDefault) {
		t.Errorf("variant = %q, want default", n.Text)
	}
	glow := n.Find("glow")
	if glow == nil || math.Abs(glow.Transform.Scale-1.1) > 1e-9 {
		t.Errorf("glow pulse = %+v, want scale 1.1", glow)
	}
	if rings := n.FindAll("ring"); len(rings) != 2 || !rings[0].Style.Dashed || rings[0].Radius != 48 {
		t.Errorf("rings = %+v", rings)
	}
	if n.Animation != "pulse" {
		t.Errorf("animation = %q, want motion hint", n.Animation)
	}
}

func TestRenderScene_ReadingOrder(t *testing.T) {
	for _, layout := range domain.Layouts {
		t.Run(string(layout), func(t *testing.T) {
			scene := testScene(layout)
			n := RenderScene(scene, 1, 4, 0.5)

			marker := n.Find("chapter-marker")
			if marker == nil || marker.Text != "CHAPTER 2 / 4" {
				t.Fatalf("chapter marker = %+v", marker)
			}
			if n.Find("highlight") == nil {
				t.Error("highlight missing")
			}

			text := n.PlainText()
			iMarker := strings.Index(text, "CHAPTER 2 / 4")
			iHighlight := strings.Index(text, "Silence has weight\n")
			iPara := strings.Index(text, "Snow fell on everything.")
			if iMarker < 0 || iHighlight < 0 || iPara < 0 {
				t.Fatalf("missing text in %q", text)
			}
			if !(iMarker < iHighlight && iHighlight < iPara) {
				t.Errorf("reading order broken: marker %d, highlight %d, paragraph %d", iMarker, iHighlight, iPara)
			}

			if layout != domain.LayoutConstellationNodes {
				if len(n.FindAll("entity")) == 0 {
					t.Error("entity missing")
				}
			}
		})
	}
}

func TestRenderScene_EmphasisUsesAccent(t *testing.T) {
	for _, layout := range domain.Layouts {
		t.Run(string(layout), func(t *testing.T) {
			scene := testScene(layout)
			n := RenderScene(scene, 0, 1, 0.3)

			found := false
			n.Walk(func(c *Node) {
				for _, r := range c.Runs {
					if r.Text == "everything" {
						found = true
						if r.Color != scene.Visual.Palette.Accent || !r.Bold {
							t.Errorf("emphasized run = %+v, want accent bold", r)
						}
					}
					if strings.Contains(r.Text, "*") {
						t.Errorf("marker leaked into run %q", r.Text)
					}
				}
			})
			if !found {
				t.Error("emphasized run not rendered")
			}
		})
	}
}

func TestRenderScene_DoesNotMutate(t *testing.T) {
	for _, layout := range domain.Layouts {
		scene := testScene(layout)
		doc := &domain.Document{Screenplay: []domain.Scene{scene}}
		before := doc.Clone()

		RenderScene(doc.Screenplay[0], 0, 1, 0.7)
		Journey(doc, ScrollState{Progress: []float64{0.7}}, domain.StateReady)

		if !reflect.DeepEqual(before, doc) {
			t.Errorf("%s: rendering mutated the document", layout)
		}
	}
}

func TestRenderScene_Deterministic(t *testing.T) {
	scene := testScene(domain.LayoutTimelineProcess)
	a := RenderScene(scene, 0, 2, 0.42)
	b := RenderScene(scene, 0, 2, 0.42)
	if !reflect.DeepEqual(a, b) {
		t.Error("same inputs produced different trees")
	}
}

func TestConstellation(t *testing.T) {
	n := Resolve(domain.LayoutConstellationNodes).Render(testScene(domain.LayoutConstellationNodes), 0.5)

	items := n.FindAll("gallery-item")
	if len(items) != 3 {
		t.Fatalf("gallery items = %d, want 3", len(items))
	}
	wantOffsets := []float64{40, -40, 40}
	for i, item := range items {
		if item.Transform.TranslateY != wantOffsets[i] {
			t.Errorf("item %d offset = %v, want %v", i, item.Transform.TranslateY, wantOffsets[i])
		}
		if dot := item.Find("node-dot"); dot == nil || dot.Style.Fill != "#e11d48" {
			t.Errorf("item %d dot = %+v, want primary fill", i, dot)
		}
	}

	notes := n.Find("annotations")
	if notes == nil || !strings.Contains(notes.PlainText(), "Then it stopped.") {
		t.Error("paragraphs after the lead must still be rendered")
	}
}

func TestArchitectural(t *testing.T) {
	n := Resolve(domain.LayoutArchitecturalLens).Render(testScene(domain.LayoutArchitecturalLens), 0.25)

	if w := n.Find("title-word"); w == nil || w.Text != "The" {
		t.Errorf("title word = %+v, want %q", w, "The")
	}
	entities := n.FindAll("entity")
	if len(entities) != 2 {
		t.Fatalf("entities = %d, want 2", len(entities))
	}
	if entities[0].Text != string(VariantGeometric) {
		t.Errorf("study entity = %q, want geometric", entities[0].Text)
	}
	if entities[1].Text != string(VariantSpiky) {
		t.Errorf("framed entity = %q, want the scene shape", entities[1].Text)
	}
	if len(n.FindAll("guide")) != 2 {
		t.Error("guides missing")
	}
}

func TestTimeline(t *testing.T) {
	scene := testScene(domain.LayoutTimelineProcess)

	tests := []struct {
		progress float64
		fill     float64
	}{
		{0.1, 0},
		{0.5, 0.5},
		{0.9, 1},
	}
	for _, tt := range tests {
		n := Resolve(domain.LayoutTimelineProcess).Render(scene, tt.progress)
		spine := n.Find("spine-progress")
		if spine == nil || math.Abs(spine.Height-tt.fill) > 1e-9 {
			t.Errorf("progress %v: spine = %+v, want fill %v", tt.progress, spine, tt.fill)
		}
	}

	n := Resolve(domain.LayoutTimelineProcess).Render(scene, 0.5)
	steps := n.FindAll("step")
	if len(steps) != 2 {
		t.Fatalf("steps = %d, want 2", len(steps))
	}
	if steps[0].Find("highlight") == nil || steps[1].Find("highlight") != nil {
		t.Error("highlight must appear on the first step only")
	}
	if idx := steps[1].Find("step-index"); idx == nil || idx.Text != "2" {
		t.Errorf("second step index = %+v", idx)
	}
}

func TestStormAndSplitCurves(t *testing.T) {
	storm := Resolve(domain.LayoutTypographicStorm).Render(testScene(domain.LayoutTypographicStorm), 0.75)
	if b := storm.Find("backdrop"); b == nil || b.Transform.TranslateX != 100 {
		t.Errorf("storm backdrop = %+v, want translateX 100", b)
	}

	split := Resolve(domain.LayoutSplitDynamic).Render(testScene(domain.LayoutSplitDynamic), 0.5)
	if v := split.Find("visual"); v == nil || math.Abs(v.Transform.Scale-1.05) > 1e-9 {
		t.Errorf("split visual = %+v, want scale 1.05", v)
	}
	if split.Arrange != ArrangeRowReverse {
		t.Errorf("split arrange = %q, want row_reverse", split.Arrange)
	}
}

func TestBackground(t *testing.T) {
	palette := domain.Palette{Primary: "#111111", Secondary: "#222222"}
	tests := []struct {
		pattern     domain.Pattern
		wantPattern domain.Pattern
		wantCell    float64
		wantOpacity float64
	}{
		{domain.PatternGrid, domain.PatternGrid, 40, 0.15},
		{domain.PatternDots, domain.PatternDots, 20, 0.15},
		{domain.PatternLines, domain.PatternLines, 20, 0.15},
		{domain.PatternCrosshairs, domain.PatternCrosshairs, 40, 0.15},
		{domain.PatternGradientMesh, domain.PatternGradientMesh, 0, 0.15},
		{domain.PatternNoise, domain.PatternNoise, 0, 0.05},
		{"plaid", domain.PatternNoise, 0, 0.05},
	}
	for _, tt := range tests {
		t.Run(string(tt.pattern), func(t *testing.T) {
			n := Background(tt.pattern, palette)
			if n.Pattern != tt.wantPattern || n.Cell != tt.wantCell || n.Style.Opacity != tt.wantOpacity {
				t.Errorf("Background(%q) = pattern %q cell %v opacity %v", tt.pattern, n.Pattern, n.Cell, n.Style.Opacity)
			}
		})
	}
}

func TestJourney(t *testing.T) {
	doc := &domain.Document{
		Meta: domain.Meta{Title: "Winter", Author: "A. Writer", Essence: "Cold."},
		Screenplay: []domain.Scene{
			testScene(domain.LayoutTypographicStorm),
			testScene(domain.LayoutEntityFocus),
		},
	}
	doc.Screenplay[1].Visual.Palette.Primary = "#22c55e"

	if Journey(doc, ScrollState{}, domain.StateIdle) != nil {
		t.Error("journey rendered without a document state")
	}

	n := Journey(doc, ScrollState{Progress: []float64{1, 0.5}, Active: 1, PointerX: 0.2, PointerY: 0.8}, domain.StateReady)
	if n == nil {
		t.Fatal("journey not rendered")
	}

	glow := n.Find("ambient-glow")
	if glow == nil || glow.At.X != 0.2 || glow.At.Y != 0.8 || glow.Style.Color != "#22c55e" {
		t.Errorf("glow = %+v, want pointer position in active primary", glow)
	}

	entries := n.FindAll("toc-entry")
	if len(entries) != 2 {
		t.Fatalf("toc entries = %d, want 2", len(entries))
	}
	if entries[0].Style.Bold || !entries[1].Style.Bold {
		t.Error("active toc entry not marked")
	}

	scenes := n.FindAll("scene")
	if len(scenes) != 2 {
		t.Fatalf("scenes = %d, want 2", len(scenes))
	}
	if n.Find("end-mark") == nil || n.Find("reset-action") == nil {
		t.Error("footer missing")
	}
	if n.Find("hero-essence").Text != "Cold." {
		t.Error("hero essence missing")
	}

	updating := Journey(doc, ScrollState{Active: 7}, domain.StateUpdating)
	if updating.Find("status") == nil {
		t.Error("updating indicator missing")
	}
}
