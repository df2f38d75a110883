package views

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"vibary/internal/domain"
)

func testDocument(scenes int) *domain.Document {
	layouts := []domain.Layout{
		domain.LayoutEntityFocus,
		domain.LayoutTypographicStorm,
		domain.LayoutSplitDynamic,
		domain.LayoutTimelineProcess,
		domain.LayoutArchitecturalLens,
	}
	doc := &domain.Document{Meta: domain.Meta{Title: "Dune", Author: "Frank Herbert", Essence: "Sand and *power*."}}
	for i := 0; i < scenes; i++ {
		doc.Screenplay = append(doc.Screenplay, domain.Scene{
			ID:              fmt.Sprintf("s%d", i+1),
			ChapterTitle:    fmt.Sprintf("Chapter %d", i+1),
			Paragraphs:      []string{"The spice must *flow*.", "Fear is the mind-killer."},
			HighlightPhrase: "the sleeper must awaken",
			Visual: domain.VisualConfig{
				Layout:            layouts[i%len(layouts)],
				BackgroundPattern: domain.PatternDots,
				Palette: domain.Palette{
					Primary: "#e0a040", Secondary: "#804020", Accent: "#ffcc66",
					Background: "#1a1008", Text: "#f5e6d0",
				},
				VisualParams: domain.VisualParams{Shape: domain.ShapeOrganic, Motion: domain.MotionPulse, Complexity: 0.4, Speed: 0.5},
			},
		})
	}
	return doc
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "f1":
		return tea.KeyMsg{Type: tea.KeyF1}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// run executes cmd and returns its message, or nil
func run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
