package render

import (
	"strings"

	"vibary/internal/domain"
)

// Paragraph renders text with inline emphasis; emphasized runs take the accent color
func Paragraph(text, accent string) *Node {
	runs := domain.ParseEmphasis(text)
	n := &Node{Kind: KindRichText, Role: "paragraph", Runs: make([]TextRun, 0, len(runs))}
	for _, r := range runs {
		if r.Emphasized {
			n.Runs = append(n.Runs, TextRun{Text: r.Text, Color: accent, Bold: true})
			continue
		}
		n.Runs = append(n.Runs, TextRun{Text: r.Text})
	}
	return n
}

// Paragraphs renders every paragraph of texts in order
func Paragraphs(texts []string, accent string, style Style) *Node {
	g := Group("paragraphs", ArrangeStack)
	g.Style = style
	for _, t := range texts {
		g.Add(Paragraph(t, accent))
	}
	return g
}

// Highlight renders the headline phrase of a scene
func Highlight(phrase string, style Style) *Node {
	return Text("highlight", phrase).WithStyle(style)
}

// FirstWord returns the first whitespace separated word of s
func FirstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
