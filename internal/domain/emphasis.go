package domain

import "strings"

// EmphasisMarker delimits an emphasized run inside a paragraph
const EmphasisMarker = '*'

// Run is a contiguous piece of paragraph text
type Run struct {
	Text       string `json:"text"`
	Emphasized bool   `json:"emphasized,omitempty"`
}

// ParseEmphasis splits text into plain and emphasized runs.
//
// Markers pair left to right within a line. A marker without a partner
// on its line is kept as literal text, as is an empty pair ("**"). Adjacent plain runs are
// merged, so the concatenation of all runs plus the consumed marker
// pairs always equals the input.
func ParseEmphasis(text string) []Run {
	if text == "" {
		return nil
	}

	var runs []Run
	var plain strings.Builder

	flush := func() {
		if plain.Len() > 0 {
			runs = append(runs, Run{Text: plain.String()})
			plain.Reset()
		}
	}

	rest := text
	for {
		open := strings.IndexRune(rest, EmphasisMarker)
		if open < 0 {
			plain.WriteString(rest)
			break
		}
		end := strings.IndexRune(rest[open+1:], EmphasisMarker)
		if end < 0 {
			// Unmatched trailing marker stays literal
			plain.WriteString(rest)
			break
		}
		end += open + 1

		inner := rest[open+1 : end]
		if strings.ContainsRune(inner, '\n') {
			// Pairs do not cross lines; the next marker may open one
			plain.WriteString(rest[:open+1])
			rest = rest[open+1:]
			continue
		}
		plain.WriteString(rest[:open])
		if inner == "" {
			plain.WriteString(rest[open : end+1])
		} else {
			flush()
			runs = append(runs, Run{Text: inner, Emphasized: true})
		}
		rest = rest[end+1:]
	}
	flush()

	return runs
}

// PlainText returns the runs joined without markers
func PlainText(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}
