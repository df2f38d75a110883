package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"vibary/internal/domain"
	"vibary/internal/render"
)

// LayoutInfo describes one registered layout strategy
type LayoutInfo struct {
	Layout  domain.Layout
	Default bool
}

// ListLayoutsCommand lists the registered layout strategies
type ListLayoutsCommand struct{}

// NewListLayoutsCommand creates a new ListLayoutsCommand
func NewListLayoutsCommand() *ListLayoutsCommand {
	return &ListLayoutsCommand{}
}

// Execute runs the list layouts command
func (c *ListLayoutsCommand) Execute(ctx context.Context) ([]LayoutInfo, error) {
	strategies := render.Strategies()
	out := make([]LayoutInfo, 0, len(strategies))
	for _, s := range strategies {
		out = append(out, LayoutInfo{Layout: s.Layout(), Default: s.Layout() == render.DefaultLayout})
	}
	return out, nil
}

// LayoutMatch is a registered layout scored against a query
type LayoutMatch struct {
	Layout domain.Layout
	Score  int
}

// ResolveLayoutResult reports which strategy renders a layout tag
type ResolveLayoutResult struct {
	Requested   string
	Resolved    domain.Layout
	Fallback    bool
	Suggestions []LayoutMatch
	Message     string
}

// ResolveLayoutCommand resolves a layout tag the way scene rendering does
type ResolveLayoutCommand struct {
	Tag string
}

// NewResolveLayoutCommand creates a new ResolveLayoutCommand
func NewResolveLayoutCommand(tag string) *ResolveLayoutCommand {
	return &ResolveLayoutCommand{Tag: tag}
}

// Execute resolves the tag. Unknown tags resolve to the default layout and
// carry close matches as suggestions.
func (c *ResolveLayoutCommand) Execute(ctx context.Context) (*ResolveLayoutResult, error) {
	tag := domain.Layout(c.Tag)
	resolved := render.Resolve(tag).Layout()
	result := &ResolveLayoutResult{
		Requested: c.Tag,
		Resolved:  resolved,
		Fallback:  !tag.Known(),
	}

	if result.Fallback {
		result.Suggestions = SuggestLayouts(c.Tag)
		result.Message = fmt.Sprintf("Unknown layout %q renders as %s", c.Tag, resolved)
		if len(result.Suggestions) > 0 {
			result.Message += fmt.Sprintf(" (did you mean %s?)", result.Suggestions[0].Layout)
		}
	} else {
		result.Message = fmt.Sprintf("Layout %s", resolved)
	}
	return result, nil
}

// SuggestLayouts ranks the registered layouts by how well they match query
func SuggestLayouts(query string) []LayoutMatch {
	query = strings.ReplaceAll(strings.TrimSpace(query), " ", "_")
	if len(query) < 2 {
		return nil
	}

	var matches []LayoutMatch
	for _, l := range domain.Layouts {
		if score := FuzzyScore(string(l), query); score > 0 {
			matches = append(matches, LayoutMatch{Layout: l, Score: score})
		}
	}

	// Sort by score descending, stable on declaration order
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	// Check for exact substring match first (highest priority)
	if strings.Contains(target, query) {
		score := 100
		// Bonus if it starts with query
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// Fuzzy match: check if chars appear in order
	score := 0
	queryIdx := 0
	prevMatchIdx := -1

	for i := 0; i < len(target) && queryIdx < len(query); i++ {
		if target[i] == query[queryIdx] {
			if prevMatchIdx == i-1 {
				score += 10 // consecutive chars
			}
			if i == 0 {
				score += 15 // start of string
			}
			if i > 0 && target[i-1] == '_' {
				score += 10 // after separator
			}
			score += 1
			prevMatchIdx = i
			queryIdx++
		}
	}

	if queryIdx == len(query) {
		return score
	}
	return 0
}
