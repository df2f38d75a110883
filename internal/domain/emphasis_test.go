package domain

import (
	"reflect"
	"testing"
)

func TestParseEmphasis(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []Run
	}{
		{
			name: "empty",
			text: "",
			want: nil,
		},
		{
			name: "plain text",
			text: "A quiet river",
			want: []Run{{Text: "A quiet river"}},
		},
		{
			name: "single emphasized word",
			text: "A *B* C",
			want: []Run{{Text: "A "}, {Text: "B", Emphasized: true}, {Text: " C"}},
		},
		{
			name: "unmatched marker stays literal",
			text: "A *B C",
			want: []Run{{Text: "A *B C"}},
		},
		{
			name: "trailing odd marker after a pair",
			text: "A *B* C *D",
			want: []Run{{Text: "A "}, {Text: "B", Emphasized: true}, {Text: " C *D"}},
		},
		{
			name: "emphasis at both ends",
			text: "*Fate* and *will*",
			want: []Run{{Text: "Fate", Emphasized: true}, {Text: " and "}, {Text: "will", Emphasized: true}},
		},
		{
			name: "empty pair is literal",
			text: "a ** b",
			want: []Run{{Text: "a ** b"}},
		},
		{
			name: "pair does not cross a newline",
			text: "a *b\nc* d",
			want: []Run{{Text: "a *b\nc* d"}},
		},
		{
			name: "marker after a newline opens a pair",
			text: "a *b\nc *d* e",
			want: []Run{{Text: "a *b\nc "}, {Text: "d", Emphasized: true}, {Text: " e"}},
		},
		{
			name: "multi word run",
			text: "the *long night* ends",
			want: []Run{{Text: "the "}, {Text: "long night", Emphasized: true}, {Text: " ends"}},
		},
		{
			name: "unicode text",
			text: "命运 *意志* 終わり",
			want: []Run{{Text: "命运 "}, {Text: "意志", Emphasized: true}, {Text: " 終わり"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseEmphasis(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseEmphasis(%q) = %#v, want %#v", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseEmphasis_NeverDropsText(t *testing.T) {
	inputs := []string{
		"no markers at all",
		"*",
		"***",
		"a*b*c*d*e*",
		"*start only",
		"end only*",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			runs := ParseEmphasis(in)
			got := PlainText(runs)
			// Every non-marker character must survive
			if stripMarkers(got) != stripMarkers(in) {
				t.Errorf("text lost: input %q, runs %q", in, got)
			}
		})
	}
}

func stripMarkers(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r != EmphasisMarker {
			out = append(out, r)
		}
	}
	return string(out)
}
