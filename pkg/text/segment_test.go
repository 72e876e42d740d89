package text_test

import (
	"strings"
	"testing"

	"github.com/aretw0/lotka/pkg/text"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []text.Paragraph
	}{
		{name: "empty", in: "", want: nil},
		{name: "whitespace only", in: "   \n\t ", want: nil},
		{name: "punctuation only", in: " ?!. ... ", want: nil},
		{name: "spaced terminator runs", in: "... ! ?", want: nil},
		{name: "leading terminator run", in: "!!! ...", want: nil},
		{name: "spaced dots", in: " . . ", want: nil},
		{
			name: "stray terminators between sentences",
			in:   "Hello. ! World.",
			want: []text.Paragraph{{"Hello.", "World."}},
		},
		{
			name: "odd count leaves a single sentence paragraph",
			in:   "One. Two. Three.",
			want: []text.Paragraph{{"One.", "Two."}, {"Three."}},
		},
		{
			name: "no terminator",
			in:   "  No terminator here  ",
			want: []text.Paragraph{{"No terminator here"}},
		},
		{
			name: "trailing fragment",
			in:   "It rained. Then",
			want: []text.Paragraph{{"It rained.", "Then"}},
		},
		{
			name: "terminator runs stay attached",
			in:   "Wait... what?! Really!",
			want: []text.Paragraph{{"Wait...", "what?!"}, {"Really!"}},
		},
		{
			name: "newlines count as whitespace",
			in:   "First.\nSecond.\n\nThird?",
			want: []text.Paragraph{{"First.", "Second."}, {"Third?"}},
		},
		// Compatible with the first reader release: text before a glued terminator is dropped.
		{
			name: "glued terminator drops the leading run",
			in:   "Pi is 3.14 roughly.",
			want: []text.Paragraph{{"14 roughly."}},
		},
		{
			name: "unicode text",
			in:   "Lotka šla do lesa. Našla houbu! Co teď?",
			want: []text.Paragraph{{"Lotka šla do lesa.", "Našla houbu!"}, {"Co teď?"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := text.Segment(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Segment(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestSegment_PreservesSentences(t *testing.T) {
	inputs := []string{
		"A. B. C. D.",
		"Hello there! How are you? Fine.",
		"The fox ran.  The dog slept.   The end.",
	}

	for _, in := range inputs {
		var rebuilt []string
		for _, p := range text.Segment(in) {
			assert.LessOrEqual(t, len(p), text.SentencesPerParagraph)
			rebuilt = append(rebuilt, p.String())
		}
		assert.Equal(t, strings.Join(strings.Fields(in), " "), strings.Join(rebuilt, " "))
	}
}

func TestParagraph_String(t *testing.T) {
	assert.Equal(t, "One. Two.", text.Paragraph{"One.", "Two."}.String())
	assert.Equal(t, "", text.Paragraph(nil).String())
}
