// Package text splits narrative prose into display paragraphs.
package text

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SentencesPerParagraph is the fixed paragraph size.
const SentencesPerParagraph = 2

// Paragraph is an ordered group of sentences.
type Paragraph []string

// String joins the sentences with single spaces.
func (p Paragraph) String() string {
	return strings.Join(p, " ")
}

// Segment splits raw into sentences and groups them two at a time.
// Empty or whitespace-only input yields no paragraphs.
func Segment(raw string) []Paragraph {
	sentences := Sentences(raw)
	if len(sentences) == 0 {
		return nil
	}

	paragraphs := make([]Paragraph, 0, (len(sentences)+SentencesPerParagraph-1)/SentencesPerParagraph)
	for i := 0; i < len(sentences); i += SentencesPerParagraph {
		end := min(i+SentencesPerParagraph, len(sentences))
		paragraphs = append(paragraphs, Paragraph(sentences[i:end:end]))
	}
	return paragraphs
}

// Sentences extracts trimmed sentences from raw.
//
// A sentence is a run of non-terminators closed by one or more of '.', '!' or '?',
// where the closing run is followed by whitespace or the end of the input.
// A final run without terminators is a sentence as well. Runs whose terminators
// are glued to the next word (e.g. "3.5") are dropped up to the terminators.
// Runs made only of terminators and spaces are never sentences.
func Sentences(raw string) []string {
	t := strings.TrimSpace(raw)
	if t == "" {
		return nil
	}

	var out []string
	i := 0
	for i < len(t) {
		if isTerminator(t[i]) {
			i++
			continue
		}

		j := i
		for j < len(t) && !isTerminator(t[j]) {
			j++
		}
		if j == len(t) {
			out = appendTrimmed(out, t[i:])
			break
		}

		k := j
		for k < len(t) && isTerminator(t[k]) {
			k++
		}
		if k == len(t) || startsWithSpace(t[k:]) {
			out = appendTrimmed(out, t[i:k])
		}
		i = k
	}
	return out
}

// appendTrimmed keeps s only if it carries something besides terminators and spaces.
func appendTrimmed(out []string, s string) []string {
	s = strings.TrimSpace(s)
	if strings.IndexFunc(s, isContent) < 0 {
		return out
	}
	return append(out, s)
}

func isContent(r rune) bool {
	return r != '.' && r != '!' && r != '?' && !unicode.IsSpace(r)
}

func isTerminator(b byte) bool {
	return b == '.' || b == '!' || b == '?'
}

func startsWithSpace(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsSpace(r)
}
