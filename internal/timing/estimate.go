package timing

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Estimate synthesizes sentence segments for narration text when a voice
// provider reported only a total audio duration. Each sentence receives a
// share of totalMS proportional to its character count; the final segment's
// end is clamped to exactly totalMS so the track never drifts from the audio.
//
// Empty narration or a non-positive duration yields no segments; callers
// treat that as "no subtitle asset", not an error.
func Estimate(narration string, totalMS int64) []Segment {
	if totalMS <= 0 {
		return nil
	}
	sentences := SplitSentences(narration)
	if len(sentences) == 0 {
		return nil
	}

	totalChars := 0
	for _, sentence := range sentences {
		totalChars += utf8.RuneCountInString(sentence)
	}
	if totalChars == 0 {
		return nil
	}

	segments := make([]Segment, 0, len(sentences))
	var cursor int64
	for i, sentence := range sentences {
		share := float64(utf8.RuneCountInString(sentence)) / float64(totalChars)
		end := cursor + int64(share*float64(totalMS))
		if i == len(sentences)-1 {
			end = totalMS
		}
		if end < cursor {
			end = cursor
		}
		segments = append(segments, Segment{Text: sentence, StartMS: cursor, EndMS: end})
		cursor = end
	}
	return segments
}

// SplitSentences breaks narration text into trimmed sentences on terminal
// punctuation, keeping the punctuation attached to its sentence.
func SplitSentences(text string) []string {
	var (
		sentences []string
		builder   strings.Builder
	)

	flush := func() {
		sentence := strings.TrimSpace(builder.String())
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		builder.Reset()
	}

	for _, r := range text {
		builder.WriteRune(r)
		switch r {
		case '.', '!', '?', '…', '。', '！', '？':
			flush()
		}
	}
	flush()

	// Collapse internal whitespace runs so multi-line narration renders as
	// single-line cues.
	for i, sentence := range sentences {
		sentences[i] = strings.Join(strings.FieldsFunc(sentence, unicode.IsSpace), " ")
	}
	return sentences
}
