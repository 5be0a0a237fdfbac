package timing

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Segment is one caption cue covering [StartMS, EndMS] of the narration.
type Segment struct {
	Text    string `json:"text"`
	StartMS int64  `json:"start_ms"`
	EndMS   int64  `json:"end_ms"`
}

// Unit is one fine-grained timing sample (a character or a word) as reported
// by a voice provider.
type Unit struct {
	Text    string `json:"text"`
	StartMS int64  `json:"start_ms"`
	EndMS   int64  `json:"end_ms"`
}

// ValidateSegments checks ordering and overlap invariants for a cue sequence.
func ValidateSegments(segments []Segment) error {
	for i, seg := range segments {
		if seg.EndMS < seg.StartMS {
			return fmt.Errorf("segment %d: end %dms before start %dms", i, seg.EndMS, seg.StartMS)
		}
		if i > 0 && seg.StartMS < segments[i-1].EndMS {
			return errors.New("segments overlap or are out of order")
		}
	}
	return nil
}

// FromCharacters aggregates per-character timing units into sentence-level
// segments. Characters are concatenated without separators.
func FromCharacters(units []Unit) []Segment {
	return sentenceSegments(units, "")
}

// FromWords aggregates per-word timing units into sentence-level segments.
// Words are joined with single spaces.
func FromWords(units []Unit) []Segment {
	return sentenceSegments(units, " ")
}

// sentenceSegments accumulates units into a running buffer and closes a
// segment whenever a sentence-terminal punctuation mark is reached or the
// input is exhausted. Segment bounds are the first unit's start and the last
// unit's end.
func sentenceSegments(units []Unit, sep string) []Segment {
	if len(units) == 0 {
		return nil
	}

	ordered := make([]Unit, len(units))
	copy(ordered, units)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].StartMS < ordered[j].StartMS })

	var (
		segments []Segment
		buffer   []string
		startMS  int64
		endMS    int64
		open     bool
	)

	flush := func() {
		if !open {
			return
		}
		text := strings.TrimSpace(strings.Join(buffer, sep))
		if text != "" {
			segments = append(segments, Segment{Text: text, StartMS: startMS, EndMS: endMS})
		}
		buffer = buffer[:0]
		open = false
	}

	for _, unit := range ordered {
		if !open {
			startMS = unit.StartMS
			open = true
		}
		buffer = append(buffer, unit.Text)
		if unit.EndMS > endMS {
			endMS = unit.EndMS
		}
		if endsSentence(unit.Text) {
			flush()
		}
	}
	flush()

	return segments
}

func endsSentence(text string) bool {
	trimmed := strings.TrimRightFunc(text, unicode.IsSpace)
	if trimmed == "" {
		return false
	}
	// Trailing quotes and brackets do not hide the terminal mark.
	trimmed = strings.TrimRight(trimmed, `"')]}`+"”’")
	if trimmed == "" {
		return false
	}
	runes := []rune(trimmed)
	switch runes[len(runes)-1] {
	case '.', '!', '?', '…', '。', '！', '？':
		return true
	}
	return false
}
