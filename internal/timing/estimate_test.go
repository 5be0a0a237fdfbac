package timing_test

import (
	"testing"
	"unicode/utf8"

	"clipforge/internal/timing"
)

func TestEstimateProportionalAllocation(t *testing.T) {
	narration := "Hello world. This is a test."
	segments := timing.Estimate(narration, 4000)
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d: %#v", len(segments), segments)
	}

	first := segments[0]
	if first.StartMS != 0 {
		t.Fatalf("expected first segment to start at 0, got %d", first.StartMS)
	}
	firstChars := utf8.RuneCountInString("Hello world.")
	totalChars := firstChars + utf8.RuneCountInString("This is a test.")
	expectedEnd := int64(float64(firstChars) / float64(totalChars) * 4000)
	if first.EndMS != expectedEnd {
		t.Fatalf("expected first segment end %d, got %d", expectedEnd, first.EndMS)
	}

	last := segments[1]
	if last.StartMS != first.EndMS {
		t.Fatalf("expected contiguous segments, got gap %d-%d", first.EndMS, last.StartMS)
	}
	if last.EndMS != 4000 {
		t.Fatalf("expected final segment clamped to 4000, got %d", last.EndMS)
	}
}

func TestEstimateCoversExactlyTotalDuration(t *testing.T) {
	narration := "One. Two two. Three three three. Four four four four!"
	const total = int64(12345)
	segments := timing.Estimate(narration, total)
	if len(segments) != 4 {
		t.Fatalf("expected 4 segments, got %d", len(segments))
	}
	if segments[0].StartMS != 0 {
		t.Fatalf("expected start at 0, got %d", segments[0].StartMS)
	}
	for i := 1; i < len(segments); i++ {
		if segments[i].StartMS != segments[i-1].EndMS {
			t.Fatalf("segment %d not contiguous: %d != %d", i, segments[i].StartMS, segments[i-1].EndMS)
		}
	}
	if segments[len(segments)-1].EndMS != total {
		t.Fatalf("expected exact coverage to %d, got %d", total, segments[len(segments)-1].EndMS)
	}
	if err := timing.ValidateSegments(segments); err != nil {
		t.Fatalf("segments should validate: %v", err)
	}
}

func TestEstimateEmptyNarration(t *testing.T) {
	if segments := timing.Estimate("", 5000); segments != nil {
		t.Fatalf("expected no segments for empty narration, got %#v", segments)
	}
	if segments := timing.Estimate("   ", 5000); segments != nil {
		t.Fatalf("expected no segments for blank narration, got %#v", segments)
	}
}

func TestEstimateZeroDuration(t *testing.T) {
	if segments := timing.Estimate("Hello there.", 0); segments != nil {
		t.Fatalf("expected no segments for zero duration, got %#v", segments)
	}
}

func TestSplitSentencesCollapsesWhitespace(t *testing.T) {
	sentences := timing.SplitSentences("First  line\nwraps. Second!")
	if len(sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %d: %#v", len(sentences), sentences)
	}
	if sentences[0] != "First line wraps." {
		t.Fatalf("unexpected first sentence: %q", sentences[0])
	}
	if sentences[1] != "Second!" {
		t.Fatalf("unexpected second sentence: %q", sentences[1])
	}
}

func TestSplitSentencesNoTerminalPunctuation(t *testing.T) {
	sentences := timing.SplitSentences("no punctuation here")
	if len(sentences) != 1 || sentences[0] != "no punctuation here" {
		t.Fatalf("expected single trailing sentence, got %#v", sentences)
	}
}
