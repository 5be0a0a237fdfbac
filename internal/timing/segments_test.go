package timing_test

import (
	"testing"

	"clipforge/internal/timing"
)

func TestFromWordsClosesOnTerminalPunctuation(t *testing.T) {
	units := []timing.Unit{
		{Text: "Hello", StartMS: 0, EndMS: 400},
		{Text: "world.", StartMS: 400, EndMS: 900},
		{Text: "This", StartMS: 900, EndMS: 1200},
		{Text: "is", StartMS: 1200, EndMS: 1350},
		{Text: "a", StartMS: 1350, EndMS: 1400},
		{Text: "test.", StartMS: 1400, EndMS: 2000},
	}

	segments := timing.FromWords(units)
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d: %#v", len(segments), segments)
	}
	if segments[0].Text != "Hello world." {
		t.Fatalf("unexpected first segment text: %q", segments[0].Text)
	}
	if segments[0].StartMS != 0 || segments[0].EndMS != 900 {
		t.Fatalf("unexpected first segment bounds: %d-%d", segments[0].StartMS, segments[0].EndMS)
	}
	if segments[1].Text != "This is a test." {
		t.Fatalf("unexpected second segment text: %q", segments[1].Text)
	}
	if segments[1].StartMS != 900 || segments[1].EndMS != 2000 {
		t.Fatalf("unexpected second segment bounds: %d-%d", segments[1].StartMS, segments[1].EndMS)
	}
	if err := timing.ValidateSegments(segments); err != nil {
		t.Fatalf("segments should validate: %v", err)
	}
}

func TestFromCharactersConcatenatesWithoutSeparator(t *testing.T) {
	units := []timing.Unit{
		{Text: "H", StartMS: 0, EndMS: 100},
		{Text: "i", StartMS: 100, EndMS: 200},
		{Text: "!", StartMS: 200, EndMS: 300},
		{Text: "B", StartMS: 300, EndMS: 400},
		{Text: "y", StartMS: 400, EndMS: 500},
		{Text: "e", StartMS: 500, EndMS: 600},
		{Text: ".", StartMS: 600, EndMS: 700},
	}

	segments := timing.FromCharacters(units)
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[0].Text != "Hi!" {
		t.Fatalf("unexpected first segment: %q", segments[0].Text)
	}
	if segments[1].Text != "Bye." {
		t.Fatalf("unexpected second segment: %q", segments[1].Text)
	}
}

func TestFromWordsTrailingTextWithoutPunctuation(t *testing.T) {
	units := []timing.Unit{
		{Text: "Done.", StartMS: 0, EndMS: 500},
		{Text: "trailing", StartMS: 500, EndMS: 800},
		{Text: "words", StartMS: 800, EndMS: 1000},
	}
	segments := timing.FromWords(units)
	if len(segments) != 2 {
		t.Fatalf("expected trailing buffer to flush, got %d segments", len(segments))
	}
	if segments[1].Text != "trailing words" {
		t.Fatalf("unexpected trailing segment: %q", segments[1].Text)
	}
}

func TestFromWordsEmptyInput(t *testing.T) {
	if segments := timing.FromWords(nil); segments != nil {
		t.Fatalf("expected nil segments, got %#v", segments)
	}
}

func TestValidateSegmentsRejectsOverlap(t *testing.T) {
	segments := []timing.Segment{
		{Text: "a", StartMS: 0, EndMS: 1000},
		{Text: "b", StartMS: 500, EndMS: 1500},
	}
	if err := timing.ValidateSegments(segments); err == nil {
		t.Fatal("expected overlap error")
	}
}

func TestValidateSegmentsRejectsInvertedBounds(t *testing.T) {
	segments := []timing.Segment{{Text: "a", StartMS: 900, EndMS: 100}}
	if err := timing.ValidateSegments(segments); err == nil {
		t.Fatal("expected inverted bounds error")
	}
}
