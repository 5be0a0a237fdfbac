package stage_test

import (
	"testing"

	"clipforge/internal/stage"
)

func TestOrderIsFixed(t *testing.T) {
	want := []stage.Category{stage.Script, stage.Voice, stage.Media, stage.VideoAI, stage.Assembly}
	got := stage.Order()
	if len(got) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestOrderReturnsCopy(t *testing.T) {
	first := stage.Order()
	first[0] = stage.Assembly
	if stage.Order()[0] != stage.Script {
		t.Fatal("Order must not expose internal slice")
	}
}

func TestIndex(t *testing.T) {
	if idx := stage.Index(stage.Voice); idx != 1 {
		t.Fatalf("expected voice at index 1, got %d", idx)
	}
	if idx := stage.Index(stage.Category("render")); idx != -1 {
		t.Fatalf("expected -1 for unknown category, got %d", idx)
	}
}

func TestParseCategory(t *testing.T) {
	if c, ok := stage.ParseCategory(" Video_AI "); !ok || c != stage.VideoAI {
		t.Fatalf("expected video_ai to parse, got %q %v", c, ok)
	}
	if _, ok := stage.ParseCategory("thumbnail"); ok {
		t.Fatal("expected unknown category to fail")
	}
}

func TestRequired(t *testing.T) {
	for _, c := range stage.Order() {
		want := c != stage.VideoAI
		if stage.Required(c) != want {
			t.Fatalf("Required(%s) = %v, want %v", c, stage.Required(c), want)
		}
	}
}

func TestResultRoundTrip(t *testing.T) {
	result, err := stage.Succeed(stage.VoiceOutput{
		AudioURL:          "https://cdn.example/audio.mp3",
		DurationMS:        32000,
		TimingGranularity: "word",
	})
	if err != nil {
		t.Fatalf("Succeed failed: %v", err)
	}
	if !result.Success {
		t.Fatal("expected success envelope")
	}

	out, err := stage.DecodeVoiceOutput(result.Data)
	if err != nil {
		t.Fatalf("DecodeVoiceOutput failed: %v", err)
	}
	if out.AudioURL != "https://cdn.example/audio.mp3" || out.DurationMS != 32000 {
		t.Fatalf("unexpected decoded output: %#v", out)
	}
}

func TestFailPreservesDetails(t *testing.T) {
	result := stage.Fail("rate limited", map[string]any{"status": 429, "retry_after": "30s"})
	if result.Success {
		t.Fatal("expected failure envelope")
	}
	if result.Error != "rate limited" {
		t.Fatalf("unexpected error: %q", result.Error)
	}
	if result.ErrorDetails["status"] != 429 {
		t.Fatalf("expected raw details preserved, got %#v", result.ErrorDetails)
	}
}
