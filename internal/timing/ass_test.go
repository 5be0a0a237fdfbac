package timing_test

import (
	"strings"
	"testing"

	"clipforge/internal/timing"
)

func TestRenderASSBasicDocument(t *testing.T) {
	segments := []timing.Segment{
		{Text: "Hello world.", StartMS: 0, EndMS: 1500},
		{Text: "Second cue.", StartMS: 1500, EndMS: 4000},
	}
	doc, err := timing.RenderASS(segments, timing.StyleBoldCenter, 1080, 1920)
	if err != nil {
		t.Fatalf("RenderASS failed: %v", err)
	}
	for _, want := range []string{
		"[Script Info]",
		"PlayResX: 1080",
		"PlayResY: 1920",
		"[V4+ Styles]",
		"Style: Default,Montserrat",
		"[Events]",
		"Dialogue: 0,0:00:00.00,0:00:01.50,Default,,0,0,0,,Hello world.",
		"Dialogue: 0,0:00:01.50,0:00:04.00,Default,,0,0,0,,Second cue.",
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("expected document to contain %q\n%s", want, doc)
		}
	}
}

func TestRenderASSEscapesBracesAndNewlines(t *testing.T) {
	segments := []timing.Segment{
		{Text: "line one\nline {two}", StartMS: 0, EndMS: 2000},
	}
	doc, err := timing.RenderASS(segments, timing.StyleMinimal, 0, 0)
	if err != nil {
		t.Fatalf("RenderASS failed: %v", err)
	}
	if !strings.Contains(doc, `line one\Nline \{two\}`) {
		t.Fatalf("expected escaped dialogue text, got:\n%s", doc)
	}
}

func TestRenderASSUnknownStyle(t *testing.T) {
	if _, err := timing.RenderASS(nil, timing.StyleName("neon-chaos"), 1080, 1920); err == nil {
		t.Fatal("expected error for unknown style")
	}
}

func TestParseStyleName(t *testing.T) {
	if name, ok := timing.ParseStyleName(" Bold-Center "); !ok || name != timing.StyleBoldCenter {
		t.Fatalf("expected bold-center to parse, got %q %v", name, ok)
	}
	if _, ok := timing.ParseStyleName("sparkle"); ok {
		t.Fatal("expected unknown style to fail parsing")
	}
}

func TestStyleNamesStable(t *testing.T) {
	names := timing.StyleNames()
	if len(names) != 4 {
		t.Fatalf("expected 4 named styles, got %d", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("expected sorted style names, got %v", names)
		}
	}
}
