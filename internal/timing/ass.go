package timing

import (
	"fmt"
	"sort"
	"strings"
)

// StyleName selects one of the fixed burn-in subtitle styles.
type StyleName string

const (
	StyleBoldCenter StyleName = "bold-center"
	StyleMinimal    StyleName = "minimal"
	StyleOutlinePop StyleName = "outline-pop"
	StyleLowerThird StyleName = "lower-third"
)

// style holds the V4+ style fields a named preset controls.
type style struct {
	FontName      string
	FontSize      int
	PrimaryColour string
	OutlineColour string
	BackColour    string
	Bold          int
	Outline       int
	Shadow        int
	Alignment     int
	MarginV       int
}

var styles = map[StyleName]style{
	StyleBoldCenter: {
		FontName:      "Montserrat",
		FontSize:      72,
		PrimaryColour: "&H00FFFFFF",
		OutlineColour: "&H00000000",
		BackColour:    "&H80000000",
		Bold:          1,
		Outline:       4,
		Shadow:        0,
		Alignment:     5,
		MarginV:       60,
	},
	StyleMinimal: {
		FontName:      "Helvetica",
		FontSize:      48,
		PrimaryColour: "&H00FFFFFF",
		OutlineColour: "&H00000000",
		BackColour:    "&H00000000",
		Bold:          0,
		Outline:       1,
		Shadow:        0,
		Alignment:     2,
		MarginV:       90,
	},
	StyleOutlinePop: {
		FontName:      "Impact",
		FontSize:      80,
		PrimaryColour: "&H0000FFFF",
		OutlineColour: "&H00000000",
		BackColour:    "&H00000000",
		Bold:          1,
		Outline:       5,
		Shadow:        2,
		Alignment:     5,
		MarginV:       60,
	},
	StyleLowerThird: {
		FontName:      "Arial",
		FontSize:      54,
		PrimaryColour: "&H00FFFFFF",
		OutlineColour: "&H00101010",
		BackColour:    "&HA0000000",
		Bold:          0,
		Outline:       2,
		Shadow:        1,
		Alignment:     2,
		MarginV:       120,
	},
}

// StyleNames returns the supported named styles in stable order.
func StyleNames() []StyleName {
	names := make([]StyleName, 0, len(styles))
	for name := range styles {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// ParseStyleName validates a caller-provided style identifier.
func ParseStyleName(value string) (StyleName, bool) {
	name := StyleName(strings.ToLower(strings.TrimSpace(value)))
	_, ok := styles[name]
	return name, ok
}

// RenderASS produces a complete ASS subtitle document for the given cue
// sequence. Width and height set the script's play resolution so positioning
// matches the rendered video.
func RenderASS(segments []Segment, name StyleName, width, height int) (string, error) {
	preset, ok := styles[name]
	if !ok {
		return "", fmt.Errorf("unknown subtitle style %q", name)
	}
	if width <= 0 || height <= 0 {
		width, height = 1080, 1920
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[Script Info]\n")
	fmt.Fprintf(&b, "Title: clipforge captions\n")
	fmt.Fprintf(&b, "ScriptType: v4.00+\n")
	fmt.Fprintf(&b, "PlayResX: %d\n", width)
	fmt.Fprintf(&b, "PlayResY: %d\n", height)
	fmt.Fprintf(&b, "WrapStyle: 0\n\n")

	b.WriteString("[V4+ Styles]\n")
	b.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, OutlineColour, BackColour, Bold, Outline, Shadow, Alignment, MarginL, MarginR, MarginV\n")
	fmt.Fprintf(&b, "Style: Default,%s,%d,%s,%s,%s,%d,%d,%d,%d,40,40,%d\n\n",
		preset.FontName, preset.FontSize,
		preset.PrimaryColour, preset.OutlineColour, preset.BackColour,
		preset.Bold, preset.Outline, preset.Shadow, preset.Alignment, preset.MarginV)

	b.WriteString("[Events]\n")
	b.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")
	for _, seg := range segments {
		text := escapeDialogue(seg.Text)
		if text == "" {
			continue
		}
		fmt.Fprintf(&b, "Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n",
			formatASSTime(seg.StartMS), formatASSTime(seg.EndMS), text)
	}

	return b.String(), nil
}

// escapeDialogue protects characters ASS treats specially: literal braces
// open override blocks, and raw newlines terminate the event line.
func escapeDialogue(text string) string {
	replacer := strings.NewReplacer(
		"{", `\{`,
		"}", `\}`,
		"\r\n", `\N`,
		"\n", `\N`,
	)
	return strings.TrimSpace(replacer.Replace(text))
}

// formatASSTime renders milliseconds as H:MM:SS.CC (centisecond precision).
func formatASSTime(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	centis := (ms % 1000) / 10
	totalSeconds := ms / 1000
	seconds := totalSeconds % 60
	minutes := (totalSeconds / 60) % 60
	hours := totalSeconds / 3600
	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, seconds, centis)
}
