package stage

import (
	"context"
	"strings"
)

// Category identifies one of the five fixed generation steps.
type Category string

const (
	Script   Category = "script"
	Voice    Category = "voice"
	Media    Category = "media"
	VideoAI  Category = "video_ai"
	Assembly Category = "assembly"
)

var order = []Category{Script, Voice, Media, VideoAI, Assembly}

// Order returns the fixed execution sequence of step categories.
func Order() []Category {
	cp := make([]Category, len(order))
	copy(cp, order)
	return cp
}

// Index returns a category's position in the fixed order, or -1.
func Index(c Category) int {
	for i, candidate := range order {
		if candidate == c {
			return i
		}
	}
	return -1
}

// ParseCategory converts a string into a known Category.
func ParseCategory(value string) (Category, bool) {
	normalized := Category(strings.ToLower(strings.TrimSpace(value)))
	return normalized, Index(normalized) >= 0
}

// Required reports whether a run cannot proceed without an adapter for the
// category. video_ai is optional: without an adapter that step is skipped.
func Required(c Category) bool {
	return c != VideoAI
}

// Adapter performs one generation step by calling an external vendor.
// Implementations must treat Execute as a single blocking call: respect
// context cancellation, and report vendor-side failure through the Result
// envelope rather than panicking.
type Adapter interface {
	Category() Category
	Provider() string
	Execute(ctx context.Context, input Input) (Result, error)
}

// Input is the closed set of category-specific adapter inputs.
type Input interface {
	Category() Category
}

func (ScriptInput) Category() Category   { return Script }
func (VoiceInput) Category() Category    { return Voice }
func (MediaInput) Category() Category    { return Media }
func (VideoAIInput) Category() Category  { return VideoAI }
func (AssemblyInput) Category() Category { return Assembly }
