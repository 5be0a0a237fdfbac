package videos

import (
	"strings"
	"time"

	"clipforge/internal/stage"
)

// Status represents the overall lifecycle of a generation run.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
)

var allStatuses = []Status{
	StatusPending,
	StatusProcessing,
	StatusCompleted,
	StatusFailed,
	StatusCancelled,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// IsTerminal reports whether a status ends the run. Terminal videos are
// immutable except for the explicit retry operation.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// PipelineConfig is the immutable per-run input captured when a run starts.
type PipelineConfig struct {
	Prompt                string            `json:"prompt"`
	TargetDurationSeconds int               `json:"target_duration_seconds"`
	AspectRatio           string            `json:"aspect_ratio"`
	SceneCount            int               `json:"scene_count"`
	VoiceStyle            string            `json:"voice_style"`
	VisualStyle           string            `json:"visual_style"`
	SubtitlesEnabled      bool              `json:"subtitles_enabled"`
	SubtitleStyle         string            `json:"subtitle_style"`
	ProviderOverrides     map[string]string `json:"provider_overrides,omitempty"`
}

// Outputs holds the final asset references populated only on success.
type Outputs struct {
	VideoURL        string  `json:"video_url,omitempty"`
	ThumbnailURL    string  `json:"thumbnail_url,omitempty"`
	SubtitleURL     string  `json:"subtitle_url,omitempty"`
	DurationSeconds float64 `json:"duration,omitempty"`
	FileSizeBytes   int64   `json:"file_size,omitempty"`
	Resolution      string  `json:"resolution,omitempty"`
}

// Video is the aggregate root for one generation run.
type Video struct {
	ID                  string
	OwnerID             string
	Prompt              string
	Status              Status
	Progress            float64
	CurrentStep         string
	StepStates          StepStates
	ErrorMessage        string
	GenerationStartedAt *time.Time
	LastStepUpdatedAt   *time.Time
	Config              PipelineConfig
	Outputs             Outputs
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// StepState returns the recorded state for a step, defaulting to pending.
func (v *Video) StepState(c stage.Category) StepState {
	if state, ok := v.StepStates[string(c)]; ok {
		return state
	}
	return StepState{Status: StepPending}
}

// SetStepState records a step's state, allocating the map when needed.
func (v *Video) SetStepState(c stage.Category, state StepState) {
	if v.StepStates == nil {
		v.StepStates = make(StepStates, len(stage.Order()))
	}
	v.StepStates[string(c)] = state
}

// ResumeStep returns the step immediately after the last completed step,
// scanning the fixed order front-to-back and stopping at the first
// non-completed entry. Skipped counts as completed for progression. The
// second return is false when every step is done and the pipeline should not
// resume.
func (v *Video) ResumeStep() (stage.Category, bool) {
	for _, c := range stage.Order() {
		state := v.StepState(c)
		if state.Status != StepCompleted && state.Status != StepSkipped {
			return c, true
		}
	}
	return "", false
}
