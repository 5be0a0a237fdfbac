package videos

import (
	"encoding/json"
	"fmt"
	"time"
)

// StepStatus represents the lifecycle of a single pipeline step.
type StepStatus string

const (
	StepPending    StepStatus = "pending"
	StepProcessing StepStatus = "processing"
	StepCompleted  StepStatus = "completed"
	StepFailed     StepStatus = "failed"
	StepSkipped    StepStatus = "skipped"
)

// StepState is the durable record of one step's progress. The JSON field
// names are a persistence contract shared with external tooling; do not
// rename them.
type StepState struct {
	Status       StepStatus     `json:"status"`
	Progress     float64        `json:"progress"`
	StartedAt    *time.Time     `json:"started_at,omitempty"`
	CompletedAt  *time.Time     `json:"completed_at,omitempty"`
	Result       map[string]any `json:"result,omitempty"`
	Error        string         `json:"error,omitempty"`
	ErrorDetails map[string]any `json:"error_details,omitempty"`
}

// StepStates maps step name to its durable state.
type StepStates map[string]StepState

// EncodeStepStates serializes the step-state map for storage. A nil map
// encodes as an empty JSON object so the column is never NULL.
func EncodeStepStates(states StepStates) (string, error) {
	if states == nil {
		states = StepStates{}
	}
	raw, err := json.Marshal(states)
	if err != nil {
		return "", fmt.Errorf("encode step states: %w", err)
	}
	return string(raw), nil
}

// DecodeStepStates parses the stored step-state JSON object.
func DecodeStepStates(raw string) (StepStates, error) {
	if raw == "" {
		return StepStates{}, nil
	}
	var states StepStates
	if err := json.Unmarshal([]byte(raw), &states); err != nil {
		return nil, fmt.Errorf("decode step states: %w", err)
	}
	if states == nil {
		states = StepStates{}
	}
	return states, nil
}
