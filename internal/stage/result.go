package stage

import (
	"encoding/json"
	"fmt"

	"clipforge/internal/timing"
)

// Result is the uniform envelope every adapter returns. Data carries the
// category-specific output payload; TimingSegments is populated only by
// voice adapters that report fine-grained narration timing.
type Result struct {
	Success        bool           `json:"success"`
	Data           map[string]any `json:"data,omitempty"`
	Error          string         `json:"error,omitempty"`
	ErrorDetails   map[string]any `json:"error_details,omitempty"`
	TimingSegments []timing.Unit  `json:"timing_segments,omitempty"`
}

// Succeed builds a successful Result from a typed output payload.
func Succeed(output any) (Result, error) {
	data, err := EncodeData(output)
	if err != nil {
		return Result{}, err
	}
	return Result{Success: true, Data: data}, nil
}

// Fail builds a failed Result preserving the adapter's raw error and details.
func Fail(message string, details map[string]any) Result {
	return Result{Success: false, Error: message, ErrorDetails: details}
}

// EncodeData converts a typed output struct into the map form the Result
// envelope and the persisted step state use.
func EncodeData(output any) (map[string]any, error) {
	if output == nil {
		return nil, nil
	}
	raw, err := json.Marshal(output)
	if err != nil {
		return nil, fmt.Errorf("encode step output: %w", err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("encode step output: %w", err)
	}
	return data, nil
}

// DecodeData converts a stored payload map back into a typed output struct.
// Orchestration logic always decodes immediately after read; untyped maps
// exist only at the storage boundary.
func DecodeData(data map[string]any, out any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("decode step output: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode step output: %w", err)
	}
	return nil
}
