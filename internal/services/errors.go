package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration marks failures caused by missing or invalid
	// configuration, such as a required step category with no resolvable
	// adapter. These fail a run before any step starts.
	ErrConfiguration = errors.New("configuration error")
	// ErrConcurrency marks a generation attempt rejected because another
	// run is already processing for the same owner.
	ErrConcurrency = errors.New("concurrency error")
	// ErrStageExecution marks a step adapter that reported failure.
	ErrStageExecution = errors.New("stage execution error")
	// ErrValidation marks malformed caller input.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks a missing video or resource.
	ErrNotFound = errors.New("not found")
	// ErrTransient marks unclassified internal failures.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes step context while tagging it
// with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, step, operation, message string, err error) error {
	detail := buildDetail(step, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(step, operation, message string) string {
	parts := make([]string, 0, 3)
	if step = strings.TrimSpace(step); step != "" {
		parts = append(parts, step)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
