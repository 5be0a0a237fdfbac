package logging

import (
	"context"
	"log/slog"

	"clipforge/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldVideoID is the standardized structured logging key for video identifiers.
	FieldVideoID = "video_id"
	// FieldOwnerID is the standardized structured logging key for owning user identifiers.
	FieldOwnerID = "owner_id"
	// FieldStep is the standardized structured logging key for pipeline step names.
	FieldStep = "step"
	// FieldCorrelationID is the standardized structured logging key for request correlation identifiers.
	FieldCorrelationID = "correlation_id"
	// FieldEventType tags records with a machine-readable event classification.
	FieldEventType = "event_type"
	// FieldErrorHint carries an operator-facing remediation hint.
	FieldErrorHint = "error_hint"
)

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 4)
	if id, ok := services.VideoIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldVideoID, id))
	}
	if id, ok := services.OwnerIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldOwnerID, id))
	}
	if step, ok := services.StepFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldStep, step))
	}
	if rid, ok := services.RequestIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCorrelationID, rid))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
