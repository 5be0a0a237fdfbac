package services

import "context"

type contextKey string

const (
	videoIDKey    contextKey = "video_id"
	ownerIDKey    contextKey = "owner_id"
	stepKey       contextKey = "step"
	requestIDKey  contextKey = "request_id"
	credentialKey contextKey = "credential"
)

// WithVideoID annotates context with the video identifier.
func WithVideoID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, videoIDKey, id)
}

// VideoIDFromContext extracts the video identifier if present.
func VideoIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(videoIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithOwnerID annotates context with the owning user identifier.
func WithOwnerID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, ownerIDKey, id)
}

// OwnerIDFromContext extracts the owning user identifier if present.
func OwnerIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(ownerIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithStep annotates context with the pipeline step name.
func WithStep(ctx context.Context, step string) context.Context {
	if step == "" {
		return ctx
	}
	return context.WithValue(ctx, stepKey, step)
}

// StepFromContext returns the step name if present.
func StepFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(stepKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithCredential annotates context with the opaque vendor credential resolved
// for the current step's provider. It is never logged.
func WithCredential(ctx context.Context, secret string) context.Context {
	if secret == "" {
		return ctx
	}
	return context.WithValue(ctx, credentialKey, secret)
}

// CredentialFromContext extracts the vendor credential if one was resolved.
func CredentialFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(credentialKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
