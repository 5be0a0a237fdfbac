package services_test

import (
	"context"
	"testing"

	"clipforge/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithVideoID(ctx, "vid-42")
	ctx = services.WithOwnerID(ctx, "user-7")
	ctx = services.WithStep(ctx, "voice")
	ctx = services.WithRequestID(ctx, "req-123")

	if id, ok := services.VideoIDFromContext(ctx); !ok || id != "vid-42" {
		t.Fatalf("unexpected video id: %v %v", id, ok)
	}
	if id, ok := services.OwnerIDFromContext(ctx); !ok || id != "user-7" {
		t.Fatalf("unexpected owner id: %v %v", id, ok)
	}
	if step, ok := services.StepFromContext(ctx); !ok || step != "voice" {
		t.Fatalf("unexpected step: %v %v", step, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
}

func TestBlankStepPreservesContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStep(ctx, "")
	if _, ok := services.StepFromContext(ctx); ok {
		t.Fatal("expected no step value")
	}
}
