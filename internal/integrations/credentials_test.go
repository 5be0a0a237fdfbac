package integrations_test

import (
	"context"
	"errors"
	"testing"

	"clipforge/internal/integrations"
	"clipforge/internal/services"
)

func TestStaticCredentialsResolve(t *testing.T) {
	resolver := integrations.NewStaticCredentials(map[string]string{
		"ElevenLabs": "sk-123",
	})

	secret, err := resolver.Resolve(context.Background(), "user-1", "elevenlabs")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if secret != "sk-123" {
		t.Fatalf("unexpected secret %q", secret)
	}

	if _, err := resolver.Resolve(context.Background(), "user-1", "pexels"); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error for unknown provider, got %v", err)
	}

	resolver.Set("Pexels", "px-456")
	secret, err = resolver.Resolve(context.Background(), "user-2", " pexels ")
	if err != nil {
		t.Fatalf("Resolve after Set failed: %v", err)
	}
	if secret != "px-456" {
		t.Fatalf("unexpected secret %q", secret)
	}
}
