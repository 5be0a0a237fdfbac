package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseProviderOverrides(t *testing.T) {
	overrides, err := parseProviderOverrides([]string{"voice=elevenlabs", "media = pexels "})
	if err != nil {
		t.Fatalf("parseProviderOverrides failed: %v", err)
	}
	if overrides["voice"] != "elevenlabs" || overrides["media"] != "pexels" {
		t.Fatalf("unexpected overrides %#v", overrides)
	}

	for _, bad := range []string{"voice", "=x", "voice="} {
		if _, err := parseProviderOverrides([]string{bad}); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestShortIDAndTruncate(t *testing.T) {
	if got := shortID("0123456789abcdef"); got != "01234567" {
		t.Fatalf("shortID = %q", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Fatalf("shortID = %q", got)
	}
	if got := truncatePrompt("a long prompt about many things", 10); len([]rune(got)) != 10 {
		t.Fatalf("truncatePrompt = %q", got)
	}
}

func TestListCommandAgainstDaemon(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/videos" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("owner") != "user-1" {
			t.Errorf("expected owner filter, got %q", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"videos": []map[string]any{{
				"id":       "11112222-3333-4444-5555-666677778888",
				"owner_id": "user-1",
				"prompt":   "a short about coffee",
				"status":   "completed",
				"progress": 100,
			}},
		})
	}))
	defer server.Close()

	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"list", "--api", server.URL, "--owner", "user-1"})
	if err := root.Execute(); err != nil {
		t.Fatalf("list command failed: %v", err)
	}
	if !strings.Contains(out.String(), "11112222") || !strings.Contains(out.String(), "completed") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestCreateCommandRequiresOwner(t *testing.T) {
	root := newRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"create", "a prompt"})
	if err := root.Execute(); err == nil {
		t.Fatal("expected missing --owner to fail")
	}
}

func TestDaemonErrorSurfacesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "video is already cancelled"})
	}))
	defer server.Close()

	root := newRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"cancel", "some-id", "--api", server.URL})
	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "video is already cancelled") {
		t.Fatalf("expected daemon error message, got %v", err)
	}
}
