package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"clipforge/internal/config"
)

func TestDefaultValidates(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected missing config file")
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if cfg.Pipeline.TargetDurationSeconds != 45 {
		t.Fatalf("expected default duration, got %d", cfg.Pipeline.TargetDurationSeconds)
	}
	if cfg.Providers.Script != "stub" {
		t.Fatalf("expected stub script provider, got %q", cfg.Providers.Script)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[pipeline]
target_duration_seconds = 30
scene_count = 6

[providers]
script = "openai"
voice = "elevenlabs"
media = "pexels"
assembly = "shotstack"

[workflow]
max_concurrent_runs = 4
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if cfg.Pipeline.TargetDurationSeconds != 30 {
		t.Fatalf("expected duration 30, got %d", cfg.Pipeline.TargetDurationSeconds)
	}
	if cfg.Pipeline.SceneCount != 6 {
		t.Fatalf("expected scene count 6, got %d", cfg.Pipeline.SceneCount)
	}
	if cfg.Providers.Voice != "elevenlabs" {
		t.Fatalf("expected voice provider elevenlabs, got %q", cfg.Providers.Voice)
	}
	if cfg.Workflow.MaxConcurrentRuns != 4 {
		t.Fatalf("expected 4 concurrent runs, got %d", cfg.Workflow.MaxConcurrentRuns)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[pipeline]
aspect_ratio = "2:1"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for aspect ratio")
	}
}

func TestLoadRejectsMissingRequiredProvider(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[providers]
script = ""
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for missing script provider")
	}
}
