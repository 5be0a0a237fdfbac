package testsupport

import (
	"path/filepath"
	"testing"

	"clipforge/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.WorkspaceDir = filepath.Join(base, "workspace")
	cfg.Paths.APIBind = "127.0.0.1:0"
	cfg.Workflow.QueuePollInterval = 1
	cfg.Workflow.ErrorRetryInterval = 1

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithSubtitlesDisabled turns off subtitle generation on the test config.
func WithSubtitlesDisabled() ConfigOption {
	return func(cfg *config.Config) {
		cfg.Pipeline.SubtitlesEnabled = false
	}
}

// WithProviders overrides the per-category provider selection.
func WithProviders(script, voice, media, videoAI, assembly string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Providers.Script = script
		cfg.Providers.Voice = voice
		cfg.Providers.Media = media
		cfg.Providers.VideoAI = videoAI
		cfg.Providers.Assembly = assembly
	}
}
