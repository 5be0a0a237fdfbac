package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and bind address configuration.
type Paths struct {
	DataDir      string `toml:"data_dir"`
	LogDir       string `toml:"log_dir"`
	WorkspaceDir string `toml:"workspace_dir"`
	APIBind      string `toml:"api_bind"`
	APIToken     string `toml:"api_token"`
}

// Pipeline contains defaults applied to new generation runs when the caller
// does not override them.
type Pipeline struct {
	TargetDurationSeconds int    `toml:"target_duration_seconds"`
	AspectRatio           string `toml:"aspect_ratio"`
	SceneCount            int    `toml:"scene_count"`
	VoiceStyle            string `toml:"voice_style"`
	VisualStyle           string `toml:"visual_style"`
	SubtitlesEnabled      bool   `toml:"subtitles_enabled"`
	SubtitleStyle         string `toml:"subtitle_style"`
}

// Providers selects the integration provider per step category. An empty
// video_ai provider disables that optional step; the other four are required.
// Credentials maps a provider name to the opaque secret its adapter sends to
// the vendor; providers without an entry run unauthenticated.
type Providers struct {
	Script      string            `toml:"script"`
	Voice       string            `toml:"voice"`
	Media       string            `toml:"media"`
	VideoAI     string            `toml:"video_ai"`
	Assembly    string            `toml:"assembly"`
	Credentials map[string]string `toml:"credentials"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
	Started        bool   `toml:"started"`
	Completed      bool   `toml:"completed"`
	Errors         bool   `toml:"errors"`
}

// Workflow contains configuration for worker timing and limits.
type Workflow struct {
	QueuePollInterval  int `toml:"queue_poll_interval"`
	ErrorRetryInterval int `toml:"error_retry_interval"`
	MaxConcurrentRuns  int `toml:"max_concurrent_runs"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for the clipforge daemon.
//
// Configuration sections by subsystem:
//   - Paths: directories and API bind address
//   - Pipeline: generation defaults (duration, scenes, styles, subtitles)
//   - Providers: integration provider selection per step category
//   - Notifications: ntfy push notification settings
//   - Workflow: worker polling intervals and run concurrency
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Pipeline      Pipeline      `toml:"pipeline"`
	Providers     Providers     `toml:"providers"`
	Notifications Notifications `toml:"notifications"`
	Workflow      Workflow      `toml:"workflow"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/clipforge/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. When path is empty the
// default location is consulted; a missing file yields repository defaults.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if os.IsNotExist(err) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if _, err := os.Stat(defaultPath); err != nil {
		if os.IsNotExist(err) {
			return defaultPath, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	return defaultPath, true, nil
}

// EnsureDirectories creates the directories the daemon needs at runtime.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir, c.Paths.WorkspaceDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// WriteSample writes the embedded sample configuration to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists at %s", expanded)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(expanded, []byte(sampleConfig), 0o644)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if trimmed == "~" {
			return home, nil
		}
		trimmed = filepath.Join(home, trimmed[2:])
	}
	abs, err := filepath.Abs(trimmed)
	if err != nil {
		return "", fmt.Errorf("resolve path %s: %w", path, err)
	}
	return abs, nil
}
