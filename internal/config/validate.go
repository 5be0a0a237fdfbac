package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validatePipeline(); err != nil {
		return err
	}
	if err := c.validateProviders(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Paths.WorkspaceDir) == "" {
		return errors.New("paths.workspace_dir must be set")
	}
	return nil
}

func (c *Config) validatePipeline() error {
	if c.Pipeline.TargetDurationSeconds < 5 || c.Pipeline.TargetDurationSeconds > 600 {
		return errors.New("pipeline.target_duration_seconds must be between 5 and 600")
	}
	if c.Pipeline.SceneCount < 1 || c.Pipeline.SceneCount > 20 {
		return errors.New("pipeline.scene_count must be between 1 and 20")
	}
	switch c.Pipeline.AspectRatio {
	case "9:16", "16:9", "1:1", "4:5":
	default:
		return fmt.Errorf("pipeline.aspect_ratio: unsupported value %q", c.Pipeline.AspectRatio)
	}
	return nil
}

func (c *Config) validateProviders() error {
	// video_ai is the one optional category; the pipeline records it as
	// skipped when no provider is configured.
	required := map[string]string{
		"providers.script":   c.Providers.Script,
		"providers.voice":    c.Providers.Voice,
		"providers.media":    c.Providers.Media,
		"providers.assembly": c.Providers.Assembly,
	}
	for key, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s must name a provider", key)
		}
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if c.Workflow.MaxConcurrentRuns < 1 {
		return errors.New("workflow.max_concurrent_runs must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
