package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePipeline()
	c.normalizeProviders()
	c.normalizeNotifications()
	c.normalizeWorkflow()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.WorkspaceDir, err = expandPath(c.Paths.WorkspaceDir); err != nil {
		return fmt.Errorf("paths.workspace_dir: %w", err)
	}
	c.Paths.APIBind = strings.TrimSpace(c.Paths.APIBind)
	if c.Paths.APIBind == "" {
		c.Paths.APIBind = defaultAPIBind
	}
	if c.Paths.APIToken == "" {
		if value, ok := os.LookupEnv("CLIPFORGE_API_TOKEN"); ok {
			c.Paths.APIToken = strings.TrimSpace(value)
		}
	}
	return nil
}

func (c *Config) normalizePipeline() {
	c.Pipeline.AspectRatio = strings.TrimSpace(c.Pipeline.AspectRatio)
	if c.Pipeline.AspectRatio == "" {
		c.Pipeline.AspectRatio = defaultAspectRatio
	}
	if c.Pipeline.TargetDurationSeconds <= 0 {
		c.Pipeline.TargetDurationSeconds = defaultTargetDurationSeconds
	}
	if c.Pipeline.SceneCount <= 0 {
		c.Pipeline.SceneCount = defaultSceneCount
	}
	c.Pipeline.VoiceStyle = strings.TrimSpace(c.Pipeline.VoiceStyle)
	if c.Pipeline.VoiceStyle == "" {
		c.Pipeline.VoiceStyle = defaultVoiceStyle
	}
	c.Pipeline.VisualStyle = strings.TrimSpace(c.Pipeline.VisualStyle)
	if c.Pipeline.VisualStyle == "" {
		c.Pipeline.VisualStyle = defaultVisualStyle
	}
	c.Pipeline.SubtitleStyle = strings.ToLower(strings.TrimSpace(c.Pipeline.SubtitleStyle))
	if c.Pipeline.SubtitleStyle == "" {
		c.Pipeline.SubtitleStyle = defaultSubtitleStyle
	}
}

func (c *Config) normalizeProviders() {
	c.Providers.Script = strings.ToLower(strings.TrimSpace(c.Providers.Script))
	c.Providers.Voice = strings.ToLower(strings.TrimSpace(c.Providers.Voice))
	c.Providers.Media = strings.ToLower(strings.TrimSpace(c.Providers.Media))
	c.Providers.VideoAI = strings.ToLower(strings.TrimSpace(c.Providers.VideoAI))
	c.Providers.Assembly = strings.ToLower(strings.TrimSpace(c.Providers.Assembly))
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyRequestTimeout
	}
}

func (c *Config) normalizeWorkflow() {
	if c.Workflow.QueuePollInterval <= 0 {
		c.Workflow.QueuePollInterval = defaultQueuePollInterval
	}
	if c.Workflow.ErrorRetryInterval <= 0 {
		c.Workflow.ErrorRetryInterval = defaultErrorRetryInterval
	}
	if c.Workflow.MaxConcurrentRuns <= 0 {
		c.Workflow.MaxConcurrentRuns = defaultMaxConcurrentRuns
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
