package config

const (
	defaultDataDir               = "~/.local/share/clipforge/data"
	defaultLogDir                = "~/.local/share/clipforge/logs"
	defaultWorkspaceDir          = "~/.local/share/clipforge/workspace"
	defaultAPIBind               = "127.0.0.1:7319"
	defaultTargetDurationSeconds = 45
	defaultAspectRatio           = "9:16"
	defaultSceneCount            = 4
	defaultVoiceStyle            = "narrative"
	defaultVisualStyle           = "cinematic"
	defaultSubtitleStyle         = "bold-center"
	defaultProvider              = "stub"
	defaultNotifyRequestTimeout  = 10
	defaultQueuePollInterval     = 5
	defaultErrorRetryInterval    = 10
	defaultMaxConcurrentRuns     = 2
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:      defaultDataDir,
			LogDir:       defaultLogDir,
			WorkspaceDir: defaultWorkspaceDir,
			APIBind:      defaultAPIBind,
		},
		Pipeline: Pipeline{
			TargetDurationSeconds: defaultTargetDurationSeconds,
			AspectRatio:           defaultAspectRatio,
			SceneCount:            defaultSceneCount,
			VoiceStyle:            defaultVoiceStyle,
			VisualStyle:           defaultVisualStyle,
			SubtitlesEnabled:      true,
			SubtitleStyle:         defaultSubtitleStyle,
		},
		Providers: Providers{
			Script:   defaultProvider,
			Voice:    defaultProvider,
			Media:    defaultProvider,
			Assembly: defaultProvider,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
			Started:        false,
			Completed:      true,
			Errors:         true,
		},
		Workflow: Workflow{
			QueuePollInterval:  defaultQueuePollInterval,
			ErrorRetryInterval: defaultErrorRetryInterval,
			MaxConcurrentRuns:  defaultMaxConcurrentRuns,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
