package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"clipforge/internal/config"
	"clipforge/internal/integrations"
	"clipforge/internal/logging"
	"clipforge/internal/notifications"
	"clipforge/internal/services"
	"clipforge/internal/stage"
	"clipforge/internal/videos"
	"clipforge/internal/workspace"
)

// notifyTimeout bounds fire-and-forget notification deliveries so they never
// outlive the daemon by much.
const notifyTimeout = 15 * time.Second

// Runner executes one generation run end to end.
type Runner struct {
	cfg         *config.Config
	store       *videos.Store
	state       *StateManager
	guard       *Guard
	registry    *integrations.Registry
	workspace   *workspace.Manager
	notifier    notifications.Service
	credentials integrations.CredentialResolver
	logger      *slog.Logger
}

// NewRunner wires a Runner from its collaborators.
func NewRunner(
	cfg *config.Config,
	store *videos.Store,
	registry *integrations.Registry,
	ws *workspace.Manager,
	notifier notifications.Service,
	logger *slog.Logger,
) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	if notifier == nil {
		notifier = notifications.NewService(cfg)
	}
	return &Runner{
		cfg:         cfg,
		store:       store,
		state:       NewStateManager(store, logger),
		guard:       NewGuard(store),
		registry:    registry,
		workspace:   ws,
		notifier:    notifier,
		credentials: integrations.NewStaticCredentials(cfg.Providers.Credentials),
		logger:      logger,
	}
}

// UseCredentials swaps the default config-backed credential resolver for
// another implementation, such as a per-owner vault.
func (r *Runner) UseCredentials(resolver integrations.CredentialResolver) {
	if resolver != nil {
		r.credentials = resolver
	}
}

// Run drives the video through the step sequence. A video already marked
// processing is resumed at the step after its last completed one; the
// concurrency guard applies only to fresh starts. The returned error reports
// why the run stopped; durable state has already been updated by then.
func (r *Runner) Run(ctx context.Context, videoID string) (err error) {
	video, err := r.store.GetByID(ctx, videoID)
	if err != nil {
		return services.Wrap(services.ErrTransient, "", "load video", "", err)
	}
	if video == nil {
		return services.Wrap(services.ErrNotFound, "", "load video", "video "+videoID+" does not exist", nil)
	}
	if video.Status.IsTerminal() {
		return nil
	}

	ctx = services.WithVideoID(ctx, video.ID)
	ctx = services.WithOwnerID(ctx, video.OwnerID)
	logger := logging.WithContext(ctx, r.logger)

	resume := video.Status == videos.StatusProcessing
	if !resume {
		if err := r.guard.Acquire(ctx, video.OwnerID, video.ID); err != nil {
			return err
		}
	}

	set, err := r.registry.Resolve(r.cfg, video.Config.ProviderOverrides)
	if err != nil {
		video.Status = videos.StatusFailed
		video.ErrorMessage = err.Error()
		if persistErr := r.store.Update(ctx, video); persistErr != nil {
			logger.Error("failed to persist configuration failure", logging.Error(persistErr))
		}
		r.notifyFailed(video, "", err.Error())
		return err
	}

	workDir, err := r.workspace.Acquire(video.ID)
	if err != nil {
		return services.Wrap(services.ErrTransient, "", "acquire workspace", "", err)
	}
	releaseWorkspace := true
	defer func() {
		if !releaseWorkspace {
			return
		}
		if cleanupErr := r.workspace.Release(video.ID); cleanupErr != nil {
			logger.Warn("workspace cleanup failed", logging.Error(cleanupErr))
		}
	}()

	// A panic anywhere in the run is converted into a step failure so the
	// durable record never shows a step stuck in processing after a crash
	// the daemon survived.
	defer func() {
		if recovered := recover(); recovered != nil {
			message := fmt.Sprintf("internal error: %v", recovered)
			step, _ := stage.ParseCategory(video.CurrentStep)
			if failErr := r.state.FailStep(context.WithoutCancel(ctx), video, step, message, nil); failErr != nil {
				logger.Error("failed to persist panic failure", logging.Error(failErr))
			}
			r.notifyFailed(video, video.CurrentStep, message)
			err = services.Wrap(services.ErrStageExecution, video.CurrentStep, "execute step", message, nil)
		}
	}()

	if err := r.state.Initialize(ctx, video); err != nil {
		return r.transitionErr(logger, err)
	}
	if !resume {
		r.notifyStarted(video)
	}

	outputs := &stepOutputs{}
	if err := outputs.hydrate(video); err != nil {
		return err
	}
	subtitleURL := video.Outputs.SubtitleURL

	start, more := video.ResumeStep()
	if more {
		for _, category := range stage.Order()[stage.Index(start):] {
			latest, refreshErr := r.state.Refresh(ctx, video.ID)
			if refreshErr != nil {
				return refreshErr
			}
			if latest == nil {
				logger.Info("video deleted mid-run, abandoning",
					logging.String(logging.FieldEventType, "run_abandoned"))
				return nil
			}
			if latest.Status == videos.StatusCancelled {
				logger.Info("video cancelled mid-run, stopping",
					logging.String(logging.FieldEventType, "run_cancelled"))
				return nil
			}
			video = latest

			adapter, ok := set[category]
			if !ok {
				if err := r.state.SkipStep(ctx, video, category, "no provider configured"); err != nil {
					return r.transitionErr(logger, err)
				}
				continue
			}

			if category == stage.Assembly {
				subtitleURL, err = r.ensureSubtitles(outputs, video.Config, workDir, subtitleURL)
				if err != nil {
					return r.failStep(ctx, video, category, err.Error(), nil)
				}
				if subtitleURL != video.Outputs.SubtitleURL {
					video.Outputs.SubtitleURL = subtitleURL
				}
			}

			if err := r.state.StartStep(ctx, video, category); err != nil {
				return r.transitionErr(logger, err)
			}
			input, inputErr := outputs.inputFor(category, video.Config, subtitleURL)
			if inputErr != nil {
				return r.failStep(ctx, video, category, inputErr.Error(), nil)
			}

			execCtx := services.WithStep(ctx, string(category))
			// Missing credentials are not fatal here: the stub providers run
			// unauthenticated, and vendor adapters report their own auth
			// failures through the result envelope.
			if secret, credErr := r.credentials.Resolve(execCtx, video.OwnerID, adapter.Provider()); credErr == nil {
				execCtx = services.WithCredential(execCtx, secret)
			}

			result, execErr := adapter.Execute(execCtx, input)
			if execErr != nil {
				if ctx.Err() != nil {
					// Shutdown interruption: leave the step marked
					// processing so the next run restarts it, and keep the
					// workspace for reuse.
					releaseWorkspace = false
					return services.Wrap(services.ErrTransient, string(category), "execute step", "run interrupted", ctx.Err())
				}
				return r.failStep(ctx, video, category, execErr.Error(), nil)
			}
			if !result.Success {
				message := result.Error
				if message == "" {
					message = "step reported failure without a message"
				}
				return r.failStep(ctx, video, category, message, result.ErrorDetails)
			}

			if err := r.state.CompleteStep(ctx, video, category, result); err != nil {
				return r.transitionErr(logger, err)
			}
			if err := outputs.record(category, result.Data); err != nil {
				return err
			}

			if category == stage.Voice && video.Config.SubtitlesEnabled && outputs.voice != nil {
				narration := ""
				if outputs.script != nil {
					narration = Narration(*outputs.script)
				}
				segments := buildSubtitleSegments(*outputs.voice, result.TimingSegments, narration)
				subtitleURL, err = writeSubtitles(workDir, video.Config, segments)
				if err != nil {
					return r.failStep(ctx, video, category, err.Error(), nil)
				}
				video.Outputs.SubtitleURL = subtitleURL
			}
		}
	}

	if outputs.assembly == nil {
		return r.failStep(ctx, video, stage.Assembly, "assembly produced no output", nil)
	}
	finalOutputs := videos.Outputs{
		VideoURL:        outputs.assembly.VideoURL,
		ThumbnailURL:    outputs.assembly.ThumbnailURL,
		SubtitleURL:     subtitleURL,
		DurationSeconds: outputs.assembly.DurationSeconds,
		FileSizeBytes:   outputs.assembly.FileSizeBytes,
		Resolution:      outputs.assembly.Resolution,
	}
	if err := r.state.CompletePipeline(ctx, video, finalOutputs); err != nil {
		return r.transitionErr(logger, err)
	}
	r.notifyCompleted(video, finalOutputs.VideoURL)
	return nil
}

// ensureSubtitles regenerates the subtitle document when a resumed run lost
// its workspace copy. Provider timing is gone by then, so the regenerated
// cues fall back to duration-proportional estimation.
func (r *Runner) ensureSubtitles(outputs *stepOutputs, cfg videos.PipelineConfig, workDir, subtitleURL string) (string, error) {
	if !cfg.SubtitlesEnabled || outputs.voice == nil {
		return subtitleURL, nil
	}
	if subtitleURL != "" {
		if _, err := os.Stat(subtitleURL); err == nil {
			return subtitleURL, nil
		}
	}
	narration := ""
	if outputs.script != nil {
		narration = Narration(*outputs.script)
	}
	segments := buildSubtitleSegments(*outputs.voice, nil, narration)
	return writeSubtitles(workDir, cfg, segments)
}

func (r *Runner) failStep(ctx context.Context, video *videos.Video, category stage.Category, message string, details map[string]any) error {
	if err := r.state.FailStep(ctx, video, category, message, details); err != nil {
		return r.transitionErr(r.logger, err)
	}
	r.notifyFailed(video, string(category), message)
	return services.Wrap(services.ErrStageExecution, string(category), "execute step", message, nil)
}

// transitionErr converts a mid-run deletion into a quiet abandon; any other
// persistence failure propagates.
func (r *Runner) transitionErr(logger *slog.Logger, err error) error {
	if errors.Is(err, services.ErrNotFound) {
		logger.Info("video deleted mid-run, abandoning",
			logging.String(logging.FieldEventType, "run_abandoned"))
		return nil
	}
	return err
}

func (r *Runner) notifyStarted(video *videos.Video) {
	r.notifyAsync("started", func(ctx context.Context) error {
		return r.notifier.GenerationStarted(ctx, video.OwnerID, video.ID, video.Prompt)
	})
}

func (r *Runner) notifyCompleted(video *videos.Video, videoURL string) {
	r.notifyAsync("completed", func(ctx context.Context) error {
		return r.notifier.GenerationCompleted(ctx, video.OwnerID, video.ID, videoURL)
	})
}

func (r *Runner) notifyFailed(video *videos.Video, step, message string) {
	r.notifyAsync("failed", func(ctx context.Context) error {
		return r.notifier.GenerationFailed(ctx, video.OwnerID, video.ID, step, message)
	})
}

// notifyAsync delivers a notification without blocking or failing the run.
func (r *Runner) notifyAsync(event string, deliver func(context.Context) error) {
	logger := r.logger
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := deliver(ctx); err != nil {
			logger.Warn("notification delivery failed",
				logging.String("event", event),
				logging.Error(err),
				logging.String(logging.FieldEventType, "notification_failed"),
			)
		}
	}()
}

// IsConcurrencyRejection reports whether a run error was the advisory
// one-per-owner rejection, which callers treat as "try again later" rather
// than a failure.
func IsConcurrencyRejection(err error) bool {
	return errors.Is(err, services.ErrConcurrency)
}
