package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"clipforge/internal/logging"
	"clipforge/internal/services"
	"clipforge/internal/stage"
	"clipforge/internal/videos"
)

// StateManager persists durable run and step transitions. Every mutation
// writes through to storage immediately so a crash at any point leaves a
// resumable record.
type StateManager struct {
	store  *videos.Store
	logger *slog.Logger
}

// NewStateManager builds a StateManager over the given store.
func NewStateManager(store *videos.Store, logger *slog.Logger) *StateManager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &StateManager{store: store, logger: logger}
}

// Initialize marks the video as processing at the start of a run. The
// generation start time is only set once so resumed runs keep the original.
func (m *StateManager) Initialize(ctx context.Context, video *videos.Video) error {
	video.Status = videos.StatusProcessing
	video.ErrorMessage = ""
	if video.GenerationStartedAt == nil {
		now := time.Now().UTC()
		video.GenerationStartedAt = &now
	}
	return m.persist(ctx, video, "initialize run")
}

// StartStep records a step entering the processing state and moves overall
// progress to the step's lower bound.
func (m *StateManager) StartStep(ctx context.Context, video *videos.Video, c stage.Category) error {
	now := time.Now().UTC()
	state := video.StepState(c)
	state.Status = videos.StepProcessing
	state.Progress = ProgressOnStart(c)
	state.StartedAt = &now
	state.CompletedAt = nil
	state.Error = ""
	state.ErrorDetails = nil
	video.SetStepState(c, state)

	video.CurrentStep = string(c)
	video.Progress = ProgressOnStart(c)
	video.LastStepUpdatedAt = &now

	m.logger.Info("step started",
		logging.String(logging.FieldVideoID, video.ID),
		logging.String(logging.FieldStep, string(c)),
		logging.String(logging.FieldEventType, "step_started"),
	)
	return m.persist(ctx, video, "start step")
}

// CompleteStep records a successful step, preserving the adapter's output
// payload exactly as returned.
func (m *StateManager) CompleteStep(ctx context.Context, video *videos.Video, c stage.Category, result stage.Result) error {
	now := time.Now().UTC()
	state := video.StepState(c)
	state.Status = videos.StepCompleted
	state.Progress = 100
	state.CompletedAt = &now
	state.Result = result.Data
	state.Error = ""
	state.ErrorDetails = nil
	video.SetStepState(c, state)

	video.Progress = ProgressOnComplete(c)
	video.LastStepUpdatedAt = &now

	m.logger.Info("step completed",
		logging.String(logging.FieldVideoID, video.ID),
		logging.String(logging.FieldStep, string(c)),
		logging.String(logging.FieldEventType, "step_completed"),
	)
	return m.persist(ctx, video, "complete step")
}

// SkipStep records an optional step that will not run. Overall progress is
// left where it was; the next step's start advances it.
func (m *StateManager) SkipStep(ctx context.Context, video *videos.Video, c stage.Category, reason string) error {
	now := time.Now().UTC()
	state := video.StepState(c)
	state.Status = videos.StepSkipped
	state.CompletedAt = &now
	if reason != "" {
		state.Result = map[string]any{"reason": reason}
	}
	video.SetStepState(c, state)

	video.LastStepUpdatedAt = &now

	m.logger.Info("step skipped",
		logging.String(logging.FieldVideoID, video.ID),
		logging.String(logging.FieldStep, string(c)),
		logging.String("reason", reason),
		logging.String(logging.FieldEventType, "step_skipped"),
	)
	return m.persist(ctx, video, "skip step")
}

// FailStep records a failed step and fails the whole run. The adapter's raw
// error message and details are preserved verbatim in the step state.
func (m *StateManager) FailStep(ctx context.Context, video *videos.Video, c stage.Category, message string, details map[string]any) error {
	now := time.Now().UTC()
	state := video.StepState(c)
	state.Status = videos.StepFailed
	state.Error = message
	state.ErrorDetails = details
	video.SetStepState(c, state)

	video.Status = videos.StatusFailed
	video.ErrorMessage = fmt.Sprintf("failed at step %s: %s", c, message)
	video.LastStepUpdatedAt = &now

	m.logger.Error("step failed",
		logging.String(logging.FieldVideoID, video.ID),
		logging.String(logging.FieldStep, string(c)),
		logging.String("error", message),
		logging.String(logging.FieldEventType, "step_failed"),
	)
	return m.persist(ctx, video, "fail step")
}

// CompletePipeline records a fully successful run.
func (m *StateManager) CompletePipeline(ctx context.Context, video *videos.Video, outputs videos.Outputs) error {
	now := time.Now().UTC()
	video.Status = videos.StatusCompleted
	video.Progress = 100
	video.CurrentStep = ""
	video.ErrorMessage = ""
	video.Outputs = outputs
	video.LastStepUpdatedAt = &now

	m.logger.Info("pipeline completed",
		logging.String(logging.FieldVideoID, video.ID),
		logging.String("video_url", outputs.VideoURL),
		logging.String(logging.FieldEventType, "pipeline_completed"),
	)
	return m.persist(ctx, video, "complete pipeline")
}

// CancelPipeline records a cancelled run. The reason is kept on the video for
// the owner; a run in flight notices the status at its next step boundary.
func (m *StateManager) CancelPipeline(ctx context.Context, video *videos.Video, reason string) error {
	now := time.Now().UTC()
	video.Status = videos.StatusCancelled
	video.ErrorMessage = reason
	video.LastStepUpdatedAt = &now

	m.logger.Info("pipeline cancelled",
		logging.String(logging.FieldVideoID, video.ID),
		logging.String("reason", reason),
		logging.String(logging.FieldEventType, "pipeline_cancelled"),
	)
	return m.persist(ctx, video, "cancel pipeline")
}

// Refresh re-reads the video from storage, reporting deletion and external
// cancellation. The returned video, when present, is the authoritative copy.
func (m *StateManager) Refresh(ctx context.Context, videoID string) (*videos.Video, error) {
	video, err := m.store.GetByID(ctx, videoID)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, "", "refresh video", "", err)
	}
	return video, nil
}

// persist writes the video through to storage. Before writing it re-reads the
// stored row: a deletion aborts with ErrNotFound, and an externally requested
// cancellation is carried into the write instead of being clobbered by the
// in-memory processing status. This is what makes the between-step
// cancellation poll reliable even though steps persist full rows.
func (m *StateManager) persist(ctx context.Context, video *videos.Video, operation string) error {
	current, err := m.store.GetByID(ctx, video.ID)
	if err != nil {
		return services.Wrap(services.ErrTransient, video.CurrentStep, operation, "read video state", err)
	}
	if current == nil {
		return services.Wrap(services.ErrNotFound, video.CurrentStep, operation, "video was deleted", nil)
	}
	if current.Status == videos.StatusCancelled && video.Status == videos.StatusProcessing {
		video.Status = videos.StatusCancelled
	}
	if err := m.store.Update(ctx, video); err != nil {
		return services.Wrap(services.ErrTransient, video.CurrentStep, operation, "persist video state", err)
	}
	return nil
}
