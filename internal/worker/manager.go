// Package worker dispatches queued generation runs to the pipeline Runner.
//
// A single polling goroutine scans storage for work, so no two dispatches can
// claim the same video. Actual runs execute on their own goroutines, bounded
// by the configured concurrency limit. On startup, videos left in processing
// by a previous daemon instance are dispatched first so they resume before
// new work starts.
package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"clipforge/internal/config"
	"clipforge/internal/logging"
	"clipforge/internal/pipeline"
	"clipforge/internal/videos"
)

// Manager owns the dispatch loop and the run goroutines.
type Manager struct {
	cfg    *config.Config
	store  *videos.Store
	runner *pipeline.Runner
	logger *slog.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}

	slots  chan struct{}
	cancel context.CancelFunc
	done   chan struct{}
	wg     sync.WaitGroup
}

// NewManager builds a Manager. Concurrency below one is clamped to one.
func NewManager(cfg *config.Config, store *videos.Store, runner *pipeline.Runner, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	limit := cfg.Workflow.MaxConcurrentRuns
	if limit < 1 {
		limit = 1
	}
	return &Manager{
		cfg:      cfg,
		store:    store,
		runner:   runner,
		logger:   logger.With(logging.String(logging.FieldComponent, "worker")),
		inFlight: make(map[string]struct{}),
		slots:    make(chan struct{}, limit),
	}
}

// Start launches the dispatch loop. It returns immediately; Stop shuts the
// loop down and waits for in-flight runs.
func (m *Manager) Start(ctx context.Context) error {
	if m.cancel != nil {
		return errors.New("worker already started")
	}
	loopCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})

	go m.dispatchLoop(loopCtx)
	m.logger.Info("worker started",
		logging.Int("max_concurrent_runs", cap(m.slots)),
		logging.String(logging.FieldEventType, "worker_started"),
	)
	return nil
}

// Stop cancels dispatching and blocks until running pipelines return.
func (m *Manager) Stop() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done
	m.wg.Wait()
	m.logger.Info("worker stopped",
		logging.String(logging.FieldEventType, "worker_stopped"),
	)
}

func (m *Manager) dispatchLoop(ctx context.Context) {
	defer close(m.done)

	m.resumeInterrupted(ctx)

	interval := time.Duration(m.cfg.Workflow.QueuePollInterval) * time.Second
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		m.dispatchPending(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// resumeInterrupted dispatches videos a previous daemon left mid-run.
func (m *Manager) resumeInterrupted(ctx context.Context) {
	interrupted, err := m.store.List(ctx, videos.StatusProcessing)
	if err != nil {
		m.logger.Error("failed to list interrupted runs", logging.Error(err))
		return
	}
	// List is newest-first; resume oldest work first.
	for i := len(interrupted) - 1; i >= 0; i-- {
		video := interrupted[i]
		m.logger.Info("resuming interrupted run",
			logging.String(logging.FieldVideoID, video.ID),
			logging.String(logging.FieldEventType, "run_resumed"),
		)
		if !m.dispatch(ctx, video.ID) {
			return
		}
	}
}

// dispatchPending scans the pending queue oldest-first and starts whatever
// fits in the remaining run slots. Owner-level concurrency rejections leave
// the video pending for a later poll.
func (m *Manager) dispatchPending(ctx context.Context) {
	pending, err := m.store.List(ctx, videos.StatusPending)
	if err != nil {
		m.logger.Error("failed to list pending videos", logging.Error(err))
		return
	}
	for i := len(pending) - 1; i >= 0; i-- {
		if ctx.Err() != nil {
			return
		}
		if !m.dispatch(ctx, pending[i].ID) {
			return
		}
	}
}

// dispatch starts one run if a slot is free. It returns false when the loop
// should stop handing out work (shutdown or saturation).
func (m *Manager) dispatch(ctx context.Context, videoID string) bool {
	m.mu.Lock()
	if _, running := m.inFlight[videoID]; running {
		m.mu.Unlock()
		return true
	}
	m.mu.Unlock()

	select {
	case m.slots <- struct{}{}:
	case <-ctx.Done():
		return false
	default:
		return false
	}

	m.mu.Lock()
	m.inFlight[videoID] = struct{}{}
	m.mu.Unlock()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer func() {
			<-m.slots
			m.mu.Lock()
			delete(m.inFlight, videoID)
			m.mu.Unlock()
		}()

		err := m.runner.Run(ctx, videoID)
		switch {
		case err == nil:
		case pipeline.IsConcurrencyRejection(err):
			m.logger.Debug("run deferred, owner already processing",
				logging.String(logging.FieldVideoID, videoID),
				logging.String(logging.FieldEventType, "run_deferred"),
			)
		default:
			m.logger.Error("run ended with error",
				logging.String(logging.FieldVideoID, videoID),
				logging.Error(err),
				logging.String(logging.FieldEventType, "run_errored"),
			)
		}
	}()
	return true
}
