package worker_test

import (
	"context"
	"testing"
	"time"

	"clipforge/internal/integrations"
	"clipforge/internal/integrations/stub"
	"clipforge/internal/logging"
	"clipforge/internal/notifications"
	"clipforge/internal/pipeline"
	"clipforge/internal/testsupport"
	"clipforge/internal/videos"
	"clipforge/internal/worker"
	"clipforge/internal/workspace"
)

func newManager(t *testing.T) (*worker.Manager, *videos.Store) {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	registry := integrations.NewRegistry()
	if err := stub.Register(registry); err != nil {
		t.Fatalf("stub.Register: %v", err)
	}
	ws, err := workspace.NewManager(cfg.Paths.WorkspaceDir)
	if err != nil {
		t.Fatalf("workspace.NewManager: %v", err)
	}
	runner := pipeline.NewRunner(cfg, store, registry, ws, notifications.NewService(cfg), logging.NewNop())
	return worker.NewManager(cfg, store, runner, logging.NewNop()), store
}

func waitForStatus(t *testing.T, store *videos.Store, id string, want videos.Status) {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		video, err := store.GetByID(context.Background(), id)
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if video != nil && video.Status == want {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	video, _ := store.GetByID(context.Background(), id)
	t.Fatalf("video %s never reached %s, last seen %#v", id, want, video)
}

func TestManagerProcessesQueuedVideos(t *testing.T) {
	manager, store := newManager(t)

	first := testsupport.NewVideo(t, store, "user-1", "first prompt")
	second := testsupport.NewVideo(t, store, "user-2", "second prompt")

	if err := manager.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer manager.Stop()

	waitForStatus(t, store, first.ID, videos.StatusCompleted)
	waitForStatus(t, store, second.ID, videos.StatusCompleted)
}

func TestManagerSerializesSameOwner(t *testing.T) {
	manager, store := newManager(t)

	first := testsupport.NewVideo(t, store, "user-1", "first prompt")
	second := testsupport.NewVideo(t, store, "user-1", "second prompt")

	if err := manager.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer manager.Stop()

	// Owner-level rejections leave the later video pending until the earlier
	// one finishes; both must complete eventually.
	waitForStatus(t, store, first.ID, videos.StatusCompleted)
	waitForStatus(t, store, second.ID, videos.StatusCompleted)
}

func TestManagerResumesInterruptedRunOnStartup(t *testing.T) {
	manager, store := newManager(t)

	video := testsupport.NewVideo(t, store, "user-1", "interrupted prompt")
	video.Status = videos.StatusProcessing
	if err := store.Update(context.Background(), video); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if err := manager.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer manager.Stop()

	waitForStatus(t, store, video.ID, videos.StatusCompleted)
}

func TestManagerStartTwiceFails(t *testing.T) {
	manager, _ := newManager(t)
	if err := manager.Start(context.Background()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer manager.Stop()
	if err := manager.Start(context.Background()); err == nil {
		t.Fatal("expected second Start to fail")
	}
}
