package videos_test

import (
	"context"
	"testing"
	"time"

	"clipforge/internal/stage"
	"clipforge/internal/testsupport"
	"clipforge/internal/videos"
)

func TestCreateAndFetch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	video := testsupport.NewVideo(t, store, "user-1", "a short about coffee")
	if video.ID == "" {
		t.Fatal("expected generated video id")
	}
	if video.Status != videos.StatusPending {
		t.Fatalf("expected pending status, got %s", video.Status)
	}

	fetched, err := store.GetByID(ctx, video.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if fetched == nil || fetched.Prompt != "a short about coffee" {
		t.Fatalf("unexpected fetched video: %#v", fetched)
	}
	if fetched.Config.SceneCount != 3 {
		t.Fatalf("expected config round trip, got %#v", fetched.Config)
	}
}

func TestCreateRequiresOwnerAndPrompt(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	if _, err := store.Create(ctx, "", videos.PipelineConfig{Prompt: "x"}); err == nil {
		t.Fatal("expected error for missing owner")
	}
	if _, err := store.Create(ctx, "user-1", videos.PipelineConfig{}); err == nil {
		t.Fatal("expected error for missing prompt")
	}
}

func TestGetByIDMissingReturnsNil(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	video, err := store.GetByID(context.Background(), "does-not-exist")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if video != nil {
		t.Fatalf("expected nil for missing video, got %#v", video)
	}
}

func TestStepStatesRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	video := testsupport.NewVideo(t, store, "user-1", "prompt")

	started := time.Now().UTC().Truncate(time.Second)
	video.Status = videos.StatusProcessing
	video.CurrentStep = string(stage.Script)
	video.SetStepState(stage.Script, videos.StepState{
		Status:    videos.StepCompleted,
		Progress:  100,
		StartedAt: &started,
		Result:    map[string]any{"hook": "Did you know?"},
	})
	video.SetStepState(stage.Voice, videos.StepState{
		Status:       videos.StepFailed,
		Error:        "rate limited",
		ErrorDetails: map[string]any{"status": float64(429)},
	})
	if err := store.Update(ctx, video); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	fetched, err := store.GetByID(ctx, video.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	script := fetched.StepState(stage.Script)
	if script.Status != videos.StepCompleted || script.Progress != 100 {
		t.Fatalf("unexpected script state: %#v", script)
	}
	if script.Result["hook"] != "Did you know?" {
		t.Fatalf("expected result payload preserved, got %#v", script.Result)
	}
	if script.StartedAt == nil || !script.StartedAt.Equal(started) {
		t.Fatalf("expected started_at preserved, got %v", script.StartedAt)
	}
	voice := fetched.StepState(stage.Voice)
	if voice.Status != videos.StepFailed || voice.Error != "rate limited" {
		t.Fatalf("unexpected voice state: %#v", voice)
	}
	if voice.ErrorDetails["status"] != float64(429) {
		t.Fatalf("expected raw error details preserved, got %#v", voice.ErrorDetails)
	}
	if media := fetched.StepState(stage.Media); media.Status != videos.StepPending {
		t.Fatalf("expected untouched step to default to pending, got %#v", media)
	}
}

func TestCountProcessingForOwner(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	first := testsupport.NewVideo(t, store, "user-1", "first")
	second := testsupport.NewVideo(t, store, "user-1", "second")
	other := testsupport.NewVideo(t, store, "user-2", "other owner")

	first.Status = videos.StatusProcessing
	if err := store.Update(ctx, first); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	other.Status = videos.StatusProcessing
	if err := store.Update(ctx, other); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	count, err := store.CountProcessingForOwner(ctx, "user-1", second.ID)
	if err != nil {
		t.Fatalf("CountProcessingForOwner failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 processing video for owner, got %d", count)
	}

	count, err = store.CountProcessingForOwner(ctx, "user-1", first.ID)
	if err != nil {
		t.Fatalf("CountProcessingForOwner failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected exclusion of the identified video, got %d", count)
	}
}

func TestNextPendingOrdering(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	first := testsupport.NewVideo(t, store, "user-1", "first")
	time.Sleep(5 * time.Millisecond)
	testsupport.NewVideo(t, store, "user-2", "second")

	next, err := store.NextPending(ctx)
	if err != nil {
		t.Fatalf("NextPending failed: %v", err)
	}
	if next == nil || next.ID != first.ID {
		t.Fatalf("expected oldest pending video, got %#v", next)
	}
}

func TestDeleteAndStats(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	video := testsupport.NewVideo(t, store, "user-1", "prompt")
	testsupport.NewVideo(t, store, "user-1", "another")

	deleted, err := store.Delete(ctx, video.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !deleted {
		t.Fatal("expected delete to remove the row")
	}
	deleted, err = store.Delete(ctx, video.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted {
		t.Fatal("expected second delete to be a no-op")
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats[videos.StatusPending] != 1 {
		t.Fatalf("unexpected stats: %#v", stats)
	}
}

func TestUpdateMissingVideoFails(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	ctx := context.Background()
	video := testsupport.NewVideo(t, store, "user-1", "prompt")
	if _, err := store.Delete(ctx, video.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := store.Update(ctx, video); err == nil {
		t.Fatal("expected update of deleted video to fail")
	}
}
