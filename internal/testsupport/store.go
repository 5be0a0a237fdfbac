package testsupport

import (
	"context"
	"testing"

	"clipforge/internal/config"
	"clipforge/internal/videos"
)

// MustOpenStore opens a videos.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *videos.Store {
	t.Helper()

	store, err := videos.Open(cfg)
	if err != nil {
		t.Fatalf("videos.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// NewVideo creates a pending video for tests using the provided store.
func NewVideo(t testing.TB, store *videos.Store, ownerID, prompt string) *videos.Video {
	t.Helper()

	video, err := store.Create(context.Background(), ownerID, videos.PipelineConfig{
		Prompt:                prompt,
		TargetDurationSeconds: 45,
		AspectRatio:           "9:16",
		SceneCount:            3,
		VoiceStyle:            "narrative",
		VisualStyle:           "cinematic",
		SubtitlesEnabled:      true,
		SubtitleStyle:         "bold-center",
	})
	if err != nil {
		t.Fatalf("store.Create: %v", err)
	}
	return video
}
