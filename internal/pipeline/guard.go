package pipeline

import (
	"context"
	"fmt"

	"clipforge/internal/services"
	"clipforge/internal/videos"
)

// Guard enforces the one-processing-run-per-owner policy. The check is
// advisory: it reads current state without locking, so two runs admitted in
// the same instant can both proceed. Resume bypasses the guard entirely — a
// video already marked processing is the run the guard exists to protect.
type Guard struct {
	store *videos.Store
}

// NewGuard builds a Guard over the given store.
func NewGuard(store *videos.Store) *Guard {
	return &Guard{store: store}
}

// Acquire admits a new run for the owner or rejects it with ErrConcurrency.
// The video being admitted is excluded from the count so a run never blocks
// itself.
func (g *Guard) Acquire(ctx context.Context, ownerID, videoID string) error {
	count, err := g.store.CountProcessingForOwner(ctx, ownerID, videoID)
	if err != nil {
		return services.Wrap(services.ErrTransient, "", "concurrency check", "", err)
	}
	if count > 0 {
		return services.Wrap(services.ErrConcurrency, "", "concurrency check",
			fmt.Sprintf("owner %s already has a video processing", ownerID), nil)
	}
	return nil
}
