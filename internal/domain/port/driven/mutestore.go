package driven

import (
	"context"

	"github.com/ericfisherdev/prbell/internal/domain/model"
)

// MuteStore defines the driven port for the pull request mute list.
// Mute is idempotent.
type MuteStore interface {
	Mute(ctx context.Context, url string) error
	Unmute(ctx context.Context, url string) error
	IsMuted(ctx context.Context, url string) (bool, error)
	ListMuted(ctx context.Context) ([]model.Mute, error)
	// ListMutedURLs returns the muted URLs as a set for O(1) lookup.
	ListMutedURLs(ctx context.Context) (map[string]struct{}, error)
}
