package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ericfisherdev/prbell/internal/domain/model"
	"github.com/ericfisherdev/prbell/internal/domain/port/driven"
)

// Suppressor filters notification candidates after classification. It is
// advisory: it never affects the unreviewed list, the badge, or the SeenSet.
type Suppressor interface {
	Suppress(ctx context.Context, candidates []model.PullRequest) ([]model.PullRequest, error)
}

// NoSuppression passes every candidate through.
type NoSuppression struct{}

// Suppress returns candidates unchanged.
func (NoSuppression) Suppress(_ context.Context, candidates []model.PullRequest) ([]model.PullRequest, error) {
	return candidates, nil
}

// MuteSuppressor drops candidates whose URL is on the mute list.
type MuteSuppressor struct {
	muteStore driven.MuteStore
	logger    *slog.Logger
}

// NewMuteSuppressor creates a MuteSuppressor backed by the given MuteStore.
func NewMuteSuppressor(ms driven.MuteStore, logger *slog.Logger) *MuteSuppressor {
	return &MuteSuppressor{muteStore: ms, logger: logger}
}

// Suppress removes muted pull requests from candidates.
func (s *MuteSuppressor) Suppress(ctx context.Context, candidates []model.PullRequest) ([]model.PullRequest, error) {
	if len(candidates) == 0 {
		return candidates, nil
	}

	muted, err := s.muteStore.ListMutedURLs(ctx)
	if err != nil {
		return candidates, fmt.Errorf("list muted URLs: %w", err)
	}

	kept := make([]model.PullRequest, 0, len(candidates))
	for _, pr := range candidates {
		if _, ok := muted[pr.URL]; ok {
			s.logger.Debug("notification suppressed by mute", "url", pr.URL)
			continue
		}
		kept = append(kept, pr)
	}
	return kept, nil
}
