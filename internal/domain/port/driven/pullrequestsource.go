package driven

import (
	"context"

	"github.com/ericfisherdev/prbell/internal/domain/model"
)

// PullRequestSource defines the driven port for fetching the viewer's open pull
// requests. A single call corresponds to a single upstream request; failures
// are reported as *model.FetchError.
type PullRequestSource interface {
	FetchSnapshot(ctx context.Context) (model.Snapshot, error)
}
