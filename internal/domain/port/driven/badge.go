package driven

import (
	"context"

	"github.com/ericfisherdev/prbell/internal/domain/model"
)

// Badge defines the driven port for the unreviewed-count badge. Set writes
// text and color together so readers never observe one without the other.
type Badge interface {
	SetText(ctx context.Context, text string) error
	SetColor(ctx context.Context, color model.BadgeColor) error
	Set(ctx context.Context, badge model.Badge) error
}
