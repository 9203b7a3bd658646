package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/prbell/internal/domain/model"
)

// ErrNotFound is returned when an operation addresses an id that does not exist.
var ErrNotFound = errors.New("not found")

// Notifier defines the driven port for showing and clearing notifications.
// The id is always the pull request URL; showing an id that is already live
// replaces the previous notification.
type Notifier interface {
	Show(ctx context.Context, id string, n model.Notification) error
	Clear(ctx context.Context, id string) error
}
