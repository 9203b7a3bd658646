package driven

import "context"

// Keys persisted by the cycle orchestrator.
const (
	KeyUnreviewedPullRequests = "unreviewedPullRequests"
	KeyLastSeenPullRequests   = "lastSeenPullRequests"
	KeyError                  = "error"
)

// StateStore defines the driven port for the small key/value state that crosses
// polling cycles. Values are opaque bytes; callers own the encoding.
type StateStore interface {
	// Get returns the values stored under keys. Keys with no stored value are
	// absent from the returned map.
	Get(ctx context.Context, keys ...string) (map[string][]byte, error)

	// Set writes all entries atomically, replacing existing values.
	Set(ctx context.Context, entries map[string][]byte) error
}
