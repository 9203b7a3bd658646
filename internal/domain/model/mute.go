package model

import "time"

// Mute records that the user asked not to be notified about a pull request.
type Mute struct {
	URL     string
	MutedAt time.Time
}
