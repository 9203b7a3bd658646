package model

import "time"

// Notification is the payload of a notification keyed by pull request URL.
type Notification struct {
	Title              string `json:"title"`
	Body               string `json:"body"`
	RequireInteraction bool   `json:"require_interaction"`
}

// LiveNotification is a notification that has been shown and not yet cleared.
type LiveNotification struct {
	ID string
	Notification
	CreatedAt time.Time
}
