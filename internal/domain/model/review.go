package model

import "time"

// Review is a review submitted on a pull request.
type Review struct {
	Author    string      `json:"author"`
	CreatedAt time.Time   `json:"created_at"`
	State     ReviewState `json:"state"`
}

// Comment is a PR-level comment.
type Comment struct {
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}
