package model

import "time"

// PullRequest is a pull request visible to the viewer, together with the
// nested assignment and review history fetched alongside it. URL is the stable
// identity used for deduplication and as the notification id.
type PullRequest struct {
	URL            string    `json:"url"`
	Title          string    `json:"title"`
	UpdatedAt      time.Time `json:"updated_at"`
	Author         string    `json:"author"`
	Assignees      []string  `json:"assignees"`
	ReviewRequests []string  `json:"review_requests"`
	Reviews        []Review  `json:"reviews"`
	Comments       []Comment `json:"comments"`
}

// Snapshot is the result of a single fetch: the authenticated viewer's login and
// every open pull request visible to them.
type Snapshot struct {
	Viewer       string
	PullRequests []PullRequest
}
