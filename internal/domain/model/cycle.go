package model

import "time"

// Badge is the count badge shown by the presentation layer.
type Badge struct {
	Text  string     `json:"text"`
	Color BadgeColor `json:"color"`
}

// DedupResult is the outcome of comparing this cycle's unreviewed set with the
// previous cycle's SeenSet.
type DedupResult struct {
	// ToNotify holds unreviewed pull requests whose URL was not previously seen.
	ToNotify []PullRequest
	// NextSeen is the URL set of the whole unreviewed set.
	NextSeen SeenSet
	// Resolved holds previously seen URLs that are no longer unreviewed.
	Resolved []string
}

// CycleResult is the output of one polling cycle.
type CycleResult struct {
	CycleID    string
	Trigger    Trigger
	Unreviewed []PullRequest
	ToNotify   []PullRequest
	NextSeen   SeenSet
	Resolved   []string
	Badge      Badge
	Err        error
	StartedAt  time.Time
	Duration   time.Duration
}

// OK reports whether the cycle completed without error.
func (r CycleResult) OK() bool {
	return r.Err == nil
}
