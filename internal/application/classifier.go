package application

import (
	"strings"
	"time"

	"github.com/ericfisherdev/prbell/internal/domain/model"
)

// IsUnreviewed reports whether the viewer still owes a review on pr.
//
// An approval from the viewer satisfies the pull request permanently, even if
// it is updated afterwards. Any other review or comment only counts when it is
// strictly later than the pull request's current UpdatedAt.
func IsUnreviewed(viewer string, pr model.PullRequest) bool {
	var (
		approved     bool
		lastActivity time.Time // zero value predates any real timestamp
	)

	for _, r := range pr.Reviews {
		if !strings.EqualFold(r.Author, viewer) {
			continue
		}
		if r.State == model.ReviewStateApproved {
			approved = true
		}
		if r.CreatedAt.After(lastActivity) {
			lastActivity = r.CreatedAt
		}
	}

	for _, c := range pr.Comments {
		if strings.EqualFold(c.Author, viewer) && c.CreatedAt.After(lastActivity) {
			lastActivity = c.CreatedAt
		}
	}

	reviewed := approved || lastActivity.After(pr.UpdatedAt)
	return !reviewed
}

// FilterUnreviewed applies IsUnreviewed to every relevant pull request and
// returns the ones still awaiting the viewer's review.
func FilterUnreviewed(viewer string, relevant []model.PullRequest) []model.PullRequest {
	unreviewed := make([]model.PullRequest, 0, len(relevant))
	for _, pr := range relevant {
		if IsUnreviewed(viewer, pr) {
			unreviewed = append(unreviewed, pr)
		}
	}
	return unreviewed
}
