package application

import (
	"strings"

	"github.com/ericfisherdev/prbell/internal/domain/model"
)

// RelevantPullRequests returns the pull requests the viewer is involved in as an
// assignee, a requested reviewer, or a prior reviewer. Pull requests authored by
// the viewer are never relevant.
func RelevantPullRequests(viewer string, prs []model.PullRequest) []model.PullRequest {
	relevant := make([]model.PullRequest, 0, len(prs))
	for _, pr := range prs {
		if isRelevant(viewer, pr) {
			relevant = append(relevant, pr)
		}
	}
	return relevant
}

func isRelevant(viewer string, pr model.PullRequest) bool {
	if strings.EqualFold(pr.Author, viewer) {
		return false
	}

	return containsLogin(pr.Assignees, viewer) ||
		containsLogin(pr.ReviewRequests, viewer) ||
		hasReviewFrom(pr.Reviews, viewer)
}

// containsLogin checks if logins holds the given login, ignoring case.
func containsLogin(logins []string, login string) bool {
	for _, l := range logins {
		if strings.EqualFold(l, login) {
			return true
		}
	}
	return false
}

func hasReviewFrom(reviews []model.Review, login string) bool {
	for _, r := range reviews {
		if strings.EqualFold(r.Author, login) {
			return true
		}
	}
	return false
}
