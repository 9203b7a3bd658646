package application_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ericfisherdev/prbell/internal/application"
	"github.com/ericfisherdev/prbell/internal/domain/model"
)

func urlsOf(prs []model.PullRequest) []string {
	urls := make([]string, 0, len(prs))
	for _, pr := range prs {
		urls = append(urls, pr.URL)
	}
	return urls
}

func TestRelevantPullRequests(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	prs := []model.PullRequest{
		{URL: "https://github.com/o/r/pull/1", Author: "alice", Assignees: []string{"me"}},
		{URL: "https://github.com/o/r/pull/2", Author: "alice", ReviewRequests: []string{"me"}},
		{URL: "https://github.com/o/r/pull/3", Author: "alice", Reviews: []model.Review{
			{Author: "me", CreatedAt: t0, State: model.ReviewStateCommented},
		}},
		{URL: "https://github.com/o/r/pull/4", Author: "alice", Assignees: []string{"bob"}},
		{URL: "https://github.com/o/r/pull/5", Author: "alice", Comments: []model.Comment{
			{Author: "me", CreatedAt: t0},
		}},
	}

	got := application.RelevantPullRequests("me", prs)

	assert.Equal(t, []string{
		"https://github.com/o/r/pull/1",
		"https://github.com/o/r/pull/2",
		"https://github.com/o/r/pull/3",
	}, urlsOf(got))
}

func TestRelevantPullRequests_SelfAuthoredExcluded(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	prs := []model.PullRequest{
		{
			URL:            "https://github.com/o/r/pull/1",
			Author:         "me",
			Assignees:      []string{"me"},
			ReviewRequests: []string{"me"},
			Reviews:        []model.Review{{Author: "me", CreatedAt: t0, State: model.ReviewStateApproved}},
		},
		{URL: "https://github.com/o/r/pull/2", Author: "Me", Assignees: []string{"me"}},
	}

	assert.Empty(t, application.RelevantPullRequests("me", prs))
}

func TestRelevantPullRequests_CaseInsensitiveLogin(t *testing.T) {
	prs := []model.PullRequest{
		{URL: "https://github.com/o/r/pull/1", Author: "alice", ReviewRequests: []string{"Octocat"}},
	}

	got := application.RelevantPullRequests("octocat", prs)
	assert.Len(t, got, 1)
}

func TestRelevantPullRequests_Empty(t *testing.T) {
	assert.Empty(t, application.RelevantPullRequests("me", nil))
}
