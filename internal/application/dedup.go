package application

import (
	"sort"

	"github.com/ericfisherdev/prbell/internal/domain/model"
)

// Dedup compares this cycle's unreviewed pull requests against the URLs seen in
// the previous cycle. Only unseen pull requests are returned for notification,
// while NextSeen always covers the full unreviewed set so that an item which
// drops out and later returns will notify again.
func Dedup(unreviewed []model.PullRequest, prior model.SeenSet) model.DedupResult {
	result := model.DedupResult{
		ToNotify: make([]model.PullRequest, 0),
		NextSeen: make(model.SeenSet, len(unreviewed)),
		Resolved: make([]string, 0),
	}

	for _, pr := range unreviewed {
		if !prior.Has(pr.URL) && !result.NextSeen.Has(pr.URL) {
			result.ToNotify = append(result.ToNotify, pr)
		}
		result.NextSeen[pr.URL] = struct{}{}
	}

	for url := range prior {
		if !result.NextSeen.Has(url) {
			result.Resolved = append(result.Resolved, url)
		}
	}
	sort.Strings(result.Resolved)

	return result
}
