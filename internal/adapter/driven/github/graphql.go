package github

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/ericfisherdev/prbell/internal/domain/model"
)

// Page sizes bound the cost of the single viewer query. Anything beyond them is
// treated as absent rather than fetched.
const (
	repositoriesPageSize   = 100
	pullRequestsPageSize   = 50
	reviewsPageSize        = 20
	commentsPageSize       = 20
	assigneesPageSize      = 10
	reviewRequestsPageSize = 10
)

// viewerQuery fetches every open pull request visible to the viewer across their
// repositories, with the nested data the relevance filter and classifier need.
var viewerQuery = `query {
	viewer {
		login
		repositories(first: ` + strconv.Itoa(repositoriesPageSize) + `, orderBy: {field: PUSHED_AT, direction: DESC}) {
			pageInfo { hasNextPage }
			nodes {
				nameWithOwner
				pullRequests(first: ` + strconv.Itoa(pullRequestsPageSize) + `, states: OPEN, orderBy: {field: UPDATED_AT, direction: DESC}) {
					pageInfo { hasNextPage }
					nodes {
						url
						title
						updatedAt
						author { login }
						assignees(first: ` + strconv.Itoa(assigneesPageSize) + `) {
							nodes { login }
						}
						reviewRequests(first: ` + strconv.Itoa(reviewRequestsPageSize) + `) {
							nodes {
								requestedReviewer {
									... on User { login }
								}
							}
						}
						reviews(first: ` + strconv.Itoa(reviewsPageSize) + `) {
							nodes {
								author { login }
								createdAt
								state
							}
						}
						comments(first: ` + strconv.Itoa(commentsPageSize) + `) {
							nodes {
								author { login }
								createdAt
							}
						}
					}
				}
			}
		}
	}
}`

// graphqlRequest is the JSON body sent to the GitHub GraphQL API.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type pageInfo struct {
	HasNextPage bool `json:"hasNextPage"`
}

// actor is any GitHub account. It is nil for deleted ("ghost") accounts, and
// has an empty login for non-User reviewers such as teams.
type actor struct {
	Login string `json:"login"`
}

func (a *actor) login() string {
	if a == nil {
		return ""
	}
	return a.Login
}

type pullRequestNode struct {
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updatedAt"`
	Author    *actor    `json:"author"`
	Assignees struct {
		Nodes []actor `json:"nodes"`
	} `json:"assignees"`
	ReviewRequests struct {
		Nodes []struct {
			RequestedReviewer *actor `json:"requestedReviewer"`
		} `json:"nodes"`
	} `json:"reviewRequests"`
	Reviews struct {
		Nodes []struct {
			Author    *actor    `json:"author"`
			CreatedAt time.Time `json:"createdAt"`
			State     string    `json:"state"`
		} `json:"nodes"`
	} `json:"reviews"`
	Comments struct {
		Nodes []struct {
			Author    *actor    `json:"author"`
			CreatedAt time.Time `json:"createdAt"`
		} `json:"nodes"`
	} `json:"comments"`
}

// viewerResponse represents the expected shape of the viewer query response.
type viewerResponse struct {
	Data struct {
		Viewer struct {
			Login        string `json:"login"`
			Repositories struct {
				PageInfo pageInfo `json:"pageInfo"`
				Nodes    []struct {
					NameWithOwner string `json:"nameWithOwner"`
					PullRequests  struct {
						PageInfo pageInfo          `json:"pageInfo"`
						Nodes    []pullRequestNode `json:"nodes"`
					} `json:"pullRequests"`
				} `json:"nodes"`
			} `json:"repositories"`
		} `json:"viewer"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// mapSnapshot converts the GraphQL payload to a domain Snapshot. Truncated
// pages are logged and otherwise ignored.
func mapSnapshot(resp viewerResponse) model.Snapshot {
	viewer := resp.Data.Viewer

	if viewer.Repositories.PageInfo.HasNextPage {
		slog.Debug("graphql: repositories truncated", "page_size", repositoriesPageSize)
	}

	prs := make([]model.PullRequest, 0)
	for _, repo := range viewer.Repositories.Nodes {
		if repo.PullRequests.PageInfo.HasNextPage {
			slog.Debug("graphql: pull requests truncated",
				"repo", repo.NameWithOwner,
				"page_size", pullRequestsPageSize,
			)
		}
		for _, node := range repo.PullRequests.Nodes {
			prs = append(prs, mapPullRequest(node))
		}
	}

	return model.Snapshot{
		Viewer:       viewer.Login,
		PullRequests: prs,
	}
}

// mapPullRequest converts a GraphQL pull request node to a domain PullRequest.
// Accounts without a login are dropped from the nested collections.
func mapPullRequest(node pullRequestNode) model.PullRequest {
	assignees := make([]string, 0, len(node.Assignees.Nodes))
	for _, a := range node.Assignees.Nodes {
		if a.Login != "" {
			assignees = append(assignees, a.Login)
		}
	}

	reviewRequests := make([]string, 0, len(node.ReviewRequests.Nodes))
	for _, rr := range node.ReviewRequests.Nodes {
		if login := rr.RequestedReviewer.login(); login != "" {
			reviewRequests = append(reviewRequests, login)
		}
	}

	reviews := make([]model.Review, 0, len(node.Reviews.Nodes))
	for _, r := range node.Reviews.Nodes {
		if login := r.Author.login(); login != "" {
			reviews = append(reviews, model.Review{
				Author:    login,
				CreatedAt: r.CreatedAt,
				State:     model.ReviewState(r.State),
			})
		}
	}

	comments := make([]model.Comment, 0, len(node.Comments.Nodes))
	for _, c := range node.Comments.Nodes {
		if login := c.Author.login(); login != "" {
			comments = append(comments, model.Comment{
				Author:    login,
				CreatedAt: c.CreatedAt,
			})
		}
	}

	return model.PullRequest{
		URL:            node.URL,
		Title:          node.Title,
		UpdatedAt:      node.UpdatedAt,
		Author:         node.Author.login(),
		Assignees:      assignees,
		ReviewRequests: reviewRequests,
		Reviews:        reviews,
		Comments:       comments,
	}
}
