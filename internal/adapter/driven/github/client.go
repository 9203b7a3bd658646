// Package github implements the PullRequestSource port against the GitHub
// GraphQL API, using go-github for transport and rate-limit bookkeeping.
package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/gofri/go-github-ratelimit/v2/github_ratelimit"
	gh "github.com/google/go-github/v82/github"
	"golang.org/x/oauth2"

	"github.com/ericfisherdev/prbell/internal/domain/model"
	"github.com/ericfisherdev/prbell/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.PullRequestSource = (*Client)(nil)

// DefaultBaseURL is the GitHub API root; the GraphQL endpoint is resolved
// relative to it.
const DefaultBaseURL = "https://api.github.com/"

// DefaultTimeout bounds a single GraphQL round trip.
const DefaultTimeout = 30 * time.Second

const (
	defaultRetryAttempts = 3
	defaultRetryDelay    = time.Second
)

// Client implements the driven.PullRequestSource port.
type Client struct {
	gh            *gh.Client
	retryAttempts uint
	retryDelay    time.Duration
	timeout       time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithRetry sets how many attempts are made for transport-level failures and
// the initial delay between them.
func WithRetry(attempts uint, delay time.Duration) Option {
	if attempts == 0 {
		attempts = 1
	}
	return func(c *Client) {
		c.retryAttempts = attempts
		c.retryDelay = delay
	}
}

// WithTimeout overrides DefaultTimeout for clients built by NewClient.
// Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// NewClient creates a new GitHub API client with the following transport stack:
//  1. go-github-ratelimit (secondary rate limit middleware, sleeps on 429)
//  2. oauth2 (static bearer token)
//  3. go-github (request building, response checking, rate headers)
//
// baseURL may be empty to use DefaultBaseURL. Each round trip is bounded by
// DefaultTimeout unless WithTimeout says otherwise.
func NewClient(token, baseURL string, opts ...Option) (*Client, error) {
	settings := &Client{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(settings)
	}

	authTransport := &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		Base:   http.DefaultTransport,
	}
	rateLimitClient := github_ratelimit.NewClient(authTransport)
	rateLimitClient.Timeout = settings.timeout

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return NewClientWithHTTPClient(rateLimitClient, baseURL, opts...)
}

// NewClientWithHTTPClient creates a Client with a custom http.Client and base URL.
// This constructor is intended for testing, allowing injection of an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL string, opts ...Option) (*Client, error) {
	client := gh.NewClient(httpClient)

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("parsing base URL: %q is not absolute", baseURL)
	}
	if u.Path == "" || u.Path[len(u.Path)-1] != '/' {
		u.Path += "/"
	}
	client.BaseURL = u

	c := &Client{
		gh:            client,
		retryAttempts: defaultRetryAttempts,
		retryDelay:    defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchSnapshot runs the viewer query and maps the result to a domain Snapshot.
// Transport failures are retried; HTTP error responses and GraphQL errors are
// not, since each of those already counted against the rate limit.
func (c *Client) FetchSnapshot(ctx context.Context) (model.Snapshot, error) {
	var payload viewerResponse

	err := retry.Do(
		func() error {
			payload = viewerResponse{}
			req, err := c.gh.NewRequest(http.MethodPost, "graphql", graphqlRequest{Query: viewerQuery})
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("creating graphql request: %w", err))
			}

			resp, err := c.gh.Do(ctx, req, &payload)
			logRateLimit(resp)
			return err
		},
		retry.Attempts(c.retryAttempts),
		retry.Delay(c.retryDelay),
		retry.MaxDelay(30*time.Second),
		retry.MaxJitter(c.retryDelay),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("graphql: retrying viewer query", "attempt", n+1, "error", err)
		}),
		retry.RetryIf(func(err error) bool {
			return isTransient(ctx, err)
		}),
	)
	if err != nil {
		return model.Snapshot{}, model.NewFetchError("viewer query", err)
	}

	if len(payload.Errors) > 0 {
		return model.Snapshot{}, model.NewFetchError("viewer query", fmt.Errorf("graphql: %s", payload.Errors[0].Message))
	}

	return mapSnapshot(payload), nil
}

// isTransient reports whether err is a transport-level failure worth retrying.
// Responses that reached GitHub (error statuses, rate limits) are not, and
// neither are timeouts, which have already spent their budget.
func isTransient(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}

	var (
		errResp   *gh.ErrorResponse
		rateErr   *gh.RateLimitError
		abuseErr  *gh.AbuseRateLimitError
		transport *url.Error
	)
	switch {
	case errors.As(err, &errResp), errors.As(err, &rateErr), errors.As(err, &abuseErr):
		return false
	case errors.As(err, &transport):
		return !transport.Timeout()
	default:
		return false
	}
}

// logRateLimit logs the GitHub API rate limit status after each call.
func logRateLimit(resp *gh.Response) {
	if resp == nil {
		return
	}

	slog.Debug("github api call",
		"endpoint", "graphql",
		"status", resp.StatusCode,
		"rate_remaining", resp.Rate.Remaining,
		"rate_limit", resp.Rate.Limit,
	)

	if resp.Rate.Limit > 0 && resp.Rate.Remaining < 100 {
		slog.Warn("github rate limit low",
			"remaining", resp.Rate.Remaining,
			"reset_in", time.Until(resp.Rate.Reset.Time).Round(time.Second),
		)
	}
}
