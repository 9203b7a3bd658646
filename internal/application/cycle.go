package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/ericfisherdev/prbell/internal/domain/model"
	"github.com/ericfisherdev/prbell/internal/domain/port/driven"
)

// ErrNoSource is recorded as the cycle error when no pull request source is
// configured (no GitHub token).
var ErrNoSource = errors.New("no GitHub token configured")

// BadgeErrorText is the badge text shown after a failed cycle.
const BadgeErrorText = "!"

// DefaultFetchTimeout bounds a cycle's fetch, retries included. It stays
// below the HTTP server's write timeout so a manual refresh always answers.
const DefaultFetchTimeout = 60 * time.Second

const (
	notificationTitle = "Review requested"
	cycleKey          = "cycle"
)

// CycleOrchestrator sequences polling cycles: fetch, filter, classify, suppress,
// notify and persist. It owns the cross-cycle state (SeenSet, error and badge)
// and guarantees that at most one cycle runs at a time.
type CycleOrchestrator struct {
	source     driven.PullRequestSource
	stateStore driven.StateStore
	notifier   driven.Notifier
	badge      driven.Badge
	suppressor Suppressor
	interval   time.Duration
	logger     *slog.Logger

	fetchTimeout time.Duration

	group singleflight.Group
}

// CycleOption configures a CycleOrchestrator.
type CycleOption func(*CycleOrchestrator)

// WithFetchTimeout overrides DefaultFetchTimeout. Non-positive values are ignored.
func WithFetchTimeout(d time.Duration) CycleOption {
	return func(o *CycleOrchestrator) {
		if d > 0 {
			o.fetchTimeout = d
		}
	}
}

// NewCycleOrchestrator creates a CycleOrchestrator. source may be nil, in which
// case every cycle fails with ErrNoSource. A nil suppressor disables suppression.
func NewCycleOrchestrator(
	source driven.PullRequestSource,
	stateStore driven.StateStore,
	notifier driven.Notifier,
	badge driven.Badge,
	suppressor Suppressor,
	interval time.Duration,
	logger *slog.Logger,
	opts ...CycleOption,
) *CycleOrchestrator {
	if suppressor == nil {
		suppressor = NoSuppression{}
	}
	o := &CycleOrchestrator{
		source:       source,
		stateStore:   stateStore,
		notifier:     notifier,
		badge:        badge,
		suppressor:   suppressor,
		interval:     interval,
		logger:       logger,
		fetchTimeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Start runs an immediate install cycle, then a cycle on every tick of the
// configured interval. Start blocks until the context is canceled.
func (o *CycleOrchestrator) Start(ctx context.Context) {
	o.RunCycle(ctx, model.TriggerInstall)

	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			o.logger.Info("cycle orchestrator stopped")
			return
		case <-ticker.C:
			o.RunCycle(ctx, model.TriggerInterval)
		}
	}
}

// RunCycle runs one polling cycle and returns its result. Calls that arrive
// while a cycle is in flight do not start a second cycle; they wait for and
// share the in-flight cycle's result. RunCycle never panics and never returns
// an error directly: failures are reported in CycleResult.Err.
func (o *CycleOrchestrator) RunCycle(ctx context.Context, trigger model.Trigger) model.CycleResult {
	v, _, shared := o.group.Do(cycleKey, func() (any, error) {
		return o.runCycle(ctx, trigger), nil
	})

	result := v.(model.CycleResult)
	if shared && result.Trigger != trigger {
		o.logger.Info("trigger coalesced into in-flight cycle",
			"cycle_id", result.CycleID,
			"trigger", string(trigger),
			"in_flight_trigger", string(result.Trigger),
		)
	}
	return result
}

func (o *CycleOrchestrator) runCycle(ctx context.Context, trigger model.Trigger) (result model.CycleResult) {
	result = model.CycleResult{
		CycleID:   uuid.NewString(),
		Trigger:   trigger,
		StartedAt: time.Now(),
	}
	logger := o.logger.With("cycle_id", result.CycleID, "trigger", string(trigger))

	defer func() {
		if v := recover(); v != nil {
			logger.Error("panic recovered", "panic", v)
			result.Err = fmt.Errorf("cycle panicked: %v", v)
			o.persistFailure(ctx, logger, &result)
		}
		result.Duration = time.Since(result.StartedAt)
	}()

	snapshot, err := o.fetch(ctx)
	if err != nil {
		result.Err = err
		logger.Error("fetch failed", "error", err)
		o.persistFailure(ctx, logger, &result)
		return result
	}

	// The SeenSet read must precede this cycle's write of the same key.
	prior := o.loadSeen(ctx, logger)

	relevant := RelevantPullRequests(snapshot.Viewer, snapshot.PullRequests)
	result.Unreviewed = FilterUnreviewed(snapshot.Viewer, relevant)

	dedup := Dedup(result.Unreviewed, prior)
	result.NextSeen = dedup.NextSeen
	result.Resolved = dedup.Resolved

	result.ToNotify, err = o.suppressor.Suppress(ctx, dedup.ToNotify)
	if err != nil {
		logger.Warn("suppression failed, notifying all candidates", "error", err)
		result.ToNotify = dedup.ToNotify
	}

	o.notify(ctx, logger, result.ToNotify, result.Resolved)

	if err := o.persistSuccess(ctx, &result); err != nil {
		result.Err = err
		logger.Error("persist failed", "error", err)
		o.persistFailure(ctx, logger, &result)
		return result
	}

	logger.Info("cycle complete",
		"viewer", snapshot.Viewer,
		"fetched", len(snapshot.PullRequests),
		"relevant", len(relevant),
		"unreviewed", len(result.Unreviewed),
		"new", len(dedup.ToNotify),
		"notified", len(result.ToNotify),
		"resolved", len(result.Resolved),
		"duration", time.Since(result.StartedAt).Round(time.Millisecond),
	)

	return result
}

func (o *CycleOrchestrator) fetch(ctx context.Context) (model.Snapshot, error) {
	if o.source == nil {
		return model.Snapshot{}, ErrNoSource
	}

	fetchCtx, cancel := context.WithTimeout(ctx, o.fetchTimeout)
	defer cancel()

	snapshot, err := o.source.FetchSnapshot(fetchCtx)
	if err != nil {
		if !model.IsFetchError(err) && errors.Is(fetchCtx.Err(), context.DeadlineExceeded) {
			err = model.NewFetchError("snapshot", fmt.Errorf("no response within %s: %w", o.fetchTimeout, err))
		}
		return model.Snapshot{}, err
	}
	if snapshot.Viewer == "" {
		return model.Snapshot{}, model.NewFetchError("viewer", errors.New("empty viewer login"))
	}
	return snapshot, nil
}

// loadSeen reads the previous SeenSet. Any read or decode failure yields an
// empty set, so everything currently unreviewed counts as new.
func (o *CycleOrchestrator) loadSeen(ctx context.Context, logger *slog.Logger) model.SeenSet {
	values, err := o.stateStore.Get(ctx, driven.KeyLastSeenPullRequests)
	if err != nil {
		logger.Warn("failed to read last seen pull requests, treating as empty", "error", err)
		return model.SeenSet{}
	}

	raw, ok := values[driven.KeyLastSeenPullRequests]
	if !ok {
		return model.SeenSet{}
	}

	var urls []string
	if err := json.Unmarshal(raw, &urls); err != nil {
		logger.Warn("failed to decode last seen pull requests, treating as empty", "error", err)
		return model.SeenSet{}
	}
	return model.NewSeenSet(urls...)
}

// notify shows a notification for each new pull request and clears those that
// are no longer unreviewed. Each call is independent; failures are logged.
func (o *CycleOrchestrator) notify(ctx context.Context, logger *slog.Logger, toNotify []model.PullRequest, resolved []string) {
	for _, pr := range toNotify {
		n := model.Notification{
			Title:              notificationTitle,
			Body:               pr.Title,
			RequireInteraction: true,
		}
		if err := o.notifier.Show(ctx, pr.URL, n); err != nil {
			logger.Error("show notification failed", "url", pr.URL, "error", err)
		}
	}

	for _, url := range resolved {
		if err := o.notifier.Clear(ctx, url); err != nil && !errors.Is(err, driven.ErrNotFound) {
			logger.Error("clear notification failed", "url", url, "error", err)
		}
	}
}

func (o *CycleOrchestrator) persistSuccess(ctx context.Context, result *model.CycleResult) error {
	unreviewedJSON, err := json.Marshal(result.Unreviewed)
	if err != nil {
		return &model.StorageError{Op: "encode unreviewed pull requests", Err: err}
	}
	seenJSON, err := json.Marshal(result.NextSeen.URLs())
	if err != nil {
		return &model.StorageError{Op: "encode last seen pull requests", Err: err}
	}

	entries := map[string][]byte{
		driven.KeyUnreviewedPullRequests: unreviewedJSON,
		driven.KeyLastSeenPullRequests:   seenJSON,
		driven.KeyError:                  []byte("null"),
	}
	if err := o.stateStore.Set(ctx, entries); err != nil {
		return &model.StorageError{Op: "write cycle state", Err: err}
	}

	badge := model.Badge{Text: strconv.Itoa(len(result.Unreviewed)), Color: model.BadgeColorGreen}
	if len(result.Unreviewed) > 0 {
		badge.Color = model.BadgeColorRed
	}
	if err := o.setBadge(ctx, badge); err != nil {
		return &model.StorageError{Op: "write badge", Err: err}
	}
	result.Badge = badge

	return nil
}

// persistFailure records the cycle error and switches the badge to its error
// state. The previously persisted unreviewed list and SeenSet are left intact.
// Failures here can only be logged.
func (o *CycleOrchestrator) persistFailure(ctx context.Context, logger *slog.Logger, result *model.CycleResult) {
	result.Badge = model.Badge{Text: BadgeErrorText, Color: model.BadgeColorBlack}

	msg, err := json.Marshal(result.Err.Error())
	if err != nil {
		logger.Error("failed to encode cycle error", "error", err)
		return
	}
	if err := o.stateStore.Set(ctx, map[string][]byte{driven.KeyError: msg}); err != nil {
		logger.Error("failed to persist cycle error", "error", err)
	}
	if err := o.setBadge(ctx, result.Badge); err != nil {
		logger.Error("failed to set error badge", "error", err)
	}
}

func (o *CycleOrchestrator) setBadge(ctx context.Context, badge model.Badge) error {
	if err := o.badge.Set(ctx, badge); err != nil {
		return fmt.Errorf("set badge: %w", err)
	}
	return nil
}
