// Package httphandler is the HTTP driving adapter. It exposes the persisted
// cycle state, live notifications and mutes as a JSON API.
package httphandler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ericfisherdev/prbell/internal/domain/model"
	"github.com/ericfisherdev/prbell/internal/domain/port/driven"
)

const healthPath = "/api/v1/health"

// Refresher runs a polling cycle on demand.
type Refresher interface {
	RunCycle(ctx context.Context, trigger model.Trigger) model.CycleResult
}

// BadgeReader returns the badge written by the last cycle.
type BadgeReader interface {
	Current(ctx context.Context) (model.Badge, error)
}

// Inbox is the store of live notifications the presentation layer reads.
type Inbox interface {
	List(ctx context.Context) ([]model.LiveNotification, error)
	Get(ctx context.Context, id string) (model.LiveNotification, error)
	Clear(ctx context.Context, id string) error
}

// OpenFunc opens a URL for the user, typically in a browser.
type OpenFunc func(url string) error

// Handler is the HTTP driving adapter that serves the REST API.
type Handler struct {
	refresher  Refresher
	stateStore driven.StateStore
	badge      BadgeReader
	inbox      Inbox
	muteStore  driven.MuteStore
	open       OpenFunc
	logger     *slog.Logger
}

// NewHandler creates a Handler. A nil open disables opening URLs on click.
func NewHandler(
	refresher Refresher,
	stateStore driven.StateStore,
	badge BadgeReader,
	inbox Inbox,
	muteStore driven.MuteStore,
	open OpenFunc,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		refresher:  refresher,
		stateStore: stateStore,
		badge:      badge,
		inbox:      inbox,
		muteStore:  muteStore,
		open:       open,
		logger:     logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with logging and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET "+healthPath, h.Health)
	mux.HandleFunc("GET /api/v1/unreviewed", h.ListUnreviewed)
	mux.HandleFunc("GET /api/v1/status", h.Status)
	mux.HandleFunc("POST /api/v1/refresh", h.Refresh)
	mux.HandleFunc("GET /api/v1/notifications", h.ListNotifications)
	mux.HandleFunc("POST /api/v1/notifications/click", h.ClickNotification)
	mux.HandleFunc("DELETE /api/v1/notifications", h.ClearNotification)
	mux.HandleFunc("GET /api/v1/mutes", h.ListMutes)
	mux.HandleFunc("POST /api/v1/mutes", h.AddMute)
	mux.HandleFunc("DELETE /api/v1/mutes", h.RemoveMute)

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// ListUnreviewed returns the unreviewed pull requests persisted by the last
// successful cycle, each flagged with its mute state.
func (h *Handler) ListUnreviewed(w http.ResponseWriter, r *http.Request) {
	values, err := h.stateStore.Get(r.Context(), driven.KeyUnreviewedPullRequests)
	if err != nil {
		h.logger.Error("failed to read unreviewed pull requests", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	var prs []model.PullRequest
	if raw, ok := values[driven.KeyUnreviewedPullRequests]; ok {
		if err := json.Unmarshal(raw, &prs); err != nil {
			h.logger.Error("failed to decode unreviewed pull requests", "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	muted, err := h.muteStore.ListMutedURLs(r.Context())
	if err != nil {
		h.logger.Error("failed to list muted URLs", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]PullRequestResponse, 0, len(prs))
	for _, pr := range prs {
		_, isMuted := muted[pr.URL]
		resp = append(resp, toPullRequestResponse(pr, isMuted))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Status returns the last cycle error (null on success) and the current badge.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	values, err := h.stateStore.Get(r.Context(), driven.KeyError)
	if err != nil {
		h.logger.Error("failed to read cycle error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	var resp StatusResponse
	if raw, ok := values[driven.KeyError]; ok {
		if err := json.Unmarshal(raw, &resp.Error); err != nil {
			h.logger.Error("failed to decode cycle error", "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	badge, err := h.badge.Current(r.Context())
	if err != nil {
		h.logger.Error("failed to read badge", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	resp.BadgeText = badge.Text
	resp.BadgeColor = string(badge.Color)

	writeJSON(w, http.StatusOK, resp)
}

// Refresh runs a manual cycle and waits for it. A cycle already in flight is
// joined rather than duplicated.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	// The cycle must complete and persist even if the client disconnects.
	res := h.refresher.RunCycle(context.WithoutCancel(r.Context()), model.TriggerManual)
	if !res.OK() {
		writeError(w, http.StatusBadGateway, res.Err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toRefreshResponse(res))
}

// ListNotifications returns all live notifications.
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	items, err := h.inbox.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list notifications", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]NotificationResponse, 0, len(items))
	for _, n := range items {
		resp = append(resp, toNotificationResponse(n))
	}

	writeJSON(w, http.StatusOK, resp)
}

// ClickNotification clears the clicked notification and opens its pull request.
func (h *Handler) ClickNotification(w http.ResponseWriter, r *http.Request) {
	var req ClickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	if _, err := h.inbox.Get(r.Context(), req.ID); err != nil {
		h.writeInboxError(w, req.ID, err)
		return
	}

	if err := h.inbox.Clear(r.Context(), req.ID); err != nil {
		h.writeInboxError(w, req.ID, err)
		return
	}

	resp := ClickResponse{ID: req.ID}
	if h.open != nil {
		// The id is the pull request URL.
		if err := h.open(req.ID); err != nil {
			h.logger.Warn("failed to open pull request", "url", req.ID, "error", err)
		} else {
			resp.Opened = true
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// ClearNotification dismisses a notification without opening it.
func (h *Handler) ClearNotification(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.inbox.Clear(r.Context(), id); err != nil {
		h.writeInboxError(w, id, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeInboxError(w http.ResponseWriter, id string, err error) {
	if errors.Is(err, driven.ErrNotFound) {
		writeError(w, http.StatusNotFound, "notification not found")
		return
	}
	h.logger.Error("notification inbox failed", "id", id, "error", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// ListMutes returns all muted pull requests.
func (h *Handler) ListMutes(w http.ResponseWriter, r *http.Request) {
	mutes, err := h.muteStore.ListMuted(r.Context())
	if err != nil {
		h.logger.Error("failed to list mutes", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]MuteResponse, 0, len(mutes))
	for _, m := range mutes {
		resp = append(resp, toMuteResponse(m))
	}

	writeJSON(w, http.StatusOK, resp)
}

// AddMute mutes a pull request. Muting only stops future notifications; the
// pull request still counts toward the badge.
func (h *Handler) AddMute(w http.ResponseWriter, r *http.Request) {
	var req MuteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !isValidPullRequestURL(req.URL) {
		writeError(w, http.StatusBadRequest, "invalid url: expected an absolute http(s) URL")
		return
	}

	if err := h.muteStore.Mute(r.Context(), req.URL); err != nil {
		h.logger.Error("failed to mute", "url", req.URL, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, MuteResponse{
		URL:     req.URL,
		MutedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// RemoveMute unmutes a pull request.
func (h *Handler) RemoveMute(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("url")
	if !isValidPullRequestURL(target) {
		writeError(w, http.StatusBadRequest, "invalid url: expected an absolute http(s) URL")
		return
	}

	if err := h.muteStore.Unmute(r.Context(), target); err != nil {
		h.logger.Error("failed to unmute", "url", target, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// isValidPullRequestURL reports whether raw is an absolute http or https URL
// with a host.
func isValidPullRequestURL(raw string) bool {
	if raw == "" || strings.TrimSpace(raw) != raw {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
