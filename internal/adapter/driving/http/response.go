package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ericfisherdev/prbell/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

type errorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// PullRequestResponse is the JSON representation of an unreviewed pull request.
type PullRequestResponse struct {
	URL            string   `json:"url"`
	Title          string   `json:"title"`
	Author         string   `json:"author"`
	UpdatedAt      string   `json:"updated_at"`
	Assignees      []string `json:"assignees"`
	ReviewRequests []string `json:"review_requests"`
	Muted          bool     `json:"muted"`
}

// StatusResponse reports the outcome of the last cycle and the current badge.
// Error is null after a successful cycle.
type StatusResponse struct {
	Error      *string `json:"error"`
	BadgeText  string  `json:"badge_text"`
	BadgeColor string  `json:"badge_color"`
}

// RefreshResponse summarizes a manually triggered cycle.
type RefreshResponse struct {
	CycleID    string   `json:"cycle_id"`
	Trigger    string   `json:"trigger"`
	Unreviewed int      `json:"unreviewed"`
	Notified   []string `json:"notified"`
	Resolved   []string `json:"resolved"`
	BadgeText  string   `json:"badge_text"`
	BadgeColor string   `json:"badge_color"`
	DurationMS int64    `json:"duration_ms"`
}

// NotificationResponse is the JSON representation of a live notification.
type NotificationResponse struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	Body               string `json:"body"`
	RequireInteraction bool   `json:"require_interaction"`
	CreatedAt          string `json:"created_at"`
}

// ClickRequest is the JSON body for the notification click endpoint.
type ClickRequest struct {
	ID string `json:"id"`
}

// ClickResponse reports whether the clicked pull request was opened.
type ClickResponse struct {
	ID     string `json:"id"`
	Opened bool   `json:"opened"`
}

// MuteResponse is the JSON representation of a muted pull request.
type MuteResponse struct {
	URL     string `json:"url"`
	MutedAt string `json:"muted_at"`
}

// MuteRequest is the JSON body for the add mute endpoint.
type MuteRequest struct {
	URL string `json:"url"`
}

func toPullRequestResponse(pr model.PullRequest, muted bool) PullRequestResponse {
	return PullRequestResponse{
		URL:            pr.URL,
		Title:          pr.Title,
		Author:         pr.Author,
		UpdatedAt:      pr.UpdatedAt.UTC().Format(time.RFC3339),
		Assignees:      nonNil(pr.Assignees),
		ReviewRequests: nonNil(pr.ReviewRequests),
		Muted:          muted,
	}
}

func toRefreshResponse(res model.CycleResult) RefreshResponse {
	notified := make([]string, 0, len(res.ToNotify))
	for _, pr := range res.ToNotify {
		notified = append(notified, pr.URL)
	}

	return RefreshResponse{
		CycleID:    res.CycleID,
		Trigger:    string(res.Trigger),
		Unreviewed: len(res.Unreviewed),
		Notified:   notified,
		Resolved:   nonNil(res.Resolved),
		BadgeText:  res.Badge.Text,
		BadgeColor: string(res.Badge.Color),
		DurationMS: res.Duration.Milliseconds(),
	}
}

func toNotificationResponse(n model.LiveNotification) NotificationResponse {
	return NotificationResponse{
		ID:                 n.ID,
		Title:              n.Title,
		Body:               n.Body,
		RequireInteraction: n.RequireInteraction,
		CreatedAt:          n.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toMuteResponse(m model.Mute) MuteResponse {
	return MuteResponse{
		URL:     m.URL,
		MutedAt: m.MutedAt.UTC().Format(time.RFC3339),
	}
}

// nonNil keeps empty lists encoded as [] rather than null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
