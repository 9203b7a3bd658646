package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ericfisherdev/prbell/internal/domain/model"
	"github.com/ericfisherdev/prbell/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.Notifier = (*NotificationRepo)(nil)

// NotificationRepo is a durable notification inbox implementing the Notifier
// port. The presentation layer lists live notifications and clears them on click.
type NotificationRepo struct {
	db *DB
}

// NewNotificationRepo creates a new NotificationRepo backed by the given DB.
func NewNotificationRepo(db *DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

// Show stores the notification under id, replacing any live notification with
// the same id.
func (r *NotificationRepo) Show(ctx context.Context, id string, n model.Notification) error {
	const query = `
		INSERT INTO notifications (id, title, body, require_interaction, created_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			body = excluded.body,
			require_interaction = excluded.require_interaction,
			created_at = excluded.created_at
	`

	requireInteraction := 0
	if n.RequireInteraction {
		requireInteraction = 1
	}

	if _, err := r.db.Writer.ExecContext(ctx, query, id, n.Title, n.Body, requireInteraction); err != nil {
		return fmt.Errorf("show notification %s: %w", id, err)
	}
	return nil
}

// Clear removes the notification with the given id. Returns driven.ErrNotFound
// if no such notification is live.
func (r *NotificationRepo) Clear(ctx context.Context, id string) error {
	const query = `DELETE FROM notifications WHERE id = ?`
	res, err := r.db.Writer.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("clear notification %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("clear notification %s: %w", id, err)
	}
	if n == 0 {
		return driven.ErrNotFound
	}
	return nil
}

// Get returns the live notification with the given id, or driven.ErrNotFound.
func (r *NotificationRepo) Get(ctx context.Context, id string) (model.LiveNotification, error) {
	const query = `SELECT id, title, body, require_interaction, created_at FROM notifications WHERE id = ?`

	n, err := scanNotification(r.db.Reader.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.LiveNotification{}, driven.ErrNotFound
	}
	if err != nil {
		return model.LiveNotification{}, fmt.Errorf("get notification %s: %w", id, err)
	}
	return n, nil
}

// List returns all live notifications, newest first.
func (r *NotificationRepo) List(ctx context.Context) ([]model.LiveNotification, error) {
	const query = `SELECT id, title, body, require_interaction, created_at FROM notifications ORDER BY created_at DESC, id`
	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	result := make([]model.LiveNotification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}
	return result, nil
}

// scanner abstracts *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanNotification(s scanner) (model.LiveNotification, error) {
	var (
		n                  model.LiveNotification
		requireInteraction int
		createdAt          string
	)
	if err := s.Scan(&n.ID, &n.Title, &n.Body, &requireInteraction, &createdAt); err != nil {
		return model.LiveNotification{}, err
	}

	n.RequireInteraction = requireInteraction == 1

	var err error
	n.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return model.LiveNotification{}, fmt.Errorf("parse created_at for %s: %w", n.ID, err)
	}
	return n, nil
}
