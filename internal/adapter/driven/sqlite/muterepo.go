package sqlite

import (
	"context"
	"fmt"

	"github.com/ericfisherdev/prbell/internal/domain/model"
	"github.com/ericfisherdev/prbell/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.MuteStore = (*MuteRepo)(nil)

// MuteRepo is the SQLite implementation of the MuteStore port interface.
type MuteRepo struct {
	db *DB
}

// NewMuteRepo creates a new MuteRepo backed by the given DB.
func NewMuteRepo(db *DB) *MuteRepo {
	return &MuteRepo{db: db}
}

// Mute adds a pull request URL to the mute list. Idempotent: muting an already-muted URL succeeds.
func (r *MuteRepo) Mute(ctx context.Context, url string) error {
	const query = `INSERT OR IGNORE INTO mutes (url) VALUES (?)`
	_, err := r.db.Writer.ExecContext(ctx, query, url)
	if err != nil {
		return fmt.Errorf("mute %s: %w", url, err)
	}
	return nil
}

// Unmute removes a URL from the mute list. No-op if the URL is not muted.
func (r *MuteRepo) Unmute(ctx context.Context, url string) error {
	const query = `DELETE FROM mutes WHERE url = ?`
	_, err := r.db.Writer.ExecContext(ctx, query, url)
	if err != nil {
		return fmt.Errorf("unmute %s: %w", url, err)
	}
	return nil
}

// IsMuted returns whether the given URL is currently muted.
func (r *MuteRepo) IsMuted(ctx context.Context, url string) (bool, error) {
	const query = `SELECT COUNT(*) FROM mutes WHERE url = ?`
	var count int
	if err := r.db.Reader.QueryRowContext(ctx, query, url).Scan(&count); err != nil {
		return false, fmt.Errorf("check muted %s: %w", url, err)
	}
	return count > 0, nil
}

// ListMuted returns all mutes ordered by muted_at DESC.
func (r *MuteRepo) ListMuted(ctx context.Context) ([]model.Mute, error) {
	const query = `SELECT url, muted_at FROM mutes ORDER BY muted_at DESC, url`
	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list mutes: %w", err)
	}
	defer rows.Close()

	result := make([]model.Mute, 0)
	for rows.Next() {
		var item model.Mute
		var mutedAt string
		if err := rows.Scan(&item.URL, &mutedAt); err != nil {
			return nil, fmt.Errorf("scan mute: %w", err)
		}
		item.MutedAt, err = parseTime(mutedAt)
		if err != nil {
			return nil, fmt.Errorf("parse muted_at for %s: %w", item.URL, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mutes: %w", err)
	}
	return result, nil
}

// ListMutedURLs returns the set of muted URLs for O(1) lookup in the application layer.
func (r *MuteRepo) ListMutedURLs(ctx context.Context) (map[string]struct{}, error) {
	const query = `SELECT url FROM mutes`
	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list muted URLs: %w", err)
	}
	defer rows.Close()

	result := make(map[string]struct{})
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("scan muted URL: %w", err)
		}
		result[url] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate muted URLs: %w", err)
	}
	return result, nil
}
