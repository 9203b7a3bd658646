package sqlite

import (
	"context"
	"fmt"

	"github.com/ericfisherdev/prbell/internal/domain/model"
	"github.com/ericfisherdev/prbell/internal/domain/port/driven"
)

// State keys holding the badge.
const (
	keyBadgeText  = "badgeText"
	keyBadgeColor = "badgeColor"
)

// Compile-time interface satisfaction check.
var _ driven.Badge = (*BadgeRepo)(nil)

// BadgeRepo implements the Badge port by persisting the badge in the state table,
// where the presentation layer reads it back.
type BadgeRepo struct {
	state *StateRepo
}

// NewBadgeRepo creates a new BadgeRepo backed by the given DB.
func NewBadgeRepo(db *DB) *BadgeRepo {
	return &BadgeRepo{state: NewStateRepo(db)}
}

// SetText stores the badge text.
func (r *BadgeRepo) SetText(ctx context.Context, text string) error {
	if err := r.state.Set(ctx, map[string][]byte{keyBadgeText: []byte(text)}); err != nil {
		return fmt.Errorf("set badge text: %w", err)
	}
	return nil
}

// SetColor stores the badge color.
func (r *BadgeRepo) SetColor(ctx context.Context, color model.BadgeColor) error {
	if err := r.state.Set(ctx, map[string][]byte{keyBadgeColor: []byte(color)}); err != nil {
		return fmt.Errorf("set badge color: %w", err)
	}
	return nil
}

// Set stores text and color in a single state transaction.
func (r *BadgeRepo) Set(ctx context.Context, badge model.Badge) error {
	entries := map[string][]byte{
		keyBadgeText:  []byte(badge.Text),
		keyBadgeColor: []byte(badge.Color),
	}
	if err := r.state.Set(ctx, entries); err != nil {
		return fmt.Errorf("set badge: %w", err)
	}
	return nil
}

// Current returns the stored badge. Before the first cycle it is empty.
func (r *BadgeRepo) Current(ctx context.Context) (model.Badge, error) {
	values, err := r.state.Get(ctx, keyBadgeText, keyBadgeColor)
	if err != nil {
		return model.Badge{}, fmt.Errorf("get badge: %w", err)
	}
	return model.Badge{
		Text:  string(values[keyBadgeText]),
		Color: model.BadgeColor(values[keyBadgeColor]),
	}, nil
}
