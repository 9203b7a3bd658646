// Package notify provides Notifier decorators that fan out, log and sanitize
// notifications before they reach a presentation backend.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/ericfisherdev/prbell/internal/domain/model"
	"github.com/ericfisherdev/prbell/internal/domain/port/driven"
)

var _ driven.Notifier = (*Multi)(nil)

// Multi delivers every call to all of its notifiers. Every notifier is called
// even when an earlier one fails.
type Multi struct {
	notifiers []driven.Notifier
}

// NewMulti creates a Multi over the given notifiers. Nil entries are skipped.
func NewMulti(notifiers ...driven.Notifier) *Multi {
	m := &Multi{}
	for _, n := range notifiers {
		if n != nil {
			m.notifiers = append(m.notifiers, n)
		}
	}
	return m
}

// Show shows n on every notifier and joins their errors.
func (m *Multi) Show(ctx context.Context, id string, n model.Notification) error {
	var errs []error
	for i, notifier := range m.notifiers {
		if err := notifier.Show(ctx, id, n); err != nil {
			errs = append(errs, fmt.Errorf("notifier %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Clear clears id on every notifier. driven.ErrNotFound is returned only when
// no notifier knew the id.
func (m *Multi) Clear(ctx context.Context, id string) error {
	var (
		errs     []error
		notFound int
	)
	for i, notifier := range m.notifiers {
		err := notifier.Clear(ctx, id)
		switch {
		case err == nil:
		case errors.Is(err, driven.ErrNotFound):
			notFound++
		default:
			errs = append(errs, fmt.Errorf("notifier %d: %w", i, err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	if notFound == len(m.notifiers) && notFound > 0 {
		return driven.ErrNotFound
	}
	return nil
}
