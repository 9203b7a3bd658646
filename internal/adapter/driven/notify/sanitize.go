package notify

import (
	"context"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/ericfisherdev/prbell/internal/domain/model"
	"github.com/ericfisherdev/prbell/internal/domain/port/driven"
)

var _ driven.Notifier = (*Sanitizing)(nil)

// Sanitizing strips markup from notification text before passing it on.
// Pull request titles are user-controlled and may be rendered by a browser.
type Sanitizing struct {
	next   driven.Notifier
	policy *bluemonday.Policy
}

// NewSanitizing wraps next with a strict policy that keeps text only.
func NewSanitizing(next driven.Notifier) *Sanitizing {
	return &Sanitizing{next: next, policy: bluemonday.StrictPolicy()}
}

func (s *Sanitizing) Show(ctx context.Context, id string, n model.Notification) error {
	n.Title = s.clean(n.Title)
	n.Body = s.clean(n.Body)
	return s.next.Show(ctx, id, n)
}

func (s *Sanitizing) Clear(ctx context.Context, id string) error {
	return s.next.Clear(ctx, id)
}

// clean removes tags and unescapes the entities bluemonday emits, so stored
// text is plain and gets escaped exactly once at render time.
func (s *Sanitizing) clean(text string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(text)))
}
