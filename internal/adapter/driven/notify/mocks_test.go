package notify

import (
	"context"
	"errors"

	"github.com/ericfisherdev/prbell/internal/domain/model"
)

var errBoom = errors.New("boom")

type recordingNotifier struct {
	shown    map[string]model.Notification
	showErr  error
	clearErr error
	cleared  []string
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{shown: make(map[string]model.Notification)}
}

func (r *recordingNotifier) Show(_ context.Context, id string, n model.Notification) error {
	if r.showErr != nil {
		return r.showErr
	}
	r.shown[id] = n
	return nil
}

func (r *recordingNotifier) Clear(_ context.Context, id string) error {
	r.cleared = append(r.cleared, id)
	return r.clearErr
}
