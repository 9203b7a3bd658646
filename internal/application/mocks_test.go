package application_test

import (
	"context"
	"errors"
	"sync"

	"github.com/ericfisherdev/prbell/internal/domain/model"
)

// --- Mock implementations ---

type mockSource struct {
	mu       sync.Mutex
	snapshot model.Snapshot
	err      error
	calls    int
	fetch    func(ctx context.Context) (model.Snapshot, error)
}

func (m *mockSource) FetchSnapshot(ctx context.Context) (model.Snapshot, error) {
	m.mu.Lock()
	m.calls++
	fetch := m.fetch
	m.mu.Unlock()

	if fetch != nil {
		return fetch(ctx)
	}
	return m.snapshot, m.err
}

func (m *mockSource) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type memStateStore struct {
	mu     sync.Mutex
	values map[string][]byte
	getErr error
	setErr error
	sets   int
}

func newMemStateStore() *memStateStore {
	return &memStateStore{values: make(map[string][]byte)}
}

func (m *memStateStore) Get(_ context.Context, keys ...string) (map[string][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	out := make(map[string][]byte, len(keys))
	for _, k := range keys {
		if v, ok := m.values[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (m *memStateStore) Set(_ context.Context, entries map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.sets++
	for k, v := range entries {
		m.values[k] = v
	}
	return nil
}

func (m *memStateStore) value(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.values[key])
}

type showCall struct {
	ID           string
	Notification model.Notification
}

type mockNotifier struct {
	mu       sync.Mutex
	shows    []showCall
	clears   []string
	showErr  error
	clearErr error
}

func (m *mockNotifier) Show(_ context.Context, id string, n model.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shows = append(m.shows, showCall{ID: id, Notification: n})
	return m.showErr
}

func (m *mockNotifier) Clear(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clears = append(m.clears, id)
	return m.clearErr
}

func (m *mockNotifier) shownIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.shows))
	for _, s := range m.shows {
		ids = append(ids, s.ID)
	}
	return ids
}

func (m *mockNotifier) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shows = nil
	m.clears = nil
}

type mockBadge struct {
	mu      sync.Mutex
	text    string
	color   model.BadgeColor
	writes  int
	partial int
}

func (m *mockBadge) SetText(_ context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	m.partial++
	return nil
}

func (m *mockBadge) SetColor(_ context.Context, color model.BadgeColor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.color = color
	m.partial++
	return nil
}

func (m *mockBadge) Set(_ context.Context, badge model.Badge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = badge.Text
	m.color = badge.Color
	m.writes++
	return nil
}

type mockMuteStore struct {
	muted map[string]struct{}
	err   error
}

func (m *mockMuteStore) Mute(_ context.Context, url string) error {
	m.muted[url] = struct{}{}
	return nil
}

func (m *mockMuteStore) Unmute(_ context.Context, url string) error {
	delete(m.muted, url)
	return nil
}

func (m *mockMuteStore) IsMuted(_ context.Context, url string) (bool, error) {
	_, ok := m.muted[url]
	return ok, m.err
}

func (m *mockMuteStore) ListMuted(_ context.Context) ([]model.Mute, error) {
	return nil, m.err
}

func (m *mockMuteStore) ListMutedURLs(_ context.Context) (map[string]struct{}, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.muted, nil
}

var errBoom = errors.New("boom")
