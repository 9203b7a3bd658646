package application_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/prbell/internal/application"
	"github.com/ericfisherdev/prbell/internal/domain/model"
)

func TestNoSuppression(t *testing.T) {
	in := []model.PullRequest{prWithURL("a"), prWithURL("b")}

	got, err := application.NoSuppression{}.Suppress(context.Background(), in)

	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestMuteSuppressor_DropsMuted(t *testing.T) {
	store := &mockMuteStore{muted: map[string]struct{}{"b": {}}}
	s := application.NewMuteSuppressor(store, slog.Default())

	got, err := s.Suppress(context.Background(), []model.PullRequest{prWithURL("a"), prWithURL("b"), prWithURL("c")})

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, urlsOf(got))
}

func TestMuteSuppressor_StoreErrorPassesThrough(t *testing.T) {
	store := &mockMuteStore{err: errBoom}
	s := application.NewMuteSuppressor(store, slog.Default())
	in := []model.PullRequest{prWithURL("a")}

	got, err := s.Suppress(context.Background(), in)

	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, in, got)
}
