package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	mutedURL1 = "https://github.com/o/r/pull/1"
	mutedURL2 = "https://github.com/o/r/pull/2"
)

func TestMuteRepo_MuteAndIsMuted(t *testing.T) {
	repo := NewMuteRepo(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Mute(ctx, mutedURL1))

	muted, err := repo.IsMuted(ctx, mutedURL1)
	require.NoError(t, err)
	assert.True(t, muted)

	muted, err = repo.IsMuted(ctx, mutedURL2)
	require.NoError(t, err)
	assert.False(t, muted)
}

func TestMuteRepo_DoubleMute_Idempotent(t *testing.T) {
	repo := NewMuteRepo(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Mute(ctx, mutedURL1))
	require.NoError(t, repo.Mute(ctx, mutedURL1))

	mutes, err := repo.ListMuted(ctx)
	require.NoError(t, err)
	assert.Len(t, mutes, 1)
}

func TestMuteRepo_Unmute(t *testing.T) {
	repo := NewMuteRepo(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Mute(ctx, mutedURL1))
	require.NoError(t, repo.Unmute(ctx, mutedURL1))

	muted, err := repo.IsMuted(ctx, mutedURL1)
	require.NoError(t, err)
	assert.False(t, muted)
}

func TestMuteRepo_UnmuteUnknown_NoError(t *testing.T) {
	repo := NewMuteRepo(setupTestDB(t))

	require.NoError(t, repo.Unmute(context.Background(), mutedURL1))
}

func TestMuteRepo_ListMuted(t *testing.T) {
	repo := NewMuteRepo(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Mute(ctx, mutedURL1))
	require.NoError(t, repo.Mute(ctx, mutedURL2))

	mutes, err := repo.ListMuted(ctx)
	require.NoError(t, err)
	require.Len(t, mutes, 2)

	urls := []string{mutes[0].URL, mutes[1].URL}
	assert.ElementsMatch(t, []string{mutedURL1, mutedURL2}, urls)
	for _, m := range mutes {
		assert.False(t, m.MutedAt.IsZero())
	}
}

func TestMuteRepo_ListMuted_Empty(t *testing.T) {
	repo := NewMuteRepo(setupTestDB(t))

	mutes, err := repo.ListMuted(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, mutes)
	assert.Empty(t, mutes)
}

func TestMuteRepo_ListMutedURLs(t *testing.T) {
	repo := NewMuteRepo(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Mute(ctx, mutedURL1))
	require.NoError(t, repo.Mute(ctx, mutedURL2))
	require.NoError(t, repo.Unmute(ctx, mutedURL2))

	urls, err := repo.ListMutedURLs(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{mutedURL1: {}}, urls)
}
