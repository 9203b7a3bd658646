package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/prbell/internal/domain/model"
	"github.com/ericfisherdev/prbell/internal/domain/port/driven"
)

const notificationID = "https://github.com/o/r/pull/7"

func reviewRequested(body string) model.Notification {
	return model.Notification{Title: "Review requested", Body: body, RequireInteraction: true}
}

func TestNotificationRepo_ShowAndGet(t *testing.T) {
	repo := NewNotificationRepo(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Show(ctx, notificationID, reviewRequested("Add retries")))

	got, err := repo.Get(ctx, notificationID)
	require.NoError(t, err)
	assert.Equal(t, notificationID, got.ID)
	assert.Equal(t, "Review requested", got.Title)
	assert.Equal(t, "Add retries", got.Body)
	assert.True(t, got.RequireInteraction)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestNotificationRepo_ShowReplacesSameID(t *testing.T) {
	repo := NewNotificationRepo(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Show(ctx, notificationID, reviewRequested("Old title")))
	require.NoError(t, repo.Show(ctx, notificationID, model.Notification{Title: "Review requested", Body: "New title"}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "New title", list[0].Body)
	assert.False(t, list[0].RequireInteraction)
}

func TestNotificationRepo_Clear(t *testing.T) {
	repo := NewNotificationRepo(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Show(ctx, notificationID, reviewRequested("Add retries")))
	require.NoError(t, repo.Clear(ctx, notificationID))

	_, err := repo.Get(ctx, notificationID)
	assert.ErrorIs(t, err, driven.ErrNotFound)
}

func TestNotificationRepo_ClearUnknown(t *testing.T) {
	repo := NewNotificationRepo(setupTestDB(t))

	err := repo.Clear(context.Background(), notificationID)
	assert.ErrorIs(t, err, driven.ErrNotFound)
}

func TestNotificationRepo_GetUnknown(t *testing.T) {
	repo := NewNotificationRepo(setupTestDB(t))

	_, err := repo.Get(context.Background(), notificationID)
	assert.ErrorIs(t, err, driven.ErrNotFound)
}

func TestNotificationRepo_List(t *testing.T) {
	repo := NewNotificationRepo(setupTestDB(t))
	ctx := context.Background()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	require.NoError(t, repo.Show(ctx, "https://github.com/o/r/pull/1", reviewRequested("one")))
	require.NoError(t, repo.Show(ctx, "https://github.com/o/r/pull/2", reviewRequested("two")))

	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	bodies := []string{list[0].Body, list[1].Body}
	assert.ElementsMatch(t, []string{"one", "two"}, bodies)
}
