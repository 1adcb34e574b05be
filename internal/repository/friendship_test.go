package repository

import (
	"context"
	"testing"

	"orbit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainerExists(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewFriendshipRepository(db)

	user := seedUser(t, db, "ada@example.com")

	exists, err := repo.ContainerExists(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ContainerExists(ctx, 9999)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestEstablish(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewFriendshipRepository(db)

	userA := seedUser(t, db, "ada@example.com")
	userB := seedUser(t, db, "bob@example.com")

	require.NoError(t, repo.Establish(ctx, userA.ID, userB.ID))

	// Both directions exist.
	var edges []models.FriendEdge
	require.NoError(t, db.Order("user_id ASC").Find(&edges).Error)
	require.Len(t, edges, 2)
	assert.Equal(t, userB.ID, edges[0].FriendID)
	assert.Equal(t, userA.ID, edges[1].FriendID)

	t.Run("Repeat Same Direction", func(t *testing.T) {
		err := repo.Establish(ctx, userA.ID, userB.ID)
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "You are already friends.", appErr.Message)
	})

	t.Run("Repeat Opposite Direction", func(t *testing.T) {
		err := repo.Establish(ctx, userB.ID, userA.ID)
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "You are already friends.", appErr.Message)
	})

	// No extra edges from the failed repeats.
	var count int64
	require.NoError(t, db.Model(&models.FriendEdge{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestGetFriends(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewFriendshipRepository(db)

	userA := seedUser(t, db, "ada@example.com")
	userB := seedUser(t, db, "bob@example.com")
	userC := seedUser(t, db, "carol@example.com")

	friends, err := repo.GetFriends(ctx, userA.ID)
	require.NoError(t, err)
	assert.Empty(t, friends)

	require.NoError(t, repo.Establish(ctx, userA.ID, userB.ID))
	require.NoError(t, repo.Establish(ctx, userA.ID, userC.ID))

	friends, err = repo.GetFriends(ctx, userA.ID)
	require.NoError(t, err)
	require.Len(t, friends, 2)
	for _, f := range friends {
		assert.NotZero(t, f.ID)
		assert.NotEmpty(t, f.FirstName)
	}

	friends, err = repo.GetFriends(ctx, userB.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, userA.ID, friends[0].ID)
}
