package repository

import (
	"context"
	"testing"

	"orbit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSideTableReads(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewProfileRepository(db)

	user := seedUser(t, db, "ada@example.com")

	privacy, err := repo.GetPrivacy(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, privacy.ProfileIsLocked)

	bio, err := repo.GetBio(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, bio.About)

	images, err := repo.GetImages(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultProfileImageName, images.ProfileImageName)

	meta, err := repo.GetMetaData(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", meta.RegisteredIP)

	logins, err := repo.GetLogins(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, logins)

	t.Run("Missing Row Is An Invariant Violation", func(t *testing.T) {
		_, err := repo.GetPrivacy(ctx, 9999)
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 500, appErr.Status)
		assert.Equal(t, "Unexpected error.", appErr.Message)
	})
}

func TestTogglePrivacy(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewProfileRepository(db)

	user := seedUser(t, db, "ada@example.com")

	locked, err := repo.TogglePrivacy(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, locked)

	locked, err = repo.TogglePrivacy(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, locked)

	t.Run("Missing Privacy Row", func(t *testing.T) {
		_, err := repo.TogglePrivacy(ctx, 9999)
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Unexpected error.", appErr.Message)
	})
}

func TestSaveBio(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewProfileRepository(db)

	user := seedUser(t, db, "ada@example.com")

	bio, err := repo.GetBio(ctx, user.ID)
	require.NoError(t, err)

	about := "Mathematician"
	bio.About = &about
	require.NoError(t, repo.SaveBio(ctx, bio))

	reloaded, err := repo.GetBio(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.About)
	assert.Equal(t, "Mathematician", *reloaded.About)
}

func TestSetImages(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewProfileRepository(db)

	user := seedUser(t, db, "ada@example.com")

	require.NoError(t, repo.SetProfileImage(ctx, user.ID, "new-profile.jpg"))
	require.NoError(t, repo.SetCoverImage(ctx, user.ID, "new-cover.jpg"))

	images, err := repo.GetImages(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-profile.jpg", images.ProfileImageName)
	assert.Equal(t, "new-cover.jpg", images.CoverImageName)

	t.Run("Missing Images Row", func(t *testing.T) {
		err := repo.SetCoverImage(ctx, 9999, "orphan.jpg")
		require.Error(t, err)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Unexpected database document error.", appErr.Message)
	})
}
