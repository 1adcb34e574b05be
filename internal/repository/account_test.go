package repository

import (
	"context"
	"testing"

	"orbit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCascade(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := seedUser(t, db, "ada@example.com")
	require.NotZero(t, user.ID)

	count := func(model any) int64 {
		var n int64
		require.NoError(t, db.Model(model).Where("user_id = ?", user.ID).Count(&n).Error)
		return n
	}
	assert.Equal(t, int64(1), count(&models.UserPrivacy{}))
	assert.Equal(t, int64(1), count(&models.UserBio{}))
	assert.Equal(t, int64(1), count(&models.UserImages{}))
	assert.Equal(t, int64(1), count(&models.UserMetaData{}))
	assert.Equal(t, int64(1), count(&models.Friendship{}))

	var privacy models.UserPrivacy
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&privacy).Error)
	assert.False(t, privacy.ProfileIsLocked)

	var images models.UserImages
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&images).Error)
	assert.Equal(t, models.DefaultProfileImageName, images.ProfileImageName)
	assert.Equal(t, models.DefaultCoverImageName, images.CoverImageName)

	var meta models.UserMetaData
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&meta).Error)
	assert.Equal(t, "127.0.0.1", meta.RegisteredIP)
	assert.Equal(t, "test-agent", meta.RegisteredDevice)

	t.Run("Uploaded Image Seeds Images Row", func(t *testing.T) {
		repo := NewAccountRepository(db)
		seeded := &models.User{FirstName: "Bob", Email: "bob@example.com", Password: "x"}
		require.NoError(t, repo.Register(ctx, seeded, "custom.jpg", "", ""))

		var images models.UserImages
		require.NoError(t, db.Where("user_id = ?", seeded.ID).First(&images).Error)
		assert.Equal(t, "custom.jpg", images.ProfileImageName)
		assert.Equal(t, models.DefaultCoverImageName, images.CoverImageName)
	})
}

func TestRegisterDuplicateEmailRollsBack(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewAccountRepository(db)

	seedUser(t, db, "ada@example.com")

	dupe := &models.User{FirstName: "Imposter", Email: "ada@example.com", Password: "x"}
	err := repo.Register(ctx, dupe, "", "", "")
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "The email or username you entered is already being used. Please choose a different email or username.", appErr.Message)

	// The failed cascade leaves no partial rows behind.
	var users, privacies int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.UserPrivacy{}).Count(&privacies).Error)
	assert.Equal(t, int64(1), users)
	assert.Equal(t, int64(1), privacies)
}

func TestDeleteCascade(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	userA := seedUser(t, db, "ada@example.com")
	userB := seedUser(t, db, "bob@example.com")

	friendRepo := NewFriendshipRepository(db)
	require.NoError(t, friendRepo.Establish(ctx, userA.ID, userB.ID))

	postRepo := NewPostRepository(db)
	postA := &models.Post{
		UserID:  userA.ID,
		Content: "ada's post",
		Files:   []models.PostFile{{Name: "a.jpg", Position: 0}},
	}
	require.NoError(t, postRepo.Create(ctx, postA))
	postB := &models.Post{UserID: userB.ID, Content: "bob's post"}
	require.NoError(t, postRepo.Create(ctx, postB))

	require.NoError(t, postRepo.Like(ctx, userB.ID, postA.ID))
	require.NoError(t, postRepo.Like(ctx, userA.ID, postB.ID))

	commentRepo := NewCommentRepository(db)
	require.NoError(t, commentRepo.Create(ctx, &models.Comment{UserID: userB.ID, PostID: postA.ID, Content: "on ada's"}))
	require.NoError(t, commentRepo.Create(ctx, &models.Comment{UserID: userA.ID, PostID: postB.ID, Content: "on bob's"}))

	accountRepo := NewAccountRepository(db)
	require.NoError(t, accountRepo.Delete(ctx, userA.ID))

	countWhere := func(model any, query string, args ...any) int64 {
		var n int64
		require.NoError(t, db.Model(model).Where(query, args...).Count(&n).Error)
		return n
	}

	assert.Zero(t, countWhere(&models.User{}, "id = ?", userA.ID))
	assert.Zero(t, countWhere(&models.UserPrivacy{}, "user_id = ?", userA.ID))
	assert.Zero(t, countWhere(&models.UserBio{}, "user_id = ?", userA.ID))
	assert.Zero(t, countWhere(&models.UserImages{}, "user_id = ?", userA.ID))
	assert.Zero(t, countWhere(&models.UserMetaData{}, "user_id = ?", userA.ID))
	assert.Zero(t, countWhere(&models.UserLogin{}, "user_id = ?", userA.ID))
	assert.Zero(t, countWhere(&models.Friendship{}, "user_id = ?", userA.ID))
	assert.Zero(t, countWhere(&models.FriendEdge{}, "user_id = ? OR friend_id = ?", userA.ID, userA.ID))

	// Ada's post disappears with its attachments, likes and comments.
	assert.Zero(t, countWhere(&models.Post{}, "id = ?", postA.ID))
	assert.Zero(t, countWhere(&models.PostFile{}, "post_id = ?", postA.ID))
	assert.Zero(t, countWhere(&models.PostLike{}, "post_id = ?", postA.ID))
	assert.Zero(t, countWhere(&models.Comment{}, "post_id = ?", postA.ID))

	// Ada's traces on Bob's content go too; the content itself stays.
	assert.Equal(t, int64(1), countWhere(&models.Post{}, "id = ?", postB.ID))
	assert.Zero(t, countWhere(&models.PostLike{}, "post_id = ?", postB.ID))
	assert.Zero(t, countWhere(&models.Comment{}, "post_id = ?", postB.ID))

	// Bob's account is untouched.
	assert.Equal(t, int64(1), countWhere(&models.User{}, "id = ?", userB.ID))
	assert.Equal(t, int64(1), countWhere(&models.Friendship{}, "user_id = ?", userB.ID))
}
