package repository

import (
	"context"

	"orbit/internal/cache"
	"orbit/internal/models"

	"gorm.io/gorm"
)

// AccountRepository groups the multi-table account lifecycle writes. Both the
// registration cascade and the deletion cascade run inside a single
// transaction so a mid-sequence failure leaves no orphaned rows.
type AccountRepository interface {
	Register(ctx context.Context, user *models.User, profileImageName string, ip, device string) error
	Delete(ctx context.Context, userID uint) error
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository returns a new AccountRepository implementation.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Register creates the user and its five side-table rows in registration
// order: privacy, bio, images, metadata, friendship container.
func (r *accountRepository) Register(ctx context.Context, user *models.User, profileImageName string, ip, device string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.UserPrivacy{UserID: user.ID}).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.UserBio{UserID: user.ID}).Error; err != nil {
			return err
		}
		images := models.UserImages{UserID: user.ID}
		if profileImageName != "" {
			images.ProfileImageName = profileImageName
		}
		if err := tx.Create(&images).Error; err != nil {
			return err
		}
		meta := models.UserMetaData{
			UserID:           user.ID,
			RegisteredIP:     ip,
			RegisteredDevice: device,
		}
		if err := tx.Create(&meta).Error; err != nil {
			return err
		}
		return tx.Create(&models.Friendship{UserID: user.ID}).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("The email or username you entered is already being used. Please choose a different email or username.")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes the user and everything keyed to it: side tables, friendship
// container and edges in both directions, posts with their files and likes,
// and comments. One transaction, no partial cascade.
func (r *accountRepository) Delete(ctx context.Context, userID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.User{}, userID).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserPrivacy{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserMetaData{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserLogin{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserImages{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserBio{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Friendship{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR friend_id = ?", userID, userID).Delete(&models.FriendEdge{}).Error; err != nil {
			return err
		}

		// Content owned by the user. Attachment and like rows go first so no
		// orphans survive the post delete.
		var postIDs []uint
		if err := tx.Model(&models.Post{}).Where("user_id = ?", userID).Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.PostFile{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.PostLike{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&models.Comment{}).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, userID)
	return nil
}
