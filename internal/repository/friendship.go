package repository

import (
	"context"
	"errors"

	"orbit/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FriendshipRepository manages the per-user friendship containers and the
// symmetric edge set.
type FriendshipRepository interface {
	ContainerExists(ctx context.Context, userID uint) (bool, error)
	Establish(ctx context.Context, viewerID, targetID uint) error
	GetFriends(ctx context.Context, userID uint) ([]models.PublicUser, error)
}

type friendshipRepository struct {
	db *gorm.DB
}

// NewFriendshipRepository returns a new FriendshipRepository implementation.
func NewFriendshipRepository(db *gorm.DB) FriendshipRepository {
	return &friendshipRepository{db: db}
}

func (r *friendshipRepository) ContainerExists(ctx context.Context, userID uint) (bool, error) {
	var container models.Friendship
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&container).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, models.NewInternalError(err)
	}
	return true, nil
}

// Establish inserts both directions of the edge in one transaction. The first
// insert doubles as the membership check: zero rows affected means the pair
// already exists, reported as a conflict without a separate read.
func (r *friendshipRepository) Establish(ctx context.Context, viewerID, targetID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.FriendEdge{UserID: targetID, FriendID: viewerID})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewConflictError("You are already friends.")
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.FriendEdge{UserID: viewerID, FriendID: targetID}).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return models.NewInternalError(err)
	}
	return nil
}

// GetFriends returns the reduced identities of everyone on the user's side of
// the edge set.
func (r *friendshipRepository) GetFriends(ctx context.Context, userID uint) ([]models.PublicUser, error) {
	friends := []models.PublicUser{}
	if err := r.db.WithContext(ctx).
		Table("users").
		Select("users.id, users.first_name, users.last_name").
		Joins("JOIN friend_edges fe ON fe.friend_id = users.id").
		Where("fe.user_id = ?", userID).
		Scan(&friends).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return friends, nil
}
