package repository

import (
	"context"
	"errors"

	"orbit/internal/cache"
	"orbit/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository reads and mutates the per-user side tables.
type ProfileRepository interface {
	GetPrivacy(ctx context.Context, userID uint) (*models.UserPrivacy, error)
	GetBio(ctx context.Context, userID uint) (*models.UserBio, error)
	GetImages(ctx context.Context, userID uint) (*models.UserImages, error)
	GetMetaData(ctx context.Context, userID uint) (*models.UserMetaData, error)
	GetLogins(ctx context.Context, userID uint) ([]models.UserLogin, error)
	SaveBio(ctx context.Context, bio *models.UserBio) error
	TogglePrivacy(ctx context.Context, userID uint) (bool, error)
	SetProfileImage(ctx context.Context, userID uint, name string) error
	SetCoverImage(ctx context.Context, userID uint, name string) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// sideTable loads a one-per-user row. A missing row is an invariant violation
// because registration creates all side tables.
func (r *profileRepository) sideTable(ctx context.Context, userID uint, dest any) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewUnexpectedError("Unexpected error.")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *profileRepository) GetPrivacy(ctx context.Context, userID uint) (*models.UserPrivacy, error) {
	var privacy models.UserPrivacy
	if err := r.sideTable(ctx, userID, &privacy); err != nil {
		return nil, err
	}
	return &privacy, nil
}

func (r *profileRepository) GetBio(ctx context.Context, userID uint) (*models.UserBio, error) {
	var bio models.UserBio
	if err := r.sideTable(ctx, userID, &bio); err != nil {
		return nil, err
	}
	return &bio, nil
}

func (r *profileRepository) GetImages(ctx context.Context, userID uint) (*models.UserImages, error) {
	var images models.UserImages
	if err := r.sideTable(ctx, userID, &images); err != nil {
		return nil, err
	}
	return &images, nil
}

func (r *profileRepository) GetMetaData(ctx context.Context, userID uint) (*models.UserMetaData, error) {
	var meta models.UserMetaData
	if err := r.sideTable(ctx, userID, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// GetLogins returns the login history rows. Nothing writes them today, so the
// slice is empty in practice; callers still get a non-error empty list.
func (r *profileRepository) GetLogins(ctx context.Context, userID uint) ([]models.UserLogin, error) {
	logins := []models.UserLogin{}
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("login_date DESC").Find(&logins).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return logins, nil
}

func (r *profileRepository) SaveBio(ctx context.Context, bio *models.UserBio) error {
	if err := r.db.WithContext(ctx).Save(bio).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, bio.UserID)
	return nil
}

// TogglePrivacy flips the lock flag in a single UPDATE and returns the new
// state. Zero rows affected means the privacy row was never provisioned.
func (r *profileRepository) TogglePrivacy(ctx context.Context, userID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.UserPrivacy{}).
		Where("user_id = ?", userID).
		Update("profile_is_locked", gorm.Expr("NOT profile_is_locked"))
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return false, models.NewUnexpectedError("Unexpected error.")
	}

	cache.InvalidateUser(ctx, userID)

	var privacy models.UserPrivacy
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&privacy).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return privacy.ProfileIsLocked, nil
}

func (r *profileRepository) SetProfileImage(ctx context.Context, userID uint, name string) error {
	return r.setImageColumn(ctx, userID, "profile_image_name", name)
}

func (r *profileRepository) SetCoverImage(ctx context.Context, userID uint, name string) error {
	return r.setImageColumn(ctx, userID, "cover_image_name", name)
}

func (r *profileRepository) setImageColumn(ctx context.Context, userID uint, column, name string) error {
	res := r.db.WithContext(ctx).
		Model(&models.UserImages{}).
		Where("user_id = ?", userID).
		Update(column, name)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewUnexpectedError("Unexpected database document error.")
	}
	cache.InvalidateUser(ctx, userID)
	return nil
}
