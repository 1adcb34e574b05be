package models

import (
	"time"
)

// Default image names assigned at registration until the user uploads their own.
const (
	DefaultProfileImageName = "default_profile_image.jpg"
	DefaultCoverImageName   = "default_cover_image.jpg"
)

// UserPrivacy holds the per-user profile lock flag. Every user has exactly one
// row, created at registration; its absence is an invariant violation.
type UserPrivacy struct {
	ID              uint `gorm:"primaryKey" json:"id"`
	UserID          uint `gorm:"not null;uniqueIndex" json:"user_id"`
	ProfileIsLocked bool `gorm:"default:false" json:"profile_is_locked"`
}

// UserBio holds the free-form profile fields. All fields are nullable and the
// row is created empty at registration.
type UserBio struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	UserID         uint    `gorm:"not null;uniqueIndex" json:"user_id"`
	About          *string `json:"about"`
	WorkedAt       *string `json:"worked_at"`
	School         *string `json:"school"`
	Lives          *string `json:"lives"`
	From           *string `json:"from"`
	RelationshipID *uint   `json:"relationship_id,omitempty"`
}

// UserImages holds the stored filenames of the profile and cover images.
type UserImages struct {
	ID               uint   `gorm:"primaryKey" json:"id"`
	UserID           uint   `gorm:"not null;uniqueIndex" json:"user_id"`
	ProfileImageName string `gorm:"default:default_profile_image.jpg" json:"profile_image_name"`
	CoverImageName   string `gorm:"default:default_cover_image.jpg" json:"cover_image_name"`
}

// UserMetaData records registration circumstances. Written once at
// registration and never updated.
type UserMetaData struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	RegisteredAt     time.Time `gorm:"autoCreateTime" json:"registered_at"`
	RegisteredIP     string    `json:"registered_ip"`
	RegisteredDevice string    `json:"registered_device"`
}

// UserLogin is one login-history row. The schema and read paths exist but no
// code path currently appends rows; login history is always empty.
type UserLogin struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	LoginDate time.Time `gorm:"autoCreateTime" json:"login_date"`
	LoginIP   string    `json:"login_ip"`
}

// TableName keeps the historical plural-less table name.
func (UserMetaData) TableName() string {
	return "user_meta_data"
}
