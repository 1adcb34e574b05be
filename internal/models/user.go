// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents an account holder. Side tables (UserPrivacy, UserBio,
// UserImages, UserMetaData, Friendship) are created with the user and removed
// with it; records are hard-deleted so the account cascade leaves no rows.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"not null" json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicUser is the reduced identity shape embedded in friend lists and
// post/comment author fields.
type PublicUser struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Public returns the reduced identity view of the user.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName}
}
