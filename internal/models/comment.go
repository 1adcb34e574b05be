package models

import (
	"time"
)

// Comment belongs to a post and its author. Comments are never edited or
// deleted through the API; they disappear only with the account cascade.
type Comment struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	Content   string        `gorm:"type:text;not null" json:"content"`
	UserID    uint          `gorm:"not null;index" json:"user_id"`
	User      *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	PostID    uint          `gorm:"not null;index" json:"post_id"`
	Likes     []CommentLike `gorm:"foreignKey:CommentID" json:"likes"`
	CreatedAt time.Time     `json:"created_at"`
}

// CommentLike mirrors PostLike for comments. No route toggles these yet; the
// schema exists for parity with posts.
type CommentLike struct {
	ID        uint `gorm:"primaryKey" json:"-"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_comment_like_pair" json:"user_id"`
	CommentID uint `gorm:"not null;uniqueIndex:idx_comment_like_pair" json:"-"`
}
