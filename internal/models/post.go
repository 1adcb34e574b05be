package models

import (
	"time"
)

// Post is a piece of user content with ordered file attachments and a like set.
type Post struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	User    *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Content string `gorm:"type:text;not null" json:"content"`
	// Files is the ordered list of stored filenames attached to the post.
	Files []PostFile `gorm:"foreignKey:PostID" json:"files"`
	Likes []PostLike `gorm:"foreignKey:PostID" json:"likes"`
	// LikesCount is not persisted; computed at query time.
	LikesCount int       `gorm:"->" json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PostFile is one attachment. Position preserves upload order.
type PostFile struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	PostID   uint   `gorm:"not null;index" json:"-"`
	Name     string `gorm:"not null" json:"name"`
	Position int    `gorm:"not null" json:"position"`
}

// PostLike is one entry of a post's like set. The unique pair index makes the
// insert a set-semantics operation.
type PostLike struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_like_pair" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_like_pair" json:"-"`
	CreatedAt time.Time `json:"-"`
}
