package models

import (
	"time"
)

// Friendship is the per-user container row created at registration. A missing
// container is how the friend-add operation distinguishes "target was never
// provisioned" from "target has no friends yet".
type Friendship struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// FriendEdge is one direction of a friendship. Symmetric friendships are two
// rows, one per direction; the unique index gives inserts set semantics.
type FriendEdge struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_friend_edge_pair" json:"user_id"`
	FriendID  uint      `gorm:"not null;uniqueIndex:idx_friend_edge_pair" json:"friend_id"`
	CreatedAt time.Time `json:"created_at"`
}
