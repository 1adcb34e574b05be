package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	userKeyPrefix    = "user:%d"
	profileKeyPrefix = "profile:%d"
	postKeyPrefix    = "post:%d"
)

const (
	// UserTTL bounds staleness of cached user identity rows.
	UserTTL = 5 * time.Minute
	// ProfileTTL bounds staleness of the aggregated profile view.
	ProfileTTL = 2 * time.Minute
	// PostTTL bounds staleness of cached posts.
	PostTTL = 10 * time.Minute
)

// UserKey returns the cache key for a user identity row.
func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

// ProfileKey returns the cache key for an aggregated profile view.
func ProfileKey(userID uint) string {
	return fmt.Sprintf(profileKeyPrefix, userID)
}

// PostKey returns the cache key for a post.
func PostKey(postID uint) string {
	return fmt.Sprintf(postKeyPrefix, postID)
}

// Invalidate removes a key. Safe to call without a connected client.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateUser removes a user's identity and profile cache entries. Called
// on any mutation that changes what a profile view would return.
func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
	Invalidate(ctx, ProfileKey(userID))
}
