package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedUser struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// withMiniredis swaps the package client for a miniredis-backed one and
// restores it when the test finishes.
func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	prev := GetClient()
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(prev) })
	return mr
}

func TestGetSetJSON(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	var dest cachedUser
	found, err := GetJSON(ctx, UserKey(1), &dest)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, UserKey(1), cachedUser{ID: 1, Name: "Ada"}, UserTTL))

	found, err = GetJSON(ctx, UserKey(1), &dest)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, cachedUser{ID: 1, Name: "Ada"}, dest)
}

func TestAside(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedUser) func() error {
		return func() error {
			fetches++
			*dest = cachedUser{ID: 2, Name: "Bob"}
			return nil
		}
	}

	var first cachedUser
	require.NoError(t, Aside(ctx, UserKey(2), &first, UserTTL, fetch(&first)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "Bob", first.Name)

	// The second read is served from the cache without another fetch.
	var second cachedUser
	require.NoError(t, Aside(ctx, UserKey(2), &second, UserTTL, fetch(&second)))
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "Bob", second.Name)
}

func TestInvalidateUser(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, UserKey(3), cachedUser{ID: 3}, UserTTL))
	require.NoError(t, SetJSON(ctx, ProfileKey(3), cachedUser{ID: 3}, ProfileTTL))

	InvalidateUser(ctx, 3)

	assert.False(t, mr.Exists(UserKey(3)))
	assert.False(t, mr.Exists(ProfileKey(3)))
}

func TestNilClientNoOps(t *testing.T) {
	prev := GetClient()
	SetClient(nil)
	t.Cleanup(func() { SetClient(prev) })
	ctx := context.Background()

	var dest cachedUser
	found, err := GetJSON(ctx, UserKey(1), &dest)
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, SetJSON(ctx, UserKey(1), cachedUser{ID: 1}, time.Minute))
	Invalidate(ctx, UserKey(1))

	// Aside degrades to a plain fetch.
	called := false
	require.NoError(t, Aside(ctx, UserKey(1), &dest, time.Minute, func() error {
		called = true
		dest = cachedUser{ID: 1, Name: "Ada"}
		return nil
	}))
	assert.True(t, called)
	assert.Equal(t, "Ada", dest.Name)
}
