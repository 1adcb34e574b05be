package server

import (
	"fmt"
	"net/http"
	"testing"

	"orbit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddFriend(t *testing.T) {
	app, s := newTestServer(t, nil)

	tokenA := registerAndLogin(t, app, "Ada", "ada@example.com")
	registerAndLogin(t, app, "Bob", "bob@example.com")

	var userA, userB models.User
	require.NoError(t, s.db.Where("email = ?", "ada@example.com").First(&userA).Error)
	require.NoError(t, s.db.Where("email = ?", "bob@example.com").First(&userB).Error)

	target := fmt.Sprintf("/api/friendship/%d", userB.ID)

	resp := doJSON(t, app, http.MethodPost, target, tokenA, nil)
	body := decodeBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Friendship is established.", body["message"])

	// Symmetric: one edge per direction.
	var edges int64
	require.NoError(t, s.db.Model(&models.FriendEdge{}).Count(&edges).Error)
	assert.Equal(t, int64(2), edges)

	// Both profiles now list the other as a friend.
	for _, tc := range []struct {
		profileID uint
		friendID  uint
	}{
		{userA.ID, userB.ID},
		{userB.ID, userA.ID},
	} {
		resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/profile/%d", tc.profileID), tokenA, nil)
		body := decodeBody(t, resp)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		friends, ok := body["profile_user"].(map[string]any)["profile_user_friends"].([]any)
		require.True(t, ok)
		require.Len(t, friends, 1)
		assert.Equal(t, float64(tc.friendID), friends[0].(map[string]any)["id"])
	}

	t.Run("Repeat Is Conflict", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, target, tokenA, nil)
		body := decodeBody(t, resp)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "You are already friends.", body["message"])
	})

	t.Run("Self Add Rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/friendship/%d", userA.ID), tokenA, nil)
		body := decodeBody(t, resp)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "You cannot add yourself as a friend.", body["message"])
	})

	t.Run("Missing Container", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/friendship/9999", tokenA, nil)
		body := decodeBody(t, resp)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Unexpected server configuration error", body["message"])
	})
}
