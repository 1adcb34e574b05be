package service

import (
	"context"

	"orbit/internal/models"
	"orbit/internal/repository"
)

// FriendService establishes symmetric friendships.
type FriendService struct {
	friendshipRepo repository.FriendshipRepository
}

// NewFriendService returns a new FriendService.
func NewFriendService(friendshipRepo repository.FriendshipRepository) *FriendService {
	return &FriendService{friendshipRepo: friendshipRepo}
}

// AddFriend links viewer and target in both directions. A target without a
// friendship container was never provisioned by registration, which is
// reported as a server configuration problem rather than a user error.
func (s *FriendService) AddFriend(ctx context.Context, viewerID, targetID uint) error {
	if viewerID == targetID {
		return models.NewValidationError("You cannot add yourself as a friend.")
	}

	exists, err := s.friendshipRepo.ContainerExists(ctx, targetID)
	if err != nil {
		return err
	}
	if !exists {
		return models.NewNotFoundError("Unexpected server configuration error")
	}

	return s.friendshipRepo.Establish(ctx, viewerID, targetID)
}

// GetFriends returns the user's friend list as reduced identities.
func (s *FriendService) GetFriends(ctx context.Context, userID uint) ([]models.PublicUser, error) {
	return s.friendshipRepo.GetFriends(ctx, userID)
}
