package service

import (
	"context"

	"orbit/internal/models"
	"orbit/internal/repository"
)

// ProfileView is the aggregated profile response. Bio and Logins are nil on
// the restricted branch; the handler omits nil sections from the payload.
type ProfileView struct {
	User       *models.User
	Privacy    *models.UserPrivacy
	Images     *models.UserImages
	Friends    []models.PublicUser
	Bio        *models.UserBio
	Logins     []models.UserLogin
	Restricted bool
}

// ProfileService resolves profile views with privacy gating.
type ProfileService struct {
	userRepo       repository.UserRepository
	profileRepo    repository.ProfileRepository
	friendshipRepo repository.FriendshipRepository
	postRepo       repository.PostRepository
}

// NewProfileService returns a new ProfileService.
func NewProfileService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, friendshipRepo repository.FriendshipRepository, postRepo repository.PostRepository) *ProfileService {
	return &ProfileService{
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		friendshipRepo: friendshipRepo,
		postRepo:       postRepo,
	}
}

// GetProfile selects the view branch once per call: self-view always gets the
// full set regardless of the lock, a locked profile viewed by anyone else
// gets the restricted set, an unlocked profile gets the full set.
func (s *ProfileService) GetProfile(ctx context.Context, viewerID, targetID uint) (*ProfileView, error) {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	privacy, err := s.profileRepo.GetPrivacy(ctx, targetID)
	if err != nil {
		return nil, err
	}

	restricted := privacy.ProfileIsLocked && viewerID != targetID

	images, err := s.profileRepo.GetImages(ctx, targetID)
	if err != nil {
		return nil, err
	}
	friends, err := s.friendshipRepo.GetFriends(ctx, targetID)
	if err != nil {
		return nil, err
	}

	view := &ProfileView{
		User:       user,
		Privacy:    privacy,
		Images:     images,
		Friends:    friends,
		Restricted: restricted,
	}
	if restricted {
		return view, nil
	}

	bio, err := s.profileRepo.GetBio(ctx, targetID)
	if err != nil {
		return nil, err
	}
	logins, err := s.profileRepo.GetLogins(ctx, targetID)
	if err != nil {
		return nil, err
	}
	view.Bio = bio
	view.Logins = logins
	return view, nil
}

// GetProfilePosts returns the target's posts, denied outright for locked
// profiles viewed by anyone but the owner.
func (s *ProfileService) GetProfilePosts(ctx context.Context, viewerID, targetID uint) ([]models.Post, error) {
	privacy, err := s.profileRepo.GetPrivacy(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if viewerID != targetID && privacy.ProfileIsLocked {
		return nil, models.NewForbiddenError("Locked profile.")
	}
	return s.postRepo.ListByUser(ctx, targetID)
}

// GetProfilePhotos returns the target's posts reduced to attachment lists.
func (s *ProfileService) GetProfilePhotos(ctx context.Context, targetID uint) ([]models.Post, error) {
	return s.postRepo.PhotosByUser(ctx, targetID)
}

// GetProfileImageName returns the target's current profile image filename.
func (s *ProfileService) GetProfileImageName(ctx context.Context, targetID uint) (string, error) {
	images, err := s.profileRepo.GetImages(ctx, targetID)
	if err != nil {
		return "", err
	}
	return images.ProfileImageName, nil
}
