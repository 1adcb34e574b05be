package service

import (
	"context"
	"strings"

	"orbit/internal/models"
	"orbit/internal/repository"
)

// FeedLimit is how many posts the feed returns, newest first.
const FeedLimit = 10

// PostService implements post creation, owner edits and the like set.
type PostService struct {
	postRepo repository.PostRepository
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// CreatePost stores a post with its attachments in upload order and returns
// it with the author populated.
func (s *PostService) CreatePost(ctx context.Context, userID uint, content string, fileNames []string) (*models.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("Content is required")
	}

	files := make([]models.PostFile, 0, len(fileNames))
	for i, name := range fileNames {
		files = append(files, models.PostFile{Name: name, Position: i})
	}

	post := &models.Post{
		UserID:  userID,
		Content: content,
		Files:   files,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// GetPost returns a single post with its associations.
func (s *PostService) GetPost(ctx context.Context, postID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, postID)
}

// EditPost replaces the content. Only the owner may edit.
func (s *PostService) EditPost(ctx context.Context, userID, postID uint, content string) (*models.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("Content is required")
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, models.NewValidationError("You cannot edit this post.")
	}

	if err := s.postRepo.UpdateContent(ctx, postID, content); err != nil {
		return nil, err
	}
	post.Content = content
	return post, nil
}

// DeletePost removes a post with its attachments and likes. Only the owner
// may delete.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewValidationError("You cannot delete this post.")
	}
	return s.postRepo.Delete(ctx, postID)
}

// LikePost adds the user to the post's like set, rejecting a repeat.
func (s *PostService) LikePost(ctx context.Context, userID, postID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return err
	}
	return s.postRepo.Like(ctx, userID, postID)
}

// UnlikePost removes the user from the post's like set, rejecting an absent
// like.
func (s *PostService) UnlikePost(ctx context.Context, userID, postID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return err
	}
	return s.postRepo.Unlike(ctx, userID, postID)
}

// GetFeed returns the latest posts across all users.
func (s *PostService) GetFeed(ctx context.Context) ([]models.Post, error) {
	return s.postRepo.Feed(ctx, FeedLimit)
}
