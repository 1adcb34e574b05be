package service

import (
	"context"
	"strings"

	"orbit/internal/models"
	"orbit/internal/repository"
)

// CommentService implements commenting on posts.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// NewCommentService returns a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// AddComment attaches a new comment to the post and returns it with the
// author populated.
func (s *CommentService) AddComment(ctx context.Context, userID, postID uint, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("Content is required")
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content: content,
		UserID:  userID,
		PostID:  postID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// GetPostComments returns every comment of a post in creation order.
func (s *CommentService) GetPostComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID)
}
