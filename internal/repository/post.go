package repository

import (
	"context"
	"errors"

	"orbit/internal/cache"
	"orbit/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines persistence operations for posts, their attachments
// and their like sets.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	UpdateContent(ctx context.Context, postID uint, content string) error
	Delete(ctx context.Context, postID uint) error
	Like(ctx context.Context, userID, postID uint) error
	Unlike(ctx context.Context, userID, postID uint) error
	Feed(ctx context.Context, limit int) ([]models.Post, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Post, error)
	PhotosByUser(ctx context.Context, userID uint) ([]models.Post, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// withAssociations preloads the author, ordered attachments and like set.
func withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Files", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Likes")
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := withAssociations(r.db.WithContext(ctx)).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewValidationError("Post couldn't be found.")
		}
		return nil, models.NewInternalError(err)
	}
	post.LikesCount = len(post.Likes)
	return &post, nil
}

func (r *postRepository) UpdateContent(ctx context.Context, postID uint, content string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", postID).
		Update("content", content)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("There is no post with that id.")
	}
	cache.Invalidate(ctx, cache.PostKey(postID))
	return nil
}

func (r *postRepository) Delete(ctx context.Context, postID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&models.PostFile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.PostLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, postID).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.PostKey(postID))
	return nil
}

// Like adds the user to the post's like set. The conditional insert is the
// membership check: zero rows affected means the like already existed.
func (r *postRepository) Like(ctx context.Context, userID, postID uint) error {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.PostLike{UserID: userID, PostID: postID})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewConflictError("You already liked this post")
	}
	cache.Invalidate(ctx, cache.PostKey(postID))
	return nil
}

// Unlike mirrors Like: the conditional delete reports whether a like existed.
func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.PostLike{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewConflictError("You already didn't like this post")
	}
	cache.Invalidate(ctx, cache.PostKey(postID))
	return nil
}

func (r *postRepository) Feed(ctx context.Context, limit int) ([]models.Post, error) {
	if limit <= 0 {
		limit = 10
	}
	posts := []models.Post{}
	if err := withAssociations(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for i := range posts {
		posts[i].LikesCount = len(posts[i].Likes)
	}
	return posts, nil
}

func (r *postRepository) ListByUser(ctx context.Context, userID uint) ([]models.Post, error) {
	posts := []models.Post{}
	if err := withAssociations(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for i := range posts {
		posts[i].LikesCount = len(posts[i].Likes)
	}
	return posts, nil
}

// PhotosByUser returns the user's posts with only their attachment lists
// loaded, for the profile photo grid.
func (r *postRepository) PhotosByUser(ctx context.Context, userID uint) ([]models.Post, error) {
	posts := []models.Post{}
	if err := r.db.WithContext(ctx).
		Select("id").
		Where("user_id = ?", userID).
		Preload("Files", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}
