package server

import (
	"orbit/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/post/. Multipart attachments arrive under the
// "image" and "file" fields and are stored in upload order.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Content string `json:"content" form:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	fileNames := []string{}
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, field := range []string{"image", "file"} {
			for _, fh := range form.File[field] {
				upload, readErr := readUpload(fh)
				if readErr != nil {
					return models.RespondWithError(c, readErr)
				}
				name, saveErr := s.mediaService.SaveAttachment(upload)
				if saveErr != nil {
					return models.RespondWithError(c, saveErr)
				}
				fileNames = append(fileNames, name)
			}
		}
	}

	post, err := s.postService.CreatePost(c.UserContext(), authUserID(c), req.Content, fileNames)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"post":    post,
	})
}

// EditPost handles PUT /api/post/:post_id.
func (s *Server) EditPost(c *fiber.Ctx) error {
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	var req struct {
		Content string `json:"content" form:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.EditPost(c.UserContext(), authUserID(c), postID, req.Content)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":     true,
		"message":     "Your post has been updated.",
		"new_content": post.Content,
	})
}

// DeletePost handles DELETE /api/post/:post_id.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.postService.DeletePost(c.UserContext(), authUserID(c), postID); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Your post has been deleted.",
	})
}

// LikePost handles PUT /api/post/like/:post_id.
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.postService.LikePost(c.UserContext(), authUserID(c), postID); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "You liked this post.",
	})
}

// UnlikePost handles PUT /api/post/undolike/:post_id.
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.postService.UnlikePost(c.UserContext(), authUserID(c), postID); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "You undoliked this post.",
	})
}

// GetFeedPosts handles GET /api/post/feed/posts: the latest posts across all
// users, author populated.
func (s *Server) GetFeedPosts(c *fiber.Ctx) error {
	posts, err := s.postService.GetFeed(c.UserContext())
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"posts":   posts,
	})
}
