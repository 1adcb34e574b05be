package server

import (
	"orbit/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateComment handles POST /api/post/:post_id/comments.
func (s *Server) CreateComment(c *fiber.Ctx) error {
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

	comment, err := s.commentService.AddComment(c.UserContext(), authUserID(c), postID, req.Content)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"comment": comment,
	})
}

// GetPostComments handles GET /api/post/:post_id/comments.
func (s *Server) GetPostComments(c *fiber.Ctx) error {
	postID, err := parseIDParam(c, "post_id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	comments, err := s.commentService.GetPostComments(c.UserContext(), postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":  true,
		"comments": comments,
	})
}
