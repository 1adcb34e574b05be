package server

import (
	"orbit/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AddFriend handles POST /api/friendship/:user_id, linking both users
// symmetrically.
func (s *Server) AddFriend(c *fiber.Ctx) error {
	targetID, err := parseIDParam(c, "user_id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.friendService.AddFriend(c.UserContext(), authUserID(c), targetID); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Friendship is established.",
	})
}
