package server

import (
	"orbit/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /api/profile/:profile_id. The field set depends on
// the privacy branch: a locked profile viewed by someone else omits bio and
// login history but is still a 200.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	profileID, err := parseIDParam(c, "profile_id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	view, err := s.profileService.GetProfile(c.UserContext(), authUserID(c), profileID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	profileUser := fiber.Map{
		"id":                   view.User.ID,
		"first_name":           view.User.FirstName,
		"last_name":            view.User.LastName,
		"profile_user_privacy": view.Privacy,
		"profile_user_images":  view.Images,
		"profile_user_friends": view.Friends,
	}
	if !view.Restricted {
		profileUser["profile_user_bio"] = view.Bio
		profileUser["profile_user_logins"] = view.Logins
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":      true,
		"profile_user": profileUser,
	})
}

// GetProfilePosts handles GET /api/profile/:profile_id/posts, denied with 403
// for locked profiles viewed by non-owners.
func (s *Server) GetProfilePosts(c *fiber.Ctx) error {
	profileID, err := parseIDParam(c, "profile_id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	posts, err := s.profileService.GetProfilePosts(c.UserContext(), authUserID(c), profileID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":       true,
		"profile_posts": posts,
	})
}

// GetProfilePhotos handles GET /api/profile/:profile_id/photos.
func (s *Server) GetProfilePhotos(c *fiber.Ctx) error {
	profileID, err := parseIDParam(c, "profile_id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	photos, err := s.profileService.GetProfilePhotos(c.UserContext(), profileID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"photos":  photos,
	})
}

// GetProfileImage handles GET /api/profile/:profile_id/profile_image.
func (s *Server) GetProfileImage(c *fiber.Ctx) error {
	profileID, err := parseIDParam(c, "profile_id")
	if err != nil {
		return models.RespondWithError(c, err)
	}

	name, err := s.profileService.GetProfileImageName(c.UserContext(), profileID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":            true,
		"profile_image_name": name,
	})
}
