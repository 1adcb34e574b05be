package server

import (
	"log/slog"

	"orbit/internal/middleware"
	"orbit/internal/models"

	"github.com/gofiber/fiber/v2"
)

// UploadProfileImage handles POST /api/upload/profile_image.
func (s *Server) UploadProfileImage(c *fiber.Ctx) error {
	name, err := s.saveUploadedImage(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.profileRepo.SetProfileImage(c.UserContext(), authUserID(c), name); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Your profile image has been uploaded successfully.",
	})
}

// UploadCoverImage handles POST /api/upload/cover_image. A failed write is
// logged and surfaced as a 500; it is never swallowed.
func (s *Server) UploadCoverImage(c *fiber.Ctx) error {
	name, err := s.saveUploadedImage(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	if err := s.profileRepo.SetCoverImage(c.UserContext(), authUserID(c), name); err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "cover image update failed",
			slog.String("error", err.Error()))
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":          true,
		"message":          "Your cover image has been uploaded successfully.",
		"cover_image_name": name,
	})
}

// saveUploadedImage pulls the single "image" field out of the multipart form
// and stores it through the media pipeline.
func (s *Server) saveUploadedImage(c *fiber.Ctx) (string, error) {
	fh, err := c.FormFile("image")
	if err != nil || fh == nil {
		return "", models.NewValidationError("No file uploaded")
	}

	upload, err := readUpload(fh)
	if err != nil {
		return "", err
	}
	return s.mediaService.SaveImage(upload)
}
