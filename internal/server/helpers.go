package server

import (
	"io"
	"mime/multipart"
	"strconv"

	"orbit/internal/models"
	"orbit/internal/service"

	"github.com/gofiber/fiber/v2"
)

// authUserID returns the authenticated user's ID placed in locals by the auth
// middleware. Only call from handlers behind AuthRequired.
func authUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}

// authUserName returns the display name claim carried in the session token.
func authUserName(c *fiber.Ctx) string {
	if name, ok := c.Locals("userName").(string); ok {
		return name
	}
	return ""
}

// parseIDParam parses a numeric route parameter, rejecting malformed values
// before any handler logic runs.
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	if raw == "" {
		return 0, models.NewValidationError("Please provide a " + name)
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError("Please provide a valid " + name)
	}
	return uint(id), nil
}

// userMap flattens the user row into the response shape the merged profile
// payloads spread their side tables into.
func userMap(u *models.User) fiber.Map {
	return fiber.Map{
		"id":         u.ID,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"email":      u.Email,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}

// readUpload drains a multipart file into an in-memory UploadInput.
func readUpload(fh *multipart.FileHeader) (service.UploadInput, error) {
	f, err := fh.Open()
	if err != nil {
		return service.UploadInput{}, models.NewInternalError(err)
	}
	defer func() { _ = f.Close() }()

	content, err := io.ReadAll(f)
	if err != nil {
		return service.UploadInput{}, models.NewInternalError(err)
	}
	return service.UploadInput{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}
