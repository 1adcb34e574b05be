package server

import (
	"time"

	"orbit/internal/middleware"
	"orbit/internal/models"
	"orbit/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Register handles POST /api/auth/register. The body may be JSON or multipart
// form data with an optional profile image.
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		FirstName string `json:"first_name" form:"first_name"`
		LastName  string `json:"last_name" form:"last_name"`
		Email     string `json:"email" form:"email"`
		Password  string `json:"password" form:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	// An uploaded image seeds the images row; no image keeps the default.
	profileImageName := ""
	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		upload, readErr := readUpload(fh)
		if readErr != nil {
			return models.RespondWithError(c, readErr)
		}
		name, saveErr := s.mediaService.SaveImage(upload)
		if saveErr != nil {
			return models.RespondWithError(c, saveErr)
		}
		profileImageName = name
	}

	err := s.accountService.Register(c.UserContext(), service.RegisterInput{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Password:         req.Password,
		ProfileImageName: profileImageName,
		IP:               c.IP(),
		Device:           c.Get("User-Agent"),
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "You have been registered. Now login.",
	})
}

// Login handles POST /api/auth/login. A successful login sets the session
// cookie and echoes the token in the body.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email" form:"email"`
		Password string `json:"password" form:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	user, images, err := s.accountService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	token, err := s.generateToken(user.ID, user.FirstName)
	if err != nil {
		return models.RespondWithError(c, models.NewInternalError(err))
	}
	s.setAccessCookie(c, token)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":      true,
		"access_token": token,
		"user": fiber.Map{
			"id":                  user.ID,
			"first_name":          user.FirstName,
			"last_name":           user.LastName,
			"user_profile_images": images,
		},
	})
}

// GetMe handles GET /api/auth/me: the merged self-view across every side
// table.
func (s *Server) GetMe(c *fiber.Ctx) error {
	view, err := s.accountService.Me(c.UserContext(), authUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	authUser := userMap(view.User)
	authUser["auth_user_meta_datas"] = view.MetaData
	authUser["auth_user_privacy"] = view.Privacy
	authUser["auth_user_images"] = view.Images
	authUser["auth_user_bio"] = view.Bio
	authUser["auth_user_logins"] = view.Logins

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":   true,
		"auth_user": authUser,
	})
}

// EditInformations handles PUT /api/auth/edit_informations.
func (s *Server) EditInformations(c *fiber.Ctx) error {
	var req struct {
		FirstName string `json:"firstName" form:"firstName"`
		LastName  string `json:"lastName" form:"lastName"`
		Email     string `json:"email" form:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	user, err := s.accountService.EditInformations(c.UserContext(), authUserID(c), req.FirstName, req.LastName, req.Email)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"user":    user,
	})
}

// EditBio handles PUT /api/auth/edit_bio. Every bio field is overwritten with
// the submitted value.
func (s *Server) EditBio(c *fiber.Ctx) error {
	var req struct {
		About    *string `json:"profileUserAbout" form:"profileUserAbout"`
		WorkedAt *string `json:"profileUserWorkedAt" form:"profileUserWorkedAt"`
		School   *string `json:"profileUserSchool" form:"profileUserSchool"`
		Lives    *string `json:"profileUserLives" form:"profileUserLives"`
		From     *string `json:"profileUserFrom" form:"profileUserFrom"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	bio, err := s.accountService.EditBio(c.UserContext(), authUserID(c), service.BioInput{
		About:    req.About,
		WorkedAt: req.WorkedAt,
		School:   req.School,
		Lives:    req.Lives,
		From:     req.From,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":   true,
		"user_bios": bio,
	})
}

// ChangeAccountPrivacy handles GET /api/auth/change_account_privacy, toggling
// the profile lock.
func (s *Server) ChangeAccountPrivacy(c *fiber.Ctx) error {
	message, err := s.accountService.ChangeAccountPrivacy(c.UserContext(), authUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": message,
	})
}

// Logout handles GET /api/auth/logout: clears the cookie and revokes the
// token's JTI for its remaining lifetime.
func (s *Server) Logout(c *fiber.Ctx) error {
	if jti, ok := c.Locals("jti").(string); ok && jti != "" && s.redis != nil {
		ttl := time.Duration(s.config.JWTExpireHours) * time.Hour
		if tokenString := c.Cookies(middleware.AccessTokenCookie); tokenString != "" {
			if token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{}); err == nil {
				if exp, expErr := token.Claims.GetExpirationTime(); expErr == nil && exp != nil {
					if remaining := time.Until(exp.Time); remaining > 0 {
						ttl = remaining
					}
				}
			}
		}
		s.redis.Set(c.UserContext(), "blacklist:"+jti, "1", ttl)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "You have been logged out.",
	})
}

// DeleteAccount handles DELETE /api/auth/delete: the full removal cascade.
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	if err := s.accountService.DeleteAccount(c.UserContext(), authUserID(c)); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "All information related to your account has been deleted from our systems. Until we meet again, goodbye.",
	})
}
