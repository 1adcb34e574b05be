package middleware

import (
	"context"
	"strconv"

	"orbit/internal/config"
	"orbit/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

// AccessTokenCookie is the cookie the session token travels in. Only the
// cookie is consulted; no Authorization header fallback exists.
const AccessTokenCookie = "access_token"

// AuthRequired returns middleware that enforces cookie authentication for
// protected routes. On success the resolved identity is stored both in Fiber
// locals and as typed context values for downstream services and logging.
func AuthRequired(cfg *config.Config, rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := c.Cookies(AccessTokenCookie)
		if tokenString == "" {
			return models.RespondWithError(c,
				models.NewUnauthorizedError("Please provide a token or authenticate."))
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return models.RespondWithError(c,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c,
				models.NewUnauthorizedError("Invalid token claims"))
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			return models.RespondWithError(c,
				models.NewUnauthorizedError("Invalid subject claim"))
		}

		userID, err := strconv.ParseUint(sub, 10, 32)
		if err != nil {
			return models.RespondWithError(c,
				models.NewUnauthorizedError("Invalid user ID in token"))
		}

		// Tokens revoked at logout are rejected by JTI.
		if jti, exists := claims["jti"].(string); exists && jti != "" && rdb != nil {
			blacklisted, err := rdb.Exists(c.Context(), "blacklist:"+jti).Result()
			if err == nil && blacklisted > 0 {
				return models.RespondWithError(c,
					models.NewUnauthorizedError("Token has been revoked"))
			}
		}

		c.Locals("userID", uint(userID))
		if name, ok := claims["name"].(string); ok {
			c.Locals("userName", name)
		}
		if jti, ok := claims["jti"].(string); ok {
			c.Locals("jti", jti)
		}
		ctx := context.WithValue(c.UserContext(), UserIDKey, uint(userID))
		c.SetUserContext(ctx)

		return c.Next()
	}
}
