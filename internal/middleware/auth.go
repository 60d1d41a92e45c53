package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/teamup/backend/pkg/logger"
	"github.com/teamup/backend/pkg/utils"
)

const userIDKey = "userID"

func CORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "http://localhost:3001,http://127.0.0.1:3001",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	})
}

func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		logger.Info("request", map[string]interface{}{
			"method":      c.Method(),
			"path":        c.Path(),
			"status":      c.Response().StatusCode(),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return err
	}
}

// WithUser resolves the caller identity when a bearer token is present. The
// token is issued by the external identity provider; the backend only reads
// the opaque user id out of it. Requests without a valid token continue as
// anonymous.
func WithUser(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Next()
	}

	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
	if tokenString == authHeader || tokenString == "" {
		return c.Next()
	}

	claims, err := utils.ValidateToken(tokenString)
	if err != nil {
		logger.Warn("jwt_validation_failed", map[string]interface{}{
			"ip":    c.IP(),
			"path":  c.Path(),
			"error": err.Error(),
		})
		return c.Next()
	}

	c.Locals(userIDKey, claims.UserID)
	return c.Next()
}

// RequireUser blocks anonymous callers. Applied to every mutating route;
// read routes stay open to anonymous callers.
func RequireUser(c *fiber.Ctx) error {
	if GetUserID(c) == "" {
		logger.Warn("anonymous_mutation_blocked", map[string]interface{}{
			"ip":   c.IP(),
			"path": c.Path(),
		})
		return utils.Error(c, fiber.StatusUnauthorized, "authentication required")
	}
	return c.Next()
}

func GetUserID(c *fiber.Ctx) string {
	value := c.Locals(userIDKey)
	if value == nil {
		return ""
	}
	userID, ok := value.(string)
	if !ok {
		return ""
	}
	return userID
}
