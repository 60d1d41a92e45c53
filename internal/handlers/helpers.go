package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/teamup/backend/internal/middleware"
	"github.com/teamup/backend/internal/services"
	"github.com/teamup/backend/pkg/logger"
	"github.com/teamup/backend/pkg/utils"
)

func callerID(c *fiber.Ctx) string {
	return middleware.GetUserID(c)
}

// serviceError translates the service sentinels into HTTP statuses. The
// wrapped message is returned as-is; anything unrecognized becomes a 500
// with the detail kept out of the response body.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return utils.Error(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrForbidden):
		return utils.Error(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrNotFound):
		return utils.Error(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrAlreadyExists):
		return utils.Error(c, fiber.StatusConflict, err.Error())
	default:
		logger.Error("internal_error", err, map[string]interface{}{
			"path":   c.Path(),
			"method": c.Method(),
		})
		return utils.Error(c, fiber.StatusInternalServerError, "internal server error")
	}
}
