package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/teamup/backend/internal/services"
	"github.com/teamup/backend/pkg/utils"
)

type RefDataHandler struct {
	RefData *services.RefDataService
}

func NewRefDataHandler(refdata *services.RefDataService) *RefDataHandler {
	return &RefDataHandler{RefData: refdata}
}

func (h *RefDataHandler) Regions(c *fiber.Ctx) error {
	regions, err := h.RefData.Regions()
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, regions)
}

func (h *RefDataHandler) Localities(c *fiber.Ctx) error {
	value, err := strconv.ParseUint(c.Params("id"), 10, 8)
	if err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid region id")
	}

	localities, err := h.RefData.Localities(uint8(value))
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, localities)
}
