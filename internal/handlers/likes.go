package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/teamup/backend/internal/models"
	"github.com/teamup/backend/internal/services"
	"github.com/teamup/backend/pkg/utils"
)

type LikesHandler struct {
	Likes *services.LikeService
}

func NewLikesHandler(likes *services.LikeService) *LikesHandler {
	return &LikesHandler{Likes: likes}
}

type likeRequest struct {
	TargetType models.LikeTargetType `json:"targetType"`
	TargetID   string                `json:"targetID"`
}

func (h *LikesHandler) Like(c *fiber.Ctx) error {
	var req likeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.Likes.Like(req.TargetType, req.TargetID, callerID(c)); err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"liked": true})
}

func (h *LikesHandler) Unlike(c *fiber.Ctx) error {
	var req likeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.Likes.Unlike(req.TargetType, req.TargetID, callerID(c)); err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"unliked": true})
}

func (h *LikesHandler) MyLikes(c *fiber.Ctx) error {
	likes, err := h.Likes.UserLikes(callerID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, likes)
}

func (h *LikesHandler) PostLikes(c *fiber.Ctx) error {
	likes, err := h.Likes.PostLikes(c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, likes)
}
