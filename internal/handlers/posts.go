package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/teamup/backend/internal/services"
	"github.com/teamup/backend/pkg/utils"
)

type PostsHandler struct {
	Posts *services.PostService
}

func NewPostsHandler(posts *services.PostService) *PostsHandler {
	return &PostsHandler{Posts: posts}
}

type createPostRequest struct {
	GroupID string   `json:"groupID"`
	Content string   `json:"content"`
	Images  [][]byte `json:"images"`
}

type updatePostRequest struct {
	Content *string   `json:"content"`
	Images  *[][]byte `json:"images"`
}

func (h *PostsHandler) Create(c *fiber.Ctx) error {
	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	post, err := h.Posts.Create(services.CreatePostParams{
		GroupID: req.GroupID,
		Content: req.Content,
		Images:  req.Images,
	}, callerID(c))
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.StatusCreated, post)
}

func (h *PostsHandler) Get(c *fiber.Ctx) error {
	post, err := h.Posts.Get(c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, post)
}

func (h *PostsHandler) Update(c *fiber.Ctx) error {
	var req updatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	post, err := h.Posts.Update(c.Params("id"), services.UpdatePostParams{
		Content: req.Content,
		Images:  req.Images,
	}, callerID(c))
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.StatusOK, post)
}

func (h *PostsHandler) Delete(c *fiber.Ctx) error {
	if err := h.Posts.Delete(c.Params("id"), callerID(c)); err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"deleted": true})
}

func (h *PostsHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.Posts.MarkRead(c.Params("id"), callerID(c)); err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"read": true})
}

func (h *PostsHandler) GroupPosts(c *fiber.Ctx) error {
	posts, err := h.Posts.GroupPosts(c.Params("id"), callerID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, posts)
}

func (h *PostsHandler) UserPosts(c *fiber.Ctx) error {
	posts, err := h.Posts.UserPosts(c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, posts)
}

func (h *PostsHandler) MyPosts(c *fiber.Ctx) error {
	posts, err := h.Posts.UserPosts(callerID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, posts)
}

func (h *PostsHandler) Unseen(c *fiber.Ctx) error {
	posts, err := h.Posts.Unseen(callerID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, posts)
}
