package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/teamup/backend/internal/models"
	"github.com/teamup/backend/internal/services"
	"github.com/teamup/backend/pkg/utils"
)

type GroupsHandler struct {
	Groups *services.GroupService
}

func NewGroupsHandler(groups *services.GroupService) *GroupsHandler {
	return &GroupsHandler{Groups: groups}
}

type createGroupRequest struct {
	Name          string       `json:"name"`
	RegionID      uint8        `json:"regionID"`
	LocalityID    uint16       `json:"localityID"`
	Sport         models.Sport `json:"sport"`
	Description   string       `json:"description"`
	Image         []byte       `json:"image"`
	ParentGroupID *string      `json:"parentGroupID"`
	Public        bool         `json:"public"`
}

func (h *GroupsHandler) Create(c *fiber.Ctx) error {
	var req createGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, fiber.StatusBadRequest, "invalid request body")
	}

	group, err := h.Groups.Create(services.CreateGroupParams{
		Name:          req.Name,
		RegionID:      req.RegionID,
		LocalityID:    req.LocalityID,
		Sport:         req.Sport,
		Description:   req.Description,
		Image:         req.Image,
		ParentGroupID: req.ParentGroupID,
		Public:        req.Public,
	}, callerID(c))
	if err != nil {
		return serviceError(c, err)
	}

	return utils.Success(c, fiber.StatusCreated, group)
}

func (h *GroupsHandler) Get(c *fiber.Ctx) error {
	group, err := h.Groups.Get(c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, group)
}

func (h *GroupsHandler) Filter(c *fiber.Ctx) error {
	var filter models.GroupFilter

	if raw := c.Query("regionID"); raw != "" {
		value, err := strconv.ParseUint(raw, 10, 8)
		if err != nil {
			return utils.Error(c, fiber.StatusBadRequest, "invalid regionID")
		}
		regionID := uint8(value)
		filter.RegionID = &regionID
	}
	if raw := c.Query("localityID"); raw != "" {
		value, err := strconv.ParseUint(raw, 10, 16)
		if err != nil {
			return utils.Error(c, fiber.StatusBadRequest, "invalid localityID")
		}
		localityID := uint16(value)
		filter.LocalityID = &localityID
	}
	if raw := c.Query("sport"); raw != "" {
		sport := models.Sport(raw)
		if !sport.Valid() {
			return utils.Error(c, fiber.StatusBadRequest, "invalid sport")
		}
		filter.Sport = &sport
	}

	groups, err := h.Groups.Filter(filter)
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, groups)
}

func (h *GroupsHandler) SubClubs(c *fiber.Ctx) error {
	subClubs, err := h.Groups.SubClubs(c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, subClubs)
}

func (h *GroupsHandler) Members(c *fiber.Ctx) error {
	members, err := h.Groups.Members(c.Params("id"))
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, members)
}

func (h *GroupsHandler) Join(c *fiber.Ctx) error {
	if err := h.Groups.Join(c.Params("id"), callerID(c)); err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"joined": true})
}

func (h *GroupsHandler) Leave(c *fiber.Ctx) error {
	if err := h.Groups.Leave(c.Params("id"), callerID(c)); err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"left": true})
}

func (h *GroupsHandler) Delete(c *fiber.Ctx) error {
	if err := h.Groups.Delete(c.Params("id"), callerID(c)); err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, fiber.Map{"deleted": true})
}

func (h *GroupsHandler) MyGroups(c *fiber.Ctx) error {
	groups, err := h.Groups.MemberGroups(callerID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return utils.Success(c, fiber.StatusOK, groups)
}
