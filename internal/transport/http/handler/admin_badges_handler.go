package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fanfare-backend/internal/service"
	"fanfare-backend/internal/transport/http/middleware"
	resp "fanfare-backend/internal/transport/http/response"
)

type AdminBadgesHandler struct {
	badges *service.BadgeService
}

func NewAdminBadgesHandler(b *service.BadgeService) *AdminBadgesHandler {
	return &AdminBadgesHandler{badges: b}
}

func (h *AdminBadgesHandler) ListDefinitions(c *gin.Context) {
	defs, err := h.badges.ListDefinitions(c.Request.Context())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, defs)
}

func (h *AdminBadgesHandler) CreateDefinition(c *gin.Context) {
	var in service.BadgeDefinitionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.FailWith(c, http.StatusBadRequest, "invalid request body")
		return
	}
	def, err := h.badges.CreateDefinition(c.Request.Context(), in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, def)
}

type awardReq struct {
	Slug string `json:"slug"`
}

func (h *AdminBadgesHandler) Award(c *gin.Context) {
	var req awardReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.FailWith(c, http.StatusBadRequest, "invalid request body")
		return
	}
	b, err := h.badges.Award(c.Request.Context(), c.Param("id"), req.Slug, c.GetString(middleware.KeyUserID))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, b)
}
