package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fanfare-backend/internal/service"
	"fanfare-backend/internal/transport/http/middleware"
	resp "fanfare-backend/internal/transport/http/response"
)

type ProfileHandler struct {
	members *service.MemberService
	badges  *service.BadgeService
}

func NewProfileHandler(m *service.MemberService, b *service.BadgeService) *ProfileHandler {
	return &ProfileHandler{members: m, badges: b}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	uid := c.GetString(middleware.KeyUserID)
	u, err := h.members.Profile(c.Request.Context(), uid)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	badges, err := h.badges.ListByUser(c.Request.Context(), uid)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"user": u, "badges": badges})
}

func (h *ProfileHandler) Update(c *gin.Context) {
	uid := c.GetString(middleware.KeyUserID)
	var in service.ProfileUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.FailWith(c, http.StatusBadRequest, "invalid request body")
		return
	}
	u, err := h.members.UpdateProfile(c.Request.Context(), uid, in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, u)
}
