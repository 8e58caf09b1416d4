package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fanfare-backend/internal/domain"
	"fanfare-backend/internal/service"
	"fanfare-backend/internal/transport/http/middleware"
	resp "fanfare-backend/internal/transport/http/response"
)

type AdminUsersHandler struct {
	regs    *service.RegistrationService
	members *service.MemberService
	badges  *service.BadgeService
}

func NewAdminUsersHandler(r *service.RegistrationService, m *service.MemberService, b *service.BadgeService) *AdminUsersHandler {
	return &AdminUsersHandler{regs: r, members: m, badges: b}
}

// Pending 待审核申请，最新的在前
func (h *AdminUsersHandler) Pending(c *gin.Context) {
	users, err := h.regs.ListPending(c.Request.Context())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, users)
}

func (h *AdminUsersHandler) Approve(c *gin.Context) {
	actor := c.GetString(middleware.KeyUserID)
	if err := h.regs.Approve(c.Request.Context(), c.Param("id"), actor); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, nil)
}

type rejectReq struct {
	Reason string `json:"reason"`
}

func (h *AdminUsersHandler) Reject(c *gin.Context) {
	var req rejectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.FailWith(c, http.StatusBadRequest, "invalid request body")
		return
	}
	actor := c.GetString(middleware.KeyUserID)
	if err := h.regs.Reject(c.Request.Context(), c.Param("id"), req.Reason, actor); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, nil)
}

func (h *AdminUsersHandler) Archive(c *gin.Context) {
	actor := c.GetString(middleware.KeyUserID)
	if err := h.regs.Archive(c.Request.Context(), c.Param("id"), actor); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, nil)
}

func (h *AdminUsersHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	f := domain.UserListFilter{
		Status:       domain.UserStatus(c.Query("status")),
		Query:        c.Query("q"),
		WithArchived: c.Query("withArchived") == "true",
		Offset:       offset,
		Limit:        limit,
	}
	users, total, err := h.members.List(c.Request.Context(), f)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"items": users, "total": total})
}

func (h *AdminUsersHandler) Detail(c *gin.Context) {
	u, err := h.members.Profile(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	badges, err := h.badges.ListByUser(c.Request.Context(), u.ID)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"user": u, "badges": badges})
}
