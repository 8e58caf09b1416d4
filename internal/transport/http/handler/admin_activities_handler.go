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

type AdminActivitiesHandler struct {
	activities *service.ActivityService
}

func NewAdminActivitiesHandler(a *service.ActivityService) *AdminActivitiesHandler {
	return &AdminActivitiesHandler{activities: a}
}

func (h *AdminActivitiesHandler) List(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	f := domain.ActivityListFilter{
		Type:         domain.ActivityType(c.Query("type")),
		UserID:       c.Query("userId"),
		WithArchived: c.Query("withArchived") == "true",
		Offset:       offset,
		Limit:        limit,
	}
	items, total, err := h.activities.List(c.Request.Context(), f)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items, "total": total})
}

type archiveActivityReq struct {
	Reason string `json:"reason"`
}

func (h *AdminActivitiesHandler) Archive(c *gin.Context) {
	var req archiveActivityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.FailWith(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.activities.Archive(c.Request.Context(), c.Param("id"), c.GetString(middleware.KeyUserID), req.Reason); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, nil)
}

func (h *AdminActivitiesHandler) Unarchive(c *gin.Context) {
	if err := h.activities.Unarchive(c.Request.Context(), c.Param("id"), c.GetString(middleware.KeyUserID)); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, nil)
}
