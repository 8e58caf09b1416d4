package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fanfare-backend/internal/service"
	"fanfare-backend/internal/transport/http/middleware"
	resp "fanfare-backend/internal/transport/http/response"
)

type AdminEventsHandler struct {
	events *service.EventService
}

func NewAdminEventsHandler(e *service.EventService) *AdminEventsHandler {
	return &AdminEventsHandler{events: e}
}

func pageParams(c *gin.Context) (int, int) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return offset, limit
}

func (h *AdminEventsHandler) List(c *gin.Context) {
	offset, limit := pageParams(c)
	items, total, err := h.events.List(c.Request.Context(), offset, limit)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items, "total": total})
}

func (h *AdminEventsHandler) Create(c *gin.Context) {
	var in service.EventInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.FailWith(c, http.StatusBadRequest, "invalid request body")
		return
	}
	ev, err := h.events.Create(c.Request.Context(), in, c.GetString(middleware.KeyUserID))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, ev)
}

func (h *AdminEventsHandler) Update(c *gin.Context) {
	var in service.EventInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.FailWith(c, http.StatusBadRequest, "invalid request body")
		return
	}
	ev, err := h.events.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, ev)
}

func (h *AdminEventsHandler) Publish(c *gin.Context) {
	if err := h.events.Publish(c.Request.Context(), c.Param("id"), c.GetString(middleware.KeyUserID)); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, nil)
}

func (h *AdminEventsHandler) Delete(c *gin.Context) {
	if err := h.events.Delete(c.Request.Context(), c.Param("id")); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, nil)
}

func (h *AdminEventsHandler) ListVenues(c *gin.Context) {
	offset, limit := pageParams(c)
	items, total, err := h.events.ListVenues(c.Request.Context(), offset, limit)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items, "total": total})
}

func (h *AdminEventsHandler) CreateVenue(c *gin.Context) {
	var in service.VenueInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.FailWith(c, http.StatusBadRequest, "invalid request body")
		return
	}
	v, err := h.events.CreateVenue(c.Request.Context(), in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, v)
}

func (h *AdminEventsHandler) UpdateVenue(c *gin.Context) {
	var in service.VenueInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.FailWith(c, http.StatusBadRequest, "invalid request body")
		return
	}
	v, err := h.events.UpdateVenue(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, v)
}

func (h *AdminEventsHandler) DeleteVenue(c *gin.Context) {
	if err := h.events.DeleteVenue(c.Request.Context(), c.Param("id")); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, nil)
}
