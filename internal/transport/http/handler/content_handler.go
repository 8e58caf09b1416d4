package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fanfare-backend/internal/core/config"
	"fanfare-backend/internal/service"
	resp "fanfare-backend/internal/transport/http/response"
)

type ContentHandler struct {
	content    *service.ContentService
	members    *service.MemberService
	events     *service.EventService
	newsletter *service.NewsletterService
	club       config.Club
}

func NewContentHandler(
	ct *service.ContentService,
	m *service.MemberService,
	e *service.EventService,
	n *service.NewsletterService,
	club config.Club,
) *ContentHandler {
	return &ContentHandler{content: ct, members: m, events: e, newsletter: n, club: club}
}

func (h *ContentHandler) Home(c *gin.Context) {
	stats, err := h.content.Stats(c.Request.Context())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	events, err := h.events.Feed(c.Request.Context())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"stats": stats, "upcomingEvents": events})
}

func (h *ContentHandler) Team(c *gin.Context) {
	team, err := h.members.Team(c.Request.Context())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, team)
}

func (h *ContentHandler) Club(c *gin.Context) {
	resp.OK(c, gin.H{
		"name":        h.club.Name,
		"city":        h.club.City,
		"description": h.club.Description,
		"contactMail": h.club.ContactMail,
	})
}

func (h *ContentHandler) Events(c *gin.Context) {
	events, err := h.events.Feed(c.Request.Context())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, events)
}

type newsletterReq struct {
	Email string `json:"email"`
}

func (h *ContentHandler) Subscribe(c *gin.Context) {
	var req newsletterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.FailWith(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.newsletter.Subscribe(c.Request.Context(), req.Email); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, nil)
}

func (h *ContentHandler) Unsubscribe(c *gin.Context) {
	var req newsletterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.FailWith(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.newsletter.Unsubscribe(c.Request.Context(), req.Email); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, nil)
}
