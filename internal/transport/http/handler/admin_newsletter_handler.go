package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fanfare-backend/internal/service"
	"fanfare-backend/internal/transport/http/middleware"
	resp "fanfare-backend/internal/transport/http/response"
)

type AdminNewsletterHandler struct {
	newsletter *service.NewsletterService
}

func NewAdminNewsletterHandler(n *service.NewsletterService) *AdminNewsletterHandler {
	return &AdminNewsletterHandler{newsletter: n}
}

func (h *AdminNewsletterHandler) Subscribers(c *gin.Context) {
	offset, limit := pageParams(c)
	items, total, err := h.newsletter.ListSubscribers(c.Request.Context(), offset, limit)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items, "total": total})
}

type issueReq struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SendIssue 逐个投递，失败的单独计数不阻塞整批
func (h *AdminNewsletterHandler) SendIssue(c *gin.Context) {
	var req issueReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.FailWith(c, http.StatusBadRequest, "invalid request body")
		return
	}
	sent, failed, err := h.newsletter.SendIssue(c.Request.Context(), req.Subject, req.Body, c.GetString(middleware.KeyUserID))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"sent": sent, "failed": failed})
}
