package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fanfare-backend/internal/domain"
	"fanfare-backend/internal/service"
	resp "fanfare-backend/internal/transport/http/response"
)

type RegistrationHandler struct {
	regs        *service.RegistrationService
	instruments domain.InstrumentRepository
}

func NewRegistrationHandler(r *service.RegistrationService, ins domain.InstrumentRepository) *RegistrationHandler {
	return &RegistrationHandler{regs: r, instruments: ins}
}

// Submit 公开报名入口
func (h *RegistrationHandler) Submit(c *gin.Context) {
	var in service.SubmitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.FailWith(c, http.StatusBadRequest, "invalid request body")
		return
	}
	id, err := h.regs.Submit(c.Request.Context(), in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, gin.H{"id": id})
}

// Instruments 报名表单的乐器选项
func (h *RegistrationHandler) Instruments(c *gin.Context) {
	list, err := h.instruments.List(c.Request.Context())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, list)
}
