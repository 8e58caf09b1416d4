package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// 请求体解析失败必须在进服务层之前拦下并回 400
func TestMalformedBodyReturns400(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	users := NewAdminUsersHandler(nil, nil, nil)
	reg := NewRegistrationHandler(nil, nil)
	auth := NewAuthHandler(nil, nil, nil)

	r.POST("/registrations", reg.Submit)
	r.POST("/auth/login", auth.Login)
	r.POST("/users/:id/reject", users.Reject)

	for _, path := range []string{"/registrations", "/auth/login", "/users/u-1/reject"} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}
