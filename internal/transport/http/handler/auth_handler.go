package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fanfare-backend/internal/core/auth"
	"fanfare-backend/internal/service"
	"fanfare-backend/internal/transport/http/middleware"
	resp "fanfare-backend/internal/transport/http/response"
)

type AuthHandler struct {
	auth    *service.AuthService
	members *service.MemberService
	jwter   *auth.JWTer
}

func NewAuthHandler(a *service.AuthService, m *service.MemberService, j *auth.JWTer) *AuthHandler {
	return &AuthHandler{auth: a, members: m, jwter: j}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login 登录成功后下发会话 cookie，同时在响应体返回 token 供非浏览器端使用
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.FailWith(c, http.StatusBadRequest, "invalid request body")
		return
	}
	u, role, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	token, err := h.jwter.Issue(u.ID, role)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	c.SetCookie(auth.SessionCookie, token, int(h.jwter.TTL.Seconds()), "/", "", false, true)
	resp.OK(c, gin.H{
		"token": token,
		"user": gin.H{
			"id":        u.ID,
			"email":     u.Email,
			"firstName": u.FirstName,
			"lastName":  u.LastName,
			"role":      role,
		},
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(auth.SessionCookie, "", -1, "/", "", false, true)
	resp.OK(c, nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	uid := c.GetString(middleware.KeyUserID)
	u, err := h.members.Profile(c.Request.Context(), uid)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, u)
}
