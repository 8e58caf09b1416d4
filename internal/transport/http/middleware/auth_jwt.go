package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fanfare-backend/internal/core/auth"
	resp "fanfare-backend/internal/transport/http/response"
)

const (
	KeyUserID = "userId"
	KeyRole   = "role"
)

// AuthJWT 会话守卫：优先取会话 cookie，其次 Bearer 头。
// requireRole 非空时同时充当角色门禁（后台整组挂 "admin"）。
func AuthJWT(j *auth.JWTer, requireRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if ck, err := c.Cookie(auth.SessionCookie); err == nil && ck != "" {
			token = ck
		} else if ah := c.GetHeader("Authorization"); strings.HasPrefix(ah, "Bearer ") {
			token = strings.TrimPrefix(ah, "Bearer ")
		}
		if token == "" {
			resp.AbortWith(c, http.StatusUnauthorized, "missing session")
			return
		}

		claims, err := j.Parse(token)
		if err != nil {
			resp.AbortWith(c, http.StatusUnauthorized, "invalid session")
			return
		}
		if requireRole != "" && claims.Role != requireRole {
			resp.AbortWith(c, http.StatusForbidden, "forbidden")
			return
		}
		c.Set(KeyUserID, claims.UID)
		c.Set(KeyRole, claims.Role)
		c.Next()
	}
}
