package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fanfare-backend/internal/domain"
)

// Resp 统一信封：{success, msg, data}
type Resp struct {
	Success bool        `json:"success"`
	Msg     string      `json:"msg,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Resp{Success: true, Data: data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Resp{Success: true, Data: data})
}

// Fail 业务错误 → HTTP 状态码映射
func Fail(c *gin.Context, err error) {
	status := StatusOf(domain.CodeOf(err))
	msg := err.Error()
	if status == http.StatusInternalServerError {
		// 不向外暴露内部细节
		_ = c.Error(err)
		msg = "internal error"
	}
	c.JSON(status, Resp{Success: false, Msg: msg})
}

func FailWith(c *gin.Context, status int, msg string) {
	c.JSON(status, Resp{Success: false, Msg: msg})
}

func AbortWith(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Resp{Success: false, Msg: msg})
}
