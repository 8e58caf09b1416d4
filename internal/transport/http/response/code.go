package response

import (
	"net/http"

	"fanfare-backend/internal/domain"
)

// StatusOf 业务分类到 HTTP 状态码的集中映射
func StatusOf(code domain.ErrorCode) int {
	switch code {
	case domain.ErrCodeInvalid, domain.ErrCodeInvalidState:
		return http.StatusBadRequest
	case domain.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case domain.ErrCodeForbidden:
		return http.StatusForbidden
	case domain.ErrCodeNotFound:
		return http.StatusNotFound
	case domain.ErrCodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
