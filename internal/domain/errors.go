package domain

import (
	"errors"
	"fmt"
)

// ErrorCode 业务语义分类，传输层据此映射 HTTP 状态码
type ErrorCode string

const (
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalidState ErrorCode = "INVALID_STATE"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// 常用构造
func Invalid(msg string) *Error      { return NewError(ErrCodeInvalid, msg) }
func Conflict(msg string) *Error     { return NewError(ErrCodeConflict, msg) }
func NotFound(msg string) *Error     { return NewError(ErrCodeNotFound, msg) }
func InvalidState(msg string) *Error { return NewError(ErrCodeInvalidState, msg) }

// IsCode 判断 err 是否携带给定分类
func IsCode(err error, code ErrorCode) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf 取出分类；非业务错误一律视为 INTERNAL
func CodeOf(err error) ErrorCode {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ErrCodeInternal
}
