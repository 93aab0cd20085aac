package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error 是业务错误的统一载体：在哪里发现问题就在哪里构造，
// 带着HTTP状态码一路向上传，最后在handler层被翻译成统一的响应信封
// 没带状态码的错误（数据库挂了之类）最终按500处理
type Error struct {
	Code    int    // HTTP状态码
	Message string // 给用户看的信息
	Err     error  // 底层原因，只进日志不出响应
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap 让errors.Is/As能穿透到底层原因
func (e *Error) Unwrap() error {
	return e.Err
}

func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap 在保留底层错误的同时套上状态码和用户可见的信息
func Wrap(code int, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *Error   { return New(http.StatusBadRequest, message) }
func Unauthorized(message string) *Error { return New(http.StatusUnauthorized, message) }
func Forbidden(message string) *Error    { return New(http.StatusForbidden, message) }
func NotFound(message string) *Error     { return New(http.StatusNotFound, message) }
func Conflict(message string) *Error     { return New(http.StatusConflict, message) }
func Internal(message string, err error) *Error {
	return Wrap(http.StatusInternalServerError, message, err)
}

// CodeOf 从任意错误里取HTTP状态码，不是*Error的一律当500
func CodeOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// MessageOf 取用户可见的信息，非业务错误不向外暴露细节
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "服务器内部错误"
}
