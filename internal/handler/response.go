package handler

import (
	"Nebula_Tube/internal/apperr"

	"github.com/gin-gonic/gin"
)

// Response 全站统一的响应信封
type Response struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

func respondSuccess(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, Response{
		StatusCode: code,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// respondError 从错误里取状态码和用户可见的信息；非业务错误统一按500处理
func respondError(c *gin.Context, err error) {
	code := apperr.CodeOf(err)
	c.JSON(code, Response{
		StatusCode: code,
		Message:    apperr.MessageOf(err),
		Success:    false,
	})
}
