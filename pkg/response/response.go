package response

import (
	"net/http"

	"inspyre/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// ErrorBody 统一错误响应体
type ErrorBody struct {
	Error string `json:"error"`
}

// OK 200 响应，数据直接作为响应体
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201 响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent 204 响应
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error 按指定状态码返回 {"error": msg}
func Error(c *gin.Context, httpCode int, msg string) {
	c.JSON(httpCode, ErrorBody{Error: msg})
}

// HandleError 将业务错误映射为 HTTP 状态码
func HandleError(c *gin.Context, err error) {
	c.JSON(statusOf(err), ErrorBody{Error: apperr.MessageOf(err)})
}

func statusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindConflict:
		return http.StatusBadRequest
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindDepthExceeded:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
