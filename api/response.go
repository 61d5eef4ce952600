package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"fintrack/middleware"
	"fintrack/service"

	"github.com/gin-gonic/gin"
)

// ErrorResponse 错误响应结构
type ErrorResponse struct {
	Error string `json:"error" example:"Missing required fields"`
}

// MessageResponse 仅含提示信息的响应
type MessageResponse struct {
	Message string `json:"message" example:"Transaction deleted successfully"`
}

// Success 200 响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201 响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// SuccessWithMessage 仅返回提示信息
func SuccessWithMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, MessageResponse{Message: message})
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorResponse{Error: message})
}

// BadRequest 400 错误响应
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401 错误响应
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// InternalError 500 错误响应
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// NotFound 404 错误响应
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// respondError 将 service 层错误映射为 HTTP 响应，notFound 为 404 时的提示
func respondError(c *gin.Context, err error, notFound string) {
	var validation *service.ValidationError
	switch {
	case errors.As(err, &validation):
		BadRequest(c, validation.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		Unauthorized(c, "Invalid credentials")
	case errors.Is(err, service.ErrUsernameExists):
		BadRequest(c, "Username already exists")
	case errors.Is(err, service.ErrEmailExists):
		BadRequest(c, "Email already exists")
	case errors.Is(err, service.ErrEmailDisabled):
		BadRequest(c, "Email service is not enabled")
	case errors.Is(err, service.ErrNotFound):
		NotFound(c, notFound)
	default:
		slog.Error("请求处理失败",
			"path", c.Request.URL.Path,
			"request_id", middleware.GetRequestID(c),
			"error", err)
		_ = c.Error(err)
		InternalError(c, SafeErrorMessage(err, "Internal server error"))
	}
}

// parseID 解析路径参数中的 ID，非法值视为不存在
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
