package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound 记录不存在，或属于其他用户
	ErrNotFound = errors.New("resource not found")
	// ErrInvalidCredentials 用户不存在与密码错误返回同一个错误
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameExists     = errors.New("username already exists")
	ErrEmailExists        = errors.New("email already exists")
	// ErrEmailDisabled 邮件服务未启用
	ErrEmailDisabled = errors.New("email service is not enabled")
)

// ValidationError 入参校验失败，对应 HTTP 400
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation 判断是否为校验错误
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
