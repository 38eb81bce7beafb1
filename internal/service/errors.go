package service

import (
	"errors"
	"fmt"
)

// 业务错误：均为可恢复、需要展示给调用方的结果
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrDailyLimitExceeded = errors.New("daily limit exceeded")
	ErrAlreadyCommented   = errors.New("already commented on this blog")
	ErrSelfComment        = errors.New("cannot comment on your own blog")
	ErrSelfFollow         = errors.New("cannot follow self")
	ErrUnknownUser        = errors.New("user does not exist")
)

// ValidationError 输入缺失或格式错误，Message 原样返回给调用方
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// 无法判断具体冲突列时使用
const duplicateFieldUnknown = "username/email/phone"

// DuplicateFieldError 唯一约束冲突；Field 为 username / email / phone，
// 无法判断时为 "username/email/phone"
type DuplicateFieldError struct {
	Field string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("duplicate %s, please choose a different value", e.Field)
}

// IsValidation 判断是否为 ValidationError
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsDuplicate 判断是否为 DuplicateFieldError
func IsDuplicate(err error) bool {
	var d *DuplicateFieldError
	return errors.As(err, &d)
}
