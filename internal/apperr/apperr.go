package apperr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound 目标实体不存在，按空结果处理而不是故障
	ErrNotFound = errors.New("record not found")
	// ErrConflict 并发写台账撞到唯一约束，调用方重读后重试
	ErrConflict = errors.New("concurrent update conflict")
	// ErrUpstreamUnavailable 外部元数据源超时或失败，降级为无补充数据
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// FieldViolation 单字段校验失败明细
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError 结构化校验失败，携带逐字段明细，不做部分接受
type ValidationError struct {
	Violations []FieldViolation `json:"violations"`
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Reason))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidation 单字段快捷构造
func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Violations: []FieldViolation{{Field: field, Reason: reason}}}
}

// AsValidation 判断并取出 ValidationError
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
