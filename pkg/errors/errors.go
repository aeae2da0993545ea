package errors

import (
	"errors"
	"fmt"
)

// Kind 定义错误类型
type Kind int

const (
	// KindMissingDependency 启动依赖不可用（RPC 客户端无法构建）
	KindMissingDependency Kind = iota
	// KindInvalidOption 配置项的值不在可识别范围内
	KindInvalidOption
	// KindRemoteFailure 远端调用失败（非 "not found"）
	KindRemoteFailure
	// KindNotFound 远端对象不存在（仅模板/网络查询，非致命）
	KindNotFound
	// KindUnknownState 虚拟机报告了未知的生命周期状态码
	KindUnknownState
)

// InventoryError 统一的 inventory 错误类型
type InventoryError struct {
	Kind    Kind   // 错误类型
	Message string // 错误消息
	Cause   error  // 原始错误
}

func (e *InventoryError) Error() string {
	return e.Message
}

func (e *InventoryError) Unwrap() error {
	return e.Cause
}

// NewMissingDependency 创建依赖缺失错误
func NewMissingDependency(what string, cause error) *InventoryError {
	return &InventoryError{
		Kind:    KindMissingDependency,
		Message: fmt.Sprintf("required dependency unavailable: %s: %v", what, cause),
		Cause:   cause,
	}
}

// NewInvalidOption 创建配置项错误
func NewInvalidOption(option string, value any) *InventoryError {
	return &InventoryError{
		Kind:    KindInvalidOption,
		Message: fmt.Sprintf("invalid value for option %s: %v", option, value),
	}
}

// NewRemoteFailure 创建远端调用失败错误
func NewRemoteFailure(op string, cause error) *InventoryError {
	return &InventoryError{
		Kind:    KindRemoteFailure,
		Message: fmt.Sprintf("remote call %s failed: %v", op, cause),
		Cause:   cause,
	}
}

// NewNotFound 创建对象不存在错误
func NewNotFound(resource string, id int) *InventoryError {
	return &InventoryError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s %d does not exist", resource, id),
	}
}

// NewUnknownState 创建未知状态码错误
func NewUnknownState(field string, code int) *InventoryError {
	return &InventoryError{
		Kind:    KindUnknownState,
		Message: fmt.Sprintf("unknown %s code %d", field, code),
	}
}

// KindOf 返回错误的类型；非 InventoryError 返回 false
func KindOf(err error) (Kind, bool) {
	var ie *InventoryError
	if errors.As(err, &ie) {
		return ie.Kind, true
	}
	return 0, false
}

// IsNotFound 判断错误是否为对象不存在
func IsNotFound(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindNotFound
}
