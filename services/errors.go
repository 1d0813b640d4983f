package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/hadirida46/house-hub-api/internal/error/code"
)

// ServiceError 表示带业务错误码的服务层错误，控制器据此选择HTTP状态
type ServiceError struct {
	Code    int
	Message string
}

// Error 实现error接口
func (e *ServiceError) Error() string {
	return e.Message
}

// NewServiceError 使用错误码的默认消息创建服务错误
func NewServiceError(errorCode int) *ServiceError {
	return &ServiceError{Code: errorCode, Message: code.GetMessage(errorCode)}
}

// NewServiceErrorWithMessage 使用自定义消息创建服务错误
func NewServiceErrorWithMessage(errorCode int, message string) *ServiceError {
	return &ServiceError{Code: errorCode, Message: message}
}

// AsServiceError 提取服务错误，非服务错误返回nil
func AsServiceError(err error) *ServiceError {
	var se *ServiceError
	if errors.As(err, &se) {
		return se
	}
	return nil
}

// isDuplicateKeyErr 判断是否为唯一索引冲突
// 并发写入时唯一索引是最终兜底，冲突需要翻译成业务Conflict而不是500
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "Duplicate entry")
}
