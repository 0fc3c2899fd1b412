package errs

import (
	"errors"
	"fmt"
)

var (
	ErrQueueClosed   = errors.New("deadlineq：队列已关闭")
	ErrOutOfCapacity = errors.New("deadlineq：超过容量限制")
	ErrEmptyQueue    = errors.New("deadlineq：队列为空")
)

// NewErrInvalidConfig 创建一个代表配置项不合法的错误
func NewErrInvalidConfig(field string, val any) error {
	return fmt.Errorf("deadlineq: 配置项不合法，字段 %s, 值 %v", field, val)
}
