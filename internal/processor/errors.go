package processor

import (
	"errors"
	"fmt"
)

// 基础错误类型
var (
	ErrEmptyResumeText   = errors.New("简历文本为空")
	ErrEmptyJobText      = errors.New("JD文本为空")
	ErrParseResumeFailed = errors.New("解析简历失败")
	ErrScoreFailed       = errors.New("计算匹配分失败")
	ErrPersistFailed     = errors.New("持久化匹配结果失败")
	ErrPublishTaskFailed = errors.New("发布异步匹配任务失败")
	ErrQueueUnavailable  = errors.New("消息队列未配置")
)

// MatchProcessError 带上下文的匹配处理错误
type MatchProcessError struct {
	MatchUUID string
	Op        string
	BaseErr   error
	Detail    string
}

func (e *MatchProcessError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (操作:%s, UUID:%s): %s", e.BaseErr, e.Op, e.MatchUUID, e.Detail)
	}
	return fmt.Sprintf("%s (操作:%s, UUID:%s)", e.BaseErr, e.Op, e.MatchUUID)
}

func (e *MatchProcessError) Unwrap() error {
	return e.BaseErr
}

// Is 支持 errors.Is 按基础错误比较
func (e *MatchProcessError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

func newProcessError(uuid, op string, base error, detail string) error {
	return &MatchProcessError{
		MatchUUID: uuid,
		Op:        op,
		BaseErr:   base,
		Detail:    detail,
	}
}
