package storage

import "time"

// MatchTaskMessage 异步批量匹配任务的队列消息
type MatchTaskMessage struct {
	// TaskID 任务UUID（UUIDv7，时间有序）
	TaskID string `json:"task_id"`
	// ResumeTexts 待匹配的简历纯文本列表
	ResumeTexts []string `json:"resume_texts"`
	// JobDescription JD原文
	JobDescription string `json:"job_description"`
	// SubmittedAt 提交时间
	SubmittedAt time.Time `json:"submitted_at"`
}
