package models

import "time"

// 发件箱消息状态
const (
	OutboxStatusPending = "PENDING"
	OutboxStatusSent    = "SENT"
	OutboxStatusFailed  = "FAILED"
)

// OutboxMessage 发件箱表：与业务记录同事务写入，由中继异步发布
type OutboxMessage struct {
	ID               uint      `gorm:"primaryKey;autoIncrement"`
	AggregateID      string    `gorm:"type:varchar(36);index"` // 关联的match_uuid
	EventType        string    `gorm:"type:varchar(64)"`       // 例如 match.completed
	Payload          string    `gorm:"type:json"`
	TargetExchange   string    `gorm:"type:varchar(128)"`
	TargetRoutingKey string    `gorm:"type:varchar(128)"`
	Status           string    `gorm:"type:varchar(16);index;default:PENDING"`
	RetryCount       int       `gorm:"default:0"`
	ErrorMessage     string    `gorm:"type:text"`
	CreatedAt        time.Time `gorm:"index"`
	ProcessedAt      *time.Time
}

// TableName 指定表名
func (OutboxMessage) TableName() string {
	return "outbox_messages"
}
