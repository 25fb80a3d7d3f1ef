package models

import (
	"time"

	"gorm.io/datatypes"
)

// MatchRecord 一次简历与JD匹配的持久化记录
// Details 存放完整的匹配明细JSON，与API返回的 details 字段同构
type MatchRecord struct {
	MatchUUID       string         `gorm:"type:varchar(36);primaryKey" json:"match_uuid"`
	ResumeMD5       string         `gorm:"type:varchar(32);index" json:"resume_md5"`
	JobMD5          string         `gorm:"type:varchar(32);index" json:"job_md5"`
	JobTitle        string         `gorm:"type:varchar(255)" json:"job_title"`
	CandidateName   string         `gorm:"type:varchar(255)" json:"candidate_name"`
	OverallScore    float64        `gorm:"type:decimal(5,4)" json:"overall_score"`
	SkillScore      float64        `gorm:"type:decimal(5,4)" json:"skill_score"`
	ExperienceScore float64        `gorm:"type:decimal(5,4)" json:"experience_score"`
	EducationScore  float64        `gorm:"type:decimal(5,4)" json:"education_score"`
	SemanticScore   float64        `gorm:"type:decimal(5,4)" json:"semantic_score"`
	ExperienceYears float64        `gorm:"type:decimal(5,1)" json:"experience_years"`
	Details         datatypes.JSON `gorm:"type:json" json:"details"`
	CreatedAt       time.Time      `json:"created_at"`
}

// TableName 指定表名
func (MatchRecord) TableName() string {
	return "match_records"
}

// FeedbackRecord HR对一次匹配结果的人工反馈
type FeedbackRecord struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	MatchUUID string    `gorm:"type:varchar(36);index" json:"match_uuid"`
	Useful    bool      `json:"useful"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 指定表名
func (FeedbackRecord) TableName() string {
	return "feedback_records"
}
