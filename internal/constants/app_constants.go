package constants

import "time"

const (
	// SemanticMatchThreshold 语义技能匹配阈值，相似度必须严格大于该值才算匹配
	SemanticMatchThreshold = 0.7

	// 各分项分数的固定权重，总和为1.0
	WeightSkills     = 0.5
	WeightExperience = 0.3
	WeightEducation  = 0.1
	WeightSemantic   = 0.1

	// DefaultSkillLevel 技能提取不解析熟练度，统一使用的默认级别
	DefaultSkillLevel = "Intermediate"

	// PresentLiteral 工作/教育经历中表示"至今"的字面量
	PresentLiteral = "Present"

	// DefaultMatchTimeout 单份简历端到端处理的默认超时
	DefaultMatchTimeout = 60 * time.Second
)
