package scorer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"resume-match-go/internal/capability"
	"resume-match-go/internal/logger"
	"resume-match-go/internal/matcher"
	"resume-match-go/internal/types"
)

// Weights 四个分项的固定权重，和为1
type Weights struct {
	Skills     float64
	Experience float64
	Education  float64
	Semantic   float64
}

// MatchScorer 匹配评分器：四个分项独立计算后按权重加权
type MatchScorer struct {
	skills  *matcher.SkillMatcher
	scorer  capability.SimilarityScorer
	weights Weights
	now     func() time.Time
}

// MatchScorerOption 评分器可选配置
type MatchScorerOption func(*MatchScorer)

// WithClock 注入时间源，测试用
func WithClock(now func() time.Time) MatchScorerOption {
	return func(s *MatchScorer) {
		s.now = now
	}
}

// NewMatchScorer 创建评分器
// similarity 可为 nil，此时语义相关的分项退化为0或仅精确匹配
func NewMatchScorer(skills *matcher.SkillMatcher, similarity capability.SimilarityScorer, weights Weights, opts ...MatchScorerOption) *MatchScorer {
	s := &MatchScorer{
		skills:  skills,
		scorer:  similarity,
		weights: weights,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score 计算简历与岗位要求的匹配结果
// 各分项均落在 [0,1]，总分为固定权重加权和
func (s *MatchScorer) Score(ctx context.Context, resume *types.Resume, job *types.JobRequirement) *types.MatchResult {
	result := &types.MatchResult{
		Details: types.MatchDetails{
			SkillMatches:      types.SkillMatchDetail{Matched: []string{}, Missing: []string{}, SemanticallyMatched: []string{}},
			EducationMatches:  types.CategoryMatchDetail{Matched: []string{}, Missing: []string{}},
			ExperienceMatches: types.CategoryMatchDetail{Matched: []string{}, Missing: []string{}},
		},
	}

	result.SkillScore = s.scoreSkills(ctx, resume, job, result)
	result.ExperienceScore = s.scoreExperience(resume, job, result)
	result.EducationScore = s.scoreEducation(resume, job, result)
	result.SemanticScore = s.scoreSemantic(ctx, resume, job)

	result.OverallScore = s.weights.Skills*result.SkillScore +
		s.weights.Experience*result.ExperienceScore +
		s.weights.Education*result.EducationScore +
		s.weights.Semantic*result.SemanticScore

	return result
}

// scoreSkills 技能分 = (精确命中+语义命中)/要求总数，无要求时满分
func (s *MatchScorer) scoreSkills(ctx context.Context, resume *types.Resume, job *types.JobRequirement, result *types.MatchResult) float64 {
	if len(job.RequiredSkills) == 0 {
		return 1.0
	}

	detail := s.skills.Match(ctx, job.RequiredSkills, resume.Skills)
	result.Details.SkillMatches = detail

	matched := len(detail.Matched) + len(detail.SemanticallyMatched)
	return float64(matched) / float64(len(job.RequiredSkills))
}

// scoreExperience 年限分 = min(实际/要求, 1)，未指定要求时满分
func (s *MatchScorer) scoreExperience(resume *types.Resume, job *types.JobRequirement, result *types.MatchResult) float64 {
	years := matcher.CalculateTotalExperience(resume.Work, s.now())
	result.CalculatedExperienceYears = years

	if job.RequiredExperienceYears <= 0 {
		return 1.0
	}

	detailText := fmt.Sprintf("Candidate has %.1f years (required: %d)", years, job.RequiredExperienceYears)
	score := years / float64(job.RequiredExperienceYears)
	if score >= 1.0 {
		result.Details.ExperienceMatches.Matched = append(result.Details.ExperienceMatches.Matched, detailText)
		return 1.0
	}
	result.Details.ExperienceMatches.Missing = append(result.Details.ExperienceMatches.Missing, detailText)
	return score
}

// degreeKeywords 学位匹配的固定词表
// 注意此逻辑刻意保持简单："B.Tech"不包含"bachelor"不会命中，
// 需要等价表才能解决，当前作为已知局限保留
var degreeKeywords = []string{"bachelor", "b.tech", "master", "m.tech", "phd"}

// scoreEducation 学历分为二值：词表中任一关键词同时出现在要求串
// 和任一学历条目的 studyType 中即满分，未指定要求时满分
func (s *MatchScorer) scoreEducation(resume *types.Resume, job *types.JobRequirement, result *types.MatchResult) float64 {
	if job.RequiredEducation == "" {
		return 1.0
	}

	requiredLower := strings.ToLower(job.RequiredEducation)
	for _, entry := range resume.Education {
		studyTypeLower := strings.ToLower(entry.StudyType)
		for _, keyword := range degreeKeywords {
			if strings.Contains(requiredLower, keyword) && strings.Contains(studyTypeLower, keyword) {
				result.Details.EducationMatches.Matched = append(result.Details.EducationMatches.Matched, job.RequiredEducation)
				return 1.0
			}
		}
	}

	result.Details.EducationMatches.Missing = append(result.Details.EducationMatches.Missing, job.RequiredEducation)
	return 0.0
}

// scoreSemantic 文档级语义分：简历摘要+技能串 对 JD原文 的余弦相似度
// 相似度可能为负，结果下钳到0；能力失败降级为0分
func (s *MatchScorer) scoreSemantic(ctx context.Context, resume *types.Resume, job *types.JobRequirement) float64 {
	if s.scorer == nil || job.MatchText == "" {
		return 0.0
	}

	resumeText := buildResumeMatchText(resume)
	if strings.TrimSpace(resumeText) == "" {
		return 0.0
	}

	score, err := s.scorer.Similarity(ctx, resumeText, job.MatchText)
	if err != nil {
		logger.Warn().Err(err).Msg("文档级语义相似度计算失败，语义分记0")
		return 0.0
	}
	if score < 0 {
		return 0.0
	}
	if score > 1 {
		return 1.0
	}
	return score
}

// buildResumeMatchText 简历侧语义文本 = 摘要 + 小写技能名的空格拼接
func buildResumeMatchText(resume *types.Resume) string {
	names := make([]string, 0, len(resume.Skills))
	for _, skill := range resume.Skills {
		names = append(names, strings.ToLower(skill.Name))
	}
	return strings.TrimSpace(resume.Summary + " " + strings.Join(names, " "))
}
