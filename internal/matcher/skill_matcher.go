package matcher

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"resume-match-go/internal/capability"
	"resume-match-go/internal/logger"
	"resume-match-go/internal/types"
)

// SkillMatcher 技能匹配器：先精确匹配，再对剩余要求做语义兜底
type SkillMatcher struct {
	scorer    capability.SimilarityScorer
	threshold float64
}

// NewSkillMatcher 创建技能匹配器
// scorer 可为 nil，此时只做精确匹配
func NewSkillMatcher(scorer capability.SimilarityScorer, threshold float64) *SkillMatcher {
	return &SkillMatcher{scorer: scorer, threshold: threshold}
}

// Match 把岗位技能要求逐条与候选人技能比对
// 精确匹配按大小写不敏感比较，语义匹配取相似度最高的候选技能
// 且要求严格大于阈值，语义打分失败时降级为缺失而非报错
func (m *SkillMatcher) Match(ctx context.Context, required []string, candidate []types.SkillItem) types.SkillMatchDetail {
	detail := types.SkillMatchDetail{
		Matched:             []string{},
		Missing:             []string{},
		SemanticallyMatched: []string{},
	}

	candidateNames := make([]string, 0, len(candidate))
	for _, skill := range candidate {
		candidateNames = append(candidateNames, skill.Name)
	}

	for _, requiredSkill := range required {
		if matchExact(requiredSkill, candidateNames) {
			detail.Matched = append(detail.Matched, requiredSkill)
			continue
		}

		matchedName, score, ok := m.matchSemantic(ctx, requiredSkill, candidateNames)
		if ok {
			detail.SemanticallyMatched = append(detail.SemanticallyMatched,
				fmt.Sprintf("%s (similar to %s, score: %.2f)", requiredSkill, titleCase(matchedName), score))
			continue
		}

		detail.Missing = append(detail.Missing, requiredSkill)
	}

	return detail
}

func matchExact(required string, candidateNames []string) bool {
	for _, name := range candidateNames {
		if strings.EqualFold(required, name) {
			return true
		}
	}
	return false
}

// matchSemantic 对单条要求找相似度最高的候选技能，严格大于阈值才算命中
func (m *SkillMatcher) matchSemantic(ctx context.Context, required string, candidateNames []string) (string, float64, bool) {
	if m.scorer == nil {
		return "", 0, false
	}

	bestName := ""
	bestScore := 0.0
	for _, name := range candidateNames {
		score, err := m.scorer.Similarity(ctx, required, name)
		if err != nil {
			logger.Warn().Err(err).
				Str("required_skill", required).
				Str("candidate_skill", name).
				Msg("技能语义相似度计算失败，跳过该候选")
			continue
		}
		if score > bestScore {
			bestScore = score
			bestName = name
		}
	}

	if bestName != "" && bestScore > m.threshold {
		return bestName, bestScore, true
	}
	return "", 0, false
}

// titleCase 每个空格分隔词首字母大写
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
