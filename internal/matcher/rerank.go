package matcher

import (
	"context"
	"fmt"
	"sort"

	"resume-match-go/internal/capability"
	"resume-match-go/internal/logger"
	"resume-match-go/internal/types"
)

// MatchReranker 用重排模型对简历要点按JD相关性重排
// 重排属于增强能力，失败时降级为空结果，不影响主流程
type MatchReranker struct {
	reranker capability.Reranker
}

// NewMatchReranker 创建重排器，reranker 可为 nil 表示未启用
func NewMatchReranker(reranker capability.Reranker) *MatchReranker {
	return &MatchReranker{reranker: reranker}
}

// RankHighlights 把简历的技能、经历、学历展开为要点文本
// 逐条用重排模型对JD原文打分，按分数降序返回
func (r *MatchReranker) RankHighlights(ctx context.Context, resume *types.Resume, job *types.JobRequirement) []types.RankedMatch {
	if r.reranker == nil || resume == nil || job == nil || job.MatchText == "" {
		return nil
	}

	candidates := collectHighlights(resume)
	if len(candidates) == 0 {
		return nil
	}

	ranked := make([]types.RankedMatch, 0, len(candidates))
	for _, candidate := range candidates {
		score, err := r.reranker.Rerank(ctx, job.MatchText, candidate.Text)
		if err != nil {
			logger.Warn().Err(err).Str("candidate", candidate.Text).Msg("重排打分失败，放弃本次重排")
			return nil
		}
		ranked = append(ranked, types.RankedMatch{Type: candidate.Type, Text: candidate.Text, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

type highlight struct {
	Type string
	Text string
}

func collectHighlights(resume *types.Resume) []highlight {
	highlights := []highlight{}
	for _, skill := range resume.Skills {
		highlights = append(highlights, highlight{Type: "skill", Text: fmt.Sprintf("Skill: %s", skill.Name)})
	}
	for _, work := range resume.Work {
		if work.Position == "" && work.Company == "" {
			continue
		}
		highlights = append(highlights, highlight{Type: "experience", Text: fmt.Sprintf("Experience: %s at %s", work.Position, work.Company)})
	}
	for _, edu := range resume.Education {
		if edu.StudyType == "" && edu.Area == "" {
			continue
		}
		highlights = append(highlights, highlight{Type: "education", Text: fmt.Sprintf("Education: %s in %s", edu.StudyType, edu.Area)})
	}
	return highlights
}
