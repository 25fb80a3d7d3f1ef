package matcher

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-match-go/internal/types"
)

// MockReranker 按文档文本前缀返回预置分数
type MockReranker struct {
	scores map[string]float64
	err    error
}

func (m *MockReranker) Rerank(ctx context.Context, query, document string) (float64, error) {
	if m.err != nil {
		return 0, m.err
	}
	for prefix, score := range m.scores {
		if strings.HasPrefix(document, prefix) {
			return score, nil
		}
	}
	return 0, nil
}

func rerankFixtures() (*types.Resume, *types.JobRequirement) {
	resume := types.NewResume()
	resume.Skills = []types.SkillItem{{Name: "Go"}, {Name: "Python"}}
	resume.Work = []types.WorkEntry{{Position: "Engineer", Company: "Acme"}}
	resume.Education = []types.EducationEntry{{StudyType: "B.S.", Area: "Computer Science"}}
	job := &types.JobRequirement{Title: "Backend Engineer", MatchText: "Backend engineer role using Go."}
	return resume, job
}

// TestRankHighlightsOrdering 要点按重排分数降序返回
func TestRankHighlightsOrdering(t *testing.T) {
	reranker := &MockReranker{scores: map[string]float64{
		"Skill: Go":     0.9,
		"Skill: Python": 0.3,
		"Experience:":   0.7,
		"Education:":    0.5,
	}}
	r := NewMatchReranker(reranker)
	resume, job := rerankFixtures()

	ranked := r.RankHighlights(context.Background(), resume, job)

	require.Len(t, ranked, 4)
	assert.Equal(t, "Skill: Go", ranked[0].Text)
	assert.Equal(t, "skill", ranked[0].Type)
	assert.Equal(t, "Experience: Engineer at Acme", ranked[1].Text)
	assert.Equal(t, "experience", ranked[1].Type)
	assert.Equal(t, "Education: B.S. in Computer Science", ranked[2].Text)
	assert.Equal(t, "education", ranked[2].Type)
	assert.Equal(t, "Skill: Python", ranked[3].Text)
}

// TestRankHighlightsRerankerErrorDegrades 打分失败时整体放弃重排
func TestRankHighlightsRerankerErrorDegrades(t *testing.T) {
	r := NewMatchReranker(&MockReranker{err: errors.New("rerank service down")})
	resume, job := rerankFixtures()

	assert.Nil(t, r.RankHighlights(context.Background(), resume, job))
}

// TestRankHighlightsDisabled 未启用重排或输入不全时返回nil
func TestRankHighlightsDisabled(t *testing.T) {
	resume, job := rerankFixtures()

	assert.Nil(t, NewMatchReranker(nil).RankHighlights(context.Background(), resume, job))

	r := NewMatchReranker(&MockReranker{})
	assert.Nil(t, r.RankHighlights(context.Background(), nil, job))
	assert.Nil(t, r.RankHighlights(context.Background(), resume, &types.JobRequirement{}))
}

// TestRankHighlightsSkipsEmptyEntries 空的工作/教育条目不生成要点
func TestRankHighlightsSkipsEmptyEntries(t *testing.T) {
	resume := types.NewResume()
	resume.Work = []types.WorkEntry{{}}
	resume.Education = []types.EducationEntry{{}}
	job := &types.JobRequirement{MatchText: "any role"}

	ranked := NewMatchReranker(&MockReranker{}).RankHighlights(context.Background(), resume, job)

	assert.Nil(t, ranked)
}
