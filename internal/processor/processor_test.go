package processor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-match-go/internal/matcher"
	"resume-match-go/internal/normalizer"
	"resume-match-go/internal/parser"
	"resume-match-go/internal/scorer"
)

func newTestProcessor() *MatchProcessor {
	clock := func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }
	p := parser.NewResumeParser(nil, parser.WithClock(clock))
	n := normalizer.NewNormalizerFromMaps(map[string]string{"golang": "Go"}, nil)
	s := scorer.NewMatchScorer(
		matcher.NewSkillMatcher(nil, 0.7),
		nil,
		scorer.Weights{Skills: 0.5, Experience: 0.3, Education: 0.1, Semantic: 0.1},
		scorer.WithClock(clock),
	)
	// 纯计算模式：无存储层，不落库
	return NewMatchProcessor(p, n, s, nil, []SettingOpt{WithPersistence(false)})
}

const testResumeText = `John Smith
john@example.com

Skills
golang, Docker

Experience
Engineer | Acme Inc | Jan 2019 - Present`

const testJobText = `Title: Backend Engineer

Requirements:
- 3+ years of experience
- Docker and Kubernetes
- Bachelor's degree`

// TestMatchEndToEnd 解析、规范化、评分的完整链路
func TestMatchEndToEnd(t *testing.T) {
	p := newTestProcessor()

	outcome, err := p.Match(context.Background(), testResumeText, testJobText)

	require.NoError(t, err)
	assert.NotEmpty(t, outcome.MatchUUID)
	assert.Equal(t, "Backend Engineer", outcome.Job.Title)
	// golang 经本体规范化为 Go
	require.NotEmpty(t, outcome.Resume.Skills)
	assert.Equal(t, "Go", outcome.Resume.Skills[0].Name)
	assert.Equal(t, 5.0, outcome.Result.CalculatedExperienceYears)
	assert.Greater(t, outcome.Result.OverallScore, 0.0)
}

// TestParseResumeTextEmpty 空简历文本返回哨兵错误
func TestParseResumeTextEmpty(t *testing.T) {
	p := newTestProcessor()

	_, err := p.ParseResumeText(context.Background(), "   \n ")

	assert.ErrorIs(t, err, ErrEmptyResumeText)
}

// TestParseJobTextEmpty 空JD文本返回哨兵错误
func TestParseJobTextEmpty(t *testing.T) {
	p := newTestProcessor()

	_, err := p.ParseJobText(context.Background(), "")

	assert.ErrorIs(t, err, ErrEmptyJobText)
}

// TestMatchEmptyInputs 匹配入口对空输入直接拒绝
func TestMatchEmptyInputs(t *testing.T) {
	p := newTestProcessor()

	_, err := p.Match(context.Background(), "", testJobText)
	assert.ErrorIs(t, err, ErrEmptyResumeText)

	_, err = p.Match(context.Background(), testResumeText, "")
	assert.ErrorIs(t, err, ErrEmptyJobText)
}

// TestMatchBatchIsolatesFailures 单份简历失败不影响其余条目
func TestMatchBatchIsolatesFailures(t *testing.T) {
	p := newTestProcessor()

	results, err := p.MatchBatch(context.Background(), []string{testResumeText, "", testResumeText}, testJobText)

	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.NotNil(t, results[0].Result)
	assert.Empty(t, results[0].Error)
	assert.Nil(t, results[1].Result)
	assert.Contains(t, results[1].Error, ErrEmptyResumeText.Error())
	assert.NotNil(t, results[2].Result)
	// 每个条目都有独立的任务标识
	assert.NotEqual(t, results[0].ItemID, results[2].ItemID)
}

// TestMatchBatchEmptyJob JD为空时整批拒绝
func TestMatchBatchEmptyJob(t *testing.T) {
	p := newTestProcessor()

	_, err := p.MatchBatch(context.Background(), []string{testResumeText}, " ")

	assert.ErrorIs(t, err, ErrEmptyJobText)
}

// TestSubmitMatchTaskWithoutQueue 无消息队列时提交任务返回哨兵错误
func TestSubmitMatchTaskWithoutQueue(t *testing.T) {
	p := newTestProcessor()

	_, err := p.SubmitMatchTask(context.Background(), []string{testResumeText}, testJobText)

	assert.ErrorIs(t, err, ErrQueueUnavailable)
}

// TestMatchProcessErrorUnwrap 流程错误可按哨兵错误识别
func TestMatchProcessErrorUnwrap(t *testing.T) {
	err := newProcessError("uuid-1", "publish_task", ErrPublishTaskFailed, "connection refused")

	assert.ErrorIs(t, err, ErrPublishTaskFailed)
	assert.Contains(t, err.Error(), "publish_task")
	assert.Contains(t, err.Error(), "connection refused")
}
