package parser

import (
	"context"
	"strings"
	"time"

	"resume-match-go/internal/capability"
	"resume-match-go/internal/types"
)

// ResumeParser 简历解析器，组合分段与各区块提取器
// tagger 可为 nil，此时联系人提取只走标签与启发式
type ResumeParser struct {
	segmenter *Segmenter
	contact   *ContactExtractor
	now       func() time.Time
}

// ResumeParserOption 解析器可选配置
type ResumeParserOption func(*ResumeParser)

// WithClock 注入时间源，测试用
func WithClock(now func() time.Time) ResumeParserOption {
	return func(p *ResumeParser) {
		p.now = now
	}
}

// NewResumeParser 创建简历解析器
func NewResumeParser(tagger capability.EntityTagger, opts ...ResumeParserOption) *ResumeParser {
	p := &ResumeParser{
		segmenter: NewSegmenter(),
		contact:   NewContactExtractor(tagger),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseResume 把简历纯文本解析为结构化简历
// 任一区块缺失时对应字段保持空切片，不返回错误
func (p *ResumeParser) ParseResume(ctx context.Context, text string) (*types.Resume, error) {
	resume := types.NewResume()

	sections, preamble := p.segmenter.Split(text)

	// 联系人信息只从首个区块标题之前的文本提取，序言为空则各字段为空
	info := p.contact.Extract(ctx, preamble)
	resume.Name = info.Name
	resume.Email = info.Email
	resume.Phone = info.Phone
	resume.Location = info.Location

	if body, ok := sections[types.SectionSummary]; ok {
		resume.Summary = strings.TrimSpace(body)
	}
	if body, ok := sections[types.SectionSkills]; ok {
		resume.Skills = ExtractSkills(body)
	}
	if body, ok := sections[types.SectionWork]; ok {
		resume.Work = ExtractWorkHistory(body, p.now())
	}
	if body, ok := sections[types.SectionEducation]; ok {
		resume.Education = ExtractEducation(body)
	}
	if body, ok := sections[types.SectionCertifications]; ok {
		resume.Certifications = ExtractStringList(body)
	}
	if body, ok := sections[types.SectionLanguages]; ok {
		resume.Languages = ExtractStringList(body)
	}
	if body, ok := sections[types.SectionProjects]; ok {
		resume.Projects = ExtractProjects(body)
	}

	return resume, nil
}
