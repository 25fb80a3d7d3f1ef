package parser

import (
	"regexp"
	"strings"

	"resume-match-go/internal/types"
)

// sectionHeaderSynonyms 章节标题同义词表
// 标题行必须整行只含一个同义词（可带结尾标点）才被识别
var sectionHeaderSynonyms = []string{
	"summary", "profile", "objective",
	"skills", "technologies", "expertise", "competencies", "technical skills",
	"experience", "work", "work experience", "employment", "professional experience",
	"education", "academic", "qualification",
	"certifications", "certificates", "accreditations",
	"languages", "language proficiency",
	"projects", "project experience", "portfolio",
}

// headerLineRe 匹配仅由一个同义词加可选标点构成的标题行
var headerLineRe = regexp.MustCompile(
	`(?mi)^[ \t]*(` + strings.Join(sectionHeaderSynonyms, "|") + `)[ \t:：–—-]*$`,
)

// Segmenter 基于标题行识别把原始文本切分为规范章节
type Segmenter struct{}

// NewSegmenter 创建章节切分器
func NewSegmenter() *Segmenter {
	return &Segmenter{}
}

// Split 切分文本，返回章节映射和首个标题行之前的前导文本
// 前导文本保留给联系方式提取，不进入任何章节正文
//
// 重复章节策略：同一规范章节名后出现的覆盖先出现的（last-write-wins）。
// 这是已知的启发式局限，是否应合并重复章节留作产品决策。
func (s *Segmenter) Split(text string) (types.SectionMap, string) {
	sections := types.SectionMap{}

	matches := headerLineRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		// 无任何可识别标题：整个文本作为联系方式前导区
		return sections, strings.TrimSpace(text)
	}

	preamble := strings.TrimSpace(text[:matches[0][0]])

	for i, match := range matches {
		header := strings.ToLower(text[match[2]:match[3]])
		bodyStart := match[1]
		bodyEnd := len(text)
		if i+1 < len(matches) {
			bodyEnd = matches[i+1][0]
		}
		canonical := canonicalSectionName(header)
		sections[canonical] = strings.TrimSpace(text[bodyStart:bodyEnd])
	}

	return sections, preamble
}

// canonicalSectionName 把标题同义词归一到规范章节名
// 按固定顺序做子串判断；"project experience" 因含 "experience" 归入 work，
// 与原有启发式保持一致
func canonicalSectionName(header string) types.SectionName {
	switch {
	case strings.Contains(header, "summary"),
		strings.Contains(header, "profile"),
		strings.Contains(header, "objective"):
		return types.SectionSummary
	case strings.Contains(header, "skill"),
		strings.Contains(header, "technolog"),
		strings.Contains(header, "expertise"),
		strings.Contains(header, "competenc"):
		return types.SectionSkills
	case strings.Contains(header, "experience"),
		strings.Contains(header, "work"),
		strings.Contains(header, "employment"):
		return types.SectionWork
	case strings.Contains(header, "education"),
		strings.Contains(header, "academic"),
		strings.Contains(header, "qualification"):
		return types.SectionEducation
	case strings.Contains(header, "certificat"),
		strings.Contains(header, "accreditation"):
		return types.SectionCertifications
	case strings.Contains(header, "language"):
		return types.SectionLanguages
	case strings.Contains(header, "project"),
		strings.Contains(header, "portfolio"):
		return types.SectionProjects
	default:
		return types.SectionName(header)
	}
}
