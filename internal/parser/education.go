package parser

import (
	"regexp"
	"strings"

	"resume-match-go/internal/constants"
	"resume-match-go/internal/types"
)

var (
	// degreeKeywordRe 学位关键词，命中即开启新的教育条目
	degreeKeywordRe = regexp.MustCompile(`(?i)(bachelor|master|phd|b\.s\.|m\.s\.|b\.a\.|m\.a\.)`)
	// institutionKeywordRe 院校关键词
	institutionKeywordRe = regexp.MustCompile(`(?i)(university|college|institute|school)`)
)

// educationAccumulator 教育经历提取的显式状态机，与工作经历同构
type educationAccumulator struct {
	current types.EducationEntry
	started bool
	entries []types.EducationEntry
}

func (a *educationAccumulator) flush() {
	if a.started {
		a.entries = append(a.entries, a.current)
	}
	a.current = types.EducationEntry{}
	a.started = false
}

// ExtractEducation 从教育经历章节提取条目
//
// 管道分隔三元组 "degree | institution | dates" 直接成条；
// 其余行走关键词启发：学位关键词开新条目，年份行设起止日期，
// 院校关键词行设院校名。条目在新学位行和输入结束时吐出
func ExtractEducation(text string) []types.EducationEntry {
	acc := &educationAccumulator{}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.Contains(line, "|") {
			parts := splitPipeParts(line)
			if len(parts) >= 3 {
				acc.flush()
				entry := types.EducationEntry{
					StudyType:   parts[0],
					Institution: parts[1],
				}
				years := fourDigitYearRe.FindAllString(parts[2], -1)
				if len(years) >= 2 {
					entry.StartDate = years[0]
					entry.EndDate = years[1]
				}
				acc.entries = append(acc.entries, entry)
			}
			continue
		}

		switch {
		case degreeKeywordRe.MatchString(line):
			acc.flush()
			acc.current.Area = line
			acc.started = true
		case fourDigitYearRe.MatchString(line):
			years := fourDigitYearRe.FindAllString(line, -1)
			if len(years) >= 2 {
				acc.current.StartDate = years[0]
				acc.current.EndDate = years[1]
			} else {
				acc.current.StartDate = years[0]
				acc.current.EndDate = constants.PresentLiteral
			}
			acc.started = true
		case institutionKeywordRe.MatchString(line):
			acc.current.Institution = line
			acc.started = true
		}
	}

	acc.flush()

	if acc.entries == nil {
		return []types.EducationEntry{}
	}
	return acc.entries
}
