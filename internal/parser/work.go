package parser

import (
	"regexp"
	"strings"
	"time"

	"resume-match-go/internal/constants"
	"resume-match-go/internal/types"
)

var (
	// monthYearRangeRe "Month Year - Month Year|Present" 形式的日期区间
	monthYearRangeRe = regexp.MustCompile(`(\w+\s+\d{4})\s*-\s*(\w+\s+\d{4}|Present)`)
	// fourDigitYearRe 任意4位年份
	fourDigitYearRe = regexp.MustCompile(`\d{4}`)
	// companyLineRe 公司后缀词表，命中即视为新条目的公司行
	companyLineRe = regexp.MustCompile(`(?i)\b(inc\.?|llc|ltd\.?|corp\.?|company|corporation|technologies|solutions|systems)\b`)
	// jobTitleLineRe 职位关键词表
	jobTitleLineRe = regexp.MustCompile(`(?i)\b(engineer|developer|manager|director|lead|architect|consultant|analyst|specialist)\b`)
)

// workAccumulator 工作经历提取的显式状态机（NoEntry / BuildingEntry）
// 边界触发（新公司行、管道行）和输入结束时吐出已积累的条目
type workAccumulator struct {
	current types.WorkEntry
	started bool
	entries []types.WorkEntry
}

func (a *workAccumulator) flush() {
	if a.started {
		a.entries = append(a.entries, a.current)
	}
	a.current = types.WorkEntry{}
	a.started = false
}

func (a *workAccumulator) appendSummary(line string) {
	if a.current.Summary != "" {
		a.current.Summary += " " + line
	} else {
		a.current.Summary = line
	}
	a.started = true
}

// ExtractWorkHistory 从工作经历章节提取条目
//
// 识别两种输入形态：
//   - 形态A：管道分隔三元组 "position | company | date-range"
//   - 形态B：行式启发——公司后缀行开新条目，含年份行设日期，
//     职位关键词行设职位，其余非空行拼入概述
//
// now 用于把 "Present" 解析为当前年份
func ExtractWorkHistory(text string, now time.Time) []types.WorkEntry {
	acc := &workAccumulator{}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.Contains(line, "|") {
			parts := splitPipeParts(line)
			if len(parts) >= 3 {
				acc.flush()
				start, end := parseWorkDateRange(parts[2], now)
				acc.current = types.WorkEntry{
					Position:  parts[0],
					Company:   parts[1],
					StartDate: start,
					EndDate:   end,
				}
				acc.started = true
			}
			// 管道行但字段不足三个：无法解释，整行丢弃
			continue
		}

		switch {
		case companyLineRe.MatchString(line):
			acc.flush()
			acc.current.Company = line
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
		case jobTitleLineRe.MatchString(line):
			if acc.current.Position == "" {
				acc.current.Position = line
			}
			acc.started = true
		default:
			acc.appendSummary(line)
		}
	}

	acc.flush()

	if acc.entries == nil {
		return []types.WorkEntry{}
	}
	return acc.entries
}

// splitPipeParts 按管道切分并去除各段首尾空白
func splitPipeParts(line string) []string {
	raw := strings.Split(line, "|")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		parts = append(parts, strings.TrimSpace(part))
	}
	return parts
}

// parseWorkDateRange 解析形态A的日期区间
// 先试 "Month Year - Month Year|Present"，失败则回退到提取前两个4位年份；
// "Present" 归一化为当前年份
func parseWorkDateRange(dates string, now time.Time) (string, string) {
	if match := monthYearRangeRe.FindStringSubmatch(dates); match != nil {
		start, end := match[1], match[2]
		if end == constants.PresentLiteral {
			end = now.Format("2006")
		}
		return start, end
	}

	years := fourDigitYearRe.FindAllString(dates, -1)
	if len(years) >= 2 {
		return years[0], years[1]
	}
	return "", ""
}
