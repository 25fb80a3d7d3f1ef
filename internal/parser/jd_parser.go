package parser

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"resume-match-go/internal/types"
)

// jdTechKeywords JD技能识别的固定技术词表
// 四个提取遍次共用同一词表，按大小写不敏感去重后取并集
var jdTechKeywords = []string{
	"python", "java", "javascript", "typescript", "react", "angular", "vue",
	"node.js", "express", "django", "flask", "spring", "spring boot", "sql", "nosql",
	"mongodb", "postgresql", "mysql", "aws", "azure", "gcp", "docker",
	"kubernetes", "git", "ci/cd", "agile", "scrum", "microservices", "rest", "rest apis",
}

// jdEducationLevels 学历要求词表，按优先级排序，首个命中即返回
var jdEducationLevels = []struct {
	Keyword string
	Degree  string
}{
	{"bachelor", "Bachelor's Degree"},
	{"master", "Master's Degree"},
	{"phd", "PhD"},
	{"associate", "Associate's Degree"},
	{"high school", "High School Diploma"},
}

var (
	// jdTitleRe "Title:" 标签行
	jdTitleRe = regexp.MustCompile(`Title:\s*([^\n]+)`)
	// jdBulletRe 弹点行内容
	jdBulletRe = regexp.MustCompile(`[-•]\s*([^\n]+)`)
	// jdColonListRe "experience in:" / "skills:" 后直到空行或Requirements的内容
	jdColonListRe = regexp.MustCompile(`(?i)(?:experience in:|skills:)\s*\n\s*([\s\S]*?)(?:\n\n|Requirements|\z)`)
	// jdRequirementsRe "requirements:" 区块内容
	jdRequirementsRe = regexp.MustCompile(`requirements:\s*\n([\s\S]*?)(?:\n\n|\z)`)

	// jdExperienceRes 年限提取的三种句式，按顺序尝试
	jdExperienceRes = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\+?\s*years?\s+of\s+experience`),
		regexp.MustCompile(`(\d+)\+?\s*years?\s+experience`),
		regexp.MustCompile(`(\d+)\+?\s*years?\s+with`),
	}
	// jdRequirementsExperienceRe requirements区块内的年限次级回退
	jdRequirementsExperienceRe = regexp.MustCompile(`requirements:\s*\n[\s\S]*?(\d+)\+?\s*years?\s+of\s+experience`)

	// jdKeywordBoundaryRes 每个技术关键词预编译的词边界匹配
	jdKeywordBoundaryRes = buildKeywordBoundaryRes()
)

func buildKeywordBoundaryRes() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp, len(jdTechKeywords))
	for _, keyword := range jdTechKeywords {
		res[keyword] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b`)
	}
	return res
}

// ParseJobDescription 把JD文本解析成结构化岗位要求
// 去除首尾空白后的原文整体保留在 MatchText 中供文档级语义比较
func ParseJobDescription(text string) *types.JobRequirement {
	text = strings.TrimSpace(text)
	return &types.JobRequirement{
		Title:                   extractJDTitle(text),
		RequiredSkills:          extractRequiredSkills(text),
		RequiredExperienceYears: extractRequiredExperience(text),
		RequiredEducation:       extractRequiredEducation(text),
		MatchText:               text,
	}
}

func extractJDTitle(text string) string {
	match := jdTitleRe.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}

// extractRequiredSkills 四遍提取的并集：
// (a) 弹点行子串扫描 (b) "experience in:"/"skills:" 列表
// (c) requirements区块 (d) 全文兜底扫描
func extractRequiredSkills(text string) []string {
	textLower := strings.ToLower(text)
	skills := []string{}
	seen := map[string]bool{}

	add := func(keyword string) {
		capitalized := capitalizeSkill(keyword)
		if seen[capitalized] {
			return
		}
		seen[capitalized] = true
		skills = append(skills, capitalized)
	}

	// (a) 弹点行：子串包含即算，对 "react" 之类的短词比词边界更宽松
	for _, match := range jdBulletRe.FindAllStringSubmatch(textLower, -1) {
		point := match[1]
		for _, keyword := range jdTechKeywords {
			if strings.Contains(point, keyword) {
				add(keyword)
			}
		}
	}

	// (b) 冒号列表区
	for _, match := range jdColonListRe.FindAllStringSubmatch(text, -1) {
		for _, keyword := range jdTechKeywords {
			if jdKeywordBoundaryRes[keyword].MatchString(match[1]) {
				add(keyword)
			}
		}
	}

	// (c) requirements区块
	if match := jdRequirementsRe.FindStringSubmatch(textLower); match != nil {
		for _, keyword := range jdTechKeywords {
			if jdKeywordBoundaryRes[keyword].MatchString(match[1]) {
				add(keyword)
			}
		}
	}

	// (d) 全文兜底
	for _, keyword := range jdTechKeywords {
		if jdKeywordBoundaryRes[keyword].MatchString(textLower) {
			add(keyword)
		}
	}

	return skills
}

// extractRequiredExperience 提取要求的工作年限，未找到返回0表示未指定
func extractRequiredExperience(text string) int {
	textLower := strings.ToLower(text)

	for _, re := range jdExperienceRes {
		if match := re.FindStringSubmatch(textLower); match != nil {
			years, err := strconv.Atoi(match[1])
			if err == nil {
				return years
			}
		}
	}

	if match := jdRequirementsExperienceRe.FindStringSubmatch(textLower); match != nil {
		years, err := strconv.Atoi(match[1])
		if err == nil {
			return years
		}
	}

	return 0
}

// extractRequiredEducation 按优先级词表找学历要求，返回完整学位名称
func extractRequiredEducation(text string) string {
	textLower := strings.ToLower(text)
	for _, level := range jdEducationLevels {
		if strings.Contains(textLower, level.Keyword) {
			return level.Degree
		}
	}
	return ""
}

// capitalizeSkill 首字母大写、其余小写，如 "sql" -> "Sql"、"node.js" -> "Node.js"
func capitalizeSkill(keyword string) string {
	if keyword == "" {
		return keyword
	}
	runes := []rune(strings.ToLower(keyword))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
