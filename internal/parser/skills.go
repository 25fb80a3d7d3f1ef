package parser

import (
	"regexp"
	"strings"

	"resume-match-go/internal/constants"
	"resume-match-go/internal/types"
)

var (
	// listDelimiterRe 技能/证书/语言列表的通用分隔符：逗号、圆点符、管道、换行
	listDelimiterRe = regexp.MustCompile(`[,•|\n]`)
	// bulletPrefixRe 行首的弹点或连字符前缀
	bulletPrefixRe = regexp.MustCompile(`^[-•]\s*`)
)

// ExtractSkills 从技能章节提取技能列表
// 不解析熟练度，所有条目的级别固定为默认值
func ExtractSkills(text string) []types.SkillItem {
	skills := []types.SkillItem{}
	for _, token := range listDelimiterRe.Split(text, -1) {
		token = strings.TrimSpace(token)
		token = bulletPrefixRe.ReplaceAllString(token, "")
		if token == "" {
			continue
		}
		skills = append(skills, types.SkillItem{
			Name:  token,
			Level: constants.DefaultSkillLevel,
		})
	}
	return skills
}

// ExtractStringList 通用的分隔-去空白列表提取，用于证书和语言章节
func ExtractStringList(text string) []string {
	items := []string{}
	for _, token := range listDelimiterRe.Split(text, -1) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		items = append(items, token)
	}
	return items
}
