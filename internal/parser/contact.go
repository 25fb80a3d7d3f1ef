package parser

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"resume-match-go/internal/capability"
	"resume-match-go/internal/logger"
	"resume-match-go/internal/types"
)

var (
	// emailRe 标准邮箱格式
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	// phoneRe 北美电话格式，容忍分隔符和可选的 +1 前缀
	phoneRe = regexp.MustCompile(`\+?1?\s*\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}`)
	// nameLabelRe 显式 "Name:" 标签行
	nameLabelRe = regexp.MustCompile(`(?i)^name:\s*(.+)$`)
	// locationLabelRe 显式 "Location:" 标签
	locationLabelRe = regexp.MustCompile(`(?i)location:\s*(.+)`)
)

// ContactInfo 从前导文本提取出的联系方式
type ContactInfo struct {
	Name     string
	Email    string
	Phone    string
	Location string
}

// ContactExtractor 联系方式提取器
// 姓名/地址按 显式标签 > NER > 大写启发式 的优先级取值，首个命中即停
type ContactExtractor struct {
	tagger capability.EntityTagger
}

// NewContactExtractor 创建联系方式提取器，tagger可为nil（跳过NER层）
func NewContactExtractor(tagger capability.EntityTagger) *ContactExtractor {
	return &ContactExtractor{tagger: tagger}
}

// Extract 从首个章节标题之前的前导文本提取联系方式
// NER能力失败时降级为无实体，不中断整条记录的处理
func (e *ContactExtractor) Extract(ctx context.Context, text string) ContactInfo {
	info := ContactInfo{
		Email: emailRe.FindString(text),
		Phone: phoneRe.FindString(text),
	}

	// 第一层：显式标签
	info.Name = extractNameLabel(text)
	info.Location = extractLocationLabel(text)

	// 第二层：NER实体
	if (info.Name == "" || info.Location == "") && e.tagger != nil {
		spans, err := e.tagger.TagEntities(ctx, text)
		if err != nil {
			logger.Warn().Err(err).Msg("NER标注失败，降级为启发式提取")
			spans = nil
		}
		nerName, nerLocation := pickNameAndLocation(spans)
		if info.Name == "" {
			info.Name = nerName
		}
		if info.Location == "" {
			info.Location = nerLocation
		}
	}

	// 第三层：大写启发式
	if info.Name == "" {
		info.Name = extractNameByCapitalization(text)
	}

	if info.Name == "" {
		logger.Debug().Msg("未能提取到姓名，保持空值")
	}

	return info
}

// extractNameLabel 在各行中找 "Name:" 标签，捕获值不超过3个词才接受
func extractNameLabel(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		match := nameLabelRe.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		candidate := strings.TrimSpace(match[1])
		if len(strings.Fields(candidate)) <= 3 {
			return candidate
		}
	}
	return ""
}

// extractLocationLabel 找 "Location:" 标签，N/A视为未填写
func extractLocationLabel(text string) string {
	match := locationLabelRe.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	location := strings.TrimSpace(match[1])
	if strings.EqualFold(location, "N/A") {
		return ""
	}
	return location
}

// pickNameAndLocation 取首个PERSON作为姓名，全部LOCATION逗号拼接为地址
// 值为 "N/A" 的span一律跳过
func pickNameAndLocation(spans []types.EntitySpan) (string, string) {
	var name string
	var locations []string
	for _, span := range spans {
		if strings.EqualFold(span.Text, "N/A") {
			continue
		}
		switch span.Kind {
		case types.EntityPerson:
			if name == "" {
				name = span.Text
			}
		case types.EntityLocation:
			locations = append(locations, span.Text)
		}
	}
	return name, strings.Join(locations, ", ")
}

// extractNameByCapitalization 2-3个词、每词首字母大写且不含@的行视为姓名候选
func extractNameByCapitalization(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(line, "@") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) < 2 || len(parts) > 3 {
			continue
		}
		allCapitalized := true
		for _, part := range parts {
			runes := []rune(part)
			if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
				allCapitalized = false
				break
			}
		}
		if allCapitalized {
			return line
		}
	}
	return ""
}
