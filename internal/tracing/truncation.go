package tracing

import (
	"strings"
)

const (
	// DefaultMaxLength 默认最大属性长度
	DefaultMaxLength = 200

	// MaxResumeLength 简历内容片段最大长度
	MaxResumeLength = 150

	// MaxJobTextLength JD内容片段最大长度
	MaxJobTextLength = 150
)

// maskPIILookup 属性名命中即对值做掩码的关键字
// 简历全文是PII密集文本，凡带这些名字的属性一律掩码
var maskPIILookup = map[string]bool{
	"email":     true,
	"phone":     true,
	"password":  true,
	"secret":    true,
	"token":     true,
	"address":   true,
	"地址":        true,
	"name":      true,
	"姓名":        true,
	"candidate": true,
}

// SafeAttributeValue 属性值脱敏：敏感属性名掩码，超长值截断
func SafeAttributeValue(name string, value string, maxLength int) string {
	lowerName := strings.ToLower(name)
	for keyword := range maskPIILookup {
		if strings.Contains(lowerName, keyword) {
			return MaskPII(value)
		}
	}
	return TruncateString(value, maxLength)
}

// MaskPII 对个人敏感信息掩码，保留首尾便于人工对账
func MaskPII(value string) string {
	if value == "" {
		return ""
	}

	runes := []rune(value)
	length := len(runes)

	if length <= 1 {
		return "*"
	}
	if length <= 4 {
		if length == 2 {
			return string(runes[0:1]) + "*"
		}
		return string(runes[0:1]) + strings.Repeat("*", length-2) + string(runes[length-1:])
	}

	// 邮箱/电话等较长值保留前后各2位
	return string(runes[0:2]) + strings.Repeat("*", length-4) + string(runes[length-2:])
}

// TruncateString 截断字符串，保留首尾、中间用省略号连接
func TruncateString(s string, maxLength int) string {
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}

	if maxLength <= 3 {
		return string(runes[:maxLength])
	}

	half := (maxLength - 3) / 2
	if half < 1 {
		half = 1
	}
	return string(runes[:half]) + "..." + string(runes[len(runes)-half:])
}

// SafeResumeContent 简历内容进span属性前的截断
func SafeResumeContent(content string) string {
	return TruncateString(content, MaxResumeLength)
}

// SafeJobContent JD内容进span属性前的截断
func SafeJobContent(content string) string {
	return TruncateString(content, MaxJobTextLength)
}
