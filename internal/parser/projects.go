package parser

import (
	"regexp"
	"strings"

	"resume-match-go/internal/types"
)

var (
	// projectBlockSplitRe 空行作为项目块的边界
	projectBlockSplitRe = regexp.MustCompile(`\n\s*\n`)
	// projectDashSplitRe 首行中名称与日期之间的短横线分隔
	projectDashSplitRe = regexp.MustCompile(`\s*[-–—]\s*`)
)

// ExtractProjects 从项目章节提取条目
// 每个空行分隔的块是一个项目；首行按短横线尽力拆成 "名称 — 日期"，
// 其余行合并为描述
func ExtractProjects(text string) []types.ProjectEntry {
	projects := []types.ProjectEntry{}

	for _, block := range projectBlockSplitRe.Split(text, -1) {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}

		lines := strings.SplitN(block, "\n", 2)
		entry := types.ProjectEntry{}

		headParts := projectDashSplitRe.Split(strings.TrimSpace(lines[0]), 2)
		entry.Name = strings.TrimSpace(headParts[0])
		if len(headParts) > 1 {
			entry.Dates = strings.TrimSpace(headParts[1])
		}

		if len(lines) > 1 {
			entry.Description = strings.TrimSpace(lines[1])
		}

		projects = append(projects, entry)
	}

	return projects
}
