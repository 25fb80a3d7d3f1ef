package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

// TestExtractWorkPipeFormat 形态A：管道分隔三元组
func TestExtractWorkPipeFormat(t *testing.T) {
	text := "Senior Engineer | Acme Inc | Jan 2019 - Mar 2022\nBackend Developer | Globex Corp | 2015 - 2018"

	entries := ExtractWorkHistory(text, testNow)

	require.Len(t, entries, 2)
	assert.Equal(t, "Senior Engineer", entries[0].Position)
	assert.Equal(t, "Acme Inc", entries[0].Company)
	assert.Equal(t, "Jan 2019", entries[0].StartDate)
	assert.Equal(t, "Mar 2022", entries[0].EndDate)

	assert.Equal(t, "Backend Developer", entries[1].Position)
	assert.Equal(t, "2015", entries[1].StartDate)
	assert.Equal(t, "2018", entries[1].EndDate)
}

// TestExtractWorkPipePresent "Present" 归一为当前年份
func TestExtractWorkPipePresent(t *testing.T) {
	text := "Engineer | Initech LLC | Apr 2021 - Present"

	entries := ExtractWorkHistory(text, testNow)

	require.Len(t, entries, 1)
	assert.Equal(t, "Apr 2021", entries[0].StartDate)
	assert.Equal(t, "2024", entries[0].EndDate)
}

// TestExtractWorkPipeTooFewParts 字段不足三个的管道行被整行丢弃
func TestExtractWorkPipeTooFewParts(t *testing.T) {
	entries := ExtractWorkHistory("Engineer | Acme Inc", testNow)

	assert.Empty(t, entries)
}

// TestExtractWorkLineHeuristics 形态B：公司行、年份行、职位行、概述行
func TestExtractWorkLineHeuristics(t *testing.T) {
	text := `Acme Technologies
Senior Software Engineer
2019 2022
Built the payment platform.
Led a team of five.

Globex Corporation
Staff Engineer
2022`

	entries := ExtractWorkHistory(text, testNow)

	require.Len(t, entries, 2)
	assert.Equal(t, "Acme Technologies", entries[0].Company)
	assert.Equal(t, "Senior Software Engineer", entries[0].Position)
	assert.Equal(t, "2019", entries[0].StartDate)
	assert.Equal(t, "2022", entries[0].EndDate)
	assert.Equal(t, "Built the payment platform. Led a team of five.", entries[0].Summary)

	assert.Equal(t, "Globex Corporation", entries[1].Company)
	assert.Equal(t, "2022", entries[1].StartDate)
	assert.Equal(t, "Present", entries[1].EndDate)
}

// TestExtractWorkTitleOnlyFirstWins 已有职位时后续职位行不覆盖
func TestExtractWorkTitleOnlyFirstWins(t *testing.T) {
	text := "Acme Inc\nSoftware Engineer\nTechnical Lead"

	entries := ExtractWorkHistory(text, testNow)

	require.Len(t, entries, 1)
	assert.Equal(t, "Software Engineer", entries[0].Position)
}

// TestExtractWorkEmpty 空输入返回非nil空切片
func TestExtractWorkEmpty(t *testing.T) {
	entries := ExtractWorkHistory("", testNow)

	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}
