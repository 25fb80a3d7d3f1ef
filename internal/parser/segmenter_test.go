package parser

import (
	"testing"

	"resume-match-go/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSegmenterSplitBasic 基本的多章节切分
func TestSegmenterSplitBasic(t *testing.T) {
	text := `John Smith
john@example.com

Summary
Experienced backend engineer.

Skills
Go, Python, Docker

Work Experience
Engineer | Acme Inc | 2019 - 2022

Education
Bachelor of Science in Computer Science
`

	sections, preamble := NewSegmenter().Split(text)

	assert.Contains(t, preamble, "John Smith")
	assert.Contains(t, preamble, "john@example.com")

	require.Contains(t, sections, types.SectionSummary)
	assert.Equal(t, "Experienced backend engineer.", sections[types.SectionSummary])
	require.Contains(t, sections, types.SectionSkills)
	assert.Equal(t, "Go, Python, Docker", sections[types.SectionSkills])
	require.Contains(t, sections, types.SectionWork)
	require.Contains(t, sections, types.SectionEducation)
}

// TestSegmenterNoHeaders 无任何标题时返回空映射，整个文本作为前导区
func TestSegmenterNoHeaders(t *testing.T) {
	text := "Jane Doe\njane@example.com\n555-123-4567"

	sections, preamble := NewSegmenter().Split(text)

	assert.Empty(t, sections)
	assert.Equal(t, text, preamble)
}

// TestSegmenterHeaderWithPunctuation 标题行尾部的冒号和短横线被容忍
func TestSegmenterHeaderWithPunctuation(t *testing.T) {
	text := "Skills:\nGo, Rust\n\nEducation -\nMIT"

	sections, _ := NewSegmenter().Split(text)

	assert.Contains(t, sections, types.SectionSkills)
	assert.Contains(t, sections, types.SectionEducation)
}

// TestSegmenterHeaderMustBeAlone 正文行内出现的同义词不会被当作标题
func TestSegmenterHeaderMustBeAlone(t *testing.T) {
	text := "I have experience with Go and education in CS."

	sections, preamble := NewSegmenter().Split(text)

	assert.Empty(t, sections)
	assert.Equal(t, text, preamble)
}

// TestSegmenterDuplicateSectionLastWins 同名章节后者覆盖前者
func TestSegmenterDuplicateSectionLastWins(t *testing.T) {
	text := "Skills\nGo\n\nSkills\nPython"

	sections, _ := NewSegmenter().Split(text)

	require.Contains(t, sections, types.SectionSkills)
	assert.Equal(t, "Python", sections[types.SectionSkills])
}

// TestSegmenterProjectExperienceQuirk "Project Experience" 因含 experience 归入工作经历
func TestSegmenterProjectExperienceQuirk(t *testing.T) {
	text := "Project Experience\nBuilt a distributed cache."

	sections, _ := NewSegmenter().Split(text)

	assert.Contains(t, sections, types.SectionWork)
	assert.NotContains(t, sections, types.SectionProjects)
}

// TestSegmenterSynonyms 常见同义词归一
func TestSegmenterSynonyms(t *testing.T) {
	cases := []struct {
		header string
		want   types.SectionName
	}{
		{"Profile", types.SectionSummary},
		{"Objective", types.SectionSummary},
		{"Technical Skills", types.SectionSkills},
		{"Technologies", types.SectionSkills},
		{"Employment", types.SectionWork},
		{"Work", types.SectionWork},
		{"Academic", types.SectionEducation},
		{"Certificates", types.SectionCertifications},
		{"Language Proficiency", types.SectionLanguages},
		{"Portfolio", types.SectionProjects},
	}

	for _, tc := range cases {
		sections, _ := NewSegmenter().Split(tc.header + "\nbody text")
		assert.Contains(t, sections, tc.want, "标题 %q 应归一到 %s", tc.header, tc.want)
	}
}
