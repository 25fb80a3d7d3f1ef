package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseJobDescriptionFull 完整JD：标题、技能、年限、学历全部提取
func TestParseJobDescriptionFull(t *testing.T) {
	text := `Title: Senior Backend Engineer

We are looking for a backend engineer with 5+ years of experience.

Requirements:
- Strong knowledge of Python and Django
- Experience with PostgreSQL and Docker
- Bachelor's degree in Computer Science`

	job := ParseJobDescription(text)

	assert.Equal(t, "Senior Backend Engineer", job.Title)
	assert.Equal(t, 5, job.RequiredExperienceYears)
	assert.Equal(t, "Bachelor's Degree", job.RequiredEducation)
	assert.Equal(t, text, job.MatchText)

	assert.Contains(t, job.RequiredSkills, "Python")
	assert.Contains(t, job.RequiredSkills, "Django")
	assert.Contains(t, job.RequiredSkills, "Postgresql")
	assert.Contains(t, job.RequiredSkills, "Docker")
}

// TestParseJobDescriptionTrimsInput JD原文去除首尾空白后再解析与保留
func TestParseJobDescriptionTrimsInput(t *testing.T) {
	job := ParseJobDescription("\n\n  Title: Data Engineer  \n\n")

	assert.Equal(t, "Data Engineer", job.Title)
	assert.Equal(t, "Title: Data Engineer", job.MatchText)
}

// TestParseJobDescriptionSkillCapitalization 技能统一为首字母大写
func TestParseJobDescriptionSkillCapitalization(t *testing.T) {
	job := ParseJobDescription("Looking for a developer who knows SQL and node.js well.")

	assert.Contains(t, job.RequiredSkills, "Sql")
	assert.Contains(t, job.RequiredSkills, "Node.js")
}

// TestParseJobDescriptionSkillDedup 多遍提取后的技能去重且保序
func TestParseJobDescriptionSkillDedup(t *testing.T) {
	text := `Skills:
Python, Docker

Requirements:
- Python experience required
- Docker in production`

	job := ParseJobDescription(text)

	pythonCount := 0
	for _, s := range job.RequiredSkills {
		if s == "Python" {
			pythonCount++
		}
	}
	assert.Equal(t, 1, pythonCount)
	require.NotEmpty(t, job.RequiredSkills)
	assert.Equal(t, "Python", job.RequiredSkills[0])
}

// TestParseJobDescriptionExperienceVariants 三种年限句式
func TestParseJobDescriptionExperienceVariants(t *testing.T) {
	cases := []struct {
		text  string
		years int
	}{
		{"Minimum 3 years of experience in backend systems.", 3},
		{"At least 7+ years experience with distributed systems.", 7},
		{"2 years with Kubernetes in production.", 2},
		{"Requirements:\nSelf starter.\n10 years of experience building APIs.", 10},
		{"No specific background needed.", 0},
	}

	for _, tc := range cases {
		job := ParseJobDescription(tc.text)
		assert.Equal(t, tc.years, job.RequiredExperienceYears, tc.text)
	}
}

// TestParseJobDescriptionEducationPriority 学历按词表优先级取首个命中
func TestParseJobDescriptionEducationPriority(t *testing.T) {
	job := ParseJobDescription("Master's degree required, Bachelor's accepted with experience.")

	// bachelor 在词表中先于 master
	assert.Equal(t, "Bachelor's Degree", job.RequiredEducation)

	job = ParseJobDescription("PhD in Machine Learning preferred.")
	assert.Equal(t, "PhD", job.RequiredEducation)

	job = ParseJobDescription("No degree needed.")
	assert.Empty(t, job.RequiredEducation)
}

// TestParseJobDescriptionNoTitle 无标题标签时Title为空
func TestParseJobDescriptionNoTitle(t *testing.T) {
	job := ParseJobDescription("Backend role, Go and Docker.")

	assert.Empty(t, job.Title)
	assert.Contains(t, job.RequiredSkills, "Docker")
}
