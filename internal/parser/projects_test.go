package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExtractProjectsBlocks 空行分块，首行拆名称与日期，余下为描述
func TestExtractProjectsBlocks(t *testing.T) {
	text := `Payment Gateway - 2021
Built a multi-currency payment gateway.
Processed 1M transactions per day.

Log Pipeline – 2022-2023
Streaming ingestion with Kafka.`

	projects := ExtractProjects(text)

	require.Len(t, projects, 2)
	assert.Equal(t, "Payment Gateway", projects[0].Name)
	assert.Equal(t, "2021", projects[0].Dates)
	assert.Equal(t, "Built a multi-currency payment gateway.\nProcessed 1M transactions per day.", projects[0].Description)

	assert.Equal(t, "Log Pipeline", projects[1].Name)
	assert.Equal(t, "2022-2023", projects[1].Dates)
	assert.Equal(t, "Streaming ingestion with Kafka.", projects[1].Description)
}

// TestExtractProjectsNoDates 首行无短横线时整行作为名称
func TestExtractProjectsNoDates(t *testing.T) {
	projects := ExtractProjects("Internal CLI Tool\nAutomated release tagging.")

	require.Len(t, projects, 1)
	assert.Equal(t, "Internal CLI Tool", projects[0].Name)
	assert.Empty(t, projects[0].Dates)
	assert.Equal(t, "Automated release tagging.", projects[0].Description)
}

// TestExtractProjectsEmpty 空输入返回非nil空切片
func TestExtractProjectsEmpty(t *testing.T) {
	projects := ExtractProjects("")

	assert.NotNil(t, projects)
	assert.Empty(t, projects)
}
