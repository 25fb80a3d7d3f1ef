package matcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"resume-match-go/internal/types"
)

var testNow = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

// TestCalculateTotalExperience 多段经历按年差累计，Present按当前年份
func TestCalculateTotalExperience(t *testing.T) {
	entries := []types.WorkEntry{
		{Company: "Acme", StartDate: "2018", EndDate: "2021"},
		{Company: "Globex", StartDate: "Mar 2021", EndDate: "Present"},
	}

	total := CalculateTotalExperience(entries, testNow)

	// 2021-2018=3，2024-2021=3
	assert.Equal(t, 6.0, total)
}

// TestCalculateTotalExperienceYearlessEndIsCurrentYear 结束串不含年份按当前年份计
func TestCalculateTotalExperienceYearlessEndIsCurrentYear(t *testing.T) {
	entries := []types.WorkEntry{{Company: "Acme", StartDate: "2019", EndDate: "ongoing role"}}

	assert.Equal(t, 5.0, CalculateTotalExperience(entries, testNow))
}

// TestCalculateTotalExperienceSkipsMissingDates 起止有一方为空的经历不参与计算
func TestCalculateTotalExperienceSkipsMissingDates(t *testing.T) {
	entries := []types.WorkEntry{
		{Company: "Acme", StartDate: "2020", EndDate: ""},
		{Company: "Globex", StartDate: "", EndDate: "2022"},
		{Company: "Initech", StartDate: "2016", EndDate: "2018"},
	}

	assert.Equal(t, 2.0, CalculateTotalExperience(entries, testNow))
}

// TestCalculateTotalExperienceShortStintCountsAsOne 同年起止或倒置按1年计
func TestCalculateTotalExperienceShortStintCountsAsOne(t *testing.T) {
	entries := []types.WorkEntry{
		{Company: "Acme", StartDate: "Jan 2022", EndDate: "Nov 2022"},
		{Company: "Globex", StartDate: "2023", EndDate: "2021"},
	}

	assert.Equal(t, 2.0, CalculateTotalExperience(entries, testNow))
}

// TestCalculateTotalExperienceSkipsUnparseableStart 起始年份无法解析的经历跳过不计
// 结束串无法解析不跳过，视同仍在职按当前年份计
func TestCalculateTotalExperienceSkipsUnparseableStart(t *testing.T) {
	entries := []types.WorkEntry{
		{Company: "Acme", StartDate: "unknown", EndDate: "2020"},
		{Company: "Globex", StartDate: "2019", EndDate: "last year"},
		{Company: "Initech", StartDate: "2010", EndDate: "2015"},
	}

	// Globex按 2024-2019=5，Initech按 2015-2010=5
	assert.Equal(t, 10.0, CalculateTotalExperience(entries, testNow))
}

// TestCalculateTotalExperienceRejectsNonCalendarYears 1555这类编号不当年份
func TestCalculateTotalExperienceRejectsNonCalendarYears(t *testing.T) {
	entries := []types.WorkEntry{{Company: "Acme", StartDate: "Suite 1555", EndDate: "2020"}}

	assert.Equal(t, 0.0, CalculateTotalExperience(entries, testNow))
}

// TestCalculateTotalExperienceEmpty 无经历返回0
func TestCalculateTotalExperienceEmpty(t *testing.T) {
	assert.Equal(t, 0.0, CalculateTotalExperience(nil, testNow))
}
