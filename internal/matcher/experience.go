package matcher

import (
	"regexp"
	"strconv"
	"time"

	"resume-match-go/internal/logger"
	"resume-match-go/internal/types"
)

// experienceYearRe 日期串里的四位年份，限定19xx/20xx避免把编号误当年份
var experienceYearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// CalculateTotalExperience 按年粒度累计工作年限
// 起止日期串均非空的经历才参与计算；结束串不含年份（如"Present"）按当前年份计
// 起止同年或倒置的经历按1年计，起始年份无法解析的经历跳过并记日志
func CalculateTotalExperience(entries []types.WorkEntry, now time.Time) float64 {
	currentYear := now.Year()
	total := 0.0

	for _, entry := range entries {
		if entry.StartDate == "" || entry.EndDate == "" {
			continue
		}

		startYear, ok := extractYear(entry.StartDate)
		if !ok {
			logger.Debug().
				Str("company", entry.Company).
				Str("start_date", entry.StartDate).
				Msg("工作经历起始年份无法解析，跳过")
			continue
		}

		endYear := currentYear
		if parsed, ok := extractYear(entry.EndDate); ok {
			endYear = parsed
		}

		duration := float64(endYear - startYear)
		if duration <= 0 {
			duration = 1
		}
		total += duration
	}

	return total
}

func extractYear(date string) (int, bool) {
	match := experienceYearRe.FindString(date)
	if match == "" {
		return 0, false
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return year, true
}
