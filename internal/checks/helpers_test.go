package checks

import (
	"time"

	"github.com/Rainerrr/Mizrahi-Automations/internal/models"
)

func i64(v int64) *int64     { return &v }
func f64(v float64) *float64 { return &v }
func intp(v int) *int        { return &v }

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func hms(h, m, s int) *models.ClockTime {
	return &models.ClockTime{Hour: h, Minute: m, Second: s}
}

// holding builds a disclosure row carrying a single classification code in
// its most specific level column.
func holding(rowNum int, fund int64, name, code string, pct float64, date *time.Time) models.DisclosureRecord {
	return models.DisclosureRecord{
		RowNum:     rowNum,
		FundID:     i64(fund),
		FundName:   name,
		Level1:     code,
		Percent:    f64(pct),
		ReportDate: date,
	}
}
