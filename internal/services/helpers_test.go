package services

import (
	"testing"
	"time"

	"github.com/Rainerrr/Mizrahi-Automations/internal/models"
)

const testTrustee = "מזרחי טפחות חברה לנאמנות"

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

// testRegistry returns three funds under the test trustee plus one under
// another trustee.
func testRegistry() map[int64]models.Fund {
	return map[int64]models.Fund{
		1: {ID: 1, Name: "קרן גמישה", Trustee: testTrustee, Manager: "מגדל קרנות נאמנות", ExposureProfile: "4D", FundType: "קרן נאמנות"},
		2: {ID: 2, Name: "קרן אגח", Trustee: testTrustee, Manager: "מגדל קרנות נאמנות", ExposureProfile: "2B", FundType: "קרן נאמנות"},
		3: {ID: 3, Name: "קרן כספית", Trustee: testTrustee, Manager: "מגדל קרנות נאמנות", ExposureProfile: "0A", FundType: "קרן כספית"},
		9: {ID: 9, Name: "קרן זרה", Trustee: "נאמן אחר", Manager: "מנהל אחר"},
	}
}

// findCheck returns the named rule's result from a run report.
func findCheck(t *testing.T, report *models.RunReport, ruleID string) models.CheckResult {
	t.Helper()
	for _, c := range report.Checks {
		if c.RuleID == ruleID {
			return c
		}
	}
	t.Fatalf("rule %s missing from report", ruleID)
	return models.CheckResult{}
}

// hasWarning reports whether a warning with the given code was collected.
func hasWarning(warnings []models.Warning, code models.WarningCode) bool {
	for _, w := range warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}
