package checks

import (
	"fmt"

	"github.com/Rainerrr/Mizrahi-Automations/internal/models"
)

// ReportDates verifies that every in-scope row is stamped with the period
// under review. Rows with no report date and rows dated to another month
// are both flagged.
func ReportDates(records []models.DisclosureRecord, expected models.Period, inScope map[int64]bool) []models.Exception {
	var exceptions []models.Exception
	for _, rec := range records {
		if rec.FundID == nil || !inScope[*rec.FundID] {
			continue
		}

		if rec.ReportDate == nil {
			exceptions = append(exceptions, models.Exception{
				RuleID:   RuleReportDate,
				Reason:   "תאריך דוח חסר",
				FundID:   rec.FundID,
				FundName: rec.FundName,
				RowNum:   rec.RowNum,
				Extra:    map[string]any{"effective_code": rec.EffectiveCode()},
			})
			continue
		}

		if rec.ReportPeriod() != expected {
			exceptions = append(exceptions, models.Exception{
				RuleID:   RuleReportDate,
				Reason:   fmt.Sprintf("תאריך לא תואם (צפוי: %s)", expected),
				FundID:   rec.FundID,
				FundName: rec.FundName,
				RowNum:   rec.RowNum,
				Extra: map[string]any{
					"effective_code": rec.EffectiveCode(),
					"report_date":    rec.ReportDate.Format("02/01/2006"),
				},
			})
		}
	}
	return numberSeq(exceptions)
}
