package checks

import (
	"fmt"
	"strings"

	"github.com/Rainerrr/Mizrahi-Automations/internal/models"
)

// Ceiling tables keyed by exposure profile character. Characters absent
// from a table ('6', 'F' and anything unexpected) impose no ceiling.
var (
	equityCaps = map[byte]int{'0': 0, '1': 10, '2': 30, '3': 50, '4': 120, '5': 200}
	fxCaps     = map[byte]int{'0': 0, 'A': 10, 'B': 30, 'C': 50, 'D': 120, 'E': 200}
)

// ExposureLimits sums each in-scope fund's equity (codes 01*) and foreign
// currency (codes 06* except 0602*) allocations and compares the totals to
// the ceilings encoded in the fund's two-character exposure profile. The
// first character caps equity, the second caps FX.
func ExposureLimits(records []models.DisclosureRecord, inScope map[int64]bool, registry map[int64]models.Fund) []models.Exception {
	order, groups := groupByFund(records, inScope)

	var exceptions []models.Exception
	for _, fundID := range order {
		rows := groups[fundID]
		profile := strings.TrimSpace(registry[fundID].ExposureProfile)
		if len(profile) < 2 {
			continue
		}

		var equityTotal, fxTotal float64
		for _, rec := range rows {
			code := rec.EffectiveCode()
			if code == "" {
				continue
			}
			var pct float64
			if rec.Percent != nil {
				pct = *rec.Percent
			}
			switch {
			case strings.HasPrefix(code, "01"):
				equityTotal += pct
			case strings.HasPrefix(code, "06") && !strings.HasPrefix(code, "0602"):
				fxTotal += pct
			}
		}

		name := rows[0].FundName
		if limit, ok := equityCaps[profile[0]]; ok && equityTotal > float64(limit) {
			exceptions = append(exceptions, models.Exception{
				RuleID:   RuleExposure,
				Reason:   fmt.Sprintf("פרופיל %s מתיר עד %d%% מניות אך סה\"כ חשיפה = %.2f%%", profile, limit, equityTotal),
				FundID:   &fundID,
				FundName: name,
				Extra: map[string]any{
					"effective_code": "01",
					"profile":        profile,
					"cap":            limit,
					"percent":        equityTotal,
				},
			})
		}

		fxChar := profile[1]
		if fxChar >= 'a' && fxChar <= 'z' {
			fxChar -= 'a' - 'A'
		}
		if limit, ok := fxCaps[fxChar]; ok && fxTotal > float64(limit) {
			exceptions = append(exceptions, models.Exception{
				RuleID:   RuleExposure,
				Reason:   fmt.Sprintf("פרופיל %s מתיר עד %d%% מט\"ח אך סה\"כ חשיפה = %.2f%%", profile, limit, fxTotal),
				FundID:   &fundID,
				FundName: name,
				Extra: map[string]any{
					"effective_code": "06",
					"profile":        profile,
					"cap":            limit,
					"percent":        fxTotal,
				},
			})
		}
	}
	return numberSeq(exceptions)
}
