package checks

import (
	"sort"

	"github.com/Rainerrr/Mizrahi-Automations/internal/models"
)

// Completeness cross-checks the funds appearing in the report against the
// trustee's expected scope. An expected fund with no rows at all is flagged
// as missing; a reported fund that the registry does not know is flagged as
// unknown. Funds that exist in the registry under another trustee are left
// alone.
func Completeness(records []models.DisclosureRecord, inScope map[int64]bool, registry map[int64]models.Fund) []models.Exception {
	reported := make(map[int64]bool)
	names := make(map[int64]string)
	for _, rec := range records {
		if rec.FundID == nil {
			continue
		}
		id := *rec.FundID
		reported[id] = true
		if _, ok := names[id]; !ok {
			names[id] = rec.FundName
		}
	}

	var missing []int64
	for id := range inScope {
		if !reported[id] {
			missing = append(missing, id)
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })

	var unknown []int64
	for id := range reported {
		if _, ok := registry[id]; !ok {
			unknown = append(unknown, id)
		}
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })

	var exceptions []models.Exception
	for _, id := range missing {
		exceptions = append(exceptions, models.Exception{
			RuleID:   RuleCompleteness,
			Reason:   "קרן חסרה בדוח",
			FundID:   &id,
			FundName: registry[id].Name,
		})
	}
	for _, id := range unknown {
		exceptions = append(exceptions, models.Exception{
			RuleID:   RuleCompleteness,
			Reason:   "קרן לא קיימת ברשימת קרנות",
			FundID:   &id,
			FundName: names[id],
		})
	}
	return numberSeq(exceptions)
}
