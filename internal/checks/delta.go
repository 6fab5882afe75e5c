package checks

import (
	"fmt"
	"math"
	"sort"

	"github.com/Rainerrr/Mizrahi-Automations/internal/models"
)

type allocationKey struct {
	fundID int64
	code   string
}

// sumAllocations folds in-scope rows into a total percent per (fund,
// classification code). Rows with no code or no percent value are ignored.
// A code split across several rows of the same fund is summed.
func sumAllocations(records []models.DisclosureRecord, inScope map[int64]bool) map[allocationKey]float64 {
	totals := make(map[allocationKey]float64)
	for _, rec := range records {
		if rec.FundID == nil || !inScope[*rec.FundID] {
			continue
		}
		code := rec.EffectiveCode()
		if code == "" || rec.Percent == nil {
			continue
		}
		totals[allocationKey{*rec.FundID, code}] += *rec.Percent
	}
	return totals
}

// CrossPeriodDelta compares the holdings mix of the current report to the
// previous month's. A classification that vanished, one that appeared, and
// one whose total moved by more than DeltaThreshold points each produce an
// exception.
func CrossPeriodDelta(current, previous []models.DisclosureRecord, inScope map[int64]bool, registry map[int64]models.Fund) []models.Exception {
	cur := sumAllocations(current, inScope)
	prev := sumAllocations(previous, inScope)

	names := make(map[int64]string)
	for _, rec := range current {
		if rec.FundID != nil && rec.FundName != "" {
			names[*rec.FundID] = rec.FundName
		}
	}
	for _, rec := range previous {
		if rec.FundID != nil && rec.FundName != "" {
			if _, ok := names[*rec.FundID]; !ok {
				names[*rec.FundID] = rec.FundName
			}
		}
	}

	keys := make([]allocationKey, 0, len(cur)+len(prev))
	for k := range cur {
		keys = append(keys, k)
	}
	for k := range prev {
		if _, ok := cur[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].fundID != keys[j].fundID {
			return keys[i].fundID < keys[j].fundID
		}
		return keys[i].code < keys[j].code
	})

	var exceptions []models.Exception
	for _, k := range keys {
		curPct, curOK := cur[k]
		prevPct, prevOK := prev[k]

		extra := map[string]any{
			"effective_code": k.code,
			"fund_type":      registry[k.fundID].FundType,
		}
		var reason string
		switch {
		case !curOK:
			reason = fmt.Sprintf("קוד נעלם (היה: %.2f%%)", prevPct)
			extra["prev_pct"] = prevPct
		case !prevOK:
			reason = fmt.Sprintf("קוד חדש (כעת: %.2f%%)", curPct)
			extra["prev_pct"] = nil
			extra["percent"] = curPct
		default:
			delta := math.Abs(curPct - prevPct)
			if delta <= DeltaThreshold {
				continue
			}
			reason = fmt.Sprintf("סטייה > 10%% (שינוי: %.2f%%)", delta)
			extra["prev_pct"] = prevPct
			extra["delta"] = delta
			extra["percent"] = curPct
		}

		fundID := k.fundID
		exceptions = append(exceptions, models.Exception{
			RuleID:   RuleDelta,
			Reason:   reason,
			FundID:   &fundID,
			FundName: names[k.fundID],
			Extra:    extra,
		})
	}
	return numberSeq(exceptions)
}
