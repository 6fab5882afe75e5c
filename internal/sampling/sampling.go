// Package sampling reduces oversized result sets to reviewable samples.
// Both reductions are deterministic for a fixed seed.
package sampling

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/Rainerrr/Mizrahi-Automations/internal/models"
)

// Stratified caps an exception list at maxCount entries while keeping every
// reason stratum represented. Each stratum gets a share of the budget
// proportional to its size, rounded, never less than one; leftover budget
// is filled from the unsampled remainder and overshoot is trimmed back
// down. The result is sorted by row number for stable output. The second
// return value is the original count.
func Stratified(exceptions []models.Exception, maxCount int, seed int64) ([]models.Exception, int) {
	originalCount := len(exceptions)
	if originalCount <= maxCount {
		return exceptions, originalCount
	}

	rng := rand.New(rand.NewSource(seed))

	var reasons []string
	byReason := make(map[string][]models.Exception)
	for _, ex := range exceptions {
		if _, seen := byReason[ex.Reason]; !seen {
			reasons = append(reasons, ex.Reason)
		}
		byReason[ex.Reason] = append(byReason[ex.Reason], ex)
	}

	var sampled []models.Exception
	for _, reason := range reasons {
		stratum := byReason[reason]
		proportion := float64(len(stratum)) / float64(originalCount)
		target := int(math.Round(proportion * float64(maxCount)))
		if target < 1 {
			target = 1
		}
		if len(stratum) <= target {
			sampled = append(sampled, stratum...)
		} else {
			sampled = append(sampled, pick(rng, stratum, target)...)
		}
	}

	if budget := maxCount - len(sampled); budget > 0 {
		type identity struct {
			rowNum int
			reason string
			seq    int
		}
		taken := make(map[identity]bool, len(sampled))
		for _, ex := range sampled {
			taken[identity{ex.RowNum, ex.Reason, ex.Seq}] = true
		}
		var rest []models.Exception
		for _, ex := range exceptions {
			if !taken[identity{ex.RowNum, ex.Reason, ex.Seq}] {
				rest = append(rest, ex)
			}
		}
		if len(rest) > 0 {
			if budget > len(rest) {
				budget = len(rest)
			}
			sampled = append(sampled, pick(rng, rest, budget)...)
		}
	}

	if len(sampled) > maxCount {
		sampled = pick(rng, sampled, maxCount)
	}

	sort.SliceStable(sampled, func(i, j int) bool {
		if sampled[i].RowNum != sampled[j].RowNum {
			return sampled[i].RowNum < sampled[j].RowNum
		}
		return sampled[i].Seq < sampled[j].Seq
	})
	return sampled, originalCount
}

// pick selects n elements without replacement, preserving input order.
func pick(rng *rand.Rand, exs []models.Exception, n int) []models.Exception {
	if n <= 0 {
		return nil
	}
	idx := rng.Perm(len(exs))[:n]
	sort.Ints(idx)
	out := make([]models.Exception, 0, n)
	for _, i := range idx {
		out = append(out, exs[i])
	}
	return out
}

// Decision-method strata spot-checked from the valid rows.
var spotStrata = []int{1, 2}

// SpotSamples draws one random valid row per decision method of interest.
// Strata with no eligible rows are omitted.
func SpotSamples(rows []models.TransactionRecord, seed int64) []models.Sample {
	rng := rand.New(rand.NewSource(seed))

	var samples []models.Sample
	for _, dm := range spotStrata {
		var eligible []models.TransactionRecord
		for _, r := range rows {
			if r.DecisionMethod != nil && *r.DecisionMethod == dm {
				eligible = append(eligible, r)
			}
		}
		if len(eligible) == 0 {
			continue
		}
		r := eligible[rng.Intn(len(eligible))]
		samples = append(samples, models.Sample{
			Stratum: fmt.Sprintf("decision_method=%d", dm),
			RowNum:  r.RowNum,
			Fields:  r.FieldMap(),
		})
	}
	return samples
}
