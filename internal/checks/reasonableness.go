package checks

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/Rainerrr/Mizrahi-Automations/internal/models"
)

// PriceOracle looks up the official closing price of a security on a given
// trading day. ok is false when the venue has no data for that day.
type PriceOracle interface {
	ClosingPrice(ctx context.Context, securityID string, date time.Time) (price float64, ok bool, err error)
}

// Denylist is one externally sourced list of flagged securities, keyed by
// security number.
type Denylist struct {
	Name    string
	Members map[string]bool
}

// PriceVarianceTypes are the transaction types sampled against the closing
// price. PriceCeilingTypes may never trade above PriceCeiling.
var (
	PriceVarianceTypes = []int{12, 21, 22}
	PriceCeilingTypes  = map[int]bool{31: true, 32: true, 33: true, 34: true, 35: true, 36: true}
)

const (
	// SamplesPerType bounds how many rows of each sampled transaction type
	// are priced against the oracle.
	SamplesPerType = 2

	// PriceCeiling is the maximum price for the capped transaction types.
	PriceCeiling = 100.0
)

// PriceCheckResult is one sampled row's comparison against the closing
// price. Flagged is true when the trade price exceeds the closing price by
// more than the threshold; trading below the closing price is acceptable.
type PriceCheckResult struct {
	Row          models.TransactionRecord
	ClosingPrice float64
	VariancePct  float64
	Flagged      bool
}

// PriceVarianceConfig bundles the knobs of the closing-price comparison.
type PriceVarianceConfig struct {
	ThresholdPct   float64
	SamplesPerType int
	Types          []int
	Seed           int64
}

// PriceVariance samples rows of the configured types and compares their
// trade price to the oracle's closing price. A lookup that fails excludes
// the row from the results and surfaces as a warning instead; those rows
// are verified manually.
func PriceVariance(ctx context.Context, rows []models.TransactionRecord, oracle PriceOracle, cfg PriceVarianceConfig) ([]PriceCheckResult, []models.Exception, []models.Warning) {
	rng := rand.New(rand.NewSource(cfg.Seed))

	var results []PriceCheckResult
	var exceptions []models.Exception
	var warnings []models.Warning

	for _, txType := range cfg.Types {
		var eligible []models.TransactionRecord
		for _, r := range rows {
			if r.Type != nil && *r.Type == txType && r.SecurityID != "" && r.Date != nil && r.Price != nil && *r.Price != 0 {
				eligible = append(eligible, r)
			}
		}

		for _, r := range sampleRecords(rng, eligible, cfg.SamplesPerType) {
			closing, ok, err := oracle.ClosingPrice(ctx, r.SecurityID, *r.Date)
			if err != nil {
				warnings = append(warnings, models.Warning{
					Code:    models.WarnPriceLookupFailed,
					Message: fmt.Sprintf("closing price lookup failed for security %s on %s: %v", r.SecurityID, r.DateString(), err),
				})
				continue
			}
			if !ok {
				warnings = append(warnings, models.Warning{
					Code:    models.WarnPriceLookupFailed,
					Message: fmt.Sprintf("no closing price for security %s on %s", r.SecurityID, r.DateString()),
				})
				continue
			}

			var variancePct float64
			if closing > 0 {
				variancePct = (*r.Price - closing) / closing * 100
			}
			flagged := closing > 0 && variancePct > cfg.ThresholdPct
			results = append(results, PriceCheckResult{Row: r, ClosingPrice: closing, VariancePct: variancePct, Flagged: flagged})

			if flagged {
				ex := txnException(RulePrice, "PRICE_ABOVE_CLOSING", r, fmt.Sprintf("type=%d", txType))
				ex.Extra["closing_price"] = closing
				ex.Extra["variance_pct"] = variancePct
				ex.Extra["threshold_pct"] = cfg.ThresholdPct
				exceptions = append(exceptions, ex)
			}
		}
	}
	return results, numberSeq(exceptions), warnings
}

// sampleRecords picks up to n rows without replacement.
func sampleRecords(rng *rand.Rand, rows []models.TransactionRecord, n int) []models.TransactionRecord {
	if n >= len(rows) {
		return rows
	}
	picked := make([]models.TransactionRecord, 0, n)
	for _, i := range rng.Perm(len(rows))[:n] {
		picked = append(picked, rows[i])
	}
	return picked
}

// PriceLimits flags capped transaction types trading above PriceCeiling.
func PriceLimits(rows []models.TransactionRecord) []models.Exception {
	var exceptions []models.Exception
	for _, r := range rows {
		if r.Type == nil || !PriceCeilingTypes[*r.Type] || r.Price == nil {
			continue
		}
		if *r.Price > PriceCeiling {
			ex := txnException(RulePrice, "PRICE_ABOVE_LIMIT", r, fmt.Sprintf("type=%d", *r.Type))
			ex.Extra["limit"] = PriceCeiling
			exceptions = append(exceptions, ex)
		}
	}
	return numberSeq(exceptions)
}

// DenylistMembership checks each row's security against the supplied
// denylists and flags any membership with the names of the matching lists.
func DenylistMembership(rows []models.TransactionRecord, lists []Denylist) []models.Exception {
	var exceptions []models.Exception
	for _, r := range rows {
		if r.SecurityID == "" {
			continue
		}
		var matched []string
		for _, list := range lists {
			if list.Members[r.SecurityID] {
				matched = append(matched, list.Name)
			}
		}
		if len(matched) == 0 {
			continue
		}
		ex := txnException(RuleDenylist, "נייר בעייתי: "+strings.Join(matched, ", "), r, "")
		ex.Extra["matched_lists"] = matched
		exceptions = append(exceptions, ex)
	}
	return numberSeq(exceptions)
}
