// Package checks implements the rule batteries applied to monthly fund
// disclosure reports and to manager transaction reports. Each checker is a
// pure function over already-loaded records: it receives the rows, the fund
// registry and the in-scope fund set, and returns exceptions in a
// deterministic order. Checkers never talk to the network themselves; the
// two external checks (closing prices, denylists) consume an oracle
// interface or pre-fetched lists supplied by the caller.
package checks

import (
	"github.com/Rainerrr/Mizrahi-Automations/internal/models"
)

// Rule identifiers for the disclosure battery. The implication rules carry
// their own identifiers, see ImplicationRules.
const (
	RuleCompleteness = "1a"
	RuleReportDate   = "1b"
	RuleDelta        = "2a"
	RuleExposure     = "2b"
)

// Rule identifiers for the transactions battery.
const (
	RuleDuplicates     = "CHK_1"
	RuleDates          = "CHK_3"
	RuleDecisionMethod = "CHK_4"
	RuleConsistency    = "CHK_4C"
	RulePrice          = "CHK_6"
	RuleDenylist       = "CHK_7"
)

// DeltaThreshold is the absolute month-over-month change in allocation
// percent above which the cross-period check flags a (fund, code) pair.
const DeltaThreshold = 10.0

// numberSeq stamps each exception with its emission position within its
// rule so later stable sorts can fall back on it.
func numberSeq(exs []models.Exception) []models.Exception {
	for i := range exs {
		exs[i].Seq = i
	}
	return exs
}

// groupByFund buckets in-scope disclosure rows per fund, preserving the
// order in which funds first appear in the report.
func groupByFund(records []models.DisclosureRecord, inScope map[int64]bool) ([]int64, map[int64][]models.DisclosureRecord) {
	var order []int64
	groups := make(map[int64][]models.DisclosureRecord)
	for _, rec := range records {
		if rec.FundID == nil || !inScope[*rec.FundID] {
			continue
		}
		id := *rec.FundID
		if _, seen := groups[id]; !seen {
			order = append(order, id)
		}
		groups[id] = append(groups[id], rec)
	}
	return order, groups
}

// rowFields captures the identifying columns of a transaction row for the
// extra_info map of an exception. Fund number and name are first-class
// fields on the exception itself and are not repeated here.
func rowFields(r models.TransactionRecord) map[string]any {
	fields := map[string]any{
		"security_id": r.SecurityID,
	}
	if r.SecurityName != "" {
		fields["security_name"] = r.SecurityName
	}
	if r.Date != nil {
		fields["date"] = r.DateString()
	}
	if r.Time != nil {
		fields["time"] = r.TimeString()
	}
	if r.Quantity != nil {
		fields["quantity"] = *r.Quantity
	}
	if r.Price != nil {
		fields["price"] = *r.Price
	}
	if r.Type != nil {
		fields["type"] = *r.Type
	}
	if r.DecisionMethod != nil {
		fields["decision_method"] = *r.DecisionMethod
	}
	return fields
}

// txnException builds an exception carrying the row's identifying columns.
func txnException(ruleID, reason string, r models.TransactionRecord, groupKey string) models.Exception {
	return models.Exception{
		RuleID:   ruleID,
		Reason:   reason,
		FundID:   r.FundID,
		FundName: r.FundName,
		GroupKey: groupKey,
		RowNum:   r.RowNum,
		Extra:    rowFields(r),
	}
}
