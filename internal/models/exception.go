package models

// Exception is the output unit of every rule checker: one discrepancy
// surfaced for human review. Rule violations are first-class results,
// never errors.
type Exception struct {
	// RuleID names the checker that produced the exception.
	RuleID string `json:"rule_id"`
	// Reason is the human-readable cause, in the report's language. It is
	// also the sampling stratum key.
	Reason   string `json:"reason"`
	FundID   *int64 `json:"fund_id,omitempty"`
	FundName string `json:"fund_name,omitempty"`
	// GroupKey identifies which cross-record comparison produced the
	// exception, e.g. "security|date" buckets. Empty for per-record rules.
	GroupKey string `json:"group_key,omitempty"`
	// RowNum is the 1-based source row, 0 for exceptions not tied to a row.
	RowNum int `json:"row_num,omitempty"`
	// Extra carries rule-specific numeric context (previous value, delta,
	// cap, observed total).
	Extra map[string]any `json:"extra,omitempty"`
	// Seq is the engine-assigned emission order, the stable sort key that
	// keeps sampled output diffable across reruns.
	Seq int `json:"seq"`
}

// Sample is a spot-check pick: at most one row per named stratum, chosen
// at random from rows no check flagged. Picked for review coverage, not
// because it is suspect.
type Sample struct {
	Stratum string         `json:"stratum"`
	RowNum  int            `json:"row_num"`
	Fields  map[string]any `json:"fields,omitempty"`
}
