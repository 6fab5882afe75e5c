package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Run kinds.
const (
	RunKindDisclosure   = "k303"
	RunKindTransactions = "transactions"
)

// ValidationRun is the persisted header of one validation run.
type ValidationRun struct {
	ID              uuid.UUID `json:"id"`
	Kind            string    `json:"kind"`
	Period          string    `json:"period,omitempty"`
	Trustee         string    `json:"trustee"`
	Operator        string    `json:"operator,omitempty"`
	TotalExceptions int       `json:"total_exceptions"`
	WarningCount    int       `json:"warning_count"`
	CreatedAt       time.Time `json:"created_at"`
}

// CheckResult is one rule's outcome within a run: its exceptions, possibly
// reduced by the stratified sampler, plus the pre-sampling total.
type CheckResult struct {
	RuleID string `json:"rule_id"`
	Name   string `json:"name"`
	// Total is the exception count before sampling; when Sampled is true
	// the list below holds fewer entries than Total.
	Total      int         `json:"total"`
	Exceptions []Exception `json:"exceptions"`
	Sampled    bool        `json:"sampled,omitempty"`
	// Skipped marks a check whose external collaborator was unavailable.
	Skipped bool `json:"skipped,omitempty"`
}

// CountLabel renders "N" or "N (מתוך M)" when sampling reduced the list.
func (c CheckResult) CountLabel() string {
	n := len(c.Exceptions)
	if c.Sampled && n < c.Total {
		return fmt.Sprintf("%d (מתוך %d)", n, c.Total)
	}
	return strconv.Itoa(n)
}

// RunSummary carries the run-level counters shown to reviewers.
type RunSummary struct {
	Period          string            `json:"period,omitempty"`
	TrusteeFilter   string            `json:"trustee_filter"`
	ManagerFilter   string            `json:"manager_filter,omitempty"`
	TotalFunds      int               `json:"total_funds"`
	InScopeFunds    int               `json:"in_scope_funds"`
	OutOfScopeFunds int               `json:"out_of_scope_funds"`
	TotalRows       int               `json:"total_rows"`
	InScopeRows     int               `json:"in_scope_rows"`
	ValidRows       int               `json:"valid_rows,omitempty"`
	TotalExceptions int               `json:"total_exceptions"`
	ExceptionCounts map[string]string `json:"exception_counts"`
}

// RunReport is the full output of a validation run: summary counters, every
// check's (possibly sampled) exception list, spot-check samples and the
// warnings accumulated along the way.
type RunReport struct {
	ID        uuid.UUID     `json:"id"`
	Kind      string        `json:"kind"`
	Period    string        `json:"period,omitempty"`
	Trustee   string        `json:"trustee"`
	Manager   string        `json:"manager,omitempty"`
	Operator  string        `json:"operator,omitempty"`
	Summary   RunSummary    `json:"summary"`
	Checks    []CheckResult `json:"checks"`
	Samples   []Sample      `json:"samples,omitempty"`
	Warnings  []Warning     `json:"warnings,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// TotalExceptions sums the pre-sampling exception counts across checks.
func (r *RunReport) TotalExceptions() int {
	total := 0
	for _, c := range r.Checks {
		total += c.Total
	}
	return total
}
