package models

// DisclosureValidationRequest carries the form fields accompanying an
// uploaded K.303 report. Empty fields fall back to the configured defaults.
type DisclosureValidationRequest struct {
	Period  string `form:"period"`
	Trustee string `form:"trustee"`
	Manager string `form:"manager"`
}

// TransactionsValidationRequest carries the form fields accompanying an
// uploaded special-transactions report.
type TransactionsValidationRequest struct {
	Period  string `form:"period"`
	Trustee string `form:"trustee"`
	Manager string `form:"manager"`
}

// K303AutomationRequest selects the fund manager whose report the task
// runner should fetch. An empty manager falls back to the configured
// default.
type K303AutomationRequest struct {
	Manager string `json:"manager"`
	Period  string `json:"period"`
}

// ListRunsRequest represents the query parameters for listing past runs.
type ListRunsRequest struct {
	Kind  string `form:"kind"`
	Limit int    `form:"limit"`
}

// ListRunsResponse is the run history listing.
type ListRunsResponse struct {
	Count int             `json:"count"`
	Runs  []ValidationRun `json:"runs"`
}

// RuleExceptionsResponse is one rule's flattened exception rows for a run.
type RuleExceptionsResponse struct {
	RunID      string      `json:"run_id"`
	RuleID     string      `json:"rule_id"`
	Count      int         `json:"count"`
	Exceptions []Exception `json:"exceptions"`
}

// TaxonomyAncestor is one level of a code's ancestor chain.
type TaxonomyAncestor struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// TaxonomyResponse is the resolver lookup result for one code. Description
// is the code's own label; Resolved merges the ancestor chain's labels into
// the full hierarchical phrase.
type TaxonomyResponse struct {
	Code        string             `json:"code"`
	Description string             `json:"description,omitempty"`
	Resolved    string             `json:"resolved"`
	Ancestors   []TaxonomyAncestor `json:"ancestors"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
