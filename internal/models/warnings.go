package models

// WarningCode categorizes warnings by subsystem.
// W1xxx = loading/scope, W2xxx = price oracle, W3xxx = denylists, W4xxx = automation.
type WarningCode string

const (
	WarnEmptyScope                WarningCode = "W1001" // trustee filter matched no registry funds
	WarnRowSkipped                WarningCode = "W1002" // row dropped: no fund, security or record identifiers
	WarnPriceOracleDown           WarningCode = "W2001" // price variance sub-check skipped entirely
	WarnPriceLookupFailed         WarningCode = "W2002" // one security lookup failed; row excluded from results
	WarnDenylistsDown             WarningCode = "W3001" // denylist sub-check skipped entirely
	WarnDenylistsStale            WarningCode = "W3002" // served from an expired cache snapshot
	WarnPreviousReportUnavailable WarningCode = "W4001" // cross-period comparison skipped
)

// Warning represents a non-fatal issue encountered during processing.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}
