package models

import "time"

// DisclosureRecord is one normalized row of a K.303 disclosure report: one
// reported fact about one fund. Records are built by the loader and never
// mutated by checkers. Unparsable numeric and date cells load as nil rather
// than failing the row.
type DisclosureRecord struct {
	RowNum       int
	FundID       *int64
	FundName     string
	Level1       string
	Level2       string
	Level3       string
	Level4       string
	Percent      *float64
	ReportDate   *time.Time
	RecordNo     string
	TotalRecords string
	ManagerNo    string
	ExtraData    string
}

// EffectiveCode returns the most specific non-empty level code, level 4
// down to level 1, or "" when the row carries no code at all.
func (r DisclosureRecord) EffectiveCode() string {
	for _, code := range []string{r.Level4, r.Level3, r.Level2, r.Level1} {
		if code != "" {
			return code
		}
	}
	return ""
}

// ReportPeriod returns the report month of the row's report date, or the
// zero Period when the date is missing.
func (r DisclosureRecord) ReportPeriod() Period {
	if r.ReportDate == nil {
		return Period{}
	}
	return PeriodOf(*r.ReportDate)
}
