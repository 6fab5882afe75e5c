package models

import (
	"fmt"
	"time"
)

// ClockTime is a time-of-day without a date, as reported in the
// transaction time column.
type ClockTime struct {
	Hour   int
	Minute int
	Second int
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// TransactionRecord is one normalized row of a manager's special-transactions
// report. Optional cells load as nil; checkers treat nil as "not reported"
// and never fail on it.
type TransactionRecord struct {
	RowNum         int
	FundID         *int64
	FundName       string
	SecurityName   string
	SecurityID     string
	Quantity       *float64
	Price          *float64
	Date           *time.Time
	Time           *ClockTime
	Type           *int
	DecisionMethod *int
	ReportDate     *time.Time
}

// GroupKey is the row's comparison identity: security number plus the
// transaction date in DDMMYYYY form. Rows without a date get a trailing
// empty component so they still group among themselves per security.
func (r TransactionRecord) GroupKey() string {
	d := ""
	if r.Date != nil {
		d = r.Date.Format("02012006")
	}
	return r.SecurityID + "|" + d
}

// DateString renders the transaction date for display, empty when absent.
func (r TransactionRecord) DateString() string {
	if r.Date == nil {
		return ""
	}
	return r.Date.Format("02/01/2006")
}

// TimeString renders the transaction time for display, empty when absent.
func (r TransactionRecord) TimeString() string {
	if r.Time == nil {
		return ""
	}
	return r.Time.String()
}

// FieldMap renders the row's reported columns for embedding in a sample or
// report payload. Absent cells are omitted rather than emitted as null.
func (r TransactionRecord) FieldMap() map[string]any {
	fields := map[string]any{
		"security_id": r.SecurityID,
	}
	if r.FundID != nil {
		fields["fund_id"] = *r.FundID
	}
	if r.FundName != "" {
		fields["fund_name"] = r.FundName
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
