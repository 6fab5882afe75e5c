package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Period identifies a report month (year + month). The zero value means
// "no period", which is how records with a missing or unparsable report
// date are represented.
type Period struct {
	Year  int
	Month time.Month
}

// ParsePeriod parses "YYYY-MM" and "MM/YYYY" forms.
func ParsePeriod(s string) (Period, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01", "01/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return Period{Year: t.Year(), Month: t.Month()}, nil
		}
	}
	return Period{}, fmt.Errorf("invalid period %q: want YYYY-MM", s)
}

// PeriodOf extracts the report month of a date.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

// Previous returns the calendar month before p.
func (p Period) Previous() Period {
	if p.Month == time.January {
		return Period{Year: p.Year - 1, Month: time.December}
	}
	return Period{Year: p.Year, Month: p.Month - 1}
}

// String renders the canonical "YYYY-MM" form.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// MarshalJSON implements the json.Marshaler interface.
func (p Period) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON implements the json.Unmarshaler interface. Both the
// canonical form and "MM/YYYY" are accepted, mirroring the formats seen
// in uploaded reports.
func (p *Period) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParsePeriod(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
