package util

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// hebrewMonths maps month numbers to the names used in report titles.
var hebrewMonths = map[time.Month]string{
	time.January:   "ינואר",
	time.February:  "פברואר",
	time.March:     "מרץ",
	time.April:     "אפריל",
	time.May:       "מאי",
	time.June:      "יוני",
	time.July:      "יולי",
	time.August:    "אוגוסט",
	time.September: "ספטמבר",
	time.October:   "אוקטובר",
	time.November:  "נובמבר",
	time.December:  "דצמבר",
}

// HebrewMonthName returns the Hebrew name for a month.
func HebrewMonthName(m time.Month) string {
	return hebrewMonths[m]
}

// MonthFromHebrew reverses HebrewMonthName for parsing report titles.
func MonthFromHebrew(name string) (time.Month, bool) {
	name = NormalizeSpaces(name)
	for m, n := range hebrewMonths {
		if n == name {
			return m, true
		}
	}
	return 0, false
}

var yearRe = regexp.MustCompile(`20\d{2}`)

// PeriodFromReportTitle extracts the report month from a title like
// "דוח ק303 ספטמבר 2025". It scans for a Hebrew month name and a 20xx year;
// ok=false when either is absent.
func PeriodFromReportTitle(title string) (year int, month time.Month, ok bool) {
	ys := yearRe.FindString(title)
	if ys == "" {
		return 0, 0, false
	}
	year, _ = strconv.Atoi(ys)
	for m := time.January; m <= time.December; m++ {
		if strings.Contains(title, hebrewMonths[m]) {
			return year, m, true
		}
	}
	return 0, 0, false
}
