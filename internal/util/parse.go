package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NormalizeSpaces trims s and collapses every internal whitespace run to a
// single space. Registry names come in with inconsistent padding, so every
// name comparison in the system goes through this first.
func NormalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ParseFloat parses a numeric cell. Empty or unparsable cells report ok=false
// rather than an error; the loaders treat those as absent values.
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParseInt parses an integer cell, tolerating the trailing ".0" that
// spreadsheet exports add to numeric columns.
func ParseInt(s string) (int64, bool) {
	f, ok := ParseFloat(s)
	if !ok {
		return 0, false
	}
	return int64(f), true
}

// ParseDDMMYYYY parses the report date format: digits DDMMYYYY, left-padded
// with zeros when the leading day digit is dropped (e.g. 1092025 for
// 01/09/2025). Returns ok=false on anything that does not form a real date.
func ParseDDMMYYYY(s string) (time.Time, bool) {
	n, ok := ParseInt(s)
	if !ok || n < 0 {
		return time.Time{}, false
	}
	digits := fmt.Sprintf("%08d", n)
	if len(digits) != 8 {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(digits[0:2])
	month, _ := strconv.Atoi(digits[2:4])
	year, _ := strconv.Atoi(digits[4:8])
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

// ParseHHMMSS parses the transaction time format: digits HHMMSS with the same
// zero-padding convention as the date column.
func ParseHHMMSS(s string) (hh, mm, ss int, ok bool) {
	n, pok := ParseInt(s)
	if !pok || n < 0 {
		return 0, 0, 0, false
	}
	digits := fmt.Sprintf("%06d", n)
	if len(digits) != 6 {
		return 0, 0, 0, false
	}
	hh, _ = strconv.Atoi(digits[0:2])
	mm, _ = strconv.Atoi(digits[2:4])
	ss, _ = strconv.Atoi(digits[4:6])
	if hh > 23 || mm > 59 || ss > 59 {
		return 0, 0, 0, false
	}
	return hh, mm, ss, true
}
