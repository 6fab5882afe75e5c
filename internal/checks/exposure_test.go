package checks

import (
	"strings"
	"testing"

	"github.com/Rainerrr/Mizrahi-Automations/internal/models"
)

func TestExposureLimits_EquityOverCap(t *testing.T) {
	registry := map[int64]models.Fund{1: {ID: 1, ExposureProfile: "2B"}}
	inScope := map[int64]bool{1: true}
	records := []models.DisclosureRecord{
		holding(2, 1, "קרן", "0101", 20, nil),
		holding(3, 1, "קרן", "0102", 15, nil),
		holding(4, 1, "קרן", "0601", 10, nil),
	}

	exs := ExposureLimits(records, inScope, registry)
	if len(exs) != 1 {
		t.Fatalf("expected 1 exception, got %d: %+v", len(exs), exs)
	}
	if !strings.Contains(exs[0].Reason, "מניות") || !strings.Contains(exs[0].Reason, "35.00") {
		t.Errorf("unexpected reason: %q", exs[0].Reason)
	}
	if exs[0].Extra["cap"] != 30 || exs[0].Extra["profile"] != "2B" {
		t.Errorf("unexpected extras: %+v", exs[0].Extra)
	}
}

func TestExposureLimits_FXExcludesInvestmentTrack(t *testing.T) {
	registry := map[int64]models.Fund{1: {ID: 1, ExposureProfile: "4A"}}
	inScope := map[int64]bool{1: true}

	// 0602 codes are deposits in the FX investment track, not FX exposure.
	records := []models.DisclosureRecord{
		holding(2, 1, "קרן", "0602", 40, nil),
		holding(3, 1, "קרן", "0601", 9, nil),
	}
	if exs := ExposureLimits(records, inScope, registry); len(exs) != 0 {
		t.Fatalf("expected no exceptions, got %d: %+v", len(exs), exs)
	}

	records = append(records, holding(4, 1, "קרן", "0603", 2, nil))
	exs := ExposureLimits(records, inScope, registry)
	if len(exs) != 1 {
		t.Fatalf("expected 1 exception, got %d", len(exs))
	}
	if !strings.Contains(exs[0].Reason, "מט\"ח") || !strings.Contains(exs[0].Reason, "11.00") {
		t.Errorf("unexpected reason: %q", exs[0].Reason)
	}
}

func TestExposureLimits_UncappedProfileChars(t *testing.T) {
	registry := map[int64]models.Fund{1: {ID: 1, ExposureProfile: "6F"}}
	inScope := map[int64]bool{1: true}
	records := []models.DisclosureRecord{
		holding(2, 1, "קרן", "01", 300, nil),
		holding(3, 1, "קרן", "06", 300, nil),
	}

	if exs := ExposureLimits(records, inScope, registry); len(exs) != 0 {
		t.Fatalf("expected no exceptions for uncapped profile, got %d", len(exs))
	}
}

func TestExposureLimits_ShortProfileSkipped(t *testing.T) {
	registry := map[int64]models.Fund{
		1: {ID: 1, ExposureProfile: ""},
		2: {ID: 2, ExposureProfile: " 2 "},
	}
	inScope := map[int64]bool{1: true, 2: true}
	records := []models.DisclosureRecord{
		holding(2, 1, "א", "01", 300, nil),
		holding(3, 2, "ב", "01", 300, nil),
	}

	if exs := ExposureLimits(records, inScope, registry); len(exs) != 0 {
		t.Fatalf("expected no exceptions without a usable profile, got %d", len(exs))
	}
}

func TestExposureLimits_LowercaseFXChar(t *testing.T) {
	registry := map[int64]models.Fund{1: {ID: 1, ExposureProfile: "4b"}}
	inScope := map[int64]bool{1: true}
	records := []models.DisclosureRecord{holding(2, 1, "קרן", "06", 31, nil)}

	exs := ExposureLimits(records, inScope, registry)
	if len(exs) != 1 {
		t.Fatalf("expected 1 exception, got %d", len(exs))
	}
	if exs[0].Extra["cap"] != 30 {
		t.Errorf("unexpected cap: %v", exs[0].Extra["cap"])
	}
}
