package checks

import (
	"strings"
	"testing"
	"time"

	"github.com/Rainerrr/Mizrahi-Automations/internal/models"
)

func TestReportDates_MissingAndMismatched(t *testing.T) {
	expected := models.Period{Year: 2025, Month: 9}
	inScope := map[int64]bool{1: true}
	records := []models.DisclosureRecord{
		holding(2, 1, "קרן", "01", 10, nil),
		holding(3, 1, "קרן", "01", 10, day(2025, time.August, 1)),
		holding(4, 1, "קרן", "01", 10, day(2025, time.September, 15)),
	}

	exs := ReportDates(records, expected, inScope)
	if len(exs) != 2 {
		t.Fatalf("expected 2 exceptions, got %d", len(exs))
	}
	if exs[0].Reason != "תאריך דוח חסר" || exs[0].RowNum != 2 {
		t.Errorf("unexpected first exception: %+v", exs[0])
	}
	if !strings.Contains(exs[1].Reason, "2025-09") {
		t.Errorf("expected reason to name the expected period, got %q", exs[1].Reason)
	}
	if exs[1].Extra["report_date"] != "01/08/2025" {
		t.Errorf("unexpected report_date extra: %v", exs[1].Extra["report_date"])
	}
}

func TestReportDates_OutOfScopeIgnored(t *testing.T) {
	expected := models.Period{Year: 2025, Month: 9}
	records := []models.DisclosureRecord{
		holding(2, 7, "קרן זרה", "01", 10, nil),
		{RowNum: 3, FundName: "ללא מספר"},
	}

	if exs := ReportDates(records, expected, map[int64]bool{1: true}); len(exs) != 0 {
		t.Fatalf("expected no exceptions, got %d", len(exs))
	}
}
