package loader

import (
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"

	"github.com/Rainerrr/Mizrahi-Automations/internal/models"
)

const registryHeader = "מספר בורסה,שם קרן בעברית,שם נאמן,שם מנהל,פרופיל החשיפה,סוג הקרן"

func TestParseRegistryCSV_HappyPath(t *testing.T) {
	csv := registryHeader + "\n" +
		"5100123,קרן א,נאמן בדיקה,מנהל בדיקה,2B,קרן נאמנות\n" +
		"5100456,קרן ב,נאמן אחר,מנהל בדיקה,4D,קרן סל\n"
	funds, err := ParseRegistryCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(funds) != 2 {
		t.Fatalf("expected 2 funds, got %d", len(funds))
	}
	f, ok := funds[5100123]
	if !ok {
		t.Fatal("expected fund 5100123 in registry")
	}
	if f.Name != "קרן א" || f.Trustee != "נאמן בדיקה" || f.ExposureProfile != "2B" {
		t.Errorf("unexpected fund fields: %+v", f)
	}
	if funds[5100456].FundType != "קרן סל" {
		t.Errorf("unexpected fund type: %q", funds[5100456].FundType)
	}
}

func TestParseRegistryCSV_MissingTrusteeColumn(t *testing.T) {
	csv := "מספר בורסה,שם קרן בעברית\n5100123,קרן א\n"
	_, err := ParseRegistryCSV(strings.NewReader(csv))
	if err == nil {
		t.Fatal("expected error for missing column")
	}
	if !strings.Contains(err.Error(), ColRegistryTrustee) {
		t.Errorf("expected error to mention missing column, got: %s", err.Error())
	}
}

func TestParseRegistryCSV_SkipsUnparsableFundID(t *testing.T) {
	csv := registryHeader + "\n" +
		"not-a-number,קרן א,נאמן בדיקה,,,\n" +
		"5100123,קרן ב,נאמן בדיקה,,,\n"
	funds, err := ParseRegistryCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(funds) != 1 {
		t.Fatalf("expected 1 fund, got %d", len(funds))
	}
	if _, ok := funds[5100123]; !ok {
		t.Error("expected fund 5100123 in registry")
	}
}

func TestParseRegistryCSV_Windows1255(t *testing.T) {
	csv := registryHeader + "\n5100123,קרן א,נאמן בדיקה,,,\n"
	encoded, err := charmap.Windows1255.NewEncoder().String(csv)
	if err != nil {
		t.Fatalf("failed to encode fixture: %v", err)
	}
	funds, err := ParseRegistryCSV(strings.NewReader(encoded))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if funds[5100123].Name != "קרן א" {
		t.Errorf("expected Hebrew name to survive decoding, got %q", funds[5100123].Name)
	}
}

const disclosureHeader = "מספר קרן,שם קרן,רמה 1,רמה 2,רמה 3,רמה 4,%מקרן,נתונים נוספים,תאריך דוח,מס.רשומה,סהכ רשומות,מס.מנהל ברשם"

func TestParseDisclosureCSV_HappyPath(t *testing.T) {
	csv := disclosureHeader + "\n" +
		"5100123,קרן א,08,0802,080201,,12.5,,1092025,1,2,77\n" +
		"5100123,קרן א,01,,,,40,,1092025,2,2,77\n"
	rows, err := ParseDisclosureCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	first := rows[0]
	if first.RowNum != 2 {
		t.Errorf("expected first data row to be row 2, got %d", first.RowNum)
	}
	if first.FundID == nil || *first.FundID != 5100123 {
		t.Fatalf("unexpected fund id: %v", first.FundID)
	}
	if first.Percent == nil || *first.Percent != 12.5 {
		t.Fatalf("unexpected percent: %v", first.Percent)
	}
	if got := first.EffectiveCode(); got != "080201" {
		t.Errorf("expected effective code 080201, got %q", got)
	}
	if first.ReportDate == nil || first.ReportDate.Format("02/01/2006") != "01/09/2025" {
		t.Errorf("unexpected report date: %v", first.ReportDate)
	}
	if rows[1].RowNum != 3 {
		t.Errorf("expected second data row to be row 3, got %d", rows[1].RowNum)
	}
}

func TestParseDisclosureCSV_UnparsableCellsLoadAbsent(t *testing.T) {
	csv := disclosureHeader + "\n" +
		"5100123,קרן א,08,,,,abc,,2025-09-01,,,\n"
	rows, err := ParseDisclosureCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Percent != nil {
		t.Errorf("expected absent percent, got %v", *rows[0].Percent)
	}
	if rows[0].ReportDate != nil {
		t.Errorf("expected absent report date, got %v", rows[0].ReportDate)
	}
}

func TestParseDisclosureCSV_MissingRequiredColumns(t *testing.T) {
	csv := "מספר קרן,שם קרן,רמה 1,תאריך דוח\n5100123,קרן א,08,1092025\n"
	_, err := ParseDisclosureCSV(strings.NewReader(csv))
	if err == nil {
		t.Fatal("expected error for missing columns")
	}
	if !strings.Contains(err.Error(), ColDisclosurePercent) {
		t.Errorf("expected error to mention missing column, got: %s", err.Error())
	}
}

func TestParseDisclosureCSV_BOMHeader(t *testing.T) {
	csv := "﻿" + disclosureHeader + "\n5100123,קרן א,01,,,,10,,1092025,,,\n"
	rows, err := ParseDisclosureCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].FundID == nil {
		t.Fatalf("expected the fund id column to survive the BOM, got %+v", rows)
	}
}

const txnHeader = "מספר קרן,שם קרן,שם נייר,מספר נייר,כמות,מחיר,תאריך,שעה,סוג,אופן החלטה,ת.דוח,מס. רשומה"

func TestParseTransactionsCSV_HappyPath(t *testing.T) {
	csv := txnHeader + "\n" +
		"5100123,קרן א,נייר בדיקה,1234567,1000,105.5,15092025,93015,12,1,1092025,1\n"
	rows, skipped, err := ParseTransactionsCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if skipped != 0 {
		t.Errorf("expected 0 skipped rows, got %d", skipped)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	r := rows[0]
	if r.RowNum != 2 {
		t.Errorf("expected row 2, got %d", r.RowNum)
	}
	if r.FundID == nil || *r.FundID != 5100123 {
		t.Fatalf("unexpected fund id: %v", r.FundID)
	}
	if r.SecurityID != "1234567" || r.SecurityName != "נייר בדיקה" {
		t.Errorf("unexpected security fields: %+v", r)
	}
	if r.Quantity == nil || *r.Quantity != 1000 {
		t.Errorf("unexpected quantity: %v", r.Quantity)
	}
	if r.Price == nil || *r.Price != 105.5 {
		t.Errorf("unexpected price: %v", r.Price)
	}
	if r.DateString() != "15/09/2025" {
		t.Errorf("unexpected date: %q", r.DateString())
	}
	if r.TimeString() != "09:30:15" {
		t.Errorf("unexpected time: %q", r.TimeString())
	}
	if r.Type == nil || *r.Type != 12 || r.DecisionMethod == nil || *r.DecisionMethod != 1 {
		t.Errorf("unexpected type or decision method: %+v", r)
	}
}

func TestParseTransactionsCSV_SkipsTrailingNotes(t *testing.T) {
	csv := txnHeader + "\n" +
		"5100123,קרן א,נייר,1234567,10,5,15092025,93000,12,1,,1\n" +
		",הערות כלליות בתחתית הדוח,,,,,,,,,,\n"
	rows, skipped, err := ParseTransactionsCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if skipped != 1 {
		t.Errorf("expected 1 skipped row, got %d", skipped)
	}
}

func TestParseTransactionsCSV_KeepsRowWithRecordNumberOnly(t *testing.T) {
	csv := txnHeader + "\n" +
		",,,,,,,,,,,7\n"
	rows, skipped, err := ParseTransactionsCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if skipped != 0 {
		t.Errorf("expected 0 skipped rows, got %d", skipped)
	}
	if len(rows) != 1 {
		t.Fatalf("expected the numbered row to load, got %d rows", len(rows))
	}
	if rows[0].FundID != nil {
		t.Errorf("expected absent fund id, got %v", *rows[0].FundID)
	}
}

func TestParseTransactionsCSV_MissingRequiredColumns(t *testing.T) {
	csv := "מספר קרן,מספר נייר,כמות,מחיר,תאריך,שעה,סוג\n5100123,1234567,10,5,15092025,93000,12\n"
	_, _, err := ParseTransactionsCSV(strings.NewReader(csv))
	if err == nil {
		t.Fatal("expected error for missing columns")
	}
	if !strings.Contains(err.Error(), ColTxnDecision) {
		t.Errorf("expected error to mention missing column, got: %s", err.Error())
	}
}

func TestInferTransactionsPeriod(t *testing.T) {
	csv := txnHeader + "\n" +
		"5100123,,,1234567,10,5,15092025,93000,12,1,,1\n" +
		"5100123,,,1234567,10,5,16092025,93000,12,1,1092025,2\n"
	rows, _, err := ParseTransactionsCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	period, ok := InferTransactionsPeriod(rows)
	if !ok {
		t.Fatal("expected a period to be inferred")
	}
	if period != (models.Period{Year: 2025, Month: 9}) {
		t.Errorf("unexpected period: %v", period)
	}
	if _, ok := InferTransactionsPeriod(nil); ok {
		t.Error("expected no period for empty input")
	}
}
