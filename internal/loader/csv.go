// Package loader parses the tabular inputs of a validation run: the fund
// registry, the monthly holdings disclosure report and the manager's
// special-transactions report. All three arrive as CSV exports with Hebrew
// column headers, sometimes UTF-8 with a BOM and sometimes Windows-1255.
// Missing required columns fail the whole load; an individually unparsable
// cell inside an otherwise valid row loads as an absent value.
package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/Rainerrr/Mizrahi-Automations/internal/models"
	"github.com/Rainerrr/Mizrahi-Automations/internal/util"
)

// Column headers of the mutual funds registry export.
const (
	ColRegistryFundID   = "מספר בורסה"
	ColRegistryFundName = "שם קרן בעברית"
	ColRegistryTrustee  = "שם נאמן"
	ColRegistryManager  = "שם מנהל"
	ColRegistryExposure = "פרופיל החשיפה"
	ColRegistryFundType = "סוג הקרן"
)

// Column headers of the monthly holdings disclosure report.
const (
	ColDisclosureFundID       = "מספר קרן"
	ColDisclosureFundName     = "שם קרן"
	ColDisclosureLevel1       = "רמה 1"
	ColDisclosureLevel2       = "רמה 2"
	ColDisclosureLevel3       = "רמה 3"
	ColDisclosureLevel4       = "רמה 4"
	ColDisclosurePercent      = "%מקרן"
	ColDisclosureExtraData    = "נתונים נוספים"
	ColDisclosureReportDate   = "תאריך דוח"
	ColDisclosureRecordNo     = "מס.רשומה"
	ColDisclosureTotalRecords = "סהכ רשומות"
	ColDisclosureManagerNo    = "מס.מנהל ברשם"
)

// Column headers of the manager special-transactions report.
const (
	ColTxnFundID       = "מספר קרן"
	ColTxnFundName     = "שם קרן"
	ColTxnSecurityName = "שם נייר"
	ColTxnSecurityID   = "מספר נייר"
	ColTxnQuantity     = "כמות"
	ColTxnPrice        = "מחיר"
	ColTxnDate         = "תאריך"
	ColTxnTime         = "שעה"
	ColTxnType         = "סוג"
	ColTxnDecision     = "אופן החלטה"
	ColTxnReportDate   = "ת.דוח"
	ColTxnRecordNo     = "מס. רשומה"
)

// decodeHebrew returns a UTF-8 view of a raw report. Exports arrive either
// as UTF-8, usually with a BOM, or as Windows-1255; bytes that are not
// valid UTF-8 are decoded as the latter.
func decodeHebrew(r io.Reader) (io.Reader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if !utf8.Valid(data) {
		data, err = charmap.Windows1255.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode input as Windows-1255: %w", err)
		}
	}
	return bytes.NewReader(data), nil
}

func newReader(r io.Reader) (*csv.Reader, error) {
	decoded, err := decodeHebrew(r)
	if err != nil {
		return nil, err
	}
	reader := csv.NewReader(decoded)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	return reader, nil
}

// headerIndex maps trimmed header names to their column position. Exports
// occasionally carry stray carriage returns inside the header row.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int)
	for i, col := range header {
		idx[strings.TrimSpace(strings.ReplaceAll(col, "\r", ""))] = i
	}
	return idx
}

func missingColumns(idx map[string]int, required []string) []string {
	var missing []string
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

// cell returns the trimmed value of a column, empty when the column is
// absent or the record is short.
func cell(record []string, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// ParseRegistryCSV loads the mutual funds registry keyed by exchange fund
// number. Rows without a parsable fund number are skipped.
func ParseRegistryCSV(r io.Reader) (map[int64]models.Fund, error) {
	reader, err := newReader(r)
	if err != nil {
		return nil, err
	}

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	idx := headerIndex(header)
	if missing := missingColumns(idx, []string{ColRegistryFundID, ColRegistryTrustee}); len(missing) > 0 {
		return nil, fmt.Errorf("mutual funds list missing required columns: %v", missing)
	}

	funds := make(map[int64]models.Fund)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}

		id, ok := util.ParseInt(cell(record, idx, ColRegistryFundID))
		if !ok {
			continue
		}
		funds[id] = models.Fund{
			ID:              id,
			Name:            cell(record, idx, ColRegistryFundName),
			Trustee:         cell(record, idx, ColRegistryTrustee),
			Manager:         cell(record, idx, ColRegistryManager),
			ExposureProfile: cell(record, idx, ColRegistryExposure),
			FundType:        cell(record, idx, ColRegistryFundType),
		}
	}
	return funds, nil
}

// ParseDisclosureCSV loads a monthly holdings disclosure report. Row
// numbers count from 2, matching the source sheet with its header row.
func ParseDisclosureCSV(r io.Reader) ([]models.DisclosureRecord, error) {
	reader, err := newReader(r)
	if err != nil {
		return nil, err
	}

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	idx := headerIndex(header)
	required := []string{ColDisclosureFundID, ColDisclosureLevel1, ColDisclosurePercent, ColDisclosureReportDate}
	if missing := missingColumns(idx, required); len(missing) > 0 {
		return nil, fmt.Errorf("disclosure report missing required columns: %v", missing)
	}

	var rows []models.DisclosureRecord
	rowNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: failed to read CSV record: %w", rowNum+1, err)
		}
		rowNum++

		rec := models.DisclosureRecord{
			RowNum:       rowNum,
			FundName:     cell(record, idx, ColDisclosureFundName),
			Level1:       cell(record, idx, ColDisclosureLevel1),
			Level2:       cell(record, idx, ColDisclosureLevel2),
			Level3:       cell(record, idx, ColDisclosureLevel3),
			Level4:       cell(record, idx, ColDisclosureLevel4),
			RecordNo:     cell(record, idx, ColDisclosureRecordNo),
			TotalRecords: cell(record, idx, ColDisclosureTotalRecords),
			ManagerNo:    cell(record, idx, ColDisclosureManagerNo),
			ExtraData:    cell(record, idx, ColDisclosureExtraData),
		}
		if id, ok := util.ParseInt(cell(record, idx, ColDisclosureFundID)); ok {
			rec.FundID = &id
		}
		if pct, ok := util.ParseFloat(cell(record, idx, ColDisclosurePercent)); ok {
			rec.Percent = &pct
		}
		if d, ok := util.ParseDDMMYYYY(cell(record, idx, ColDisclosureReportDate)); ok {
			rec.ReportDate = &d
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// ParseTransactionsCSV loads a manager special-transactions report. Rows
// carrying no fund number, no security number and no record number are
// trailing notes, not data; they are dropped and counted in skipped.
func ParseTransactionsCSV(r io.Reader) (rows []models.TransactionRecord, skipped int, err error) {
	reader, err := newReader(r)
	if err != nil {
		return nil, 0, err
	}

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read CSV header: %w", err)
	}
	idx := headerIndex(header)
	required := []string{
		ColTxnFundID, ColTxnSecurityID, ColTxnQuantity, ColTxnPrice,
		ColTxnDate, ColTxnTime, ColTxnType, ColTxnDecision,
	}
	if missing := missingColumns(idx, required); len(missing) > 0 {
		return nil, 0, fmt.Errorf("manager report missing required columns: %v", missing)
	}

	rowNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("row %d: failed to read CSV record: %w", rowNum+1, err)
		}
		rowNum++

		fundID, fundOK := util.ParseInt(cell(record, idx, ColTxnFundID))
		secNo := cell(record, idx, ColTxnSecurityID)
		if !fundOK && secNo == "" && cell(record, idx, ColTxnRecordNo) == "" {
			skipped++
			continue
		}

		rec := models.TransactionRecord{
			RowNum:       rowNum,
			FundName:     cell(record, idx, ColTxnFundName),
			SecurityName: cell(record, idx, ColTxnSecurityName),
			SecurityID:   secNo,
		}
		if fundOK {
			rec.FundID = &fundID
		}
		if qty, ok := util.ParseFloat(cell(record, idx, ColTxnQuantity)); ok {
			rec.Quantity = &qty
		}
		if price, ok := util.ParseFloat(cell(record, idx, ColTxnPrice)); ok {
			rec.Price = &price
		}
		if d, ok := util.ParseDDMMYYYY(cell(record, idx, ColTxnDate)); ok {
			rec.Date = &d
		}
		if hh, mm, ss, ok := util.ParseHHMMSS(cell(record, idx, ColTxnTime)); ok {
			rec.Time = &models.ClockTime{Hour: hh, Minute: mm, Second: ss}
		}
		if t, ok := util.ParseInt(cell(record, idx, ColTxnType)); ok {
			v := int(t)
			rec.Type = &v
		}
		if dm, ok := util.ParseInt(cell(record, idx, ColTxnDecision)); ok {
			v := int(dm)
			rec.DecisionMethod = &v
		}
		if d, ok := util.ParseDDMMYYYY(cell(record, idx, ColTxnReportDate)); ok {
			rec.ReportDate = &d
		}
		rows = append(rows, rec)
	}
	return rows, skipped, nil
}

// InferTransactionsPeriod derives the report period from the first row
// carrying a report date.
func InferTransactionsPeriod(rows []models.TransactionRecord) (models.Period, bool) {
	for _, r := range rows {
		if r.ReportDate != nil {
			return models.PeriodOf(*r.ReportDate), true
		}
	}
	return models.Period{}, false
}

// InferDisclosurePeriod derives the report period from the first row
// carrying a report date.
func InferDisclosurePeriod(rows []models.DisclosureRecord) (models.Period, bool) {
	for _, r := range rows {
		if r.ReportDate != nil {
			return models.PeriodOf(*r.ReportDate), true
		}
	}
	return models.Period{}, false
}
