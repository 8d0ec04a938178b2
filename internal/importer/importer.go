package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/mwarren02/billdesk/internal/encoding"
	"github.com/mwarren02/billdesk/internal/invoice"
)

// Row is one invoice waiting to be imported. The customer is still a name
// at this point; resolution to an id happens against the customer table.
type Row struct {
	Customer string
	Amount   int64 // cents
	Status   invoice.Status
	Date     time.Time
}

// Required header columns. Date is optional; rows without one are dated the
// day of the import.
const (
	colCustomer = "Customer"
	colAmount   = "Amount"
	colStatus   = "Status"
	colDate     = "Date"
)

type Service struct{}

func NewService() *Service {
	return &Service{}
}

// Parse reads a semicolon-separated CSV of invoices, decoding whatever
// charset the file was saved in. The header may be preceded by junk rows;
// the first row carrying the Customer, Amount and Status columns wins.
func (s *Service) Parse(r io.Reader) ([]Row, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx, ok := findHeader(records)
	if !ok {
		return nil, fmt.Errorf("no header row with %s, %s and %s columns", colCustomer, colAmount, colStatus)
	}

	return parseRows(cols, records[headerIdx+1:], headerIdx+1)
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

func findHeader(records [][]string) (colIndex, int, bool) {
	for rowIdx, record := range records {
		cols := make(colIndex)

		for i, cell := range record {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		_, hasCustomer := cols[colCustomer]
		_, hasAmount := cols[colAmount]
		_, hasStatus := cols[colStatus]

		if hasCustomer && hasAmount && hasStatus {
			return cols, rowIdx, true
		}
	}

	return nil, 0, false
}

func parseRows(cols colIndex, records [][]string, headerRowNum int) ([]Row, error) {
	dateIdx, hasDate := cols[colDate]

	var rows []Row

	for i, record := range records {
		rowNum := headerRowNum + i + 2 // 1-based, skipping header

		customer := cellValue(record, cols[colCustomer])
		if customer == "" {
			continue
		}

		amount, err := parseAmount(cellValue(record, cols[colAmount]))
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing amount: %w", rowNum, err)
		}

		status := invoice.Status(cellValue(record, cols[colStatus]))
		if !status.Valid() {
			return nil, fmt.Errorf("row %d: invalid status %q", rowNum, status)
		}

		date := time.Now().UTC().Truncate(24 * time.Hour)

		if hasDate {
			if raw := cellValue(record, dateIdx); raw != "" {
				date, err = time.Parse(time.DateOnly, raw)
				if err != nil {
					return nil, fmt.Errorf("row %d: parsing date: %w", rowNum, err)
				}
			}
		}

		rows = append(rows, Row{
			Customer: customer,
			Amount:   amount,
			Status:   status,
			Date:     date,
		})
	}

	return rows, nil
}

// parseAmount converts a decimal amount string into cents. Thousands
// separators are tolerated: "1,234.56" -> 123456.
func parseAmount(s string) (int64, error) {
	clean := strings.ReplaceAll(s, ",", "")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	if !d.IsPositive() {
		return 0, fmt.Errorf("amount %s is not greater than zero", s)
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

func cellValue(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[idx])
}
