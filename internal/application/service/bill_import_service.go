package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/billbook-api/pkg/apperror"
	"github.com/xuri/excelize/v2"
)

// BillImportService parses uploaded files into bills
type BillImportService struct {
	billService *BillService
}

// NewBillImportService creates a new bill import service
func NewBillImportService(billService *BillService) *BillImportService {
	return &BillImportService{billService: billService}
}

// ImportBillRow represents a single bill parsed from an import file.
// Each row carries one line item; rows sharing a bill number in the
// source file are still imported as separate bills.
type ImportBillRow struct {
	CustomerName  string     `json:"customer_name"`
	CustomerEmail string     `json:"customer_email"`
	CustomerPhone string     `json:"customer_phone"`
	Description   string     `json:"description"`
	Quantity      float64    `json:"quantity"`
	Rate          float64    `json:"rate"`
	TaxPercentage float64    `json:"tax_percentage"`
	DueDate       *time.Time `json:"due_date"`
	Notes         string     `json:"notes"`
}

// ImportResult contains the result of a bill import operation
type ImportResult struct {
	TotalRows  int              `json:"total_rows"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Errors     []ImportRowError `json:"errors,omitempty"`
}

// ImportRowError describes an error for a specific row during import
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ParseExcel reads bill rows from an xlsx upload. The first sheet is
// used and row 1 is expected to be a header.
func (s *BillImportService) ParseExcel(r io.Reader) ([]ImportBillRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperror.NewBadRequestError("Could not read Excel file: " + err.Error())
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperror.NewBadRequestError("Excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperror.NewBadRequestError("Could not read Excel rows: " + err.Error())
	}
	if len(rows) < 2 {
		return nil, apperror.NewBadRequestError("Excel file has no data rows")
	}

	out := make([]ImportBillRow, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		row := ImportBillRow{
			CustomerName:  cellAt(cells, 0),
			CustomerEmail: cellAt(cells, 1),
			CustomerPhone: cellAt(cells, 2),
			Description:   cellAt(cells, 3),
			Quantity:      parseFloat(cellAt(cells, 4)),
			Rate:          parseFloat(cellAt(cells, 5)),
			TaxPercentage: parseFloat(cellAt(cells, 6)),
			Notes:         cellAt(cells, 8),
		}
		if due := parseDate(cellAt(cells, 7)); due != nil {
			row.DueDate = due
		}
		out = append(out, row)
	}
	return out, nil
}

// ParseJSON reads bill rows from a JSON upload, either a bare array or
// an object with a "bills" key
func (s *BillImportService) ParseJSON(r io.Reader) ([]ImportBillRow, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apperror.NewBadRequestError("Could not read JSON file: " + err.Error())
	}

	var rows []ImportBillRow
	if err := json.Unmarshal(data, &rows); err == nil {
		return rows, nil
	}

	var wrapper struct {
		Bills []ImportBillRow `json:"bills"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil || wrapper.Bills == nil {
		return nil, apperror.NewBadRequestError("JSON file is not a bill list")
	}
	return wrapper.Bills, nil
}

// ImportBills validates and creates draft bills from parsed rows. Rows
// that fail validation are reported and skipped; the rest are imported.
func (s *BillImportService) ImportBills(ctx context.Context, userID uuid.UUID, rows []ImportBillRow) (*ImportResult, error) {
	result := &ImportResult{TotalRows: len(rows)}

	for i, row := range rows {
		rowNum := i + 2 // +2 because row 1 is the header, data starts at row 2

		if strings.TrimSpace(row.CustomerName) == "" {
			result.Failed++
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Field: "customer_name", Message: "Customer name is required"})
			continue
		}
		if row.Quantity < 0 {
			result.Failed++
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Field: "quantity", Message: "Quantity cannot be negative"})
			continue
		}
		if row.Rate < 0 {
			result.Failed++
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Field: "rate", Message: "Rate cannot be negative"})
			continue
		}

		input := &CreateBillInput{
			UserID:       userID,
			CustomerName: strings.TrimSpace(row.CustomerName),
			DueDate:      row.DueDate,
		}
		if row.CustomerEmail != "" {
			email := row.CustomerEmail
			input.CustomerEmail = &email
		}
		if row.CustomerPhone != "" {
			phone := row.CustomerPhone
			input.CustomerPhone = &phone
		}
		if row.Notes != "" {
			notes := row.Notes
			input.Notes = &notes
		}
		if row.TaxPercentage > 0 {
			tax := row.TaxPercentage
			input.TaxPercentage = &tax
		}
		if strings.TrimSpace(row.Description) != "" {
			input.Items = []BillItemInput{{
				Description: strings.TrimSpace(row.Description),
				Quantity:    row.Quantity,
				Rate:        row.Rate,
			}}
		}

		if _, err := s.billService.CreateBill(ctx, input); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Field: "", Message: fmt.Sprintf("Could not create bill: %v", err)})
			continue
		}
		result.Successful++
	}

	return result, nil
}

func cellAt(cells []string, idx int) string {
	if idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}

// parseDate accepts the date layouts commonly found in exports
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	layouts := []string{"2006-01-02", "02/01/2006", "01/02/2006", "02-01-2006", time.RFC3339}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
