package document

import (
	"bytes"
	"fmt"

	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

// RenderBillExcel renders a bill as an Excel workbook and returns its bytes
func RenderBillExcel(bill *entity.Bill, branding Branding) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Bill"
	f.SetSheetName("Sheet1", sheet)

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	// Company and bill metadata
	f.SetCellValue(sheet, "A1", branding.CompanyName)
	f.SetCellStyle(sheet, "A1", "A1", bold)
	f.SetCellValue(sheet, "A2", "Bill Number")
	f.SetCellValue(sheet, "B2", bill.BillNumber)
	f.SetCellValue(sheet, "A3", "Customer")
	f.SetCellValue(sheet, "B3", bill.CustomerName)
	f.SetCellValue(sheet, "A4", "Due Date")
	f.SetCellValue(sheet, "B4", branding.FormatDate(bill.DueDate))
	f.SetCellValue(sheet, "A5", "Status")
	f.SetCellValue(sheet, "B5", bill.Status.String())

	// Items table
	headerRow := 7
	headers := []string{"Description", "Quantity", "Rate", "Amount"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, bold)
	}

	row := headerRow + 1
	for _, item := range bill.Items {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.Description)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.Quantity)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), item.Rate)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), item.Amount)
		row++
	}

	// Totals
	row++
	f.SetCellValue(sheet, fmt.Sprintf("C%d", row), "Subtotal")
	f.SetCellValue(sheet, fmt.Sprintf("D%d", row), bill.Subtotal)
	row++
	f.SetCellValue(sheet, fmt.Sprintf("C%d", row), fmt.Sprintf("Tax (%.2f%%)", bill.TaxPercentage))
	f.SetCellValue(sheet, fmt.Sprintf("D%d", row), bill.TaxAmount)
	row++
	totalLabel := fmt.Sprintf("C%d", row)
	totalValue := fmt.Sprintf("D%d", row)
	f.SetCellValue(sheet, totalLabel, "Total")
	f.SetCellValue(sheet, totalValue, bill.TotalAmount)
	f.SetCellStyle(sheet, totalLabel, totalValue, bold)

	f.SetColWidth(sheet, "A", "A", 40)
	f.SetColWidth(sheet, "B", "D", 15)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render Excel workbook: %w", err)
	}

	return buf.Bytes(), nil
}
