// Package document renders bills into shareable file formats.
package document

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/sangkips/billbook-api/internal/domain/entity"
)

// Branding holds the company details stamped on rendered documents
type Branding struct {
	CompanyName    string
	CompanyAddress string
	CompanyPhone   string
	CurrencySymbol string
	DateFormat     string
}

// FormatDate renders a time using the configured display format
func (b Branding) FormatDate(t time.Time) string {
	switch b.DateFormat {
	case "MM/DD/YYYY":
		return t.Format("01/02/2006")
	case "YYYY-MM-DD":
		return t.Format("2006-01-02")
	default:
		return t.Format("02/01/2006")
	}
}

func (b Branding) money(amount float64) string {
	return fmt.Sprintf("%s%.2f", b.CurrencySymbol, amount)
}

// RenderBillPDF renders a bill as a PDF document and returns its bytes
func RenderBillPDF(bill *entity.Bill, branding Branding) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(bill.BillNumber, false)
	pdf.SetAuthor(branding.CompanyName, false)
	pdf.AddPage()

	// Company header
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(120, 10, branding.CompanyName)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(70, 10, "BILL", "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 100, 100)
	if branding.CompanyAddress != "" {
		pdf.Cell(120, 5, branding.CompanyAddress)
		pdf.Ln(5)
	}
	if branding.CompanyPhone != "" {
		pdf.Cell(120, 5, branding.CompanyPhone)
		pdf.Ln(5)
	}
	pdf.Ln(5)

	// Bill metadata
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(30, 6, "Bill Number:")
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(70, 6, bill.BillNumber)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(30, 6, "Due Date:")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(40, 6, branding.FormatDate(bill.DueDate), "", 1, "", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(30, 6, "Status:")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(70, 6, bill.Status.String(), "", 1, "", false, 0, "")
	pdf.Ln(4)

	// Customer block
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, "Bill To:", "", 1, "", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, bill.CustomerName, "", 1, "", false, 0, "")
	if bill.CustomerEmail != nil && *bill.CustomerEmail != "" {
		pdf.CellFormat(0, 5, *bill.CustomerEmail, "", 1, "", false, 0, "")
	}
	if bill.CustomerPhone != nil && *bill.CustomerPhone != "" {
		pdf.CellFormat(0, 5, *bill.CustomerPhone, "", 1, "", false, 0, "")
	}
	pdf.Ln(6)

	// Items table header
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(90, 8, "Description", "1", 0, "", true, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Rate", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range bill.Items {
		pdf.CellFormat(90, 7, item.Description, "1", 0, "", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%.2f", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, branding.money(item.Rate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, branding.money(item.Amount), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// Totals block, right aligned
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(150, 6, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 6, branding.money(bill.Subtotal), "", 1, "R", false, 0, "")
	pdf.CellFormat(150, 6, fmt.Sprintf("Tax (%.2f%%)", bill.TaxPercentage), "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 6, branding.money(bill.TaxAmount), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(150, 8, "Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, branding.money(bill.TotalAmount), "", 1, "R", false, 0, "")

	// Notes
	if bill.Notes != nil && *bill.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 6, "Notes:", "", 1, "", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(0, 5, *bill.Notes, "", "", false)
	}

	// Footer
	pdf.SetY(-25)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(150, 150, 150)
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated on %s", time.Now().Format("02 Jan 2006 15:04")), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}

	return buf.Bytes(), nil
}
