package document

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBill() *entity.Bill {
	email := "jane@example.com"
	notes := "Payment due within 30 days."
	return &entity.Bill{
		ID:            uuid.New(),
		BillNumber:    "BILL-20260110-A1B2C3",
		CustomerName:  "Jane Doe",
		CustomerEmail: &email,
		Subtotal:      300,
		TaxPercentage: 18,
		TaxAmount:     54,
		TotalAmount:   354,
		Status:        enum.BillStatusSent,
		Notes:         &notes,
		DueDate:       time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		Items: []entity.BillItem{
			{Description: "Consulting", Quantity: 3, Rate: 100, Amount: 300},
		},
	}
}

func testBranding() Branding {
	return Branding{
		CompanyName:    "Acme Traders",
		CompanyAddress: "12 Market Street",
		CurrencySymbol: "$",
		DateFormat:     "DD/MM/YYYY",
	}
}

func TestRenderBillPDF(t *testing.T) {
	data, err := RenderBillPDF(testBill(), testBranding())

	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderBillExcel(t *testing.T) {
	data, err := RenderBillExcel(testBill(), testBranding())

	require.NoError(t, err)
	require.NotEmpty(t, data)
	// XLSX files are zip archives
	assert.Equal(t, byte('P'), data[0])
	assert.Equal(t, byte('K'), data[1])
}

func TestBrandingFormatDate(t *testing.T) {
	d := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "10/02/2026", Branding{DateFormat: "DD/MM/YYYY"}.FormatDate(d))
	assert.Equal(t, "02/10/2026", Branding{DateFormat: "MM/DD/YYYY"}.FormatDate(d))
	assert.Equal(t, "2026-02-10", Branding{DateFormat: "YYYY-MM-DD"}.FormatDate(d))
	assert.Equal(t, "10/02/2026", Branding{}.FormatDate(d))
}
