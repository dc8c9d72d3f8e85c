package whatsapp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShareLink(t *testing.T) {
	msg := ShareMessage{
		CompanyName:    "Acme Traders",
		CustomerName:   "Jane Doe",
		BillNumber:     "BILL-20260110-A1B2C3",
		TotalAmount:    354,
		CurrencySymbol: "$",
		DueDate:        "10/02/2026",
		Status:         "sent",
	}

	t.Run("with phone number", func(t *testing.T) {
		link := ShareLink("+1 (555) 010-2030", msg)

		assert.True(t, strings.HasPrefix(link, "https://wa.me/15550102030?text="))
		assert.Contains(t, link, "BILL-20260110-A1B2C3")
	})

	t.Run("without phone number", func(t *testing.T) {
		link := ShareLink("", msg)

		assert.True(t, strings.HasPrefix(link, "https://wa.me/?text="))
	})

	t.Run("message includes totals", func(t *testing.T) {
		rendered := msg.Render()

		assert.Contains(t, rendered, "Jane Doe")
		assert.Contains(t, rendered, "Acme Traders")
		assert.Contains(t, rendered, "$354.00")
		assert.Contains(t, rendered, "Due Date: 10/02/2026")
	})
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "254712345678", normalizePhone("+254 712 345 678"))
	assert.Equal(t, "", normalizePhone("no digits"))
}
