package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/billbook-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	svc := NewBillImportService(nil)

	t.Run("bare array", func(t *testing.T) {
		payload := `[{"customer_name":"Jane Doe","description":"Work","quantity":2,"rate":50}]`

		rows, err := svc.ParseJSON(strings.NewReader(payload))

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Jane Doe", rows[0].CustomerName)
		assert.Equal(t, 2.0, rows[0].Quantity)
	})

	t.Run("wrapped object", func(t *testing.T) {
		payload := `{"bills":[{"customer_name":"Jane Doe"}]}`

		rows, err := svc.ParseJSON(strings.NewReader(payload))

		require.NoError(t, err)
		require.Len(t, rows, 1)
	})

	t.Run("invalid payload", func(t *testing.T) {
		_, err := svc.ParseJSON(strings.NewReader(`{"nope":true}`))
		assert.Error(t, err)
	})
}

func TestImportBills(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	billService, billRepo, _ := newTestBillService(userID)
	svc := NewBillImportService(billService)

	rows := []ImportBillRow{
		{CustomerName: "Jane Doe", Description: "Consulting", Quantity: 3, Rate: 100, TaxPercentage: 18},
		{CustomerName: "", Description: "No customer", Quantity: 1, Rate: 10},
		{CustomerName: "Bob", Description: "Negative", Quantity: -1, Rate: 10},
		{CustomerName: "Carol"},
	}

	result, err := svc.ImportBills(ctx, userID, rows)

	require.NoError(t, err)
	assert.Equal(t, 4, result.TotalRows)
	assert.Equal(t, 2, result.Successful)
	assert.Equal(t, 2, result.Failed)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, "customer_name", result.Errors[0].Field)
	assert.Equal(t, "quantity", result.Errors[1].Field)

	// Imported bills are drafts with derived totals
	require.Len(t, billRepo.bills, 2)
	assert.Equal(t, enum.BillStatusDraft, billRepo.bills[0].Status)
	assert.Equal(t, 354.0, billRepo.bills[0].TotalAmount)

	// A row without a description still imports as an empty bill
	assert.Equal(t, 0.0, billRepo.bills[1].TotalAmount)
}

func TestParseDate(t *testing.T) {
	assert.Nil(t, parseDate(""))
	assert.Nil(t, parseDate("not a date"))

	d := parseDate("2026-02-10")
	require.NotNil(t, d)
	assert.Equal(t, 2026, d.Year())

	d = parseDate("10/02/2026")
	require.NotNil(t, d)
	assert.Equal(t, 2026, d.Year())
}
