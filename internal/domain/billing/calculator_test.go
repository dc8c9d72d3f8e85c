package billing

import (
	"testing"

	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecalculateItems(t *testing.T) {
	t.Run("derives amount from quantity and rate", func(t *testing.T) {
		items := []entity.BillItem{
			{Description: "Widget", Quantity: 3, Rate: 100},
			{Description: "Gadget", Quantity: 2, Rate: 49.5},
		}

		out, changed := RecalculateItems(items)

		require.Len(t, out, 2)
		assert.True(t, changed)
		assert.Equal(t, 300.0, out[0].Amount)
		assert.Equal(t, 99.0, out[1].Amount)
		assert.Equal(t, "Widget", out[0].Description)
	})

	t.Run("is idempotent on already correct items", func(t *testing.T) {
		items := []entity.BillItem{
			{Description: "Widget", Quantity: 3, Rate: 100, Amount: 300},
		}

		out, changed := RecalculateItems(items)

		assert.False(t, changed)
		assert.Equal(t, items, out)

		// Second pass over the first pass output is also a no-op
		out2, changed2 := RecalculateItems(out)
		assert.False(t, changed2)
		assert.Equal(t, out, out2)
	})

	t.Run("overrides a stale stored amount", func(t *testing.T) {
		items := []entity.BillItem{
			{Description: "Widget", Quantity: 2, Rate: 50, Amount: 999},
		}

		out, changed := RecalculateItems(items)

		assert.True(t, changed)
		assert.Equal(t, 100.0, out[0].Amount)
	})

	t.Run("treats zero quantity or rate as zero amount", func(t *testing.T) {
		items := []entity.BillItem{
			{Description: "No quantity", Rate: 100},
			{Description: "No rate", Quantity: 5},
		}

		out, _ := RecalculateItems(items)

		assert.Equal(t, 0.0, out[0].Amount)
		assert.Equal(t, 0.0, out[1].Amount)
	})

	t.Run("does not mutate the input slice", func(t *testing.T) {
		items := []entity.BillItem{
			{Description: "Widget", Quantity: 3, Rate: 100},
		}

		_, _ = RecalculateItems(items)

		assert.Equal(t, 0.0, items[0].Amount)
	})
}

func TestBillableItems(t *testing.T) {
	items := []entity.BillItem{
		{Description: "Widget", Quantity: 1, Rate: 10},
		{Description: "", Quantity: 1, Rate: 99},
		{Description: "   ", Quantity: 1, Rate: 99},
		{Description: "Gadget", Quantity: 1, Rate: 20},
	}

	out := BillableItems(items)

	require.Len(t, out, 2)
	assert.Equal(t, "Widget", out[0].Description)
	assert.Equal(t, "Gadget", out[1].Description)
}

func TestComputeTotals(t *testing.T) {
	t.Run("reference scenario", func(t *testing.T) {
		items := []entity.BillItem{
			{Description: "Widget", Quantity: 3, Rate: 100},
		}

		totals := ComputeTotals(items, 18)

		assert.Equal(t, 300.0, totals.Subtotal)
		assert.Equal(t, 54.0, totals.TaxAmount)
		assert.Equal(t, 354.0, totals.TotalAmount)
	})

	t.Run("zero tax rate", func(t *testing.T) {
		items := []entity.BillItem{
			{Description: "Widget", Quantity: 2, Rate: 75},
		}

		totals := ComputeTotals(items, 0)

		assert.Equal(t, 150.0, totals.Subtotal)
		assert.Equal(t, 0.0, totals.TaxAmount)
		assert.Equal(t, 150.0, totals.TotalAmount)
	})

	t.Run("hundred percent tax rate", func(t *testing.T) {
		items := []entity.BillItem{
			{Description: "Widget", Quantity: 1, Rate: 80},
		}

		totals := ComputeTotals(items, 100)

		assert.Equal(t, 80.0, totals.Subtotal)
		assert.Equal(t, 80.0, totals.TaxAmount)
		assert.Equal(t, 160.0, totals.TotalAmount)
	})

	t.Run("ignores empty description items", func(t *testing.T) {
		items := []entity.BillItem{
			{Description: "Widget", Quantity: 3, Rate: 100},
			{Description: "", Quantity: 10, Rate: 1000},
		}

		totals := ComputeTotals(items, 18)

		assert.Equal(t, 300.0, totals.Subtotal)
	})

	t.Run("rederives stale amounts before summing", func(t *testing.T) {
		items := []entity.BillItem{
			{Description: "Widget", Quantity: 3, Rate: 100, Amount: 5},
		}

		totals := ComputeTotals(items, 0)

		assert.Equal(t, 300.0, totals.Subtotal)
	})

	t.Run("empty item list", func(t *testing.T) {
		totals := ComputeTotals(nil, 18)

		assert.Equal(t, 0.0, totals.Subtotal)
		assert.Equal(t, 0.0, totals.TaxAmount)
		assert.Equal(t, 0.0, totals.TotalAmount)
	})
}
