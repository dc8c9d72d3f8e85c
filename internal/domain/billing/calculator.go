// Package billing contains the bill engine: line item amount derivation,
// tax and totals computation, status lifecycle rules and the read-time
// overdue projection. Everything here is pure; persistence lives in the
// repository layer.
package billing

import (
	"strings"

	"github.com/sangkips/billbook-api/internal/domain/entity"
)

// RecalculateItems returns a copy of items where every Amount equals
// Quantity * Rate. Descriptions are left untouched. The changed flag is
// false when every amount was already correct, so callers bound to
// reactive form state can skip the write and avoid update loops.
// Zero-valued quantity or rate simply produce a zero amount.
func RecalculateItems(items []entity.BillItem) ([]entity.BillItem, bool) {
	out := make([]entity.BillItem, len(items))
	changed := false
	for i, item := range items {
		amount := item.Quantity * item.Rate
		if item.Amount != amount {
			changed = true
		}
		item.Amount = amount
		out[i] = item
	}
	return out, changed
}

// BillableItems filters out items whose description is empty or
// whitespace-only. Totals are computed over billable items only.
func BillableItems(items []entity.BillItem) []entity.BillItem {
	out := make([]entity.BillItem, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Description) == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Totals holds the derived money fields of a bill.
type Totals struct {
	Subtotal    float64
	TaxAmount   float64
	TotalAmount float64
}

// ComputeTotals derives subtotal, tax amount and grand total from a
// finalized item list and a tax rate percentage. Item amounts are
// rederived from quantity and rate first; a stored Amount field is never
// trusted on its own. No rounding is applied here, display formatting is
// the caller's concern.
func ComputeTotals(items []entity.BillItem, taxRate float64) Totals {
	recalced, _ := RecalculateItems(BillableItems(items))

	var subtotal float64
	for _, item := range recalced {
		subtotal += item.Amount
	}

	taxAmount := subtotal * taxRate / 100

	return Totals{
		Subtotal:    subtotal,
		TaxAmount:   taxAmount,
		TotalAmount: subtotal + taxAmount,
	}
}
