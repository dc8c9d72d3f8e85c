package billing

import (
	"time"

	"github.com/sangkips/billbook-api/internal/domain/enum"
)

// The stored lifecycle is Draft -> Sent -> Paid. Overdue is a display-only
// projection of Sent past its due date: it is never written to storage and
// an overdue bill can still be marked Paid.

// DeriveDisplayStatus returns the status a bill should be shown with at
// the given instant. A Sent bill whose due date is strictly before now is
// displayed as Overdue; every other stored status passes through
// unchanged.
func DeriveDisplayStatus(status enum.BillStatus, dueDate time.Time, now time.Time) enum.BillStatus {
	if status == enum.BillStatusSent && dueDate.Before(now) {
		return enum.BillStatusOverdue
	}
	return status
}

// CanTransition reports whether a stored status change is legal. Requests
// arrive with the display status the caller last saw, so Overdue is
// treated as Sent on the from side. Paid is terminal and no state may be
// re-entered.
func CanTransition(from, to enum.BillStatus) bool {
	if from == enum.BillStatusOverdue {
		from = enum.BillStatusSent
	}
	switch from {
	case enum.BillStatusDraft:
		return to == enum.BillStatusSent
	case enum.BillStatusSent:
		return to == enum.BillStatusPaid
	default:
		return false
	}
}
