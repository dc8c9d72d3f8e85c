package billing

import (
	"strings"
	"testing"
	"time"

	"github.com/sangkips/billbook-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
)

func TestDeriveDisplayStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	tests := []struct {
		name    string
		status  enum.BillStatus
		dueDate time.Time
		want    enum.BillStatus
	}{
		{"sent past due is overdue", enum.BillStatusSent, yesterday, enum.BillStatusOverdue},
		{"sent not yet due stays sent", enum.BillStatusSent, tomorrow, enum.BillStatusSent},
		{"sent due exactly now stays sent", enum.BillStatusSent, now, enum.BillStatusSent},
		{"paid past due stays paid", enum.BillStatusPaid, yesterday, enum.BillStatusPaid},
		{"draft past due stays draft", enum.BillStatusDraft, yesterday, enum.BillStatusDraft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveDisplayStatus(tt.status, tt.dueDate, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from enum.BillStatus
		to   enum.BillStatus
		want bool
	}{
		{enum.BillStatusDraft, enum.BillStatusSent, true},
		{enum.BillStatusSent, enum.BillStatusPaid, true},
		{enum.BillStatusOverdue, enum.BillStatusPaid, true},
		{enum.BillStatusDraft, enum.BillStatusPaid, false},
		{enum.BillStatusDraft, enum.BillStatusOverdue, false},
		{enum.BillStatusSent, enum.BillStatusOverdue, false},
		{enum.BillStatusSent, enum.BillStatusSent, false},
		{enum.BillStatusSent, enum.BillStatusDraft, false},
		{enum.BillStatusPaid, enum.BillStatusSent, false},
		{enum.BillStatusPaid, enum.BillStatusDraft, false},
	}

	for _, tt := range tests {
		name := tt.from.String() + "_to_" + tt.to.String()
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestNewBillNumber(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	number := NewBillNumber("BILL-", now)

	assert.True(t, strings.HasPrefix(number, "BILL-20260315-"))
	assert.Len(t, number, len("BILL-20260315-")+6)

	// Suffix carries the entropy
	other := NewBillNumber("BILL-", now)
	assert.NotEqual(t, number, other)
}
