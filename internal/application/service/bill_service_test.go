package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/domain/enum"
	"github.com/sangkips/billbook-api/internal/domain/repository"
	"github.com/sangkips/billbook-api/pkg/apperror"
	"github.com/sangkips/billbook-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBillItemRepo struct {
	items []entity.BillItem
}

func (s *stubBillItemRepo) CreateBatch(_ context.Context, items []entity.BillItem) error {
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
	}
	s.items = append(s.items, items...)
	return nil
}

func (s *stubBillItemRepo) GetByBillID(_ context.Context, billID uuid.UUID) ([]entity.BillItem, error) {
	var out []entity.BillItem
	for _, item := range s.items {
		if item.BillID == billID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubBillItemRepo) DeleteByBillID(_ context.Context, billID uuid.UUID) error {
	kept := s.items[:0]
	for _, item := range s.items {
		if item.BillID != billID {
			kept = append(kept, item)
		}
	}
	s.items = kept
	return nil
}

type stubBillRepo struct {
	bills    []*entity.Bill
	itemRepo *stubBillItemRepo
}

func (s *stubBillRepo) Create(_ context.Context, bill *entity.Bill) error {
	if bill.ID == uuid.Nil {
		bill.ID = uuid.New()
	}
	copied := *bill
	s.bills = append(s.bills, &copied)
	return nil
}

func (s *stubBillRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Bill, error) {
	for _, bill := range s.bills {
		if bill.ID == id {
			copied := *bill
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *stubBillRepo) GetByBillNumber(_ context.Context, billNumber string) (*entity.Bill, error) {
	for _, bill := range s.bills {
		if bill.BillNumber == billNumber {
			copied := *bill
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *stubBillRepo) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	bill, err := s.GetByID(ctx, id)
	if err != nil || bill == nil {
		return bill, err
	}
	items, _ := s.itemRepo.GetByBillID(ctx, id)
	bill.Items = items
	return bill, nil
}

func (s *stubBillRepo) Update(_ context.Context, bill *entity.Bill) error {
	for i, existing := range s.bills {
		if existing.ID == bill.ID {
			copied := *bill
			s.bills[i] = &copied
			return nil
		}
	}
	return nil
}

func (s *stubBillRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enum.BillStatus) error {
	for _, bill := range s.bills {
		if bill.ID == id {
			bill.Status = status
		}
	}
	return nil
}

func (s *stubBillRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_ = s.itemRepo.DeleteByBillID(ctx, id)
	kept := s.bills[:0]
	for _, bill := range s.bills {
		if bill.ID != id {
			kept = append(kept, bill)
		}
	}
	s.bills = kept
	return nil
}

func (s *stubBillRepo) DeleteMany(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	kept := s.bills[:0]
	for _, bill := range s.bills {
		if wanted[bill.ID] && bill.UserID == userID {
			_ = s.itemRepo.DeleteByBillID(ctx, bill.ID)
			continue
		}
		kept = append(kept, bill)
	}
	s.bills = kept
	return nil
}

func (s *stubBillRepo) List(_ context.Context, userID uuid.UUID, params *repository.BillFilterParams) ([]entity.Bill, int64, error) {
	var out []entity.Bill
	for _, bill := range s.bills {
		if bill.UserID != userID {
			continue
		}
		if params.Status != nil && !matchesDisplayStatus(bill, *params.Status) {
			continue
		}
		if params.Search != "" &&
			!strings.Contains(strings.ToLower(bill.CustomerName), strings.ToLower(params.Search)) &&
			!strings.Contains(strings.ToLower(bill.BillNumber), strings.ToLower(params.Search)) {
			continue
		}
		out = append(out, *bill)
	}
	return out, int64(len(out)), nil
}

// matchesDisplayStatus mirrors the SQL filter: overdue selects sent bills
// past their due date, sent selects only those still within it.
func matchesDisplayStatus(bill *entity.Bill, status enum.BillStatus) bool {
	switch status {
	case enum.BillStatusOverdue:
		return bill.Status == enum.BillStatusSent && bill.DueDate.Before(time.Now())
	case enum.BillStatusSent:
		return bill.Status == enum.BillStatusSent && !bill.DueDate.Before(time.Now())
	default:
		return bill.Status == status
	}
}

func (s *stubBillRepo) ListAll(_ context.Context, userID uuid.UUID) ([]entity.Bill, error) {
	var out []entity.Bill
	for _, bill := range s.bills {
		if bill.UserID == userID {
			out = append(out, *bill)
		}
	}
	return out, nil
}

type stubSettingsRepo struct {
	settings *entity.UserSettings
}

func (s *stubSettingsRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*entity.UserSettings, error) {
	if s.settings == nil || s.settings.UserID != userID {
		return nil, nil
	}
	copied := *s.settings
	return &copied, nil
}

func (s *stubSettingsRepo) Create(_ context.Context, settings *entity.UserSettings) error {
	if settings.ID == uuid.Nil {
		settings.ID = uuid.New()
	}
	copied := *settings
	s.settings = &copied
	return nil
}

func (s *stubSettingsRepo) Update(_ context.Context, settings *entity.UserSettings) error {
	copied := *settings
	s.settings = &copied
	return nil
}

func newTestBillService(userID uuid.UUID) (*BillService, *stubBillRepo, *stubSettingsRepo) {
	itemRepo := &stubBillItemRepo{}
	billRepo := &stubBillRepo{itemRepo: itemRepo}
	settingsRepo := &stubSettingsRepo{
		settings: &entity.UserSettings{
			ID:               uuid.New(),
			UserID:           userID,
			CompanyName:      "Acme Traders",
			CurrencySymbol:   "$",
			DefaultTaxRate:   10,
			BillNumberPrefix: "INV-",
			DueDays:          14,
			DateFormat:       "DD/MM/YYYY",
		},
	}
	return NewBillService(billRepo, itemRepo, settingsRepo, nil), billRepo, settingsRepo
}

func TestCreateBill(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, _, _ := newTestBillService(userID)

	t.Run("new bills start as drafts with derived totals", func(t *testing.T) {
		tax := 18.0
		bill, err := svc.CreateBill(ctx, &CreateBillInput{
			UserID:        userID,
			CustomerName:  "Jane Doe",
			TaxPercentage: &tax,
			Items: []BillItemInput{
				{Description: "Consulting", Quantity: 3, Rate: 100},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, enum.BillStatusDraft, bill.Status)
		assert.Equal(t, 300.0, bill.Subtotal)
		assert.Equal(t, 54.0, bill.TaxAmount)
		assert.Equal(t, 354.0, bill.TotalAmount)
		assert.True(t, strings.HasPrefix(bill.BillNumber, "INV-"))
		require.Len(t, bill.Items, 1)
		assert.Equal(t, 300.0, bill.Items[0].Amount)
	})

	t.Run("settings supply tax rate and due date defaults", func(t *testing.T) {
		bill, err := svc.CreateBill(ctx, &CreateBillInput{
			UserID:       userID,
			CustomerName: "Jane Doe",
			Items:        []BillItemInput{{Description: "Work", Quantity: 1, Rate: 100}},
		})

		require.NoError(t, err)
		assert.Equal(t, 10.0, bill.TaxPercentage)
		expectedDue := time.Now().AddDate(0, 0, 14)
		assert.WithinDuration(t, expectedDue, bill.DueDate, time.Minute)
	})

	t.Run("blank description rows are dropped", func(t *testing.T) {
		bill, err := svc.CreateBill(ctx, &CreateBillInput{
			UserID:       userID,
			CustomerName: "Jane Doe",
			Items: []BillItemInput{
				{Description: "Real work", Quantity: 2, Rate: 50},
				{Description: "   ", Quantity: 9, Rate: 9},
			},
		})

		require.NoError(t, err)
		require.Len(t, bill.Items, 1)
		assert.Equal(t, 100.0, bill.Subtotal)
	})

	t.Run("bill numbers are unique per create", func(t *testing.T) {
		a, err := svc.CreateBill(ctx, &CreateBillInput{UserID: userID, CustomerName: "A"})
		require.NoError(t, err)
		b, err := svc.CreateBill(ctx, &CreateBillInput{UserID: userID, CustomerName: "B"})
		require.NoError(t, err)

		assert.NotEqual(t, a.BillNumber, b.BillNumber)
	})
}

func TestUpdateBill(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, _, _ := newTestBillService(userID)

	bill, err := svc.CreateBill(ctx, &CreateBillInput{
		UserID:       userID,
		CustomerName: "Jane Doe",
		Items:        []BillItemInput{{Description: "Old work", Quantity: 1, Rate: 100}},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateBill(ctx, &UpdateBillInput{
		UserID:        userID,
		ID:            bill.ID,
		CustomerName:  "Jane Smith",
		TaxPercentage: 20,
		DueDate:       bill.DueDate,
		Items: []BillItemInput{
			{Description: "New work", Quantity: 2, Rate: 75},
			{Description: "More work", Quantity: 1, Rate: 50},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", updated.CustomerName)
	assert.Equal(t, 200.0, updated.Subtotal)
	assert.Equal(t, 40.0, updated.TaxAmount)
	assert.Equal(t, 240.0, updated.TotalAmount)
	require.Len(t, updated.Items, 2)

	t.Run("other owners cannot update", func(t *testing.T) {
		_, err := svc.UpdateBill(ctx, &UpdateBillInput{
			UserID:       uuid.New(),
			ID:           bill.ID,
			CustomerName: "Mallory",
			DueDate:      bill.DueDate,
		})
		assert.ErrorIs(t, err, apperror.ErrForbidden)
	})
}

func TestDuplicateBill(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, _, _ := newTestBillService(userID)

	source, err := svc.CreateBill(ctx, &CreateBillInput{
		UserID:       userID,
		CustomerName: "Jane Doe",
		Items:        []BillItemInput{{Description: "Work", Quantity: 2, Rate: 150}},
	})
	require.NoError(t, err)

	_, err = svc.UpdateBillStatus(ctx, userID, source.ID, enum.BillStatusSent)
	require.NoError(t, err)

	copy, err := svc.DuplicateBill(ctx, userID, source.ID)

	require.NoError(t, err)
	assert.NotEqual(t, source.ID, copy.ID)
	assert.NotEqual(t, source.BillNumber, copy.BillNumber)
	assert.Equal(t, enum.BillStatusDraft, copy.Status)
	assert.Equal(t, source.TotalAmount, copy.TotalAmount)
	require.Len(t, copy.Items, 1)
	assert.Equal(t, "Work", copy.Items[0].Description)
}

func TestUpdateBillStatus(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, _, _ := newTestBillService(userID)

	newBill := func(t *testing.T) *entity.Bill {
		bill, err := svc.CreateBill(ctx, &CreateBillInput{
			UserID:       userID,
			CustomerName: "Jane Doe",
			Items:        []BillItemInput{{Description: "Work", Quantity: 1, Rate: 100}},
		})
		require.NoError(t, err)
		return bill
	}

	t.Run("draft to sent", func(t *testing.T) {
		bill := newBill(t)
		updated, err := svc.UpdateBillStatus(ctx, userID, bill.ID, enum.BillStatusSent)

		require.NoError(t, err)
		assert.Equal(t, enum.BillStatusSent, updated.Status)
	})

	t.Run("sent to paid", func(t *testing.T) {
		bill := newBill(t)
		_, err := svc.UpdateBillStatus(ctx, userID, bill.ID, enum.BillStatusSent)
		require.NoError(t, err)

		updated, err := svc.UpdateBillStatus(ctx, userID, bill.ID, enum.BillStatusPaid)
		require.NoError(t, err)
		assert.Equal(t, enum.BillStatusPaid, updated.Status)
	})

	t.Run("draft cannot jump to paid", func(t *testing.T) {
		bill := newBill(t)
		_, err := svc.UpdateBillStatus(ctx, userID, bill.ID, enum.BillStatusPaid)

		require.Error(t, err)
		appErr := apperror.GetAppError(err)
		assert.Equal(t, 422, appErr.Code)
	})

	t.Run("paid is terminal", func(t *testing.T) {
		bill := newBill(t)
		_, err := svc.UpdateBillStatus(ctx, userID, bill.ID, enum.BillStatusSent)
		require.NoError(t, err)
		_, err = svc.UpdateBillStatus(ctx, userID, bill.ID, enum.BillStatusPaid)
		require.NoError(t, err)

		_, err = svc.UpdateBillStatus(ctx, userID, bill.ID, enum.BillStatusSent)
		require.Error(t, err)
	})

	t.Run("overdue cannot be stored", func(t *testing.T) {
		bill := newBill(t)
		_, err := svc.UpdateBillStatus(ctx, userID, bill.ID, enum.BillStatusOverdue)
		require.Error(t, err)
	})
}

func TestListBillsOverdueProjection(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, billRepo, _ := newTestBillService(userID)

	past := time.Now().AddDate(0, 0, -5)
	bill, err := svc.CreateBill(ctx, &CreateBillInput{
		UserID:       userID,
		CustomerName: "Late Customer",
		DueDate:      &past,
		Items:        []BillItemInput{{Description: "Work", Quantity: 1, Rate: 100}},
	})
	require.NoError(t, err)

	_, err = svc.UpdateBillStatus(ctx, userID, bill.ID, enum.BillStatusSent)
	require.NoError(t, err)

	result, err := svc.ListBills(ctx, &ListBillsInput{
		UserID:     userID,
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 15},
	})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, enum.BillStatusOverdue, result.Items[0].Status)

	// The stored status stays Sent
	stored, err := billRepo.GetByID(ctx, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.BillStatusSent, stored.Status)
}

func TestListBillsStatusFilterMatchesDisplayStatus(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, _, _ := newTestBillService(userID)

	past := time.Now().AddDate(0, 0, -5)
	future := time.Now().AddDate(0, 0, 5)

	late, err := svc.CreateBill(ctx, &CreateBillInput{
		UserID:       userID,
		CustomerName: "Late Customer",
		DueDate:      &past,
		Items:        []BillItemInput{{Description: "Work", Quantity: 1, Rate: 100}},
	})
	require.NoError(t, err)
	_, err = svc.UpdateBillStatus(ctx, userID, late.ID, enum.BillStatusSent)
	require.NoError(t, err)

	current, err := svc.CreateBill(ctx, &CreateBillInput{
		UserID:       userID,
		CustomerName: "Current Customer",
		DueDate:      &future,
		Items:        []BillItemInput{{Description: "Work", Quantity: 1, Rate: 100}},
	})
	require.NoError(t, err)
	_, err = svc.UpdateBillStatus(ctx, userID, current.ID, enum.BillStatusSent)
	require.NoError(t, err)

	list := func(status enum.BillStatus) *pagination.PaginatedResult[entity.Bill] {
		result, err := svc.ListBills(ctx, &ListBillsInput{
			UserID:     userID,
			Pagination: &pagination.PaginationParams{Page: 1, PerPage: 15},
			Status:     &status,
		})
		require.NoError(t, err)
		return result
	}

	t.Run("overdue filter finds sent bills past their due date", func(t *testing.T) {
		result := list(enum.BillStatusOverdue)
		require.Len(t, result.Items, 1)
		assert.Equal(t, late.ID, result.Items[0].ID)
		assert.Equal(t, enum.BillStatusOverdue, result.Items[0].Status)
	})

	t.Run("sent filter excludes bills already past due", func(t *testing.T) {
		result := list(enum.BillStatusSent)
		require.Len(t, result.Items, 1)
		assert.Equal(t, current.ID, result.Items[0].ID)
		assert.Equal(t, enum.BillStatusSent, result.Items[0].Status)
	})
}

func TestDeleteBill(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, billRepo, _ := newTestBillService(userID)

	bill, err := svc.CreateBill(ctx, &CreateBillInput{
		UserID:       userID,
		CustomerName: "Jane Doe",
		Items:        []BillItemInput{{Description: "Work", Quantity: 1, Rate: 100}},
	})
	require.NoError(t, err)

	t.Run("deleting a missing bill is a no-op", func(t *testing.T) {
		assert.NoError(t, svc.DeleteBill(ctx, userID, uuid.New()))
	})

	t.Run("other owners cannot delete", func(t *testing.T) {
		assert.ErrorIs(t, svc.DeleteBill(ctx, uuid.New(), bill.ID), apperror.ErrForbidden)
	})

	t.Run("delete removes the bill and its items", func(t *testing.T) {
		require.NoError(t, svc.DeleteBill(ctx, userID, bill.ID))

		stored, err := billRepo.GetByID(ctx, bill.ID)
		require.NoError(t, err)
		assert.Nil(t, stored)
		assert.Empty(t, billRepo.itemRepo.items)
	})
}

func TestBulkDeleteBills(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	otherID := uuid.New()
	svc, billRepo, _ := newTestBillService(userID)

	mine, err := svc.CreateBill(ctx, &CreateBillInput{UserID: userID, CustomerName: "Mine"})
	require.NoError(t, err)
	theirs := &entity.Bill{UserID: otherID, BillNumber: "X-1", CustomerName: "Theirs", DueDate: time.Now()}
	require.NoError(t, billRepo.Create(ctx, theirs))

	t.Run("empty id list is a no-op", func(t *testing.T) {
		require.NoError(t, svc.BulkDeleteBills(ctx, userID, nil))
		assert.Len(t, billRepo.bills, 2)
	})

	t.Run("only owned bills are removed", func(t *testing.T) {
		require.NoError(t, svc.BulkDeleteBills(ctx, userID, []uuid.UUID{mine.ID, theirs.ID}))

		assert.Len(t, billRepo.bills, 1)
		assert.Equal(t, otherID, billRepo.bills[0].UserID)
	})
}

func TestGetBillSummary(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, billRepo, _ := newTestBillService(userID)

	add := func(status enum.BillStatus, total float64, due time.Time) {
		require.NoError(t, billRepo.Create(ctx, &entity.Bill{
			UserID:      userID,
			BillNumber:  uuid.New().String(),
			TotalAmount: total,
			Status:      status,
			DueDate:     due,
		}))
	}

	future := time.Now().AddDate(0, 0, 10)
	past := time.Now().AddDate(0, 0, -10)

	add(enum.BillStatusDraft, 100, future)
	add(enum.BillStatusSent, 200, future)
	add(enum.BillStatusSent, 300, past) // overdue
	add(enum.BillStatusPaid, 400, past)

	summary, err := svc.GetBillSummary(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, 4, summary.TotalBills)
	assert.Equal(t, 1000.0, summary.TotalAmount)
	assert.Equal(t, 400.0, summary.PaidAmount)
	assert.Equal(t, 600.0, summary.UnpaidAmount)
	assert.Equal(t, 300.0, summary.OverdueAmount)
	assert.Equal(t, 1, summary.DraftCount)
	assert.Equal(t, 1, summary.SentCount)
	assert.Equal(t, 1, summary.PaidCount)
	assert.Equal(t, 1, summary.OverdueCount)
}

func TestShareBillWhatsApp(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, _, _ := newTestBillService(userID)

	phone := "+1 555 010 2030"
	bill, err := svc.CreateBill(ctx, &CreateBillInput{
		UserID:        userID,
		CustomerName:  "Jane Doe",
		CustomerPhone: &phone,
		Items:         []BillItemInput{{Description: "Work", Quantity: 1, Rate: 100}},
	})
	require.NoError(t, err)

	link, err := svc.ShareBillWhatsApp(ctx, userID, bill.ID)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "https://wa.me/15550102030?text="))
	assert.Contains(t, link, "Jane")
}

func TestShareBillWhatsAppRequiresCustomerPhone(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, _, _ := newTestBillService(userID)

	bill, err := svc.CreateBill(ctx, &CreateBillInput{
		UserID:       userID,
		CustomerName: "No Phone",
	})
	require.NoError(t, err)

	_, err = svc.ShareBillWhatsApp(ctx, userID, bill.ID)

	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)
}

func TestEmailBillRequiresCustomerEmail(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, _, _ := newTestBillService(userID)

	bill, err := svc.CreateBill(ctx, &CreateBillInput{
		UserID:       userID,
		CustomerName: "No Email",
	})
	require.NoError(t, err)

	err = svc.EmailBill(ctx, userID, bill.ID)

	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}
