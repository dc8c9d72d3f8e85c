package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/billbook-api/internal/domain/billing"
	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/domain/enum"
	"github.com/sangkips/billbook-api/internal/domain/repository"
	"github.com/sangkips/billbook-api/pkg/apperror"
	"github.com/sangkips/billbook-api/pkg/document"
	"github.com/sangkips/billbook-api/pkg/email"
	"github.com/sangkips/billbook-api/pkg/pagination"
	"github.com/sangkips/billbook-api/pkg/whatsapp"
)

// BillService handles bill-related operations
type BillService struct {
	billRepo     repository.BillRepository
	billItemRepo repository.BillItemRepository
	settingsRepo repository.SettingsRepository
	emailService *email.EmailService
}

// NewBillService creates a new bill service
func NewBillService(
	billRepo repository.BillRepository,
	billItemRepo repository.BillItemRepository,
	settingsRepo repository.SettingsRepository,
	emailService *email.EmailService,
) *BillService {
	return &BillService{
		billRepo:     billRepo,
		billItemRepo: billItemRepo,
		settingsRepo: settingsRepo,
		emailService: emailService,
	}
}

// BillItemInput represents a line item input
type BillItemInput struct {
	Description string
	Quantity    float64
	Rate        float64
}

// CreateBillInput represents the input for creating a bill
type CreateBillInput struct {
	UserID        uuid.UUID
	CustomerName  string
	CustomerEmail *string
	CustomerPhone *string
	TaxPercentage *float64
	Notes         *string
	DueDate       *time.Time
	Items         []BillItemInput
}

// CreateBill creates a new bill. New bills always start as drafts; the
// bill number, tax rate and due date fall back to the owner's settings
// when not supplied.
func (s *BillService) CreateBill(ctx context.Context, input *CreateBillInput) (*entity.Bill, error) {
	settings, err := s.settingsFor(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	taxRate := settings.DefaultTaxRate
	if input.TaxPercentage != nil {
		taxRate = *input.TaxPercentage
	}

	dueDate := time.Now().AddDate(0, 0, settings.DueDays)
	if input.DueDate != nil {
		dueDate = *input.DueDate
	}

	items := billing.BillableItems(toBillItems(input.Items))
	items, _ = billing.RecalculateItems(items)
	totals := billing.ComputeTotals(items, taxRate)

	bill := &entity.Bill{
		UserID:        input.UserID,
		BillNumber:    billing.NewBillNumber(settings.BillNumberPrefix, time.Now()),
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		Subtotal:      totals.Subtotal,
		TaxPercentage: taxRate,
		TaxAmount:     totals.TaxAmount,
		TotalAmount:   totals.TotalAmount,
		Status:        enum.BillStatusDraft,
		Notes:         input.Notes,
		DueDate:       dueDate,
	}

	if err := s.billRepo.Create(ctx, bill); err != nil {
		return nil, err
	}

	for i := range items {
		items[i].BillID = bill.ID
	}
	if len(items) > 0 {
		if err := s.billItemRepo.CreateBatch(ctx, items); err != nil {
			return nil, err
		}
	}

	return s.billRepo.GetWithItems(ctx, bill.ID)
}

// GetBill retrieves a bill with its items, projected to the display status
func (s *BillService) GetBill(ctx context.Context, userID, id uuid.UUID) (*entity.Bill, error) {
	bill, err := s.ownedBill(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	bill.Status = billing.DeriveDisplayStatus(bill.Status, bill.DueDate, time.Now())
	return bill, nil
}

// ListBillsInput represents the input for listing bills
type ListBillsInput struct {
	UserID     uuid.UUID
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.BillStatus
}

// ListBills lists bills with filtering. Statuses in the result are
// display statuses, so Sent bills past their due date come back Overdue.
func (s *BillService) ListBills(ctx context.Context, input *ListBillsInput) (*pagination.PaginatedResult[entity.Bill], error) {
	params := &repository.BillFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Status:     input.Status,
	}

	bills, total, err := s.billRepo.List(ctx, input.UserID, params)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for i := range bills {
		bills[i].Status = billing.DeriveDisplayStatus(bills[i].Status, bills[i].DueDate, now)
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(bills, pag), nil
}

// UpdateBillInput represents the input for updating a bill
type UpdateBillInput struct {
	UserID        uuid.UUID
	ID            uuid.UUID
	CustomerName  string
	CustomerEmail *string
	CustomerPhone *string
	TaxPercentage float64
	Notes         *string
	DueDate       time.Time
	Items         []BillItemInput
}

// UpdateBill replaces the editable fields and line items of a bill.
// Writes are last-writer-wins; totals are rederived from the submitted
// items rather than trusted from the client.
func (s *BillService) UpdateBill(ctx context.Context, input *UpdateBillInput) (*entity.Bill, error) {
	bill, err := s.ownedBill(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}

	items := billing.BillableItems(toBillItems(input.Items))
	items, _ = billing.RecalculateItems(items)
	totals := billing.ComputeTotals(items, input.TaxPercentage)

	bill.CustomerName = input.CustomerName
	bill.CustomerEmail = input.CustomerEmail
	bill.CustomerPhone = input.CustomerPhone
	bill.Subtotal = totals.Subtotal
	bill.TaxPercentage = input.TaxPercentage
	bill.TaxAmount = totals.TaxAmount
	bill.TotalAmount = totals.TotalAmount
	bill.Notes = input.Notes
	bill.DueDate = input.DueDate
	bill.Items = nil

	if err := s.billRepo.Update(ctx, bill); err != nil {
		return nil, err
	}

	// Replace line items wholesale
	if err := s.billItemRepo.DeleteByBillID(ctx, bill.ID); err != nil {
		return nil, err
	}
	for i := range items {
		items[i].ID = uuid.Nil
		items[i].BillID = bill.ID
	}
	if len(items) > 0 {
		if err := s.billItemRepo.CreateBatch(ctx, items); err != nil {
			return nil, err
		}
	}

	return s.billRepo.GetWithItems(ctx, bill.ID)
}

// DuplicateBill copies a bill into a fresh draft with a new bill number
// and a due date recomputed from the owner's settings
func (s *BillService) DuplicateBill(ctx context.Context, userID, id uuid.UUID) (*entity.Bill, error) {
	source, err := s.ownedBill(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	dup := &entity.Bill{
		UserID:        userID,
		BillNumber:    billing.NewBillNumber(settings.BillNumberPrefix, time.Now()),
		CustomerName:  source.CustomerName,
		CustomerEmail: source.CustomerEmail,
		CustomerPhone: source.CustomerPhone,
		Subtotal:      source.Subtotal,
		TaxPercentage: source.TaxPercentage,
		TaxAmount:     source.TaxAmount,
		TotalAmount:   source.TotalAmount,
		Status:        enum.BillStatusDraft,
		Notes:         source.Notes,
		DueDate:       time.Now().AddDate(0, 0, settings.DueDays),
	}

	if err := s.billRepo.Create(ctx, dup); err != nil {
		return nil, err
	}

	if len(source.Items) > 0 {
		items := make([]entity.BillItem, len(source.Items))
		for i, item := range source.Items {
			items[i] = entity.BillItem{
				BillID:      dup.ID,
				Description: item.Description,
				Quantity:    item.Quantity,
				Rate:        item.Rate,
				Amount:      item.Amount,
			}
		}
		if err := s.billItemRepo.CreateBatch(ctx, items); err != nil {
			return nil, err
		}
	}

	return s.billRepo.GetWithItems(ctx, dup.ID)
}

// UpdateBillStatus moves a bill along its lifecycle. Illegal transitions
// are rejected; Overdue is never stored, so a request to mark a bill
// overdue fails here too.
func (s *BillService) UpdateBillStatus(ctx context.Context, userID, id uuid.UUID, status enum.BillStatus) (*entity.Bill, error) {
	bill, err := s.ownedBill(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if !billing.CanTransition(bill.Status, status) {
		return nil, apperror.NewUnprocessableError(
			fmt.Sprintf("cannot change bill status from %s to %s", bill.Status, status))
	}

	if err := s.billRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	bill.Status = status
	bill.Status = billing.DeriveDisplayStatus(bill.Status, bill.DueDate, time.Now())
	return bill, nil
}

// DeleteBill deletes a bill and its items. Deleting a bill that does not
// exist is not an error.
func (s *BillService) DeleteBill(ctx context.Context, userID, id uuid.UUID) error {
	bill, err := s.billRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if bill == nil {
		return nil
	}
	if bill.UserID != userID {
		return apperror.ErrForbidden
	}
	return s.billRepo.Delete(ctx, id)
}

// BulkDeleteBills deletes the given bills in one batch, skipping ids the
// caller does not own. An empty id list is a no-op.
func (s *BillService) BulkDeleteBills(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	return s.billRepo.DeleteMany(ctx, userID, ids)
}

// BillSummary aggregates the owner's bills by display status
type BillSummary struct {
	TotalBills    int     `json:"total_bills"`
	TotalAmount   float64 `json:"total_amount"`
	PaidAmount    float64 `json:"paid_amount"`
	UnpaidAmount  float64 `json:"unpaid_amount"`
	OverdueAmount float64 `json:"overdue_amount"`
	DraftCount    int     `json:"draft_count"`
	SentCount     int     `json:"sent_count"`
	PaidCount     int     `json:"paid_count"`
	OverdueCount  int     `json:"overdue_count"`
}

// GetBillSummary computes dashboard totals over every bill of the owner.
// Overdue is counted from the display status, so the summary and the list
// view always agree.
func (s *BillService) GetBillSummary(ctx context.Context, userID uuid.UUID) (*BillSummary, error) {
	bills, err := s.billRepo.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	summary := &BillSummary{TotalBills: len(bills)}
	for _, bill := range bills {
		summary.TotalAmount += bill.TotalAmount

		switch billing.DeriveDisplayStatus(bill.Status, bill.DueDate, now) {
		case enum.BillStatusDraft:
			summary.DraftCount++
			summary.UnpaidAmount += bill.TotalAmount
		case enum.BillStatusSent:
			summary.SentCount++
			summary.UnpaidAmount += bill.TotalAmount
		case enum.BillStatusPaid:
			summary.PaidCount++
			summary.PaidAmount += bill.TotalAmount
		case enum.BillStatusOverdue:
			summary.OverdueCount++
			summary.UnpaidAmount += bill.TotalAmount
			summary.OverdueAmount += bill.TotalAmount
		}
	}

	return summary, nil
}

// ExportBillPDF renders a bill as a PDF using the owner's branding
func (s *BillService) ExportBillPDF(ctx context.Context, userID, id uuid.UUID) ([]byte, string, error) {
	bill, branding, err := s.billForDocument(ctx, userID, id)
	if err != nil {
		return nil, "", err
	}

	data, err := document.RenderBillPDF(bill, branding)
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("%s.pdf", bill.BillNumber), nil
}

// ExportBillExcel renders a bill as an Excel workbook using the owner's branding
func (s *BillService) ExportBillExcel(ctx context.Context, userID, id uuid.UUID) ([]byte, string, error) {
	bill, branding, err := s.billForDocument(ctx, userID, id)
	if err != nil {
		return nil, "", err
	}

	data, err := document.RenderBillExcel(bill, branding)
	if err != nil {
		return nil, "", err
	}
	return data, fmt.Sprintf("%s.xlsx", bill.BillNumber), nil
}

// ShareBillWhatsApp builds a wa.me link carrying the bill summary. The
// bill must have a customer phone on file.
func (s *BillService) ShareBillWhatsApp(ctx context.Context, userID, id uuid.UUID) (string, error) {
	bill, branding, err := s.billForDocument(ctx, userID, id)
	if err != nil {
		return "", err
	}

	if bill.CustomerPhone == nil || *bill.CustomerPhone == "" {
		return "", apperror.NewUnprocessableError("Bill has no customer phone number")
	}

	msg := whatsapp.ShareMessage{
		CompanyName:    branding.CompanyName,
		CustomerName:   bill.CustomerName,
		BillNumber:     bill.BillNumber,
		TotalAmount:    bill.TotalAmount,
		CurrencySymbol: branding.CurrencySymbol,
		DueDate:        branding.FormatDate(bill.DueDate),
		Status:         bill.Status.String(),
	}

	return whatsapp.ShareLink(*bill.CustomerPhone, msg), nil
}

// EmailBill sends the bill to the customer with the PDF attached. The
// bill must have a customer email on file.
func (s *BillService) EmailBill(ctx context.Context, userID, id uuid.UUID) error {
	bill, branding, err := s.billForDocument(ctx, userID, id)
	if err != nil {
		return err
	}

	if bill.CustomerEmail == nil || *bill.CustomerEmail == "" {
		return apperror.NewBadRequestError("Bill has no customer email address")
	}

	pdf, err := document.RenderBillPDF(bill, branding)
	if err != nil {
		return err
	}

	data := email.BillEmailData{
		CompanyName:    branding.CompanyName,
		CustomerName:   bill.CustomerName,
		BillNumber:     bill.BillNumber,
		TotalAmount:    fmt.Sprintf("%.2f", bill.TotalAmount),
		DueDate:        branding.FormatDate(bill.DueDate),
		Status:         bill.Status.String(),
		CurrencySymbol: branding.CurrencySymbol,
	}
	return s.emailService.SendBillEmail(*bill.CustomerEmail, data, pdf)
}

// ownedBill fetches a bill with items and verifies ownership
func (s *BillService) ownedBill(ctx context.Context, userID, id uuid.UUID) (*entity.Bill, error) {
	bill, err := s.billRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	if bill.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	return bill, nil
}

// billForDocument fetches a bill projected to display status plus the
// owner's branding details
func (s *BillService) billForDocument(ctx context.Context, userID, id uuid.UUID) (*entity.Bill, document.Branding, error) {
	bill, err := s.ownedBill(ctx, userID, id)
	if err != nil {
		return nil, document.Branding{}, err
	}
	bill.Status = billing.DeriveDisplayStatus(bill.Status, bill.DueDate, time.Now())

	settings, err := s.settingsFor(ctx, userID)
	if err != nil {
		return nil, document.Branding{}, err
	}

	branding := document.Branding{
		CompanyName:    settings.CompanyName,
		CurrencySymbol: settings.CurrencySymbol,
		DateFormat:     settings.DateFormat,
	}
	if settings.CompanyAddress != nil {
		branding.CompanyAddress = *settings.CompanyAddress
	}
	if settings.CompanyPhone != nil {
		branding.CompanyPhone = *settings.CompanyPhone
	}
	if branding.CompanyName == "" {
		branding.CompanyName = "Billbook"
	}
	return bill, branding, nil
}

// settingsFor returns the owner's settings, falling back to defaults when
// none have been saved yet
func (s *BillService) settingsFor(ctx context.Context, userID uuid.UUID) (*entity.UserSettings, error) {
	settings, err := s.settingsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = &entity.UserSettings{
			UserID:           userID,
			CurrencySymbol:   "$",
			BillNumberPrefix: "BILL-",
			DueDays:          30,
			DateFormat:       "DD/MM/YYYY",
		}
	}
	return settings, nil
}

func toBillItems(inputs []BillItemInput) []entity.BillItem {
	items := make([]entity.BillItem, len(inputs))
	for i, in := range inputs {
		items[i] = entity.BillItem{
			Description: in.Description,
			Quantity:    in.Quantity,
			Rate:        in.Rate,
		}
	}
	return items
}
