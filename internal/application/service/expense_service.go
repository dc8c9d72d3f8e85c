package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/domain/enum"
	"github.com/sangkips/billbook-api/internal/domain/repository"
	"github.com/sangkips/billbook-api/pkg/apperror"
	"github.com/sangkips/billbook-api/pkg/pagination"
)

// ExpenseService handles expense-related operations
type ExpenseService struct {
	expenseRepo repository.ExpenseRepository
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo repository.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo}
}

// CreateExpenseInput represents the input for creating an expense
type CreateExpenseInput struct {
	UserID   uuid.UUID
	Title    string
	Category enum.ExpenseCategory
	Amount   float64
	Notes    *string
	SpentAt  *time.Time
}

// CreateExpense creates a new expense. SpentAt defaults to today.
func (s *ExpenseService) CreateExpense(ctx context.Context, input *CreateExpenseInput) (*entity.Expense, error) {
	spentAt := time.Now()
	if input.SpentAt != nil {
		spentAt = *input.SpentAt
	}

	expense := &entity.Expense{
		UserID:   input.UserID,
		Title:    input.Title,
		Category: input.Category,
		Amount:   input.Amount,
		Notes:    input.Notes,
		SpentAt:  spentAt,
	}

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// GetExpense retrieves an expense by ID
func (s *ExpenseService) GetExpense(ctx context.Context, userID, id uuid.UUID) (*entity.Expense, error) {
	return s.ownedExpense(ctx, userID, id)
}

// ListExpensesInput represents the input for listing expenses
type ListExpensesInput struct {
	UserID     uuid.UUID
	Pagination *pagination.PaginationParams
	Search     string
	Category   *enum.ExpenseCategory
}

// ListExpenses lists expenses with filtering
func (s *ExpenseService) ListExpenses(ctx context.Context, input *ListExpensesInput) (*pagination.PaginatedResult[entity.Expense], error) {
	params := &repository.ExpenseFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Category:   input.Category,
	}

	expenses, total, err := s.expenseRepo.List(ctx, input.UserID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(expenses, pag), nil
}

// UpdateExpenseInput represents the input for updating an expense
type UpdateExpenseInput struct {
	UserID   uuid.UUID
	ID       uuid.UUID
	Title    string
	Category enum.ExpenseCategory
	Amount   float64
	Notes    *string
	SpentAt  time.Time
}

// UpdateExpense updates an existing expense
func (s *ExpenseService) UpdateExpense(ctx context.Context, input *UpdateExpenseInput) (*entity.Expense, error) {
	expense, err := s.ownedExpense(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}

	expense.Title = input.Title
	expense.Category = input.Category
	expense.Amount = input.Amount
	expense.Notes = input.Notes
	expense.SpentAt = input.SpentAt

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// DeleteExpense deletes an expense. Deleting an expense that does not
// exist is not an error.
func (s *ExpenseService) DeleteExpense(ctx context.Context, userID, id uuid.UUID) error {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return nil
	}
	if expense.UserID != userID {
		return apperror.ErrForbidden
	}
	return s.expenseRepo.Delete(ctx, id)
}

// ExpenseSummary aggregates the owner's spending
type ExpenseSummary struct {
	MonthTotal float64 `json:"month_total"`
	YearTotal  float64 `json:"year_total"`
}

// GetExpenseSummary totals spending for the current month and year
func (s *ExpenseService) GetExpenseSummary(ctx context.Context, userID uuid.UUID) (*ExpenseSummary, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	yearStart := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())

	monthTotal, err := s.expenseRepo.SumBetween(ctx, userID, monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}

	yearTotal, err := s.expenseRepo.SumBetween(ctx, userID, yearStart, yearStart.AddDate(1, 0, 0))
	if err != nil {
		return nil, err
	}

	return &ExpenseSummary{MonthTotal: monthTotal, YearTotal: yearTotal}, nil
}

func (s *ExpenseService) ownedExpense(ctx context.Context, userID, id uuid.UUID) (*entity.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, apperror.NewNotFoundError("Expense")
	}
	if expense.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	return expense, nil
}
