package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/billbook-api/internal/application/service"
	"github.com/sangkips/billbook-api/internal/domain/enum"
	"github.com/sangkips/billbook-api/internal/presentation/http/dto/response"
	"github.com/sangkips/billbook-api/pkg/pagination"
)

// ExpenseHandler handles expense-related HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// ExpenseRequest represents the create/update expense request body
type ExpenseRequest struct {
	Title    string  `json:"title" binding:"required"`
	Category int     `json:"category"`
	Amount   float64 `json:"amount" binding:"required"`
	Notes    *string `json:"notes"`
	SpentAt  *string `json:"spent_at"`
}

// List handles listing expenses
// @Summary List Expenses
// @Description Get all expenses with pagination and filtering
// @Tags expenses
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param category query int false "Category filter"
// @Success 200 {object} response.APIResponse
// @Router /expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	page := 1
	perPage := 15
	if p := c.Query("page"); p != "" {
		if parsed, err := parsePositiveInt(p); err == nil {
			page = parsed
		}
	}
	if pp := c.Query("per_page"); pp != "" {
		if parsed, err := parsePositiveInt(pp); err == nil {
			perPage = parsed
		}
	}

	var category *enum.ExpenseCategory
	if s := c.Query("category"); s != "" {
		if parsed, err := parseNonNegativeInt(s); err == nil {
			cat := enum.ExpenseCategory(parsed)
			category = &cat
		}
	}

	result, err := h.expenseService.ListExpenses(c.Request.Context(), &service.ListExpensesInput{
		UserID: *userID,
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:   c.Query("search"),
		Category: category,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Expenses retrieved successfully", result)
}

// Summary handles expense spending totals
// @Summary Expense Summary
// @Description Get total spending for the current month and year
// @Tags expenses
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /expenses/summary [get]
func (h *ExpenseHandler) Summary(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	summary, err := h.expenseService.GetExpenseSummary(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense summary retrieved successfully", summary)
}

// Get handles getting a single expense
// @Summary Get Expense
// @Description Get an expense by ID
// @Tags expenses
// @Security BearerAuth
// @Produce json
// @Param id path string true "Expense ID"
// @Success 200 {object} response.APIResponse
// @Router /expenses/{id} [get]
func (h *ExpenseHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid expense ID")
		return
	}

	expense, err := h.expenseService.GetExpense(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense retrieved successfully", expense)
}

// Create handles creating an expense
// @Summary Create Expense
// @Description Create a new expense. SpentAt defaults to today.
// @Tags expenses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ExpenseRequest true "Expense data"
// @Success 201 {object} response.APIResponse
// @Router /expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	category := enum.ExpenseCategory(req.Category)
	if !category.IsValid() {
		response.BadRequest(c, "Invalid expense category")
		return
	}

	input := &service.CreateExpenseInput{
		UserID:   *userID,
		Title:    req.Title,
		Category: category,
		Amount:   req.Amount,
		Notes:    req.Notes,
	}

	if req.SpentAt != nil && *req.SpentAt != "" {
		spentAt, err := time.Parse("2006-01-02", *req.SpentAt)
		if err != nil {
			response.BadRequest(c, "Invalid date format. Use YYYY-MM-DD")
			return
		}
		input.SpentAt = &spentAt
	}

	expense, err := h.expenseService.CreateExpense(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Expense created successfully", expense)
}

// Update handles updating an expense
// @Summary Update Expense
// @Description Update an existing expense
// @Tags expenses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param request body ExpenseRequest true "Expense data"
// @Success 200 {object} response.APIResponse
// @Router /expenses/{id} [put]
func (h *ExpenseHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid expense ID")
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	category := enum.ExpenseCategory(req.Category)
	if !category.IsValid() {
		response.BadRequest(c, "Invalid expense category")
		return
	}

	spentAt := time.Now()
	if req.SpentAt != nil && *req.SpentAt != "" {
		parsed, err := time.Parse("2006-01-02", *req.SpentAt)
		if err != nil {
			response.BadRequest(c, "Invalid date format. Use YYYY-MM-DD")
			return
		}
		spentAt = parsed
	}

	expense, err := h.expenseService.UpdateExpense(c.Request.Context(), &service.UpdateExpenseInput{
		UserID:   *userID,
		ID:       id,
		Title:    req.Title,
		Category: category,
		Amount:   req.Amount,
		Notes:    req.Notes,
		SpentAt:  spentAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expense updated successfully", expense)
}

// Delete handles deleting an expense
// @Summary Delete Expense
// @Description Delete an expense by ID
// @Tags expenses
// @Security BearerAuth
// @Param id path string true "Expense ID"
// @Success 204
// @Router /expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid expense ID")
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), *userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
