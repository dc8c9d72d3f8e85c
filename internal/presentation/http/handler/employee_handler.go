package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/billbook-api/internal/application/service"
	"github.com/sangkips/billbook-api/internal/presentation/http/dto/response"
	"github.com/sangkips/billbook-api/pkg/pagination"
)

// EmployeeHandler handles employee-related HTTP requests
type EmployeeHandler struct {
	employeeService *service.EmployeeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// EmployeeRequest represents the create/update employee request body
type EmployeeRequest struct {
	Name          string  `json:"name" binding:"required"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Position      string  `json:"position"`
	MonthlySalary float64 `json:"monthly_salary"`
	JoinedAt      *string `json:"joined_at"`
}

// List handles listing employees
// @Summary List Employees
// @Description Get all employees with pagination and name search
// @Tags employees
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Success 200 {object} response.APIResponse
// @Router /employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
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

	result, err := h.employeeService.ListEmployees(c.Request.Context(), *userID, &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Employees retrieved successfully", result)
}

// Get handles getting a single employee
// @Summary Get Employee
// @Description Get an employee by ID
// @Tags employees
// @Security BearerAuth
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} response.APIResponse
// @Router /employees/{id} [get]
func (h *EmployeeHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid employee ID")
		return
	}

	employee, err := h.employeeService.GetEmployee(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee retrieved successfully", employee)
}

// Create handles creating an employee
// @Summary Create Employee
// @Description Create a new employee
// @Tags employees
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body EmployeeRequest true "Employee data"
// @Success 201 {object} response.APIResponse
// @Router /employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.CreateEmployeeInput{
		UserID:        *userID,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Position:      req.Position,
		MonthlySalary: req.MonthlySalary,
	}

	if req.JoinedAt != nil && *req.JoinedAt != "" {
		joinedAt, err := time.Parse("2006-01-02", *req.JoinedAt)
		if err != nil {
			response.BadRequest(c, "Invalid date format. Use YYYY-MM-DD")
			return
		}
		input.JoinedAt = &joinedAt
	}

	employee, err := h.employeeService.CreateEmployee(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Employee created successfully", employee)
}

// Update handles updating an employee
// @Summary Update Employee
// @Description Update an existing employee
// @Tags employees
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Employee ID"
// @Param request body EmployeeRequest true "Employee data"
// @Success 200 {object} response.APIResponse
// @Router /employees/{id} [put]
func (h *EmployeeHandler) Update(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid employee ID")
		return
	}

	var req EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.UpdateEmployeeInput{
		UserID:        *userID,
		ID:            id,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Position:      req.Position,
		MonthlySalary: req.MonthlySalary,
	}

	if req.JoinedAt != nil && *req.JoinedAt != "" {
		joinedAt, err := time.Parse("2006-01-02", *req.JoinedAt)
		if err != nil {
			response.BadRequest(c, "Invalid date format. Use YYYY-MM-DD")
			return
		}
		input.JoinedAt = &joinedAt
	}

	employee, err := h.employeeService.UpdateEmployee(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee updated successfully", employee)
}

// Delete handles deleting an employee
// @Summary Delete Employee
// @Description Delete an employee by ID
// @Tags employees
// @Security BearerAuth
// @Param id path string true "Employee ID"
// @Success 204
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid employee ID")
		return
	}

	if err := h.employeeService.DeleteEmployee(c.Request.Context(), *userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
