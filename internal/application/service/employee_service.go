package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/domain/repository"
	"github.com/sangkips/billbook-api/pkg/apperror"
	"github.com/sangkips/billbook-api/pkg/pagination"
)

// EmployeeService handles employee-related operations
type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(employeeRepo repository.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo}
}

// CreateEmployeeInput represents the input for creating an employee
type CreateEmployeeInput struct {
	UserID        uuid.UUID
	Name          string
	Email         *string
	Phone         *string
	Position      string
	MonthlySalary float64
	JoinedAt      *time.Time
}

// CreateEmployee creates a new employee
func (s *EmployeeService) CreateEmployee(ctx context.Context, input *CreateEmployeeInput) (*entity.Employee, error) {
	employee := &entity.Employee{
		UserID:        input.UserID,
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		Position:      input.Position,
		MonthlySalary: input.MonthlySalary,
		JoinedAt:      input.JoinedAt,
	}

	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// GetEmployee retrieves an employee by ID
func (s *EmployeeService) GetEmployee(ctx context.Context, userID, id uuid.UUID) (*entity.Employee, error) {
	return s.ownedEmployee(ctx, userID, id)
}

// ListEmployees lists employees with pagination and name search
func (s *EmployeeService) ListEmployees(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Employee], error) {
	employees, total, err := s.employeeRepo.List(ctx, userID, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(employees, pag), nil
}

// UpdateEmployeeInput represents the input for updating an employee
type UpdateEmployeeInput struct {
	UserID        uuid.UUID
	ID            uuid.UUID
	Name          string
	Email         *string
	Phone         *string
	Position      string
	MonthlySalary float64
	JoinedAt      *time.Time
}

// UpdateEmployee updates an existing employee
func (s *EmployeeService) UpdateEmployee(ctx context.Context, input *UpdateEmployeeInput) (*entity.Employee, error) {
	employee, err := s.ownedEmployee(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}

	employee.Name = input.Name
	employee.Email = input.Email
	employee.Phone = input.Phone
	employee.Position = input.Position
	employee.MonthlySalary = input.MonthlySalary
	employee.JoinedAt = input.JoinedAt

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// DeleteEmployee deletes an employee. Deleting an employee that does not
// exist is not an error.
func (s *EmployeeService) DeleteEmployee(ctx context.Context, userID, id uuid.UUID) error {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if employee == nil {
		return nil
	}
	if employee.UserID != userID {
		return apperror.ErrForbidden
	}
	return s.employeeRepo.Delete(ctx, id)
}

func (s *EmployeeService) ownedEmployee(ctx context.Context, userID, id uuid.UUID) (*entity.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.NewNotFoundError("Employee")
	}
	if employee.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	return employee, nil
}
