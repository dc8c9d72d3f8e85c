package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/domain/enum"
	"github.com/sangkips/billbook-api/pkg/pagination"
)

// BillRepository defines the interface for bill data operations
type BillRepository interface {
	Create(ctx context.Context, bill *entity.Bill) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	GetByBillNumber(ctx context.Context, billNumber string) (*entity.Bill, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Bill, error)
	Update(ctx context.Context, bill *entity.Bill) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.BillStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteMany removes the given bills and their items in one batch.
	// An empty id set is a no-op.
	DeleteMany(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *BillFilterParams) ([]entity.Bill, int64, error)
	// ListAll returns every bill of the owner with items, newest first,
	// for summary aggregation.
	ListAll(ctx context.Context, userID uuid.UUID) ([]entity.Bill, error)
}

// BillFilterParams contains filtering parameters for bill queries
type BillFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.BillStatus
}

// BillItemRepository defines the interface for bill item data operations
type BillItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.BillItem) error
	GetByBillID(ctx context.Context, billID uuid.UUID) ([]entity.BillItem, error)
	DeleteByBillID(ctx context.Context, billID uuid.UUID) error
}
