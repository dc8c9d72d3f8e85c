package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/billbook-api/internal/domain/entity"
	"github.com/sangkips/billbook-api/internal/domain/enum"
	domainRepo "github.com/sangkips/billbook-api/internal/domain/repository"
	"gorm.io/gorm"
)

type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *gorm.DB) domainRepo.BillRepository {
	return &billRepository{db: db}
}

func (r *billRepository) Create(ctx context.Context, bill *entity.Bill) error {
	return r.db.WithContext(ctx).Create(bill).Error
}

func (r *billRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.db.WithContext(ctx).First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) GetByBillNumber(ctx context.Context, billNumber string) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.db.WithContext(ctx).First(&bill, "bill_number = ?", billNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Bill, error) {
	var bill entity.Bill
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &bill, err
}

func (r *billRepository) Update(ctx context.Context, bill *entity.Bill) error {
	return r.db.WithContext(ctx).Save(bill).Error
}

func (r *billRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.BillStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Bill{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *billRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.BillItem{}, "bill_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Bill{}, "id = ?", id).Error
	})
}

func (r *billRepository) DeleteMany(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.BillItem{}, "bill_id IN ?", ids).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Bill{}, "id IN ? AND user_id = ?", ids, userID).Error
	})
}

func (r *billRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.BillFilterParams) ([]entity.Bill, int64, error) {
	var bills []entity.Bill
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Bill{}).Where("user_id = ?", userID)

	if params.Search != "" {
		query = query.Where("bill_number ILIKE ? OR customer_name ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		// Overdue is never stored; it is a sent bill past its due date.
		// Filters match the display status the rows come back with.
		switch *params.Status {
		case enum.BillStatusOverdue:
			query = query.Where("status = ? AND due_date < ?", enum.BillStatusSent, time.Now())
		case enum.BillStatusSent:
			query = query.Where("status = ? AND due_date >= ?", enum.BillStatusSent, time.Now())
		default:
			query = query.Where("status = ?", *params.Status)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Items").
		Order("created_at DESC").
		Find(&bills).Error

	return bills, total, err
}

func (r *billRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]entity.Bill, error) {
	var bills []entity.Bill
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bills).Error
	return bills, err
}

type billItemRepository struct {
	db *gorm.DB
}

// NewBillItemRepository creates a new bill item repository
func NewBillItemRepository(db *gorm.DB) domainRepo.BillItemRepository {
	return &billItemRepository{db: db}
}

func (r *billItemRepository) CreateBatch(ctx context.Context, items []entity.BillItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *billItemRepository) GetByBillID(ctx context.Context, billID uuid.UUID) ([]entity.BillItem, error) {
	var items []entity.BillItem
	err := r.db.WithContext(ctx).
		Where("bill_id = ?", billID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *billItemRepository) DeleteByBillID(ctx context.Context, billID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.BillItem{}, "bill_id = ?", billID).Error
}
