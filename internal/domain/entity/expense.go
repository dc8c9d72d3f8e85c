package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/billbook-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Expense represents a business expense entry
type Expense struct {
	ID        uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID            `gorm:"type:uuid;not null;index" json:"user_id"`
	Title     string               `gorm:"size:255;not null" json:"title"`
	Category  enum.ExpenseCategory `gorm:"default:0" json:"category"`
	Amount    float64              `gorm:"type:decimal(15,2);not null" json:"amount"`
	Notes     *string              `gorm:"type:text" json:"notes,omitempty"`
	SpentAt   time.Time            `gorm:"type:date;not null" json:"spent_at"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
	DeletedAt gorm.DeletedAt       `gorm:"index" json:"-"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new expense
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Expense model
func (Expense) TableName() string {
	return "expenses"
}
