package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/billbook-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Bill represents an invoice issued to a customer
type Bill struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	BillNumber    string          `gorm:"size:100;unique;not null" json:"bill_number"`
	CustomerName  string          `gorm:"size:255;not null" json:"customer_name"`
	CustomerEmail *string         `gorm:"size:255" json:"customer_email,omitempty"`
	CustomerPhone *string         `gorm:"size:50" json:"customer_phone,omitempty"`
	Subtotal      float64         `gorm:"type:decimal(15,2);default:0" json:"subtotal"`
	TaxPercentage float64         `gorm:"type:decimal(5,2);default:0" json:"tax_percentage"`
	TaxAmount     float64         `gorm:"type:decimal(15,2);default:0" json:"tax_amount"`
	TotalAmount   float64         `gorm:"type:decimal(15,2);default:0" json:"total_amount"`
	Status        enum.BillStatus `gorm:"default:0" json:"status"`
	Notes         *string         `gorm:"type:text" json:"notes,omitempty"`
	DueDate       time.Time       `gorm:"type:date;not null" json:"due_date"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	User  User       `gorm:"foreignKey:UserID" json:"-"`
	Items []BillItem `gorm:"foreignKey:BillID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new bill
func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Bill model
func (Bill) TableName() string {
	return "bills"
}

// BillItem represents a line item in a bill
type BillItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	BillID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"bill_id"`
	Description string         `gorm:"size:255" json:"description"`
	Quantity    float64        `gorm:"type:decimal(15,2);not null" json:"quantity"`
	Rate        float64        `gorm:"type:decimal(15,2);not null" json:"rate"`
	Amount      float64        `gorm:"type:decimal(15,2);not null" json:"amount"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Bill Bill `gorm:"foreignKey:BillID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new bill item
func (bi *BillItem) BeforeCreate(tx *gorm.DB) error {
	if bi.ID == uuid.Nil {
		bi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BillItem model
func (BillItem) TableName() string {
	return "bill_items"
}
