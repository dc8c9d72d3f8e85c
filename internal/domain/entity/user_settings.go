package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserSettings represents user-specific billing and formatting settings
type UserSettings struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Company details printed on documents
	CompanyName    string  `gorm:"size:255;default:''" json:"company_name"`
	CompanyAddress *string `gorm:"type:text" json:"company_address,omitempty"`
	CompanyPhone   *string `gorm:"size:50" json:"company_phone,omitempty"`

	// Billing defaults
	CurrencySymbol   string  `gorm:"size:10;default:'$'" json:"currency_symbol"`
	DefaultTaxRate   float64 `gorm:"type:decimal(5,2);default:0" json:"default_tax_rate"`
	BillNumberPrefix string  `gorm:"size:20;default:'BILL-'" json:"bill_number_prefix"`
	DueDays          int     `gorm:"default:30" json:"due_days"`

	// Formatting
	DateFormat string `gorm:"size:20;default:'DD/MM/YYYY'" json:"date_format"`

	// Notifications
	EmailNotifications bool `gorm:"default:true" json:"email_notifications"`
	OverdueAlerts      bool `gorm:"default:true" json:"overdue_alerts"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating new settings
func (s *UserSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the UserSettings model
func (UserSettings) TableName() string {
	return "user_settings"
}
