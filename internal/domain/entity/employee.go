package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee represents a staff member on the payroll
type Employee struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Email         *string        `gorm:"size:255" json:"email,omitempty"`
	Phone         *string        `gorm:"size:50" json:"phone,omitempty"`
	Position      string         `gorm:"size:255" json:"position"`
	MonthlySalary float64        `gorm:"type:decimal(15,2);default:0" json:"monthly_salary"`
	JoinedAt      *time.Time     `gorm:"type:date" json:"joined_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new employee
func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Employee model
func (Employee) TableName() string {
	return "employees"
}
