package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/aluworks-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Employee is a staff member who can manage or lead projects
type Employee struct {
	ID          uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	FullName    string              `gorm:"size:255;not null" json:"full_name"`
	Designation *string             `gorm:"size:100" json:"designation,omitempty"`
	Department  *string             `gorm:"size:100;index" json:"department,omitempty"`
	BadgeNumber *string             `gorm:"size:50;index" json:"badge_number,omitempty"`
	Email       *string             `gorm:"size:255" json:"email,omitempty"`
	Phone       *string             `gorm:"size:50" json:"phone,omitempty"`
	Status      enum.EmployeeStatus `gorm:"size:20;not null;default:'Active'" json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	DeletedAt   gorm.DeletedAt      `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new employee
func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Status == "" {
		e.Status = enum.EmployeeStatusActive
	}
	return nil
}

// TableName returns the table name for the Employee model
func (Employee) TableName() string {
	return "employees"
}
