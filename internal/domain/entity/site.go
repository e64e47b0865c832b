package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/aluworks-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Site is a physical work location owned by exactly one customer
type Site struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	Name          string          `gorm:"size:255;not null" json:"name"`
	Address       string          `gorm:"type:text;not null" json:"address"`
	City          *string         `gorm:"size:100" json:"city,omitempty"`
	BudgetCeiling decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"budget_ceiling"`
	Status        enum.SiteStatus `gorm:"size:20;not null;default:'Planning'" json:"status"`
	StartDate     *time.Time      `gorm:"type:date" json:"start_date,omitempty"`
	EndDate       *time.Time      `gorm:"type:date" json:"end_date,omitempty"`
	Notes         *string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

// BeforeCreate generates a UUID before creating a new site
func (s *Site) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Status == "" {
		s.Status = enum.SiteStatusPlanning
	}
	return nil
}

// TableName returns the table name for the Site model
func (Site) TableName() string {
	return "sites"
}

// FullAddress joins the street address and city for bill-to blocks
func (s *Site) FullAddress() string {
	if s.City == nil || *s.City == "" {
		return s.Address
	}
	return s.Address + ", " + *s.City
}
