package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkshopProfile is the single row describing the business itself. Receipts
// and outgoing mail take their header from it.
type WorkshopProfile struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	Address       string    `gorm:"type:text" json:"address"`
	Phone         string    `gorm:"size:50" json:"phone"`
	Email         string    `gorm:"size:255" json:"email"`
	Currency      string    `gorm:"size:10;default:'SLE'" json:"currency"`
	Timezone      string    `gorm:"size:50;default:'Africa/Freetown'" json:"timezone"`
	ReceiptFooter string    `gorm:"size:255" json:"receipt_footer"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating the profile
func (p *WorkshopProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the WorkshopProfile model
func (WorkshopProfile) TableName() string {
	return "workshop_profiles"
}

// ReceiptHeader returns the identity block printed at the top of documents
func (p *WorkshopProfile) ReceiptHeader() ReceiptHeader {
	return ReceiptHeader{
		Name:    p.Name,
		Address: p.Address,
		Phone:   p.Phone,
		Email:   p.Email,
	}
}
