package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/aluworks-api/internal/domain/cost"
	"github.com/sangkips/aluworks-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is the itemized estimate of a project. It stores the last computed
// breakdown so lists and exports do not recompute it.
type Budget struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	ProjectID uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex" json:"project_id"`
	Name      string            `gorm:"size:255;not null" json:"name"`
	Status    enum.BudgetStatus `gorm:"size:20;not null;default:'Draft'" json:"status"`
	Notes     *string           `gorm:"type:text" json:"notes,omitempty"`

	MaterialsCost          decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"materials_cost"`
	LaborCost              decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"labor_cost"`
	EquipmentCost          decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"equipment_cost"`
	OtherCost              decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"other_cost"`
	WorkmanshipFee         decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"workmanship_fee"`
	Subtotal               decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"subtotal"`
	OverheadPercentage     decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"overhead_percentage"`
	OverheadAmount         decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"overhead_amount"`
	ProfitMarginPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"profit_margin_percentage"`
	ProfitAmount           decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"profit_amount"`
	TotalAmount            decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"total_amount"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items []BudgetItem `gorm:"foreignKey:BudgetID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new budget
func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.Status == "" {
		b.Status = enum.BudgetStatusDraft
	}
	return nil
}

// TableName returns the table name for the Budget model
func (Budget) TableName() string {
	return "budgets"
}

// ApplyBreakdown copies a computed breakdown onto the stored columns
func (b *Budget) ApplyBreakdown(bd cost.Breakdown) {
	b.MaterialsCost = bd.Materials
	b.LaborCost = bd.Labor
	b.EquipmentCost = bd.Equipment
	b.OtherCost = bd.Other
	b.WorkmanshipFee = bd.WorkmanshipFee
	b.Subtotal = bd.Subtotal
	b.OverheadPercentage = bd.OverheadPercentage
	b.OverheadAmount = bd.Overhead
	b.ProfitMarginPercentage = bd.ProfitMarginPercentage
	b.ProfitAmount = bd.Profit
	b.TotalAmount = bd.Total
}

// BudgetItem is one stored line item. ProjectID duplicates the budget's
// project so items can be queried per project directly.
type BudgetItem struct {
	ID          uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	BudgetID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"budget_id"`
	ProjectID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"project_id"`
	Category    enum.ItemCategory `gorm:"size:20;not null" json:"category"`
	Description string            `gorm:"size:500;not null" json:"description"`
	Unit        *string           `gorm:"size:20" json:"unit,omitempty"`
	Quantity    decimal.Decimal   `gorm:"type:decimal(15,3);not null;default:0" json:"quantity"`
	UnitPrice   decimal.Decimal   `gorm:"type:decimal(15,2);not null;default:0" json:"unit_price"`
	TotalPrice  decimal.Decimal   `gorm:"type:decimal(15,2);not null;default:0" json:"total_price"`
	Position    int               `gorm:"not null;default:0" json:"position"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new budget item
func (i *BudgetItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// BeforeSave keeps total_price equal to quantity * unit_price
func (i *BudgetItem) BeforeSave(tx *gorm.DB) error {
	i.TotalPrice = i.LineItem().LineTotal()
	return nil
}

// TableName returns the table name for the BudgetItem model
func (BudgetItem) TableName() string {
	return "budget_items"
}

// LineItem converts the stored row into the cost model's value type
func (i BudgetItem) LineItem() cost.LineItem {
	return cost.LineItem{
		Category:    i.Category,
		Description: i.Description,
		Quantity:    i.Quantity,
		UnitPrice:   i.UnitPrice,
	}
}

// LineItems converts stored rows preserving their order
func LineItems(items []BudgetItem) []cost.LineItem {
	out := make([]cost.LineItem, len(items))
	for idx, item := range items {
		out[idx] = item.LineItem()
	}
	return out
}
