package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/aluworks-api/internal/domain/cost"
	"github.com/sangkips/aluworks-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Project is a job for a customer, optionally at one of the customer's sites
type Project struct {
	ID                     uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	ProjectNumber          string             `gorm:"size:50;uniqueIndex;not null" json:"project_number"`
	Name                   string             `gorm:"size:255;not null" json:"name"`
	Description            *string            `gorm:"type:text" json:"description,omitempty"`
	Status                 enum.ProjectStatus `gorm:"size:20;not null;default:'Planning'" json:"status"`
	Priority               enum.Priority      `gorm:"size:10;not null;default:'Medium'" json:"priority"`
	CustomerID             uuid.UUID          `gorm:"type:uuid;not null;index" json:"customer_id"`
	SiteID                 *uuid.UUID         `gorm:"type:uuid;index" json:"site_id,omitempty"`
	SiteAddress            *string            `gorm:"type:text" json:"site_address,omitempty"`
	ManagerID              *uuid.UUID         `gorm:"type:uuid;index" json:"manager_id,omitempty"`
	TeamLeadID             *uuid.UUID         `gorm:"type:uuid;index" json:"team_lead_id,omitempty"`
	StartDate              *time.Time         `gorm:"type:date" json:"start_date,omitempty"`
	ExpectedCompletionDate *time.Time         `gorm:"type:date" json:"expected_completion_date,omitempty"`

	LaborCost              decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"labor_cost"`
	ManualCost             decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"manual_cost"`
	WorkmanshipFee         decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"workmanship_fee"`
	OverheadPercentage     decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"overhead_percentage"`
	ProfitMarginPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"profit_margin_percentage"`
	TotalItemsCost         decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"total_items_cost"`
	TotalProjectCost       decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"total_project_cost"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Site     *Site     `gorm:"foreignKey:SiteID" json:"site,omitempty"`
	Manager  *Employee `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
	TeamLead *Employee `gorm:"foreignKey:TeamLeadID" json:"team_lead,omitempty"`
	Budget   *Budget   `gorm:"foreignKey:ProjectID" json:"budget,omitempty"`
}

// BeforeCreate generates a UUID before creating a new project
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Project model
func (Project) TableName() string {
	return "projects"
}

// Markup returns the project's workmanship fee and percentages for the budget model
func (p *Project) Markup() cost.Markup {
	return cost.Markup{
		WorkmanshipFee:         p.WorkmanshipFee,
		OverheadPercentage:     p.OverheadPercentage,
		ProfitMarginPercentage: p.ProfitMarginPercentage,
	}
}

// ApplyCost stores the derived totals of the project record model
func (p *Project) ApplyCost(pc cost.ProjectCost) {
	p.TotalItemsCost = pc.ItemsTotal
	p.TotalProjectCost = pc.Total
}
