package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/aluworks-api/internal/domain/entity"
)

// ProjectRepository defines the interface for project data operations
type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Project, error)
	// GetWithDetails loads customer, site, manager, team lead and budget items
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Project, error)
	Update(ctx context.Context, project *entity.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns projects newest first with their customers loaded
	List(ctx context.Context) ([]entity.Project, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Project, error)
	Count(ctx context.Context) (int64, error)
	// ClearEmployee unassigns the employee wherever it is manager or team lead
	ClearEmployee(ctx context.Context, employeeID uuid.UUID) error
	// ClearSite detaches the site from its projects; the copied site address stays
	ClearSite(ctx context.Context, siteID uuid.UUID) error
}

// BudgetRepository defines the interface for budget and line item operations
type BudgetRepository interface {
	// Create stores the budget and any items attached to it
	Create(ctx context.Context, budget *entity.Budget) error
	// GetByProjectID returns the budget with items in position order
	GetByProjectID(ctx context.Context, projectID uuid.UUID) (*entity.Budget, error)
	// Update saves the budget columns only; items are written separately
	Update(ctx context.Context, budget *entity.Budget) error
	DeleteByProjectID(ctx context.Context, projectID uuid.UUID) error

	AddItem(ctx context.Context, item *entity.BudgetItem) error
	UpdateItem(ctx context.Context, item *entity.BudgetItem) error
	DeleteItem(ctx context.Context, budgetID, itemID uuid.UUID) error
}
