package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/aluworks-api/internal/domain/entity"
	domainRepo "github.com/sangkips/aluworks-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) domainRepo.ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *entity.Project) error {
	return translate(conn(ctx, r.db).Omit(clause.Associations).Create(project).Error)
}

func (r *projectRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	var project entity.Project
	err := conn(ctx, r.db).First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &project, err
}

func (r *projectRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	var project entity.Project
	err := conn(ctx, r.db).
		Preload("Customer").
		Preload("Site").
		Preload("Manager").
		Preload("TeamLead").
		Preload("Budget").
		Preload("Budget.Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		}).
		First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &project, err
}

func (r *projectRepository) Update(ctx context.Context, project *entity.Project) error {
	return translate(conn(ctx, r.db).Omit(clause.Associations).Save(project).Error)
}

func (r *projectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(conn(ctx, r.db).Delete(&entity.Project{}, "id = ?", id).Error)
}

func (r *projectRepository) List(ctx context.Context) ([]entity.Project, error) {
	var projects []entity.Project
	err := conn(ctx, r.db).Preload("Customer").Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func (r *projectRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Project, error) {
	var projects []entity.Project
	err := conn(ctx, r.db).Where("customer_id = ?", customerID).Order("created_at DESC").Find(&projects).Error
	return projects, err
}

func (r *projectRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := conn(ctx, r.db).Model(&entity.Project{}).Count(&total).Error
	return total, err
}

func (r *projectRepository) ClearEmployee(ctx context.Context, employeeID uuid.UUID) error {
	if err := conn(ctx, r.db).Model(&entity.Project{}).Where("manager_id = ?", employeeID).Update("manager_id", nil).Error; err != nil {
		return err
	}
	return conn(ctx, r.db).Model(&entity.Project{}).Where("team_lead_id = ?", employeeID).Update("team_lead_id", nil).Error
}

func (r *projectRepository) ClearSite(ctx context.Context, siteID uuid.UUID) error {
	return conn(ctx, r.db).Model(&entity.Project{}).Where("site_id = ?", siteID).Update("site_id", nil).Error
}

type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository
func NewBudgetRepository(db *gorm.DB) domainRepo.BudgetRepository {
	return &budgetRepository{db: db}
}

func (r *budgetRepository) Create(ctx context.Context, budget *entity.Budget) error {
	return translate(conn(ctx, r.db).Create(budget).Error)
}

func (r *budgetRepository) GetByProjectID(ctx context.Context, projectID uuid.UUID) (*entity.Budget, error) {
	var budget entity.Budget
	err := conn(ctx, r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		}).
		First(&budget, "project_id = ?", projectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &budget, err
}

func (r *budgetRepository) Update(ctx context.Context, budget *entity.Budget) error {
	return translate(conn(ctx, r.db).Omit(clause.Associations).Save(budget).Error)
}

func (r *budgetRepository) DeleteByProjectID(ctx context.Context, projectID uuid.UUID) error {
	db := conn(ctx, r.db)
	if err := db.Where("project_id = ?", projectID).Delete(&entity.BudgetItem{}).Error; err != nil {
		return err
	}
	return db.Where("project_id = ?", projectID).Delete(&entity.Budget{}).Error
}

func (r *budgetRepository) AddItem(ctx context.Context, item *entity.BudgetItem) error {
	return translate(conn(ctx, r.db).Create(item).Error)
}

func (r *budgetRepository) UpdateItem(ctx context.Context, item *entity.BudgetItem) error {
	return translate(conn(ctx, r.db).Save(item).Error)
}

func (r *budgetRepository) DeleteItem(ctx context.Context, budgetID, itemID uuid.UUID) error {
	return conn(ctx, r.db).Where("id = ? AND budget_id = ?", itemID, budgetID).Delete(&entity.BudgetItem{}).Error
}
