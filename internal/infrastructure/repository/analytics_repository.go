package repository

import (
	"context"

	"github.com/sangkips/aluworks-api/internal/domain/entity"
	"github.com/sangkips/aluworks-api/internal/domain/enum"
	domainRepo "github.com/sangkips/aluworks-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetProjectStatusCounts(ctx context.Context) ([]domainRepo.StatusCountResult, error) {
	var results []domainRepo.StatusCountResult

	err := conn(ctx, r.db).Model(&entity.Project{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetBudgetCategoryTotals(ctx context.Context) ([]domainRepo.CategoryTotalResult, error) {
	var results []domainRepo.CategoryTotalResult

	err := conn(ctx, r.db).Model(&entity.BudgetItem{}).
		Select("category, COALESCE(SUM(total_price), 0) AS total, COUNT(*) AS item_count").
		Group("category").
		Order("category").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetPipelineValue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal

	err := conn(ctx, r.db).Model(&entity.Project{}).
		Select("SUM(total_project_cost)").
		Where("status NOT IN ?", []enum.ProjectStatus{enum.ProjectStatusCompleted, enum.ProjectStatusCancelled}).
		Row().Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}

	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *analyticsRepository) GetBudgetedValue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal

	err := conn(ctx, r.db).Model(&entity.Budget{}).
		Select("SUM(total_amount)").
		Row().Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}

	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
