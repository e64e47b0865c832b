package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// StatusCountResult is the number of projects in one status
type StatusCountResult struct {
	Status string
	Count  int64
}

// CategoryTotalResult is the sum of budget line totals for one category
type CategoryTotalResult struct {
	Category  string
	Total     decimal.Decimal
	ItemCount int64
}

// AnalyticsRepository defines interface for analytics/aggregation queries
type AnalyticsRepository interface {
	// GetProjectStatusCounts groups live projects by status
	GetProjectStatusCounts(ctx context.Context) ([]StatusCountResult, error)

	// GetBudgetCategoryTotals sums budget item totals per category
	GetBudgetCategoryTotals(ctx context.Context) ([]CategoryTotalResult, error)

	// GetPipelineValue sums total_project_cost for projects not yet completed or cancelled
	GetPipelineValue(ctx context.Context) (decimal.Decimal, error)

	// GetBudgetedValue sums the marked-up totals of every budget
	GetBudgetedValue(ctx context.Context) (decimal.Decimal, error)
}
