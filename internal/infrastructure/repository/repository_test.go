package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/aluworks-api/internal/domain/entity"
	"github.com/sangkips/aluworks-api/internal/domain/enum"
	"github.com/sangkips/aluworks-api/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedCustomer(t *testing.T, db *gorm.DB, name string) *entity.Customer {
	t.Helper()
	c := &entity.Customer{FullName: name}
	require.NoError(t, NewCustomerRepository(db).Create(context.Background(), c))
	return c
}

func seedProject(t *testing.T, db *gorm.DB, customerID uuid.UUID, number string, status enum.ProjectStatus, total string) *entity.Project {
	t.Helper()
	p := &entity.Project{
		ProjectNumber:    number,
		Name:             "Shopfront " + number,
		Status:           status,
		Priority:         enum.PriorityMedium,
		CustomerID:       customerID,
		TotalProjectCost: decimal.RequireFromString(total),
	}
	require.NoError(t, NewProjectRepository(db).Create(context.Background(), p))
	return p
}

func TestTransactorRollsBackOnError(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	customers := NewCustomerRepository(db)
	boom := errors.New("boom")

	err := NewTransactor(db).WithinTransaction(ctx, func(ctx context.Context) error {
		require.NoError(t, customers.Create(ctx, &entity.Customer{FullName: "Aminata Kamara"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	total, err := customers.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestTransactorCommitsAndReusesOuterTransaction(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	tx := NewTransactor(db)
	customers := NewCustomerRepository(db)

	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := customers.Create(ctx, &entity.Customer{FullName: "Outer"}); err != nil {
			return err
		}
		return tx.WithinTransaction(ctx, func(ctx context.Context) error {
			return customers.Create(ctx, &entity.Customer{FullName: "Inner"})
		})
	})
	require.NoError(t, err)

	list, err := customers.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Inner", list[0].FullName)
	assert.Equal(t, "Outer", list[1].FullName)
}

func TestCustomerHasProjects(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewCustomerRepository(db)

	busy := seedCustomer(t, db, "Busy")
	idle := seedCustomer(t, db, "Idle")
	seedProject(t, db, busy.ID, "PRJ-1", enum.ProjectStatusPlanning, "100")

	has, err := repo.HasProjects(ctx, busy.ID)
	require.NoError(t, err)
	assert.True(t, has)

	has, err = repo.HasProjects(ctx, idle.ID)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestGetByIDMissingReturnsNil(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	c, err := NewCustomerRepository(db).GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, c)

	p, err := NewProjectRepository(db).GetWithDetails(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestBudgetItemsKeepPositionOrder(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	customer := seedCustomer(t, db, "Mohamed Sesay")
	project := seedProject(t, db, customer.ID, "PRJ-2", enum.ProjectStatusPlanning, "0")
	budgets := NewBudgetRepository(db)

	budget := &entity.Budget{
		ProjectID: project.ID,
		Name:      "Windows",
		Items: []entity.BudgetItem{
			{ProjectID: project.ID, Category: enum.ItemCategoryMaterial, Description: "Profiles", Quantity: decimal.NewFromInt(4), UnitPrice: decimal.RequireFromString("12.50"), Position: 1},
			{ProjectID: project.ID, Category: enum.ItemCategoryLabor, Description: "Fitting", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(80), Position: 0},
		},
	}
	require.NoError(t, budgets.Create(ctx, budget))

	got, err := budgets.GetByProjectID(ctx, project.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, enum.BudgetStatusDraft, got.Status)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Fitting", got.Items[0].Description)
	assert.Equal(t, "Profiles", got.Items[1].Description)
	assert.Equal(t, "50.00", got.Items[1].TotalPrice.StringFixed(2))

	item := got.Items[1]
	item.Quantity = decimal.NewFromInt(2)
	require.NoError(t, budgets.UpdateItem(ctx, &item))
	reloaded, err := budgets.GetByProjectID(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 2)
	assert.Equal(t, "25.00", reloaded.Items[1].TotalPrice.StringFixed(2))

	require.NoError(t, budgets.DeleteItem(ctx, budget.ID, item.ID))
	reloaded, err = budgets.GetByProjectID(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Items, 1)
	assert.Equal(t, "Fitting", reloaded.Items[0].Description)

	detailed, err := NewProjectRepository(db).GetWithDetails(ctx, project.ID)
	require.NoError(t, err)
	require.NotNil(t, detailed.Budget)
	assert.Len(t, detailed.Budget.Items, 1)
	assert.Equal(t, customer.FullName, detailed.Customer.FullName)

	require.NoError(t, budgets.DeleteByProjectID(ctx, project.ID))
	gone, err := budgets.GetByProjectID(ctx, project.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestAnalyticsAggregates(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	customer := seedCustomer(t, db, "Fatmata Conteh")
	seedProject(t, db, customer.ID, "PRJ-A", enum.ProjectStatusPlanning, "100.50")
	seedProject(t, db, customer.ID, "PRJ-B", enum.ProjectStatusInProgress, "200")
	done := seedProject(t, db, customer.ID, "PRJ-C", enum.ProjectStatusCompleted, "999")

	require.NoError(t, NewBudgetRepository(db).Create(ctx, &entity.Budget{
		ProjectID:   done.ID,
		Name:        "Done",
		TotalAmount: decimal.NewFromInt(300),
		Items: []entity.BudgetItem{
			{ProjectID: done.ID, Category: enum.ItemCategoryMaterial, Description: "Glass", Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(40)},
			{ProjectID: done.ID, Category: enum.ItemCategoryMaterial, Description: "Seal", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(20)},
			{ProjectID: done.ID, Category: enum.ItemCategoryLabor, Description: "Install", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(50)},
		},
	}))

	repo := NewAnalyticsRepository(db)

	counts, err := repo.GetProjectStatusCounts(ctx)
	require.NoError(t, err)
	byStatus := map[string]int64{}
	for _, c := range counts {
		byStatus[c.Status] = c.Count
	}
	assert.Equal(t, map[string]int64{"Planning": 1, "In Progress": 1, "Completed": 1}, byStatus)

	totals, err := repo.GetBudgetCategoryTotals(ctx)
	require.NoError(t, err)
	byCategory := map[string]string{}
	for _, c := range totals {
		byCategory[c.Category] = c.Total.StringFixed(2)
	}
	assert.Equal(t, map[string]string{"Material": "100.00", "Labor": "50.00"}, byCategory)

	pipeline, err := repo.GetPipelineValue(ctx)
	require.NoError(t, err)
	assert.Equal(t, "300.50", pipeline.StringFixed(2))

	budgeted, err := repo.GetBudgetedValue(ctx)
	require.NoError(t, err)
	assert.Equal(t, "300.00", budgeted.StringFixed(2))
}

func TestAnalyticsEmptyDatabase(t *testing.T) {
	repo := NewAnalyticsRepository(testutil.NewDB(t))
	pipeline, err := repo.GetPipelineValue(context.Background())
	require.NoError(t, err)
	assert.True(t, pipeline.IsZero())
}

func TestIdempotencyKeysAreScopedBySubject(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewIdempotencyRepository(db)

	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "k1", Subject: "user-a", Endpoint: "POST /api/v1/projects", ResponseCode: 201,
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	got, err := repo.GetByKey(ctx, "k1", "user-b")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.GetByKey(ctx, "k1", "user-a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.IsExpired())

	removed, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}
