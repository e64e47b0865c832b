package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetItemEditsRecomputeTotals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.project(t, f.customer(t, "Aminata Kamara").ID, &CreateProjectInput{
		Name:               "Curtain wall",
		LaborCost:          dec("100"),
		OverheadPercentage: dec("10"),
		Items:              scenarioItems(),
	})

	added, err := f.budgets.AddItem(ctx, p.ID, ItemInput{Category: "Tool", Description: "Rivet gun hire", Quantity: dec("3"), UnitPrice: dec("12.333")})
	require.NoError(t, err)
	assert.Equal(t, 2, added.Position)
	assert.Equal(t, "12.33", added.UnitPrice.StringFixed(2))
	assert.Equal(t, "36.99", added.TotalPrice.StringFixed(2))

	summary, err := f.budgets.Breakdown(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.ItemCount)
	assert.Equal(t, "36.99", summary.Breakdown.Equipment.StringFixed(2))
	assert.Equal(t, "236.99", summary.Breakdown.Subtotal.StringFixed(2))
	assert.Equal(t, "23.70", summary.Breakdown.Overhead.StringFixed(2))
	assert.Equal(t, "336.99", summary.ProjectCost.Total.StringFixed(2))

	stored, err := f.projects.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "236.99", stored.TotalItemsCost.StringFixed(2))
	assert.Equal(t, "336.99", stored.TotalProjectCost.StringFixed(2))
	assert.Equal(t, "260.69", stored.Budget.TotalAmount.StringFixed(2))

	updated, err := f.budgets.UpdateItem(ctx, p.ID, added.ID, UpdateItemInput{Quantity: ptrDec("1")})
	require.NoError(t, err)
	assert.Equal(t, "12.33", updated.TotalPrice.StringFixed(2))
	assert.Equal(t, "Rivet gun hire", updated.Description)

	require.NoError(t, f.budgets.DeleteItem(ctx, p.ID, added.ID))
	stored, err = f.projects.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "200.00", stored.TotalItemsCost.StringFixed(2))
	assert.Equal(t, "300.00", stored.TotalProjectCost.StringFixed(2))
	assert.Len(t, stored.Budget.Items, 2)

	err = f.budgets.DeleteItem(ctx, p.ID, added.ID)
	requireAppError(t, err, http.StatusNotFound)
}

func TestBudgetItemRejectsInvalidInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.project(t, f.customer(t, "A").ID, nil)

	_, err := f.budgets.AddItem(ctx, p.ID, ItemInput{Category: "Material", Description: "Glass", Quantity: dec("1"), UnitPrice: dec("-5")})
	appErr := requireAppError(t, err, http.StatusUnprocessableEntity)
	assert.Equal(t, "unit_price", appErr.Errors[0].Field)

	_, err = f.budgets.UpdateItem(ctx, p.ID, p.Budget.Items[0].ID, UpdateItemInput{Category: str("Food")})
	appErr = requireAppError(t, err, http.StatusUnprocessableEntity)
	assert.Equal(t, "category", appErr.Errors[0].Field)

	_, err = f.budgets.AddItem(ctx, uuid.New(), ItemInput{Category: "Material", Description: "Glass"})
	requireAppError(t, err, http.StatusNotFound)
}

func TestUpdateBudgetMarkup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.project(t, f.customer(t, "A").ID, nil)

	budget, err := f.budgets.UpdateBudget(ctx, &UpdateBudgetInput{
		ProjectID:              p.ID,
		Name:                   str("Final quote"),
		Status:                 str("approved"),
		WorkmanshipFee:         ptrDec("50"),
		OverheadPercentage:     ptrDec("10"),
		ProfitMarginPercentage: ptrDec("20"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Final quote", budget.Name)
	assert.Equal(t, "Approved", budget.Status.String())
	assert.Equal(t, "250.00", budget.Subtotal.StringFixed(2))
	assert.Equal(t, "25.00", budget.OverheadAmount.StringFixed(2))
	assert.Equal(t, "55.00", budget.ProfitAmount.StringFixed(2))
	assert.Equal(t, "330.00", budget.TotalAmount.StringFixed(2))

	// The markup never reaches the project record total
	stored, err := f.projects.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "200.00", stored.TotalProjectCost.StringFixed(2))
	assert.Equal(t, "20.00", stored.ProfitMarginPercentage.StringFixed(2))

	_, err = f.budgets.UpdateBudget(ctx, &UpdateBudgetInput{ProjectID: p.ID, Status: str("Shipped")})
	requireAppError(t, err, http.StatusUnprocessableEntity)
}

func TestGetBudgetFiltersItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.project(t, f.customer(t, "A").ID, nil)

	budget, err := f.budgets.GetBudget(ctx, p.ID, ItemFilter{Category: "labor"})
	require.NoError(t, err)
	require.Len(t, budget.Items, 1)
	assert.Equal(t, "Window fitting", budget.Items[0].Description)
	assert.Equal(t, "200.00", budget.Subtotal.StringFixed(2))

	budget, err = f.budgets.GetBudget(ctx, p.ID, ItemFilter{Search: "profile", Category: "all"})
	require.NoError(t, err)
	require.Len(t, budget.Items, 1)
	assert.Equal(t, "Material", budget.Items[0].Category.String())
}

func TestEstimate(t *testing.T) {
	f := newFixture(t)

	est, err := f.budgets.Estimate(&EstimateInput{
		Items:                  scenarioItems(),
		OverheadPercentage:     dec("10"),
		ProfitMarginPercentage: dec("15"),
	})
	require.NoError(t, err)
	require.Len(t, est.Lines, 2)
	assert.Equal(t, "100.00", est.Lines[0].Total.StringFixed(2))
	assert.Equal(t, "20.00", est.Breakdown.Overhead.StringFixed(2))
	assert.Equal(t, "33.00", est.Breakdown.Profit.StringFixed(2))
	assert.Equal(t, "253.00", est.Breakdown.Total.StringFixed(2))

	_, err = f.budgets.Estimate(&EstimateInput{WorkmanshipFee: dec("-1")})
	appErr := requireAppError(t, err, http.StatusUnprocessableEntity)
	assert.Equal(t, "workmanship_fee", appErr.Errors[0].Field)

	_, err = f.budgets.Estimate(&EstimateInput{Items: []ItemInput{{Category: "Permit", Description: " "}}})
	appErr = requireAppError(t, err, http.StatusUnprocessableEntity)
	assert.Equal(t, "items[0].description", appErr.Errors[0].Field)
}
