package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/aluworks-api/internal/domain/cost"
	"github.com/sangkips/aluworks-api/internal/domain/entity"
	"github.com/sangkips/aluworks-api/internal/domain/enum"
	"github.com/sangkips/aluworks-api/internal/domain/repository"
	"github.com/sangkips/aluworks-api/pkg/apperror"
	"github.com/sangkips/aluworks-api/pkg/filter"
	"github.com/sangkips/aluworks-api/pkg/money"
	"github.com/shopspring/decimal"
)

var maxPercentage = decimal.NewFromInt(1000)

const quantityScale = 3

// percentage accepts values in [0, 1000), the range of a decimal(5,2) column
func percentage(field string, d decimal.Decimal) error {
	if err := checkAmount(field, d); err != nil {
		return err
	}
	if d.GreaterThanOrEqual(maxPercentage) {
		return apperror.NewFieldError(field, "must be less than 1000")
	}
	return nil
}

// ItemInput is one budget line as submitted
type ItemInput struct {
	Category    string
	Description string
	Unit        *string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// lineItem validates the input. prefix qualifies field names, e.g. "items[2].".
func (in ItemInput) lineItem(prefix string) (cost.LineItem, error) {
	category, ok := enum.ParseItemCategory(in.Category)
	if !ok {
		return cost.LineItem{}, oneOf(prefix+"category", enum.ItemCategoryNames())
	}
	description, err := requireText(prefix+"description", in.Description)
	if err != nil {
		return cost.LineItem{}, err
	}
	if err := checkAmount(prefix+"quantity", in.Quantity); err != nil {
		return cost.LineItem{}, err
	}
	if err := checkAmount(prefix+"unit_price", in.UnitPrice); err != nil {
		return cost.LineItem{}, err
	}
	// Stored at column precision so recomputation from the database agrees
	li := cost.LineItem{
		Category:    category,
		Description: description,
		Quantity:    in.Quantity.Round(quantityScale),
		UnitPrice:   money.Round(in.UnitPrice),
	}
	if err := li.Validate(); err != nil {
		if ve, ok := err.(*cost.ValidationError); ok {
			return cost.LineItem{}, apperror.NewFieldError(prefix+ve.Field, ve.Reason)
		}
		return cost.LineItem{}, err
	}
	return li, nil
}

func (in ItemInput) budgetItem(li cost.LineItem, position int) entity.BudgetItem {
	return entity.BudgetItem{
		Category:    li.Category,
		Description: li.Description,
		Unit:        trimPtr(in.Unit),
		Quantity:    li.Quantity,
		UnitPrice:   li.UnitPrice,
		Position:    position,
	}
}

// recalculate refreshes both stored cost models from the budget's items: the
// project's item and total columns and the budget's marked-up breakdown.
func recalculate(project *entity.Project, budget *entity.Budget) error {
	items := entity.LineItems(budget.Items)

	pc, err := cost.ProjectTotals(items, project.LaborCost, project.ManualCost)
	if err != nil {
		return fieldError(err)
	}
	bd, err := cost.Aggregate(items, project.Markup())
	if err != nil {
		return fieldError(err)
	}

	project.ApplyCost(pc)
	budget.ApplyBreakdown(bd)
	return nil
}

// BudgetService manages a project's budget and its line items
type BudgetService struct {
	projectRepo repository.ProjectRepository
	budgetRepo  repository.BudgetRepository
	tx          repository.Transactor
}

// NewBudgetService creates a new budget service
func NewBudgetService(
	projectRepo repository.ProjectRepository,
	budgetRepo repository.BudgetRepository,
	tx repository.Transactor,
) *BudgetService {
	return &BudgetService{projectRepo: projectRepo, budgetRepo: budgetRepo, tx: tx}
}

// load fetches the project and its budget with items in order
func (s *BudgetService) load(ctx context.Context, projectID uuid.UUID) (*entity.Project, *entity.Budget, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	if project == nil {
		return nil, nil, apperror.NewNotFoundError("Project")
	}
	budget, err := s.budgetRepo.GetByProjectID(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	if budget == nil {
		return nil, nil, apperror.NewNotFoundError("Budget")
	}
	return project, budget, nil
}

// save recalculates and writes both records
func (s *BudgetService) save(ctx context.Context, project *entity.Project, budget *entity.Budget) error {
	if err := recalculate(project, budget); err != nil {
		return err
	}
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return err
	}
	return s.budgetRepo.Update(ctx, budget)
}

// ItemFilter narrows the items returned with a budget
type ItemFilter struct {
	Search   string
	Category string
}

var itemSearch = []filter.Field[entity.BudgetItem]{
	func(i entity.BudgetItem) string { return i.Description },
}

// GetBudget returns the budget with the items matching f, in position order.
// Stored totals always cover every item.
func (s *BudgetService) GetBudget(ctx context.Context, projectID uuid.UUID, f ItemFilter) (*entity.Budget, error) {
	_, budget, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	budget.Items = filter.Apply(budget.Items, filter.Spec[entity.BudgetItem]{
		Query:  f.Search,
		Search: itemSearch,
		Criteria: []filter.Criterion[entity.BudgetItem]{
			{Value: f.Category, Field: func(i entity.BudgetItem) string { return i.Category.String() }},
		},
	})
	return budget, nil
}

// UpdateBudgetInput changes budget metadata and the markup inputs
type UpdateBudgetInput struct {
	ProjectID              uuid.UUID
	Name                   *string
	Status                 *string
	Notes                  *string
	WorkmanshipFee         *decimal.Decimal
	OverheadPercentage     *decimal.Decimal
	ProfitMarginPercentage *decimal.Decimal
}

// UpdateBudget updates the budget and recomputes its breakdown
func (s *BudgetService) UpdateBudget(ctx context.Context, input *UpdateBudgetInput) (*entity.Budget, error) {
	var out *entity.Budget
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		project, budget, err := s.load(ctx, input.ProjectID)
		if err != nil {
			return err
		}

		if input.Name != nil {
			if budget.Name, err = requireText("name", *input.Name); err != nil {
				return err
			}
		}
		if input.Status != nil {
			status, ok := enum.ParseBudgetStatus(*input.Status)
			if !ok {
				return oneOf("status", enum.BudgetStatusNames())
			}
			budget.Status = status
		}
		if input.Notes != nil {
			budget.Notes = trimPtr(input.Notes)
		}
		if input.WorkmanshipFee != nil {
			if err := checkAmount("workmanship_fee", *input.WorkmanshipFee); err != nil {
				return err
			}
			project.WorkmanshipFee = *input.WorkmanshipFee
		}
		if input.OverheadPercentage != nil {
			if err := percentage("overhead_percentage", *input.OverheadPercentage); err != nil {
				return err
			}
			project.OverheadPercentage = *input.OverheadPercentage
		}
		if input.ProfitMarginPercentage != nil {
			if err := percentage("profit_margin_percentage", *input.ProfitMarginPercentage); err != nil {
				return err
			}
			project.ProfitMarginPercentage = *input.ProfitMarginPercentage
		}

		if err := s.save(ctx, project, budget); err != nil {
			return err
		}
		out = budget
		return nil
	})
	return out, err
}

// AddItem appends a line item and recomputes both cost models
func (s *BudgetService) AddItem(ctx context.Context, projectID uuid.UUID, input ItemInput) (*entity.BudgetItem, error) {
	li, err := input.lineItem("")
	if err != nil {
		return nil, err
	}

	var out *entity.BudgetItem
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		project, budget, err := s.load(ctx, projectID)
		if err != nil {
			return err
		}

		item := input.budgetItem(li, nextPosition(budget.Items))
		item.BudgetID = budget.ID
		item.ProjectID = project.ID
		if err := s.budgetRepo.AddItem(ctx, &item); err != nil {
			return err
		}

		budget.Items = append(budget.Items, item)
		if err := s.save(ctx, project, budget); err != nil {
			return err
		}
		out = &item
		return nil
	})
	return out, err
}

func nextPosition(items []entity.BudgetItem) int {
	next := 0
	for _, item := range items {
		if item.Position >= next {
			next = item.Position + 1
		}
	}
	return next
}

func findItem(items []entity.BudgetItem, id uuid.UUID) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

// UpdateItemInput represents a partial line item change
type UpdateItemInput struct {
	Category    *string
	Description *string
	Unit        *string
	Quantity    *decimal.Decimal
	UnitPrice   *decimal.Decimal
}

// UpdateItem edits a line item and recomputes both cost models
func (s *BudgetService) UpdateItem(ctx context.Context, projectID, itemID uuid.UUID, input UpdateItemInput) (*entity.BudgetItem, error) {
	var out *entity.BudgetItem
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		project, budget, err := s.load(ctx, projectID)
		if err != nil {
			return err
		}
		idx := findItem(budget.Items, itemID)
		if idx < 0 {
			return apperror.NewNotFoundError("Budget item")
		}
		item := budget.Items[idx]

		merged := ItemInput{
			Category:    item.Category.String(),
			Description: item.Description,
			Unit:        item.Unit,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
		if input.Category != nil {
			merged.Category = *input.Category
		}
		if input.Description != nil {
			merged.Description = *input.Description
		}
		if input.Unit != nil {
			merged.Unit = input.Unit
		}
		if input.Quantity != nil {
			merged.Quantity = *input.Quantity
		}
		if input.UnitPrice != nil {
			merged.UnitPrice = *input.UnitPrice
		}
		li, err := merged.lineItem("")
		if err != nil {
			return err
		}

		updated := merged.budgetItem(li, item.Position)
		updated.ID = item.ID
		updated.BudgetID = item.BudgetID
		updated.ProjectID = item.ProjectID
		updated.CreatedAt = item.CreatedAt
		if err := s.budgetRepo.UpdateItem(ctx, &updated); err != nil {
			return err
		}

		budget.Items[idx] = updated
		if err := s.save(ctx, project, budget); err != nil {
			return err
		}
		out = &updated
		return nil
	})
	return out, err
}

// DeleteItem removes a line item and recomputes both cost models
func (s *BudgetService) DeleteItem(ctx context.Context, projectID, itemID uuid.UUID) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		project, budget, err := s.load(ctx, projectID)
		if err != nil {
			return err
		}
		idx := findItem(budget.Items, itemID)
		if idx < 0 {
			return apperror.NewNotFoundError("Budget item")
		}
		if err := s.budgetRepo.DeleteItem(ctx, budget.ID, itemID); err != nil {
			return err
		}

		budget.Items = append(budget.Items[:idx], budget.Items[idx+1:]...)
		return s.save(ctx, project, budget)
	})
}

// BudgetSummary reports both cost models computed from the current items
type BudgetSummary struct {
	ProjectID   uuid.UUID        `json:"project_id"`
	ItemCount   int              `json:"item_count"`
	Breakdown   cost.Breakdown   `json:"breakdown"`
	ProjectCost cost.ProjectCost `json:"project_cost"`
}

// Breakdown computes the budget and project totals from the stored items
func (s *BudgetService) Breakdown(ctx context.Context, projectID uuid.UUID) (*BudgetSummary, error) {
	project, budget, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	items := entity.LineItems(budget.Items)

	bd, err := cost.Aggregate(items, project.Markup())
	if err != nil {
		return nil, fieldError(err)
	}
	pc, err := cost.ProjectTotals(items, project.LaborCost, project.ManualCost)
	if err != nil {
		return nil, fieldError(err)
	}
	return &BudgetSummary{
		ProjectID:   project.ID,
		ItemCount:   len(items),
		Breakdown:   bd,
		ProjectCost: pc,
	}, nil
}

// EstimateInput is an unsaved budget
type EstimateInput struct {
	Items                  []ItemInput
	WorkmanshipFee         decimal.Decimal
	OverheadPercentage     decimal.Decimal
	ProfitMarginPercentage decimal.Decimal
}

// EstimateLine echoes an input item with its computed total
type EstimateLine struct {
	cost.LineItem
	Total decimal.Decimal `json:"total"`
}

// Estimate is the result of a stateless budget calculation
type Estimate struct {
	Lines     []EstimateLine `json:"lines"`
	Breakdown cost.Breakdown `json:"breakdown"`
}

// Estimate runs the budget model over unsaved input. Nothing is stored.
func (s *BudgetService) Estimate(input *EstimateInput) (*Estimate, error) {
	markup := cost.Markup{
		WorkmanshipFee:         input.WorkmanshipFee,
		OverheadPercentage:     input.OverheadPercentage,
		ProfitMarginPercentage: input.ProfitMarginPercentage,
	}
	if err := percentage("overhead_percentage", markup.OverheadPercentage); err != nil {
		return nil, err
	}
	if err := percentage("profit_margin_percentage", markup.ProfitMarginPercentage); err != nil {
		return nil, err
	}

	items := make([]cost.LineItem, 0, len(input.Items))
	lines := make([]EstimateLine, 0, len(input.Items))
	for i, in := range input.Items {
		li, err := in.lineItem(fmt.Sprintf("items[%d].", i))
		if err != nil {
			return nil, err
		}
		items = append(items, li)
		lines = append(lines, EstimateLine{LineItem: li, Total: li.LineTotal()})
	}

	bd, err := cost.Aggregate(items, markup)
	if err != nil {
		return nil, fieldError(err)
	}
	return &Estimate{Lines: lines, Breakdown: bd}, nil
}

// defaultBudgetName names the budget created with a project
func defaultBudgetName(projectName string, name *string) string {
	if name != nil && strings.TrimSpace(*name) != "" {
		return strings.TrimSpace(*name)
	}
	return projectName + " budget"
}

// customerName looks up the project's customer for document headers
func (s *BudgetService) customerName(ctx context.Context, project *entity.Project) (string, error) {
	if project.Customer != nil {
		return project.Customer.FullName, nil
	}
	detailed, err := s.projectRepo.GetWithDetails(ctx, project.ID)
	if err != nil || detailed == nil || detailed.Customer == nil {
		return "", err
	}
	return detailed.Customer.FullName, nil
}
