// Package cost is the budget arithmetic of the workshop: line totals,
// category subtotals and the overhead/profit markup. Everything here is pure;
// callers load records, hand them over as values and persist the results.
//
// Two models exist:
//
//   - Aggregate is the budget model: category sums plus workmanship fee,
//     then overhead on the subtotal and profit on subtotal+overhead.
//   - ProjectTotals is the project record model: items + labor + manual cost,
//     no markup.
package cost

import (
	"fmt"

	"github.com/sangkips/aluworks-api/internal/domain/enum"
	"github.com/sangkips/aluworks-api/pkg/money"
	"github.com/shopspring/decimal"
)

// ValidationError reports a rejected numeric or categorical input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// LineItem is one billable row of a budget.
type LineItem struct {
	Category    enum.ItemCategory `json:"category"`
	Description string            `json:"description"`
	Quantity    decimal.Decimal   `json:"quantity"`
	UnitPrice   decimal.Decimal   `json:"unit_price"`
}

// NewLineItem builds a line item from raw form values.
func NewLineItem(category, description, quantity, unitPrice string) (LineItem, error) {
	cat, ok := enum.ParseItemCategory(category)
	if !ok {
		return LineItem{}, invalid("category", "must be one of Material, Labor, Equipment, Tool, Subcontractor, Permit, Other")
	}
	qty, err := ParseAmount("quantity", quantity)
	if err != nil {
		return LineItem{}, err
	}
	price, err := ParseAmount("unit_price", unitPrice)
	if err != nil {
		return LineItem{}, err
	}
	return LineItem{Category: cat, Description: description, Quantity: qty, UnitPrice: price}, nil
}

// Validate checks the category and that quantity and unit price are in range.
func (li LineItem) Validate() error {
	if !li.Category.IsValid() {
		return invalid("category", "is not a known category")
	}
	if err := CheckAmount("quantity", li.Quantity); err != nil {
		return err
	}
	return CheckAmount("unit_price", li.UnitPrice)
}

// CheckAmount rejects negative values and values the stored columns cannot hold.
func CheckAmount(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return invalid(field, "must not be negative")
	}
	switch money.CheckRange(d) {
	case money.ErrTooLarge:
		return invalid(field, "must be less than 1000000000000")
	case money.ErrTooPrecise:
		return invalid(field, "has too many decimal places")
	}
	return nil
}

// LineTotal is quantity * unit price rounded to the minor unit.
func (li LineItem) LineTotal() decimal.Decimal {
	return money.Round(li.Quantity.Mul(li.UnitPrice))
}

// ParseAmount parses a non-negative decimal input; field names the value in errors.
func ParseAmount(field, raw string) (decimal.Decimal, error) {
	d, err := money.Parse(raw)
	if err != nil {
		return decimal.Zero, invalid(field, "must be a number")
	}
	if err := CheckAmount(field, d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// Markup holds the manual inputs applied on top of the line items.
type Markup struct {
	WorkmanshipFee         decimal.Decimal `json:"workmanship_fee"`
	OverheadPercentage     decimal.Decimal `json:"overhead_percentage"`
	ProfitMarginPercentage decimal.Decimal `json:"profit_margin_percentage"`
}

// Validate rejects negative or out of range markup inputs.
func (m Markup) Validate() error {
	if err := CheckAmount("workmanship_fee", m.WorkmanshipFee); err != nil {
		return err
	}
	if err := CheckAmount("overhead_percentage", m.OverheadPercentage); err != nil {
		return err
	}
	return CheckAmount("profit_margin_percentage", m.ProfitMarginPercentage)
}

// Breakdown is the output of the budget model.
type Breakdown struct {
	Materials              decimal.Decimal `json:"materials"`
	Labor                  decimal.Decimal `json:"labor"`
	Equipment              decimal.Decimal `json:"equipment"`
	Other                  decimal.Decimal `json:"other"`
	ItemsTotal             decimal.Decimal `json:"items_total"`
	WorkmanshipFee         decimal.Decimal `json:"workmanship_fee"`
	Subtotal               decimal.Decimal `json:"subtotal"`
	OverheadPercentage     decimal.Decimal `json:"overhead_percentage"`
	Overhead               decimal.Decimal `json:"overhead"`
	ProfitMarginPercentage decimal.Decimal `json:"profit_margin_percentage"`
	Profit                 decimal.Decimal `json:"profit"`
	Total                  decimal.Decimal `json:"total"`
}

// Bucket names the subtotal a category rolls into.
type Bucket string

const (
	BucketMaterials Bucket = "materials"
	BucketLabor     Bucket = "labor"
	BucketEquipment Bucket = "equipment"
	BucketOther     Bucket = "other"
)

// BucketOf maps a category to exactly one subtotal. Tools count as equipment.
func BucketOf(c enum.ItemCategory) Bucket {
	switch c {
	case enum.ItemCategoryMaterial:
		return BucketMaterials
	case enum.ItemCategoryLabor:
		return BucketLabor
	case enum.ItemCategoryEquipment, enum.ItemCategoryTool:
		return BucketEquipment
	default:
		return BucketOther
	}
}

// Aggregate runs the budget model over items in order.
func Aggregate(items []LineItem, m Markup) (Breakdown, error) {
	if err := m.Validate(); err != nil {
		return Breakdown{}, err
	}

	b := Breakdown{
		Materials:              decimal.Zero,
		Labor:                  decimal.Zero,
		Equipment:              decimal.Zero,
		Other:                  decimal.Zero,
		WorkmanshipFee:         money.Round(m.WorkmanshipFee),
		OverheadPercentage:     m.OverheadPercentage,
		ProfitMarginPercentage: m.ProfitMarginPercentage,
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			ve := err.(*ValidationError)
			return Breakdown{}, invalid(fmt.Sprintf("items[%d].%s", i, ve.Field), ve.Reason)
		}
		total := item.LineTotal()
		switch BucketOf(item.Category) {
		case BucketMaterials:
			b.Materials = b.Materials.Add(total)
		case BucketLabor:
			b.Labor = b.Labor.Add(total)
		case BucketEquipment:
			b.Equipment = b.Equipment.Add(total)
		default:
			b.Other = b.Other.Add(total)
		}
	}

	b.ItemsTotal = money.Sum(b.Materials, b.Labor, b.Equipment, b.Other)
	b.Subtotal = b.ItemsTotal.Add(b.WorkmanshipFee)
	b.Overhead = money.Percent(b.Subtotal, m.OverheadPercentage)
	b.Profit = money.Percent(b.Subtotal.Add(b.Overhead), m.ProfitMarginPercentage)
	b.Total = money.Sum(b.Subtotal, b.Overhead, b.Profit)
	if err := CheckAmount("total", b.Total); err != nil {
		return Breakdown{}, err
	}
	return b, nil
}

// ProjectCost is the output of the project record model.
type ProjectCost struct {
	ItemsTotal decimal.Decimal `json:"items_total"`
	LaborCost  decimal.Decimal `json:"labor_cost"`
	ManualCost decimal.Decimal `json:"manual_cost"`
	Total      decimal.Decimal `json:"total"`
}

// ProjectTotals sums line totals and adds the project's labor and manual costs.
func ProjectTotals(items []LineItem, laborCost, manualCost decimal.Decimal) (ProjectCost, error) {
	if err := CheckAmount("labor_cost", laborCost); err != nil {
		return ProjectCost{}, err
	}
	if err := CheckAmount("manual_cost", manualCost); err != nil {
		return ProjectCost{}, err
	}

	itemsTotal := decimal.Zero
	for i, item := range items {
		if err := item.Validate(); err != nil {
			ve := err.(*ValidationError)
			return ProjectCost{}, invalid(fmt.Sprintf("items[%d].%s", i, ve.Field), ve.Reason)
		}
		itemsTotal = itemsTotal.Add(item.LineTotal())
	}

	pc := ProjectCost{
		ItemsTotal: itemsTotal,
		LaborCost:  money.Round(laborCost),
		ManualCost: money.Round(manualCost),
	}
	pc.Total = money.Sum(pc.ItemsTotal, pc.LaborCost, pc.ManualCost)
	if err := CheckAmount("total", pc.Total); err != nil {
		return ProjectCost{}, err
	}
	return pc, nil
}
