package enum

import "database/sql/driver"

// BudgetStatus is recorded on a budget but no workflow enforces transitions
type BudgetStatus string

const (
	BudgetStatusDraft    BudgetStatus = "Draft"
	BudgetStatusApproved BudgetStatus = "Approved"
	BudgetStatusRevised  BudgetStatus = "Revised"
	BudgetStatusFinal    BudgetStatus = "Final"
)

var budgetStatuses = []BudgetStatus{
	BudgetStatusDraft,
	BudgetStatusApproved,
	BudgetStatusRevised,
	BudgetStatusFinal,
}

// BudgetStatusNames returns the labels in display order
func BudgetStatusNames() []string {
	return names(budgetStatuses)
}

// ParseBudgetStatus matches a budget status label ignoring case
func ParseBudgetStatus(s string) (BudgetStatus, bool) {
	return parse(s, budgetStatuses)
}

func (s BudgetStatus) String() string {
	return string(s)
}

func (s BudgetStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *BudgetStatus) Scan(value interface{}) error {
	if value == nil {
		*s = BudgetStatusDraft
		return nil
	}
	str, err := scanString(value)
	if err != nil {
		return err
	}
	*s = BudgetStatus(str)
	return nil
}

// ItemCategory classifies a budget line item
type ItemCategory string

const (
	ItemCategoryMaterial      ItemCategory = "Material"
	ItemCategoryLabor         ItemCategory = "Labor"
	ItemCategoryEquipment     ItemCategory = "Equipment"
	ItemCategoryTool          ItemCategory = "Tool"
	ItemCategorySubcontractor ItemCategory = "Subcontractor"
	ItemCategoryPermit        ItemCategory = "Permit"
	ItemCategoryOther         ItemCategory = "Other"
)

var itemCategories = []ItemCategory{
	ItemCategoryMaterial,
	ItemCategoryLabor,
	ItemCategoryEquipment,
	ItemCategoryTool,
	ItemCategorySubcontractor,
	ItemCategoryPermit,
	ItemCategoryOther,
}

// ItemCategories returns every line item category in display order
func ItemCategories() []ItemCategory {
	return append([]ItemCategory(nil), itemCategories...)
}

// ItemCategoryNames returns the accepted category labels
func ItemCategoryNames() []string {
	return names(itemCategories)
}

// ParseItemCategory matches a category label ignoring case
func ParseItemCategory(s string) (ItemCategory, bool) {
	return parse(s, itemCategories)
}

func (c ItemCategory) String() string {
	return string(c)
}

func (c ItemCategory) IsValid() bool {
	_, ok := ParseItemCategory(string(c))
	return ok
}

func (c ItemCategory) Value() (driver.Value, error) {
	return string(c), nil
}

func (c *ItemCategory) Scan(value interface{}) error {
	if value == nil {
		*c = ItemCategoryOther
		return nil
	}
	str, err := scanString(value)
	if err != nil {
		return err
	}
	*c = ItemCategory(str)
	return nil
}
