package request

// BudgetItemRequest is one budget line. Amounts may be sent as JSON numbers
// or numeric strings.
type BudgetItemRequest struct {
	Category    string  `json:"category" binding:"required"`
	Description string  `json:"description" binding:"required,max=500"`
	Unit        *string `json:"unit" binding:"omitempty,max=20"`
	Quantity    Amount  `json:"quantity" binding:"required,amount"`
	UnitPrice   Amount  `json:"unit_price" binding:"required,amount"`
}

// UpdateBudgetItemRequest is the request body for editing a budget line
type UpdateBudgetItemRequest struct {
	Category    *string `json:"category"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	Unit        *string `json:"unit" binding:"omitempty,max=20"`
	Quantity    *Amount `json:"quantity" binding:"omitempty,amount"`
	UnitPrice   *Amount `json:"unit_price" binding:"omitempty,amount"`
}

// CreateProjectRequest is the project form: project fields, an existing
// site_id or a new site, and the initial budget lines
type CreateProjectRequest struct {
	Name                   string              `json:"name" binding:"required,max=255"`
	Description            *string             `json:"description"`
	Status                 string              `json:"status"`
	Priority               string              `json:"priority"`
	CustomerID             string              `json:"customer_id" binding:"required,uuid"`
	SiteID                 *string             `json:"site_id" binding:"omitempty,uuid"`
	Site                   *NewSiteRequest     `json:"site"`
	SiteAddress            *string             `json:"site_address"`
	ManagerID              *string             `json:"manager_id" binding:"omitempty,uuid"`
	TeamLeadID             *string             `json:"team_lead_id" binding:"omitempty,uuid"`
	StartDate              *Date               `json:"start_date"`
	ExpectedCompletionDate *Date               `json:"expected_completion_date"`
	LaborCost              Amount              `json:"labor_cost" binding:"omitempty,amount"`
	ManualCost             Amount              `json:"manual_cost" binding:"omitempty,amount"`
	WorkmanshipFee         Amount              `json:"workmanship_fee" binding:"omitempty,amount"`
	OverheadPercentage     Amount              `json:"overhead_percentage" binding:"omitempty,amount"`
	ProfitMarginPercentage Amount              `json:"profit_margin_percentage" binding:"omitempty,amount"`
	BudgetName             *string             `json:"budget_name" binding:"omitempty,max=255"`
	BudgetNotes            *string             `json:"budget_notes"`
	Items                  []BudgetItemRequest `json:"items" binding:"dive"`
}

// UpdateProjectRequest is the request body for updating a project. For
// site_id, manager_id and team_lead_id an empty string clears the reference.
type UpdateProjectRequest struct {
	Name                   *string `json:"name" binding:"omitempty,max=255"`
	Description            *string `json:"description"`
	Status                 *string `json:"status"`
	Priority               *string `json:"priority"`
	CustomerID             *string `json:"customer_id" binding:"omitempty,uuid"`
	SiteID                 *string `json:"site_id"`
	SiteAddress            *string `json:"site_address"`
	ManagerID              *string `json:"manager_id"`
	TeamLeadID             *string `json:"team_lead_id"`
	StartDate              *Date   `json:"start_date"`
	ExpectedCompletionDate *Date   `json:"expected_completion_date"`
	LaborCost              *Amount `json:"labor_cost" binding:"omitempty,amount"`
	ManualCost             *Amount `json:"manual_cost" binding:"omitempty,amount"`
	WorkmanshipFee         *Amount `json:"workmanship_fee" binding:"omitempty,amount"`
	OverheadPercentage     *Amount `json:"overhead_percentage" binding:"omitempty,amount"`
	ProfitMarginPercentage *Amount `json:"profit_margin_percentage" binding:"omitempty,amount"`
}

// UpdateStatusRequest moves a project to another status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateBudgetRequest changes budget metadata and markup inputs
type UpdateBudgetRequest struct {
	Name                   *string `json:"name" binding:"omitempty,max=255"`
	Status                 *string `json:"status"`
	Notes                  *string `json:"notes"`
	WorkmanshipFee         *Amount `json:"workmanship_fee" binding:"omitempty,amount"`
	OverheadPercentage     *Amount `json:"overhead_percentage" binding:"omitempty,amount"`
	ProfitMarginPercentage *Amount `json:"profit_margin_percentage" binding:"omitempty,amount"`
}

// EstimateRequest is an unsaved budget to price
type EstimateRequest struct {
	Items                  []BudgetItemRequest `json:"items" binding:"dive"`
	WorkmanshipFee         Amount              `json:"workmanship_fee" binding:"omitempty,amount"`
	OverheadPercentage     Amount              `json:"overhead_percentage" binding:"omitempty,amount"`
	ProfitMarginPercentage Amount              `json:"profit_margin_percentage" binding:"omitempty,amount"`
}
