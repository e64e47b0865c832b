package request

// NewSiteRequest is a site created inline with a project
type NewSiteRequest struct {
	Name          string  `json:"name" binding:"required,max=255"`
	Address       string  `json:"address" binding:"required"`
	City          *string `json:"city" binding:"omitempty,max=100"`
	BudgetCeiling Amount  `json:"budget_ceiling" binding:"omitempty,amount"`
	Status        string  `json:"status"`
	StartDate     *Date   `json:"start_date"`
	EndDate       *Date   `json:"end_date"`
	Notes         *string `json:"notes"`
}

// CreateSiteRequest is the request body for creating a site
type CreateSiteRequest struct {
	CustomerID    string  `json:"customer_id" binding:"required,uuid"`
	Name          string  `json:"name" binding:"required,max=255"`
	Address       string  `json:"address" binding:"required"`
	City          *string `json:"city" binding:"omitempty,max=100"`
	BudgetCeiling Amount  `json:"budget_ceiling" binding:"omitempty,amount"`
	Status        string  `json:"status"`
	StartDate     *Date   `json:"start_date"`
	EndDate       *Date   `json:"end_date"`
	Notes         *string `json:"notes"`
}

// UpdateSiteRequest is the request body for updating a site
type UpdateSiteRequest struct {
	CustomerID    *string `json:"customer_id" binding:"omitempty,uuid"`
	Name          *string `json:"name" binding:"omitempty,max=255"`
	Address       *string `json:"address"`
	City          *string `json:"city" binding:"omitempty,max=100"`
	BudgetCeiling *Amount `json:"budget_ceiling" binding:"omitempty,amount"`
	Status        *string `json:"status"`
	StartDate     *Date   `json:"start_date"`
	EndDate       *Date   `json:"end_date"`
	Notes         *string `json:"notes"`
}
