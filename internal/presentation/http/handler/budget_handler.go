package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/aluworks-api/internal/application/service"
	"github.com/sangkips/aluworks-api/internal/presentation/http/dto/request"
	"github.com/sangkips/aluworks-api/internal/presentation/http/dto/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BudgetHandler handles the budget of a project and its line items
type BudgetHandler struct {
	budgetService  *service.BudgetService
	printerService *service.PrinterService
	exportService  *service.ExportService
}

// NewBudgetHandler creates a new budget handler
func NewBudgetHandler(
	budgetService *service.BudgetService,
	printerService *service.PrinterService,
	exportService *service.ExportService,
) *BudgetHandler {
	return &BudgetHandler{
		budgetService:  budgetService,
		printerService: printerService,
		exportService:  exportService,
	}
}

// Get returns the budget. ?search and ?category narrow the listed items.
func (h *BudgetHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "project")
	if !ok {
		return
	}

	budget, err := h.budgetService.GetBudget(c.Request.Context(), id, service.ItemFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Budget retrieved successfully", budget)
}

// Update handles budget metadata and markup changes
func (h *BudgetHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "project")
	if !ok {
		return
	}

	var req request.UpdateBudgetRequest
	if !bindJSON(c, &req) {
		return
	}

	budget, err := h.budgetService.UpdateBudget(c.Request.Context(), &service.UpdateBudgetInput{
		ProjectID:              id,
		Name:                   req.Name,
		Status:                 req.Status,
		Notes:                  req.Notes,
		WorkmanshipFee:         req.WorkmanshipFee.DecimalPtr(),
		OverheadPercentage:     req.OverheadPercentage.DecimalPtr(),
		ProfitMarginPercentage: req.ProfitMarginPercentage.DecimalPtr(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Budget updated successfully", budget)
}

// AddItem appends a line item
func (h *BudgetHandler) AddItem(c *gin.Context) {
	id, ok := parseID(c, "id", "project")
	if !ok {
		return
	}

	var req request.BudgetItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.budgetService.AddItem(c.Request.Context(), id, itemInputs([]request.BudgetItemRequest{req})[0])
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Budget item added successfully", item)
}

// UpdateItem edits a line item
func (h *BudgetHandler) UpdateItem(c *gin.Context) {
	id, ok := parseID(c, "id", "project")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "item_id", "item")
	if !ok {
		return
	}

	var req request.UpdateBudgetItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.budgetService.UpdateItem(c.Request.Context(), id, itemID, service.UpdateItemInput{
		Category:    req.Category,
		Description: req.Description,
		Unit:        req.Unit,
		Quantity:    req.Quantity.DecimalPtr(),
		UnitPrice:   req.UnitPrice.DecimalPtr(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Budget item updated successfully", item)
}

// DeleteItem removes a line item
func (h *BudgetHandler) DeleteItem(c *gin.Context) {
	id, ok := parseID(c, "id", "project")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "item_id", "item")
	if !ok {
		return
	}

	if err := h.budgetService.DeleteItem(c.Request.Context(), id, itemID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Budget item deleted successfully", nil)
}

// Breakdown returns both cost models computed from the stored items
func (h *BudgetHandler) Breakdown(c *gin.Context) {
	id, ok := parseID(c, "id", "project")
	if !ok {
		return
	}

	summary, err := h.budgetService.Breakdown(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Budget breakdown calculated successfully", summary)
}

// Quote returns the quotation receipt; ?format=text renders it as text
func (h *BudgetHandler) Quote(c *gin.Context) {
	id, ok := parseID(c, "id", "project")
	if !ok {
		return
	}

	receipt, err := h.printerService.Quote(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	if c.Query("format") == "text" {
		response.Text(c, h.printerService.RenderText(receipt))
		return
	}
	response.OK(c, "Quotation generated successfully", receipt)
}

// Export downloads the budget as an XLSX workbook
func (h *BudgetHandler) Export(c *gin.Context) {
	id, ok := parseID(c, "id", "project")
	if !ok {
		return
	}

	data, filename, err := h.exportService.ExportBudget(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Attachment(c, filename, xlsxContentType, data)
}

// Estimate prices an unsaved budget
func (h *BudgetHandler) Estimate(c *gin.Context) {
	var req request.EstimateRequest
	if !bindJSON(c, &req) {
		return
	}

	estimate, err := h.budgetService.Estimate(&service.EstimateInput{
		Items:                  itemInputs(req.Items),
		WorkmanshipFee:         req.WorkmanshipFee.Decimal(),
		OverheadPercentage:     req.OverheadPercentage.Decimal(),
		ProfitMarginPercentage: req.ProfitMarginPercentage.Decimal(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Estimate calculated successfully", estimate)
}
