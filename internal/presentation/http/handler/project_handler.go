package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/aluworks-api/internal/application/service"
	"github.com/sangkips/aluworks-api/internal/presentation/http/dto/request"
	"github.com/sangkips/aluworks-api/internal/presentation/http/dto/response"
)

// ProjectHandler handles project requests
type ProjectHandler struct {
	projectService *service.ProjectService
	printerService *service.PrinterService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService *service.ProjectService, printerService *service.PrinterService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, printerService: printerService}
}

// List handles listing projects
func (h *ProjectHandler) List(c *gin.Context) {
	result, err := h.projectService.ListProjects(c.Request.Context(), &service.ListProjectsInput{
		Search:     c.Query("search"),
		Status:     c.Query("status"),
		Priority:   c.Query("priority"),
		CustomerID: c.Query("customer_id"),
		Params:     pageParams(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Projects retrieved successfully", result)
}

func itemInputs(reqs []request.BudgetItemRequest) []service.ItemInput {
	out := make([]service.ItemInput, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, service.ItemInput{
			Category:    r.Category,
			Description: r.Description,
			Unit:        r.Unit,
			Quantity:    r.Quantity.Decimal(),
			UnitPrice:   r.UnitPrice.Decimal(),
		})
	}
	return out
}

// Create handles the project form
func (h *ProjectHandler) Create(c *gin.Context) {
	var req request.CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	input := &service.CreateProjectInput{
		Name:                   req.Name,
		Description:            req.Description,
		Status:                 req.Status,
		Priority:               req.Priority,
		CustomerID:             mustID(req.CustomerID),
		SiteAddress:            req.SiteAddress,
		StartDate:              req.StartDate.Ptr(),
		ExpectedCompletionDate: req.ExpectedCompletionDate.Ptr(),
		LaborCost:              req.LaborCost.Decimal(),
		ManualCost:             req.ManualCost.Decimal(),
		WorkmanshipFee:         req.WorkmanshipFee.Decimal(),
		OverheadPercentage:     req.OverheadPercentage.Decimal(),
		ProfitMarginPercentage: req.ProfitMarginPercentage.Decimal(),
		BudgetName:             req.BudgetName,
		BudgetNotes:            req.BudgetNotes,
		Items:                  itemInputs(req.Items),
	}
	var err error
	if input.SiteID, err = optionalID("site_id", req.SiteID); err != nil {
		response.Error(c, err)
		return
	}
	if input.ManagerID, err = optionalID("manager_id", req.ManagerID); err != nil {
		response.Error(c, err)
		return
	}
	if input.TeamLeadID, err = optionalID("team_lead_id", req.TeamLeadID); err != nil {
		response.Error(c, err)
		return
	}
	if s := req.Site; s != nil {
		input.NewSite = &service.CreateSiteInput{
			Name:          s.Name,
			Address:       s.Address,
			City:          s.City,
			BudgetCeiling: s.BudgetCeiling.Decimal(),
			Status:        s.Status,
			StartDate:     s.StartDate.Ptr(),
			EndDate:       s.EndDate.Ptr(),
			Notes:         s.Notes,
		}
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Project created successfully", project)
}

// Get handles getting a project with its customer, site, staff and budget
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "project")
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Project retrieved successfully", project)
}

// Update handles updating a project
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "project")
	if !ok {
		return
	}

	var req request.UpdateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	input := &service.UpdateProjectInput{
		ID:                     id,
		Name:                   req.Name,
		Description:            req.Description,
		Status:                 req.Status,
		Priority:               req.Priority,
		SiteAddress:            req.SiteAddress,
		StartDate:              req.StartDate.Ptr(),
		ExpectedCompletionDate: req.ExpectedCompletionDate.Ptr(),
		LaborCost:              req.LaborCost.DecimalPtr(),
		ManualCost:             req.ManualCost.DecimalPtr(),
		WorkmanshipFee:         req.WorkmanshipFee.DecimalPtr(),
		OverheadPercentage:     req.OverheadPercentage.DecimalPtr(),
		ProfitMarginPercentage: req.ProfitMarginPercentage.DecimalPtr(),
	}
	var err error
	if input.CustomerID, err = optionalID("customer_id", req.CustomerID); err != nil {
		response.Error(c, err)
		return
	}
	if input.SiteID, err = clearableID("site_id", req.SiteID); err != nil {
		response.Error(c, err)
		return
	}
	if input.ManagerID, err = clearableID("manager_id", req.ManagerID); err != nil {
		response.Error(c, err)
		return
	}
	if input.TeamLeadID, err = clearableID("team_lead_id", req.TeamLeadID); err != nil {
		response.Error(c, err)
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Project updated successfully", project)
}

// UpdateStatus handles moving a project to another status
func (h *ProjectHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id", "project")
	if !ok {
		return
	}

	var req request.UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Project status updated successfully", project)
}

// Delete handles deleting a project and its budget
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "project")
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Project deleted successfully", nil)
}

// Invoice returns the project invoice. With ?format=text the receipt is
// rendered as plain text for preview.
func (h *ProjectHandler) Invoice(c *gin.Context) {
	id, ok := parseID(c, "id", "project")
	if !ok {
		return
	}

	receipt, err := h.printerService.Invoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	if c.Query("format") == "text" {
		response.Text(c, h.printerService.RenderText(receipt))
		return
	}
	response.OK(c, "Invoice generated successfully", receipt)
}
