package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/aluworks-api/internal/application/service"
	"github.com/sangkips/aluworks-api/internal/presentation/http/dto/request"
	"github.com/sangkips/aluworks-api/internal/presentation/http/dto/response"
)

// SiteHandler handles site requests
type SiteHandler struct {
	siteService *service.SiteService
}

// NewSiteHandler creates a new site handler
func NewSiteHandler(siteService *service.SiteService) *SiteHandler {
	return &SiteHandler{siteService: siteService}
}

// List handles listing sites
func (h *SiteHandler) List(c *gin.Context) {
	result, err := h.siteService.ListSites(c.Request.Context(), &service.ListSitesInput{
		Search:     c.Query("search"),
		Status:     c.Query("status"),
		CustomerID: c.Query("customer_id"),
		Params:     pageParams(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sites retrieved successfully", result)
}

// Create handles creating a site
func (h *SiteHandler) Create(c *gin.Context) {
	var req request.CreateSiteRequest
	if !bindJSON(c, &req) {
		return
	}

	site, err := h.siteService.CreateSite(c.Request.Context(), &service.CreateSiteInput{
		CustomerID:    mustID(req.CustomerID),
		Name:          req.Name,
		Address:       req.Address,
		City:          req.City,
		BudgetCeiling: req.BudgetCeiling.Decimal(),
		Status:        req.Status,
		StartDate:     req.StartDate.Ptr(),
		EndDate:       req.EndDate.Ptr(),
		Notes:         req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Site created successfully", site)
}

// Get handles getting a single site
func (h *SiteHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "site")
	if !ok {
		return
	}

	site, err := h.siteService.GetSite(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Site retrieved successfully", site)
}

// Update handles updating a site
func (h *SiteHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "site")
	if !ok {
		return
	}

	var req request.UpdateSiteRequest
	if !bindJSON(c, &req) {
		return
	}
	customerID, err := optionalID("customer_id", req.CustomerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	site, err := h.siteService.UpdateSite(c.Request.Context(), &service.UpdateSiteInput{
		ID:            id,
		CustomerID:    customerID,
		Name:          req.Name,
		Address:       req.Address,
		City:          req.City,
		BudgetCeiling: req.BudgetCeiling.DecimalPtr(),
		Status:        req.Status,
		StartDate:     req.StartDate.Ptr(),
		EndDate:       req.EndDate.Ptr(),
		Notes:         req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Site updated successfully", site)
}

// Delete handles deleting a site
func (h *SiteHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "site")
	if !ok {
		return
	}

	if err := h.siteService.DeleteSite(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Site deleted successfully", nil)
}
