package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/aluworks-api/internal/application/service"
	"github.com/sangkips/aluworks-api/internal/presentation/http/dto/request"
	"github.com/sangkips/aluworks-api/internal/presentation/http/dto/response"
)

// SettingsHandler handles the workshop profile
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings retrieves the workshop profile
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	profile, err := h.settingsService.GetProfile(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved successfully", profile)
}

// UpdateSettings updates the workshop profile
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req request.UpdateWorkshopRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.settingsService.UpdateProfile(c.Request.Context(), &service.UpdateProfileInput{
		Name:          req.Name,
		Address:       req.Address,
		Phone:         req.Phone,
		Email:         req.Email,
		Currency:      req.Currency,
		Timezone:      req.Timezone,
		ReceiptFooter: req.ReceiptFooter,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated successfully", profile)
}
