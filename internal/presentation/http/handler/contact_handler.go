package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/aluworks-api/internal/application/service"
	"github.com/sangkips/aluworks-api/internal/presentation/http/dto/request"
)

// ContactHandler serves the public contact form. It answers with the flat
// {success, message} / {error} bodies the website expects rather than the
// API envelope.
type ContactHandler struct {
	contactService *service.ContactService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService *service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Submit handles a contact form submission
func (h *ContactHandler) Submit(c *gin.Context) {
	var req request.ContactRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	message, err := h.contactService.Submit(c.Request.Context(), &service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	})
	switch {
	case errors.Is(err, service.ErrContactIncomplete), errors.Is(err, service.ErrContactEmail):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}
