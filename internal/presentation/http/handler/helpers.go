package handler

import (
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/aluworks-api/internal/presentation/http/dto/response"
	"github.com/sangkips/aluworks-api/pkg/apperror"
	"github.com/sangkips/aluworks-api/pkg/pagination"
	"github.com/sangkips/aluworks-api/pkg/validation"
)

// Context keys set by the auth middleware
const (
	SubjectKey = "subject"
	EmailKey   = "user_email"
)

// GetSubject returns the authenticated token subject
func GetSubject(c *gin.Context) string {
	return c.GetString(SubjectKey)
}

// GetUserEmail extracts the user email from the Gin context
func GetUserEmail(c *gin.Context) string {
	return c.GetString(EmailKey)
}

// bindJSON decodes the body into req, rejecting unknown fields, then runs
// the binding rules. It writes the error response and returns false on
// failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return false
	}
	if err := validation.Struct(req); err != nil {
		response.Error(c, err)
		return false
	}
	return true
}

// parseID reads the :id path parameter
func parseID(c *gin.Context, name, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+resource+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// pageParams reads page and per_page from the query string
func pageParams(c *gin.Context) *pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	return &pagination.PaginationParams{Page: page, PerPage: perPage}
}

// optionalID parses an optional UUID sent in a create request
func optionalID(field string, s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, apperror.NewFieldError(field, "must be a valid UUID")
	}
	return &id, nil
}

// clearableID parses a UUID from an update request. An empty string
// becomes uuid.Nil, which the services treat as "clear the reference".
func clearableID(field string, s *string) (*uuid.UUID, error) {
	if s == nil {
		return nil, nil
	}
	if *s == "" {
		return &uuid.Nil, nil
	}
	return optionalID(field, s)
}

// mustID parses a UUID the binding rules already checked
func mustID(s string) uuid.UUID {
	id, _ := uuid.Parse(s)
	return id
}
