package service

import (
	"errors"
	"strings"

	"github.com/sangkips/aluworks-api/internal/domain/cost"
	"github.com/sangkips/aluworks-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// fieldError converts cost validation failures into 422 responses and passes
// every other error through unchanged.
func fieldError(err error) error {
	var ve *cost.ValidationError
	if errors.As(err, &ve) {
		return apperror.NewFieldError(ve.Field, ve.Reason)
	}
	return err
}

// requireText trims s and rejects blank values.
func requireText(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", apperror.NewFieldError(field, "is required")
	}
	return s, nil
}

// checkAmount rejects negative input and input the stored columns cannot
// hold. Call it before rounding or comparing a submitted value.
func checkAmount(field string, d decimal.Decimal) error {
	return fieldError(cost.CheckAmount(field, d))
}

func oneOf(field string, names []string) error {
	return apperror.NewFieldError(field, "must be one of: "+strings.Join(names, ", "))
}

// trimPtr trims an optional value; blank becomes nil.
func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
