package service

import (
	"context"
	"strings"
	"time"

	"github.com/sangkips/aluworks-api/internal/config"
	"github.com/sangkips/aluworks-api/internal/domain/entity"
	"github.com/sangkips/aluworks-api/internal/domain/repository"
	"github.com/sangkips/aluworks-api/pkg/apperror"
)

// SettingsService manages the workshop profile used on receipts and mail
type SettingsService struct {
	profileRepo repository.WorkshopProfileRepository
	defaults    config.WorkshopConfig
}

// NewSettingsService creates a new settings service
func NewSettingsService(profileRepo repository.WorkshopProfileRepository, defaults config.WorkshopConfig) *SettingsService {
	return &SettingsService{
		profileRepo: profileRepo,
		defaults:    defaults,
	}
}

// GetProfile retrieves the workshop profile, creating it from the
// configured defaults if none exists
func (s *SettingsService) GetProfile(ctx context.Context) (*entity.WorkshopProfile, error) {
	profile, err := s.profileRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}

	profile = &entity.WorkshopProfile{
		Name:     s.defaults.Name,
		Address:  s.defaults.Address,
		Phone:    s.defaults.Phone,
		Email:    s.defaults.Email,
		Currency: s.defaults.Currency,
		Timezone: s.defaults.Timezone,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateProfileInput represents a partial profile change
type UpdateProfileInput struct {
	Name          *string
	Address       *string
	Phone         *string
	Email         *string
	Currency      *string
	Timezone      *string
	ReceiptFooter *string
}

// UpdateProfile updates the workshop profile
func (s *SettingsService) UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.WorkshopProfile, error) {
	profile, err := s.GetProfile(ctx)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if profile.Name, err = requireText("name", *input.Name); err != nil {
			return nil, err
		}
	}
	if input.Timezone != nil {
		tz := strings.TrimSpace(*input.Timezone)
		if _, err := time.LoadLocation(tz); err != nil || tz == "" {
			return nil, apperror.NewFieldError("timezone", "is not a known IANA time zone")
		}
		profile.Timezone = tz
	}
	if input.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*input.Currency))
		if currency == "" {
			return nil, apperror.NewFieldError("currency", "is required")
		}
		profile.Currency = currency
	}
	setText(&profile.Address, input.Address)
	setText(&profile.Phone, input.Phone)
	setText(&profile.Email, input.Email)
	setText(&profile.ReceiptFooter, input.ReceiptFooter)

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func setText(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}
