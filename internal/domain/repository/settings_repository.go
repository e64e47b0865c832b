package repository

import (
	"context"

	"github.com/sangkips/aluworks-api/internal/domain/entity"
)

// WorkshopProfileRepository defines the interface for the workshop profile row
type WorkshopProfileRepository interface {
	// Get returns the profile or nil when none has been saved yet
	Get(ctx context.Context) (*entity.WorkshopProfile, error)
	Create(ctx context.Context, profile *entity.WorkshopProfile) error
	Update(ctx context.Context, profile *entity.WorkshopProfile) error
}
