package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/aluworks-api/internal/domain/entity"
)

// SiteRepository defines the interface for site data operations
type SiteRepository interface {
	Create(ctx context.Context, site *entity.Site) error
	// GetByID returns the site with its customer loaded
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Site, error)
	Update(ctx context.Context, site *entity.Site) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Site, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Site, error)
	Count(ctx context.Context) (int64, error)
}
