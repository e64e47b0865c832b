package repository

import (
	"context"
	"errors"

	"github.com/sangkips/aluworks-api/internal/domain/entity"
	"github.com/sangkips/aluworks-api/internal/domain/repository"
	"gorm.io/gorm"
)

type workshopProfileRepository struct {
	db *gorm.DB
}

// NewWorkshopProfileRepository creates a new workshop profile repository
func NewWorkshopProfileRepository(db *gorm.DB) repository.WorkshopProfileRepository {
	return &workshopProfileRepository{db: db}
}

// Get retrieves the oldest profile row
func (r *workshopProfileRepository) Get(ctx context.Context) (*entity.WorkshopProfile, error) {
	var profile entity.WorkshopProfile
	err := conn(ctx, r.db).Order("created_at ASC").First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Create stores the profile
func (r *workshopProfileRepository) Create(ctx context.Context, profile *entity.WorkshopProfile) error {
	return conn(ctx, r.db).Create(profile).Error
}

// Update saves changes to the profile
func (r *workshopProfileRepository) Update(ctx context.Context, profile *entity.WorkshopProfile) error {
	return conn(ctx, r.db).Save(profile).Error
}
