package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/aluworks-api/internal/domain/entity"
	domainRepo "github.com/sangkips/aluworks-api/internal/domain/repository"
	"gorm.io/gorm"
)

type siteRepository struct {
	db *gorm.DB
}

// NewSiteRepository creates a new site repository
func NewSiteRepository(db *gorm.DB) domainRepo.SiteRepository {
	return &siteRepository{db: db}
}

func (r *siteRepository) Create(ctx context.Context, site *entity.Site) error {
	return translate(conn(ctx, r.db).Omit("Customer").Create(site).Error)
}

func (r *siteRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Site, error) {
	var site entity.Site
	err := conn(ctx, r.db).Preload("Customer").First(&site, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &site, err
}

func (r *siteRepository) Update(ctx context.Context, site *entity.Site) error {
	return translate(conn(ctx, r.db).Omit("Customer").Save(site).Error)
}

func (r *siteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(conn(ctx, r.db).Delete(&entity.Site{}, "id = ?", id).Error)
}

func (r *siteRepository) List(ctx context.Context) ([]entity.Site, error) {
	var sites []entity.Site
	err := conn(ctx, r.db).Preload("Customer").Order("created_at DESC").Find(&sites).Error
	return sites, err
}

func (r *siteRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Site, error) {
	var sites []entity.Site
	err := conn(ctx, r.db).Where("customer_id = ?", customerID).Order("created_at DESC").Find(&sites).Error
	return sites, err
}

func (r *siteRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := conn(ctx, r.db).Model(&entity.Site{}).Count(&total).Error
	return total, err
}
