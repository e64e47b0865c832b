package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/aluworks-api/internal/domain/entity"
	"github.com/sangkips/aluworks-api/internal/domain/enum"
	"github.com/sangkips/aluworks-api/internal/domain/repository"
	"github.com/sangkips/aluworks-api/pkg/apperror"
	"github.com/sangkips/aluworks-api/pkg/filter"
	"github.com/sangkips/aluworks-api/pkg/pagination"
	"github.com/sangkips/aluworks-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// SiteService handles construction sites
type SiteService struct {
	siteRepo     repository.SiteRepository
	customerRepo repository.CustomerRepository
	projectRepo  repository.ProjectRepository
	tx           repository.Transactor
}

// NewSiteService creates a new site service
func NewSiteService(
	siteRepo repository.SiteRepository,
	customerRepo repository.CustomerRepository,
	projectRepo repository.ProjectRepository,
	tx repository.Transactor,
) *SiteService {
	return &SiteService{
		siteRepo:     siteRepo,
		customerRepo: customerRepo,
		projectRepo:  projectRepo,
		tx:           tx,
	}
}

// CreateSiteInput represents the create site input
type CreateSiteInput struct {
	CustomerID    uuid.UUID
	Name          string
	Address       string
	City          *string
	BudgetCeiling decimal.Decimal
	Status        string
	StartDate     *time.Time
	EndDate       *time.Time
	Notes         *string
}

// CreateSite creates a site for an existing customer
func (s *SiteService) CreateSite(ctx context.Context, input *CreateSiteInput) (*entity.Site, error) {
	site, err := s.newSite(ctx, input, "")
	if err != nil {
		return nil, err
	}
	if err := s.siteRepo.Create(ctx, site); err != nil {
		return nil, err
	}
	return s.GetSite(ctx, site.ID)
}

// newSite validates input and builds an unsaved site. prefix qualifies field
// names when the site is nested in another request.
func (s *SiteService) newSite(ctx context.Context, input *CreateSiteInput, prefix string) (*entity.Site, error) {
	name, err := requireText(prefix+"name", input.Name)
	if err != nil {
		return nil, err
	}
	address, err := requireText(prefix+"address", input.Address)
	if err != nil {
		return nil, err
	}
	if err := checkAmount(prefix+"budget_ceiling", input.BudgetCeiling); err != nil {
		return nil, err
	}
	if err := checkDateRange(prefix+"end_date", input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	status := enum.SiteStatusPlanning
	if strings.TrimSpace(input.Status) != "" {
		parsed, ok := enum.ParseSiteStatus(input.Status)
		if !ok {
			return nil, oneOf(prefix+"status", enum.SiteStatusNames())
		}
		status = parsed
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewFieldError("customer_id", "does not exist")
	}

	return &entity.Site{
		CustomerID:    input.CustomerID,
		Name:          name,
		Address:       address,
		City:          trimPtr(input.City),
		BudgetCeiling: input.BudgetCeiling,
		Status:        status,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		Notes:         trimPtr(input.Notes),
	}, nil
}

func checkDateRange(field string, start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return apperror.NewFieldError(field, "must not be before the start date")
	}
	return nil
}

// GetSite retrieves a site with its customer
func (s *SiteService) GetSite(ctx context.Context, id uuid.UUID) (*entity.Site, error) {
	site, err := s.siteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, apperror.NewNotFoundError("Site")
	}
	return site, nil
}

// ListSitesInput carries the list filters of the sites page
type ListSitesInput struct {
	Search     string
	Status     string
	CustomerID string
	Params     *pagination.PaginationParams
}

func siteCustomerName(s entity.Site) string {
	if s.Customer == nil {
		return ""
	}
	return s.Customer.FullName
}

var siteSearch = []filter.Field[entity.Site]{
	func(s entity.Site) string { return s.Name },
	func(s entity.Site) string { return s.Address },
	func(s entity.Site) string { return utils.StringValue(s.City) },
	siteCustomerName,
}

// ListSites lists sites newest first
func (s *SiteService) ListSites(ctx context.Context, input *ListSitesInput) (*pagination.PaginatedResult[entity.Site], error) {
	sites, err := s.siteRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := filter.Apply(sites, filter.Spec[entity.Site]{
		Query:  input.Search,
		Search: siteSearch,
		Criteria: []filter.Criterion[entity.Site]{
			{Value: input.Status, Field: func(s entity.Site) string { return s.Status.String() }},
			{Value: input.CustomerID, Field: func(s entity.Site) string { return s.CustomerID.String() }},
		},
	})
	return pagination.Paginate(matched, input.Params), nil
}

// UpdateSiteInput represents the update site input
type UpdateSiteInput struct {
	ID            uuid.UUID
	CustomerID    *uuid.UUID
	Name          *string
	Address       *string
	City          *string
	BudgetCeiling *decimal.Decimal
	Status        *string
	StartDate     *time.Time
	EndDate       *time.Time
	Notes         *string
}

// UpdateSite updates a site
func (s *SiteService) UpdateSite(ctx context.Context, input *UpdateSiteInput) (*entity.Site, error) {
	site, err := s.GetSite(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.CustomerID != nil && *input.CustomerID != site.CustomerID {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewFieldError("customer_id", "does not exist")
		}
		site.CustomerID = customer.ID
		site.Customer = customer
	}
	if input.Name != nil {
		if site.Name, err = requireText("name", *input.Name); err != nil {
			return nil, err
		}
	}
	if input.Address != nil {
		if site.Address, err = requireText("address", *input.Address); err != nil {
			return nil, err
		}
	}
	if input.City != nil {
		site.City = trimPtr(input.City)
	}
	if input.BudgetCeiling != nil {
		if err := checkAmount("budget_ceiling", *input.BudgetCeiling); err != nil {
			return nil, err
		}
		site.BudgetCeiling = *input.BudgetCeiling
	}
	if input.Status != nil {
		status, ok := enum.ParseSiteStatus(*input.Status)
		if !ok {
			return nil, oneOf("status", enum.SiteStatusNames())
		}
		site.Status = status
	}
	if input.StartDate != nil {
		site.StartDate = input.StartDate
	}
	if input.EndDate != nil {
		site.EndDate = input.EndDate
	}
	if input.Notes != nil {
		site.Notes = trimPtr(input.Notes)
	}
	if err := checkDateRange("end_date", site.StartDate, site.EndDate); err != nil {
		return nil, err
	}

	if err := s.siteRepo.Update(ctx, site); err != nil {
		return nil, err
	}
	return site, nil
}

// DeleteSite deletes a site and detaches it from its projects
func (s *SiteService) DeleteSite(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetSite(ctx, id); err != nil {
		return err
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.projectRepo.ClearSite(ctx, id); err != nil {
			return err
		}
		return s.siteRepo.Delete(ctx, id)
	})
}
