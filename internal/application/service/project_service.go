package service

import (
	"context"
	"fmt"
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

// ProjectService handles projects together with their budgets
type ProjectService struct {
	projectRepo  repository.ProjectRepository
	budgetRepo   repository.BudgetRepository
	customerRepo repository.CustomerRepository
	employeeRepo repository.EmployeeRepository
	siteRepo     repository.SiteRepository
	sites        *SiteService
	tx           repository.Transactor
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo repository.ProjectRepository,
	budgetRepo repository.BudgetRepository,
	customerRepo repository.CustomerRepository,
	employeeRepo repository.EmployeeRepository,
	siteRepo repository.SiteRepository,
	sites *SiteService,
	tx repository.Transactor,
) *ProjectService {
	return &ProjectService{
		projectRepo:  projectRepo,
		budgetRepo:   budgetRepo,
		customerRepo: customerRepo,
		employeeRepo: employeeRepo,
		siteRepo:     siteRepo,
		sites:        sites,
		tx:           tx,
	}
}

// CreateProjectInput is the project form: the project, an existing or new
// site, and the initial budget lines.
type CreateProjectInput struct {
	Name                   string
	Description            *string
	Status                 string
	Priority               string
	CustomerID             uuid.UUID
	SiteID                 *uuid.UUID
	NewSite                *CreateSiteInput
	SiteAddress            *string
	ManagerID              *uuid.UUID
	TeamLeadID             *uuid.UUID
	StartDate              *time.Time
	ExpectedCompletionDate *time.Time
	LaborCost              decimal.Decimal
	ManualCost             decimal.Decimal
	WorkmanshipFee         decimal.Decimal
	OverheadPercentage     decimal.Decimal
	ProfitMarginPercentage decimal.Decimal
	BudgetName             *string
	BudgetNotes            *string
	Items                  []ItemInput
}

// CreateProject stores the project, optional new site, budget and items in
// one transaction, with both cost models computed from the items.
func (s *ProjectService) CreateProject(ctx context.Context, input *CreateProjectInput) (*entity.Project, error) {
	name, err := requireText("name", input.Name)
	if err != nil {
		return nil, err
	}
	status, priority, err := parseStatusPriority(input.Status, input.Priority)
	if err != nil {
		return nil, err
	}
	if err := checkCosts(input.LaborCost, input.ManualCost, input.WorkmanshipFee, input.OverheadPercentage, input.ProfitMarginPercentage); err != nil {
		return nil, err
	}
	if err := checkDateRange("expected_completion_date", input.StartDate, input.ExpectedCompletionDate); err != nil {
		return nil, err
	}
	if input.SiteID != nil && input.NewSite != nil {
		return nil, apperror.NewFieldError("site", "choose an existing site or a new one, not both")
	}

	items := make([]entity.BudgetItem, 0, len(input.Items))
	for i, in := range input.Items {
		li, err := in.lineItem(fmt.Sprintf("items[%d].", i))
		if err != nil {
			return nil, err
		}
		items = append(items, in.budgetItem(li, i))
	}

	project := &entity.Project{
		ID:                     uuid.New(),
		ProjectNumber:          utils.GenerateReferenceNo("PRJ"),
		Name:                   name,
		Description:            trimPtr(input.Description),
		Status:                 status,
		Priority:               priority,
		CustomerID:             input.CustomerID,
		StartDate:              input.StartDate,
		ExpectedCompletionDate: input.ExpectedCompletionDate,
		LaborCost:              input.LaborCost,
		ManualCost:             input.ManualCost,
		WorkmanshipFee:         input.WorkmanshipFee,
		OverheadPercentage:     input.OverheadPercentage,
		ProfitMarginPercentage: input.ProfitMarginPercentage,
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.requireCustomer(ctx, project.CustomerID); err != nil {
			return err
		}

		var site *entity.Site
		switch {
		case input.SiteID != nil:
			if site, err = s.customerSite(ctx, *input.SiteID, project.CustomerID); err != nil {
				return err
			}
		case input.NewSite != nil:
			ns := *input.NewSite
			ns.CustomerID = project.CustomerID
			if site, err = s.sites.newSite(ctx, &ns, "site."); err != nil {
				return err
			}
			if err := s.siteRepo.Create(ctx, site); err != nil {
				return err
			}
		}
		if site != nil {
			project.SiteID = &site.ID
		}
		project.SiteAddress = siteAddress(input.SiteAddress, site)

		if err := s.requireEmployee(ctx, "manager_id", input.ManagerID); err != nil {
			return err
		}
		if err := s.requireEmployee(ctx, "team_lead_id", input.TeamLeadID); err != nil {
			return err
		}
		project.ManagerID = input.ManagerID
		project.TeamLeadID = input.TeamLeadID

		budget := &entity.Budget{
			ProjectID: project.ID,
			Name:      defaultBudgetName(project.Name, input.BudgetName),
			Status:    enum.BudgetStatusDraft,
			Notes:     trimPtr(input.BudgetNotes),
			Items:     items,
		}
		for i := range budget.Items {
			budget.Items[i].ProjectID = project.ID
		}
		if err := recalculate(project, budget); err != nil {
			return err
		}

		if err := s.projectRepo.Create(ctx, project); err != nil {
			return err
		}
		return s.budgetRepo.Create(ctx, budget)
	})
	if err != nil {
		return nil, err
	}

	return s.GetProject(ctx, project.ID)
}

func parseStatusPriority(rawStatus, rawPriority string) (enum.ProjectStatus, enum.Priority, error) {
	status := enum.ProjectStatusPlanning
	if strings.TrimSpace(rawStatus) != "" {
		parsed, ok := enum.ParseProjectStatus(rawStatus)
		if !ok {
			return "", "", oneOf("status", enum.ProjectStatusNames())
		}
		status = parsed
	}
	priority := enum.PriorityMedium
	if strings.TrimSpace(rawPriority) != "" {
		parsed, ok := enum.ParsePriority(rawPriority)
		if !ok {
			return "", "", oneOf("priority", enum.PriorityNames())
		}
		priority = parsed
	}
	return status, priority, nil
}

func checkCosts(labor, manual, fee, overhead, profit decimal.Decimal) error {
	if err := checkAmount("labor_cost", labor); err != nil {
		return err
	}
	if err := checkAmount("manual_cost", manual); err != nil {
		return err
	}
	if err := checkAmount("workmanship_fee", fee); err != nil {
		return err
	}
	if err := percentage("overhead_percentage", overhead); err != nil {
		return err
	}
	return percentage("profit_margin_percentage", profit)
}

// siteAddress prefers an explicit address and falls back to the site's
func siteAddress(explicit *string, site *entity.Site) *string {
	if v := trimPtr(explicit); v != nil {
		return v
	}
	if site == nil {
		return nil
	}
	addr := site.FullAddress()
	return &addr
}

func (s *ProjectService) requireCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewFieldError("customer_id", "does not exist")
	}
	return nil
}

// customerSite loads a site and checks that it belongs to customerID
func (s *ProjectService) customerSite(ctx context.Context, siteID, customerID uuid.UUID) (*entity.Site, error) {
	site, err := s.siteRepo.GetByID(ctx, siteID)
	if err != nil {
		return nil, err
	}
	if site == nil {
		return nil, apperror.NewFieldError("site_id", "does not exist")
	}
	if site.CustomerID != customerID {
		return nil, apperror.NewFieldError("site_id", "belongs to another customer")
	}
	return site, nil
}

func (s *ProjectService) requireEmployee(ctx context.Context, field string, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	employee, err := s.employeeRepo.GetByID(ctx, *id)
	if err != nil {
		return err
	}
	if employee == nil {
		return apperror.NewFieldError(field, "does not exist")
	}
	return nil
}

// GetProject retrieves a project with customer, site, staff and budget
func (s *ProjectService) GetProject(ctx context.Context, id uuid.UUID) (*entity.Project, error) {
	project, err := s.projectRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperror.NewNotFoundError("Project")
	}
	return project, nil
}

// ListProjectsInput carries the list filters of the projects page
type ListProjectsInput struct {
	Search     string
	Status     string
	Priority   string
	CustomerID string
	Params     *pagination.PaginationParams
}

func projectCustomerName(p entity.Project) string {
	if p.Customer == nil {
		return ""
	}
	return p.Customer.FullName
}

var projectSearch = []filter.Field[entity.Project]{
	func(p entity.Project) string { return p.Name },
	func(p entity.Project) string { return p.ProjectNumber },
	func(p entity.Project) string { return utils.StringValue(p.Description) },
	projectCustomerName,
}

// ListProjects lists projects newest first
func (s *ProjectService) ListProjects(ctx context.Context, input *ListProjectsInput) (*pagination.PaginatedResult[entity.Project], error) {
	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := filter.Apply(projects, filter.Spec[entity.Project]{
		Query:  input.Search,
		Search: projectSearch,
		Criteria: []filter.Criterion[entity.Project]{
			{Value: input.Status, Field: func(p entity.Project) string { return p.Status.String() }},
			{Value: input.Priority, Field: func(p entity.Project) string { return p.Priority.String() }},
			{Value: input.CustomerID, Field: func(p entity.Project) string { return p.CustomerID.String() }},
		},
	})
	return pagination.Paginate(matched, input.Params), nil
}

// UpdateProjectInput represents a partial project change. For SiteID,
// ManagerID and TeamLeadID a pointer to uuid.Nil clears the reference.
type UpdateProjectInput struct {
	ID                     uuid.UUID
	Name                   *string
	Description            *string
	Status                 *string
	Priority               *string
	CustomerID             *uuid.UUID
	SiteID                 *uuid.UUID
	SiteAddress            *string
	ManagerID              *uuid.UUID
	TeamLeadID             *uuid.UUID
	StartDate              *time.Time
	ExpectedCompletionDate *time.Time
	LaborCost              *decimal.Decimal
	ManualCost             *decimal.Decimal
	WorkmanshipFee         *decimal.Decimal
	OverheadPercentage     *decimal.Decimal
	ProfitMarginPercentage *decimal.Decimal
}

// UpdateProject applies the changes and recomputes the stored totals
func (s *ProjectService) UpdateProject(ctx context.Context, input *UpdateProjectInput) (*entity.Project, error) {
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		project, err := s.projectRepo.GetByID(ctx, input.ID)
		if err != nil {
			return err
		}
		if project == nil {
			return apperror.NewNotFoundError("Project")
		}

		if input.Name != nil {
			if project.Name, err = requireText("name", *input.Name); err != nil {
				return err
			}
		}
		if input.Description != nil {
			project.Description = trimPtr(input.Description)
		}
		if input.Status != nil {
			status, ok := enum.ParseProjectStatus(*input.Status)
			if !ok {
				return oneOf("status", enum.ProjectStatusNames())
			}
			project.Status = status
		}
		if input.Priority != nil {
			priority, ok := enum.ParsePriority(*input.Priority)
			if !ok {
				return oneOf("priority", enum.PriorityNames())
			}
			project.Priority = priority
		}
		if input.CustomerID != nil && *input.CustomerID != project.CustomerID {
			if err := s.requireCustomer(ctx, *input.CustomerID); err != nil {
				return err
			}
			project.CustomerID = *input.CustomerID
		}

		if err := s.applySite(ctx, project, input); err != nil {
			return err
		}
		if project.ManagerID, err = s.reassign(ctx, "manager_id", project.ManagerID, input.ManagerID); err != nil {
			return err
		}
		if project.TeamLeadID, err = s.reassign(ctx, "team_lead_id", project.TeamLeadID, input.TeamLeadID); err != nil {
			return err
		}

		if input.StartDate != nil {
			project.StartDate = input.StartDate
		}
		if input.ExpectedCompletionDate != nil {
			project.ExpectedCompletionDate = input.ExpectedCompletionDate
		}
		if err := checkDateRange("expected_completion_date", project.StartDate, project.ExpectedCompletionDate); err != nil {
			return err
		}

		setDecimal(&project.LaborCost, input.LaborCost)
		setDecimal(&project.ManualCost, input.ManualCost)
		setDecimal(&project.WorkmanshipFee, input.WorkmanshipFee)
		setDecimal(&project.OverheadPercentage, input.OverheadPercentage)
		setDecimal(&project.ProfitMarginPercentage, input.ProfitMarginPercentage)
		if err := checkCosts(project.LaborCost, project.ManualCost, project.WorkmanshipFee, project.OverheadPercentage, project.ProfitMarginPercentage); err != nil {
			return err
		}

		budget, err := s.budgetRepo.GetByProjectID(ctx, project.ID)
		if err != nil {
			return err
		}
		if budget == nil {
			budget = &entity.Budget{ProjectID: project.ID, Name: defaultBudgetName(project.Name, nil)}
			if err := recalculate(project, budget); err != nil {
				return err
			}
			if err := s.budgetRepo.Create(ctx, budget); err != nil {
				return err
			}
		} else {
			if err := recalculate(project, budget); err != nil {
				return err
			}
			if err := s.budgetRepo.Update(ctx, budget); err != nil {
				return err
			}
		}
		return s.projectRepo.Update(ctx, project)
	})
	if err != nil {
		return nil, err
	}

	return s.GetProject(ctx, input.ID)
}

func setDecimal(dst *decimal.Decimal, v *decimal.Decimal) {
	if v != nil {
		*dst = *v
	}
}

// applySite changes or clears the site and keeps it owned by the project's customer
func (s *ProjectService) applySite(ctx context.Context, project *entity.Project, input *UpdateProjectInput) error {
	var site *entity.Site
	switch {
	case input.SiteID != nil && *input.SiteID == uuid.Nil:
		project.SiteID = nil
	case input.SiteID != nil:
		found, err := s.customerSite(ctx, *input.SiteID, project.CustomerID)
		if err != nil {
			return err
		}
		site = found
		project.SiteID = &found.ID
	case project.SiteID != nil:
		if _, err := s.customerSite(ctx, *project.SiteID, project.CustomerID); err != nil {
			return err
		}
	}

	switch {
	case input.SiteAddress != nil:
		project.SiteAddress = siteAddress(input.SiteAddress, site)
	case site != nil:
		project.SiteAddress = siteAddress(nil, site)
	}
	return nil
}

func (s *ProjectService) reassign(ctx context.Context, field string, current, next *uuid.UUID) (*uuid.UUID, error) {
	if next == nil {
		return current, nil
	}
	if *next == uuid.Nil {
		return nil, nil
	}
	if err := s.requireEmployee(ctx, field, next); err != nil {
		return nil, err
	}
	id := *next
	return &id, nil
}

// UpdateStatus moves a project to another status
func (s *ProjectService) UpdateStatus(ctx context.Context, id uuid.UUID, rawStatus string) (*entity.Project, error) {
	status, ok := enum.ParseProjectStatus(rawStatus)
	if !ok {
		return nil, oneOf("status", enum.ProjectStatusNames())
	}

	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperror.NewNotFoundError("Project")
	}

	project.Status = status
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject deletes the project with its budget and items
func (s *ProjectService) DeleteProject(ctx context.Context, id uuid.UUID) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		project, err := s.projectRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if project == nil {
			return apperror.NewNotFoundError("Project")
		}
		if err := s.budgetRepo.DeleteByProjectID(ctx, id); err != nil {
			return err
		}
		return s.projectRepo.Delete(ctx, id)
	})
}
