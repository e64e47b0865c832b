package service

import (
	"context"

	"github.com/sangkips/aluworks-api/internal/domain/entity"
	"github.com/sangkips/aluworks-api/internal/domain/enum"
	"github.com/sangkips/aluworks-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const recentProjectsLimit = 5

// DashboardService provides dashboard statistics
type DashboardService struct {
	customerRepo  repository.CustomerRepository
	employeeRepo  repository.EmployeeRepository
	siteRepo      repository.SiteRepository
	projectRepo   repository.ProjectRepository
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	customerRepo repository.CustomerRepository,
	employeeRepo repository.EmployeeRepository,
	siteRepo repository.SiteRepository,
	projectRepo repository.ProjectRepository,
	analyticsRepo repository.AnalyticsRepository,
) *DashboardService {
	return &DashboardService{
		customerRepo:  customerRepo,
		employeeRepo:  employeeRepo,
		siteRepo:      siteRepo,
		projectRepo:   projectRepo,
		analyticsRepo: analyticsRepo,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TotalCustomers   int64                `json:"total_customers"`
	TotalEmployees   int64                `json:"total_employees"`
	TotalSites       int64                `json:"total_sites"`
	TotalProjects    int64                `json:"total_projects"`
	ActiveProjects   int64                `json:"active_projects"`
	PipelineValue    decimal.Decimal      `json:"pipeline_value"`
	BudgetedValue    decimal.Decimal      `json:"budgeted_value"`
	ProjectsByStatus []StatusPoint        `json:"projects_by_status"`
	BudgetByCategory []CategoryTotalPoint `json:"budget_by_category"`
	RecentProjects   []RecentProject      `json:"recent_projects"`
}

// StatusPoint is the project count of one status
type StatusPoint struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// CategoryTotalPoint is the budgeted amount of one item category
type CategoryTotalPoint struct {
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	ItemCount int64           `json:"item_count"`
}

// RecentProject is a short project row for the dashboard
type RecentProject struct {
	ID               string             `json:"id"`
	ProjectNumber    string             `json:"project_number"`
	Name             string             `json:"name"`
	Customer         string             `json:"customer"`
	Status           enum.ProjectStatus `json:"status"`
	TotalProjectCost decimal.Decimal    `json:"total_project_cost"`
}

// GetDashboardStats returns dashboard statistics
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.TotalCustomers, err = s.customerRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalEmployees, err = s.employeeRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalSites, err = s.siteRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.PipelineValue, err = s.analyticsRepo.GetPipelineValue(ctx); err != nil {
		return nil, err
	}
	if stats.BudgetedValue, err = s.analyticsRepo.GetBudgetedValue(ctx); err != nil {
		return nil, err
	}

	// Every status is reported, including those with no projects
	counts, err := s.analyticsRepo.GetProjectStatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	byStatus := make(map[string]int64, len(counts))
	for _, c := range counts {
		byStatus[c.Status] = c.Count
	}
	stats.ProjectsByStatus = make([]StatusPoint, 0, len(enum.ProjectStatuses()))
	for _, status := range enum.ProjectStatuses() {
		n := byStatus[status.String()]
		stats.ProjectsByStatus = append(stats.ProjectsByStatus, StatusPoint{Status: status.String(), Count: n})
		stats.TotalProjects += n
		if status == enum.ProjectStatusInProgress {
			stats.ActiveProjects = n
		}
	}

	totals, err := s.analyticsRepo.GetBudgetCategoryTotals(ctx)
	if err != nil {
		return nil, err
	}
	byCategory := make(map[string]repository.CategoryTotalResult, len(totals))
	for _, t := range totals {
		byCategory[t.Category] = t
	}
	stats.BudgetByCategory = make([]CategoryTotalPoint, 0, len(totals))
	for _, name := range enum.ItemCategoryNames() {
		if t, ok := byCategory[name]; ok {
			stats.BudgetByCategory = append(stats.BudgetByCategory, CategoryTotalPoint{
				Category:  name,
				Amount:    t.Total,
				ItemCount: t.ItemCount,
			})
		}
	}

	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(projects) > recentProjectsLimit {
		projects = projects[:recentProjectsLimit]
	}
	stats.RecentProjects = make([]RecentProject, 0, len(projects))
	for _, p := range projects {
		stats.RecentProjects = append(stats.RecentProjects, recentProject(p))
	}

	return stats, nil
}

func recentProject(p entity.Project) RecentProject {
	return RecentProject{
		ID:               p.ID.String(),
		ProjectNumber:    p.ProjectNumber,
		Name:             p.Name,
		Customer:         projectCustomerName(p),
		Status:           p.Status,
		TotalProjectCost: p.TotalProjectCost,
	}
}
