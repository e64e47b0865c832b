package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/aluworks-api/internal/config"
	"github.com/sangkips/aluworks-api/internal/domain/entity"
	"github.com/sangkips/aluworks-api/internal/infrastructure/repository"
	"github.com/sangkips/aluworks-api/internal/testutil"
	"github.com/sangkips/aluworks-api/pkg/apperror"
	"github.com/sangkips/aluworks-api/pkg/printer"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	customers *CustomerService
	employees *EmployeeService
	sites     *SiteService
	projects  *ProjectService
	budgets   *BudgetService
	dashboard *DashboardService
	settings  *SettingsService
	printer   *PrinterService
	exports   *ExportService
}

var testWorkshop = config.WorkshopConfig{
	Name:     "Aluworks Fabrication",
	Address:  "12 Wilkinson Road, Freetown",
	Phone:    "+232 76 000000",
	Email:    "office@aluworks.sl",
	Currency: "SLE",
	Timezone: "Africa/Freetown",
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)

	customerRepo := repository.NewCustomerRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	siteRepo := repository.NewSiteRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	budgetRepo := repository.NewBudgetRepository(db)
	tx := repository.NewTransactor(db)

	sites := NewSiteService(siteRepo, customerRepo, projectRepo, tx)
	budgets := NewBudgetService(projectRepo, budgetRepo, tx)
	settings := NewSettingsService(repository.NewWorkshopProfileRepository(db), testWorkshop)

	return &fixture{
		customers: NewCustomerService(customerRepo, siteRepo, projectRepo, tx),
		employees: NewEmployeeService(employeeRepo, projectRepo, tx),
		sites:     sites,
		projects:  NewProjectService(projectRepo, budgetRepo, customerRepo, employeeRepo, siteRepo, sites, tx),
		budgets:   budgets,
		dashboard: NewDashboardService(customerRepo, employeeRepo, siteRepo, projectRepo, repository.NewAnalyticsRepository(db)),
		settings:  settings,
		printer:   NewPrinterService(printer.NewNullPrinter(), 40, projectRepo, settings),
		exports:   NewExportService(budgets, settings),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func str(s string) *string {
	return &s
}

func requireAppError(t *testing.T, err error, code int) *apperror.AppError {
	t.Helper()
	require.Error(t, err)
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
	return appErr
}

func (f *fixture) customer(t *testing.T, name string) *entity.Customer {
	t.Helper()
	c, err := f.customers.CreateCustomer(context.Background(), &CreateCustomerInput{
		FullName: name,
		Phone:    str("+232 77 123456"),
		Email:    str("client@example.com"),
	})
	require.NoError(t, err)
	return c
}

// scenarioItems is two materials worth 100 and labor worth 100
func scenarioItems() []ItemInput {
	return []ItemInput{
		{Category: "Material", Description: "Aluminium profile 6m", Unit: str("pcs"), Quantity: dec("2"), UnitPrice: dec("50")},
		{Category: "labor", Description: "Window fitting", Quantity: dec("1"), UnitPrice: dec("100")},
	}
}

func (f *fixture) project(t *testing.T, customerID uuid.UUID, input *CreateProjectInput) *entity.Project {
	t.Helper()
	if input == nil {
		input = &CreateProjectInput{Name: "Shopfront glazing", Items: scenarioItems()}
	}
	input.CustomerID = customerID
	p, err := f.projects.CreateProject(context.Background(), input)
	require.NoError(t, err)
	return p
}

func TestCreateProjectComputesBothCostModels(t *testing.T) {
	f := newFixture(t)
	c := f.customer(t, "Aminata Kamara")

	p := f.project(t, c.ID, &CreateProjectInput{
		Name:                   "Shopfront glazing",
		LaborCost:              dec("40"),
		ManualCost:             dec("10"),
		OverheadPercentage:     dec("10"),
		ProfitMarginPercentage: dec("15"),
		Items:                  scenarioItems(),
	})

	assert.Regexp(t, `^PRJ-[A-Z0-9]{8}$`, p.ProjectNumber)
	assert.Equal(t, "Planning", p.Status.String())
	assert.Equal(t, "Medium", p.Priority.String())
	assert.Equal(t, "200.00", p.TotalItemsCost.StringFixed(2))
	assert.Equal(t, "250.00", p.TotalProjectCost.StringFixed(2))

	require.NotNil(t, p.Budget)
	assert.Equal(t, "Shopfront glazing budget", p.Budget.Name)
	assert.Equal(t, "Draft", p.Budget.Status.String())
	assert.Equal(t, "100.00", p.Budget.MaterialsCost.StringFixed(2))
	assert.Equal(t, "100.00", p.Budget.LaborCost.StringFixed(2))
	assert.Equal(t, "200.00", p.Budget.Subtotal.StringFixed(2))
	assert.Equal(t, "20.00", p.Budget.OverheadAmount.StringFixed(2))
	assert.Equal(t, "33.00", p.Budget.ProfitAmount.StringFixed(2))
	assert.Equal(t, "253.00", p.Budget.TotalAmount.StringFixed(2))

	require.Len(t, p.Budget.Items, 2)
	assert.Equal(t, 0, p.Budget.Items[0].Position)
	assert.Equal(t, "Labor", p.Budget.Items[1].Category.String())
	assert.Equal(t, p.ID, p.Budget.Items[1].ProjectID)
}

func TestCreateProjectLaborOnly(t *testing.T) {
	f := newFixture(t)
	c := f.customer(t, "Ibrahim Bangura")

	p := f.project(t, c.ID, &CreateProjectInput{Name: "Repairs", LaborCost: dec("500")})

	assert.True(t, p.TotalItemsCost.IsZero())
	assert.Equal(t, "500.00", p.TotalProjectCost.StringFixed(2))
	require.NotNil(t, p.Budget)
	assert.True(t, p.Budget.TotalAmount.IsZero())
}

func TestCreateProjectWithNewSite(t *testing.T) {
	f := newFixture(t)
	c := f.customer(t, "Fatmata Conteh")

	p := f.project(t, c.ID, &CreateProjectInput{
		Name: "Balcony rails",
		NewSite: &CreateSiteInput{
			Name:    "Hill Station house",
			Address: "4 Regent Road",
			City:    str("Freetown"),
		},
	})

	require.NotNil(t, p.SiteID)
	require.NotNil(t, p.Site)
	assert.Equal(t, c.ID, p.Site.CustomerID)
	require.NotNil(t, p.SiteAddress)
	assert.Equal(t, "4 Regent Road, Freetown", *p.SiteAddress)
}

func TestCreateProjectRollsBackOnLateFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.customer(t, "Mohamed Sesay")
	missing := uuid.New()

	_, err := f.projects.CreateProject(ctx, &CreateProjectInput{
		Name:       "Office partitions",
		CustomerID: c.ID,
		NewSite:    &CreateSiteInput{Name: "Office", Address: "Siaka Stevens Street"},
		ManagerID:  &missing,
		Items:      scenarioItems(),
	})
	appErr := requireAppError(t, err, http.StatusUnprocessableEntity)
	assert.Equal(t, "manager_id", appErr.Errors[0].Field)

	sites, err := f.sites.ListSites(ctx, &ListSitesInput{})
	require.NoError(t, err)
	assert.Empty(t, sites.Items)

	projects, err := f.projects.ListProjects(ctx, &ListProjectsInput{})
	require.NoError(t, err)
	assert.Empty(t, projects.Items)
}

func TestCreateProjectValidation(t *testing.T) {
	f := newFixture(t)
	c := f.customer(t, "Hawa Koroma")
	other := f.customer(t, "Someone Else")
	otherSite, err := f.sites.CreateSite(context.Background(), &CreateSiteInput{CustomerID: other.ID, Name: "Yard", Address: "Kissy Road"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		input CreateProjectInput
		field string
	}{
		{"blank name", CreateProjectInput{Name: "  "}, "name"},
		{"unknown status", CreateProjectInput{Name: "X", Status: "Done"}, "status"},
		{"negative labor", CreateProjectInput{Name: "X", LaborCost: dec("-1")}, "labor_cost"},
		{"huge overhead", CreateProjectInput{Name: "X", OverheadPercentage: dec("1000")}, "overhead_percentage"},
		{"negative quantity", CreateProjectInput{Name: "X", Items: []ItemInput{{Category: "Material", Description: "Glass", Quantity: dec("-2"), UnitPrice: dec("1")}}}, "items[0].quantity"},
		{"unknown category", CreateProjectInput{Name: "X", Items: []ItemInput{{Category: "Snacks", Description: "Tea"}}}, "items[0].category"},
		{"foreign site", CreateProjectInput{Name: "X", SiteID: &otherSite.ID}, "site_id"},
		{"missing customer", CreateProjectInput{Name: "X", CustomerID: uuid.New()}, "customer_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.input
			if input.CustomerID == uuid.Nil {
				input.CustomerID = c.ID
			}
			_, err := f.projects.CreateProject(context.Background(), &input)
			appErr := requireAppError(t, err, http.StatusUnprocessableEntity)
			require.NotEmpty(t, appErr.Errors)
			assert.Equal(t, tt.field, appErr.Errors[0].Field)
		})
	}
}

func TestUpdateProjectRecomputesAndDetaches(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.customer(t, "Aminata Kamara")
	manager, err := f.employees.CreateEmployee(ctx, &CreateEmployeeInput{FullName: "Sorie Kamara"})
	require.NoError(t, err)

	p := f.project(t, c.ID, &CreateProjectInput{Name: "Doors", ManagerID: &manager.ID, Items: scenarioItems()})
	require.NotNil(t, p.ManagerID)

	none := uuid.Nil
	updated, err := f.projects.UpdateProject(ctx, &UpdateProjectInput{
		ID:         p.ID,
		ManualCost: ptrDec("25.5"),
		ManagerID:  &none,
		Priority:   str("urgent"),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.ManagerID)
	assert.Equal(t, "Urgent", updated.Priority.String())
	assert.Equal(t, "225.50", updated.TotalProjectCost.StringFixed(2))

	moved, err := f.projects.UpdateStatus(ctx, p.ID, "in progress")
	require.NoError(t, err)
	assert.Equal(t, "In Progress", moved.Status.String())

	_, err = f.projects.UpdateStatus(ctx, p.ID, "finished")
	requireAppError(t, err, http.StatusUnprocessableEntity)
}

func ptrDec(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestDeleteProjectRemovesBudget(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.project(t, f.customer(t, "A").ID, nil)

	require.NoError(t, f.projects.DeleteProject(ctx, p.ID))

	_, err := f.projects.GetProject(ctx, p.ID)
	requireAppError(t, err, http.StatusNotFound)
	_, err = f.budgets.GetBudget(ctx, p.ID, ItemFilter{})
	requireAppError(t, err, http.StatusNotFound)

	err = f.projects.DeleteProject(ctx, p.ID)
	requireAppError(t, err, http.StatusNotFound)
}

func TestListProjectsFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	smith := f.customer(t, "John Smith")
	jones := f.customer(t, "Mary Jones")

	f.project(t, smith.ID, &CreateProjectInput{Name: "Kitchen windows", Priority: "High"})
	f.project(t, jones.ID, &CreateProjectInput{Name: "Office door", Status: "Completed"})
	f.project(t, jones.ID, &CreateProjectInput{Name: "Garage door", Priority: "High"})

	tests := []struct {
		name  string
		input ListProjectsInput
		want  []string
	}{
		{"everything", ListProjectsInput{Status: "all"}, []string{"Garage door", "Office door", "Kitchen windows"}},
		{"customer name search", ListProjectsInput{Search: "SMITH"}, []string{"Kitchen windows"}},
		{"status", ListProjectsInput{Status: "completed"}, []string{"Office door"}},
		{"priority and customer", ListProjectsInput{Priority: "High", CustomerID: jones.ID.String()}, []string{"Garage door"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.projects.ListProjects(ctx, &tt.input)
			require.NoError(t, err)
			var names []string
			for _, p := range got.Items {
				names = append(names, p.Name)
			}
			assert.ElementsMatch(t, tt.want, names)
		})
	}
}
