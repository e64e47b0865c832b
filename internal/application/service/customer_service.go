package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/aluworks-api/internal/domain/entity"
	"github.com/sangkips/aluworks-api/internal/domain/enum"
	"github.com/sangkips/aluworks-api/internal/domain/repository"
	"github.com/sangkips/aluworks-api/pkg/apperror"
	"github.com/sangkips/aluworks-api/pkg/filter"
	"github.com/sangkips/aluworks-api/pkg/pagination"
	"github.com/sangkips/aluworks-api/pkg/utils"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
	siteRepo     repository.SiteRepository
	projectRepo  repository.ProjectRepository
	tx           repository.Transactor
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	siteRepo repository.SiteRepository,
	projectRepo repository.ProjectRepository,
	tx repository.Transactor,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		siteRepo:     siteRepo,
		projectRepo:  projectRepo,
		tx:           tx,
	}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	FullName string
	Email    *string
	Phone    *string
	Company  *string
	Address  *string
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	name, err := requireText("full_name", input.FullName)
	if err != nil {
		return nil, err
	}

	customer := &entity.Customer{
		FullName: name,
		Email:    trimPtr(input.Email),
		Phone:    trimPtr(input.Phone),
		Company:  trimPtr(input.Company),
		Address:  trimPtr(input.Address),
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomersInput carries the search box and page of the customer list
type ListCustomersInput struct {
	Search string
	Params *pagination.PaginationParams
}

var customerSearch = []filter.Field[entity.Customer]{
	func(c entity.Customer) string { return c.FullName },
	func(c entity.Customer) string { return utils.StringValue(c.Email) },
	func(c entity.Customer) string { return utils.StringValue(c.Company) },
	func(c entity.Customer) string { return utils.StringValue(c.Phone) },
}

// ListCustomers lists customers ordered by name, filtered by the search text
func (s *CustomerService) ListCustomers(ctx context.Context, input *ListCustomersInput) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := filter.Apply(customers, filter.Spec[entity.Customer]{
		Query:  input.Search,
		Search: customerSearch,
	})
	return pagination.Paginate(matched, input.Params), nil
}

// ListCustomerProjects lists the projects of one customer, newest first
func (s *CustomerService) ListCustomerProjects(ctx context.Context, id uuid.UUID) ([]entity.Project, error) {
	if _, err := s.GetCustomer(ctx, id); err != nil {
		return nil, err
	}
	projects, err := s.projectRepo.ListByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []entity.Project{}
	}
	return projects, nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	ID       uuid.UUID
	FullName *string
	Email    *string
	Phone    *string
	Company  *string
	Address  *string
}

// UpdateCustomer updates a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.GetCustomer(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		name, err := requireText("full_name", *input.FullName)
		if err != nil {
			return nil, err
		}
		customer.FullName = name
	}
	if input.Email != nil {
		customer.Email = trimPtr(input.Email)
	}
	if input.Phone != nil {
		customer.Phone = trimPtr(input.Phone)
	}
	if input.Company != nil {
		customer.Company = trimPtr(input.Company)
	}
	if input.Address != nil {
		customer.Address = trimPtr(input.Address)
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// DeleteCustomer deletes a customer and its sites. Customers that still have
// projects are kept.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetCustomer(ctx, id); err != nil {
		return err
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		hasProjects, err := s.customerRepo.HasProjects(ctx, id)
		if err != nil {
			return err
		}
		if hasProjects {
			return apperror.NewConflictError("Customer still has projects; delete them first")
		}

		sites, err := s.siteRepo.ListByCustomer(ctx, id)
		if err != nil {
			return err
		}
		for _, site := range sites {
			if err := s.siteRepo.Delete(ctx, site.ID); err != nil {
				return err
			}
		}
		return s.customerRepo.Delete(ctx, id)
	})
}

// EmployeeService handles staff records
type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
	projectRepo  repository.ProjectRepository
	tx           repository.Transactor
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(
	employeeRepo repository.EmployeeRepository,
	projectRepo repository.ProjectRepository,
	tx repository.Transactor,
) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo, projectRepo: projectRepo, tx: tx}
}

// CreateEmployeeInput represents the create employee input
type CreateEmployeeInput struct {
	FullName    string
	Designation *string
	Department  *string
	BadgeNumber *string
	Email       *string
	Phone       *string
	Status      string
}

// CreateEmployee creates a new employee
func (s *EmployeeService) CreateEmployee(ctx context.Context, input *CreateEmployeeInput) (*entity.Employee, error) {
	name, err := requireText("full_name", input.FullName)
	if err != nil {
		return nil, err
	}

	status := enum.EmployeeStatusActive
	if strings.TrimSpace(input.Status) != "" {
		parsed, ok := enum.ParseEmployeeStatus(input.Status)
		if !ok {
			return nil, oneOf("status", enum.EmployeeStatusNames())
		}
		status = parsed
	}

	employee := &entity.Employee{
		FullName:    name,
		Designation: trimPtr(input.Designation),
		Department:  trimPtr(input.Department),
		BadgeNumber: trimPtr(input.BadgeNumber),
		Email:       trimPtr(input.Email),
		Phone:       trimPtr(input.Phone),
		Status:      status,
	}
	if err := s.checkBadge(ctx, employee); err != nil {
		return nil, err
	}

	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// checkBadge rejects a badge number already held by another employee
func (s *EmployeeService) checkBadge(ctx context.Context, employee *entity.Employee) error {
	if employee.BadgeNumber == nil {
		return nil
	}
	holder, err := s.employeeRepo.GetByBadgeNumber(ctx, *employee.BadgeNumber)
	if err != nil {
		return err
	}
	if holder != nil && holder.ID != employee.ID {
		return apperror.NewConflictError("Badge number " + *employee.BadgeNumber + " is already assigned")
	}
	return nil
}

// GetEmployee retrieves an employee by ID
func (s *EmployeeService) GetEmployee(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, apperror.NewNotFoundError("Employee")
	}
	return employee, nil
}

// ListEmployeesInput carries the list filters of the staff page
type ListEmployeesInput struct {
	Search     string
	Department string
	Status     string
	Params     *pagination.PaginationParams
}

var employeeSearch = []filter.Field[entity.Employee]{
	func(e entity.Employee) string { return e.FullName },
	func(e entity.Employee) string { return utils.StringValue(e.Email) },
	func(e entity.Employee) string { return utils.StringValue(e.Designation) },
	func(e entity.Employee) string { return utils.StringValue(e.BadgeNumber) },
}

// ListEmployees lists employees ordered by name
func (s *EmployeeService) ListEmployees(ctx context.Context, input *ListEmployeesInput) (*pagination.PaginatedResult[entity.Employee], error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := filter.Apply(employees, filter.Spec[entity.Employee]{
		Query:  input.Search,
		Search: employeeSearch,
		Criteria: []filter.Criterion[entity.Employee]{
			{Value: input.Department, Field: func(e entity.Employee) string { return utils.StringValue(e.Department) }},
			{Value: input.Status, Field: func(e entity.Employee) string { return e.Status.String() }},
		},
	})
	return pagination.Paginate(matched, input.Params), nil
}

// UpdateEmployeeInput represents the update employee input
type UpdateEmployeeInput struct {
	ID          uuid.UUID
	FullName    *string
	Designation *string
	Department  *string
	BadgeNumber *string
	Email       *string
	Phone       *string
	Status      *string
}

// UpdateEmployee updates an employee
func (s *EmployeeService) UpdateEmployee(ctx context.Context, input *UpdateEmployeeInput) (*entity.Employee, error) {
	employee, err := s.GetEmployee(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		name, err := requireText("full_name", *input.FullName)
		if err != nil {
			return nil, err
		}
		employee.FullName = name
	}
	if input.Designation != nil {
		employee.Designation = trimPtr(input.Designation)
	}
	if input.Department != nil {
		employee.Department = trimPtr(input.Department)
	}
	if input.BadgeNumber != nil {
		employee.BadgeNumber = trimPtr(input.BadgeNumber)
	}
	if input.Email != nil {
		employee.Email = trimPtr(input.Email)
	}
	if input.Phone != nil {
		employee.Phone = trimPtr(input.Phone)
	}
	if input.Status != nil {
		status, ok := enum.ParseEmployeeStatus(*input.Status)
		if !ok {
			return nil, oneOf("status", enum.EmployeeStatusNames())
		}
		employee.Status = status
	}
	if err := s.checkBadge(ctx, employee); err != nil {
		return nil, err
	}

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// DeleteEmployee deletes an employee and unassigns it from projects
func (s *EmployeeService) DeleteEmployee(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetEmployee(ctx, id); err != nil {
		return err
	}

	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.projectRepo.ClearEmployee(ctx, id); err != nil {
			return err
		}
		return s.employeeRepo.Delete(ctx, id)
	})
}
