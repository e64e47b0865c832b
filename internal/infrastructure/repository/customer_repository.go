package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/aluworks-api/internal/domain/entity"
	domainRepo "github.com/sangkips/aluworks-api/internal/domain/repository"
	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return translate(conn(ctx, r.db).Create(customer).Error)
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := conn(ctx, r.db).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return translate(conn(ctx, r.db).Save(customer).Error)
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(conn(ctx, r.db).Delete(&entity.Customer{}, "id = ?", id).Error)
}

func (r *customerRepository) List(ctx context.Context) ([]entity.Customer, error) {
	var customers []entity.Customer
	err := conn(ctx, r.db).Order("full_name ASC").Find(&customers).Error
	return customers, err
}

func (r *customerRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := conn(ctx, r.db).Model(&entity.Customer{}).Count(&total).Error
	return total, err
}

func (r *customerRepository) HasProjects(ctx context.Context, id uuid.UUID) (bool, error) {
	var total int64
	err := conn(ctx, r.db).Model(&entity.Project{}).Where("customer_id = ?", id).Count(&total).Error
	return total > 0, err
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) domainRepo.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, employee *entity.Employee) error {
	return translate(conn(ctx, r.db).Create(employee).Error)
}

func (r *employeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	var employee entity.Employee
	err := conn(ctx, r.db).First(&employee, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &employee, err
}

func (r *employeeRepository) GetByBadgeNumber(ctx context.Context, badge string) (*entity.Employee, error) {
	var employee entity.Employee
	err := conn(ctx, r.db).First(&employee, "badge_number = ?", badge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &employee, err
}

func (r *employeeRepository) Update(ctx context.Context, employee *entity.Employee) error {
	return translate(conn(ctx, r.db).Save(employee).Error)
}

func (r *employeeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return translate(conn(ctx, r.db).Delete(&entity.Employee{}, "id = ?", id).Error)
}

func (r *employeeRepository) List(ctx context.Context) ([]entity.Employee, error) {
	var employees []entity.Employee
	err := conn(ctx, r.db).Order("full_name ASC").Find(&employees).Error
	return employees, err
}

func (r *employeeRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := conn(ctx, r.db).Model(&entity.Employee{}).Count(&total).Error
	return total, err
}
