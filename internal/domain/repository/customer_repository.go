package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/aluworks-api/internal/domain/entity"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns every customer ordered by name; callers filter and paginate in memory.
	List(ctx context.Context) ([]entity.Customer, error)
	Count(ctx context.Context) (int64, error)
	// HasProjects reports whether any live project still references the customer.
	HasProjects(ctx context.Context, id uuid.UUID) (bool, error)
}

// EmployeeRepository defines the interface for staff data operations
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error)
	GetByBadgeNumber(ctx context.Context, badge string) (*entity.Employee, error)
	Update(ctx context.Context, employee *entity.Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.Employee, error)
	Count(ctx context.Context) (int64, error)
}
