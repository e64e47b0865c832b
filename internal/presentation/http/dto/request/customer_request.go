package request

// CreateCustomerRequest is the request body for creating a customer
type CreateCustomerRequest struct {
	FullName string  `json:"full_name" binding:"required,max=255"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone" binding:"omitempty,max=50"`
	Company  *string `json:"company" binding:"omitempty,max=255"`
	Address  *string `json:"address"`
}

// UpdateCustomerRequest is the request body for updating a customer. Omitted
// fields are left unchanged; an empty string clears an optional field.
type UpdateCustomerRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,max=255"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone" binding:"omitempty,max=50"`
	Company  *string `json:"company" binding:"omitempty,max=255"`
	Address  *string `json:"address"`
}

// CreateEmployeeRequest is the request body for creating an employee
type CreateEmployeeRequest struct {
	FullName    string  `json:"full_name" binding:"required,max=255"`
	Designation *string `json:"designation" binding:"omitempty,max=100"`
	Department  *string `json:"department" binding:"omitempty,max=100"`
	BadgeNumber *string `json:"badge_number" binding:"omitempty,max=50"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone" binding:"omitempty,max=50"`
	Status      string  `json:"status"`
}

// UpdateEmployeeRequest is the request body for updating an employee
type UpdateEmployeeRequest struct {
	FullName    *string `json:"full_name" binding:"omitempty,max=255"`
	Designation *string `json:"designation" binding:"omitempty,max=100"`
	Department  *string `json:"department" binding:"omitempty,max=100"`
	BadgeNumber *string `json:"badge_number" binding:"omitempty,max=50"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone" binding:"omitempty,max=50"`
	Status      *string `json:"status"`
}
