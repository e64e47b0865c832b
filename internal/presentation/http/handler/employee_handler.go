package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/aluworks-api/internal/application/service"
	"github.com/sangkips/aluworks-api/internal/presentation/http/dto/request"
	"github.com/sangkips/aluworks-api/internal/presentation/http/dto/response"
)

// EmployeeHandler handles employee requests
type EmployeeHandler struct {
	employeeService *service.EmployeeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// List handles listing employees, filtered by search, department and status
func (h *EmployeeHandler) List(c *gin.Context) {
	result, err := h.employeeService.ListEmployees(c.Request.Context(), &service.ListEmployeesInput{
		Search:     c.Query("search"),
		Department: c.Query("department"),
		Status:     c.Query("status"),
		Params:     pageParams(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Employees retrieved successfully", result)
}

// Create handles creating an employee
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req request.CreateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	employee, err := h.employeeService.CreateEmployee(c.Request.Context(), &service.CreateEmployeeInput{
		FullName:    req.FullName,
		Designation: req.Designation,
		Department:  req.Department,
		BadgeNumber: req.BadgeNumber,
		Email:       req.Email,
		Phone:       req.Phone,
		Status:      req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Employee created successfully", employee)
}

// Get handles getting a single employee
func (h *EmployeeHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "employee")
	if !ok {
		return
	}

	employee, err := h.employeeService.GetEmployee(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee retrieved successfully", employee)
}

// Update handles updating an employee
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "employee")
	if !ok {
		return
	}

	var req request.UpdateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	employee, err := h.employeeService.UpdateEmployee(c.Request.Context(), &service.UpdateEmployeeInput{
		ID:          id,
		FullName:    req.FullName,
		Designation: req.Designation,
		Department:  req.Department,
		BadgeNumber: req.BadgeNumber,
		Email:       req.Email,
		Phone:       req.Phone,
		Status:      req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee updated successfully", employee)
}

// Delete handles deleting an employee
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "employee")
	if !ok {
		return
	}

	if err := h.employeeService.DeleteEmployee(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Employee deleted successfully", nil)
}
