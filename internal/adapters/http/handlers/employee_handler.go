package handlers

import (
	"loandesk-backoffice/internal/core/services"
	"loandesk-backoffice/internal/pkg/response"
	"loandesk-backoffice/internal/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// EmployeeHandler handles employee profile endpoints (admin only)
type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// Create handles employee onboarding
// @Summary Create employee
// @Description Create the user account and the employee profile together
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateEmployeeInput true "Employee data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var input services.CreateEmployeeInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validator.Validate(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	employee, err := h.employeeService.Create(c.Context(), &input)
	if err != nil {
		return handleDomainError(c, err)
	}

	return response.Created(c, "Employee created successfully", employee)
}

// GetByID handles getting an employee profile
// @Summary Get employee
// @Description Get an employee profile by id
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id} [get]
func (h *EmployeeHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	employee, err := h.employeeService.GetByID(c.Context(), id)
	if err != nil {
		return handleDomainError(c, err)
	}

	return response.Success(c, "Employee retrieved successfully", employee)
}

// List handles listing all employees
// @Summary List employees
// @Description List all employee profiles
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	employees, err := h.employeeService.List(c.Context())
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Employees retrieved successfully", employees)
}

// Update handles updating an employee profile
// @Summary Update employee
// @Description Update an employee profile
// @Tags Employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param body body services.UpdateEmployeeInput true "Employee data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id} [put]
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	var input services.UpdateEmployeeInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validator.Validate(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	employee, err := h.employeeService.Update(c.Context(), id, &input)
	if err != nil {
		return handleDomainError(c, err)
	}

	return response.Success(c, "Employee updated successfully", employee)
}

// Delete handles deleting an employee account
// @Summary Delete employee
// @Description Delete an employee profile and login
// @Tags Employees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	if err := h.employeeService.Delete(c.Context(), id); err != nil {
		return handleDomainError(c, err)
	}

	return response.Success(c, "Employee deleted successfully", nil)
}
