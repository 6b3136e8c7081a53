package handlers

import (
	"loandesk-backoffice/internal/core/services"
	"loandesk-backoffice/internal/pkg/response"
	"loandesk-backoffice/internal/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// CustomerHandler handles customer profile endpoints
type CustomerHandler struct {
	customerService    *services.CustomerService
	loanService        *services.LoanService
	transactionService *services.TransactionService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(
	customerService *services.CustomerService,
	loanService *services.LoanService,
	transactionService *services.TransactionService,
) *CustomerHandler {
	return &CustomerHandler{
		customerService:    customerService,
		loanService:        loanService,
		transactionService: transactionService,
	}
}

// Create handles customer onboarding
// @Summary Create customer
// @Description Create the user account and the customer profile together
// @Tags Customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateCustomerInput true "Customer data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var input services.CreateCustomerInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validator.Validate(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	customer, err := h.customerService.Create(c.Context(), &input)
	if err != nil {
		return handleDomainError(c, err)
	}

	return response.Created(c, "Customer created successfully", customer)
}

// GetByID handles getting a customer profile
// @Summary Get customer
// @Description Get a customer profile; customers may only read their own
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid customer ID")
	}

	if !h.mayAccess(c, id) {
		return response.Forbidden(c, "Forbidden")
	}

	customer, err := h.customerService.GetByID(c.Context(), id)
	if err != nil {
		return handleDomainError(c, err)
	}

	return response.Success(c, "Customer retrieved successfully", customer)
}

// List handles listing all customers (staff only)
// @Summary List customers
// @Description List all customer profiles
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	customers, err := h.customerService.List(c.Context())
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Customers retrieved successfully", customers)
}

// ListLoans handles listing a customer's loans with derived amounts
// @Summary List customer loans
// @Description List a customer's loans with derived amounts
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /customers/{id}/loans [get]
func (h *CustomerHandler) ListLoans(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid customer ID")
	}

	if !h.mayAccess(c, id) {
		return response.Forbidden(c, "Forbidden")
	}

	loans, err := h.loanService.ListByCustomer(c.Context(), id)
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Loans retrieved successfully", loans)
}

// ListTransactions handles listing a customer's ledger entries
// @Summary List customer transactions
// @Description List all ledger entries recorded against a customer's loans
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /customers/{id}/transactions [get]
func (h *CustomerHandler) ListTransactions(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid customer ID")
	}

	if !h.mayAccess(c, id) {
		return response.Forbidden(c, "Forbidden")
	}

	transactions, err := h.transactionService.ListByCustomer(c.Context(), id)
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Transactions retrieved successfully", transactions)
}

// Update handles updating a customer profile (staff only)
// @Summary Update customer
// @Description Update a customer profile
// @Tags Customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Param body body services.UpdateCustomerInput true "Customer data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid customer ID")
	}

	var input services.UpdateCustomerInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validator.Validate(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	customer, err := h.customerService.Update(c.Context(), id, &input)
	if err != nil {
		return handleDomainError(c, err)
	}

	return response.Success(c, "Customer updated successfully", customer)
}

// Delete handles deleting a customer account (admin only)
// @Summary Delete customer
// @Description Delete a customer with all their loans, ledger entries and login
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid customer ID")
	}

	if err := h.customerService.Delete(c.Context(), id); err != nil {
		return handleDomainError(c, err)
	}

	return response.Success(c, "Customer deleted successfully", nil)
}

// mayAccess reports whether the caller may read the customer's data:
// staff always, a customer only for their own id.
func (h *CustomerHandler) mayAccess(c *fiber.Ctx, customerID uint) bool {
	p := currentPrincipal(c)
	return p.IsStaff() || p.UserID == customerID
}
