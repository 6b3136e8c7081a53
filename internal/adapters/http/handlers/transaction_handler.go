package handlers

import (
	"loandesk-backoffice/internal/core/domain"
	"loandesk-backoffice/internal/core/services"
	"loandesk-backoffice/internal/pkg/response"
	"loandesk-backoffice/internal/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// TransactionHandler handles transaction ledger endpoints
type TransactionHandler struct {
	transactionService *services.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *services.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// Create handles freeform ledger entry creation (staff only)
// @Summary Create transaction
// @Description Append a ledger entry directly; no interest cross-check is applied
// @Tags Transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateTransactionInput true "Transaction data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var input services.CreateTransactionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validator.Validate(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	// Record the booking employee when the caller is one.
	if input.EmployeeID == nil {
		if p := currentPrincipal(c); p.Role == domain.RoleEmployee {
			input.EmployeeID = &p.UserID
		}
	}

	transaction, err := h.transactionService.Create(c.Context(), &input)
	if err != nil {
		return handleDomainError(c, err)
	}

	return response.Created(c, "Transaction created successfully", transaction)
}

// GetByID handles getting a ledger entry
// @Summary Get transaction
// @Description Get a ledger entry by id
// @Tags Transactions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid transaction ID")
	}

	transaction, err := h.transactionService.GetByID(c.Context(), id)
	if err != nil {
		return handleDomainError(c, err)
	}

	if p := currentPrincipal(c); !p.IsStaff() && transaction.CustomerID != p.UserID {
		return response.Forbidden(c, "Transaction does not belong to this customer")
	}

	return response.Success(c, "Transaction retrieved successfully", transaction)
}

// List handles listing all ledger entries (staff only)
// @Summary List transactions
// @Description List every ledger entry
// @Tags Transactions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	transactions, err := h.transactionService.List(c.Context())
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Transactions retrieved successfully", transactions)
}

// ListByCustomer handles listing a customer's ledger entries (staff only)
// @Summary List transactions by customer
// @Description List every ledger entry recorded against a customer
// @Tags Transactions
// @Produce json
// @Security BearerAuth
// @Param customerId path int true "Customer ID"
// @Success 200 {object} response.Response
// @Router /transactions/customer/{customerId} [get]
func (h *TransactionHandler) ListByCustomer(c *fiber.Ctx) error {
	customerID, err := parseIDParam(c, "customerId")
	if err != nil {
		return response.BadRequest(c, "Invalid customer ID")
	}

	transactions, err := h.transactionService.ListByCustomer(c.Context(), customerID)
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Transactions retrieved successfully", transactions)
}

// ListByLoan handles listing a loan's ledger entries (staff only)
// @Summary List transactions by loan
// @Description List every ledger entry recorded against a loan
// @Tags Transactions
// @Produce json
// @Security BearerAuth
// @Param loanId path int true "Loan ID"
// @Success 200 {object} response.Response
// @Router /transactions/loan/{loanId} [get]
func (h *TransactionHandler) ListByLoan(c *fiber.Ctx) error {
	loanID, err := parseIDParam(c, "loanId")
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	transactions, err := h.transactionService.ListByLoan(c.Context(), loanID)
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Transactions retrieved successfully", transactions)
}

// Update handles ledger entry correction (staff only)
// @Summary Update transaction
// @Description Rewrite a ledger entry's amount and purpose; loan balances are not recomputed
// @Tags Transactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Param body body services.UpdateTransactionInput true "Transaction data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /transactions/{id} [put]
func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid transaction ID")
	}

	var input services.UpdateTransactionInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validator.Validate(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	transaction, err := h.transactionService.Update(c.Context(), id, &input)
	if err != nil {
		return handleDomainError(c, err)
	}

	return response.Success(c, "Transaction updated successfully", transaction)
}

// Delete handles ledger entry deletion (staff only)
// @Summary Delete transaction
// @Description Remove a ledger entry; the loan's accumulated balances are left as they are
// @Tags Transactions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid transaction ID")
	}

	if err := h.transactionService.Delete(c.Context(), id); err != nil {
		return handleDomainError(c, err)
	}

	return response.Success(c, "Transaction deleted successfully", nil)
}
