package handlers

import (
	"strconv"

	"loandesk-backoffice/internal/core/domain"
	"loandesk-backoffice/internal/core/services"
	"loandesk-backoffice/internal/pkg/response"
	"loandesk-backoffice/internal/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// LoanHandler handles loan endpoints
type LoanHandler struct {
	loanService        *services.LoanService
	transactionService *services.TransactionService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService, transactionService *services.TransactionService) *LoanHandler {
	return &LoanHandler{
		loanService:        loanService,
		transactionService: transactionService,
	}
}

// Create handles loan creation
// @Summary Create loan
// @Description Create a new loan for an existing customer
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateLoanInput true "Loan data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans [post]
func (h *LoanHandler) Create(c *fiber.Ctx) error {
	var input services.CreateLoanInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validator.Validate(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	loan, err := h.loanService.Create(c.Context(), &input)
	if err != nil {
		return handleDomainError(c, err)
	}

	return response.Created(c, "Loan created successfully", loan)
}

// GetByID handles getting a loan with derived amounts
// @Summary Get loan
// @Description Get a loan with its current derived amounts and status
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [get]
func (h *LoanHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	loan, err := h.loanService.GetByID(c.Context(), id)
	if err != nil {
		return handleDomainError(c, err)
	}

	// Customers may only read their own loans.
	if p := currentPrincipal(c); !p.IsStaff() && loan.CustomerID != p.UserID {
		return response.Forbidden(c, "Loan does not belong to this customer")
	}

	return response.Success(c, "Loan retrieved successfully", loan)
}

// List handles listing all loans
// @Summary List loans
// @Description List all loans with derived amounts
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /loans [get]
func (h *LoanHandler) List(c *fiber.Ctx) error {
	loans, err := h.loanService.List(c.Context())
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Loans retrieved successfully", loans)
}

// ListTransactions handles listing a loan's ledger entries
// @Summary List loan transactions
// @Description List the ledger entries recorded against a loan
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id}/transactions [get]
func (h *LoanHandler) ListTransactions(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	// Ownership check rides on the loan read.
	loan, err := h.loanService.GetByID(c.Context(), id)
	if err != nil {
		return handleDomainError(c, err)
	}
	if p := currentPrincipal(c); !p.IsStaff() && loan.CustomerID != p.UserID {
		return response.Forbidden(c, "Loan does not belong to this customer")
	}

	transactions, err := h.transactionService.ListByLoan(c.Context(), id)
	if err != nil {
		return handleDomainError(c, err)
	}
	return response.Success(c, "Transactions retrieved successfully", transactions)
}

// PaymentRequest represents the structured payment request body
type PaymentRequest struct {
	CustomerID       uint            `json:"customer_id"`
	PrinciplePayment decimal.Decimal `json:"principle_payment"`
	InterestPayment  decimal.Decimal `json:"interest_payment"`
}

// Pay handles applying a structured payment to a loan
// @Summary Apply payment
// @Description Apply a principal+interest payment; the interest portion must equal the interest currently due
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Param body body PaymentRequest true "Payment data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /loans/{id}/payment [put]
func (h *LoanHandler) Pay(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	var req PaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	// A customer always pays as themselves; staff name the customer in the
	// body when booking a payment on a customer's behalf.
	customerID := req.CustomerID
	if p := currentPrincipal(c); !p.IsStaff() {
		customerID = p.UserID
	}
	if customerID == 0 {
		return response.BadRequest(c, "Customer ID is required")
	}

	input := &services.ApplyPaymentInput{
		CustomerID:       customerID,
		PrinciplePayment: req.PrinciplePayment,
		InterestPayment:  req.InterestPayment,
	}

	loan, err := h.loanService.ApplyPayment(c.Context(), id, input)
	if err != nil {
		return handleDomainError(c, err)
	}

	return response.Success(c, "Payment applied successfully", loan)
}

// Update handles the admin field replace
// @Summary Update loan
// @Description Replace a loan's base fields (admin maintenance, bypasses the payment protocol)
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Param body body services.UpdateLoanInput true "Loan data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [put]
func (h *LoanHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	var input services.UpdateLoanInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validator.Validate(&input); err != nil {
		return response.BadRequest(c, err.Error())
	}

	loan, err := h.loanService.Update(c.Context(), id, &input)
	if err != nil {
		return handleDomainError(c, err)
	}

	return response.Success(c, "Loan updated successfully", loan)
}

// Delete handles loan deletion
// @Summary Delete loan
// @Description Delete a loan and all of its ledger entries
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [delete]
func (h *LoanHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	if err := h.loanService.Delete(c.Context(), id); err != nil {
		return handleDomainError(c, err)
	}

	return response.Success(c, "Loan deleted successfully", nil)
}

// parseIDParam parses a positive integer path parameter
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.ErrBadRequest
	}
	return uint(id), nil
}

// currentPrincipal resolves the authenticated identity from the request
// locals set by the auth middleware.
func currentPrincipal(c *fiber.Ctx) domain.Principal {
	userID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(string)
	return domain.Principal{UserID: userID, Role: domain.Role(role)}
}
