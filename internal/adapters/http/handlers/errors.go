package handlers

import (
	"errors"

	"loandesk-backoffice/internal/core/domain"
	"loandesk-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// handleDomainError maps core errors onto HTTP responses. Every handler
// funnels service errors through here so the status mapping stays in one
// place: validation and ownership problems are 400/403, missing entities
// 404, duplicates 409, and a payment race 409 with both interest values in
// the payload so the client can re-read and resubmit.
func handleDomainError(c *fiber.Ctx, err error) error {
	var validationErr *domain.ValidationError
	var ownershipErr *domain.OwnershipMismatchError
	var paymentErr *domain.PaymentMismatchError
	var stateErr *domain.InvalidStateError

	switch {
	case errors.As(err, &validationErr):
		return response.BadRequest(c, validationErr.Message)
	case errors.As(err, &ownershipErr):
		return response.Forbidden(c, "Loan does not belong to this customer")
	case errors.As(err, &paymentErr):
		return response.ErrorWithDetails(c, fiber.StatusConflict,
			"Interest payment does not match interest due", fiber.Map{
				"required_interest": paymentErr.Required,
				"provided_interest": paymentErr.Provided,
			})
	case errors.As(err, &stateErr):
		return response.InternalServerError(c, "Loan record is in an invalid state")
	case errors.Is(err, domain.ErrUserNotFound):
		return response.NotFound(c, "User not found")
	case errors.Is(err, domain.ErrCustomerNotFound):
		return response.NotFound(c, "Customer not found")
	case errors.Is(err, domain.ErrEmployeeNotFound):
		return response.NotFound(c, "Employee not found")
	case errors.Is(err, domain.ErrLoanNotFound):
		return response.NotFound(c, "Loan not found")
	case errors.Is(err, domain.ErrTransactionNotFound):
		return response.NotFound(c, "Transaction not found")
	case errors.Is(err, domain.ErrUserAlreadyExists):
		return response.Conflict(c, "Phone number or email already in use")
	case errors.Is(err, domain.ErrDuplicateEntry):
		return response.Conflict(c, "Duplicate entry")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return response.Unauthorized(c, "Invalid phone number or password")
	case errors.Is(err, domain.ErrTokenExpired):
		return response.Unauthorized(c, "Token expired, please login again")
	case errors.Is(err, domain.ErrTokenInvalid):
		return response.Unauthorized(c, "Invalid token")
	case errors.Is(err, domain.ErrForbidden):
		return response.Forbidden(c, "Forbidden")
	default:
		return response.InternalServerError(c, "Internal server error")
	}
}
