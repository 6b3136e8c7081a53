package services

import (
	"context"
	"errors"
	"time"

	"loandesk-backoffice/internal/adapters/persistence/models"
	"loandesk-backoffice/internal/adapters/persistence/repositories"
	"loandesk-backoffice/internal/core/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionService manages the transaction ledger directly. Unlike the
// payment path on LoanService, the freeform create does not cross-check the
// amount against accrued interest: it is the staff override for corrections
// and out-of-band bookings, and it still moves the loan balance it names.
type TransactionService struct {
	transactionRepo repositories.TransactionRepository
	uow             repositories.UnitOfWork
	now             func() time.Time
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	transactionRepo repositories.TransactionRepository,
	uow repositories.UnitOfWork,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		uow:             uow,
		now:             time.Now,
	}
}

// CreateTransactionInput represents freeform ledger entry input
type CreateTransactionInput struct {
	LoanID             uint            `json:"loan_id" validate:"required"`
	CustomerID         uint            `json:"customer_id" validate:"required"`
	EmployeeID         *uint           `json:"employee_id"`
	TransactionAmount  decimal.Decimal `json:"transaction_amount" validate:"required,decimal_gt=0"`
	TransactionPurpose string          `json:"transaction_purpose" validate:"required,oneof=loan_principle_payment loan_interest_payment"`
}

// Create appends a ledger entry and applies its effect to the loan inside
// one transaction. A principle entry reduces outstanding principal and
// snapshots the balance after the entry; an interest entry leaves principal
// untouched, snapshots the balance as it stands, and resets the interest
// clock so the settled period stops accruing.
func (s *TransactionService) Create(ctx context.Context, input *CreateTransactionInput) (*models.TransactionResponse, error) {
	amount := input.TransactionAmount.Round(2)
	if !amount.IsPositive() {
		return nil, domain.NewValidationError("transaction amount must be greater than 0")
	}

	var created *models.Transaction
	err := s.uow.Do(ctx, func(tx repositories.RepositoryProvider) error {
		loan, err := tx.Loans().GetByIDForUpdate(ctx, input.LoanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrLoanNotFound
			}
			return err
		}

		if loan.CustomerID != input.CustomerID {
			return &domain.OwnershipMismatchError{
				LoanCustomerID:     loan.CustomerID,
				ProvidedCustomerID: input.CustomerID,
			}
		}

		outstanding := loan.LoanAmount.Sub(loan.PaidAmount)
		snapshot := outstanding

		switch input.TransactionPurpose {
		case domain.PurposePrinciplePayment:
			snapshot = outstanding.Sub(amount)
			if snapshot.IsNegative() {
				return domain.NewValidationError(
					"transaction amount %s exceeds outstanding principal %s",
					amount.StringFixed(2), outstanding.StringFixed(2))
			}
			loan.PaidAmount = loan.PaidAmount.Add(amount)
		case domain.PurposeInterestPayment:
			now := s.now()
			loan.PaidInterest = loan.PaidInterest.Add(amount)
			loan.ExtensionDate = &now
		default:
			return domain.NewValidationError("unknown transaction purpose %q", input.TransactionPurpose)
		}

		created = &models.Transaction{
			LoanID:             loan.ID,
			CustomerID:         loan.CustomerID,
			EmployeeID:         input.EmployeeID,
			TransactionAmount:  amount,
			TransactionPurpose: input.TransactionPurpose,
			PrincipleAmount:    snapshot,
		}
		if err := tx.Transactions().Create(ctx, created); err != nil {
			return err
		}

		return tx.Loans().Update(ctx, loan)
	})
	if err != nil {
		return nil, err
	}

	return created.ToResponse(), nil
}

// GetByID gets a ledger entry by id
func (s *TransactionService) GetByID(ctx context.Context, id uint) (*models.TransactionResponse, error) {
	transaction, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return transaction.ToResponse(), nil
}

// List lists all ledger entries
func (s *TransactionService) List(ctx context.Context) ([]*models.TransactionResponse, error) {
	transactions, err := s.transactionRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toTransactionResponses(transactions), nil
}

// ListByCustomer lists a customer's ledger entries
func (s *TransactionService) ListByCustomer(ctx context.Context, customerID uint) ([]*models.TransactionResponse, error) {
	transactions, err := s.transactionRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return toTransactionResponses(transactions), nil
}

// ListByLoan lists a loan's ledger entries
func (s *TransactionService) ListByLoan(ctx context.Context, loanID uint) ([]*models.TransactionResponse, error) {
	transactions, err := s.transactionRepo.ListByLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return toTransactionResponses(transactions), nil
}

// UpdateTransactionInput represents ledger entry correction input
type UpdateTransactionInput struct {
	TransactionAmount  decimal.Decimal `json:"transaction_amount" validate:"required,decimal_gt=0"`
	TransactionPurpose string          `json:"transaction_purpose" validate:"required,oneof=loan_principle_payment loan_interest_payment"`
}

// Update rewrites a ledger entry's amount and purpose in place. It edits the
// record only; accumulated loan balances are not recomputed.
func (s *TransactionService) Update(ctx context.Context, id uint, input *UpdateTransactionInput) (*models.TransactionResponse, error) {
	transaction, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}

	transaction.TransactionAmount = input.TransactionAmount.Round(2)
	transaction.TransactionPurpose = input.TransactionPurpose

	if err := s.transactionRepo.Update(ctx, transaction); err != nil {
		return nil, err
	}
	return transaction.ToResponse(), nil
}

// Delete removes a ledger entry. Deliberately record-only: the loan's
// paid_amount and paid_interest keep whatever the entry contributed, so a
// delete erases history without reopening the balance.
func (s *TransactionService) Delete(ctx context.Context, id uint) error {
	_, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTransactionNotFound
		}
		return err
	}
	return s.transactionRepo.Delete(ctx, id)
}

func toTransactionResponses(transactions []*models.Transaction) []*models.TransactionResponse {
	responses := make([]*models.TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		responses = append(responses, t.ToResponse())
	}
	return responses
}
