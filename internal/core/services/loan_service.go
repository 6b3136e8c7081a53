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

// LoanService is the loan balance engine: it creates loans, applies
// payments, and keeps the loans table and the transaction ledger consistent.
// Every mutating operation runs as one unit of work; the store's row lock on
// the loan row serializes concurrent payments against the same loan.
type LoanService struct {
	loanRepo     repositories.LoanRepository
	customerRepo repositories.CustomerRepository
	uow          repositories.UnitOfWork
	terms        domain.Terms
	now          func() time.Time
}

// NewLoanService creates a new loan service
func NewLoanService(
	loanRepo repositories.LoanRepository,
	customerRepo repositories.CustomerRepository,
	uow repositories.UnitOfWork,
	terms domain.Terms,
) *LoanService {
	return &LoanService{
		loanRepo:     loanRepo,
		customerRepo: customerRepo,
		uow:          uow,
		terms:        terms,
		now:          time.Now,
	}
}

// CreateLoanInput represents create loan input
type CreateLoanInput struct {
	CustomerID uint            `json:"customer_id" validate:"required"`
	LoanAmount decimal.Decimal `json:"loan_amount" validate:"required,decimal_gt=0"`
}

// Create creates a new loan for an existing customer. Lending terms are
// copied from the configured defaults onto the row.
func (s *LoanService) Create(ctx context.Context, input *CreateLoanInput) (*models.LoanResponse, error) {
	exists, err := s.customerRepo.Exists(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrCustomerNotFound
	}

	if !input.LoanAmount.IsPositive() {
		return nil, domain.NewValidationError("loan amount must be greater than 0")
	}

	now := s.now()
	loan := &models.Loan{
		CustomerID:    input.CustomerID,
		LoanAmount:    input.LoanAmount.Round(2),
		PaidAmount:    decimal.Zero,
		PaidInterest:  decimal.Zero,
		InterestRate:  s.terms.InterestRate,
		OverdueRate:   s.terms.OverdueRate,
		LoanPeriod:    s.terms.LoanPeriod,
		ExtensionDays: s.terms.ExtensionDays,
		WaitingDays:   s.terms.WaitingDays,
		StartDate:     now,
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}

	return s.toResponse(loan)
}

// GetByID gets a loan with freshly derived amounts
func (s *LoanService) GetByID(ctx context.Context, id uint) (*models.LoanResponse, error) {
	loan, err := s.loanRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return s.toResponse(loan)
}

// List lists all loans with derived amounts
func (s *LoanService) List(ctx context.Context) ([]*models.LoanResponse, error) {
	loans, err := s.loanRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.toResponses(loans)
}

// ListByCustomer lists a customer's loans with derived amounts
func (s *LoanService) ListByCustomer(ctx context.Context, customerID uint) ([]*models.LoanResponse, error) {
	exists, err := s.customerRepo.Exists(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrCustomerNotFound
	}

	loans, err := s.loanRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(loans)
}

// ApplyPaymentInput represents the structured payment input. The interest
// portion must equal the interest currently due, to the cent.
type ApplyPaymentInput struct {
	CustomerID       uint            `json:"customer_id" validate:"required"`
	PrinciplePayment decimal.Decimal `json:"principle_payment" validate:"decimal_gte=0"`
	InterestPayment  decimal.Decimal `json:"interest_payment" validate:"decimal_gte=0"`
}

// ApplyPayment applies a structured payment to a loan inside one database
// transaction:
//
//  1. lock the loan row and derive its current amounts,
//  2. check the declared customer owns the loan,
//  3. check the interest payment equals the interest due exactly,
//  4. append the interest ledger entry (principal snapshot before payment),
//  5. append the principle ledger entry (principal snapshot after payment),
//  6. accumulate paid amounts and reset the interest clock.
//
// Any failure rolls back the whole unit: no ledger entry and no balance
// change survives a rejected payment. A payment rejected at step 3 because
// another payment committed first is reported as a PaymentMismatchError;
// the caller re-reads the loan and resubmits.
func (s *LoanService) ApplyPayment(ctx context.Context, loanID uint, input *ApplyPaymentInput) (*models.LoanResponse, error) {
	principle := input.PrinciplePayment.Round(2)
	interest := input.InterestPayment.Round(2)

	if principle.IsNegative() || interest.IsNegative() {
		return nil, domain.NewValidationError("payment amounts must not be negative")
	}

	var updated *models.Loan
	err := s.uow.Do(ctx, func(tx repositories.RepositoryProvider) error {
		loan, err := tx.Loans().GetByIDForUpdate(ctx, loanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrLoanNotFound
			}
			return err
		}

		now := s.now()
		details, err := domain.CalculateLoanDetails(loan.Snapshot(), now)
		if err != nil {
			return err
		}

		if loan.CustomerID != input.CustomerID {
			return &domain.OwnershipMismatchError{
				LoanCustomerID:     loan.CustomerID,
				ProvidedCustomerID: input.CustomerID,
			}
		}

		// Interest must be settled in full with every payment. The required
		// value comes from the same derivation the read path uses, so the
		// check and the reported amount can never disagree.
		if !interest.Equal(details.InterestAmount) {
			return &domain.PaymentMismatchError{
				Required: details.InterestAmount,
				Provided: interest,
			}
		}

		newPrinciple := details.PrincipleAmount.Sub(principle)
		if newPrinciple.IsNegative() {
			return domain.NewValidationError(
				"principle payment %s exceeds outstanding principal %s",
				principle.StringFixed(2), details.PrincipleAmount.StringFixed(2))
		}

		interestEntry := &models.Transaction{
			LoanID:             loan.ID,
			CustomerID:         loan.CustomerID,
			TransactionAmount:  interest,
			TransactionPurpose: domain.PurposeInterestPayment,
			PrincipleAmount:    details.PrincipleAmount,
		}
		if err := tx.Transactions().Create(ctx, interestEntry); err != nil {
			return err
		}

		principleEntry := &models.Transaction{
			LoanID:             loan.ID,
			CustomerID:         loan.CustomerID,
			TransactionAmount:  principle,
			TransactionPurpose: domain.PurposePrinciplePayment,
			PrincipleAmount:    newPrinciple,
		}
		if err := tx.Transactions().Create(ctx, principleEntry); err != nil {
			return err
		}

		loan.PaidAmount = loan.PaidAmount.Add(principle)
		loan.PaidInterest = loan.PaidInterest.Add(interest)
		loan.ExtensionDate = &now
		if err := tx.Loans().Update(ctx, loan); err != nil {
			return err
		}

		updated = loan
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.toResponse(updated)
}

// UpdateLoanInput represents the admin field-replace input
type UpdateLoanInput struct {
	CustomerID    uint            `json:"customer_id" validate:"required"`
	LoanAmount    decimal.Decimal `json:"loan_amount" validate:"required,decimal_gt=0"`
	StartDate     time.Time       `json:"start_date" validate:"required"`
	ExtensionDate *time.Time      `json:"extension_date"`
}

// Update replaces a loan's base fields. Internal use only: it bypasses the
// payment protocol entirely and never touches the ledger.
func (s *LoanService) Update(ctx context.Context, id uint, input *UpdateLoanInput) (*models.LoanResponse, error) {
	loan, err := s.loanRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}

	exists, err := s.customerRepo.Exists(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrCustomerNotFound
	}

	loan.CustomerID = input.CustomerID
	loan.LoanAmount = input.LoanAmount.Round(2)
	loan.StartDate = input.StartDate
	loan.ExtensionDate = input.ExtensionDate

	if err := s.loanRepo.Update(ctx, loan); err != nil {
		return nil, err
	}

	return s.toResponse(loan)
}

// Delete deletes a loan and all of its ledger entries in one transaction.
// Either everything goes or nothing does.
func (s *LoanService) Delete(ctx context.Context, id uint) error {
	return s.uow.Do(ctx, func(tx repositories.RepositoryProvider) error {
		if _, err := tx.Loans().GetByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrLoanNotFound
			}
			return err
		}

		// Transactions first, then the loan row.
		if err := tx.Transactions().DeleteByLoan(ctx, id); err != nil {
			return err
		}
		return tx.Loans().Delete(ctx, id)
	})
}

func (s *LoanService) toResponse(loan *models.Loan) (*models.LoanResponse, error) {
	details, err := domain.CalculateLoanDetails(loan.Snapshot(), s.now())
	if err != nil {
		return nil, err
	}
	return loan.ToResponse(details), nil
}

func (s *LoanService) toResponses(loans []*models.Loan) ([]*models.LoanResponse, error) {
	responses := make([]*models.LoanResponse, 0, len(loans))
	for _, loan := range loans {
		resp, err := s.toResponse(loan)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}
