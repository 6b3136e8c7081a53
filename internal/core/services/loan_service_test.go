package services

import (
	"context"
	"testing"
	"time"

	"loandesk-backoffice/internal/adapters/persistence/models"
	"loandesk-backoffice/internal/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLoanTerms() domain.Terms {
	return domain.Terms{
		InterestRate:  decimal.RequireFromString("0.10"),
		OverdueRate:   decimal.RequireFromString("0.20"),
		LoanPeriod:    30,
		ExtensionDays: 0,
		WaitingDays:   5,
	}
}

// newTestLoanService wires a loan service against the fake unit of work with
// a frozen clock.
func newTestLoanService(now time.Time) (*LoanService, *fakeProvider) {
	provider := newFakeProvider()
	svc := NewLoanService(provider.loans, provider.customers, &fakeUnitOfWork{provider: provider}, testLoanTerms())
	svc.now = func() time.Time { return now }
	return svc, provider
}

// storedLoan is a loan 15 days into its term: 1000.00 outstanding at 10% per
// 30 days, so 50.00 interest is due.
func storedLoan(start time.Time) *models.Loan {
	return &models.Loan{
		ID:            1,
		CustomerID:    7,
		LoanAmount:    decimal.RequireFromString("1000.00"),
		PaidAmount:    decimal.Zero,
		PaidInterest:  decimal.Zero,
		InterestRate:  decimal.RequireFromString("0.10"),
		OverdueRate:   decimal.RequireFromString("0.20"),
		LoanPeriod:    30,
		ExtensionDays: 0,
		WaitingDays:   5,
		StartDate:     start,
	}
}

func TestLoanService_ApplyPayment(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start.AddDate(0, 0, 15)
	ctx := context.Background()

	t.Run("writes both ledger entries and accumulates balances", func(t *testing.T) {
		svc, provider := newTestLoanService(now)
		loan := storedLoan(start)

		provider.loans.On("GetByIDForUpdate", ctx, uint(1)).Return(loan, nil)
		provider.loans.On("Update", ctx, loan).Return(nil)

		var entries []*models.Transaction
		provider.transactions.On("Create", ctx, mock.AnythingOfType("*models.Transaction")).
			Run(func(args mock.Arguments) {
				entries = append(entries, args.Get(1).(*models.Transaction))
			}).Return(nil)

		resp, err := svc.ApplyPayment(ctx, 1, &ApplyPaymentInput{
			CustomerID:       7,
			PrinciplePayment: decimal.RequireFromString("200.00"),
			InterestPayment:  decimal.RequireFromString("50.00"),
		})
		require.NoError(t, err)

		// Interest entry first, snapshotting the pre-payment principal.
		require.Len(t, entries, 2)
		assert.Equal(t, domain.PurposeInterestPayment, entries[0].TransactionPurpose)
		assert.True(t, entries[0].TransactionAmount.Equal(decimal.RequireFromString("50.00")))
		assert.True(t, entries[0].PrincipleAmount.Equal(decimal.RequireFromString("1000.00")))

		// Principle entry second, snapshotting the new principal.
		assert.Equal(t, domain.PurposePrinciplePayment, entries[1].TransactionPurpose)
		assert.True(t, entries[1].TransactionAmount.Equal(decimal.RequireFromString("200.00")))
		assert.True(t, entries[1].PrincipleAmount.Equal(decimal.RequireFromString("800.00")))

		// Balances accumulated and the interest clock reset.
		assert.True(t, loan.PaidAmount.Equal(decimal.RequireFromString("200.00")))
		assert.True(t, loan.PaidInterest.Equal(decimal.RequireFromString("50.00")))
		require.NotNil(t, loan.ExtensionDate)
		assert.Equal(t, now, *loan.ExtensionDate)

		// The response re-derives from the updated state: no interest is due
		// the instant after a payment.
		assert.True(t, resp.PrincipleAmount.Equal(decimal.RequireFromString("800.00")))
		assert.True(t, resp.InterestAmount.IsZero())
		assert.Equal(t, domain.LoanStatusActive, resp.CurrentStatus)

		provider.loans.AssertExpectations(t)
		provider.transactions.AssertExpectations(t)
	})

	t.Run("rejects interest that does not match interest due", func(t *testing.T) {
		svc, provider := newTestLoanService(now)
		provider.loans.On("GetByIDForUpdate", ctx, uint(1)).Return(storedLoan(start), nil)

		_, err := svc.ApplyPayment(ctx, 1, &ApplyPaymentInput{
			CustomerID:       7,
			PrinciplePayment: decimal.RequireFromString("200.00"),
			InterestPayment:  decimal.RequireFromString("49.99"),
		})

		var mismatch *domain.PaymentMismatchError
		require.ErrorAs(t, err, &mismatch)
		assert.True(t, mismatch.Required.Equal(decimal.RequireFromString("50.00")))
		assert.True(t, mismatch.Provided.Equal(decimal.RequireFromString("49.99")))

		provider.transactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		provider.loans.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("rejects payment from the wrong customer", func(t *testing.T) {
		svc, provider := newTestLoanService(now)
		provider.loans.On("GetByIDForUpdate", ctx, uint(1)).Return(storedLoan(start), nil)

		_, err := svc.ApplyPayment(ctx, 1, &ApplyPaymentInput{
			CustomerID:       99,
			PrinciplePayment: decimal.RequireFromString("200.00"),
			InterestPayment:  decimal.RequireFromString("50.00"),
		})

		var ownership *domain.OwnershipMismatchError
		require.ErrorAs(t, err, &ownership)
		assert.Equal(t, uint(7), ownership.LoanCustomerID)
		assert.Equal(t, uint(99), ownership.ProvidedCustomerID)

		provider.transactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects principle payment above outstanding principal", func(t *testing.T) {
		svc, provider := newTestLoanService(now)
		provider.loans.On("GetByIDForUpdate", ctx, uint(1)).Return(storedLoan(start), nil)

		_, err := svc.ApplyPayment(ctx, 1, &ApplyPaymentInput{
			CustomerID:       7,
			PrinciplePayment: decimal.RequireFromString("1000.01"),
			InterestPayment:  decimal.RequireFromString("50.00"),
		})

		var validation *domain.ValidationError
		require.ErrorAs(t, err, &validation)
		provider.transactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects negative amounts before touching the store", func(t *testing.T) {
		svc, provider := newTestLoanService(now)

		_, err := svc.ApplyPayment(ctx, 1, &ApplyPaymentInput{
			CustomerID:       7,
			PrinciplePayment: decimal.RequireFromString("-1.00"),
			InterestPayment:  decimal.RequireFromString("50.00"),
		})

		var validation *domain.ValidationError
		require.ErrorAs(t, err, &validation)
		provider.loans.AssertNotCalled(t, "GetByIDForUpdate", mock.Anything, mock.Anything)
	})

	t.Run("zero principle payment settles interest only", func(t *testing.T) {
		svc, provider := newTestLoanService(now)
		loan := storedLoan(start)

		provider.loans.On("GetByIDForUpdate", ctx, uint(1)).Return(loan, nil)
		provider.loans.On("Update", ctx, loan).Return(nil)

		var entries []*models.Transaction
		provider.transactions.On("Create", ctx, mock.AnythingOfType("*models.Transaction")).
			Run(func(args mock.Arguments) {
				entries = append(entries, args.Get(1).(*models.Transaction))
			}).Return(nil)

		_, err := svc.ApplyPayment(ctx, 1, &ApplyPaymentInput{
			CustomerID:       7,
			PrinciplePayment: decimal.Zero,
			InterestPayment:  decimal.RequireFromString("50.00"),
		})
		require.NoError(t, err)

		require.Len(t, entries, 2)
		assert.True(t, entries[1].TransactionAmount.IsZero())
		assert.True(t, entries[1].PrincipleAmount.Equal(decimal.RequireFromString("1000.00")))
		assert.True(t, loan.PaidAmount.IsZero())
		assert.True(t, loan.PaidInterest.Equal(decimal.RequireFromString("50.00")))
	})
}

func TestLoanService_Create(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("copies configured terms onto the loan", func(t *testing.T) {
		svc, provider := newTestLoanService(now)
		provider.customers.On("Exists", ctx, uint(7)).Return(true, nil)

		var created *models.Loan
		provider.loans.On("Create", ctx, mock.AnythingOfType("*models.Loan")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*models.Loan)
			}).Return(nil)

		resp, err := svc.Create(ctx, &CreateLoanInput{
			CustomerID: 7,
			LoanAmount: decimal.RequireFromString("1500.505"),
		})
		require.NoError(t, err)

		require.NotNil(t, created)
		assert.True(t, created.LoanAmount.Equal(decimal.RequireFromString("1500.51")))
		assert.True(t, created.InterestRate.Equal(decimal.RequireFromString("0.10")))
		assert.Equal(t, 30, created.LoanPeriod)
		assert.Equal(t, now, created.StartDate)
		assert.Nil(t, created.ExtensionDate)

		assert.Equal(t, domain.LoanStatusActive, resp.CurrentStatus)
		assert.True(t, resp.InterestAmount.IsZero())
	})

	t.Run("rejects unknown customer", func(t *testing.T) {
		svc, provider := newTestLoanService(now)
		provider.customers.On("Exists", ctx, uint(42)).Return(false, nil)

		_, err := svc.Create(ctx, &CreateLoanInput{
			CustomerID: 42,
			LoanAmount: decimal.RequireFromString("100.00"),
		})
		require.ErrorIs(t, err, domain.ErrCustomerNotFound)
		provider.loans.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		svc, provider := newTestLoanService(now)
		provider.customers.On("Exists", ctx, uint(7)).Return(true, nil)

		_, err := svc.Create(ctx, &CreateLoanInput{
			CustomerID: 7,
			LoanAmount: decimal.Zero,
		})

		var validation *domain.ValidationError
		require.ErrorAs(t, err, &validation)
	})
}

func TestLoanService_Delete(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start.AddDate(0, 0, 10)
	ctx := context.Background()

	t.Run("removes ledger entries before the loan", func(t *testing.T) {
		svc, provider := newTestLoanService(now)
		loan := storedLoan(start)

		provider.loans.On("GetByID", ctx, uint(1)).Return(loan, nil)
		provider.transactions.On("DeleteByLoan", ctx, uint(1)).Return(nil)
		provider.loans.On("Delete", ctx, uint(1)).Return(nil)

		require.NoError(t, svc.Delete(ctx, 1))

		provider.transactions.AssertExpectations(t)
		provider.loans.AssertExpectations(t)
	})
}

func TestLoanService_GetByID_DerivesPerRead(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ctx := context.Background()

	// The same stored row reads differently on different days.
	svc, provider := newTestLoanService(start.AddDate(0, 0, 15))
	provider.loans.On("GetByID", ctx, uint(1)).Return(storedLoan(start), nil)

	resp, err := svc.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, resp.InterestAmount.Equal(decimal.RequireFromString("50.00")))

	svc.now = func() time.Time { return start.AddDate(0, 0, 30) }
	resp, err = svc.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, resp.InterestAmount.Equal(decimal.RequireFromString("100.00")))
}
