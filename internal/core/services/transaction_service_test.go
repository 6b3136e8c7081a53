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

// newTestTransactionService wires a transaction service against the fake
// unit of work with a frozen clock.
func newTestTransactionService(now time.Time) (*TransactionService, *fakeProvider) {
	provider := newFakeProvider()
	svc := NewTransactionService(provider.transactions, &fakeUnitOfWork{provider: provider})
	svc.now = func() time.Time { return now }
	return svc, provider
}

func TestTransactionService_Create(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start.AddDate(0, 0, 15)
	ctx := context.Background()

	t.Run("principle entry moves the balance and snapshots the result", func(t *testing.T) {
		svc, provider := newTestTransactionService(now)
		loan := storedLoan(start)

		provider.loans.On("GetByIDForUpdate", ctx, uint(1)).Return(loan, nil)
		provider.loans.On("Update", ctx, loan).Return(nil)

		var entry *models.Transaction
		provider.transactions.On("Create", ctx, mock.AnythingOfType("*models.Transaction")).
			Run(func(args mock.Arguments) {
				entry = args.Get(1).(*models.Transaction)
			}).Return(nil)

		resp, err := svc.Create(ctx, &CreateTransactionInput{
			LoanID:             1,
			CustomerID:         7,
			TransactionAmount:  decimal.RequireFromString("300.00"),
			TransactionPurpose: domain.PurposePrinciplePayment,
		})
		require.NoError(t, err)

		require.NotNil(t, entry)
		assert.True(t, entry.PrincipleAmount.Equal(decimal.RequireFromString("700.00")))
		assert.True(t, loan.PaidAmount.Equal(decimal.RequireFromString("300.00")))
		assert.True(t, resp.TransactionAmount.Equal(decimal.RequireFromString("300.00")))
	})

	t.Run("interest entry has no cross-check against interest due", func(t *testing.T) {
		svc, provider := newTestTransactionService(now)
		loan := storedLoan(start)

		provider.loans.On("GetByIDForUpdate", ctx, uint(1)).Return(loan, nil)
		provider.loans.On("Update", ctx, loan).Return(nil)

		var entry *models.Transaction
		provider.transactions.On("Create", ctx, mock.AnythingOfType("*models.Transaction")).
			Run(func(args mock.Arguments) {
				entry = args.Get(1).(*models.Transaction)
			}).Return(nil)

		// 12.34 matches no derivable interest figure; the freeform path takes
		// it anyway and leaves the principal untouched.
		_, err := svc.Create(ctx, &CreateTransactionInput{
			LoanID:             1,
			CustomerID:         7,
			TransactionAmount:  decimal.RequireFromString("12.34"),
			TransactionPurpose: domain.PurposeInterestPayment,
		})
		require.NoError(t, err)

		require.NotNil(t, entry)
		assert.True(t, entry.PrincipleAmount.Equal(decimal.RequireFromString("1000.00")))
		assert.True(t, loan.PaidInterest.Equal(decimal.RequireFromString("12.34")))
		assert.True(t, loan.PaidAmount.IsZero())
	})

	t.Run("interest entry resets the interest clock", func(t *testing.T) {
		svc, provider := newTestTransactionService(now)
		loan := storedLoan(start)

		provider.loans.On("GetByIDForUpdate", ctx, uint(1)).Return(loan, nil)
		provider.loans.On("Update", ctx, loan).Return(nil)
		provider.transactions.On("Create", ctx, mock.AnythingOfType("*models.Transaction")).Return(nil)

		_, err := svc.Create(ctx, &CreateTransactionInput{
			LoanID:             1,
			CustomerID:         7,
			TransactionAmount:  decimal.RequireFromString("50.00"),
			TransactionPurpose: domain.PurposeInterestPayment,
		})
		require.NoError(t, err)

		// Interest settled through this path stops accruing from here, same
		// as the structured payment path; otherwise a later structured
		// payment would bill the settled period a second time.
		require.NotNil(t, loan.ExtensionDate)
		assert.True(t, loan.ExtensionDate.Equal(now))
	})

	t.Run("principle entry leaves the interest clock alone", func(t *testing.T) {
		svc, provider := newTestTransactionService(now)
		loan := storedLoan(start)

		provider.loans.On("GetByIDForUpdate", ctx, uint(1)).Return(loan, nil)
		provider.loans.On("Update", ctx, loan).Return(nil)
		provider.transactions.On("Create", ctx, mock.AnythingOfType("*models.Transaction")).Return(nil)

		_, err := svc.Create(ctx, &CreateTransactionInput{
			LoanID:             1,
			CustomerID:         7,
			TransactionAmount:  decimal.RequireFromString("100.00"),
			TransactionPurpose: domain.PurposePrinciplePayment,
		})
		require.NoError(t, err)

		assert.Nil(t, loan.ExtensionDate)
	})

	t.Run("rejects entry for a loan the customer does not own", func(t *testing.T) {
		svc, provider := newTestTransactionService(now)
		provider.loans.On("GetByIDForUpdate", ctx, uint(1)).Return(storedLoan(start), nil)

		_, err := svc.Create(ctx, &CreateTransactionInput{
			LoanID:             1,
			CustomerID:         99,
			TransactionAmount:  decimal.RequireFromString("10.00"),
			TransactionPurpose: domain.PurposeInterestPayment,
		})

		var ownership *domain.OwnershipMismatchError
		require.ErrorAs(t, err, &ownership)
		provider.transactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects principle entry above outstanding principal", func(t *testing.T) {
		svc, provider := newTestTransactionService(now)
		provider.loans.On("GetByIDForUpdate", ctx, uint(1)).Return(storedLoan(start), nil)

		_, err := svc.Create(ctx, &CreateTransactionInput{
			LoanID:             1,
			CustomerID:         7,
			TransactionAmount:  decimal.RequireFromString("1000.01"),
			TransactionPurpose: domain.PurposePrinciplePayment,
		})

		var validation *domain.ValidationError
		require.ErrorAs(t, err, &validation)
		provider.loans.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestTransactionService_Delete_DoesNotReverseBalances(t *testing.T) {
	ctx := context.Background()
	svc, provider := newTestTransactionService(time.Now())

	entry := &models.Transaction{
		ID:                 5,
		LoanID:             1,
		CustomerID:         7,
		TransactionAmount:  decimal.RequireFromString("300.00"),
		TransactionPurpose: domain.PurposePrinciplePayment,
		PrincipleAmount:    decimal.RequireFromString("700.00"),
	}
	provider.transactions.On("GetByID", ctx, uint(5)).Return(entry, nil)
	provider.transactions.On("Delete", ctx, uint(5)).Return(nil)

	require.NoError(t, svc.Delete(ctx, 5))

	// Deleting a ledger entry erases the record only. The loan row is never
	// read or written, so paid_amount keeps the entry's contribution.
	provider.loans.AssertNotCalled(t, "GetByIDForUpdate", mock.Anything, mock.Anything)
	provider.loans.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	provider.transactions.AssertExpectations(t)
}

func TestTransactionService_Update_EditsRecordOnly(t *testing.T) {
	ctx := context.Background()
	svc, provider := newTestTransactionService(time.Now())

	entry := &models.Transaction{
		ID:                 5,
		LoanID:             1,
		CustomerID:         7,
		TransactionAmount:  decimal.RequireFromString("300.00"),
		TransactionPurpose: domain.PurposePrinciplePayment,
		PrincipleAmount:    decimal.RequireFromString("700.00"),
	}
	provider.transactions.On("GetByID", ctx, uint(5)).Return(entry, nil)
	provider.transactions.On("Update", ctx, entry).Return(nil)

	resp, err := svc.Update(ctx, 5, &UpdateTransactionInput{
		TransactionAmount:  decimal.RequireFromString("250.00"),
		TransactionPurpose: domain.PurposeInterestPayment,
	})
	require.NoError(t, err)

	assert.True(t, resp.TransactionAmount.Equal(decimal.RequireFromString("250.00")))
	assert.Equal(t, domain.PurposeInterestPayment, resp.TransactionPurpose)
	provider.loans.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
