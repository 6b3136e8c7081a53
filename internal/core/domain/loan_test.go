package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTerms() Terms {
	return Terms{
		InterestRate:  decimal.RequireFromString("0.10"),
		OverdueRate:   decimal.RequireFromString("0.20"),
		LoanPeriod:    30,
		ExtensionDays: 0,
		WaitingDays:   5,
	}
}

func testSnapshot(start time.Time) LoanSnapshot {
	return LoanSnapshot{
		ID:           1,
		CustomerID:   7,
		LoanAmount:   decimal.RequireFromString("1000.00"),
		PaidAmount:   decimal.Zero,
		PaidInterest: decimal.Zero,
		StartDate:    start,
		Terms:        testTerms(),
	}
}

func TestCalculateLoanDetails_ActiveLoan(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start.AddDate(0, 0, 15)

	details, err := CalculateLoanDetails(testSnapshot(start), now)
	require.NoError(t, err)

	// 1000 * 0.10 * 15 / 30 = 50.00
	assert.True(t, details.PrincipleAmount.Equal(decimal.RequireFromString("1000.00")))
	assert.Equal(t, 15, details.InterestDays)
	assert.True(t, details.InterestAmount.Equal(decimal.RequireFromString("50.00")),
		"got %s", details.InterestAmount)
	assert.Equal(t, 0, details.OverdueDays)
	assert.True(t, details.OverdueAmount.IsZero())
	assert.True(t, details.TotalAmount.Equal(decimal.RequireFromString("1050.00")))
	assert.Equal(t, 20, details.RemainingDays)
	assert.Equal(t, start.AddDate(0, 0, 35), details.EndDate)
	assert.Equal(t, LoanStatusActive, details.CurrentStatus)
}

func TestCalculateLoanDetails_IsPure(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start.AddDate(0, 0, 10)
	snap := testSnapshot(start)

	first, err := CalculateLoanDetails(snap, now)
	require.NoError(t, err)
	second, err := CalculateLoanDetails(snap, now)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, snap.PaidAmount.IsZero(), "snapshot must not be mutated")
}

func TestCalculateLoanDetails_ExtensionDateResetsInterestClock(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	paidAt := start.AddDate(0, 0, 20)
	now := start.AddDate(0, 0, 25)

	snap := testSnapshot(start)
	snap.PaidAmount = decimal.RequireFromString("200.00")
	snap.ExtensionDate = &paidAt

	details, err := CalculateLoanDetails(snap, now)
	require.NoError(t, err)

	// 5 days on the reduced principal: 800 * 0.10 * 5 / 30 = 13.33
	assert.True(t, details.PrincipleAmount.Equal(decimal.RequireFromString("800.00")))
	assert.Equal(t, 5, details.InterestDays)
	assert.True(t, details.InterestAmount.Equal(decimal.RequireFromString("13.33")),
		"got %s", details.InterestAmount)
}

func TestCalculateLoanDetails_Overdue(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start.AddDate(0, 0, 40) // 5 days past end date

	details, err := CalculateLoanDetails(testSnapshot(start), now)
	require.NoError(t, err)

	assert.Equal(t, 5, details.OverdueDays)
	// 1000 * 0.20 * 5 / 30 = 33.333... -> 33.33
	assert.True(t, details.OverdueAmount.Equal(decimal.RequireFromString("33.33")),
		"got %s", details.OverdueAmount)
	assert.Equal(t, 0, details.RemainingDays)
	assert.Equal(t, LoanStatusOverdue, details.CurrentStatus)
}

func TestCalculateLoanDetails_StatusPriority(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start.AddDate(0, 0, 40)
	defaulted := start.AddDate(0, 0, 36)

	t.Run("defaulted beats overdue", func(t *testing.T) {
		snap := testSnapshot(start)
		snap.DefaultDate = &defaulted

		details, err := CalculateLoanDetails(snap, now)
		require.NoError(t, err)
		assert.Greater(t, details.OverdueDays, 0)
		assert.Equal(t, LoanStatusDefaulted, details.CurrentStatus)
	})

	t.Run("paid beats defaulted", func(t *testing.T) {
		snap := testSnapshot(start)
		snap.PaidAmount = snap.LoanAmount
		snap.DefaultDate = &defaulted

		details, err := CalculateLoanDetails(snap, now)
		require.NoError(t, err)
		assert.Equal(t, LoanStatusPaid, details.CurrentStatus)
	})
}

func TestCalculateLoanDetails_PaidLoanAccruesNothing(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start.AddDate(0, 0, 60)

	snap := testSnapshot(start)
	snap.PaidAmount = snap.LoanAmount

	details, err := CalculateLoanDetails(snap, now)
	require.NoError(t, err)

	assert.True(t, details.PrincipleAmount.IsZero())
	assert.True(t, details.InterestAmount.IsZero())
	assert.True(t, details.OverdueAmount.IsZero())
	assert.True(t, details.TotalAmount.IsZero())
	assert.Equal(t, LoanStatusPaid, details.CurrentStatus)
}

func TestCalculateLoanDetails_ClockBeforeStartClampsToZero(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start.AddDate(0, 0, -3)

	details, err := CalculateLoanDetails(testSnapshot(start), now)
	require.NoError(t, err)

	assert.Equal(t, 0, details.InterestDays)
	assert.True(t, details.InterestAmount.IsZero())
	assert.Equal(t, 0, details.OverdueDays)
}

func TestCalculateLoanDetails_PartialDaysDoNotCount(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start.Add(36 * time.Hour) // one and a half days

	details, err := CalculateLoanDetails(testSnapshot(start), now)
	require.NoError(t, err)

	assert.Equal(t, 1, details.InterestDays)
}

func TestCalculateLoanDetails_RoundsHalfAwayFromZero(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start.AddDate(0, 0, 1)

	snap := testSnapshot(start)
	snap.LoanAmount = decimal.RequireFromString("73.50")

	details, err := CalculateLoanDetails(snap, now)
	require.NoError(t, err)

	// 73.50 * 0.10 * 1 / 30 = 0.245 -> 0.25
	assert.True(t, details.InterestAmount.Equal(decimal.RequireFromString("0.25")),
		"got %s", details.InterestAmount)
}

func TestCalculateLoanDetails_OverpaidStateIsRejected(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	snap := testSnapshot(start)
	snap.PaidAmount = snap.LoanAmount.Add(decimal.RequireFromString("0.01"))

	_, err := CalculateLoanDetails(snap, start.AddDate(0, 0, 5))
	require.Error(t, err)

	var stateErr *InvalidStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, uint(1), stateErr.LoanID)
}
