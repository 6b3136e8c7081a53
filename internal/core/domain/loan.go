package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan status values, in priority order: a fully repaid loan is "paid" no
// matter what else holds, a loan with a default date is "defaulted" even
// when overdue, and so on down to "active".
const (
	LoanStatusPaid      = "paid"
	LoanStatusDefaulted = "defaulted"
	LoanStatusOverdue   = "overdue"
	LoanStatusActive    = "active"
)

// Transaction purposes
const (
	PurposePrinciplePayment = "loan_principle_payment"
	PurposeInterestPayment  = "loan_interest_payment"
)

// PeriodBasisDays is the accrual basis: interest and overdue rates are
// quoted per 30-day period and accrue daily as rate * days / 30. All
// amounts round half away from zero to 2 decimal places; the payment
// validation compares the same rounded values, so derivation and
// validation cannot diverge.
const PeriodBasisDays = 30

// Terms are the rate and schedule parameters attached to a loan at
// creation time.
type Terms struct {
	InterestRate  decimal.Decimal
	OverdueRate   decimal.Decimal
	LoanPeriod    int
	ExtensionDays int
	WaitingDays   int
}

// LoanSnapshot is the stored state of a loan, detached from the
// persistence layer so the calculator stays a pure function.
type LoanSnapshot struct {
	ID            uint
	CustomerID    uint
	LoanAmount    decimal.Decimal
	PaidAmount    decimal.Decimal
	PaidInterest  decimal.Decimal
	StartDate     time.Time
	ExtensionDate *time.Time
	DefaultDate   *time.Time
	Terms         Terms
}

// LoanDetails carries every derived loan field. Derived values are
// recomputed on every read and never stored.
type LoanDetails struct {
	PrincipleAmount decimal.Decimal `json:"principle_amount"`
	InterestDays    int             `json:"interest_days"`
	InterestAmount  decimal.Decimal `json:"interest_amount"`
	OverdueDays     int             `json:"overdue_days"`
	OverdueAmount   decimal.Decimal `json:"overdue_amount"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	RemainingDays   int             `json:"remaining_days"`
	EndDate         time.Time       `json:"end_date"`
	CurrentStatus   string          `json:"current_status"`
}

// CalculateLoanDetails computes the derived amounts for a loan at the given
// instant. It is a pure function of the snapshot and the clock: identical
// inputs always yield identical output, and nothing is mutated.
//
// A negative outstanding principal means the stored paid_amount exceeds
// loan_amount; that cannot be produced through the payment paths, so it is
// reported as an InvalidStateError rather than a user-facing failure.
func CalculateLoanDetails(snap LoanSnapshot, now time.Time) (*LoanDetails, error) {
	principle := snap.LoanAmount.Sub(snap.PaidAmount)
	if principle.IsNegative() {
		return nil, &InvalidStateError{
			LoanID:  snap.ID,
			Message: "paid amount exceeds loan amount",
		}
	}

	// Interest clock runs from the last payment (extension date) or, if the
	// loan has never been paid, from the start date.
	interestFrom := snap.StartDate
	if snap.ExtensionDate != nil {
		interestFrom = *snap.ExtensionDate
	}
	interestDays := wholeDaysBetween(interestFrom, now)
	interestAmount := accrue(principle, snap.Terms.InterestRate, interestDays)

	endDate := snap.StartDate.AddDate(0, 0,
		snap.Terms.LoanPeriod+snap.Terms.ExtensionDays+snap.Terms.WaitingDays)
	overdueDays := wholeDaysBetween(endDate, now)
	overdueAmount := decimal.Zero
	if overdueDays > 0 {
		overdueAmount = accrue(principle, snap.Terms.OverdueRate, overdueDays)
	}

	details := &LoanDetails{
		PrincipleAmount: principle,
		InterestDays:    interestDays,
		InterestAmount:  interestAmount,
		OverdueDays:     overdueDays,
		OverdueAmount:   overdueAmount,
		TotalAmount:     principle.Add(interestAmount).Add(overdueAmount),
		RemainingDays:   wholeDaysBetween(now, endDate),
		EndDate:         endDate,
		CurrentStatus:   loanStatus(principle, snap.DefaultDate, overdueDays),
	}
	return details, nil
}

// accrue computes amount * rate * days / PeriodBasisDays rounded to the
// currency's 2 decimal places.
func accrue(amount, rate decimal.Decimal, days int) decimal.Decimal {
	if days <= 0 {
		return decimal.Zero
	}
	return amount.
		Mul(rate).
		Mul(decimal.NewFromInt(int64(days))).
		Div(decimal.NewFromInt(PeriodBasisDays)).
		Round(2)
}

// wholeDaysBetween returns the number of complete days from a to b,
// clamped at zero.
func wholeDaysBetween(a, b time.Time) int {
	if !b.After(a) {
		return 0
	}
	return int(b.Sub(a).Hours() / 24)
}

func loanStatus(principle decimal.Decimal, defaultDate *time.Time, overdueDays int) string {
	switch {
	case principle.IsZero():
		return LoanStatusPaid
	case defaultDate != nil:
		return LoanStatusDefaulted
	case overdueDays > 0:
		return LoanStatusOverdue
	default:
		return LoanStatusActive
	}
}
