package services

import (
	"context"

	"loandesk-backoffice/internal/adapters/persistence/models"
	"loandesk-backoffice/internal/adapters/persistence/repositories"

	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) GetByPhoneNumber(ctx context.Context, phoneNumber string) (*models.User, error) {
	args := m.Called(ctx, phoneNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserRepo) ExistsByPhoneNumber(ctx context.Context, phoneNumber string) (bool, error) {
	args := m.Called(ctx, phoneNumber)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type mockCustomerRepo struct{ mock.Mock }

func (m *mockCustomerRepo) Create(ctx context.Context, customer *models.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *mockCustomerRepo) GetByUserID(ctx context.Context, userID uint) (*models.Customer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customer), args.Error(1)
}

func (m *mockCustomerRepo) List(ctx context.Context) ([]*models.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Customer), args.Error(1)
}

func (m *mockCustomerRepo) Update(ctx context.Context, customer *models.Customer) error {
	return m.Called(ctx, customer).Error(0)
}

func (m *mockCustomerRepo) Delete(ctx context.Context, userID uint) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockCustomerRepo) Exists(ctx context.Context, userID uint) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

type mockEmployeeRepo struct{ mock.Mock }

func (m *mockEmployeeRepo) Create(ctx context.Context, employee *models.Employee) error {
	return m.Called(ctx, employee).Error(0)
}

func (m *mockEmployeeRepo) GetByUserID(ctx context.Context, userID uint) (*models.Employee, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

func (m *mockEmployeeRepo) List(ctx context.Context) ([]*models.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Employee), args.Error(1)
}

func (m *mockEmployeeRepo) Update(ctx context.Context, employee *models.Employee) error {
	return m.Called(ctx, employee).Error(0)
}

func (m *mockEmployeeRepo) Delete(ctx context.Context, userID uint) error {
	return m.Called(ctx, userID).Error(0)
}

type mockLoanRepo struct{ mock.Mock }

func (m *mockLoanRepo) Create(ctx context.Context, loan *models.Loan) error {
	return m.Called(ctx, loan).Error(0)
}

func (m *mockLoanRepo) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Loan), args.Error(1)
}

func (m *mockLoanRepo) GetByIDForUpdate(ctx context.Context, id uint) (*models.Loan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Loan), args.Error(1)
}

func (m *mockLoanRepo) List(ctx context.Context) ([]*models.Loan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Loan), args.Error(1)
}

func (m *mockLoanRepo) ListByCustomer(ctx context.Context, customerID uint) ([]*models.Loan, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Loan), args.Error(1)
}

func (m *mockLoanRepo) Update(ctx context.Context, loan *models.Loan) error {
	return m.Called(ctx, loan).Error(0)
}

func (m *mockLoanRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockLoanRepo) DeleteByCustomer(ctx context.Context, customerID uint) error {
	return m.Called(ctx, customerID).Error(0)
}

type mockTransactionRepo struct{ mock.Mock }

func (m *mockTransactionRepo) Create(ctx context.Context, tx *models.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *mockTransactionRepo) GetByID(ctx context.Context, id uint) (*models.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *mockTransactionRepo) List(ctx context.Context) ([]*models.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Transaction), args.Error(1)
}

func (m *mockTransactionRepo) ListByCustomer(ctx context.Context, customerID uint) ([]*models.Transaction, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Transaction), args.Error(1)
}

func (m *mockTransactionRepo) ListByLoan(ctx context.Context, loanID uint) ([]*models.Transaction, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Transaction), args.Error(1)
}

func (m *mockTransactionRepo) Update(ctx context.Context, tx *models.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *mockTransactionRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockTransactionRepo) DeleteByLoan(ctx context.Context, loanID uint) error {
	return m.Called(ctx, loanID).Error(0)
}

func (m *mockTransactionRepo) DeleteByCustomer(ctx context.Context, customerID uint) error {
	return m.Called(ctx, customerID).Error(0)
}

type mockRefreshTokenRepo struct{ mock.Mock }

func (m *mockRefreshTokenRepo) Create(ctx context.Context, token *models.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockRefreshTokenRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RefreshToken), args.Error(1)
}

func (m *mockRefreshTokenRepo) Revoke(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRefreshTokenRepo) RevokeByTokenHash(ctx context.Context, tokenHash string) error {
	return m.Called(ctx, tokenHash).Error(0)
}

func (m *mockRefreshTokenRepo) RevokeAllByUserID(ctx context.Context, userID uint) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockRefreshTokenRepo) DeleteByUserID(ctx context.Context, userID uint) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockRefreshTokenRepo) DeleteExpired(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// fakeProvider satisfies RepositoryProvider with the test mocks.
type fakeProvider struct {
	users         *mockUserRepo
	customers     *mockCustomerRepo
	employees     *mockEmployeeRepo
	loans         *mockLoanRepo
	transactions  *mockTransactionRepo
	refreshTokens *mockRefreshTokenRepo
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		users:         &mockUserRepo{},
		customers:     &mockCustomerRepo{},
		employees:     &mockEmployeeRepo{},
		loans:         &mockLoanRepo{},
		transactions:  &mockTransactionRepo{},
		refreshTokens: &mockRefreshTokenRepo{},
	}
}

func (p *fakeProvider) Users() repositories.UserRepository               { return p.users }
func (p *fakeProvider) Customers() repositories.CustomerRepository       { return p.customers }
func (p *fakeProvider) Employees() repositories.EmployeeRepository       { return p.employees }
func (p *fakeProvider) Loans() repositories.LoanRepository               { return p.loans }
func (p *fakeProvider) Transactions() repositories.TransactionRepository { return p.transactions }
func (p *fakeProvider) RefreshTokens() repositories.RefreshTokenRepository {
	return p.refreshTokens
}

// fakeUnitOfWork runs the unit against the fake provider with no real
// transaction; rollback behavior is asserted through the mocks (a failed
// unit must not have reached the later writes).
type fakeUnitOfWork struct {
	provider *fakeProvider
}

func (u *fakeUnitOfWork) Do(ctx context.Context, fn func(tx repositories.RepositoryProvider) error) error {
	return fn(u.provider)
}
