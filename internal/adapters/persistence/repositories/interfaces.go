package repositories

import (
	"context"

	"loandesk-backoffice/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByPhoneNumber(ctx context.Context, phoneNumber string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	ExistsByPhoneNumber(ctx context.Context, phoneNumber string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// CustomerRepository defines customer repository interface.
// Customer ids are user ids (1:1 ownership).
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByUserID(ctx context.Context, userID uint) (*models.Customer, error)
	List(ctx context.Context) ([]*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, userID uint) error
	Exists(ctx context.Context, userID uint) (bool, error)
}

// EmployeeRepository defines employee repository interface
type EmployeeRepository interface {
	Create(ctx context.Context, employee *models.Employee) error
	GetByUserID(ctx context.Context, userID uint) (*models.Employee, error)
	List(ctx context.Context) ([]*models.Employee, error)
	Update(ctx context.Context, employee *models.Employee) error
	Delete(ctx context.Context, userID uint) error
}

// LoanRepository defines loan repository interface
type LoanRepository interface {
	Create(ctx context.Context, loan *models.Loan) error
	GetByID(ctx context.Context, id uint) (*models.Loan, error)
	// GetByIDForUpdate reads a loan row under a FOR UPDATE lock so that
	// concurrent payments against the same loan serialize in the store.
	// Only meaningful inside a unit of work.
	GetByIDForUpdate(ctx context.Context, id uint) (*models.Loan, error)
	List(ctx context.Context) ([]*models.Loan, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]*models.Loan, error)
	Update(ctx context.Context, loan *models.Loan) error
	Delete(ctx context.Context, id uint) error
	DeleteByCustomer(ctx context.Context, customerID uint) error
}

// TransactionRepository defines transaction ledger repository interface
type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	GetByID(ctx context.Context, id uint) (*models.Transaction, error)
	List(ctx context.Context) ([]*models.Transaction, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]*models.Transaction, error)
	ListByLoan(ctx context.Context, loanID uint) ([]*models.Transaction, error)
	Update(ctx context.Context, tx *models.Transaction) error
	Delete(ctx context.Context, id uint) error
	DeleteByLoan(ctx context.Context, loanID uint) error
	DeleteByCustomer(ctx context.Context, customerID uint) error
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// RepositoryProvider hands out repositories bound to one database handle,
// either the root connection pool or an open transaction.
type RepositoryProvider interface {
	Users() UserRepository
	Customers() CustomerRepository
	Employees() EmployeeRepository
	Loans() LoanRepository
	Transactions() TransactionRepository
	RefreshTokens() RefreshTokenRepository
}

// UnitOfWork runs fn inside a single database transaction. Every repository
// obtained from the provider shares that transaction; an error from fn (or a
// panic) rolls the whole unit back, nil commits it.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(tx RepositoryProvider) error) error
}
