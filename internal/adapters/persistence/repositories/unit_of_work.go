package repositories

import (
	"context"

	"gorm.io/gorm"
)

// gormProvider hands out repositories bound to one *gorm.DB, which may be
// the root connection pool or an open transaction handle.
type gormProvider struct {
	db *gorm.DB
}

// NewRepositoryProvider creates a provider over the given database handle
func NewRepositoryProvider(db *gorm.DB) RepositoryProvider {
	return &gormProvider{db: db}
}

func (p *gormProvider) Users() UserRepository               { return NewUserRepository(p.db) }
func (p *gormProvider) Customers() CustomerRepository       { return NewCustomerRepository(p.db) }
func (p *gormProvider) Employees() EmployeeRepository       { return NewEmployeeRepository(p.db) }
func (p *gormProvider) Loans() LoanRepository               { return NewLoanRepository(p.db) }
func (p *gormProvider) Transactions() TransactionRepository { return NewTransactionRepository(p.db) }
func (p *gormProvider) RefreshTokens() RefreshTokenRepository {
	return NewRefreshTokenRepository(p.db)
}

// gormUnitOfWork implements UnitOfWork on a gorm transaction
type gormUnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a new unit of work over the database
func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

// Do opens one database transaction, passes transaction-scoped repositories
// to fn, and commits when fn returns nil. Any error (or panic) rolls back
// everything written inside the unit.
func (u *gormUnitOfWork) Do(ctx context.Context, fn func(tx RepositoryProvider) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormProvider{db: tx})
	})
}
