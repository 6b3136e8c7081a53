package repositories

import (
	"context"

	"loandesk-backoffice/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// transactionRepository implements TransactionRepository interface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// Create appends a ledger entry
func (r *transactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// GetByID gets a transaction with the customer preloaded
func (r *transactionRepository) GetByID(ctx context.Context, id uint) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Customer").
		First(&tx, id).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// List lists all transactions, oldest first
func (r *transactionRepository) List(ctx context.Context) ([]*models.Transaction, error) {
	var txs []*models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Order("id ASC").
		Find(&txs).Error
	return txs, err
}

// ListByCustomer lists transactions for a customer, newest first
func (r *transactionRepository) ListByCustomer(ctx context.Context, customerID uint) ([]*models.Transaction, error) {
	var txs []*models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&txs).Error
	return txs, err
}

// ListByLoan lists transactions for a loan, newest first
func (r *transactionRepository) ListByLoan(ctx context.Context, loanID uint) ([]*models.Transaction, error) {
	var txs []*models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("loan_id = ?", loanID).
		Order("created_at DESC").
		Find(&txs).Error
	return txs, err
}

// Update replaces a transaction (admin correction path)
func (r *transactionRepository) Update(ctx context.Context, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Save(tx).Error
}

// Delete deletes a transaction
func (r *transactionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Transaction{}, id).Error
}

// DeleteByLoan deletes all transactions for a loan (loan-delete cascade)
func (r *transactionRepository) DeleteByLoan(ctx context.Context, loanID uint) error {
	return r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Delete(&models.Transaction{}).Error
}

// DeleteByCustomer deletes all transactions for a customer (user-delete cascade)
func (r *transactionRepository) DeleteByCustomer(ctx context.Context, customerID uint) error {
	return r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Delete(&models.Transaction{}).Error
}
