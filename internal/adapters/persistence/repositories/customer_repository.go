package repositories

import (
	"context"

	"loandesk-backoffice/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// customerRepository implements CustomerRepository interface
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// Create creates a new customer profile
func (r *customerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

// GetByUserID gets a customer with the owning user preloaded
func (r *customerRepository) GetByUserID(ctx context.Context, userID uint) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// List lists all customers with user contact fields preloaded
func (r *customerRepository) List(ctx context.Context) ([]*models.Customer, error) {
	var customers []*models.Customer
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("user_id ASC").
		Find(&customers).Error
	return customers, err
}

// Update updates a customer profile
func (r *customerRepository) Update(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

// Delete deletes a customer profile
func (r *customerRepository) Delete(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Customer{}).Error
}

// Exists checks if a customer profile exists
func (r *customerRepository) Exists(ctx context.Context, userID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count > 0, err
}
