package services

import (
	"context"
	"errors"
	"log"
	"time"

	"loandesk-backoffice/internal/adapters/persistence/models"
	"loandesk-backoffice/internal/adapters/persistence/repositories"
	"loandesk-backoffice/internal/core/domain"
	"loandesk-backoffice/internal/pkg/password"

	"gorm.io/gorm"
)

// CustomerService handles customer profile management. A customer is a
// role=customer user plus a profile row keyed by the same id; the two are
// always created together.
type CustomerService struct {
	customerRepo repositories.CustomerRepository
	userRepo     repositories.UserRepository
	uow          repositories.UnitOfWork
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	customerRepo repositories.CustomerRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		userRepo:     userRepo,
		uow:          uow,
	}
}

// CreateCustomerInput represents create customer input
type CreateCustomerInput struct {
	PhoneNumber          string    `json:"phone_number" validate:"required,min=5,max=20"`
	Email                *string   `json:"email" validate:"omitempty,email"`
	Password             string    `json:"password" validate:"required,min=8"`
	SocialSecurityNumber string    `json:"social_security_number" validate:"required,min=5,max=20"`
	FirstName            string    `json:"first_name" validate:"required,max=100"`
	LastName             string    `json:"last_name" validate:"required,max=100"`
	DateOfBirth          time.Time `json:"date_of_birth" validate:"required"`
	Address              string    `json:"address"`
}

// Create creates the user account and the customer profile in one
// transaction so a failed profile insert never leaves an orphaned login.
func (s *CustomerService) Create(ctx context.Context, input *CreateCustomerInput) (*models.CustomerResponse, error) {
	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	var customer *models.Customer
	err = s.uow.Do(ctx, func(tx repositories.RepositoryProvider) error {
		exists, err := tx.Users().ExistsByPhoneNumber(ctx, input.PhoneNumber)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrUserAlreadyExists
		}

		if input.Email != nil {
			exists, err = tx.Users().ExistsByEmail(ctx, *input.Email)
			if err != nil {
				return err
			}
			if exists {
				return domain.ErrUserAlreadyExists
			}
		}

		user := &models.User{
			Role:        string(domain.RoleCustomer),
			PhoneNumber: input.PhoneNumber,
			Email:       input.Email,
			Password:    hashed,
		}
		if err := tx.Users().Create(ctx, user); err != nil {
			return err
		}

		customer = &models.Customer{
			UserID:               user.ID,
			SocialSecurityNumber: input.SocialSecurityNumber,
			FirstName:            input.FirstName,
			LastName:             input.LastName,
			DateOfBirth:          input.DateOfBirth,
			Address:              input.Address,
			IsActive:             true,
			User:                 user,
		}
		return tx.Customers().Create(ctx, customer)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Customer created: %s %s (ID: %d)", customer.FirstName, customer.LastName, customer.UserID)
	return customer.ToResponse(), nil
}

// GetByID gets a customer profile by user id
func (s *CustomerService) GetByID(ctx context.Context, userID uint) (*models.CustomerResponse, error) {
	customer, err := s.customerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}
	return customer.ToResponse(), nil
}

// List lists all customers
func (s *CustomerService) List(ctx context.Context) ([]*models.CustomerResponse, error) {
	customers, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]*models.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		responses = append(responses, c.ToResponse())
	}
	return responses, nil
}

// UpdateCustomerInput represents update customer input
type UpdateCustomerInput struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	Address   *string `json:"address"`
	IsActive  *bool   `json:"is_active"`
}

// Update updates a customer profile
func (s *CustomerService) Update(ctx context.Context, userID uint, input *UpdateCustomerInput) (*models.CustomerResponse, error) {
	customer, err := s.customerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}

	if input.FirstName != nil {
		customer.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		customer.LastName = *input.LastName
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}
	if input.IsActive != nil {
		customer.IsActive = *input.IsActive
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer.ToResponse(), nil
}

// Delete removes a customer and everything hanging off the account in one
// transaction: ledger entries first, then loans, then the profile, then the
// customer's sessions and login.
func (s *CustomerService) Delete(ctx context.Context, userID uint) error {
	err := s.uow.Do(ctx, func(tx repositories.RepositoryProvider) error {
		if _, err := tx.Customers().GetByUserID(ctx, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrCustomerNotFound
			}
			return err
		}

		if err := tx.Transactions().DeleteByCustomer(ctx, userID); err != nil {
			return err
		}
		if err := tx.Loans().DeleteByCustomer(ctx, userID); err != nil {
			return err
		}
		if err := tx.Customers().Delete(ctx, userID); err != nil {
			return err
		}
		if err := tx.RefreshTokens().DeleteByUserID(ctx, userID); err != nil {
			return err
		}
		return tx.Users().Delete(ctx, userID)
	})
	if err != nil {
		return err
	}

	log.Printf("✅ Customer deleted: ID %d (with dependent records)", userID)
	return nil
}
