package services

import (
	"context"
	"errors"
	"log"

	"loandesk-backoffice/internal/adapters/persistence/models"
	"loandesk-backoffice/internal/adapters/persistence/repositories"
	"loandesk-backoffice/internal/core/domain"
	"loandesk-backoffice/internal/pkg/password"

	"gorm.io/gorm"
)

// UserService handles user account management
type UserService struct {
	userRepo repositories.UserRepository
	uow      repositories.UnitOfWork
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, uow repositories.UnitOfWork) *UserService {
	return &UserService{userRepo: userRepo, uow: uow}
}

// CreateUserInput represents create user input
type CreateUserInput struct {
	Role        string  `json:"role" validate:"required,oneof=admin employee customer"`
	PhoneNumber string  `json:"phone_number" validate:"required,min=5,max=20"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Password    string  `json:"password" validate:"required,min=8"`
}

// Create creates a bare user account. Customer and employee accounts are
// normally created through their profile services so the profile row exists;
// this path is for admin accounts and repairs.
func (s *UserService) Create(ctx context.Context, input *CreateUserInput) (*models.UserResponse, error) {
	if !domain.Role(input.Role).IsValid() {
		return nil, domain.NewValidationError("invalid role %q", input.Role)
	}

	exists, err := s.userRepo.ExistsByPhoneNumber(ctx, input.PhoneNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	if input.Email != nil {
		exists, err = s.userRepo.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrUserAlreadyExists
		}
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Role:        input.Role,
		PhoneNumber: input.PhoneNumber,
		Email:       input.Email,
		Password:    hashed,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ User created: %s [%s]", user.PhoneNumber, user.Role)
	return user.ToResponse(), nil
}

// GetByID gets a user by ID
func (s *UserService) GetByID(ctx context.Context, id uint) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user.ToResponse(), nil
}

// List lists all users
func (s *UserService) List(ctx context.Context) ([]*models.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]*models.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, u.ToResponse())
	}
	return responses, nil
}

// UpdateUserInput represents update user input
type UpdateUserInput struct {
	PhoneNumber *string `json:"phone_number" validate:"omitempty,min=5,max=20"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Password    *string `json:"password" validate:"omitempty,min=8"`
}

// Update updates a user's contact details and password
func (s *UserService) Update(ctx context.Context, id uint, input *UpdateUserInput) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if input.PhoneNumber != nil && *input.PhoneNumber != user.PhoneNumber {
		exists, err := s.userRepo.ExistsByPhoneNumber(ctx, *input.PhoneNumber)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrUserAlreadyExists
		}
		user.PhoneNumber = *input.PhoneNumber
	}

	if input.Email != nil {
		exists, err := s.userRepo.ExistsByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if exists && (user.Email == nil || *user.Email != *input.Email) {
			return nil, domain.ErrUserAlreadyExists
		}
		user.Email = input.Email
	}

	if input.Password != nil {
		hashed, err := password.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user.ToResponse(), nil
}

// Delete removes a user and everything hanging off it in one transaction:
// ledger entries first, then loans, then the role profile, then the user's
// sessions and the user row.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	err := s.uow.Do(ctx, func(tx repositories.RepositoryProvider) error {
		user, err := tx.Users().GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}

		switch domain.Role(user.Role) {
		case domain.RoleCustomer:
			if err := tx.Transactions().DeleteByCustomer(ctx, user.ID); err != nil {
				return err
			}
			if err := tx.Loans().DeleteByCustomer(ctx, user.ID); err != nil {
				return err
			}
			if err := tx.Customers().Delete(ctx, user.ID); err != nil {
				return err
			}
		case domain.RoleEmployee:
			if err := tx.Employees().Delete(ctx, user.ID); err != nil {
				return err
			}
		}

		if err := tx.RefreshTokens().DeleteByUserID(ctx, user.ID); err != nil {
			return err
		}

		return tx.Users().Delete(ctx, user.ID)
	})
	if err != nil {
		return err
	}

	log.Printf("✅ User deleted: ID %d (with dependent records)", id)
	return nil
}
