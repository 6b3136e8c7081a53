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

// EmployeeService handles employee profile management
type EmployeeService struct {
	employeeRepo repositories.EmployeeRepository
	uow          repositories.UnitOfWork
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(employeeRepo repositories.EmployeeRepository, uow repositories.UnitOfWork) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo, uow: uow}
}

// CreateEmployeeInput represents create employee input
type CreateEmployeeInput struct {
	PhoneNumber string    `json:"phone_number" validate:"required,min=5,max=20"`
	Email       *string   `json:"email" validate:"omitempty,email"`
	Password    string    `json:"password" validate:"required,min=8"`
	Position    string    `json:"position" validate:"required,max=100"`
	FirstName   string    `json:"first_name" validate:"required,max=100"`
	LastName    string    `json:"last_name" validate:"required,max=100"`
	DateOfBirth time.Time `json:"date_of_birth" validate:"required"`
}

// Create creates the user account and the employee profile in one transaction
func (s *EmployeeService) Create(ctx context.Context, input *CreateEmployeeInput) (*models.EmployeeResponse, error) {
	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	var employee *models.Employee
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
			Role:        string(domain.RoleEmployee),
			PhoneNumber: input.PhoneNumber,
			Email:       input.Email,
			Password:    hashed,
		}
		if err := tx.Users().Create(ctx, user); err != nil {
			return err
		}

		employee = &models.Employee{
			UserID:      user.ID,
			Position:    input.Position,
			FirstName:   input.FirstName,
			LastName:    input.LastName,
			DateOfBirth: input.DateOfBirth,
			User:        user,
		}
		return tx.Employees().Create(ctx, employee)
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Employee created: %s %s (ID: %d)", employee.FirstName, employee.LastName, employee.UserID)
	return employee.ToResponse(), nil
}

// GetByID gets an employee profile by user id
func (s *EmployeeService) GetByID(ctx context.Context, userID uint) (*models.EmployeeResponse, error) {
	employee, err := s.employeeRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee.ToResponse(), nil
}

// List lists all employees
func (s *EmployeeService) List(ctx context.Context) ([]*models.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]*models.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, e.ToResponse())
	}
	return responses, nil
}

// UpdateEmployeeInput represents update employee input
type UpdateEmployeeInput struct {
	Position  *string `json:"position" validate:"omitempty,max=100"`
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
}

// Update updates an employee profile
func (s *EmployeeService) Update(ctx context.Context, userID uint, input *UpdateEmployeeInput) (*models.EmployeeResponse, error) {
	employee, err := s.employeeRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, err
	}

	if input.Position != nil {
		employee.Position = *input.Position
	}
	if input.FirstName != nil {
		employee.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		employee.LastName = *input.LastName
	}

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}
	return employee.ToResponse(), nil
}

// Delete removes an employee profile, the employee's sessions and the login
// in one transaction. Ledger entries the employee recorded keep their
// employee_id reference.
func (s *EmployeeService) Delete(ctx context.Context, userID uint) error {
	err := s.uow.Do(ctx, func(tx repositories.RepositoryProvider) error {
		if _, err := tx.Employees().GetByUserID(ctx, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrEmployeeNotFound
			}
			return err
		}

		if err := tx.Employees().Delete(ctx, userID); err != nil {
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

	log.Printf("✅ Employee deleted: ID %d", userID)
	return nil
}
