package services

import (
	"context"
	"testing"

	"loandesk-backoffice/internal/adapters/persistence/models"
	"loandesk-backoffice/internal/core/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gorm.io/gorm"
)

func TestUserService_Delete_CascadesCustomerRecords(t *testing.T) {
	ctx := context.Background()
	provider := newFakeProvider()
	svc := NewUserService(provider.users, &fakeUnitOfWork{provider: provider})

	user := &models.User{ID: 7, Role: string(domain.RoleCustomer), PhoneNumber: "0810000001"}
	provider.users.On("GetByID", ctx, uint(7)).Return(user, nil)
	provider.transactions.On("DeleteByCustomer", ctx, uint(7)).Return(nil)
	provider.loans.On("DeleteByCustomer", ctx, uint(7)).Return(nil)
	provider.customers.On("Delete", ctx, uint(7)).Return(nil)
	provider.refreshTokens.On("DeleteByUserID", ctx, uint(7)).Return(nil)
	provider.users.On("Delete", ctx, uint(7)).Return(nil)

	require.NoError(t, svc.Delete(ctx, 7))

	provider.transactions.AssertExpectations(t)
	provider.loans.AssertExpectations(t)
	provider.customers.AssertExpectations(t)
	provider.refreshTokens.AssertExpectations(t)
	provider.users.AssertExpectations(t)
}

func TestUserService_Delete_EmployeeRemovesProfileOnly(t *testing.T) {
	ctx := context.Background()
	provider := newFakeProvider()
	svc := NewUserService(provider.users, &fakeUnitOfWork{provider: provider})

	user := &models.User{ID: 3, Role: string(domain.RoleEmployee), PhoneNumber: "0810000002"}
	provider.users.On("GetByID", ctx, uint(3)).Return(user, nil)
	provider.employees.On("Delete", ctx, uint(3)).Return(nil)
	provider.refreshTokens.On("DeleteByUserID", ctx, uint(3)).Return(nil)
	provider.users.On("Delete", ctx, uint(3)).Return(nil)

	require.NoError(t, svc.Delete(ctx, 3))

	provider.transactions.AssertNotCalled(t, "DeleteByCustomer", mock.Anything, mock.Anything)
	provider.loans.AssertNotCalled(t, "DeleteByCustomer", mock.Anything, mock.Anything)
	provider.employees.AssertExpectations(t)
}

func TestUserService_Delete_UnknownUser(t *testing.T) {
	ctx := context.Background()
	provider := newFakeProvider()
	svc := NewUserService(provider.users, &fakeUnitOfWork{provider: provider})

	provider.users.On("GetByID", ctx, uint(404)).Return(nil, gorm.ErrRecordNotFound)

	err := svc.Delete(ctx, 404)
	require.ErrorIs(t, err, domain.ErrUserNotFound)
	provider.users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
