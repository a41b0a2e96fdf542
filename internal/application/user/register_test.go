package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	appuser "nodal/internal/application/user"
	domainuser "nodal/internal/domain/user"
)

func TestRegisterUseCase_EmailAlreadyRegistered(t *testing.T) {
	users := new(mockUserRepository)
	hasher := new(mockPasswordHasher)
	jwt := new(mockTokenIssuer)
	roles := new(mockRoleAssigner)

	users.On("GetByEmail", mock.Anything, "taken@example.com").
		Return(&domainuser.User{ID: 1}, nil)

	uc := appuser.NewRegisterUseCase(users, hasher, jwt, roles)
	_, err := uc.Execute(context.Background(), "taken@example.com", "password123", "")

	assert.ErrorContains(t, err, "email already registered")
	users.AssertExpectations(t)
}

func TestRegisterUseCase_InvalidReferralCode(t *testing.T) {
	users := new(mockUserRepository)
	hasher := new(mockPasswordHasher)
	jwt := new(mockTokenIssuer)
	roles := new(mockRoleAssigner)

	users.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, nil)
	users.On("GetByReferralCode", mock.Anything, "BADCODE").Return(nil, nil)

	uc := appuser.NewRegisterUseCase(users, hasher, jwt, roles)
	_, err := uc.Execute(context.Background(), "new@example.com", "password123", "BADCODE")

	assert.ErrorContains(t, err, "invalid referral code")
	users.AssertExpectations(t)
}

func TestRegisterUseCase_Success(t *testing.T) {
	users := new(mockUserRepository)
	hasher := new(mockPasswordHasher)
	jwt := new(mockTokenIssuer)
	roles := new(mockRoleAssigner)

	users.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, nil)
	hasher.On("Hash", "password123").Return("hashed", nil)
	users.On("GetByReferralCode", mock.Anything, mock.AnythingOfType("string")).Return(nil, nil)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *domainuser.User) bool {
		return u.Email == "new@example.com" && u.PasswordHash == "hashed"
	})).Run(func(args mock.Arguments) {
		u := args.Get(1).(*domainuser.User)
		u.ID = 42
	}).Return(nil)
	roles.On("AddRoleForUser", uint(42), "user").Return(nil)
	jwt.On("Generate", uint(42), false).Return("signed-token", nil)

	uc := appuser.NewRegisterUseCase(users, hasher, jwt, roles)
	result, err := uc.Execute(context.Background(), "new@example.com", "password123", "")

	assert.NoError(t, err)
	assert.Equal(t, "signed-token", result.Token)
	assert.Equal(t, uint(42), result.User.ID)
	assert.Equal(t, "new@example.com", result.User.Email)
	users.AssertExpectations(t)
	hasher.AssertExpectations(t)
	jwt.AssertExpectations(t)
	roles.AssertExpectations(t)
}

func TestRegisterUseCase_RoleAssignFailureDoesNotBlockRegistration(t *testing.T) {
	users := new(mockUserRepository)
	hasher := new(mockPasswordHasher)
	jwt := new(mockTokenIssuer)
	roles := new(mockRoleAssigner)

	users.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, nil)
	hasher.On("Hash", "password123").Return("hashed", nil)
	users.On("GetByReferralCode", mock.Anything, mock.AnythingOfType("string")).Return(nil, nil)
	users.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		u := args.Get(1).(*domainuser.User)
		u.ID = 7
	}).Return(nil)
	roles.On("AddRoleForUser", uint(7), "user").Return(assert.AnError)
	jwt.On("Generate", uint(7), false).Return("signed-token", nil)

	uc := appuser.NewRegisterUseCase(users, hasher, jwt, roles)
	result, err := uc.Execute(context.Background(), "new@example.com", "password123", "")

	assert.NoError(t, err)
	assert.Equal(t, "signed-token", result.Token)
}
