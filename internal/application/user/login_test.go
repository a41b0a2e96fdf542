package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	appuser "nodal/internal/application/user"
	domainuser "nodal/internal/domain/user"
)

func TestLoginUseCase_UnknownEmail(t *testing.T) {
	users := new(mockUserRepository)
	hasher := new(mockPasswordHasher)
	jwt := new(mockTokenIssuer)

	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

	uc := appuser.NewLoginUseCase(users, hasher, jwt)
	_, err := uc.Execute(context.Background(), "ghost@example.com", "password123")

	assert.ErrorContains(t, err, "invalid email or password")
	hasher.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
}

func TestLoginUseCase_WrongPassword(t *testing.T) {
	users := new(mockUserRepository)
	hasher := new(mockPasswordHasher)
	jwt := new(mockTokenIssuer)

	u := &domainuser.User{ID: 1, Email: "a@example.com", PasswordHash: "hashed", Status: domainuser.StatusActive}
	users.On("GetByEmail", mock.Anything, "a@example.com").Return(u, nil)
	hasher.On("Verify", "wrong", "hashed").Return(assert.AnError)

	uc := appuser.NewLoginUseCase(users, hasher, jwt)
	_, err := uc.Execute(context.Background(), "a@example.com", "wrong")

	assert.ErrorContains(t, err, "invalid email or password")
}

func TestLoginUseCase_DisabledAccount(t *testing.T) {
	users := new(mockUserRepository)
	hasher := new(mockPasswordHasher)
	jwt := new(mockTokenIssuer)

	u := &domainuser.User{ID: 1, Email: "a@example.com", PasswordHash: "hashed", Status: domainuser.StatusDisabled}
	users.On("GetByEmail", mock.Anything, "a@example.com").Return(u, nil)
	hasher.On("Verify", "password123", "hashed").Return(nil)

	uc := appuser.NewLoginUseCase(users, hasher, jwt)
	_, err := uc.Execute(context.Background(), "a@example.com", "password123")

	assert.ErrorContains(t, err, "account disabled")
}

func TestLoginUseCase_Success(t *testing.T) {
	users := new(mockUserRepository)
	hasher := new(mockPasswordHasher)
	jwt := new(mockTokenIssuer)

	u := &domainuser.User{ID: 1, Email: "a@example.com", PasswordHash: "hashed", Status: domainuser.StatusActive}
	users.On("GetByEmail", mock.Anything, "a@example.com").Return(u, nil)
	hasher.On("Verify", "password123", "hashed").Return(nil)
	jwt.On("Generate", uint(1), false).Return("signed-token", nil)

	uc := appuser.NewLoginUseCase(users, hasher, jwt)
	result, err := uc.Execute(context.Background(), "a@example.com", "password123")

	assert.NoError(t, err)
	assert.Equal(t, "signed-token", result.Token)
	assert.Equal(t, uint(1), result.User.ID)
}

func TestRefreshUseCase_InvalidToken(t *testing.T) {
	jwt := new(mockTokenIssuer)
	jwt.On("Refresh", "bad-token").Return("", assert.AnError)

	uc := appuser.NewRefreshUseCase(jwt)
	_, err := uc.Execute(context.Background(), "bad-token")

	assert.ErrorContains(t, err, "invalid or expired token")
}

func TestRefreshUseCase_Success(t *testing.T) {
	jwt := new(mockTokenIssuer)
	jwt.On("Refresh", "old-token").Return("new-token", nil)

	uc := appuser.NewRefreshUseCase(jwt)
	next, err := uc.Execute(context.Background(), "old-token")

	assert.NoError(t, err)
	assert.Equal(t, "new-token", next)
}
