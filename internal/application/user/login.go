package user

import (
	"context"

	domainuser "nodal/internal/domain/user"
	"nodal/internal/shared/apperror"
)

type LoginUseCase struct {
	users  domainuser.Repository
	hasher PasswordHasher
	jwt    TokenIssuer
}

func NewLoginUseCase(users domainuser.Repository, hasher PasswordHasher, jwt TokenIssuer) *LoginUseCase {
	return &LoginUseCase{users: users, hasher: hasher, jwt: jwt}
}

func (uc *LoginUseCase) Execute(ctx context.Context, rawEmail, password string) (*AuthResult, error) {
	email, err := domainuser.NewEmail(rawEmail)
	if err != nil {
		return nil, apperror.Unauthorized("invalid email or password")
	}

	u, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Internal("lookup user by email", err)
	}
	// Generic error for both unknown email and bad password: don't reveal
	// which one was wrong.
	if u == nil {
		return nil, apperror.Unauthorized("invalid email or password")
	}
	if err := uc.hasher.Verify(password, u.PasswordHash); err != nil {
		return nil, apperror.Unauthorized("invalid email or password")
	}
	if !u.IsActive() {
		return nil, apperror.Unauthorized("account disabled")
	}

	token, err := uc.jwt.Generate(u.ID, u.IsAdmin)
	if err != nil {
		return nil, apperror.Internal("issue token", err)
	}
	return &AuthResult{Token: token, User: toUserDTO(u)}, nil
}

type RefreshUseCase struct {
	jwt TokenIssuer
}

func NewRefreshUseCase(jwt TokenIssuer) *RefreshUseCase {
	return &RefreshUseCase{jwt: jwt}
}

func (uc *RefreshUseCase) Execute(ctx context.Context, token string) (string, error) {
	next, err := uc.jwt.Refresh(token)
	if err != nil {
		return "", apperror.Unauthorized("invalid or expired token")
	}
	return next, nil
}
