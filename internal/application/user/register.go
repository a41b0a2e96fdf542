package user

import (
	"context"
	"fmt"

	domainuser "nodal/internal/domain/user"
	"nodal/internal/shared/apperror"
	applogger "nodal/internal/shared/logger"
	"nodal/internal/shared/randtoken"
)

// PasswordHasher is the subset of auth.BcryptPasswordHasher this package needs.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) error
}

// TokenIssuer is the subset of auth.JWTService this package needs.
type TokenIssuer interface {
	Generate(userID uint, isAdmin bool) (string, error)
	Refresh(tokenString string) (string, error)
}

// RoleAssigner grants the baseline "user" casbin role to a newly registered
// account, declared locally so this use case does not import the
// authorization package directly.
type RoleAssigner interface {
	AddRoleForUser(userID uint, role string) error
}

const defaultRole = "user"

type RegisterUseCase struct {
	users  domainuser.Repository
	hasher PasswordHasher
	jwt    TokenIssuer
	roles  RoleAssigner
}

func NewRegisterUseCase(users domainuser.Repository, hasher PasswordHasher, jwt TokenIssuer, roles RoleAssigner) *RegisterUseCase {
	return &RegisterUseCase{users: users, hasher: hasher, jwt: jwt, roles: roles}
}

func (uc *RegisterUseCase) Execute(ctx context.Context, rawEmail, password string, referralCode string) (*AuthResult, error) {
	email, err := domainuser.NewEmail(rawEmail)
	if err != nil {
		return nil, err
	}
	if err := domainuser.ValidatePassword(password); err != nil {
		return nil, err
	}

	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Internal("lookup user by email", err)
	}
	if existing != nil {
		return nil, apperror.Conflict("email already registered")
	}

	var referredBy *uint
	if referralCode != "" {
		referrer, err := uc.users.GetByReferralCode(ctx, referralCode)
		if err != nil {
			return nil, apperror.Internal("lookup referrer", err)
		}
		if referrer == nil {
			return nil, apperror.Validation("invalid referral code")
		}
		referredBy = &referrer.ID
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return nil, apperror.Internal("hash password", err)
	}

	code, err := uc.generateUniqueReferralCode(ctx)
	if err != nil {
		return nil, err
	}

	newUser := &domainuser.User{
		Email:        email,
		PasswordHash: hash,
		ReferralCode: code,
		ReferredBy:   referredBy,
		Status:       domainuser.StatusActive,
	}
	if err := uc.users.Create(ctx, newUser); err != nil {
		return nil, apperror.Internal("create user", err)
	}

	if uc.roles != nil {
		if err := uc.roles.AddRoleForUser(newUser.ID, defaultRole); err != nil {
			applogger.Get().Warn("failed to assign default role", "error", err, "user_id", newUser.ID)
		}
	}

	token, err := uc.jwt.Generate(newUser.ID, newUser.IsAdmin)
	if err != nil {
		return nil, apperror.Internal("issue token", err)
	}

	return &AuthResult{Token: token, User: toUserDTO(newUser)}, nil
}

// generateUniqueReferralCode retries a handful of times on the (astronomically
// unlikely) chance of a collision against the unique referral_code column.
func (uc *RegisterUseCase) generateUniqueReferralCode(ctx context.Context) (string, error) {
	for i := 0; i < 5; i++ {
		code, err := randtoken.ReferralCode()
		if err != nil {
			return "", apperror.Internal("generate referral code", err)
		}
		existing, err := uc.users.GetByReferralCode(ctx, code)
		if err != nil {
			return "", apperror.Internal("check referral code", err)
		}
		if existing == nil {
			return code, nil
		}
		applogger.Get().Warn("referral code collision, retrying", "attempt", i)
	}
	return "", fmt.Errorf("could not allocate a unique referral code")
}
