// Package user implements the account use cases spec.md §6's public and
// authenticated routes need: registration, login, token refresh, balance,
// referral, traffic, and subscription-link issuance.
package user

import (
	"time"

	domainuser "nodal/internal/domain/user"
)

type UserDTO struct {
	ID           uint      `json:"id"`
	Email        string    `json:"email"`
	CoinBalance  int64     `json:"coin_balance"`
	TrafficQuota uint64    `json:"traffic_quota"`
	TrafficUsed  uint64    `json:"traffic_used"`
	ReferralCode string    `json:"referral_code"`
	Status       string    `json:"status"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

func toUserDTO(u *domainuser.User) UserDTO {
	return UserDTO{
		ID:           u.ID,
		Email:        u.Email,
		CoinBalance:  u.CoinBalance,
		TrafficQuota: u.TrafficQuota,
		TrafficUsed:  u.TrafficUsed,
		ReferralCode: u.ReferralCode,
		Status:       string(u.Status),
		IsAdmin:      u.IsAdmin,
		CreatedAt:    u.CreatedAt,
	}
}

// AuthResult is the {token, user} envelope spec.md §6 fixes for
// register/login.
type AuthResult struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}
