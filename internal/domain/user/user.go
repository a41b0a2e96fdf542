// Package user holds the User aggregate: account identity, coin balance,
// traffic entitlement counters, and referral linkage (spec.md §3).
package user

import (
	"net/mail"
	"strings"
	"time"
	"unicode"

	"nodal/internal/shared/apperror"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusDisabled Status = "disabled"
)

// User is the account aggregate. The methods below mutate coin_balance and
// traffic_used/quota; Debit refuses to take the balance negative. The admin
// quota reduction writes TrafficQuota directly, and the traffic aggregator
// increments traffic_used in the database (UserRepository.IncrementTrafficUsed).
type User struct {
	ID           uint
	Email        string
	PasswordHash string
	CoinBalance  int64
	TrafficQuota uint64
	TrafficUsed  uint64
	ReferralCode string
	ReferredBy   *uint
	Status       Status
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(raw)
	if err != nil {
		return "", apperror.Validation("invalid email address")
	}
	return strings.ToLower(addr.Address), nil
}

// ValidatePassword enforces spec.md §8's boundary: length >= 8, at least
// one letter and one digit.
func ValidatePassword(plain string) error {
	if len(plain) < 8 {
		return apperror.Validation("password must be at least 8 characters")
	}
	var hasLetter, hasDigit bool
	for _, r := range plain {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return apperror.Validation("password must contain letters and digits")
	}
	return nil
}

func (u *User) IsActive() bool { return u.Status == StatusActive }

// HasTraffic reports whether the user's total entitlement still covers
// past consumption (spec.md §4.1 step 4).
func (u *User) HasTraffic() bool { return u.TrafficQuota > u.TrafficUsed }

// Credit increases the balance; used by recharge and referral rebate.
func (u *User) Credit(amount int64) {
	u.CoinBalance += amount
}

// Debit decreases the balance, refusing to go negative (spec.md §3 invariant 1).
func (u *User) Debit(amount int64) error {
	if amount > u.CoinBalance {
		return apperror.Business("insufficient balance")
	}
	u.CoinBalance -= amount
	return nil
}

// GrantTraffic increases the traffic quota by amount (purchase protocol step 5).
func (u *User) GrantTraffic(amount uint64) {
	u.TrafficQuota += amount
}

// AddTrafficUsed increments consumption; never allowed to decrease, matching
// spec.md invariant 4.
func (u *User) AddTrafficUsed(delta uint64) {
	u.TrafficUsed += delta
}
