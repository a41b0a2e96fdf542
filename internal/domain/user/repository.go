package user

import (
	"context"
	"time"
)

// ActiveEntitledUser is the {id, email} projection the node agent pull
// endpoint serves (spec.md §4.4 "Agent pull").
type ActiveEntitledUser struct {
	ID    uint
	Email string
}

// Repository is the persistence port for User, implemented by
// infrastructure/persistence/repository against GORM.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	// GetByIDForUpdate loads the row under SELECT ... FOR UPDATE, required by
	// every balance/traffic mutation (spec.md §5 critical sections 1-2).
	GetByIDForUpdate(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByReferralCode(ctx context.Context, code string) (*User, error)
	Update(ctx context.Context, u *User) error
	// CountByReferredBy returns how many accounts name userID as their
	// referrer, for GET /api/user/referral/stats.
	CountByReferredBy(ctx context.Context, userID uint) (int, error)
	// ListActiveEntitled returns every user meeting the active-user
	// predicate: status=active AND a current UserPackage exists
	// (status=active, expires_at>now, traffic_used<traffic_quota).
	ListActiveEntitled(ctx context.Context, now time.Time) ([]ActiveEntitledUser, error)
	// IncrementTrafficUsed issues `UPDATE users SET traffic_used =
	// traffic_used + delta`, the atomic per-user increment the traffic
	// aggregator applies per batch (spec.md §4.3 step 5).
	IncrementTrafficUsed(ctx context.Context, userID uint, delta uint64) error
}
