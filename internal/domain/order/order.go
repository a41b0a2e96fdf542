// Package order holds the Order aggregate: the record of a package
// purchase attempt (spec.md §3).
package order

import (
	"context"
	"fmt"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

type Order struct {
	ID          uint
	OrderNo     string
	UserID      uint
	PackageID   uint
	Amount      int64
	Status      Status
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// NewOrderNo builds the "ORD-{user_id}-{unix_millis}" identifier spec.md
// §4.2 step 3 fixes, which is globally unique because no two orders for
// the same user can be created within the same millisecond under the
// row-locked purchase transaction.
func NewOrderNo(userID uint, unixMillis int64) string {
	return fmt.Sprintf("ORD-%d-%d", userID, unixMillis)
}

func (o *Order) Complete(completedAt time.Time) {
	o.Status = StatusCompleted
	o.CompletedAt = &completedAt
}

type Repository interface {
	Create(ctx context.Context, o *Order) error
	Update(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id uint) (*Order, error)
	GetByIDForUser(ctx context.Context, id, userID uint) (*Order, error)
	ListByUser(ctx context.Context, userID uint) ([]*Order, error)
	// CountCompleted returns how many completed orders a user has, used by
	// the referral rebate protocol (spec.md §4.2) to identify "first order".
	CountCompleted(ctx context.Context, userID uint) (int, error)
}
