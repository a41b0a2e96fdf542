// Package catalog holds the Package aggregate: the purchasable traffic
// plans users buy entitlements from (spec.md §3). Named "catalog" because
// "package" is a reserved word in Go.
package catalog

import (
	"context"
	"time"

	"nodal/internal/shared/apperror"
)

// Package is immutable from the user's side; admin mutates/soft-deletes it.
type Package struct {
	ID            uint
	Name          string
	TrafficAmount uint64 // bytes
	Price         int64  // coins
	DurationDays  int
	Description   map[string]any // opaque keyed document, spec.md §9
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (p *Package) EnsurePurchasable() error {
	if !p.IsActive {
		return apperror.Business("package is not active")
	}
	return nil
}

type Repository interface {
	Create(ctx context.Context, p *Package) error
	GetByID(ctx context.Context, id uint) (*Package, error)
	Update(ctx context.Context, p *Package) error
	SoftDelete(ctx context.Context, id uint) error
	ListActive(ctx context.Context) ([]*Package, error)
	// ListAll returns every package regardless of is_active, for the admin
	// listing endpoint (spec.md §6 "admin package list").
	ListAll(ctx context.Context) ([]*Package, error)
}
