package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nodal/internal/domain/user"
	"nodal/internal/infrastructure/database"
	"nodal/internal/infrastructure/persistence/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	m := toUserModel(u)
	if err := database.TxFromContext(ctx, r.db).Create(m).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	u.ID = m.ID
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	var m models.UserModel
	if err := database.TxFromContext(ctx, r.db).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return fromUserModel(&m), nil
}

// GetByIDForUpdate locks the row for the duration of the enclosing
// transaction, serializing concurrent balance/traffic mutations for the
// same user (spec.md §5 "Purchase").
func (r *UserRepository) GetByIDForUpdate(ctx context.Context, id uint) (*user.User, error) {
	var m models.UserModel
	err := database.TxFromContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&m, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user for update: %w", err)
	}
	return fromUserModel(&m), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var m models.UserModel
	if err := database.TxFromContext(ctx, r.db).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return fromUserModel(&m), nil
}

func (r *UserRepository) GetByReferralCode(ctx context.Context, code string) (*user.User, error) {
	var m models.UserModel
	if err := database.TxFromContext(ctx, r.db).Where("referral_code = ?", code).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by referral code: %w", err)
	}
	return fromUserModel(&m), nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	m := toUserModel(u)
	result := database.TxFromContext(ctx, r.db).Model(&models.UserModel{}).
		Where("id = ?", m.ID).
		Updates(map[string]any{
			"coin_balance":  m.CoinBalance,
			"traffic_quota": m.TrafficQuota,
			"traffic_used":  m.TrafficUsed,
			"status":        m.Status,
			"is_admin":      m.IsAdmin,
		})
	if result.Error != nil {
		return fmt.Errorf("update user: %w", result.Error)
	}
	return nil
}

func (r *UserRepository) CountByReferredBy(ctx context.Context, userID uint) (int, error) {
	var count int64
	err := database.TxFromContext(ctx, r.db).Model(&models.UserModel{}).
		Where("referred_by = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count referred users: %w", err)
	}
	return int(count), nil
}

func (r *UserRepository) IncrementTrafficUsed(ctx context.Context, userID uint, delta uint64) error {
	result := database.TxFromContext(ctx, r.db).Model(&models.UserModel{}).
		Where("id = ?", userID).
		Update("traffic_used", gorm.Expr("traffic_used + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("increment traffic used: %w", result.Error)
	}
	return nil
}

func (r *UserRepository) ListActiveEntitled(ctx context.Context, now time.Time) ([]user.ActiveEntitledUser, error) {
	var rows []struct {
		ID    uint
		Email string
	}
	err := database.TxFromContext(ctx, r.db).Model(&models.UserModel{}).
		Select("users.id, users.email").
		Joins("JOIN user_packages ON user_packages.user_id = users.id").
		Where("users.status = ?", string(user.StatusActive)).
		Where("user_packages.status = ?", "active").
		Where("user_packages.expires_at > ?", now).
		Where("user_packages.traffic_used < user_packages.traffic_quota").
		Group("users.id, users.email").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list active entitled users: %w", err)
	}
	out := make([]user.ActiveEntitledUser, 0, len(rows))
	for _, r := range rows {
		out = append(out, user.ActiveEntitledUser{ID: r.ID, Email: r.Email})
	}
	return out, nil
}

func toUserModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CoinBalance:  u.CoinBalance,
		TrafficQuota: u.TrafficQuota,
		TrafficUsed:  u.TrafficUsed,
		ReferralCode: u.ReferralCode,
		ReferredBy:   u.ReferredBy,
		Status:       string(u.Status),
		IsAdmin:      u.IsAdmin,
	}
}

func fromUserModel(m *models.UserModel) *user.User {
	return &user.User{
		ID:           m.ID,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		CoinBalance:  m.CoinBalance,
		TrafficQuota: m.TrafficQuota,
		TrafficUsed:  m.TrafficUsed,
		ReferralCode: m.ReferralCode,
		ReferredBy:   m.ReferredBy,
		Status:       user.Status(m.Status),
		IsAdmin:      m.IsAdmin,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
