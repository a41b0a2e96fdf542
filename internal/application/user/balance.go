package user

import (
	"context"
	"time"

	"nodal/internal/domain/payment"
	domainuser "nodal/internal/domain/user"
	"nodal/internal/shared/apperror"
)

type TransactionDTO struct {
	ID          uint      `json:"id"`
	Amount      int64     `json:"amount"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type BalanceResult struct {
	CoinBalance        int64            `json:"coin_balance"`
	RecentTransactions []TransactionDTO `json:"recent_transactions"`
}

const recentTransactionsLimit = 10

type GetBalanceUseCase struct {
	users        domainuser.Repository
	transactions payment.Repository
}

func NewGetBalanceUseCase(users domainuser.Repository, transactions payment.Repository) *GetBalanceUseCase {
	return &GetBalanceUseCase{users: users, transactions: transactions}
}

func (uc *GetBalanceUseCase) Execute(ctx context.Context, userID uint) (*BalanceResult, error) {
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("lookup user", err)
	}
	if u == nil {
		return nil, apperror.NotFound("user not found")
	}

	txs, err := uc.transactions.ListRecentByUser(ctx, userID, recentTransactionsLimit)
	if err != nil {
		return nil, apperror.Internal("list recent transactions", err)
	}

	dtos := make([]TransactionDTO, 0, len(txs))
	for _, t := range txs {
		dtos = append(dtos, TransactionDTO{
			ID:          t.ID,
			Amount:      t.Amount,
			Type:        string(t.Type),
			Description: t.Description,
			CreatedAt:   t.CreatedAt,
		})
	}

	return &BalanceResult{CoinBalance: u.CoinBalance, RecentTransactions: dtos}, nil
}
