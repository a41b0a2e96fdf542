package user

import (
	"context"
	"fmt"

	"nodal/internal/domain/subscription"
	"nodal/internal/shared/apperror"
	"nodal/internal/shared/randtoken"
)

type SubscriptionLinkResult struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

// TokenGenerator produces the 64-char subscription token (spec.md §8).
type TokenGenerator interface {
	SubscriptionToken() (string, error)
}

type cryptoTokenGenerator struct{}

func (cryptoTokenGenerator) SubscriptionToken() (string, error) { return randtoken.SubscriptionToken() }

// GetSubscriptionLinkUseCase returns the caller's subscription URL,
// creating the underlying Subscription record on first call (spec.md §6
// "GET /api/subscription/link").
type GetSubscriptionLinkUseCase struct {
	subscriptions subscription.Repository
	tokens        TokenGenerator
	apiBaseURL    string
}

func NewGetSubscriptionLinkUseCase(subscriptions subscription.Repository, apiBaseURL string) *GetSubscriptionLinkUseCase {
	return &GetSubscriptionLinkUseCase{
		subscriptions: subscriptions,
		tokens:        cryptoTokenGenerator{},
		apiBaseURL:    apiBaseURL,
	}
}

func (uc *GetSubscriptionLinkUseCase) Execute(ctx context.Context, userID uint) (*SubscriptionLinkResult, error) {
	existing, err := uc.subscriptions.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("lookup subscription", err)
	}
	if existing != nil {
		return uc.result(existing.Token()), nil
	}

	token, err := uc.tokens.SubscriptionToken()
	if err != nil {
		return nil, apperror.Internal("generate subscription token", err)
	}
	s, err := subscription.NewSubscription(userID, token)
	if err != nil {
		return nil, apperror.Internal("build subscription", err)
	}
	if err := uc.subscriptions.Create(ctx, s); err != nil {
		return nil, apperror.Internal("create subscription", err)
	}
	return uc.result(s.Token()), nil
}

func (uc *GetSubscriptionLinkUseCase) result(token string) *SubscriptionLinkResult {
	return &SubscriptionLinkResult{
		Token: token,
		URL:   fmt.Sprintf("%s/sub/%s", uc.apiBaseURL, token),
	}
}

// ResetSubscriptionLinkUseCase rotates a user's subscription token,
// invalidating the previous link (spec.md §4.1 "reset subscription link").
type ResetSubscriptionLinkUseCase struct {
	subscriptions subscription.Repository
	tokens        TokenGenerator
	apiBaseURL    string
	invalidator   CacheInvalidator
}

// CacheInvalidator drops the rendered-config cache entry for a stale token,
// declared locally so this use case stays decoupled from the Redis client.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, token string) error
}

func NewResetSubscriptionLinkUseCase(subscriptions subscription.Repository, apiBaseURL string, invalidator CacheInvalidator) *ResetSubscriptionLinkUseCase {
	return &ResetSubscriptionLinkUseCase{
		subscriptions: subscriptions,
		tokens:        cryptoTokenGenerator{},
		apiBaseURL:    apiBaseURL,
		invalidator:   invalidator,
	}
}

func (uc *ResetSubscriptionLinkUseCase) Execute(ctx context.Context, userID uint) (*SubscriptionLinkResult, error) {
	s, err := uc.subscriptions.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("lookup subscription", err)
	}
	if s == nil {
		return nil, apperror.NotFound("subscription not found")
	}
	oldToken := s.Token()

	newToken, err := uc.tokens.SubscriptionToken()
	if err != nil {
		return nil, apperror.Internal("generate subscription token", err)
	}
	if err := s.Reset(newToken); err != nil {
		return nil, apperror.Internal("reset subscription", err)
	}
	if err := uc.subscriptions.Update(ctx, s); err != nil {
		return nil, apperror.Internal("update subscription", err)
	}

	if uc.invalidator != nil {
		_ = uc.invalidator.Invalidate(ctx, oldToken)
	}

	return &SubscriptionLinkResult{
		Token: newToken,
		URL:   fmt.Sprintf("%s/sub/%s", uc.apiBaseURL, newToken),
	}, nil
}
