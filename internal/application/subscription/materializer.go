// Package subscription implements the Subscription Materializer (spec.md
// §4.1): token → cached, quota-gated Clash YAML document.
package subscription

import (
	"context"
	"time"

	"gopkg.in/yaml.v3"

	"nodal/internal/domain/accesslog"
	"nodal/internal/domain/entitlement"
	"nodal/internal/domain/node"
	"nodal/internal/domain/subscription"
	domainuser "nodal/internal/domain/user"
	"nodal/internal/shared/apperror"
	"nodal/internal/shared/goroutine"
	applogger "nodal/internal/shared/logger"
)

// BodyCache is the `subscription:{token}` rendered-body cache
// (infrastructure/cache.SubscriptionCache).
type BodyCache interface {
	GetBody(ctx context.Context, token string) (string, bool, error)
	SetBody(ctx context.Context, token, body string) error
}

const accessLogTaskName = "access-log"

type Request struct {
	Token     string
	IP        string
	UserAgent string
}

type Result struct {
	Body string
}

// MaterializeUseCase resolves a subscription token to a Clash document
// (spec.md §4.1 resolution algorithm, steps 1-8).
type MaterializeUseCase struct {
	subscriptions subscription.Repository
	users         domainuser.Repository
	entitlements  entitlement.Repository
	nodes         node.Repository
	accessLogs    accesslog.AccessRepository
	cache         BodyCache
	dispatcher    *goroutine.Dispatcher
}

func NewMaterializeUseCase(
	subscriptions subscription.Repository,
	users domainuser.Repository,
	entitlements entitlement.Repository,
	nodes node.Repository,
	accessLogs accesslog.AccessRepository,
	cache BodyCache,
	dispatcher *goroutine.Dispatcher,
) *MaterializeUseCase {
	return &MaterializeUseCase{
		subscriptions: subscriptions,
		users:         users,
		entitlements:  entitlements,
		nodes:         nodes,
		accessLogs:    accessLogs,
		cache:         cache,
		dispatcher:    dispatcher,
	}
}

func (uc *MaterializeUseCase) Execute(ctx context.Context, req Request) (*Result, error) {
	if body, hit, err := uc.cache.GetBody(ctx, req.Token); err != nil {
		applogger.Get().Warn("subscription cache read failed", "error", err)
	} else if hit {
		// Cache-hit path does not re-authorize; the user_id used for
		// logging is a best-effort lookup via the subscription repository,
		// swallowed on failure (spec.md §4.1 step 1 / §9).
		uc.logAccess(req, nil, accesslog.AccessSuccess, func(ctx context.Context) (*uint, bool) {
			s, err := uc.subscriptions.GetByToken(ctx, req.Token)
			if err != nil || s == nil {
				return nil, false
			}
			id := s.UserID()
			return &id, true
		})
		return &Result{Body: body}, nil
	}

	s, err := uc.subscriptions.GetByToken(ctx, req.Token)
	if err != nil {
		return nil, apperror.Internal("lookup subscription", err)
	}
	if s == nil {
		return nil, apperror.NotFound("subscription not found")
	}
	userID := s.UserID()

	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal("lookup user", err)
	}
	if u == nil {
		return nil, apperror.NotFound("subscription not found")
	}

	if !u.IsActive() {
		uc.logAccessUser(req, userID, accesslog.AccessDisabled)
		return nil, apperror.Unauthorized("account disabled")
	}

	if !u.HasTraffic() {
		uc.logAccessUser(req, userID, accesslog.AccessQuotaExceeded)
		return &Result{Body: emptyConfigSentinel}, nil
	}

	current, err := uc.entitlements.FindCurrent(ctx, userID, time.Now())
	if err != nil {
		return nil, apperror.Internal("find current entitlement", err)
	}
	if current == nil {
		uc.logAccessUser(req, userID, accesslog.AccessExpired)
		return &Result{Body: emptyConfigSentinel}, nil
	}

	eligible, err := uc.nodes.ListClashEligible(ctx)
	if err != nil {
		return nil, apperror.Internal("list clash-eligible nodes", err)
	}

	doc, err := renderClash(eligible)
	if err != nil {
		return nil, apperror.Internal("render clash document", err)
	}
	body, err := yaml.Marshal(doc)
	if err != nil {
		return nil, apperror.Internal("marshal clash document", err)
	}

	if err := uc.cache.SetBody(ctx, req.Token, string(body)); err != nil {
		applogger.Get().Warn("subscription cache write failed", "error", err)
	}

	s.Touch()
	if err := uc.subscriptions.Update(ctx, s); err != nil {
		applogger.Get().Warn("subscription last_accessed update failed", "error", err)
	}

	uc.logAccessUser(req, userID, accesslog.AccessSuccess)
	return &Result{Body: string(body)}, nil
}

func (uc *MaterializeUseCase) logAccessUser(req Request, userID uint, status accesslog.AccessStatus) {
	uc.logAccess(req, &userID, status, nil)
}

// logAccess dispatches the access-log write as a detached, bounded
// background task (spec.md §5 "fire-and-forget budget"). resolveUserID, if
// given, is invoked inside the task to lazily resolve the cache-hit-path
// user_id without blocking the response; its found result overrides status
// with AccessFailed when the subscription row it looked up is gone.
func (uc *MaterializeUseCase) logAccess(req Request, userID *uint, status accesslog.AccessStatus, resolveUserID func(ctx context.Context) (*uint, bool)) {
	uc.dispatcher.Submit(accessLogTaskName, func(ctx context.Context) {
		resolved := userID
		if resolved == nil && resolveUserID != nil {
			id, found := resolveUserID(ctx)
			resolved = id
			if !found {
				status = accesslog.AccessFailed
			}
		}
		err := uc.accessLogs.Create(ctx, &accesslog.AccessLog{
			UserID:            resolved,
			SubscriptionToken: req.Token,
			IP:                req.IP,
			UserAgent:         req.UserAgent,
			Status:            status,
			Ts:                time.Now(),
		})
		if err != nil {
			applogger.Get().Warn("access log write failed", "error", err)
		}
	})
}
