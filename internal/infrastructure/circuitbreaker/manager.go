// Package circuitbreaker isolates each agent-to-control-plane call behind
// its own breaker so a control-plane outage degrades one concern (say,
// traffic reporting) without retry-storming the others (spec.md §4.4).
package circuitbreaker

import (
	"time"

	"github.com/sony/gobreaker"

	applogger "nodal/internal/shared/logger"
)

// Service identifies one of the agent's remote calls for bulkhead isolation.
type Service string

const (
	ServiceHeartbeat     Service = "heartbeat"
	ServiceConfigPull    Service = "config_pull"
	ServiceTrafficReport Service = "traffic_report"
)

type BreakerConfig struct {
	MaxRequests         uint32
	Interval            time.Duration
	Timeout             time.Duration
	ConsecutiveFailures uint32
}

// Manager owns one gobreaker.CircuitBreaker per Service.
type Manager struct {
	breakers map[Service]*gobreaker.CircuitBreaker
}

func NewManager(cfgs map[Service]BreakerConfig) *Manager {
	m := &Manager{breakers: make(map[Service]*gobreaker.CircuitBreaker, len(cfgs))}
	for svc, cfg := range cfgs {
		m.breakers[svc] = gobreaker.NewCircuitBreaker(toSettings(string(svc), cfg))
	}
	return m
}

// DefaultManager wires the three agent calls with settings tolerant enough
// not to trip on a single slow request but quick to open on a real outage.
func DefaultManager() *Manager {
	return NewManager(map[Service]BreakerConfig{
		ServiceHeartbeat:     {MaxRequests: 1, Interval: 60 * time.Second, Timeout: 30 * time.Second, ConsecutiveFailures: 5},
		ServiceConfigPull:    {MaxRequests: 1, Interval: 60 * time.Second, Timeout: 30 * time.Second, ConsecutiveFailures: 3},
		ServiceTrafficReport: {MaxRequests: 1, Interval: 60 * time.Second, Timeout: 60 * time.Second, ConsecutiveFailures: 5},
	})
}

// Execute passes fn through without protection if svc has no configured
// breaker, so callers never have to special-case unmonitored services.
func (m *Manager) Execute(svc Service, fn func() (any, error)) (any, error) {
	breaker, ok := m.breakers[svc]
	if !ok {
		return fn()
	}
	return breaker.Execute(fn)
}

func (m *Manager) State(svc Service) string {
	breaker, ok := m.breakers[svc]
	if !ok {
		return "not_configured"
	}
	return breaker.State().String()
}

func toSettings(name string, cfg BreakerConfig) gobreaker.Settings {
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return cfg.ConsecutiveFailures > 0 && counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			applogger.Get().Warn("circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	}
}
