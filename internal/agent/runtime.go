// Package agent is the Node Agent edge binary's runtime: it pulls config
// from the control plane, applies it to the local proxy engine, and posts
// heartbeats and traffic deltas back on their own intervals (spec.md §4.4).
package agent

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"nodal/internal/agent/engine"
	"nodal/internal/infrastructure/circuitbreaker"
	sdkagent "nodal/sdk/agent"
)

// Client is the subset of sdk/agent's Client the runtime depends on,
// declared locally so this package can be tested against a fake.
type Client interface {
	GetConfig(ctx context.Context) (*sdkagent.Config, error)
	Heartbeat(ctx context.Context, status string, activeConnections *int) error
	ReportTraffic(ctx context.Context, samples []sdkagent.TrafficSample) error
}

type Options struct {
	HeartbeatInterval     time.Duration
	TrafficReportInterval time.Duration
}

// Runtime drives the three periodic agent activities behind their own
// circuit breakers, so a control-plane outage degrades independently per
// concern instead of compounding into one stuck loop.
type Runtime struct {
	client   Client
	engine   engine.Client
	breakers *circuitbreaker.Manager
	opts     Options
	log      *slog.Logger

	activeConnections atomic.Int64
}

func NewRuntime(client Client, eng engine.Client, breakers *circuitbreaker.Manager, opts Options, log *slog.Logger) *Runtime {
	return &Runtime{client: client, engine: eng, breakers: breakers, opts: opts, log: log}
}

// Run blocks until ctx is cancelled, pulling config once up front and then
// looping the heartbeat and traffic-report tickers concurrently.
func (r *Runtime) Run(ctx context.Context) error {
	if err := r.pullConfig(ctx); err != nil {
		r.log.Warn("initial config pull failed", "error", err)
	}

	heartbeat := time.NewTicker(r.opts.HeartbeatInterval)
	defer heartbeat.Stop()
	trafficReport := time.NewTicker(r.opts.TrafficReportInterval)
	defer trafficReport.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-heartbeat.C:
			if err := r.doHeartbeat(ctx); err != nil {
				r.log.Warn("heartbeat failed", "error", err)
			}
			if err := r.pullConfig(ctx); err != nil {
				r.log.Warn("config pull failed", "error", err)
			}
		case <-trafficReport.C:
			if err := r.doReportTraffic(ctx); err != nil {
				r.log.Warn("traffic report failed", "error", err)
			}
		}
	}
}

func (r *Runtime) pullConfig(ctx context.Context) error {
	_, err := r.breakers.Execute(circuitbreaker.ServiceConfigPull, func() (any, error) {
		cfg, err := r.client.GetConfig(ctx)
		if err != nil {
			return nil, err
		}
		if err := r.engine.Apply(cfg); err != nil {
			return nil, err
		}
		r.log.Info("applied config", "summary", engine.RenderSummary(cfg))
		return nil, nil
	})
	return err
}

func (r *Runtime) doHeartbeat(ctx context.Context) error {
	n := int(r.activeConnections.Load())
	_, err := r.breakers.Execute(circuitbreaker.ServiceHeartbeat, func() (any, error) {
		return nil, r.client.Heartbeat(ctx, "online", &n)
	})
	return err
}

func (r *Runtime) doReportTraffic(ctx context.Context) error {
	samples, err := r.engine.PollTraffic()
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return nil
	}
	_, err = r.breakers.Execute(circuitbreaker.ServiceTrafficReport, func() (any, error) {
		return nil, r.client.ReportTraffic(ctx, samples)
	})
	return err
}

// SetActiveConnections updates the count the next heartbeat reports,
// called by the engine adapter whenever its connection count changes.
func (r *Runtime) SetActiveConnections(n int) {
	r.activeConnections.Store(int64(n))
}
