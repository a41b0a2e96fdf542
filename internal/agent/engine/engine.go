// Package engine renders the pulled node config into the local proxy
// engine's own format and samples its per-user traffic counters. nodal
// ships no proxy engine itself (spec.md Non-goals); Client is the seam a
// real deployment wires a Xray/sing-box adapter behind (spec.md §4.4
// "renders engine config, polls engine stats").
package engine

import (
	"fmt"

	"nodal/sdk/agent"
)

// Client is the boundary between the agent runtime and whatever proxy
// engine actually serves traffic on this node.
type Client interface {
	// Apply pushes the node's current config and user list to the engine,
	// replacing whatever it was previously serving.
	Apply(cfg *agent.Config) error
	// PollTraffic returns each user's upload/download delta since the last
	// poll, zeroing the engine's internal counters for those users.
	PollTraffic() ([]agent.TrafficSample, error)
}

// LogClient is a no-op Client that only logs what it would have done,
// standing in until a real engine adapter (Xray gRPC stats API, sing-box
// clash API, ...) is wired for a given deployment.
type LogClient struct {
	onApply func(cfg *agent.Config)
}

func NewLogClient(onApply func(cfg *agent.Config)) *LogClient {
	return &LogClient{onApply: onApply}
}

func (c *LogClient) Apply(cfg *agent.Config) error {
	if c.onApply != nil {
		c.onApply(cfg)
	}
	return nil
}

func (c *LogClient) PollTraffic() ([]agent.TrafficSample, error) {
	return nil, nil
}

// RenderSummary formats a one-line description of the users a config
// applies to, for the engine adapter's own logging.
func RenderSummary(cfg *agent.Config) string {
	return fmt.Sprintf("%s://%s:%d proto=%s users=%d/%d", cfg.Protocol, cfg.Host, cfg.Port, cfg.Protocol, len(cfg.Users), cfg.MaxUsers)
}
