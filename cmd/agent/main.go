// Command agent is the Node Agent edge binary: it pairs with one node
// record in the control plane, pulling config and reporting heartbeats
// and traffic over the sdk/agent client (spec.md §4.4).
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	agentruntime "nodal/internal/agent"
	"nodal/internal/agent/engine"
	"nodal/internal/infrastructure/circuitbreaker"
	"nodal/internal/infrastructure/config"
	applogger "nodal/internal/shared/logger"
	sdkagent "nodal/sdk/agent"
)

func main() {
	cfg, err := config.LoadAgent()
	if err != nil {
		os.Stderr.WriteString("load agent config: " + err.Error() + "\n")
		os.Exit(1)
	}

	applogger.Init(applogger.Config{Level: "info", Format: "console"})
	log := applogger.Get()
	log.Info("starting nodal agent", "node_id", cfg.NodeID, "api_url", cfg.APIURL)

	client := sdkagent.NewClient(cfg.APIURL, cfg.NodeID, cfg.NodeSecret)
	eng := engine.NewLogClient(func(c *sdkagent.Config) {
		log.Info("engine config applied", "summary", engine.RenderSummary(c))
	})
	breakers := circuitbreaker.DefaultManager()

	rt := agentruntime.NewRuntime(client, eng, breakers, agentruntime.Options{
		HeartbeatInterval:     cfg.HeartbeatInterval,
		TrafficReportInterval: cfg.TrafficReportInterval,
	}, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Info("shutting down agent")
		cancel()
	}()

	if err := rt.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("agent runtime failed", "error", err)
		os.Exit(1)
	}
	log.Info("agent exited gracefully")
}
