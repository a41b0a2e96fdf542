// Package worker implements the `nodal worker` cobra command: the traffic
// aggregator consumer-group loop (spec.md §4.3).
package worker

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	apptraffic "nodal/internal/application/traffic"
	"nodal/internal/infrastructure/cache"
	"nodal/internal/infrastructure/config"
	"nodal/internal/infrastructure/database"
	"nodal/internal/infrastructure/metrics"
	"nodal/internal/infrastructure/persistence/repository"
	"nodal/internal/infrastructure/stream"
	applogger "nodal/internal/shared/logger"
)

var workerIndex int

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run the traffic aggregator worker",
		Long:  "Consume the traffic_stream consumer group and apply upload/download deltas to user traffic_used.",
		RunE:  run,
	}
	cmd.Flags().IntVar(&workerIndex, "index", 0, "consumer name suffix, for running multiple aggregator replicas")
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	applogger.Init(applogger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log := applogger.Get()
	log.Info("starting traffic aggregator worker", "index", workerIndex)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("unwrap sql.DB: %w", err)
	}
	defer sqlDB.Close()

	redisClient, err := cache.NewClient(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer redisClient.Close()

	m := metrics.New(prometheus.NewRegistry())

	userRepo := repository.NewUserRepository(db)
	trafficRepo := repository.NewTrafficRepository(db)
	consumer := stream.NewTrafficConsumer(redisClient, workerIndex)

	aggregator := apptraffic.NewAggregatorUseCase(consumer, userRepo, trafficRepo, m)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-quit
		log.Info("shutting down traffic aggregator worker")
		cancel()
	}()

	if err := aggregator.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("aggregator exited with error", "error", err)
		return err
	}
	log.Info("traffic aggregator worker stopped")
	return nil
}
