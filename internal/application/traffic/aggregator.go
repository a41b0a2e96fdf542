// Package traffic implements the Traffic Aggregator (spec.md §4.3): a
// durable-stream consumer that turns edge-counter tuples into per-user
// traffic_used increments.
package traffic

import (
	"context"
	"time"

	domaintraffic "nodal/internal/domain/traffic"
	domainuser "nodal/internal/domain/user"
	"nodal/internal/infrastructure/stream"
	applogger "nodal/internal/shared/logger"
)

// BatchMetrics records aggregator outcomes; satisfied by
// infrastructure/metrics.Metrics.
type BatchMetrics interface {
	ObserveTrafficBatch(tupleCount, ackedCount int, uploadBytes, downloadBytes uint64)
}

const (
	batchSize   = 100
	blockFor    = 1000 * time.Millisecond
	idleBackoff = 100 * time.Millisecond
)

// Consumer is the subset of stream.TrafficConsumer this aggregator drives,
// declared locally so the use case stays decoupled from the Redis client.
type Consumer interface {
	EnsureGroup(ctx context.Context) error
	ReadBatch(ctx context.Context, count int64, blockFor time.Duration) ([]stream.Message, error)
	Ack(ctx context.Context, ids ...string) error
}

// AggregatorUseCase runs one consumer-group member's read-aggregate-ack
// loop (spec.md §4.3 pipeline steps 1-6).
type AggregatorUseCase struct {
	consumer Consumer
	users    domainuser.Repository
	logs     domaintraffic.Repository
	metrics  BatchMetrics
}

func NewAggregatorUseCase(consumer Consumer, users domainuser.Repository, logs domaintraffic.Repository, metrics BatchMetrics) *AggregatorUseCase {
	return &AggregatorUseCase{consumer: consumer, users: users, logs: logs, metrics: metrics}
}

// Run blocks, processing batches until ctx is cancelled.
func (uc *AggregatorUseCase) Run(ctx context.Context) error {
	if err := uc.consumer.EnsureGroup(ctx); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		n, err := uc.processBatch(ctx)
		if err != nil {
			applogger.Get().Error("traffic batch processing failed", "error", err)
			continue
		}
		if n == 0 {
			time.Sleep(idleBackoff)
		}
	}
}

// processBatch reads and applies one batch, returning the number of
// messages read (0 means the block timed out with nothing pending).
func (uc *AggregatorUseCase) processBatch(ctx context.Context) (int, error) {
	messages, err := uc.consumer.ReadBatch(ctx, batchSize, blockFor)
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, nil
	}

	sumUp := map[uint]uint64{}
	sumDown := map[uint]uint64{}
	idsByUser := map[uint][]string{}
	logs := make([]*domaintraffic.Log, 0, len(messages))
	now := time.Now()

	for _, m := range messages {
		sumUp[m.Tuple.UserID] += m.Tuple.Upload
		sumDown[m.Tuple.UserID] += m.Tuple.Download
		idsByUser[m.Tuple.UserID] = append(idsByUser[m.Tuple.UserID], m.ID)
		logs = append(logs, &domaintraffic.Log{
			UserID:     m.Tuple.UserID,
			NodeID:     m.Tuple.NodeID,
			Upload:     m.Tuple.Upload,
			Download:   m.Tuple.Download,
			RecordedAt: now,
		})
	}

	var acked []string
	var totalUp, totalDown uint64
	for userID, up := range sumUp {
		down := sumDown[userID]
		if err := uc.users.IncrementTrafficUsed(ctx, userID, up+down); err != nil {
			applogger.Get().Warn("traffic increment failed, batch will redeliver", "user_id", userID, "error", err)
			continue
		}
		acked = append(acked, idsByUser[userID]...)
		totalUp += up
		totalDown += down
	}

	if err := uc.logs.AppendBatch(ctx, logs); err != nil {
		applogger.Get().Warn("traffic log append failed", "error", err)
	}

	if len(acked) > 0 {
		if err := uc.consumer.Ack(ctx, acked...); err != nil {
			applogger.Get().Warn("traffic batch ack failed", "error", err)
		}
	}

	if uc.metrics != nil {
		uc.metrics.ObserveTrafficBatch(len(messages), len(acked), totalUp, totalDown)
	}
	return len(messages), nil
}
