// Package stream is the durable Redis Stream pipeline node agents publish
// traffic tuples onto, and the aggregator reads back in consumer-group
// batches (spec.md §4.3).
package stream

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"nodal/internal/domain/traffic"
)

const (
	trafficStreamKey   = "traffic_stream"
	trafficGroup       = "traffic_processor"
	trafficConsumerFmt = "aggregator-%d"

	fieldNodeID   = "node_id"
	fieldUserID   = "user_id"
	fieldUpload   = "upload"
	fieldDownload = "download"
	fieldTs       = "timestamp"
)

// TrafficProducer is used by the node-agent ingest handler to append one
// tuple per sample reported over the agent's HTTP traffic-report call.
type TrafficProducer struct {
	client *redis.Client
}

func NewTrafficProducer(client *redis.Client) *TrafficProducer {
	return &TrafficProducer{client: client}
}

func (p *TrafficProducer) Publish(ctx context.Context, t traffic.Tuple) (string, error) {
	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: trafficStreamKey,
		Values: map[string]any{
			fieldNodeID:   t.NodeID,
			fieldUserID:   t.UserID,
			fieldUpload:   t.Upload,
			fieldDownload: t.Download,
			fieldTs:       t.Ts.Unix(),
		},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("xadd traffic tuple: %w", err)
	}
	return id, nil
}

// Message is one stream entry decoded back into a tuple, carrying its
// stream ID so the aggregator can ack (or withhold acking) it individually.
type Message struct {
	ID    string
	Tuple traffic.Tuple
}

// TrafficConsumer reads batches from the traffic-aggregator consumer group
// and acks only the message IDs whose downstream write actually committed
// (spec.md §9 Open Question, resolved in favor of per-message ack granularity
// so a failed per-user update redelivers without re-processing the whole batch).
type TrafficConsumer struct {
	client     *redis.Client
	consumerID string
}

func NewTrafficConsumer(client *redis.Client, workerIndex int) *TrafficConsumer {
	return &TrafficConsumer{
		client:     client,
		consumerID: fmt.Sprintf(trafficConsumerFmt, workerIndex),
	}
}

// EnsureGroup creates the consumer group if it doesn't already exist,
// starting from the beginning of the stream (MkStream creates the stream
// itself if no tuple has ever been published).
func (c *TrafficConsumer) EnsureGroup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, trafficStreamKey, trafficGroup, "0").Err()
	if err != nil && !isBusyGroupErr(err) {
		return fmt.Errorf("create traffic consumer group: %w", err)
	}
	return nil
}

func isBusyGroupErr(err error) bool {
	return err != nil && err.Error() == "BUSYGROUP Consumer Group name already exists"
}

// ReadBatch blocks up to blockFor for up to count new tuples.
func (c *TrafficConsumer) ReadBatch(ctx context.Context, count int64, blockFor time.Duration) ([]Message, error) {
	res, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    trafficGroup,
		Consumer: c.consumerID,
		Streams:  []string{trafficStreamKey, ">"},
		Count:    count,
		Block:    blockFor,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("xreadgroup traffic tuples: %w", err)
	}
	if len(res) == 0 {
		return nil, nil
	}

	msgs := make([]Message, 0, len(res[0].Messages))
	for _, entry := range res[0].Messages {
		tuple, err := decodeTuple(entry.Values)
		if err != nil {
			return nil, fmt.Errorf("decode traffic tuple %s: %w", entry.ID, err)
		}
		msgs = append(msgs, Message{ID: entry.ID, Tuple: tuple})
	}
	return msgs, nil
}

func decodeTuple(values map[string]any) (traffic.Tuple, error) {
	nodeID, err := parseUint(values[fieldNodeID])
	if err != nil {
		return traffic.Tuple{}, err
	}
	userID, err := parseUint(values[fieldUserID])
	if err != nil {
		return traffic.Tuple{}, err
	}
	upload, err := parseUint64(values[fieldUpload])
	if err != nil {
		return traffic.Tuple{}, err
	}
	download, err := parseUint64(values[fieldDownload])
	if err != nil {
		return traffic.Tuple{}, err
	}
	ts, err := parseUint64(values[fieldTs])
	if err != nil {
		return traffic.Tuple{}, err
	}
	return traffic.Tuple{
		NodeID:   uint(nodeID),
		UserID:   uint(userID),
		Upload:   upload,
		Download: download,
		Ts:       time.Unix(int64(ts), 0),
	}, nil
}

func parseUint(v any) (uint64, error) {
	return parseUint64(v)
}

func parseUint64(v any) (uint64, error) {
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("unexpected stream field type %T", v)
	}
	return strconv.ParseUint(s, 10, 64)
}

// Ack confirms the given message IDs were durably applied. Any ID omitted
// from a batch is left pending and will be redelivered to the group.
func (c *TrafficConsumer) Ack(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := c.client.XAck(ctx, trafficStreamKey, trafficGroup, ids...).Err(); err != nil {
		return fmt.Errorf("xack traffic tuples: %w", err)
	}
	return nil
}

// Trim deletes the given entry IDs from the stream with XDEL, bounding
// stream growth (spec.md §4.3's "XDEL available to operators").
func (c *TrafficConsumer) Trim(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := c.client.XDel(ctx, trafficStreamKey, ids...).Err(); err != nil {
		return fmt.Errorf("xdel traffic tuples: %w", err)
	}
	return nil
}
