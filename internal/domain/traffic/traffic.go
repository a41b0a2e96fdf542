// Package traffic holds the wire tuple produced by node agents and the
// append-only TrafficLog persisted per tuple (spec.md §3, §6 "Stream tuple
// encoding").
package traffic

import (
	"context"
	"time"
)

// Tuple is one edge-counter sample, encoded on the stream with the
// literal field names node_id,user_id,upload,download,timestamp.
type Tuple struct {
	NodeID   uint
	UserID   uint
	Upload   uint64
	Download uint64
	Ts       time.Time
}

// Log is the append-only persisted record of a single tuple (spec.md §3 TrafficLog).
type Log struct {
	ID         uint
	UserID     uint
	NodeID     uint
	Upload     uint64
	Download   uint64
	RecordedAt time.Time
}

type Repository interface {
	// AppendBatch inserts one Log row per tuple in the batch. Used so that
	// each tuple appears exactly once in Traffic logs (spec.md §8 scenario 5)
	// regardless of how aggregation batches users together.
	AppendBatch(ctx context.Context, logs []*Log) error
}
