package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/goliatone/go-publisher/internal/logging"
	"github.com/goliatone/go-publisher/pkg/interfaces"
)

// DefaultEventTTL bounds how long stored event bodies live in Redis. The
// timeline indexes are not expired; consumers trim them on read.
const DefaultEventTTL = 24 * time.Hour

// RedisBus publishes events into Redis for out-of-process consumers. Each
// event body is stored under its own key and indexed on a global timeline
// plus a per-type timeline so consumers can replay either stream.
type RedisBus struct {
	client *redis.Client
	ttl    time.Duration
	logger interfaces.Logger
}

// RedisOption customizes a RedisBus.
type RedisOption func(*RedisBus)

// WithEventTTL overrides how long event bodies are retained.
func WithEventTTL(ttl time.Duration) RedisOption {
	return func(b *RedisBus) {
		if ttl > 0 {
			b.ttl = ttl
		}
	}
}

// WithRedisLogger attaches a logger to the bus.
func WithRedisLogger(logger interfaces.Logger) RedisOption {
	return func(b *RedisBus) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewRedisBus constructs a bus on top of an existing Redis client.
func NewRedisBus(client *redis.Client, opts ...RedisOption) *RedisBus {
	b := &RedisBus{
		client: client,
		ttl:    DefaultEventTTL,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

type storedEvent struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
}

// Emit stores the event and updates the timelines in a single pipeline.
// Delivery is best effort: a failed pipeline is logged, never surfaced, so a
// broken broker cannot fail the publishing run that emitted the event.
func (b *RedisBus) Emit(ctx context.Context, name string, payload map[string]any) error {
	eventID := uuid.New().String()
	timestamp := time.Now().Unix()

	body, err := json.Marshal(payload)
	if err != nil {
		b.logger.Warn("event payload not serializable", "event", name, "error", err)
		return nil
	}
	full, err := json.Marshal(storedEvent{
		ID:        eventID,
		Name:      name,
		Payload:   body,
		Timestamp: timestamp,
	})
	if err != nil {
		b.logger.Warn("event envelope not serializable", "event", name, "error", err)
		return nil
	}

	pipe := b.client.Pipeline()
	pipe.Set(ctx, "event:"+eventID, full, b.ttl)
	pipe.ZAdd(ctx, "events:timeline", redis.Z{Score: float64(timestamp), Member: eventID})
	pipe.ZAdd(ctx, "events:type:"+name, redis.Z{Score: float64(timestamp), Member: eventID})

	if _, err := pipe.Exec(ctx); err != nil {
		b.logger.Warn("event emit failed", "event", name, "error", err)
	}
	return nil
}

var _ interfaces.EventBus = (*RedisBus)(nil)
