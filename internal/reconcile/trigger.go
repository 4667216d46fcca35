package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-publisher/internal/logging"
	"github.com/goliatone/go-publisher/pkg/interfaces"
)

// TopicItemsUpdated is the single topic downstream consumers listen on after
// a publishing or unscheduling run changed item state.
const TopicItemsUpdated = "publisher.items.updated"

// Trigger refreshes the system of record after a run settles, then emits one
// consolidated event instead of one event per item.
type Trigger struct {
	record interfaces.SystemOfRecord
	bus    interfaces.EventBus
	logger interfaces.Logger
	settle time.Duration
	sleep  func(ctx context.Context, d time.Duration) error
}

// Option customizes a Trigger.
type Option func(*Trigger)

// WithSettleDelay sets how long the trigger waits after the refresh before
// emitting, giving the record time to absorb the writes. Zero disables it.
func WithSettleDelay(d time.Duration) Option {
	return func(t *Trigger) {
		if d >= 0 {
			t.settle = d
		}
	}
}

// WithLogger attaches a logger to the trigger.
func WithLogger(logger interfaces.Logger) Option {
	return func(t *Trigger) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// New constructs a Trigger over the system of record and event bus.
func New(record interfaces.SystemOfRecord, bus interfaces.EventBus, opts ...Option) *Trigger {
	t := &Trigger{
		record: record,
		bus:    bus,
		logger: logging.NoOp(),
		sleep:  sleepContext,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Notify refreshes the record, waits for the settle delay and emits a single
// event describing the change. When the refresh fails the event is withheld:
// consumers would repaint from stale data, so the caller surfaces the error
// and the user reloads manually once the record recovers.
func (t *Trigger) Notify(ctx context.Context, changeType string, count int) error {
	if err := t.record.RefreshAll(ctx); err != nil {
		t.logger.Warn("record refresh failed, withholding update event",
			"change", changeType,
			"count", count,
			"error", err)
		return fmt.Errorf("reconcile: refresh: %w", err)
	}

	if t.settle > 0 {
		if err := t.sleep(ctx, t.settle); err != nil {
			return err
		}
	}

	if err := t.bus.Emit(ctx, TopicItemsUpdated, map[string]any{
		"type":  changeType,
		"count": count,
	}); err != nil {
		t.logger.Warn("update event emit failed", "change", changeType, "error", err)
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
