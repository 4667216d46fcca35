package bulk

import (
	"context"
	"errors"
	"time"

	"github.com/goliatone/go-publisher/internal/content"
	"github.com/goliatone/go-publisher/internal/domain"
	"github.com/goliatone/go-publisher/internal/gateway"
	"github.com/goliatone/go-publisher/internal/logging"
	"github.com/goliatone/go-publisher/pkg/interfaces"
)

// ErrPlanMismatch signals that the item batch and the timestamp plan have
// different lengths. The orchestrator never guesses which side is right.
var ErrPlanMismatch = errors.New("bulk: item count does not match planned timestamps")

// ItemStore is the slice of the content repository the orchestrator writes to.
type ItemStore interface {
	Update(ctx context.Context, record *content.Item) (*content.Item, error)
}

// Orchestrator walks a planned batch sequentially: each item is offered to the
// gateway, confirmed against the system of record and mirrored locally before
// the next one starts. A failing item is skipped, never retried, and never
// stops the run.
type Orchestrator struct {
	gateway  interfaces.PublishingGateway
	record   interfaces.SystemOfRecord
	items    ItemStore
	progress interfaces.ProgressReporter
	logger   interfaces.Logger
	pacing   time.Duration
	sleep    func(ctx context.Context, d time.Duration) error
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithPacing sets the delay between consecutive items. Zero disables pacing.
func WithPacing(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d >= 0 {
			o.pacing = d
		}
	}
}

// WithProgress attaches a progress reporter invoked after every item.
func WithProgress(reporter interfaces.ProgressReporter) Option {
	return func(o *Orchestrator) {
		if reporter != nil {
			o.progress = reporter
		}
	}
}

// WithLogger attaches a logger to the orchestrator.
func WithLogger(logger interfaces.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New constructs an Orchestrator over the given gateway, system of record and
// local item store.
func New(gw interfaces.PublishingGateway, record interfaces.SystemOfRecord, items ItemStore, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		gateway: gw,
		record:  record,
		items:   items,
		logger:  logging.NoOp(),
		sleep:   sleepContext,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run publishes items[i] at timestamps[i] for every position in the batch.
// It returns a Report covering the whole batch; the error is non-nil only for
// precondition violations or a cancelled context, never for per-item failures.
func (o *Orchestrator) Run(ctx context.Context, creds interfaces.TargetCredentials, items []*content.Item, timestamps []time.Time) (*Report, error) {
	if len(items) != len(timestamps) {
		return nil, ErrPlanMismatch
	}

	report := &Report{Total: len(items)}
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			report.Failure = report.Total - report.Success
			return report, err
		}

		if i > 0 && o.pacing > 0 {
			if err := o.sleep(ctx, o.pacing); err != nil {
				report.Failure = report.Total - report.Success
				return report, err
			}
		}

		if o.publishOne(ctx, creds, item, timestamps[i]) {
			report.Success++
		} else {
			report.Failure++
		}

		o.reportProgress(i+1, report.Total)
	}
	return report, nil
}

// publishOne runs the three-step pipeline for a single item. The system of
// record is authoritative: a local mirror failure after the record accepted
// the update still counts as success.
func (o *Orchestrator) publishOne(ctx context.Context, creds interfaces.TargetCredentials, item *content.Item, at time.Time) bool {
	localTimestamp := gateway.FormatLocal(at)

	accepted, err := o.gateway.CreateScheduledPost(ctx, creds, interfaces.GatewayPost{
		Title:    item.Title,
		Body:     item.Body,
		MediaURL: item.MediaURL,
	}, localTimestamp)
	if err != nil {
		o.logger.Warn("gateway rejected item", "item", item.RemoteID.String(), "error", err)
		return false
	}

	patch := interfaces.ItemPatch{
		Status:      string(domain.StatusScheduled),
		ScheduledAt: &localTimestamp,
		ExternalRef: &accepted.ExternalRef,
	}
	if err := o.record.UpdateItem(ctx, item.RemoteID.String(), patch); err != nil {
		o.logger.Warn("system of record rejected item update",
			"item", item.RemoteID.String(),
			"external_ref", accepted.ExternalRef,
			"error", err)
		return false
	}

	item.Status = string(domain.StatusScheduled)
	scheduledAt := at
	item.ScheduledAt = &scheduledAt
	item.ExternalRef = &accepted.ExternalRef
	if _, err := o.items.Update(ctx, item); err != nil {
		// The record already holds the truth; the stale mirror heals on the
		// next reconcile.
		o.logger.Warn("local mirror update failed", "item", item.RemoteID.String(), "error", err)
	}
	return true
}

func (o *Orchestrator) reportProgress(processed, total int) {
	if o.progress == nil {
		return
	}
	percent := 100.0
	if total > 0 {
		percent = float64(processed) / float64(total) * 100
	}
	o.progress.Progress(processed, total, percent)
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
