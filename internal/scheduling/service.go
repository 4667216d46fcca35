package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-publisher/internal/bulk"
	"github.com/goliatone/go-publisher/internal/content"
	"github.com/goliatone/go-publisher/internal/domain"
	"github.com/goliatone/go-publisher/internal/logging"
	"github.com/goliatone/go-publisher/internal/planner"
	"github.com/goliatone/go-publisher/internal/reconcile"
	"github.com/goliatone/go-publisher/pkg/interfaces"
)

var (
	ErrTargetRequired       = errors.New("scheduling: target is required")
	ErrTargetNotConnectable = errors.New("scheduling: target is missing connection settings")
	ErrNoEligibleItems      = errors.New("scheduling: no eligible items for this target")
	ErrTotalExceedsEligible = errors.New("scheduling: requested total exceeds eligible items")
	ErrItemNotScheduled     = errors.New("scheduling: item is not scheduled")
)

// RunReport summarizes a scheduling run for callers outside this package.
type RunReport = bulk.Report

// ItemRepository is the slice of the local item cache the service reads and
// writes.
type ItemRepository interface {
	List(ctx context.Context) ([]*content.Item, error)
	Update(ctx context.Context, record *content.Item) (*content.Item, error)
}

// TargetRepository lists the publishing destinations known to the engine.
type TargetRepository interface {
	List(ctx context.Context) ([]*content.Target, error)
	ListConnectable(ctx context.Context) ([]*content.Target, error)
}

// ScheduleRequest describes one bulk scheduling run.
type ScheduleRequest struct {
	TargetID  any
	Total     int
	Cadence   string
	PerPeriod int
	StartDate *time.Time
	BaseTime  string
}

// Service coordinates a full scheduling run: resolve the target, select the
// eligible drafts, plan the timestamps, walk the batch and reconcile. It does
// not serialize runs; callers gate concurrent use.
type Service struct {
	items         ItemRepository
	targets       TargetRepository
	planner       *planner.Planner
	orchestrator  *bulk.Orchestrator
	reconciler    *reconcile.Trigger
	gateway       interfaces.PublishingGateway
	record        interfaces.SystemOfRecord
	logger        interfaces.Logger
	cancelTimeout time.Duration
}

// Option customizes a Service.
type Option func(*Service)

// WithCancelTimeout bounds the remote cancel call during unscheduling.
func WithCancelTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.cancelTimeout = d
		}
	}
}

// WithLogger attaches a logger to the service.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Deps bundles the collaborators a Service needs.
type Deps struct {
	Items        ItemRepository
	Targets      TargetRepository
	Planner      *planner.Planner
	Orchestrator *bulk.Orchestrator
	Reconciler   *reconcile.Trigger
	Gateway      interfaces.PublishingGateway
	Record       interfaces.SystemOfRecord
}

// New constructs a Service.
func New(deps Deps, opts ...Option) *Service {
	s := &Service{
		items:         deps.Items,
		targets:       deps.Targets,
		planner:       deps.Planner,
		orchestrator:  deps.Orchestrator,
		reconciler:    deps.Reconciler,
		gateway:       deps.Gateway,
		record:        deps.Record,
		logger:        logging.NoOp(),
		cancelTimeout: 10 * time.Second,
	}
	if s.planner == nil {
		s.planner = planner.New()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Plan computes the timestamps a run with these settings would use, without
// touching any item. The preview and the actual run share the same planner.
func (s *Service) Plan(req ScheduleRequest) ([]time.Time, error) {
	cadence, err := planner.ParseCadence(req.Cadence)
	if err != nil {
		return nil, err
	}
	return s.planner.Plan(planner.Request{
		Total:     req.Total,
		Cadence:   cadence,
		PerPeriod: req.PerPeriod,
		StartDate: req.StartDate,
		BaseTime:  req.BaseTime,
	})
}

// Eligible returns the drafts that a run against the given target would
// consider, in cache order.
func (s *Service) Eligible(ctx context.Context, targetID any) ([]*content.Item, error) {
	target, err := s.resolveTarget(ctx, targetID)
	if err != nil {
		return nil, err
	}
	pool, err := s.items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("scheduling: list items: %w", err)
	}
	return content.Eligible(pool, target.RemoteID), nil
}

// Schedule runs a bulk scheduling pass. Validation failures surface before
// any item is touched; once the walk starts, per-item failures are absorbed
// into the report and the run continues.
func (s *Service) Schedule(ctx context.Context, req ScheduleRequest) (*bulk.Report, error) {
	if req.Total < 1 {
		return nil, planner.ErrTotalInvalid
	}
	target, err := s.resolveTarget(ctx, req.TargetID)
	if err != nil {
		return nil, err
	}
	if !target.Connectable() {
		return nil, ErrTargetNotConnectable
	}

	pool, err := s.items.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("scheduling: list items: %w", err)
	}
	eligible := content.Eligible(pool, target.RemoteID)
	if len(eligible) == 0 {
		return nil, ErrNoEligibleItems
	}
	if req.Total > len(eligible) {
		return nil, ErrTotalExceedsEligible
	}

	batch := eligible[:req.Total]
	timestamps, err := s.Plan(req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("starting bulk schedule",
		"target", target.RemoteID.String(),
		"total", req.Total,
		"eligible", len(eligible))

	report, err := s.orchestrator.Run(ctx, target.Credentials(), batch, timestamps)
	if err != nil {
		return report, err
	}

	if report.Success > 0 {
		if err := s.reconciler.Notify(ctx, "scheduled", report.Success); err != nil {
			// The run itself succeeded; a stale display fixes itself on the
			// next manual reload.
			s.logger.Warn("reconcile after schedule failed", "error", err)
		}
	}

	s.logger.Info("bulk schedule finished",
		"target", target.RemoteID.String(),
		"success", report.Success,
		"failure", report.Failure,
		"outcome", string(report.Outcome()))
	return report, nil
}

// Unschedule reverts a single scheduled item to draft. The system of record
// and the local cache are the authoritative first step; the remote cancel is
// best effort and its failure never undoes the reversal.
func (s *Service) Unschedule(ctx context.Context, itemID any) error {
	pool, err := s.items.List(ctx)
	if err != nil {
		return fmt.Errorf("scheduling: list items: %w", err)
	}
	item, ok := domain.Lookup(pool, itemID, func(it *content.Item) any { return it.RemoteID })
	if !ok {
		return &content.NotFoundError{Resource: "item", Key: fmt.Sprint(itemID)}
	}
	if item.NormalizedStatus() != domain.StatusScheduled {
		return ErrItemNotScheduled
	}

	externalRef := ""
	if item.ExternalRef != nil {
		externalRef = *item.ExternalRef
	}

	patch := interfaces.ItemPatch{Status: string(domain.StatusDraft)}
	if err := s.record.UpdateItem(ctx, item.RemoteID.String(), patch); err != nil {
		return fmt.Errorf("scheduling: revert item %s: %w", item.RemoteID.String(), err)
	}

	item.Status = string(domain.StatusDraft)
	item.ScheduledAt = nil
	item.ExternalRef = nil
	if _, err := s.items.Update(ctx, item); err != nil {
		s.logger.Warn("local mirror revert failed", "item", item.RemoteID.String(), "error", err)
	}

	s.cancelRemote(ctx, item, externalRef)

	if err := s.reconciler.Notify(ctx, "unscheduled", 1); err != nil {
		s.logger.Warn("reconcile after unschedule failed", "error", err)
	}
	return nil
}

// cancelRemote tries to remove the post from the remote endpoint. The item is
// already draft again locally and in the record, so any failure here only
// leaves an orphan on the endpoint; it is logged and discarded.
func (s *Service) cancelRemote(ctx context.Context, item *content.Item, externalRef string) {
	if externalRef == "" {
		return
	}
	target, err := s.resolveTarget(ctx, item.TargetID)
	if err != nil {
		s.logger.Warn("remote cancel skipped, target unresolved",
			"item", item.RemoteID.String(),
			"error", err)
		return
	}
	if !target.Connectable() {
		s.logger.Warn("remote cancel skipped, target not connectable", "item", item.RemoteID.String())
		return
	}

	cancelCtx, cancel := context.WithTimeout(ctx, s.cancelTimeout)
	defer cancel()
	if err := s.gateway.CancelScheduledPost(cancelCtx, target.Credentials(), externalRef); err != nil {
		s.logger.Warn("remote cancel failed",
			"item", item.RemoteID.String(),
			"external_ref", externalRef,
			"error", err)
	}
}

func (s *Service) resolveTarget(ctx context.Context, targetID any) (*content.Target, error) {
	id := domain.NewIdentifier(targetID)
	if id.IsZero() {
		return nil, ErrTargetRequired
	}
	targets, err := s.targets.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("scheduling: list targets: %w", err)
	}
	target, ok := domain.Lookup(targets, targetID, func(t *content.Target) any { return t.RemoteID })
	if !ok {
		return nil, &content.NotFoundError{Resource: "target", Key: id.String()}
	}
	return target, nil
}
