package publisher

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	_ "github.com/mattn/go-sqlite3"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	pubcontent "github.com/goliatone/go-publisher/content"
	"github.com/goliatone/go-publisher/internal/bulk"
	"github.com/goliatone/go-publisher/internal/content"
	"github.com/goliatone/go-publisher/internal/events"
	"github.com/goliatone/go-publisher/internal/gateway"
	"github.com/goliatone/go-publisher/internal/logging"
	"github.com/goliatone/go-publisher/internal/logging/gologger"
	"github.com/goliatone/go-publisher/internal/planner"
	"github.com/goliatone/go-publisher/internal/reconcile"
	"github.com/goliatone/go-publisher/internal/scheduling"
	"github.com/goliatone/go-publisher/pkg/interfaces"
)

// ItemRepository exports the local item cache contract.
type ItemRepository interface {
	Create(ctx context.Context, record *pubcontent.Item) (*pubcontent.Item, error)
	List(ctx context.Context) ([]*pubcontent.Item, error)
	Update(ctx context.Context, record *pubcontent.Item) (*pubcontent.Item, error)
}

// TargetRepository exports the publishing target contract.
type TargetRepository interface {
	Create(ctx context.Context, record *pubcontent.Target) (*pubcontent.Target, error)
	List(ctx context.Context) ([]*pubcontent.Target, error)
	ListConnectable(ctx context.Context) ([]*pubcontent.Target, error)
}

// SchedulingService exports the scheduling service for consumers of the
// publisher package.
type SchedulingService = scheduling.Service

// ScheduleRequest exports the request shape of a scheduling run.
type ScheduleRequest = scheduling.ScheduleRequest

// RunReport exports the outcome summary of a scheduling run.
type RunReport = scheduling.RunReport

// Engine is the top level runtime facade. It owns the wiring between the
// content cache, the planner, the gateway and the reconciliation trigger.
type Engine struct {
	cfg      Config
	provider interfaces.LoggerProvider

	db      *bun.DB
	ownsDB  bool
	redis   *redis.Client
	items   ItemRepository
	targets TargetRepository

	gw       interfaces.PublishingGateway
	record   interfaces.SystemOfRecord
	bus      interfaces.EventBus
	progress interfaces.ProgressReporter
	clock    func() time.Time

	service *scheduling.Service
}

// Option overrides a default collaborator during construction.
type Option func(*Engine)

// WithLoggerProvider injects the logger provider used for module loggers.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(e *Engine) { e.provider = provider }
}

// WithGateway replaces the default WordPress-style gateway client.
func WithGateway(gw interfaces.PublishingGateway) Option {
	return func(e *Engine) { e.gw = gw }
}

// WithSystemOfRecord connects an external authoritative store. Without it the
// engine treats its own item cache as the record.
func WithSystemOfRecord(record interfaces.SystemOfRecord) Option {
	return func(e *Engine) { e.record = record }
}

// WithEventBus replaces the bus selected by configuration.
func WithEventBus(bus interfaces.EventBus) Option {
	return func(e *Engine) { e.bus = bus }
}

// WithProgressReporter receives per-item progress during bulk runs.
func WithProgressReporter(reporter interfaces.ProgressReporter) Option {
	return func(e *Engine) { e.progress = reporter }
}

// WithClock overrides the planner clock, mainly for tests.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithDB supplies an existing bun DB instead of opening one from the DSN.
func WithDB(db *bun.DB) Option {
	return func(e *Engine) { e.db = db }
}

// WithItemRepository replaces the item cache implementation.
func WithItemRepository(repo ItemRepository) Option {
	return func(e *Engine) { e.items = repo }
}

// WithTargetRepository replaces the target store implementation.
func WithTargetRepository(repo TargetRepository) Option {
	return func(e *Engine) { e.targets = repo }
}

// New constructs an Engine using the provided configuration and overrides.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}

	if e.provider == nil && cfg.Logging.Enabled {
		switch cfg.Logging.NormalizedProvider() {
		case "", "gologger":
			provider, err := gologger.NewProvider(gologger.Config{
				Level:     cfg.Logging.Level,
				Format:    cfg.Logging.Format,
				AddSource: cfg.Logging.AddSource,
			})
			if err != nil {
				return nil, err
			}
			e.provider = provider
		}
	}

	if err := e.wireStorage(); err != nil {
		return nil, err
	}
	if err := e.wireEvents(); err != nil {
		return nil, err
	}

	if e.gw == nil {
		e.gw = gateway.NewClient(gateway.WithLogger(logging.GatewayLogger(e.provider)))
	}
	if e.record == nil {
		e.record = content.NewLocalRecord(e.items)
	}

	plan := planner.New(planner.WithClock(e.clock))

	orchestratorOpts := []bulk.Option{
		bulk.WithPacing(cfg.Scheduling.PacingInterval),
		bulk.WithLogger(logging.BulkLogger(e.provider)),
	}
	if e.progress != nil {
		orchestratorOpts = append(orchestratorOpts, bulk.WithProgress(e.progress))
	}
	orchestrator := bulk.New(e.gw, e.record, e.items, orchestratorOpts...)

	trigger := reconcile.New(e.record, e.bus,
		reconcile.WithSettleDelay(cfg.Scheduling.SettleDelay),
		reconcile.WithLogger(logging.ReconcileLogger(e.provider)))

	e.service = scheduling.New(scheduling.Deps{
		Items:        e.items,
		Targets:      e.targets,
		Planner:      plan,
		Orchestrator: orchestrator,
		Reconciler:   trigger,
		Gateway:      e.gw,
		Record:       e.record,
	},
		scheduling.WithCancelTimeout(cfg.Scheduling.CancelTimeout),
		scheduling.WithLogger(logging.ModuleLogger(e.provider, "")))

	return e, nil
}

func (e *Engine) wireStorage() error {
	if e.items != nil && e.targets != nil {
		return nil
	}

	if e.db == nil && e.cfg.Storage.DSN != "" {
		sqlDB, err := sql.Open("sqlite3", e.cfg.Storage.DSN)
		if err != nil {
			return fmt.Errorf("publisher: open storage: %w", err)
		}
		e.db = bun.NewDB(sqlDB, sqlitedialect.New())
		e.ownsDB = true
	}

	if e.db == nil {
		if e.items == nil {
			e.items = content.NewMemoryItemRepository()
		}
		if e.targets == nil {
			e.targets = content.NewMemoryTargetRepository()
		}
		return nil
	}

	var cacheService repocache.CacheService
	var keySerializer repocache.KeySerializer
	if e.cfg.Cache.Enabled {
		cacheCfg := repocache.DefaultConfig()
		if e.cfg.Cache.DefaultTTL > 0 {
			cacheCfg.TTL = e.cfg.Cache.DefaultTTL
		}
		service, err := repocache.NewCacheService(cacheCfg)
		if err != nil {
			return fmt.Errorf("publisher: cache service: %w", err)
		}
		cacheService = service
		keySerializer = repocache.NewDefaultKeySerializer()
	}

	if e.items == nil {
		e.items = content.NewBunItemRepositoryWithCache(e.db, cacheService, keySerializer)
	}
	if e.targets == nil {
		e.targets = content.NewBunTargetRepositoryWithCache(e.db, cacheService, keySerializer)
	}
	return nil
}

func (e *Engine) wireEvents() error {
	if e.bus != nil {
		return nil
	}
	switch e.cfg.Events.NormalizedProvider() {
	case "", "memory":
		e.bus = events.NewMemoryBus()
	case "redis":
		e.redis = redis.NewClient(&redis.Options{Addr: e.cfg.Events.RedisAddr})
		e.bus = events.NewRedisBus(e.redis,
			events.WithEventTTL(e.cfg.Events.EventTTL),
			events.WithRedisLogger(logging.EventsLogger(e.provider)))
	}
	return nil
}

// Scheduler returns the configured scheduling service.
func (e *Engine) Scheduler() *SchedulingService {
	return e.service
}

// Items returns the local item cache.
func (e *Engine) Items() ItemRepository {
	return e.items
}

// Targets returns the publishing target store.
func (e *Engine) Targets() TargetRepository {
	return e.targets
}

// Events returns the configured event bus.
func (e *Engine) Events() interfaces.EventBus {
	return e.bus
}

// ImportPool validates a raw content pool payload and loads it into the item
// cache. Items arrive normalized; statuses already map to the canonical
// vocabulary.
func (e *Engine) ImportPool(ctx context.Context, payload []byte) (int, error) {
	items, err := content.ParsePool(payload)
	if err != nil {
		return 0, err
	}
	for i, item := range items {
		if _, err := e.items.Create(ctx, item); err != nil {
			return i, fmt.Errorf("publisher: import item %s: %w", item.RemoteID.String(), err)
		}
	}
	return len(items), nil
}

// Close releases the resources the engine opened itself. Databases and Redis
// clients supplied by the host stay open.
func (e *Engine) Close() error {
	var firstErr error
	if e.redis != nil {
		if err := e.redis.Close(); err != nil {
			firstErr = err
		}
	}
	if e.db != nil && e.ownsDB {
		if err := e.db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
