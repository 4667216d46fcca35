package publisher_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"

	publisher "github.com/goliatone/go-publisher"
	pubcontent "github.com/goliatone/go-publisher/content"
	"github.com/goliatone/go-publisher/domain"
	"github.com/goliatone/go-publisher/internal/events"
	"github.com/goliatone/go-publisher/pkg/interfaces"
)

type fakeGateway struct {
	created   []string
	dates     []string
	cancelled []string
	failOn    map[string]bool
	nextRef   int
}

func (g *fakeGateway) CreateScheduledPost(_ context.Context, _ interfaces.TargetCredentials, post interfaces.GatewayPost, localTimestamp string) (*interfaces.GatewayAcceptance, error) {
	g.created = append(g.created, post.Title)
	g.dates = append(g.dates, localTimestamp)
	if g.failOn[post.Title] {
		return nil, errors.New("endpoint unavailable")
	}
	g.nextRef++
	return &interfaces.GatewayAcceptance{ExternalRef: strconv.Itoa(g.nextRef)}, nil
}

func (g *fakeGateway) CancelScheduledPost(_ context.Context, _ interfaces.TargetCredentials, externalRef string) error {
	g.cancelled = append(g.cancelled, externalRef)
	return nil
}

func testConfig() publisher.Config {
	cfg := publisher.DefaultConfig()
	cfg.Scheduling.PacingInterval = 0
	cfg.Scheduling.SettleDelay = 0
	cfg.Scheduling.CancelTimeout = time.Second
	return cfg
}

func newEngine(t *testing.T, gw *fakeGateway) (*publisher.Engine, *events.MemoryBus) {
	t.Helper()

	bus := events.NewMemoryBus()
	engine, err := publisher.New(testConfig(),
		publisher.WithGateway(gw),
		publisher.WithEventBus(bus),
		publisher.WithClock(func() time.Time {
			return time.Date(2025, time.June, 2, 10, 0, 0, 0, time.Local)
		}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	t.Cleanup(func() {
		_ = engine.Close()
	})
	return engine, bus
}

func seedTarget(t *testing.T, engine *publisher.Engine) {
	t.Helper()
	_, err := engine.Targets().Create(context.Background(), &pubcontent.Target{
		ID:        uuid.New(),
		RemoteID:  domain.NewIdentifier(10),
		Name:      "primary site",
		Endpoint:  "https://example.test",
		Principal: "editor",
		Secret:    "app-pw",
	})
	if err != nil {
		t.Fatalf("seed target: %v", err)
	}
}

const poolPayload = `[
	{"id": 1, "target_id": 10, "title": "First post", "body": "# One"},
	{"id": 2, "target_id": 10, "title": "Second post", "body": "# Two", "status": "rascunho"},
	{"id": 3, "target_id": 10, "title": "Third post", "body": "# Three"}
]`

func TestEngine_EndToEndScheduleAndUnschedule(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{failOn: map[string]bool{}}
	engine, bus := newEngine(t, gw)
	seedTarget(t, engine)

	var eventTypes []any
	var eventCounts []any
	bus.Subscribe(func(name string, payload map[string]any) {
		if name != "publisher.items.updated" {
			t.Errorf("unexpected topic %q", name)
		}
		eventTypes = append(eventTypes, payload["type"])
		eventCounts = append(eventCounts, payload["count"])
	})

	imported, err := engine.ImportPool(ctx, []byte(poolPayload))
	if err != nil {
		t.Fatalf("import pool: %v", err)
	}
	if imported != 3 {
		t.Fatalf("expected 3 imported items, got %d", imported)
	}

	report, err := engine.Scheduler().Schedule(ctx, publisher.ScheduleRequest{
		TargetID:  10,
		Total:     2,
		Cadence:   "daily",
		PerPeriod: 1,
		BaseTime:  "08:00",
	})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if report.Success != 2 || report.Failure != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}

	if len(gw.created) != 2 || gw.created[0] != "First post" || gw.created[1] != "Second post" {
		t.Fatalf("selection order wrong: %v", gw.created)
	}
	if gw.dates[0] != "2025-06-03T08:00:00" || gw.dates[1] != "2025-06-04T08:00:00" {
		t.Fatalf("planned dates wrong: %v", gw.dates)
	}

	items, err := engine.Items().List(ctx)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	scheduled := 0
	for _, item := range items {
		if item.NormalizedStatus() == domain.StatusScheduled {
			scheduled++
			if item.ScheduledAt == nil || item.ExternalRef == nil {
				t.Fatalf("scheduled item missing fields: %+v", item)
			}
		}
	}
	if scheduled != 2 {
		t.Fatalf("expected 2 scheduled items, got %d", scheduled)
	}

	if err := engine.Scheduler().Unschedule(ctx, 1); err != nil {
		t.Fatalf("unschedule: %v", err)
	}
	if len(gw.cancelled) != 1 || gw.cancelled[0] != "1" {
		t.Fatalf("remote cancel not issued: %v", gw.cancelled)
	}

	items, _ = engine.Items().List(ctx)
	reverted, ok := domain.Lookup(items, 1, func(it *pubcontent.Item) any { return it.RemoteID })
	if !ok {
		t.Fatal("reverted item missing")
	}
	if reverted.NormalizedStatus() != domain.StatusDraft || reverted.ScheduledAt != nil || reverted.ExternalRef != nil {
		t.Fatalf("item not reverted: %+v", reverted)
	}

	if len(eventTypes) != 2 || eventTypes[0] != "scheduled" || eventTypes[1] != "unscheduled" {
		t.Fatalf("event sequence wrong: %v", eventTypes)
	}
	if eventCounts[0] != 2 || eventCounts[1] != 1 {
		t.Fatalf("event counts wrong: %v", eventCounts)
	}
}

func TestEngine_PartialRunLeavesFailedItemsEligible(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{failOn: map[string]bool{"Second post": true}}
	engine, _ := newEngine(t, gw)
	seedTarget(t, engine)

	if _, err := engine.ImportPool(ctx, []byte(poolPayload)); err != nil {
		t.Fatalf("import pool: %v", err)
	}

	report, err := engine.Scheduler().Schedule(ctx, publisher.ScheduleRequest{
		TargetID:  10,
		Total:     3,
		Cadence:   "daily",
		PerPeriod: 1,
		BaseTime:  "09:30",
	})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if report.Success != 2 || report.Failure != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}

	eligible, err := engine.Scheduler().Eligible(ctx, 10)
	if err != nil {
		t.Fatalf("eligible: %v", err)
	}
	if len(eligible) != 1 || eligible[0].Title != "Second post" {
		t.Fatalf("failed item should remain eligible: %+v", eligible)
	}
}

func TestEngine_MixedCaseEventsProviderWiresBus(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.Events.Provider = "Memory"

	gw := &fakeGateway{failOn: map[string]bool{}}
	engine, err := publisher.New(cfg,
		publisher.WithGateway(gw),
		publisher.WithClock(func() time.Time {
			return time.Date(2025, time.June, 2, 10, 0, 0, 0, time.Local)
		}))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	t.Cleanup(func() {
		_ = engine.Close()
	})

	bus, ok := engine.Events().(*events.MemoryBus)
	if !ok {
		t.Fatalf("expected in-memory bus for provider %q, got %T", cfg.Events.Provider, engine.Events())
	}
	var emitted int
	bus.Subscribe(func(string, map[string]any) { emitted++ })

	seedTarget(t, engine)
	if _, err := engine.ImportPool(ctx, []byte(poolPayload)); err != nil {
		t.Fatalf("import pool: %v", err)
	}
	if _, err := engine.Scheduler().Schedule(ctx, publisher.ScheduleRequest{
		TargetID:  10,
		Total:     1,
		Cadence:   "daily",
		PerPeriod: 1,
		BaseTime:  "08:00",
	}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if emitted != 1 {
		t.Fatalf("expected one completion event, got %d", emitted)
	}
}

func TestEngine_ImportPoolRejectsMalformedPayload(t *testing.T) {
	gw := &fakeGateway{}
	engine, _ := newEngine(t, gw)

	if _, err := engine.ImportPool(context.Background(), []byte(`[{"title": "no id"}]`)); !errors.Is(err, pubcontent.ErrPoolPayloadInvalid) {
		t.Fatalf("expected pool validation error, got %v", err)
	}
}

func TestEngine_ConfigValidationSurfacesAtConstruction(t *testing.T) {
	cfg := testConfig()
	cfg.Events.Provider = "kafka"

	if _, err := publisher.New(cfg); !errors.Is(err, publisher.ErrEventsProviderUnknown) {
		t.Fatalf("expected ErrEventsProviderUnknown, got %v", err)
	}
}
