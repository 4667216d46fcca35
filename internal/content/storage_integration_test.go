package content_test

import (
	"context"
	"testing"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-publisher/internal/content"
	"github.com/goliatone/go-publisher/internal/domain"
	"github.com/goliatone/go-publisher/pkg/testsupport"
)

func newBunDB(t *testing.T) *bun.DB {
	t.Helper()

	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)

	registerPublisherModels(t, bunDB)
	return bunDB
}

func registerPublisherModels(t *testing.T, db *bun.DB) {
	t.Helper()
	ctx := context.Background()
	models := []any{
		(*content.Item)(nil),
		(*content.Target)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			t.Fatalf("create table %T: %v", model, err)
		}
	}
}

func TestBunItemRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	bunDB := newBunDB(t)

	repo := content.NewBunItemRepository(bunDB)

	created, err := repo.Create(ctx, &content.Item{
		ID:       uuid.New(),
		RemoteID: domain.NewIdentifier(7),
		TargetID: domain.NewIdentifier(10),
		Title:    "stored draft",
		Body:     "body",
		Status:   string(domain.StatusDraft),
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	byRemote, err := repo.GetByRemoteID(ctx, "7")
	if err != nil {
		t.Fatalf("get by remote id: %v", err)
	}
	if byRemote.ID != created.ID {
		t.Fatalf("remote lookup returned wrong row: %v", byRemote.ID)
	}

	at := time.Date(2025, time.June, 3, 8, 0, 0, 0, time.UTC)
	ref := "4211"
	created.Status = string(domain.StatusScheduled)
	created.ScheduledAt = &at
	created.ExternalRef = &ref
	if _, err := repo.Update(ctx, created); err != nil {
		t.Fatalf("update item: %v", err)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.Status != string(domain.StatusScheduled) || got.ScheduledAt == nil || got.ExternalRef == nil {
		t.Fatalf("scheduling fields not persisted: %+v", got)
	}

	if _, err := repo.GetByID(ctx, uuid.New()); !content.IsNotFound(err) {
		t.Fatalf("expected NotFoundError for missing row, got %v", err)
	}
}

func TestBunTargetRepository_ListConnectable(t *testing.T) {
	ctx := context.Background()
	bunDB := newBunDB(t)

	repo := content.NewBunTargetRepository(bunDB)

	if _, err := repo.Create(ctx, &content.Target{
		ID:        uuid.New(),
		RemoteID:  domain.NewIdentifier(1),
		Name:      "ready",
		Endpoint:  "https://example.test",
		Principal: "editor",
		Secret:    "app-pw",
	}); err != nil {
		t.Fatalf("create target: %v", err)
	}
	if _, err := repo.Create(ctx, &content.Target{
		ID:       uuid.New(),
		RemoteID: domain.NewIdentifier(2),
		Name:     "unconfigured",
	}); err != nil {
		t.Fatalf("create target: %v", err)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 targets, got %d", len(all))
	}

	connectable, err := repo.ListConnectable(ctx)
	if err != nil {
		t.Fatalf("list connectable: %v", err)
	}
	if len(connectable) != 1 || connectable[0].Name != "ready" {
		t.Fatalf("only configured targets are connectable: %+v", connectable)
	}
}

func TestBunItemRepository_WithCache(t *testing.T) {
	ctx := context.Background()
	bunDB := newBunDB(t)

	cacheCfg := repocache.DefaultConfig()
	cacheCfg.TTL = time.Minute
	cacheService, err := repocache.NewCacheService(cacheCfg)
	if err != nil {
		t.Fatalf("new cache service: %v", err)
	}
	keySerializer := repocache.NewDefaultKeySerializer()

	repo := content.NewBunItemRepositoryWithCache(bunDB, cacheService, keySerializer)

	created, err := repo.Create(ctx, &content.Item{
		ID:       uuid.New(),
		RemoteID: domain.NewIdentifier(1),
		Title:    "cached draft",
		Status:   string(domain.StatusDraft),
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	if _, err := repo.GetByID(ctx, created.ID); err != nil {
		t.Fatalf("first get: %v", err)
	}
	if _, err := repo.GetByID(ctx, created.ID); err != nil {
		t.Fatalf("cached get: %v", err)
	}
}
