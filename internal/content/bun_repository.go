package content

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunItemRepository persists the local item cache through bun.
type BunItemRepository struct {
	repo repository.Repository[*Item]
}

func NewBunItemRepository(db *bun.DB) *BunItemRepository {
	return NewBunItemRepositoryWithCache(db, nil, nil)
}

func NewBunItemRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunItemRepository {
	base := NewItemRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunItemRepository{repo: wrapped}
}

func (r *BunItemRepository) Create(ctx context.Context, record *Item) (*Item, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*Item, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "item", id.String())
	}
	return result, nil
}

func (r *BunItemRepository) GetByRemoteID(ctx context.Context, remoteID string) (*Item, error) {
	result, err := r.repo.GetByIdentifier(ctx, remoteID)
	if err != nil {
		return nil, mapRepositoryError(err, "item", remoteID)
	}
	return result, nil
}

func (r *BunItemRepository) List(ctx context.Context) ([]*Item, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

func (r *BunItemRepository) Update(ctx context.Context, record *Item) (*Item, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, mapRepositoryError(err, "item", record.ID.String())
	}
	return updated, nil
}

// BunTargetRepository persists publishing targets through bun.
type BunTargetRepository struct {
	repo repository.Repository[*Target]
}

func NewBunTargetRepository(db *bun.DB) *BunTargetRepository {
	return NewBunTargetRepositoryWithCache(db, nil, nil)
}

func NewBunTargetRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunTargetRepository {
	base := NewTargetRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunTargetRepository{repo: wrapped}
}

func (r *BunTargetRepository) Create(ctx context.Context, record *Target) (*Target, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunTargetRepository) GetByID(ctx context.Context, id uuid.UUID) (*Target, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "target", id.String())
	}
	return result, nil
}

func (r *BunTargetRepository) List(ctx context.Context) ([]*Target, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

// ListConnectable filters targets down to those exposing complete
// credentials. The credential check trims whitespace, so it runs in Go
// rather than SQL.
func (r *BunTargetRepository) ListConnectable(ctx context.Context) ([]*Target, error) {
	records, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Target, 0, len(records))
	for _, record := range records {
		if record.Connectable() {
			out = append(out, record)
		}
	}
	return out, nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
