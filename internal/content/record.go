package content

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-publisher/internal/domain"
	"github.com/goliatone/go-publisher/internal/gateway"
	"github.com/goliatone/go-publisher/pkg/interfaces"
)

// RecordStore is the repository slice LocalRecord applies patches to.
type RecordStore interface {
	List(ctx context.Context) ([]*Item, error)
	Update(ctx context.Context, record *Item) (*Item, error)
}

// LocalRecord is a SystemOfRecord backed by the engine's own item store, for
// hosts that run without an external authoritative system. Patches land
// directly on the local rows and RefreshAll has nothing to pull.
type LocalRecord struct {
	items RecordStore
}

// NewLocalRecord constructs a LocalRecord over the given store.
func NewLocalRecord(items RecordStore) *LocalRecord {
	return &LocalRecord{items: items}
}

// UpdateItem applies the patch to the item identified by id. Nil pointer
// fields clear the corresponding columns.
func (r *LocalRecord) UpdateItem(ctx context.Context, id string, patch interfaces.ItemPatch) error {
	pool, err := r.items.List(ctx)
	if err != nil {
		return fmt.Errorf("record: list items: %w", err)
	}
	item, ok := domain.Lookup(pool, id, func(it *Item) any { return it.RemoteID })
	if !ok {
		return &NotFoundError{Resource: "item", Key: id}
	}

	if patch.Status != "" {
		item.Status = string(domain.NormalizeStatus(patch.Status))
	}
	if patch.ScheduledAt == nil {
		item.ScheduledAt = nil
	} else {
		at, err := time.ParseInLocation(gateway.LocalTimeLayout, *patch.ScheduledAt, time.Local)
		if err != nil {
			return fmt.Errorf("record: parse scheduled_at %q: %w", *patch.ScheduledAt, err)
		}
		item.ScheduledAt = &at
	}
	item.ExternalRef = patch.ExternalRef

	if _, err := r.items.Update(ctx, item); err != nil {
		return fmt.Errorf("record: update item %s: %w", id, err)
	}
	return nil
}

// RefreshAll satisfies SystemOfRecord. The local store is already the source
// of truth, so there is nothing to pull.
func (r *LocalRecord) RefreshAll(context.Context) error {
	return nil
}

var _ interfaces.SystemOfRecord = (*LocalRecord)(nil)
