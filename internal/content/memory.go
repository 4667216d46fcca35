package content

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryItemRepository is an in-memory implementation for scaffolding and tests.
type MemoryItemRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*Item
	order []uuid.UUID
}

// NewMemoryItemRepository creates an empty in-memory item repository.
func NewMemoryItemRepository() *MemoryItemRepository {
	return &MemoryItemRepository{
		items: make(map[uuid.UUID]*Item),
	}
}

// Create inserts the supplied item.
func (m *MemoryItemRepository) Create(_ context.Context, record *Item) (*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := record.Clone()
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	if _, exists := m.items[copied.ID]; !exists {
		m.order = append(m.order, copied.ID)
	}
	m.items[copied.ID] = copied
	return copied.Clone(), nil
}

// GetByID retrieves an item by its local identifier.
func (m *MemoryItemRepository) GetByID(_ context.Context, id uuid.UUID) (*Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.items[id]
	if !ok {
		return nil, &NotFoundError{Resource: "item", Key: id.String()}
	}
	return rec.Clone(), nil
}

// List returns all items in insertion order, matching how the pool arrives
// from the system of record.
func (m *MemoryItemRepository) List(_ context.Context) ([]*Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Item, 0, len(m.order))
	for _, id := range m.order {
		if rec, ok := m.items[id]; ok {
			out = append(out, rec.Clone())
		}
	}
	return out, nil
}

// Update replaces the stored item.
func (m *MemoryItemRepository) Update(_ context.Context, record *Item) (*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[record.ID]; !ok {
		return nil, &NotFoundError{Resource: "item", Key: record.ID.String()}
	}
	m.items[record.ID] = record.Clone()
	return record.Clone(), nil
}

// MemoryTargetRepository stores publishing targets in-memory.
type MemoryTargetRepository struct {
	mu      sync.RWMutex
	targets map[uuid.UUID]*Target
	order   []uuid.UUID
}

// NewMemoryTargetRepository constructs the repository.
func NewMemoryTargetRepository() *MemoryTargetRepository {
	return &MemoryTargetRepository{
		targets: make(map[uuid.UUID]*Target),
	}
}

// Create inserts the supplied target.
func (m *MemoryTargetRepository) Create(_ context.Context, record *Target) (*Target, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *record
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	if _, exists := m.targets[copied.ID]; !exists {
		m.order = append(m.order, copied.ID)
	}
	m.targets[copied.ID] = &copied
	out := copied
	return &out, nil
}

// GetByID retrieves a target by identifier.
func (m *MemoryTargetRepository) GetByID(_ context.Context, id uuid.UUID) (*Target, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.targets[id]
	if !ok {
		return nil, &NotFoundError{Resource: "target", Key: id.String()}
	}
	out := *rec
	return &out, nil
}

// List returns all targets in insertion order.
func (m *MemoryTargetRepository) List(_ context.Context) ([]*Target, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Target, 0, len(m.order))
	for _, id := range m.order {
		if rec, ok := m.targets[id]; ok {
			copied := *rec
			out = append(out, &copied)
		}
	}
	return out, nil
}

// ListConnectable returns targets with complete credentials.
func (m *MemoryTargetRepository) ListConnectable(ctx context.Context) ([]*Target, error) {
	all, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*Target, 0, len(all))
	for _, t := range all {
		if t.Connectable() {
			out = append(out, t)
		}
	}
	return out, nil
}
