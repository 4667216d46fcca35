package events

import (
	"context"
	"sync"

	"github.com/goliatone/go-publisher/pkg/interfaces"
)

// Subscriber receives every event emitted on a MemoryBus.
type Subscriber func(name string, payload map[string]any)

// MemoryBus is an in-process event bus. Delivery is synchronous and
// at-most-once; subscriber panics are not guarded against.
type MemoryBus struct {
	mu          sync.RWMutex
	subscribers []Subscriber
}

// NewMemoryBus constructs an empty in-process bus.
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{}
}

// Subscribe registers a listener for all subsequent events.
func (b *MemoryBus) Subscribe(fn Subscriber) {
	if fn == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, fn)
}

// Emit delivers the event to every subscriber in registration order.
func (b *MemoryBus) Emit(ctx context.Context, name string, payload map[string]any) error {
	b.mu.RLock()
	subs := make([]Subscriber, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.RUnlock()

	for _, fn := range subs {
		fn(name, payload)
	}
	return nil
}

var _ interfaces.EventBus = (*MemoryBus)(nil)
