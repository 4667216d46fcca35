package events

import (
	"context"
	"testing"
)

func TestMemoryBus_DeliversInOrder(t *testing.T) {
	bus := NewMemoryBus()

	var delivered []string
	bus.Subscribe(func(name string, payload map[string]any) {
		delivered = append(delivered, name+":first")
	})
	bus.Subscribe(func(name string, payload map[string]any) {
		delivered = append(delivered, name+":second")
	})

	if err := bus.Emit(context.Background(), "publisher.items.updated", map[string]any{"count": 3}); err != nil {
		t.Fatalf("emit: %v", err)
	}

	if len(delivered) != 2 || delivered[0] != "publisher.items.updated:first" || delivered[1] != "publisher.items.updated:second" {
		t.Fatalf("unexpected delivery: %v", delivered)
	}
}

func TestMemoryBus_PayloadPassedThrough(t *testing.T) {
	bus := NewMemoryBus()

	var got map[string]any
	bus.Subscribe(func(name string, payload map[string]any) {
		got = payload
	})

	payload := map[string]any{"type": "scheduled", "count": 5}
	if err := bus.Emit(context.Background(), "publisher.items.updated", payload); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if got["type"] != "scheduled" || got["count"] != 5 {
		t.Fatalf("payload mangled: %v", got)
	}
}

func TestMemoryBus_EmitWithoutSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	if err := bus.Emit(context.Background(), "publisher.items.updated", nil); err != nil {
		t.Fatalf("emit on empty bus should succeed, got %v", err)
	}
}

func TestMemoryBus_NilSubscriberIgnored(t *testing.T) {
	bus := NewMemoryBus()
	bus.Subscribe(nil)
	if err := bus.Emit(context.Background(), "publisher.items.updated", nil); err != nil {
		t.Fatalf("emit: %v", err)
	}
}
