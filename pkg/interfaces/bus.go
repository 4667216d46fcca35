package interfaces

import "context"

// EventBus broadcasts engine events so independent views can re-derive their
// data without being wired to the orchestrator. Delivery is fire-and-forget,
// at most once per call; the engine only emits and never assumes listeners.
type EventBus interface {
	Emit(ctx context.Context, name string, payload map[string]any) error
}
