package interfaces

import "context"

// ItemPatch carries the mutable scheduling fields the engine writes back to
// the system of record. Nil pointers mean "clear the field".
type ItemPatch struct {
	Status      string
	ScheduledAt *string
	ExternalRef *string
}

// SystemOfRecord is the authoritative remote store the local cache mirrors.
// RefreshAll repopulates the local cache and emits no callback; callers must
// re-read the cache once it returns.
type SystemOfRecord interface {
	UpdateItem(ctx context.Context, id string, patch ItemPatch) error
	RefreshAll(ctx context.Context) error
}
