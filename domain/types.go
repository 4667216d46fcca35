package domain

import internaldomain "github.com/goliatone/go-publisher/internal/domain"

// Status represents lifecycle states for publishable items.
type Status = internaldomain.Status

const (
	// StatusDraft indicates an item still waiting to be scheduled.
	StatusDraft = internaldomain.StatusDraft
	// StatusScheduled marks an item with a future publish time configured.
	StatusScheduled = internaldomain.StatusScheduled
	// StatusPublished identifies an item the remote endpoint already released.
	StatusPublished = internaldomain.StatusPublished
	// StatusDeleted marks an item removed from the system of record.
	StatusDeleted = internaldomain.StatusDeleted
)

// NormalizeStatus resolves raw status strings, including legacy spellings,
// into the canonical vocabulary.
func NormalizeStatus(input string) Status {
	return internaldomain.NormalizeStatus(input)
}

// Identifier is an opaque record identifier compared by string representation.
type Identifier = internaldomain.Identifier

// NewIdentifier converts any raw identifier value into an Identifier.
func NewIdentifier(raw any) Identifier {
	return internaldomain.NewIdentifier(raw)
}

// Equal reports whether two identifier values refer to the same record
// regardless of their concrete representation.
func Equal(a, b any) bool {
	return internaldomain.Equal(a, b)
}

// Lookup scans a collection for the record whose key matches id.
func Lookup[T any](collection []T, id any, key func(T) any) (T, bool) {
	return internaldomain.Lookup(collection, id, key)
}
