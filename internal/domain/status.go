package domain

import "strings"

// Status represents lifecycle states for schedulable content items.
type Status string

const (
	// StatusDraft indicates an item still under preparation.
	StatusDraft Status = "draft"
	// StatusScheduled marks an item queued on the remote gateway for a future publish.
	StatusScheduled Status = "scheduled"
	// StatusPublished identifies an item already live on its target.
	StatusPublished Status = "published"
	// StatusDeleted marks an item removed from the pool but retained for history.
	StatusDeleted Status = "deleted"
)

// legacySynonyms maps status spellings inherited from earlier, localized
// vocabularies onto the canonical set. These are a compatibility shim applied
// once at the ingestion boundary; downstream code compares Status values only.
var legacySynonyms = map[string]Status{
	"rascunho":  StatusDraft,
	"agendado":  StatusScheduled,
	"publicado": StatusPublished,
	"excluido":  StatusDeleted,
	"excluído":  StatusDeleted,
}

// NormalizeStatus coerces arbitrary status strings into the canonical
// vocabulary. Empty input defaults to draft; unknown spellings pass through
// lowercased so callers can detect them with Valid.
func NormalizeStatus(input string) Status {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	if trimmed == "" {
		return StatusDraft
	}
	if canonical, ok := legacySynonyms[trimmed]; ok {
		return canonical
	}
	return Status(trimmed)
}

// Valid reports whether the status belongs to the canonical vocabulary.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusScheduled, StatusPublished, StatusDeleted:
		return true
	default:
		return false
	}
}
