package content

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-publisher/internal/domain"
	"github.com/goliatone/go-publisher/pkg/interfaces"
)

// Item is a unit of content the engine can schedule. Rows mirror the system
// of record; ID is the local cache key while RemoteID carries whatever
// identifier encoding the remote store uses.
type Item struct {
	bun.BaseModel `bun:"table:content_items,alias:ci"`

	ID          uuid.UUID         `bun:",pk,type:uuid" json:"id"`
	RemoteID    domain.Identifier `bun:"remote_id,notnull" json:"remote_id"`
	TargetID    domain.Identifier `bun:"target_id" json:"target_id"`
	Title       string            `bun:"title,notnull" json:"title"`
	Body        string            `bun:"body" json:"body"`
	MediaURL    string            `bun:"media_url" json:"media_url,omitempty"`
	Status      string            `bun:"status,notnull,default:'draft'" json:"status"`
	ScheduledAt *time.Time        `bun:"scheduled_at,nullzero" json:"scheduled_at,omitempty"`
	PublishedAt *time.Time        `bun:"published_at,nullzero" json:"published_at,omitempty"`
	ExternalRef *string           `bun:"external_ref,nullzero" json:"external_ref,omitempty"`
	CreatedAt   time.Time         `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time         `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// NormalizedStatus resolves the persisted status through the canonical
// vocabulary, absorbing legacy spellings that predate normalization.
func (i *Item) NormalizedStatus() domain.Status {
	if i == nil {
		return domain.StatusDraft
	}
	return domain.NormalizeStatus(i.Status)
}

// Clone returns a deep copy so callers can mutate without aliasing cache rows.
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	copied := *i
	if i.ScheduledAt != nil {
		at := *i.ScheduledAt
		copied.ScheduledAt = &at
	}
	if i.PublishedAt != nil {
		at := *i.PublishedAt
		copied.PublishedAt = &at
	}
	if i.ExternalRef != nil {
		ref := *i.ExternalRef
		copied.ExternalRef = &ref
	}
	return &copied
}

// Target is a destination the engine can publish to, typically a connected
// site. A target missing any credential field is not connectable and must be
// excluded from selection.
type Target struct {
	bun.BaseModel `bun:"table:publishing_targets,alias:pt"`

	ID        uuid.UUID         `bun:",pk,type:uuid" json:"id"`
	RemoteID  domain.Identifier `bun:"remote_id,notnull" json:"remote_id"`
	Name      string            `bun:"name,notnull" json:"name"`
	Endpoint  string            `bun:"endpoint" json:"endpoint"`
	Principal string            `bun:"principal" json:"principal"`
	Secret    string            `bun:"secret" json:"secret"`
	CreatedAt time.Time         `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time         `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Connectable reports whether the target exposes the three configuration
// fields required before any gateway call is attempted.
func (t *Target) Connectable() bool {
	if t == nil {
		return false
	}
	return trimmed(t.Endpoint) != "" && trimmed(t.Principal) != "" && trimmed(t.Secret) != ""
}

// Credentials projects the target onto the gateway credential contract.
func (t *Target) Credentials() interfaces.TargetCredentials {
	if t == nil {
		return interfaces.TargetCredentials{}
	}
	return interfaces.TargetCredentials{
		Endpoint:  trimmed(t.Endpoint),
		Principal: trimmed(t.Principal),
		Secret:    trimmed(t.Secret),
	}
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
