package content

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewItemRepository(db *bun.DB) repository.Repository[*Item] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Item]{
		NewRecord: func() *Item { return &Item{} },
		GetID: func(i *Item) uuid.UUID {
			return i.ID
		},
		SetID: func(i *Item, id uuid.UUID) {
			i.ID = id
		},
		GetIdentifier: func() string {
			return "remote_id"
		},
		GetIdentifierValue: func(i *Item) string {
			if i == nil {
				return ""
			}
			return i.RemoteID.String()
		},
	})
}

func NewTargetRepository(db *bun.DB) repository.Repository[*Target] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Target]{
		NewRecord: func() *Target { return &Target{} },
		GetID: func(t *Target) uuid.UUID {
			return t.ID
		},
		SetID: func(t *Target, id uuid.UUID) {
			t.ID = id
		},
		GetIdentifier: func() string {
			return "remote_id"
		},
		GetIdentifierValue: func(t *Target) string {
			if t == nil {
				return ""
			}
			return t.RemoteID.String()
		},
	})
}
