package content

import (
	"errors"
	"testing"

	"github.com/goliatone/go-publisher/internal/domain"
)

func TestParsePool_MapsTypedItems(t *testing.T) {
	payload := []byte(`[
		{"id": 7, "target_id": "10", "title": "Numeric id", "body": "hello", "status": "Draft"},
		{"id": "tok-1", "target_id": 10, "title": "Token id", "status": "rascunho", "external_ref": 55},
		{"id": "tok-2", "title": "Scheduled elsewhere", "status": "agendado", "scheduled_at": "2025-06-02T08:00:00"}
	]`)

	items, err := ParsePool(payload)
	if err != nil {
		t.Fatalf("parse pool: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}

	if items[0].RemoteID != domain.NewIdentifier(7) {
		t.Fatalf("numeric id mangled: %q", items[0].RemoteID)
	}
	if items[0].Status != string(domain.StatusDraft) {
		t.Fatalf("status not normalized: %q", items[0].Status)
	}
	if items[1].Status != string(domain.StatusDraft) {
		t.Fatalf("legacy spelling not normalized: %q", items[1].Status)
	}
	if items[1].ExternalRef == nil || *items[1].ExternalRef != "55" {
		t.Fatalf("external ref not mapped: %v", items[1].ExternalRef)
	}
	if items[2].Status != string(domain.StatusScheduled) {
		t.Fatalf("agendado should normalize to scheduled: %q", items[2].Status)
	}
	if items[2].ScheduledAt == nil || items[2].ScheduledAt.Hour() != 8 {
		t.Fatalf("scheduled_at not parsed: %v", items[2].ScheduledAt)
	}
}

func TestParsePool_EmptyInputsAreEmptyPools(t *testing.T) {
	for _, payload := range [][]byte{nil, []byte(""), []byte("  "), []byte("null"), []byte("[]")} {
		items, err := ParsePool(payload)
		if err != nil {
			t.Fatalf("payload %q: %v", payload, err)
		}
		if len(items) != 0 {
			t.Fatalf("payload %q should yield empty pool, got %d", payload, len(items))
		}
	}
}

func TestParsePool_RejectsMalformedPayloads(t *testing.T) {
	cases := [][]byte{
		[]byte(`{"not": "an array"}`),
		[]byte(`[{"title": "missing id"}]`),
		[]byte(`[{"id": 1, "title": ""}]`),
		[]byte(`[{"id": true, "title": "boolean id"}]`),
		[]byte(`not json`),
	}
	for _, payload := range cases {
		if _, err := ParsePool(payload); !errors.Is(err, ErrPoolPayloadInvalid) {
			t.Fatalf("payload %s should fail schema validation, got %v", payload, err)
		}
	}
}
