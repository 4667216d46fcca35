package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-publisher/internal/domain"
)

// poolSchema is the shape the system of record hands over when the cache is
// refreshed. Identifiers may arrive as integers or opaque string tokens, so
// both encodings are accepted; everything else is rejected here, at the single
// ingestion boundary, so downstream code can rely on well-formed items.
const poolSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "title"],
    "properties": {
      "id": {"type": ["integer", "string"]},
      "target_id": {"type": ["integer", "string", "null"]},
      "title": {"type": "string", "minLength": 1},
      "body": {"type": ["string", "null"]},
      "media_url": {"type": ["string", "null"]},
      "status": {"type": ["string", "null"]},
      "scheduled_at": {"type": ["string", "null"]},
      "published_at": {"type": ["string", "null"]},
      "external_ref": {"type": ["integer", "string", "null"]}
    },
    "additionalProperties": true
  }
}`

var (
	poolSchemaOnce     sync.Once
	poolSchemaCompiled *jsonschema.Schema
	poolSchemaErr      error
)

func compiledPoolSchema() (*jsonschema.Schema, error) {
	poolSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource("content_pool.json", bytes.NewReader([]byte(poolSchema))); err != nil {
			poolSchemaErr = err
			return
		}
		poolSchemaCompiled, poolSchemaErr = compiler.Compile("content_pool.json")
	})
	return poolSchemaCompiled, poolSchemaErr
}

// ParsePool converts a raw pool payload into typed items. Status spellings
// are normalized here so selection never repeats case-insensitive string
// comparisons. Empty and null payloads produce an empty pool rather than an
// error: callers may race ahead of the first cache hydration.
func ParsePool(payload []byte) ([]*Item, error) {
	trimmed := strings.TrimSpace(string(payload))
	if trimmed == "" || trimmed == "null" {
		return []*Item{}, nil
	}

	var value any
	if err := json.Unmarshal([]byte(trimmed), &value); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPoolPayloadInvalid, err)
	}

	compiled, err := compiledPoolSchema()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPoolPayloadInvalid, err)
	}
	if err := compiled.Validate(value); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPoolPayloadInvalid, err)
	}

	raw, ok := value.([]any)
	if !ok {
		return []*Item{}, nil
	}

	items := make([]*Item, 0, len(raw))
	for _, entry := range raw {
		fields, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		items = append(items, mapRawItem(fields))
	}
	return items, nil
}

func mapRawItem(fields map[string]any) *Item {
	item := &Item{
		ID:       uuid.New(),
		RemoteID: domain.NewIdentifier(fields["id"]),
		TargetID: domain.NewIdentifier(fields["target_id"]),
		Title:    stringField(fields, "title"),
		Body:     stringField(fields, "body"),
		MediaURL: stringField(fields, "media_url"),
		Status:   string(domain.NormalizeStatus(stringField(fields, "status"))),
	}
	if at := timeField(fields, "scheduled_at"); at != nil {
		item.ScheduledAt = at
	}
	if at := timeField(fields, "published_at"); at != nil {
		item.PublishedAt = at
	}
	if ref := domain.NewIdentifier(fields["external_ref"]); !ref.IsZero() {
		value := ref.String()
		item.ExternalRef = &value
	}
	return item
}

func stringField(fields map[string]any, key string) string {
	if value, ok := fields[key].(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}

// timeField accepts both RFC3339 and the gateway's zone-less local layout.
func timeField(fields map[string]any, key string) *time.Time {
	value, ok := fields[key].(string)
	if !ok {
		return nil
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return &parsed
	}
	if parsed, err := time.ParseInLocation("2006-01-02T15:04:05", value, time.Local); err == nil {
		return &parsed
	}
	return nil
}
