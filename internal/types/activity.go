package types

import (
	"encoding/json"
	"time"
)

// SourceRef identifies a catalog record touched by a change.
type SourceRef struct {
	EntityType string `json:"entity_type"` // "property", "landlord"
	EntityID   string `json:"entity_id"`
	Role       string `json:"role"` // "subject", "context"
}

// ActivityEntry is one line of a record's history. A single change
// produces one entry per referenced record.
type ActivityEntry struct {
	EventID           string          `json:"event_id"`
	EventType         string          `json:"event_type"`
	OccurredAt        time.Time       `json:"occurred_at"`
	IndexedEntityType string          `json:"indexed_entity_type"`
	IndexedEntityID   string          `json:"indexed_entity_id"`
	EntityRole        string          `json:"entity_role"`
	SourceRefs        []SourceRef     `json:"source_refs"`
	Summary           string          `json:"summary"`
	Category          string          `json:"category"` // "catalog", "edit", "appraisal"
	Weight            string          `json:"weight"`   // "info", "minor", "major"
	Polarity          string          `json:"polarity"` // "positive", "negative", "neutral"
	Payload           json.RawMessage `json:"payload,omitempty"`
}
