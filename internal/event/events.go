package event

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/matthewbaird/silic/internal/types"
)

// DomainEvent carries the canonical shape of every catalog event.
type DomainEvent struct {
	ID               string
	EventType        string
	OccurredAt       time.Time
	AffectedEntities []types.SourceRef
	Summary          string
	Category         string // "catalog", "edit", "appraisal"
	Weight           string // "major", "minor", "info"
	Polarity         string // "positive", "negative", "neutral"
	Payload          json.RawMessage
}

// Event types.
const (
	TypePropertyAdded    = "property_added"
	TypePropertyUpdated  = "property_updated"
	TypeLandlordLinked   = "landlord_linked"
	TypeEditSaved        = "edit_saved"
	TypeEditRejected     = "edit_rejected"
	TypeAppraisalSaved   = "appraisal_saved"
	TypeAppraisalDeleted = "appraisal_deleted"
	TypeDatasetLoaded    = "dataset_loaded"
)

func newID() string { return uuid.New().String() }

func mustJSON(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

func subject(entityType, id string) types.SourceRef {
	return types.SourceRef{EntityType: entityType, EntityID: id, Role: "subject"}
}

func related(entityType, id string) types.SourceRef {
	return types.SourceRef{EntityType: entityType, EntityID: id, Role: "context"}
}

// ── Catalog events ───────────────────────────────────────────────────────────

// PropertyPayload carries event-specific data for property changes.
type PropertyPayload struct {
	PropertyID   string               `json:"property_id"`
	Code         string               `json:"code"`
	Denomination string               `json:"denomination"`
	Status       types.PropertyStatus `json:"status"`
}

func NewPropertyAdded(p PropertyPayload) DomainEvent {
	return DomainEvent{
		ID:               newID(),
		EventType:        TypePropertyAdded,
		OccurredAt:       time.Now(),
		AffectedEntities: []types.SourceRef{subject("property", p.PropertyID)},
		Summary:          fmt.Sprintf("Imóvel %s cadastrado (%s)", p.Code, p.Denomination),
		Category:         "catalog",
		Weight:           "major",
		Polarity:         "positive",
		Payload:          mustJSON(p),
	}
}

func NewPropertyUpdated(p PropertyPayload) DomainEvent {
	return DomainEvent{
		ID:               newID(),
		EventType:        TypePropertyUpdated,
		OccurredAt:       time.Now(),
		AffectedEntities: []types.SourceRef{subject("property", p.PropertyID)},
		Summary:          fmt.Sprintf("Imóvel %s atualizado", p.Code),
		Category:         "catalog",
		Weight:           "minor",
		Polarity:         "neutral",
		Payload:          mustJSON(p),
	}
}

// LandlordLinkedPayload carries event-specific data for LandlordLinked.
type LandlordLinkedPayload struct {
	LandlordID   string             `json:"landlord_id"`
	PropertyID   string             `json:"property_id"`
	PropertyCode string             `json:"property_code"`
	Name         string             `json:"name"`
	Type         types.LandlordType `json:"type"`
}

func NewLandlordLinked(p LandlordLinkedPayload) DomainEvent {
	return DomainEvent{
		ID:         newID(),
		EventType:  TypeLandlordLinked,
		OccurredAt: time.Now(),
		AffectedEntities: []types.SourceRef{
			subject("landlord", p.LandlordID),
			related("property", p.PropertyID),
		},
		Summary:  fmt.Sprintf("Locador %s vinculado ao imóvel %s", p.Name, p.PropertyCode),
		Category: "catalog",
		Weight:   "major",
		Polarity: "positive",
		Payload:  mustJSON(p),
	}
}

// ── Modal edits ──────────────────────────────────────────────────────────────

// EditPayload carries a tab save of the detail modal. Errors is set only
// when the save was rejected.
type EditPayload struct {
	PropertyID string            `json:"property_id"`
	Tab        string            `json:"tab"`
	Values     map[string]string `json:"values,omitempty"`
	Errors     map[string]string `json:"errors,omitempty"`
}

func NewEditSaved(p EditPayload) DomainEvent {
	return DomainEvent{
		ID:               newID(),
		EventType:        TypeEditSaved,
		OccurredAt:       time.Now(),
		AffectedEntities: []types.SourceRef{subject("property", p.PropertyID)},
		Summary:          fmt.Sprintf("Aba %s salva", p.Tab),
		Category:         "edit",
		Weight:           "minor",
		Polarity:         "neutral",
		Payload:          mustJSON(p),
	}
}

func NewEditRejected(p EditPayload) DomainEvent {
	return DomainEvent{
		ID:               newID(),
		EventType:        TypeEditRejected,
		OccurredAt:       time.Now(),
		AffectedEntities: []types.SourceRef{subject("property", p.PropertyID)},
		Summary:          fmt.Sprintf("Aba %s rejeitada: %d campo(s) inválido(s)", p.Tab, len(p.Errors)),
		Category:         "edit",
		Weight:           "minor",
		Polarity:         "negative",
		Payload:          mustJSON(p),
	}
}

// ── Appraisals ───────────────────────────────────────────────────────────────

// AppraisalPayload carries event-specific data for appraisal changes.
type AppraisalPayload struct {
	PropertyID string  `json:"property_id"`
	DocumentNo string  `json:"document_no,omitempty"`
	AvgRent    float64 `json:"avg_rent,omitempty"`
}

func NewAppraisalSaved(p AppraisalPayload) DomainEvent {
	return DomainEvent{
		ID:               newID(),
		EventType:        TypeAppraisalSaved,
		OccurredAt:       time.Now(),
		AffectedEntities: []types.SourceRef{subject("property", p.PropertyID)},
		Summary:          fmt.Sprintf("Laudo de avaliação %s registrado", p.DocumentNo),
		Category:         "appraisal",
		Weight:           "minor",
		Polarity:         "positive",
		Payload:          mustJSON(p),
	}
}

func NewAppraisalDeleted(p AppraisalPayload) DomainEvent {
	return DomainEvent{
		ID:               newID(),
		EventType:        TypeAppraisalDeleted,
		OccurredAt:       time.Now(),
		AffectedEntities: []types.SourceRef{subject("property", p.PropertyID)},
		Summary:          "Laudo de avaliação removido",
		Category:         "appraisal",
		Weight:           "minor",
		Polarity:         "negative",
		Payload:          mustJSON(p),
	}
}

// ── Dataset ──────────────────────────────────────────────────────────────────

// DatasetLoadedPayload describes a catalog replacement.
type DatasetLoadedPayload struct {
	Source     string `json:"source"`
	Notice     string `json:"notice,omitempty"`
	Properties int    `json:"properties"`
	Landlords  int    `json:"landlords"`
}

// NewDatasetLoaded is indexed under the "dataset" entity keyed by source.
// A fallback load weighs more than a clean one.
func NewDatasetLoaded(p DatasetLoadedPayload) DomainEvent {
	weight, polarity := "info", "neutral"
	if p.Notice != "" {
		weight, polarity = "major", "negative"
	}
	return DomainEvent{
		ID:               newID(),
		EventType:        TypeDatasetLoaded,
		OccurredAt:       time.Now(),
		AffectedEntities: []types.SourceRef{subject("dataset", p.Source)},
		Summary:          fmt.Sprintf("Base carregada de %s: %d imóveis, %d locadores", p.Source, p.Properties, p.Landlords),
		Category:         "catalog",
		Weight:           weight,
		Polarity:         polarity,
		Payload:          mustJSON(p),
	}
}
