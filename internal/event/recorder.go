// Package event provides catalog event recording for the HTTP handlers.
// Each event is written to the activity store once per referenced record,
// then handed to the in-process bus.
package event

import (
	"context"
	"fmt"

	"github.com/matthewbaird/silic/internal/activity"
	"github.com/matthewbaird/silic/internal/types"
)

// Recorder writes catalog events to the activity store.
type Recorder interface {
	Record(ctx context.Context, evt DomainEvent) error
}

// Publisher sends events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, evt DomainEvent)
}

// ActivityRecorder implements Recorder on an activity.Store. When a
// Publisher is attached the event is published only after the write
// succeeds.
type ActivityRecorder struct {
	store activity.Store
	bus   Publisher
}

func NewActivityRecorder(store activity.Store) *ActivityRecorder {
	return &ActivityRecorder{store: store}
}

// SetPublisher attaches an event bus.
func (r *ActivityRecorder) SetPublisher(p Publisher) {
	r.bus = p
}

func (r *ActivityRecorder) Record(ctx context.Context, evt DomainEvent) error {
	if err := r.store.WriteEntries(ctx, Entries(evt)); err != nil {
		return fmt.Errorf("recording %s: %w", evt.EventType, err)
	}
	if r.bus != nil {
		r.bus.Publish(ctx, evt)
	}
	return nil
}

// Entries fans evt out into one history line per affected record.
func Entries(evt DomainEvent) []types.ActivityEntry {
	entries := make([]types.ActivityEntry, 0, len(evt.AffectedEntities))
	for _, ref := range evt.AffectedEntities {
		entries = append(entries, types.ActivityEntry{
			EventID:           evt.ID,
			EventType:         evt.EventType,
			OccurredAt:        evt.OccurredAt,
			IndexedEntityType: ref.EntityType,
			IndexedEntityID:   ref.EntityID,
			EntityRole:        ref.Role,
			SourceRefs:        evt.AffectedEntities,
			Summary:           evt.Summary,
			Category:          evt.Category,
			Weight:            evt.Weight,
			Polarity:          evt.Polarity,
			Payload:           evt.Payload,
		})
	}
	return entries
}
