package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthewbaird/silic/internal/activity"
	"github.com/matthewbaird/silic/internal/types"
)

type capture struct{ events []DomainEvent }

func (c *capture) Publish(_ context.Context, evt DomainEvent) { c.events = append(c.events, evt) }

type failingStore struct{ activity.Store }

func (failingStore) WriteEntries(context.Context, []types.ActivityEntry) error {
	return errors.New("disk full")
}

func TestRecorder_FansOutPerEntity(t *testing.T) {
	ctx := context.Background()
	store := activity.NewMemoryStore()
	bus := &capture{}
	rec := NewActivityRecorder(store)
	rec.SetPublisher(bus)

	evt := NewLandlordLinked(LandlordLinkedPayload{
		LandlordID: "loc-1", PropertyID: "im-1", PropertyCode: "20000001",
		Name: "Imobiliária Aurora", Type: types.LandlordJuridical,
	})
	require.NoError(t, rec.Record(ctx, evt))

	landlord, _, _, err := store.QueryByEntity(ctx, "landlord", "loc-1", activity.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, landlord, 1)
	assert.Equal(t, "subject", landlord[0].EntityRole)
	assert.Contains(t, landlord[0].Summary, "20000001")

	property, _, _, err := store.QueryByEntity(ctx, "property", "im-1", activity.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, property, 1)
	assert.Equal(t, "context", property[0].EntityRole)
	assert.Len(t, property[0].SourceRefs, 2)

	require.Len(t, bus.events, 1)
	assert.Equal(t, TypeLandlordLinked, bus.events[0].EventType)
}

func TestRecorder_DoesNotPublishOnWriteFailure(t *testing.T) {
	bus := &capture{}
	rec := NewActivityRecorder(failingStore{})
	rec.SetPublisher(bus)

	err := rec.Record(context.Background(), NewPropertyAdded(PropertyPayload{PropertyID: "im-1", Code: "20000001"}))
	assert.ErrorContains(t, err, "disk full")
	assert.Empty(t, bus.events)
}

func TestEvents_Classification(t *testing.T) {
	rejected := NewEditRejected(EditPayload{PropertyID: "im-1", Tab: "contrato", Errors: map[string]string{"numero": "obrigatório"}})
	assert.Equal(t, "edit", rejected.Category)
	assert.Equal(t, "negative", rejected.Polarity)
	assert.Contains(t, rejected.Summary, "1 campo")

	clean := NewDatasetLoaded(DatasetLoadedPayload{Source: "mock", Properties: 100, Landlords: 120})
	assert.Equal(t, "info", clean.Weight)
	fallback := NewDatasetLoaded(DatasetLoadedPayload{Source: "mock", Notice: "fallback", Properties: 100})
	assert.Equal(t, "major", fallback.Weight)
	assert.Equal(t, "dataset", fallback.AffectedEntities[0].EntityType)

	assert.NotEqual(t, clean.ID, fallback.ID)
	assert.JSONEq(t, `{"source":"mock","properties":100,"landlords":120}`, string(clean.Payload))
}
