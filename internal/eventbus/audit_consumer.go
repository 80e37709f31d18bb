package eventbus

import (
	"context"
	"log"
	"slices"
	"sync"

	"github.com/matthewbaird/silic/internal/dashboard"
	"github.com/matthewbaird/silic/internal/event"
	"github.com/matthewbaird/silic/internal/types"
)

// Snapshot is the read side of the catalog the audit needs.
type Snapshot interface {
	Originals() []types.Property
	Landlords() []types.Landlord
}

// AuditConsumer re-runs the landlord audit after every change that can move
// it and logs properties left without a required landlord.
type AuditConsumer struct {
	catalog Snapshot
	policy  types.LandlordPolicy

	mu   sync.Mutex
	last dashboard.Report
}

// AuditTriggers are the event types that can change the audit outcome.
// Subscribe the consumer with them.
var AuditTriggers = []string{
	event.TypePropertyAdded,
	event.TypePropertyUpdated,
	event.TypeLandlordLinked,
	event.TypeDatasetLoaded,
}

func NewAuditConsumer(catalog Snapshot, policy types.LandlordPolicy) *AuditConsumer {
	return &AuditConsumer{catalog: catalog, policy: policy}
}

func (c *AuditConsumer) HandleEvent(_ context.Context, evt event.DomainEvent) error {
	if !slices.Contains(AuditTriggers, evt.EventType) {
		return nil
	}
	r := dashboard.Audit(c.catalog.Originals(), c.catalog.Landlords(), c.policy)
	c.mu.Lock()
	c.last = r
	c.mu.Unlock()

	if n := len(r.MissingLandlord); n > 0 {
		log.Printf("audit: after %s, %d properties lack a landlord under policy %s (first: %s)",
			evt.EventType, n, r.Policy, r.MissingLandlord[0].Code)
	}
	if n := len(r.LowDocumentation); n > 0 {
		log.Printf("audit: %d landlords below %d%% documentation", n, dashboard.LowDocumentationThreshold)
	}
	return nil
}

// Last returns the most recent report.
func (c *AuditConsumer) Last() dashboard.Report {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}
