package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/matthewbaird/silic/internal/form"
	"github.com/matthewbaird/silic/internal/types"
)

// AppraisalKey is the record key holding a property's appraisal.
func AppraisalKey(propertyID string) string {
	return "avaliacao_imovel_" + propertyID
}

// Appraisals reads and writes appraisal records on a Store.
type Appraisals struct {
	store Store
	now   func() time.Time
}

// NewAppraisals wraps store.
func NewAppraisals(store Store) *Appraisals {
	return &Appraisals{store: store, now: time.Now}
}

// Get returns the appraisal saved for propertyID, or ErrNotFound.
func (a *Appraisals) Get(ctx context.Context, propertyID string) (types.Appraisal, error) {
	raw, err := a.store.Get(ctx, AppraisalKey(propertyID))
	if err != nil {
		return types.Appraisal{}, err
	}
	var ap types.Appraisal
	if err := json.Unmarshal(raw, &ap); err != nil {
		return types.Appraisal{}, fmt.Errorf("decoding appraisal of %s: %w", propertyID, err)
	}
	return ap, nil
}

// Save validates ap, stamps its update time and stores it. Invalid input
// returns a *form.ValidationError and writes nothing.
func (a *Appraisals) Save(ctx context.Context, propertyID string, ap types.Appraisal) (types.Appraisal, error) {
	if verr := form.ValidateAppraisal(ap); verr != nil {
		return types.Appraisal{}, verr
	}
	ap.UpdatedAt = a.now().UTC()
	raw, err := json.Marshal(ap)
	if err != nil {
		return types.Appraisal{}, fmt.Errorf("encoding appraisal of %s: %w", propertyID, err)
	}
	if err := a.store.Set(ctx, AppraisalKey(propertyID), raw); err != nil {
		return types.Appraisal{}, err
	}
	return ap, nil
}

// Delete removes the appraisal of propertyID.
func (a *Appraisals) Delete(ctx context.Context, propertyID string) error {
	return a.store.Delete(ctx, AppraisalKey(propertyID))
}
