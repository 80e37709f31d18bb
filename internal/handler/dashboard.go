package handler

import (
	"net/http"

	"github.com/matthewbaird/silic/internal/catalog"
	"github.com/matthewbaird/silic/internal/dashboard"
	"github.com/matthewbaird/silic/internal/query"
	"github.com/matthewbaird/silic/internal/types"
)

// DashboardHandler serves the aggregate views. Both are recomputed from
// the current catalog on every request.
type DashboardHandler struct {
	store  *catalog.Store
	policy types.LandlordPolicy
}

func NewDashboardHandler(store *catalog.Store, policy types.LandlordPolicy) *DashboardHandler {
	return &DashboardHandler{store: store, policy: policy}
}

// GetDashboard returns per-status counts and documentation progress over
// the properties matching the list filter.
// GET /v1/dashboard?q=&status=&end_from=&end_to=
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	c, err := parseCriteria(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_FILTER", err.Error())
		return
	}
	props := query.Filter(h.store.Originals(), c)
	writeJSON(w, http.StatusOK, dashboard.Compute(props, h.store.Landlords()))
}

// GetAudit reports landlord policy violations and low documentation. The
// policy query parameter overrides the configured one.
// GET /v1/audit?policy=
func (h *DashboardHandler) GetAudit(w http.ResponseWriter, r *http.Request) {
	policy := h.policy
	if p := r.URL.Query().Get("policy"); p != "" {
		policy = types.LandlordPolicy(p)
		if !policy.Valid() {
			writeError(w, http.StatusBadRequest, "INVALID_POLICY", "unknown policy: "+p)
			return
		}
	}
	writeJSON(w, http.StatusOK, dashboard.Audit(h.store.Originals(), h.store.Landlords(), policy))
}
