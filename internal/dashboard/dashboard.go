// Package dashboard derives the summary counters and the audit report from
// the current property and landlord sets. Everything here is recomputed
// from scratch on each call.
package dashboard

import (
	"math"
	"sort"

	"github.com/matthewbaird/silic/internal/types"
)

// Progress is a delivered / applicable document ratio.
type Progress struct {
	Delivered int `json:"delivered"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`
}

func progress(delivered, total int) Progress {
	p := Progress{Delivered: delivered, Total: total}
	if total > 0 {
		p.Percent = int(math.Round(float64(delivered) * 100 / float64(total)))
	}
	return p
}

// Stats are the dashboard counters.
type Stats struct {
	TotalProperties int                          `json:"total_properties"`
	ByStatus        map[types.PropertyStatus]int `json:"by_status"`
	TotalLandlords  int                          `json:"total_landlords"`
	ByLandlordType  map[types.LandlordType]int   `json:"by_landlord_type"`
	Documentation   Progress                     `json:"documentation"`
}

// Compute counts props per status and the landlords linked to them. Every
// status key is present, with zero when absent. Landlords of properties
// outside props are ignored so a filtered view gets matching totals.
func Compute(props []types.Property, landlords []types.Landlord) Stats {
	st := Stats{
		TotalProperties: len(props),
		ByStatus:        make(map[types.PropertyStatus]int, len(types.PropertyStatuses)),
		ByLandlordType:  map[types.LandlordType]int{types.LandlordNatural: 0, types.LandlordJuridical: 0},
	}
	for _, s := range types.PropertyStatuses {
		st.ByStatus[s] = 0
	}
	in := make(map[string]bool, len(props))
	for _, p := range props {
		st.ByStatus[p.Status]++
		in[p.ID] = true
	}
	var delivered, total int
	for _, l := range landlords {
		if !in[l.PropertyID] {
			continue
		}
		st.TotalLandlords++
		st.ByLandlordType[l.Type]++
		d, t := l.Documents.Progress()
		delivered += d
		total += t
	}
	st.Documentation = progress(delivered, total)
	return st
}

// LowDocumentationThreshold is the percent under which a landlord is
// reported by the audit.
const LowDocumentationThreshold = 50

// PropertyRef identifies a property in a report.
type PropertyRef struct {
	ID           string               `json:"id"`
	Code         string               `json:"code"`
	Denomination string               `json:"denomination"`
	Status       types.PropertyStatus `json:"status"`
}

// LandlordRef identifies a landlord in a report.
type LandlordRef struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	PropertyCode string   `json:"property_code"`
	Progress     Progress `json:"progress"`
}

// Report lists the records that need attention.
type Report struct {
	Policy           types.LandlordPolicy `json:"policy"`
	MissingLandlord  []PropertyRef        `json:"missing_landlord"`
	LowDocumentation []LandlordRef        `json:"low_documentation"`
}

// Audit reports properties the policy requires to have a landlord but have
// none, and landlords with less than half of their applicable documents
// delivered. Landlords are sorted by ascending progress.
func Audit(props []types.Property, landlords []types.Landlord, policy types.LandlordPolicy) Report {
	r := Report{Policy: policy, MissingLandlord: []PropertyRef{}, LowDocumentation: []LandlordRef{}}
	has := make(map[string]bool, len(landlords))
	codes := make(map[string]string, len(props))
	for _, p := range props {
		codes[p.ID] = p.Code
	}
	for _, l := range landlords {
		code, ok := codes[l.PropertyID]
		if !ok {
			continue
		}
		has[l.PropertyID] = true
		pr := progress(l.Documents.Progress())
		if pr.Percent < LowDocumentationThreshold {
			r.LowDocumentation = append(r.LowDocumentation, LandlordRef{
				ID: l.ID, Name: l.Name, PropertyCode: code, Progress: pr,
			})
		}
	}
	for _, p := range props {
		if policy.Requires(p.Status) && !has[p.ID] {
			r.MissingLandlord = append(r.MissingLandlord, PropertyRef{
				ID: p.ID, Code: p.Code, Denomination: p.Denomination, Status: p.Status,
			})
		}
	}
	sort.SliceStable(r.LowDocumentation, func(i, j int) bool {
		return r.LowDocumentation[i].Progress.Percent < r.LowDocumentation[j].Progress.Percent
	})
	return r
}
