package sapdata

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/matthewbaird/silic/internal/types"
	"github.com/matthewbaird/silic/internal/utils"
)

// SourcePrefix prefixes the dataset source of loaded exports.
const SourcePrefix = "sap"

var dateLayouts = []string{
	"02/01/2006",
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999",
}

// parseDate accepts the DD/MM/YYYY dates of the reports and the ISO dates
// written by the import script.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// mapStatus reads the free-form building status. Anything unrecognised is
// treated as active.
func mapStatus(s string) types.PropertyStatus {
	s = strings.ToLower(s)
	switch {
	case strings.Contains(s, "prospec"):
		return types.StatusProspecting
	case strings.Contains(s, "desmobiliza"):
		return types.StatusDemobilizing
	case strings.Contains(s, "mobiliza"):
		return types.StatusMobilizing
	case strings.Contains(s, "desativ"), strings.Contains(s, "inativ"):
		return types.StatusDeactivated
	}
	return types.StatusActive
}

// Map converts an export into a dataset. Each property's landlord
// reference becomes a landlord linked to that property; a partner
// referenced by several properties is copied once per property. Partners
// no property references are dropped, as are contracts without a number.
// Two properties sharing an id or a contract number make the whole export
// unusable, and so does an export left with no properties.
func Map(e Export) (types.Dataset, error) {
	generated, ok := parseDate(e.Metadata.GeneratedAt)
	if !ok {
		generated = time.Now().UTC()
	}

	partners := make(map[string]RawLandlord, len(e.Landlords))
	for _, l := range e.Landlords {
		partners[l.ID] = l
	}

	ds := types.Dataset{
		Properties:  make([]types.Property, 0, len(e.Properties)),
		Landlords:   []types.Landlord{},
		Source:      source(e.Metadata),
		GeneratedAt: generated,
	}
	linked := make(map[string]bool)
	ids := make(map[string]bool, len(e.Properties))
	codes := make(map[string]bool, len(e.Properties))
	var skipped int
	for _, raw := range e.Properties {
		if raw.Contract.Number <= 0 {
			skipped++
			continue
		}
		p := mapProperty(raw, generated)
		if ids[p.ID] {
			return types.Dataset{}, fmt.Errorf("property %s: %w", p.ID, errDuplicateID)
		}
		if codes[p.Code] {
			return types.Dataset{}, fmt.Errorf("contract %s: %w", p.Code, errDuplicateCode)
		}
		ids[p.ID], codes[p.Code] = true, true
		ds.Properties = append(ds.Properties, p)

		if raw.LandlordID == "" {
			continue
		}
		partner, ok := partners[raw.LandlordID]
		if !ok {
			log.Printf("sapdata: property %s references unknown landlord %s", p.Code, raw.LandlordID)
			continue
		}
		l := mapLandlord(partner, p.ID, generated)
		if linked[partner.ID] {
			l.ID = partner.ID + ":" + p.ID
		}
		linked[partner.ID] = true
		ds.Landlords = append(ds.Landlords, l)
	}

	if skipped > 0 {
		log.Printf("sapdata: skipped %d properties without a contract number", skipped)
	}
	if len(ds.Properties) == 0 {
		return types.Dataset{}, errNoProperties
	}
	if unlinked := len(partners) - len(linked); unlinked > 0 {
		log.Printf("sapdata: dropped %d landlords not referenced by any property", unlinked)
	}
	return ds, nil
}

func source(m Metadata) string {
	if m.Source == "" {
		return SourcePrefix
	}
	return SourcePrefix + ":" + m.Source
}

func mapProperty(raw RawProperty, generated time.Time) types.Property {
	c, b := raw.Contract, raw.Building
	p := types.Property{
		ID:           raw.ID,
		Code:         strconv.FormatInt(c.Number, 10),
		Denomination: c.Denomination,
		Address:      b.Street,
		Neighborhood: b.Neighborhood,
		City:         b.City,
		State:        strings.ToUpper(strings.TrimSpace(b.State)),
		PostalCode:   utils.FormatCEP(b.PostalCode),
		Status:       mapStatus(b.Status),
		IPTU:         b.IPTU,
		ITR:          b.ITR,
		Documents:    types.Checklist{},
		CreatedAt:    generated,
	}
	if p.ID == "" {
		p.ID = utils.NewID()
	}
	if p.Denomination == "" {
		p.Denomination = b.PropertyName
	}
	if b.Number > 0 {
		p.Address += ", " + strconv.FormatInt(b.Number, 10)
	}

	if start, ok := parseDate(c.Start); ok {
		p.Validity.Start = start
	} else if start, ok := parseDate(b.ValidFrom); ok {
		p.Validity.Start = start
	}
	end := c.ValidUntil
	if c.RescindedOn != nil && *c.RescindedOn != "" {
		end = *c.RescindedOn
	}
	if t, ok := parseDate(end); ok {
		p.Validity.End = &t
	}
	return p
}

func mapLandlord(raw RawLandlord, propertyID string, generated time.Time) types.Landlord {
	l := types.Landlord{
		ID:         raw.ID,
		Name:       raw.Name,
		Type:       types.LandlordNatural,
		Document:   utils.FormatDocument(raw.FiscalID),
		Email:      raw.Email,
		Phone:      utils.FormatPhone(raw.Phone),
		PropertyID: propertyID,
		Documents:  types.Checklist{},
		LinkedAt:   generated,
		Address: types.Address{
			Street:       raw.Address.Street,
			Neighborhood: raw.Address.Neighborhood,
			City:         raw.Address.City,
			State:        strings.ToUpper(strings.TrimSpace(raw.Address.State)),
			PostalCode:   utils.FormatCEP(raw.Address.PostalCode),
		},
	}
	if strings.EqualFold(raw.Kind, "juridica") || strings.EqualFold(raw.FiscalIDType, "CNPJ") {
		l.Type = types.LandlordJuridical
	}
	if l.Phone == "" {
		l.Phone = utils.FormatPhone(raw.Mobile)
	}
	if raw.Address.Number > 0 {
		l.Address.Number = strconv.FormatInt(raw.Address.Number, 10)
	}
	if t, ok := parseDate(raw.RelationStart); ok {
		l.LinkedAt = t
	}
	if raw.Role != "" {
		l.Notes = raw.Role
	}
	return l
}

// FromDataset writes ds in export shape. The shape carries one landlord per
// property, so only the first landlord of each property is kept; the
// number of landlords left out is returned.
func FromDataset(ds types.Dataset) (Export, int) {
	first := make(map[string]types.Landlord)
	var dropped int
	for _, l := range ds.Landlords {
		if _, ok := first[l.PropertyID]; ok {
			dropped++
			continue
		}
		first[l.PropertyID] = l
	}

	e := Export{
		Properties: make([]RawProperty, 0, len(ds.Properties)),
		Landlords:  make([]RawLandlord, 0, len(first)),
		Metadata: Metadata{
			GeneratedAt: ds.GeneratedAt.UTC().Format(time.RFC3339),
			Source:      ds.Source,
			Version:     "1.0",
			Structure:   "REISCNBP + REISBU",
		},
	}
	for _, p := range ds.Properties {
		raw := RawProperty{
			ID: p.ID,
			Contract: RawContract{
				Denomination: p.Denomination,
				Start:        p.Validity.Start.Format("02/01/2006"),
			},
			Building: RawBuilding{
				Denomination: p.Denomination,
				Status:       string(p.Status),
				PostalCode:   p.PostalCode,
				City:         p.City,
				Street:       p.Address,
				Neighborhood: p.Neighborhood,
				State:        p.State,
				PropertyName: p.Denomination,
				IPTU:         p.IPTU,
				ITR:          p.ITR,
			},
		}
		raw.Contract.Number, _ = strconv.ParseInt(p.Code, 10, 64)
		if p.Validity.End != nil {
			raw.Contract.ValidUntil = p.Validity.End.Format("02/01/2006")
		}
		if l, ok := first[p.ID]; ok {
			raw.LandlordID = l.ID
			e.Landlords = append(e.Landlords, toRawLandlord(l))
		}
		e.Properties = append(e.Properties, raw)
	}
	e.Metadata.TotalProperties = len(e.Properties)
	e.Metadata.TotalLandlords = len(e.Landlords)
	return e, dropped
}

func toRawLandlord(l types.Landlord) RawLandlord {
	raw := RawLandlord{
		ID:            l.ID,
		FiscalIDType:  "CPF",
		FiscalID:      l.Document,
		Name:          l.Name,
		AddressName:   l.Name,
		Role:          l.Notes,
		Kind:          "fisica",
		Email:         l.Email,
		Phone:         l.Phone,
		RelationStart: l.LinkedAt.Format("02/01/2006"),
		Status:        "ativo",
		Address: RawAddress{
			Street:       l.Address.Street,
			Neighborhood: l.Address.Neighborhood,
			City:         l.Address.City,
			State:        l.Address.State,
			PostalCode:   l.Address.PostalCode,
		},
	}
	if l.Type == types.LandlordJuridical {
		raw.FiscalIDType, raw.Kind = "CNPJ", "juridica"
	}
	raw.Address.Number, _ = strconv.ParseInt(l.Address.Number, 10, 64)
	return raw
}
