package catalog

import (
	"fmt"
	"strconv"

	"github.com/matthewbaird/silic/internal/form"
	"github.com/matthewbaird/silic/internal/types"
)

// ContractEdit returns the saved contract draft of a property.
func (s *Store) ContractEdit(id string) (types.ContractEdit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.contractEdits[id]
	return e, ok
}

// PropertyEdit returns the saved address draft of a property.
func (s *Store) PropertyEdit(id string) (types.PropertyEdit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.propertyEdits[id]
	return e, ok
}

// LandlordEdit returns the saved landlord draft of a property.
func (s *Store) LandlordEdit(id string) (types.LandlordEdit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.landlordEdits[id]
	return e, ok
}

// SaveEdit writes a tab snapshot into that tab's overlay for property id.
// The caller validates values first; SaveEdit only checks the property
// exists and the tab is known. Overlays never change the originals.
func (s *Store) SaveEdit(id, tab string, values map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.index[id]; !ok {
		return fmt.Errorf("saving %s edit for %s: %w", tab, id, ErrNotFound)
	}
	switch tab {
	case form.TabContract:
		var e types.ContractEdit
		if err := form.Decode(values, &e); err != nil {
			return err
		}
		s.contractEdits[id] = e
	case form.TabProperty:
		var e types.PropertyEdit
		if err := form.Decode(values, &e); err != nil {
			return err
		}
		s.propertyEdits[id] = e
	case form.TabLandlord:
		var e types.LandlordEdit
		if err := form.Decode(values, &e); err != nil {
			return err
		}
		s.landlordEdits[id] = e
	default:
		return fmt.Errorf("unknown tab %q", tab)
	}
	return nil
}

// EditValues returns the field map shown in a tab: the saved overlay when
// one exists, otherwise values derived from the property and its first
// landlord.
func (s *Store) EditValues(id, tab string) (map[string]string, error) {
	p, ok := s.Property(id)
	if !ok {
		return nil, fmt.Errorf("reading %s edit for %s: %w", tab, id, ErrNotFound)
	}
	switch tab {
	case form.TabContract:
		if e, ok := s.ContractEdit(id); ok {
			return form.Values(e)
		}
		e := types.ContractEdit{
			Number:       p.Code,
			Denomination: p.Denomination,
			Start:        p.Validity.Start.Format(form.DateLayout),
		}
		if p.Validity.End != nil {
			e.ValidUntil = p.Validity.End.Format(form.DateLayout)
		}
		return form.Values(e)
	case form.TabProperty:
		if e, ok := s.PropertyEdit(id); ok {
			return form.Values(e)
		}
		return form.Values(types.PropertyEdit{
			PostalCode:   p.PostalCode,
			Street:       p.Address,
			Neighborhood: p.Neighborhood,
			City:         p.City,
			State:        p.State,
		})
	case form.TabLandlord:
		if e, ok := s.LandlordEdit(id); ok {
			return form.Values(e)
		}
		e := types.LandlordEdit{}
		if ls, _ := s.LandlordsFor(id); len(ls) > 0 {
			l := ls[0]
			e.Name = l.Name
			e.FiscalIDType = fiscalIDType(l.Type)
			e.RelationStart = l.LinkedAt.Format(form.DateLayout)
			e.PostalCode = l.Address.PostalCode
			e.Street = l.Address.Street
			e.Neighborhood = l.Address.Neighborhood
			e.City = l.Address.City
			e.State = l.Address.State
			e.Email = l.Email
			e.Mobile = l.Phone
			if _, err := strconv.Atoi(l.Address.Number); err == nil {
				e.Number = l.Address.Number
			}
		}
		return form.Values(e)
	}
	return nil, fmt.Errorf("unknown tab %q", tab)
}

func fiscalIDType(t types.LandlordType) string {
	if t == types.LandlordJuridical {
		return "CNPJ"
	}
	return "CPF"
}
