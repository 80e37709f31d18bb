// Package catalog holds the in-memory entity store: properties, their
// landlords, the snapshot the list views filter against and the three edit
// overlays of the detail modal.
package catalog

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/matthewbaird/silic/internal/form"
	"github.com/matthewbaird/silic/internal/types"
	"github.com/matthewbaird/silic/internal/utils"
)

var (
	// ErrNotFound is returned when a property or landlord id is unknown.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateCode is returned when a property code is already taken.
	ErrDuplicateCode = errors.New("property code already exists")
	// ErrUnknownProperty is returned when a landlord points at a property
	// that does not exist.
	ErrUnknownProperty = errors.New("unknown property")
)

// Store is the catalog's single source of truth. It is safe for
// concurrent use; every read returns a copy.
type Store struct {
	mu         sync.RWMutex
	properties []types.Property
	index      map[string]int // property id -> position
	landlords  []types.Landlord

	// originals is the snapshot list views filter against. It only changes
	// when a property is added, updated or the dataset is replaced.
	originals []types.Property

	contractEdits map[string]types.ContractEdit
	propertyEdits map[string]types.PropertyEdit
	landlordEdits map[string]types.LandlordEdit

	source string
	notice string
	now    func() time.Time
}

// New returns an empty store.
func New() *Store {
	s := &Store{now: time.Now}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.properties = nil
	s.landlords = nil
	s.originals = nil
	s.index = make(map[string]int)
	s.contractEdits = make(map[string]types.ContractEdit)
	s.propertyEdits = make(map[string]types.PropertyEdit)
	s.landlordEdits = make(map[string]types.LandlordEdit)
}

// Load replaces the whole catalog with ds. Edit overlays are dropped and
// landlords pointing at unknown properties are discarded. Duplicate ids or
// codes reject the dataset and leave the store empty.
func (s *Store) Load(ds types.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
	codes := make(map[string]bool, len(ds.Properties))
	for _, p := range ds.Properties {
		if _, dup := s.index[p.ID]; dup {
			s.reset()
			return fmt.Errorf("loading property %s: duplicate id", p.ID)
		}
		if codes[p.Code] {
			s.reset()
			return fmt.Errorf("loading property %s: code %s: %w", p.ID, p.Code, ErrDuplicateCode)
		}
		codes[p.Code] = true
		s.index[p.ID] = len(s.properties)
		s.properties = append(s.properties, p)
	}
	for _, l := range ds.Landlords {
		if _, ok := s.index[l.PropertyID]; !ok {
			continue
		}
		s.landlords = append(s.landlords, l)
	}
	s.source, s.notice = ds.Source, ds.Notice
	s.snapshot()
	return nil
}

// snapshot refreshes originals. Caller holds the write lock.
func (s *Store) snapshot() {
	s.originals = append([]types.Property(nil), s.properties...)
}

// Source returns where the current dataset came from and the fallback
// notice, if any.
func (s *Store) Source() (source, notice string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source, s.notice
}

// Originals returns a copy of the snapshot list views filter against.
func (s *Store) Originals() []types.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.Property(nil), s.originals...)
}

// Property looks a property up by id.
func (s *Store) Property(id string) (types.Property, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return types.Property{}, false
	}
	return s.properties[i], true
}

// PropertyByCode looks a property up by its code.
func (s *Store) PropertyByCode(code string) (types.Property, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.properties {
		if p.Code == code {
			return p, true
		}
	}
	return types.Property{}, false
}

// NewProperty is the input of a manual add or an in-place update.
// Dates are DD/MM/YYYY.
type NewProperty struct {
	Code          string `json:"code"`
	Denomination  string `json:"denomination"`
	City          string `json:"city"`
	State         string `json:"state"`
	Address       string `json:"address"`
	Neighborhood  string `json:"neighborhood"`
	PostalCode    string `json:"postal_code"`
	Status        string `json:"status"`
	ValidityStart string `json:"validity_start"`
	ValidityEnd   string `json:"validity_end"`
	IPTU          string `json:"iptu"`
	ITR           string `json:"itr"`
}

// normalize trims every field and validates the result.
func (in NewProperty) normalize() (NewProperty, error) {
	values, err := form.Values(in)
	if err != nil {
		return NewProperty{}, err
	}
	values = form.Trim(values)
	if verr := form.NewPropertyRules.Validate(values); verr != nil {
		return NewProperty{}, verr
	}
	var out NewProperty
	if err := form.Decode(values, &out); err != nil {
		return NewProperty{}, err
	}
	return out, nil
}

func (in NewProperty) apply(p *types.Property, now time.Time) {
	p.Code = in.Code
	p.Denomination = in.Denomination
	p.City = in.City
	p.State = in.State
	p.Address = in.Address
	p.Neighborhood = in.Neighborhood
	p.PostalCode = in.PostalCode
	p.Status = types.PropertyStatus(in.Status)
	p.IPTU = in.IPTU
	p.ITR = in.ITR
	p.Validity = types.DateRange{Start: now.Truncate(24 * time.Hour)}
	if t, err := form.ParseDate(in.ValidityStart); err == nil {
		p.Validity.Start = t
	}
	if t, err := form.ParseDate(in.ValidityEnd); err == nil {
		p.Validity.End = &t
	}
}

// AddProperty trims and validates in, then appends a new property. The code must match
// 2000NNNN and be unique. A *form.ValidationError reports invalid fields.
func (s *Store) AddProperty(in NewProperty) (types.Property, error) {
	in, err := in.normalize()
	if err != nil {
		return types.Property{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.codeTaken(in.Code, "") {
		return types.Property{}, fmt.Errorf("adding property %s: %w", in.Code, ErrDuplicateCode)
	}
	now := s.now().UTC()
	p := types.Property{ID: utils.NewID(), CreatedAt: now, Documents: types.Checklist{}}
	in.apply(&p, now)
	s.index[p.ID] = len(s.properties)
	s.properties = append(s.properties, p)
	s.snapshot()
	return p, nil
}

// UpdateProperty replaces the editable fields of an existing property.
// The code may change as long as it stays unique.
func (s *Store) UpdateProperty(id string, in NewProperty) (types.Property, error) {
	in, err := in.normalize()
	if err != nil {
		return types.Property{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		return types.Property{}, fmt.Errorf("updating property %s: %w", id, ErrNotFound)
	}
	if s.codeTaken(in.Code, id) {
		return types.Property{}, fmt.Errorf("updating property %s: %w", id, ErrDuplicateCode)
	}
	p := s.properties[i]
	now := s.now().UTC()
	in.apply(&p, now)
	p.UpdatedAt = &now
	s.properties[i] = p
	s.snapshot()
	return p, nil
}

// codeTaken reports whether code belongs to a property other than except.
// Caller holds the lock.
func (s *Store) codeTaken(code, except string) bool {
	for _, p := range s.properties {
		if p.Code == code && p.ID != except {
			return true
		}
	}
	return false
}

// Landlords returns a copy of every landlord.
func (s *Store) Landlords() []types.Landlord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.Landlord(nil), s.landlords...)
}

// Landlord looks a landlord up by id.
func (s *Store) Landlord(id string) (types.Landlord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.landlords {
		if l.ID == id {
			return l, true
		}
	}
	return types.Landlord{}, false
}

// LandlordsFor returns the landlords of a property. The bool is false when
// the property does not exist.
func (s *Store) LandlordsFor(propertyID string) ([]types.Landlord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.index[propertyID]; !ok {
		return nil, false
	}
	out := []types.Landlord{}
	for _, l := range s.landlords {
		if l.PropertyID == propertyID {
			out = append(out, l)
		}
	}
	return out, true
}

// AddLandlord links a new landlord to an existing property. The document
// must carry valid CPF or CNPJ check digits matching the landlord type.
func (s *Store) AddLandlord(l types.Landlord) (types.Landlord, error) {
	l.Name = strings.TrimSpace(l.Name)
	l.Email = strings.TrimSpace(l.Email)
	l.Document = strings.TrimSpace(l.Document)
	l.PropertyID = strings.TrimSpace(l.PropertyID)
	verr := form.NewLandlordRules.Validate(map[string]string{
		"name":        l.Name,
		"type":        string(l.Type),
		"document":    l.Document,
		"property_id": l.PropertyID,
		"email":       l.Email,
	})
	digits := len(utils.Digits(l.Document))
	if verr == nil && (l.Type == types.LandlordNatural) != (digits == 11) {
		verr = &form.ValidationError{Fields: map[string]string{
			"document": "documento não corresponde ao tipo de locador",
		}}
	}
	if verr != nil {
		return types.Landlord{}, verr
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.index[l.PropertyID]; !ok {
		return types.Landlord{}, fmt.Errorf("linking landlord to %s: %w", l.PropertyID, ErrUnknownProperty)
	}
	if l.ID == "" {
		l.ID = utils.NewID()
	}
	l.Document = utils.FormatDocument(l.Document)
	if l.LinkedAt.IsZero() {
		l.LinkedAt = s.now().UTC()
	}
	if l.Documents == nil {
		l.Documents = types.Checklist{}
	}
	s.landlords = append(s.landlords, l)
	return l, nil
}
