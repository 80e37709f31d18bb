package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthewbaird/silic/internal/form"
	"github.com/matthewbaird/silic/internal/mock"
	"github.com/matthewbaird/silic/internal/types"
)

func loaded(t *testing.T, count int) *Store {
	t.Helper()
	s := New()
	require.NoError(t, s.Load(mock.New(1, types.PolicyStrict).Dataset(count)))
	return s
}

func newProperty(code string) NewProperty {
	return NewProperty{
		Code:          code,
		Denomination:  "ED - CAIXA Brasília Centro, DF",
		City:          "Brasília",
		State:         "DF",
		Address:       "Setor Bancário Sul, 4",
		PostalCode:    "70040-010",
		Status:        string(types.StatusProspecting),
		ValidityStart: "01/02/2024",
	}
}

func TestStore_LoadAndLookup(t *testing.T) {
	s := loaded(t, 30)
	props := s.Originals()
	require.Len(t, props, 30)

	p, ok := s.Property(props[3].ID)
	require.True(t, ok)
	assert.Equal(t, props[3].Code, p.Code)

	byCode, ok := s.PropertyByCode(props[3].Code)
	require.True(t, ok)
	assert.Equal(t, p.ID, byCode.ID)

	_, ok = s.Property("missing")
	assert.False(t, ok)
	_, ok = s.LandlordsFor("missing")
	assert.False(t, ok)
}

func TestStore_LoadRejectsDuplicates(t *testing.T) {
	s := New()
	err := s.Load(types.Dataset{Properties: []types.Property{
		{ID: "p1", Code: "20000001"},
		{ID: "p1", Code: "20000002"},
	}})
	require.Error(t, err)
	assert.Empty(t, s.Originals())

	err = s.Load(types.Dataset{Properties: []types.Property{
		{ID: "p1", Code: "20000001"},
		{ID: "p2", Code: "20000001"},
	}})
	assert.ErrorIs(t, err, ErrDuplicateCode)
	assert.Empty(t, s.Originals())
}

func TestStore_LoadDropsOrphanLandlords(t *testing.T) {
	s := New()
	err := s.Load(types.Dataset{
		Properties: []types.Property{{ID: "p1", Code: "20000001"}},
		Landlords: []types.Landlord{
			{ID: "l1", PropertyID: "p1"},
			{ID: "l2", PropertyID: "ghost"},
		},
	})
	require.NoError(t, err)
	assert.Len(t, s.Landlords(), 1)
}

func TestStore_AddProperty(t *testing.T) {
	s := loaded(t, 10)
	p, err := s.AddProperty(newProperty("20009999"))
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, 2024, p.Validity.Start.Year())

	originals := s.Originals()
	require.Len(t, originals, 11)
	assert.Equal(t, p.ID, originals[10].ID)
}

func TestStore_AddPropertyRejectsDuplicateCode(t *testing.T) {
	s := loaded(t, 10)
	_, err := s.AddProperty(newProperty("20000001"))
	assert.ErrorIs(t, err, ErrDuplicateCode)
	assert.Len(t, s.Originals(), 10)
}

func TestStore_AddPropertyTrimsFields(t *testing.T) {
	s := loaded(t, 10)
	in := newProperty(" 20009999 ")
	in.State = " DF "
	p, err := s.AddProperty(in)
	require.NoError(t, err)
	assert.Equal(t, "20009999", p.Code)
	assert.Equal(t, "DF", p.State)

	byCode, ok := s.PropertyByCode("20009999")
	require.True(t, ok)
	assert.Equal(t, p.ID, byCode.ID)

	_, err = s.AddProperty(newProperty("20000001 "))
	assert.ErrorIs(t, err, ErrDuplicateCode)
}

func TestStore_AddPropertyRejectsBadCode(t *testing.T) {
	s := New()
	_, err := s.AddProperty(newProperty("1234"))
	var verr *form.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Has("code"))

	in := newProperty("20000002")
	in.Denomination = ""
	_, err = s.AddProperty(in)
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Has("denomination"))
}

func TestStore_UpdateProperty(t *testing.T) {
	s := New()
	a, err := s.AddProperty(newProperty("20000001"))
	require.NoError(t, err)
	_, err = s.AddProperty(newProperty("20000002"))
	require.NoError(t, err)

	in := newProperty("20000001")
	in.Status = string(types.StatusActive)
	updated, err := s.UpdateProperty(a.ID, in)
	require.NoError(t, err)
	assert.Equal(t, types.StatusActive, updated.Status)
	assert.NotNil(t, updated.UpdatedAt)

	_, err = s.UpdateProperty(a.ID, newProperty("20000002"))
	assert.ErrorIs(t, err, ErrDuplicateCode)

	_, err = s.UpdateProperty("missing", in)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_AddLandlord(t *testing.T) {
	s := New()
	p, err := s.AddProperty(newProperty("20000001"))
	require.NoError(t, err)

	l, err := s.AddLandlord(types.Landlord{
		Name:       "Maria Oliveira Costa",
		Type:       types.LandlordNatural,
		Document:   "52998224725",
		PropertyID: p.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "529.982.247-25", l.Document)

	got, ok := s.LandlordsFor(p.ID)
	require.True(t, ok)
	assert.Len(t, got, 1)

	_, err = s.AddLandlord(types.Landlord{
		Name: "X", Type: types.LandlordNatural, Document: "52998224725", PropertyID: "ghost",
	})
	assert.ErrorIs(t, err, ErrUnknownProperty)

	_, err = s.AddLandlord(types.Landlord{
		Name: "X", Type: types.LandlordJuridical, Document: "52998224725", PropertyID: p.ID,
	})
	var verr *form.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.Has("document"))
}

func TestStore_EditsDoNotLeakIntoOriginals(t *testing.T) {
	s := loaded(t, 5)
	p := s.Originals()[0]

	values, err := s.EditValues(p.ID, form.TabProperty)
	require.NoError(t, err)
	assert.Equal(t, p.PostalCode, values["cep"])

	values["endereco"] = "Rua Nova, 10"
	require.NoError(t, s.SaveEdit(p.ID, form.TabProperty, values))

	edit, ok := s.PropertyEdit(p.ID)
	require.True(t, ok)
	assert.Equal(t, "Rua Nova, 10", edit.Street)

	again, _ := s.Property(p.ID)
	assert.Equal(t, p.Address, again.Address)
	assert.Equal(t, p.Address, s.Originals()[0].Address)

	values, err = s.EditValues(p.ID, form.TabProperty)
	require.NoError(t, err)
	assert.Equal(t, "Rua Nova, 10", values["endereco"])
}

func TestStore_SaveEditUnknownProperty(t *testing.T) {
	s := New()
	err := s.SaveEdit("ghost", form.TabContract, map[string]string{})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.EditValues("ghost", form.TabContract)
	assert.ErrorIs(t, err, ErrNotFound)
}
