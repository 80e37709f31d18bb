package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthewbaird/silic/internal/mock"
	"github.com/matthewbaird/silic/internal/query"
	"github.com/matthewbaird/silic/internal/types"
)

func TestCompute_DemoDataset(t *testing.T) {
	ds := mock.New(2, types.PolicyStrict).Dataset(100)
	st := Compute(ds.Properties, ds.Landlords)

	assert.Equal(t, 100, st.TotalProperties)
	assert.Equal(t, 65, st.ByStatus[types.StatusActive])
	assert.Equal(t, 2, st.ByStatus[types.StatusDeactivated])
	assert.Equal(t, len(ds.Landlords), st.TotalLandlords)
	assert.Equal(t, st.TotalLandlords, st.ByLandlordType[types.LandlordNatural]+st.ByLandlordType[types.LandlordJuridical])
	assert.Positive(t, st.Documentation.Total)
}

func TestCompute_FilteredSet(t *testing.T) {
	ds := mock.New(2, types.PolicyStrict).Dataset(100)
	active := query.Filter(ds.Properties, query.Criteria{Status: types.StatusActive})
	st := Compute(active, ds.Landlords)

	assert.Equal(t, 65, st.TotalProperties)
	assert.Zero(t, st.ByStatus[types.StatusProspecting])
	assert.LessOrEqual(t, st.TotalLandlords, len(ds.Landlords))
	assert.GreaterOrEqual(t, st.TotalLandlords, 65)
}

func TestCompute_Empty(t *testing.T) {
	st := Compute(nil, nil)
	assert.Zero(t, st.TotalProperties)
	assert.Len(t, st.ByStatus, 5)
	assert.Zero(t, st.Documentation.Percent)
}

func TestAudit(t *testing.T) {
	props := []types.Property{
		{ID: "p1", Code: "20000001", Status: types.StatusActive},
		{ID: "p2", Code: "20000002", Status: types.StatusDemobilizing},
		{ID: "p3", Code: "20000003", Status: types.StatusProspecting},
	}
	landlords := []types.Landlord{
		{ID: "l1", Name: "Ana", PropertyID: "p1", Documents: types.Checklist{
			"RG":  types.Doc(types.DocDelivered),
			"CPF": types.Doc(types.DocPending),
			"CNH": types.Doc(types.DocRejected),
			"X":   nil,
		}},
		{ID: "l2", Name: "Bia", PropertyID: "p3", Documents: types.Checklist{
			"RG": types.Doc(types.DocDelivered),
		}},
	}

	r := Audit(props, landlords, types.PolicyStrict)
	require.Len(t, r.MissingLandlord, 1)
	assert.Equal(t, "20000002", r.MissingLandlord[0].Code)
	require.Len(t, r.LowDocumentation, 1)
	assert.Equal(t, "l1", r.LowDocumentation[0].ID)
	assert.Equal(t, 33, r.LowDocumentation[0].Progress.Percent)

	assert.Empty(t, Audit(props, landlords, types.PolicyLenient).MissingLandlord)
}
