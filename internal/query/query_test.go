package query

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthewbaird/silic/internal/types"
)

func sample(n int) []types.Property {
	out := make([]types.Property, n)
	for i := range out {
		out[i] = types.Property{
			ID:           fmt.Sprintf("p%03d", i+1),
			Code:         fmt.Sprintf("2000%04d", i+1),
			Denomination: fmt.Sprintf("ED - CAIXA Cidade %d", i+1),
			City:         "Recife",
			Status:       types.StatusActive,
		}
	}
	return out
}

func date(s string) *time.Time {
	t, _ := time.Parse(time.DateOnly, s)
	return &t
}

func TestFilter_EmptyCriteriaKeepsOrder(t *testing.T) {
	props := sample(25)
	got := Filter(props, Criteria{})
	require.Len(t, got, 25)
	for i := range props {
		assert.Equal(t, props[i].ID, got[i].ID)
	}
}

func TestFilter_TextIsCaseInsensitiveSubstring(t *testing.T) {
	props := sample(3)
	props[1].City = "São Paulo"
	props[2].Denomination = "ED - CAIXA Brasília Norte"

	assert.Len(t, Filter(props, Criteria{Text: "SÃO"}), 1)
	assert.Len(t, Filter(props, Criteria{Text: "brasília"}), 1)
	assert.Len(t, Filter(props, Criteria{Text: "20000001"}), 1)
	assert.Len(t, Filter(props, Criteria{Text: "  "}), 3)
	assert.Empty(t, Filter(props, Criteria{Text: "manaus"}))
}

func TestFilter_StatusAndEndRange(t *testing.T) {
	props := sample(4)
	props[0].Status = types.StatusDeactivated
	props[0].Validity.End = date("2024-03-01")
	props[1].Status = types.StatusDemobilizing
	props[1].Validity.End = date("2024-09-01")

	got := Filter(props, Criteria{Status: types.StatusDemobilizing})
	require.Len(t, got, 1)
	assert.Equal(t, "p002", got[0].ID)

	got = Filter(props, Criteria{EndFrom: date("2024-01-01"), EndTo: date("2024-06-30")})
	require.Len(t, got, 1)
	assert.Equal(t, "p001", got[0].ID)

	assert.Len(t, Filter(props, Criteria{EndFrom: date("2020-01-01")}), 2)
}

func TestPaginate_ThirdPage(t *testing.T) {
	p := Paginate(sample(95), 3, 10)
	require.Len(t, p.Items, 10)
	assert.Equal(t, "p021", p.Items[0].ID)
	assert.Equal(t, "p030", p.Items[9].ID)
	assert.Equal(t, 21, p.From)
	assert.Equal(t, 30, p.To)
	assert.Equal(t, 10, p.TotalPages)
}

func TestPaginate_Clamps(t *testing.T) {
	p := Paginate(sample(95), 42, 10)
	assert.Equal(t, 10, p.Page)
	assert.Len(t, p.Items, 5)
	assert.Equal(t, 95, p.To)

	p = Paginate(sample(95), -3, 10)
	assert.Equal(t, 1, p.Page)

	empty := Paginate([]types.Property{}, 4, 10)
	assert.Equal(t, 1, empty.Page)
	assert.Equal(t, 1, empty.TotalPages)
	assert.Empty(t, empty.Items)
	assert.Zero(t, empty.From)
}

func TestState_PageSizeChangeResetsPage(t *testing.T) {
	s := NewState()
	s.GoTo(3)
	_, page := s.Apply(sample(100))
	assert.Equal(t, 3, page.Page)

	s.SetPageSize(25)
	_, page = s.Apply(sample(100))
	assert.Equal(t, 1, page.Page)
	assert.Len(t, page.Items, 25)

	s.SetPageSize(1000)
	assert.Equal(t, MaxPageSize, s.PageSize)
}

func TestState_FilterThenClear(t *testing.T) {
	props := sample(30)
	props[7].City = "Manaus"
	s := NewState()
	s.GoTo(2)
	s.SetCriteria(Criteria{Text: "manaus"})
	filtered, page := s.Apply(props)
	require.Len(t, filtered, 1)
	assert.Equal(t, 1, page.Page)

	s.SetCriteria(Criteria{})
	filtered, _ = s.Apply(props)
	require.Len(t, filtered, 30)
	for i := range props {
		assert.Equal(t, props[i].ID, filtered[i].ID)
	}
}
