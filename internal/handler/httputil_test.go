package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthewbaird/silic/internal/catalog"
	"github.com/matthewbaird/silic/internal/edital"
	"github.com/matthewbaird/silic/internal/event"
	"github.com/matthewbaird/silic/internal/form"
	"github.com/matthewbaird/silic/internal/kv"
	"github.com/matthewbaird/silic/internal/types"
)

func TestParsePagination(t *testing.T) {
	cases := []struct {
		query      string
		page, size int
	}{
		{"", 1, 10},
		{"page=3&page_size=25", 3, 25},
		{"page_size=1000", 1, 100},
		{"page_size=-4&page=x", 1, 10},
		{"page=-2", -2, 10}, // clamped by query.Paginate
	}
	for _, c := range cases {
		r := httptest.NewRequest(http.MethodGet, "/v1/properties?"+c.query, nil)
		p := parsePagination(r)
		assert.Equal(t, c.page, p.Page, c.query)
		assert.Equal(t, c.size, p.PageSize, c.query)
	}
}

func TestParseCriteria(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?q=recife&end_from=2025-01-01&end_to=31/12/2026", nil)
	c, err := parseCriteria(r)
	require.NoError(t, err)
	assert.Equal(t, "recife", c.Text)
	require.NotNil(t, c.EndFrom)
	require.NotNil(t, c.EndTo)
	assert.Equal(t, 2026, c.EndTo.Year())

	_, err = parseCriteria(httptest.NewRequest(http.MethodGet, "/?status=Alugado", nil))
	assert.ErrorContains(t, err, "unknown status")
	_, err = parseCriteria(httptest.NewRequest(http.MethodGet, "/?end_to=31-12-2026", nil))
	assert.ErrorContains(t, err, "end_to")
}

func TestCatalogErrorToHTTP(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{&form.ValidationError{Fields: map[string]string{"code": "obrigatório"}}, 400, "VALIDATION_ERROR"},
		{fmt.Errorf("x: %w", catalog.ErrNotFound), 404, "NOT_FOUND"},
		{kv.ErrNotFound, 404, "NOT_FOUND"},
		{fmt.Errorf("x: %w", edital.ErrUnknownSection), 404, "UNKNOWN_SECTION"},
		{fmt.Errorf("x: %w", catalog.ErrDuplicateCode), 409, "DUPLICATE_CODE"},
		{fmt.Errorf("x: %w", catalog.ErrUnknownProperty), 422, "UNKNOWN_PROPERTY"},
		{errors.New("disk on fire"), 500, "INTERNAL_ERROR"},
	}
	for _, c := range cases {
		w := httptest.NewRecorder()
		catalogErrorToHTTP(w, c.err)
		assert.Equal(t, c.status, w.Code, c.err.Error())
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, c.code, body["code"])
	}

	w := httptest.NewRecorder()
	catalogErrorToHTTP(w, &form.ValidationError{Fields: map[string]string{"code": "obrigatório"}})
	assert.JSONEq(t, `{"code":"obrigatório"}`, mustField(t, w.Body.Bytes(), "fields"))
}

func mustField(t *testing.T, raw []byte, key string) string {
	t.Helper()
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &body))
	return string(body[key])
}

func TestRecovery(t *testing.T) {
	h := Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") }))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestLogging_KeepsStatusAndUnwraps(t *testing.T) {
	var unwrapped bool
	h := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, unwrapped = w.(interface{ Unwrap() http.ResponseWriter })
		w.WriteHeader(http.StatusTeapot)
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.True(t, unwrapped)
}

type countingRecorder struct{ n int }

func (c *countingRecorder) Record(context.Context, event.DomainEvent) error {
	c.n++
	return errors.New("store down")
}

func TestRecordEvent_BestEffort(t *testing.T) {
	defer SetRecorder(nil)
	recordEvent(context.Background(), event.NewPropertyAdded(event.PropertyPayload{PropertyID: "im-1"}))

	rec := &countingRecorder{}
	SetRecorder(rec)
	recordEvent(context.Background(), event.NewPropertyAdded(event.PropertyPayload{PropertyID: "im-1", Status: types.StatusActive}))
	assert.Equal(t, 1, rec.n)
}
