package edital

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthewbaird/silic/internal/form"
)

func TestAdapt_DefaultForm(t *testing.T) {
	a := Adapt(Default())

	require.Len(t, a.Sections, 4)
	assert.Equal(t, []string{ModeToken, ModeValue}, a.DragModes)
	assert.Equal(t, ModeToken, a.DefaultMode())

	imovel, ok := a.Section("imovel")
	require.True(t, ok)
	assert.Equal(t, []string{"codigo_imovel", "denominacao", "municipio", "uf", "area_minima"}, imovel.FieldIDs)
	assert.Equal(t, []string{"codigo_imovel", "municipio", "uf"}, imovel.Schema["required"])

	props := imovel.Schema["properties"].(map[string]any)
	code := props["codigo_imovel"].(map[string]any)
	assert.Equal(t, `^2000\d{4}$`, code["pattern"], "regex rule overrides the type pattern")
	uf := props["uf"].(map[string]any)
	assert.Len(t, uf["enum"], 27)
	area := props["area_minima"].(map[string]any)
	assert.Equal(t, "integer", area["type"])
	assert.Contains(t, imovel.UISchema, "area_minima")
	assert.NotContains(t, imovel.UISchema, "denominacao")
}

func TestAdapt_ChipsFollowOrigin(t *testing.T) {
	a := Adapt(Default())

	var ids []string
	for _, c := range a.Chips {
		ids = append(ids, c.ID)
	}
	assert.Contains(t, ids, "municipio", "pipe separated origin")
	assert.Contains(t, ids, "cnpj_locador", "origin match ignores case")
	assert.NotContains(t, ids, "numero_edital")
	assert.NotContains(t, ids, "prazo_meses")

	c, ok := a.Chip("valor_aluguel")
	require.True(t, ok)
	assert.Equal(t, 1500.5, c.MockValue)
	assert.Equal(t, "avaliacao.valorMedio", c.SilicPath)
}

func TestAdapt_EmptyDragModesDefault(t *testing.T) {
	a := Adapt(&Form{Groups: []Group{{ID: "g", Fields: []Field{{ID: "x", Type: "text", Origin: "silic"}}}}})
	assert.Equal(t, []string{ModeToken, ModeValue}, a.DragModes)
	assert.Equal(t, "Texto para x", a.InitialData["x"])
	_, hasRequired := a.Sections[0].Schema["required"]
	assert.False(t, hasRequired)
	assert.Equal(t, "[x]", a.Chips[0].Token())
}

func TestParse_RejectsDuplicateFieldIDs(t *testing.T) {
	_, err := Parse([]byte(`{"grupos":[{"id":"a","campos":[{"id":"x"}]},{"id":"b","campos":[{"id":"x"}]}]}`))
	assert.Error(t, err)
	_, err = Parse([]byte(`{`))
	assert.Error(t, err)
}

func TestParse_ExamplesMustMatchRegex(t *testing.T) {
	f, err := Parse([]byte(`{"grupos":[{"id":"a","campos":[
		{"id":"x","validacoes":["regex:^2000\\d{4}$"],"exemplo":"20000001"}]}]}`))
	require.NoError(t, err)
	assert.Equal(t, "20000001", MockValue(f.Groups[0].Fields[0]))

	_, err = Parse([]byte(`{"grupos":[{"id":"a","campos":[
		{"id":"x","validacoes":["regex:^2000\\d{4}$"],"exemplo":"abc"}]}]}`))
	assert.Error(t, err)
	_, err = Parse([]byte(`{"grupos":[{"id":"a","campos":[
		{"id":"x","validacoes":["regex:^(2000$"]}]}]}`))
	assert.Error(t, err)
}

func TestAdapt_InitialDataValidates(t *testing.T) {
	a := Adapt(Default())
	v, err := NewValidator(a)
	require.NoError(t, err)
	for _, sec := range a.Sections {
		assert.NoError(t, v.Validate(sec.ID, a.InitialData), sec.ID)
	}
	assert.Equal(t, "0001/2025", a.InitialData["numero_edital"])

	s := NewSession(a)
	require.NoError(t, s.SetMode(ModeValue))
	require.NoError(t, s.StartDrag("codigo_imovel"))
	text, ok := s.Drop(true)
	require.True(t, ok)
	assert.Equal(t, "20000001", text)
}

func TestMockValue(t *testing.T) {
	tests := []struct {
		tipo string
		want any
	}{
		{"int", 1},
		{"money", 1500.5},
		{"percent", 10},
		{"boolean", false},
		{"date", "2025-01-10"},
		{"time", "10:00"},
		{"UF", "DF"},
		{"cpf", "123.456.789-00"},
		{"cnpj", "12.345.678/0001-90"},
		{"text", "Texto para Objeto"},
		{"", "Objeto (mock)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MockValue(Field{ID: "objeto", Label: "Objeto", Type: tt.tipo}), tt.tipo)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		tipo  string
		value any
		want  string
	}{
		{"money", 1500.5, "R$ 1.500,50"},
		{"money", "abc", "R$ 0,00"},
		{"percent", 10, "10%"},
		{"percent", 12.5, "12.5%"},
		{"boolean", true, "Sim"},
		{"boolean", false, "Não"},
		{"date", "2025-01-10", "10/01/2025"},
		{"date", "10/01/2025", "10/01/2025"},
		{"int", float64(3), "3"},
		{"string", "Brasília", "Brasília"},
		{"string", "", Empty},
		{"money", nil, Empty},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatValue(tt.tipo, tt.value), "%s %v", tt.tipo, tt.value)
	}
}

func TestSession_DropInTokenMode(t *testing.T) {
	s := NewSession(Adapt(Default()))
	s.SetContent("Imóvel  localizado.", 7)

	require.NoError(t, s.StartDrag("codigo_imovel"))
	text, ok := s.Drop(true)
	require.True(t, ok)
	assert.Equal(t, "[CODIGO_IMOVEL]", text)
	assert.Equal(t, "Imóvel [CODIGO_IMOVEL] localizado.", s.Content())
	assert.Equal(t, 22, s.Cursor())
}

func TestSession_DropInValueModeUsesEditedValue(t *testing.T) {
	s := NewSession(Adapt(Default()))
	require.NoError(t, s.SetMode(ModeValue))

	require.NoError(t, s.StartDrag("valor_aluguel"))
	text, ok := s.Drop(true)
	require.True(t, ok)
	assert.Equal(t, "R$ 1.500,50", text)

	require.NoError(t, s.SetValue("inicio_vigencia", "2024-03-01"))
	require.NoError(t, s.StartDrag("inicio_vigencia"))
	_, ok = s.Drop(true)
	require.True(t, ok)

	require.NoError(t, s.StartDrag("aceita_benfeitorias"))
	_, ok = s.Drop(true)
	require.True(t, ok)
	assert.Equal(t, "R$ 1.500,5001/03/2024Não", s.Content())
}

func TestSession_DropOutsideOrCancelIsNoop(t *testing.T) {
	s := NewSession(Adapt(Default()))
	s.SetContent("base", 4)

	require.NoError(t, s.StartDrag("uf"))
	_, ok := s.Drop(false)
	assert.False(t, ok)

	require.NoError(t, s.StartDrag("uf"))
	s.Cancel()
	_, ok = s.Dragging()
	assert.False(t, ok)
	_, ok = s.Drop(true)
	assert.False(t, ok)

	assert.Equal(t, "base", s.Content())
	assert.Equal(t, 4, s.Cursor())
}

func TestSession_Errors(t *testing.T) {
	s := NewSession(Adapt(Default()))
	assert.ErrorIs(t, s.StartDrag("prazo_meses"), ErrUnknownChip)
	assert.ErrorIs(t, s.SetMode("colar"), ErrUnknownMode)
	assert.ErrorIs(t, s.SetValue("ghost", 1), ErrUnknownField)
	_, err := s.Insert("ghost")
	assert.ErrorIs(t, err, ErrUnknownChip)

	s.SetContent("abc", 99)
	assert.Equal(t, 3, s.Cursor())
	s.SetCursor(-4)
	assert.Equal(t, 0, s.Cursor())
}

func TestSession_InsertAtCursor(t *testing.T) {
	s := NewSession(Adapt(Default()))
	s.SetContent("UF: ", 4)
	text, err := s.Insert("uf")
	require.NoError(t, err)
	assert.Equal(t, "[UF]", text)
	assert.Equal(t, "UF: [UF]", s.Content())
}

func TestValidator(t *testing.T) {
	a := Adapt(Default())
	v, err := NewValidator(a)
	require.NoError(t, err)

	assert.NoError(t, v.Validate("condicoes", a.InitialData))

	data := map[string]any{"valor_aluguel": 1200.0, "inicio_vigencia": "2024-02-01"}
	err = v.Validate("condicoes", data)
	var verr *form.ValidationError
	require.True(t, errors.As(err, &verr), "%v", err)
	assert.True(t, verr.Has("prazo_meses"))

	data = map[string]any{"codigo_imovel": "20000001", "municipio": "Recife", "uf": "A1"}
	err = v.Validate("imovel", data)
	require.True(t, errors.As(err, &verr), "%v", err)
	assert.True(t, verr.Has("uf"))
	assert.False(t, verr.Has("codigo_imovel"))

	data["uf"] = "PE"
	assert.NoError(t, v.Validate("imovel", data))

	assert.ErrorIs(t, v.Validate("ghost", nil), ErrUnknownSection)
}
