package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matthewbaird/silic/internal/types"
)

func validProperty() map[string]string {
	return map[string]string{
		"cep":      "70040-010",
		"endereco": "Setor Bancário Sul",
		"numero":   "4",
		"bairro":   "Asa Sul",
		"local":    "Brasília",
		"uf":       "DF",
	}
}

func TestPropertyRules_Valid(t *testing.T) {
	assert.Nil(t, PropertyRules.Validate(validProperty()))
}

func TestPropertyRules_InvalidUFMarksOnlyThatField(t *testing.T) {
	v := validProperty()
	v["uf"] = "A1"
	verr := PropertyRules.Validate(v)
	require.NotNil(t, verr)
	assert.True(t, verr.Has("uf"))
	assert.Len(t, verr.Fields, 1)
	assert.Contains(t, verr.Error(), "uf")
}

func TestPropertyRules_UnknownUF(t *testing.T) {
	v := validProperty()
	v["uf"] = "XX"
	verr := PropertyRules.Validate(v)
	require.NotNil(t, verr)
	assert.True(t, verr.Has("uf"))
}

func TestContractRules(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   string
		invalid bool
	}{
		{"numero ok", "numero", "10000001", false},
		{"numero short", "numero", "1234567", true},
		{"tipo ok", "tipoEdificio", "01", false},
		{"tipo letters", "tipoEdificio", "A1", true},
		{"criado ok", "criadoPor", "C123456", false},
		{"criado no letter", "criadoPor", "1234567", true},
		{"date ok", "inicio", "29/02/2024", false},
		{"date not leap", "inicio", "29/02/2023", true},
		{"date month 13", "fimValidade", "01/13/2024", true},
		{"date iso", "rescisao", "2024-01-01", true},
		{"optional empty", "rescisao", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := map[string]string{"numero": "10000001", "denominacao": "Contrato", "inicio": "01/01/2024"}
			v[tt.field] = tt.value
			verr := ContractRules.Validate(v)
			if tt.invalid {
				require.NotNil(t, verr)
				assert.True(t, verr.Has(tt.field))
			} else {
				assert.Nil(t, verr)
			}
		})
	}
}

func TestContractRules_RequiredFields(t *testing.T) {
	verr := ContractRules.Validate(map[string]string{})
	require.NotNil(t, verr)
	assert.ElementsMatch(t, []string{"numero", "denominacao", "inicio"}, keys(verr.Fields))
	assert.Equal(t, "Denominação é obrigatório", verr.Fields["denominacao"])
}

func TestLandlordRules_Phones(t *testing.T) {
	v := map[string]string{"nome": "Maria", "telefoneFixo": "(61) 3210-4000", "telefoneCelular": "(61) 99876-5432"}
	assert.Nil(t, LandlordRules.Validate(v))

	v["telefoneFixo"] = "(61) 99876-5432"
	v["telefoneCelular"] = "61998765432"
	verr := LandlordRules.Validate(v)
	require.NotNil(t, verr)
	assert.ElementsMatch(t, []string{"telefoneFixo", "telefoneCelular"}, keys(verr.Fields))
}

func TestNewLandlordRules_Document(t *testing.T) {
	v := map[string]string{"name": "Maria", "type": string(types.LandlordNatural), "document": "529.982.247-25", "property_id": "p1"}
	assert.Nil(t, NewLandlordRules.Validate(v))
	v["document"] = "529.982.247-26"
	assert.True(t, NewLandlordRules.Validate(v).Has("document"))
}

func TestValuesDecodeRoundTrip(t *testing.T) {
	in := types.PropertyEdit{PostalCode: "70040-010", State: "DF", City: "Brasília"}
	v, err := Values(in)
	require.NoError(t, err)
	assert.Equal(t, "DF", v["uf"])

	var out types.PropertyEdit
	require.NoError(t, Decode(v, &out))
	assert.Equal(t, in, out)
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestValidateAppraisal(t *testing.T) {
	a := types.Appraisal{
		ElaboratedOn: "2024-05-10",
		DocumentNo:   "LA-2024-001",
		FirmName:     "Avalia Engenharia",
		FirmCNPJ:     "11.222.333/0001-81",
		MinRent:      10000,
		AvgRent:      12000,
		MaxRent:      15000,
	}
	assert.Nil(t, ValidateAppraisal(a))

	a.AvgRent = 16000
	verr := ValidateAppraisal(a)
	require.NotNil(t, verr)
	assert.True(t, verr.Has("valorMedio"))

	a.AvgRent = 12000
	a.FirmName = ""
	assert.True(t, ValidateAppraisal(a).Has("nomeEmpresa"))
}
