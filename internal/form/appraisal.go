package form

import "github.com/matthewbaird/silic/internal/types"

var appraisalRules = Table{
	{Field: "dataElaboracao", Label: "Data de elaboração", Required: true},
	{Field: "numeroDocumento", Label: "Número do documento", Required: true},
	{Field: "nomeEmpresa", Label: "Empresa avaliadora", Required: true},
	{Field: "cnpjEmpresa", Label: "CNPJ da empresa", Required: true},
}

// ValidateAppraisal checks the required fields of an appraisal and that
// its rent values are ordered minimum <= average <= maximum.
func ValidateAppraisal(a types.Appraisal) *ValidationError {
	verr := appraisalRules.Validate(map[string]string{
		"dataElaboracao":  a.ElaboratedOn,
		"numeroDocumento": a.DocumentNo,
		"nomeEmpresa":     a.FirmName,
		"cnpjEmpresa":     a.FirmCNPJ,
	})
	if a.MinRent > a.AvgRent || a.AvgRent > a.MaxRent {
		if verr == nil {
			verr = &ValidationError{Fields: make(map[string]string)}
		}
		verr.Fields["valorMedio"] = "Os valores devem estar em ordem crescente: Mínimo ≤ Médio ≤ Máximo"
	}
	return verr
}
