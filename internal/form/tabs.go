package form

import (
	"regexp"

	"github.com/matthewbaird/silic/internal/types"
	"github.com/matthewbaird/silic/internal/utils"
)

var (
	reCEP      = regexp.MustCompile(`^\d{5}-\d{3}$`)
	reUF       = regexp.MustCompile(`^[A-Z]{2}$`)
	reDigits   = regexp.MustCompile(`^\d+$`)
	reEmail    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	reLandline = regexp.MustCompile(`^\(\d{2}\) \d{4}-\d{4}$`)
	reMobile   = regexp.MustCompile(`^\(\d{2}\) \d{5}-\d{4}$`)
)

// CodePattern matches the code of a manually added property.
var CodePattern = regexp.MustCompile(`^2000\d{4}$`)

func ufRule(field string) Rule {
	return Rule{Field: field, Label: "UF", Required: true, Pattern: reUF, Check: utils.ValidUF}
}

func dateRule(field, label string, required bool) Rule {
	return Rule{Field: field, Label: label, Required: required, Check: ValidDate,
		Message: label + " deve ser uma data válida no formato DD/MM/AAAA"}
}

// ContractRules validates the contract tab.
var ContractRules = Table{
	{Field: "numero", Label: "Número do contrato", Required: true, Pattern: regexp.MustCompile(`^\d{8}$`),
		Message: "Número do contrato deve ter 8 dígitos"},
	{Field: "denominacao", Label: "Denominação", Required: true},
	{Field: "tipoEdificio", Label: "Tipo de edifício", Pattern: regexp.MustCompile(`^\d{2}$`),
		Message: "Tipo de edifício deve ter 2 dígitos"},
	{Field: "criadoPor", Label: "Criado por", Pattern: regexp.MustCompile(`^[A-Za-z]\d{6}$`),
		Message: "Criado por deve ser uma letra seguida de 6 dígitos"},
	dateRule("inicio", "Início", true),
	dateRule("fimValidade", "Fim da validade", false),
	dateRule("rescisao", "Rescisão", false),
}

// PropertyRules validates the property address tab.
var PropertyRules = Table{
	{Field: "cep", Label: "CEP", Required: true, Pattern: reCEP, Message: "CEP deve estar no formato 00000-000"},
	{Field: "endereco", Label: "Endereço", Required: true},
	{Field: "numero", Label: "Número", Pattern: reDigits, Message: "Número deve conter apenas dígitos"},
	{Field: "bairro", Label: "Bairro"},
	{Field: "local", Label: "Local", Required: true},
	ufRule("uf"),
}

// LandlordRules validates the landlord profile tab.
var LandlordRules = Table{
	{Field: "parceiro", Label: "Parceiro", Pattern: reDigits},
	{Field: "tipoIdFiscal", Label: "Tipo de ID fiscal", Check: func(s string) bool { return s == "CPF" || s == "CNPJ" }},
	{Field: "denominacaoFuncao", Label: "Função"},
	dateRule("inicioRelacao", "Início da relação", false),
	dateRule("fimRelacao", "Fim da relação", false),
	{Field: "nome", Label: "Nome", Required: true},
	{Field: "cep", Label: "CEP", Pattern: reCEP, Message: "CEP deve estar no formato 00000-000"},
	{Field: "endereco", Label: "Endereço"},
	{Field: "numero", Label: "Número", Pattern: reDigits, Message: "Número deve conter apenas dígitos"},
	{Field: "bairro", Label: "Bairro"},
	{Field: "local", Label: "Local"},
	{Field: "uf", Label: "UF", Pattern: reUF, Check: utils.ValidUF},
	{Field: "email", Label: "E-mail", Pattern: reEmail},
	{Field: "telefoneFixo", Label: "Telefone fixo", Pattern: reLandline,
		Message: "Telefone fixo deve estar no formato (00) 0000-0000"},
	{Field: "telefoneCelular", Label: "Telefone celular", Pattern: reMobile,
		Message: "Telefone celular deve estar no formato (00) 00000-0000"},
}

// NewPropertyRules validates the manual add form.
var NewPropertyRules = Table{
	{Field: "code", Label: "Código", Required: true, Pattern: CodePattern,
		Message: "Código do edifício deve ter 8 dígitos e iniciar com 2000"},
	{Field: "denomination", Label: "Denominação", Required: true},
	{Field: "city", Label: "Local", Required: true},
	{Field: "address", Label: "Endereço", Required: true},
	{Field: "postal_code", Label: "CEP", Required: true, Pattern: reCEP},
	{Field: "state", Label: "UF", Pattern: reUF, Check: utils.ValidUF},
	{Field: "status", Label: "Status", Required: true, Check: func(s string) bool { return types.PropertyStatus(s).Valid() }},
	dateRule("validity_start", "Início da validade", false),
	dateRule("validity_end", "Fim da validade", false),
}

// NewLandlordRules validates a landlord linked through the API.
var NewLandlordRules = Table{
	{Field: "name", Label: "Nome", Required: true},
	{Field: "type", Label: "Tipo", Required: true, Check: func(s string) bool { return types.LandlordType(s).Valid() }},
	{Field: "document", Label: "CPF/CNPJ", Required: true, Check: utils.ValidDocument,
		Message: "CPF/CNPJ com dígitos verificadores inválidos"},
	{Field: "property_id", Label: "Imóvel", Required: true},
	{Field: "email", Label: "E-mail", Pattern: reEmail},
}

// Tab names of the property detail modal.
const (
	TabContract = "contract"
	TabProperty = "property"
	TabLandlord = "landlord"
)

// Tabs maps each modal tab to its validator table.
var Tabs = map[string]Table{
	TabContract: ContractRules,
	TabProperty: PropertyRules,
	TabLandlord: LandlordRules,
}
