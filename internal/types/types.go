// Package types provides the Go structs shared by the catalog: properties
// (imóveis), landlords (locadores), document checklists, edit overlays and
// appraisal records. JSON tags match the wire shapes served over HTTP and
// persisted in the key/value store.
package types

import (
	"time"
)

// PropertyStatus is the lifecycle status of a property in the catalog.
type PropertyStatus string

const (
	StatusActive       PropertyStatus = "Ativo"
	StatusProspecting  PropertyStatus = "Em prospecção"
	StatusMobilizing   PropertyStatus = "Em mobilização"
	StatusDemobilizing PropertyStatus = "Em desmobilização"
	StatusDeactivated  PropertyStatus = "Desativado"
)

// PropertyStatuses lists every status in display order.
var PropertyStatuses = []PropertyStatus{
	StatusActive,
	StatusProspecting,
	StatusMobilizing,
	StatusDemobilizing,
	StatusDeactivated,
}

// Valid reports whether s is one of the known statuses.
func (s PropertyStatus) Valid() bool {
	for _, v := range PropertyStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// DocumentStatus is the delivery status of a single required document.
type DocumentStatus string

const (
	DocDelivered DocumentStatus = "entregue"
	DocPending   DocumentStatus = "pendente"
	DocInReview  DocumentStatus = "em_analise"
	DocRejected  DocumentStatus = "rejeitado"
)

// Checklist maps a document name to its status. A nil status means the
// document does not apply to this record.
type Checklist map[string]*DocumentStatus

// Doc returns a pointer to s, for building checklists inline.
func Doc(s DocumentStatus) *DocumentStatus { return &s }

// Progress returns the number of applicable documents and how many of
// them were delivered.
func (c Checklist) Progress() (delivered, total int) {
	for _, s := range c {
		if s == nil {
			continue
		}
		total++
		if *s == DocDelivered {
			delivered++
		}
	}
	return delivered, total
}

// DateRange represents a validity period with an optional end.
type DateRange struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`
}

// Address is a Brazilian postal address.
type Address struct {
	Street       string `json:"street"`
	Number       string `json:"number,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`       // UF, 2 letters
	PostalCode   string `json:"postal_code"` // CEP, 00000-000
}

// Property is a leased building (imóvel) tracked by the catalog.
type Property struct {
	ID           string         `json:"id"`
	Code         string         `json:"code"` // 2000NNNN
	Denomination string         `json:"denomination"`
	Address      string         `json:"address"`
	Neighborhood string         `json:"neighborhood,omitempty"`
	City         string         `json:"city"`
	State        string         `json:"state"`
	PostalCode   string         `json:"postal_code"`
	Status       PropertyStatus `json:"status"`
	Validity     DateRange      `json:"validity"`
	IPTU         string         `json:"iptu,omitempty"`
	ITR          string         `json:"itr,omitempty"`
	Documents    Checklist      `json:"documents,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    *time.Time     `json:"updated_at,omitempty"`
}

// LandlordType distinguishes natural persons from legal entities.
type LandlordType string

const (
	LandlordNatural   LandlordType = "Pessoa Física"
	LandlordJuridical LandlordType = "Pessoa Jurídica"
)

// Valid reports whether t is a known landlord type.
func (t LandlordType) Valid() bool {
	return t == LandlordNatural || t == LandlordJuridical
}

// LegalRepresentative acts on behalf of a juridical landlord.
type LegalRepresentative struct {
	Name     string `json:"name"`
	Document string `json:"document"` // CPF
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// Landlord (locador) is the owner side of a lease. Every landlord belongs
// to exactly one property.
type Landlord struct {
	ID             string               `json:"id"`
	Name           string               `json:"name"`
	Type           LandlordType         `json:"type"`
	Document       string               `json:"document"` // CPF or CNPJ, masked
	Email          string               `json:"email,omitempty"`
	Phone          string               `json:"phone,omitempty"`
	Address        Address              `json:"address"`
	PropertyID     string               `json:"property_id"`
	Documents      Checklist            `json:"documents,omitempty"`
	Representative *LegalRepresentative `json:"representative,omitempty"`
	HasSpouse      bool                 `json:"has_spouse"`
	LongContract   bool                 `json:"long_contract"`
	LinkedAt       time.Time            `json:"linked_at"`
	Notes          string               `json:"notes,omitempty"`
}

// ContractEdit is the draft of the contract tab of the detail modal.
type ContractEdit struct {
	Number       string `json:"numero"`       // 8 digits
	Denomination string `json:"denominacao"`
	BuildingType string `json:"tipoEdificio"` // 2 digits
	CreatedBy    string `json:"criadoPor"`    // 1 letter + 6 digits
	Start        string `json:"inicio"`       // DD/MM/YYYY
	ValidUntil   string `json:"fimValidade"`  // DD/MM/YYYY
	Rescission   string `json:"rescisao"`     // DD/MM/YYYY
}

// PropertyEdit is the draft of the property address tab.
type PropertyEdit struct {
	PostalCode   string `json:"cep"`
	Street       string `json:"endereco"`
	Number       string `json:"numero"`
	Neighborhood string `json:"bairro"`
	City         string `json:"local"`
	State        string `json:"uf"`
}

// LandlordEdit is the draft of the landlord profile tab.
type LandlordEdit struct {
	Partner       string `json:"parceiro"`
	FiscalIDType  string `json:"tipoIdFiscal"`
	Role          string `json:"denominacaoFuncao"`
	RelationStart string `json:"inicioRelacao"`
	RelationEnd   string `json:"fimRelacao"`
	Name          string `json:"nome"`
	PostalCode    string `json:"cep"`
	Street        string `json:"endereco"`
	Number        string `json:"numero"`
	Neighborhood  string `json:"bairro"`
	City          string `json:"local"`
	State         string `json:"uf"`
	Email         string `json:"email"`
	Landline      string `json:"telefoneFixo"`
	Mobile        string `json:"telefoneCelular"`
}

// Appraisal is the rent appraisal report (laudo de avaliação) attached to
// a property. The JSON tags are the keys of the persisted record.
type Appraisal struct {
	ElaboratedOn string    `json:"dataElaboracao"`
	DocumentNo   string    `json:"numeroDocumento"`
	FirmName     string    `json:"nomeEmpresa"`
	FirmCNPJ     string    `json:"cnpjEmpresa"`
	MinRent      float64   `json:"valorMinimo"`
	AvgRent      float64   `json:"valorMedio"`
	MaxRent      float64   `json:"valorMaximo"`
	UpdatedAt    time.Time `json:"dataUltimaAtualizacao"`
}

// LandlordPolicy decides which property statuses must carry at least one
// landlord.
type LandlordPolicy string

const (
	// PolicyStrict requires landlords for active and demobilizing properties.
	PolicyStrict LandlordPolicy = "strict"
	// PolicyLenient requires landlords for active properties only.
	PolicyLenient LandlordPolicy = "lenient"
	// PolicyNone never requires a landlord.
	PolicyNone LandlordPolicy = "none"
)

// Valid reports whether p is a known policy.
func (p LandlordPolicy) Valid() bool {
	return p == PolicyStrict || p == PolicyLenient || p == PolicyNone
}

// Requires reports whether a property in status s must have a landlord.
func (p LandlordPolicy) Requires(s PropertyStatus) bool {
	switch p {
	case PolicyStrict:
		return s == StatusActive || s == StatusDemobilizing
	case PolicyLenient:
		return s == StatusActive
	}
	return false
}

// Dataset is a complete catalog snapshot produced by a generator or loaded
// from a static export.
type Dataset struct {
	Properties  []Property `json:"properties"`
	Landlords   []Landlord `json:"landlords"`
	Source      string     `json:"source"`
	Notice      string     `json:"notice,omitempty"` // set when the data is a fallback
	GeneratedAt time.Time  `json:"generated_at"`
}
