// Package sapdata reads the static SAP export (contracts, buildings and
// business partners) into a catalog dataset and writes datasets back in
// the same shape.
package sapdata

// Export is the static JSON file produced from the SAP REISCNBP and REISBU
// reports.
type Export struct {
	Properties []RawProperty `json:"imoveis"`
	Landlords  []RawLandlord `json:"locadores"`
	Metadata   Metadata      `json:"metadados"`
}

// RawContract is the contract half of an exported property.
type RawContract struct {
	Number       int64   `json:"numero"`
	Denomination string  `json:"denominacao"`
	ContractType string  `json:"tipoContrato"`
	Start        string  `json:"inicioContrato"`
	ValidUntil   string  `json:"fimValidade"`
	RescindedOn  *string `json:"rescisaoEm"`
	Partner      int64   `json:"parceiroNegocio"`
}

// Coded is a code/name pair.
type Coded struct {
	Code string `json:"codigo"`
	Name string `json:"nome"`
}

// BuildingType is the numeric building type of a building.
type BuildingType struct {
	Code int    `json:"codigo"`
	Name string `json:"nome"`
}

// RawBuilding is the building half of an exported property.
type RawBuilding struct {
	Code                int64        `json:"codigo"`
	Denomination        string       `json:"denominacao"`
	Status              string       `json:"status"`
	PostalCode          string       `json:"cep"`
	City                string       `json:"local"`
	Street              string       `json:"rua"`
	Number              int64        `json:"numero"`
	Neighborhood        string       `json:"bairro"`
	State               string       `json:"regiao"`
	ValidFrom           string       `json:"inicioValidadeObj"`
	ValidUntil          string       `json:"objetoValidoAte"`
	Type                BuildingType `json:"tipoEdificio"`
	CreatedBy           string       `json:"criadoPor"`
	Country             string       `json:"chavePais"`
	Address             string       `json:"endereco"`
	Condition           string       `json:"estadoConservacao"`
	Function            Coded        `json:"funcao"`
	PropertyName        string       `json:"denominacaoImovel"`
	MainUse             string       `json:"utilizacaoPrincipal"`
	PolicyType          int          `json:"tipoApolice"`
	IPTU                string       `json:"inscricaoIPTU"`
	ITR                 string       `json:"numeroITR"`
	AuthorizationGroups int          `json:"grupoAutorizacoes"`
}

// RawProperty pairs a contract with its building and landlord reference.
type RawProperty struct {
	ID         string      `json:"id"`
	Contract   RawContract `json:"contrato"`
	Building   RawBuilding `json:"edificio"`
	LandlordID string      `json:"locadorId"`
}

// RawAddress is a business partner address.
type RawAddress struct {
	Street       string `json:"rua"`
	Number       int64  `json:"numero"`
	Neighborhood string `json:"bairro"`
	City         string `json:"cidade"`
	State        string `json:"regiao"`
	PostalCode   string `json:"cep"`
}

// RawLandlord is an exported business partner.
type RawLandlord struct {
	ID            string     `json:"id"`
	Partner       int64      `json:"parceiroNegocio"`
	FiscalIDType  string     `json:"tipoIdFiscal"`
	FiscalID      string     `json:"numeroIdFiscal"`
	Name          string     `json:"nome"`
	AddressName   string     `json:"nomeEndereco"`
	Role          string     `json:"funcaoPN"`
	Kind          string     `json:"tipo"` // fisica | juridica
	Address       RawAddress `json:"endereco"`
	Email         string     `json:"email"`
	Phone         string     `json:"telefone"`
	Mobile        string     `json:"telefoneCelular"`
	RelationStart string     `json:"inicioRelacao"`
	RelationEnd   string     `json:"fimRelacao"`
	Status        string     `json:"status"`
}

// Metadata describes the export run.
type Metadata struct {
	GeneratedAt     string `json:"dataGeracao"`
	Source          string `json:"fonte"`
	Version         string `json:"versao"`
	TotalProperties int    `json:"totalImoveis"`
	TotalLandlords  int    `json:"totalLocadores"`
	Structure       string `json:"estrutura"`
}
