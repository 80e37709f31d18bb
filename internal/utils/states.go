package utils

// State is a Brazilian federative unit.
type State struct {
	Code string `json:"value"`
	Name string `json:"label"`
}

// States lists the 27 federative units in alphabetical order of name.
var States = []State{
	{"AC", "Acre"}, {"AL", "Alagoas"}, {"AP", "Amapá"}, {"AM", "Amazonas"},
	{"BA", "Bahia"}, {"CE", "Ceará"}, {"DF", "Distrito Federal"}, {"ES", "Espírito Santo"},
	{"GO", "Goiás"}, {"MA", "Maranhão"}, {"MT", "Mato Grosso"}, {"MS", "Mato Grosso do Sul"},
	{"MG", "Minas Gerais"}, {"PA", "Pará"}, {"PB", "Paraíba"}, {"PR", "Paraná"},
	{"PE", "Pernambuco"}, {"PI", "Piauí"}, {"RJ", "Rio de Janeiro"}, {"RN", "Rio Grande do Norte"},
	{"RS", "Rio Grande do Sul"}, {"RO", "Rondônia"}, {"RR", "Roraima"}, {"SC", "Santa Catarina"},
	{"SP", "São Paulo"}, {"SE", "Sergipe"}, {"TO", "Tocantins"},
}

// ValidUF reports whether uf is the code of a federative unit.
func ValidUF(uf string) bool {
	for _, s := range States {
		if s.Code == uf {
			return true
		}
	}
	return false
}
