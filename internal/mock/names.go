package mock

type city struct {
	Name string
	UF   string
	DDD  string
}

var cities = []city{
	{"São Paulo", "SP", "11"}, {"Rio de Janeiro", "RJ", "21"}, {"Brasília", "DF", "61"},
	{"Salvador", "BA", "71"}, {"Fortaleza", "CE", "85"}, {"Belo Horizonte", "MG", "31"},
	{"Manaus", "AM", "92"}, {"Curitiba", "PR", "41"}, {"Recife", "PE", "81"},
	{"Goiânia", "GO", "62"}, {"Belém", "PA", "91"}, {"Porto Alegre", "RS", "51"},
	{"Guarulhos", "SP", "11"}, {"Campinas", "SP", "19"}, {"São Luís", "MA", "98"},
	{"São Gonçalo", "RJ", "21"}, {"Maceió", "AL", "82"}, {"Duque de Caxias", "RJ", "21"},
	{"Teresina", "PI", "86"}, {"Natal", "RN", "84"}, {"Campo Grande", "MS", "67"},
	{"Osasco", "SP", "11"}, {"João Pessoa", "PB", "83"}, {"Contagem", "MG", "31"},
	{"Uberlândia", "MG", "34"}, {"Sorocaba", "SP", "15"}, {"Aracaju", "SE", "79"},
	{"Feira de Santana", "BA", "75"}, {"Cuiabá", "MT", "65"}, {"Joinville", "SC", "47"},
	{"Juiz de Fora", "MG", "32"}, {"Londrina", "PR", "43"}, {"Niterói", "RJ", "21"},
	{"Caxias do Sul", "RS", "54"}, {"Macapá", "AP", "96"}, {"Vila Velha", "ES", "27"},
	{"Florianópolis", "SC", "48"}, {"Santos", "SP", "13"}, {"Ribeirão Preto", "SP", "16"},
	{"Vitória", "ES", "27"}, {"Serra", "ES", "27"}, {"Diadema", "SP", "11"},
}

var (
	complements  = []string{"Centro", "Norte", "Sul", "Leste", "Oeste", "Zona Norte", "Zona Sul", "Business", "Corporate"}
	streetKinds  = []string{"Rua", "Avenida", "Alameda", "Travessa", "Praça"}
	streetNames  = []string{"das Flores", "do Comércio", "Brasil", "da Independência", "Santos Dumont", "Getúlio Vargas", "JK", "do Centro", "Sete de Setembro", "Tiradentes"}
	neighborhood = []string{"Centro", "Boa Viagem", "Consolação", "Jardins", "Aldeota", "Meireles", "Copacabana", "Savassi", "Lourdes", "Ponta Verde", "Gonzaga", "Barra"}
)

var naturalNames = []string{
	"João Silva Santos", "Carlos Eduardo Lima", "Roberto Almeida Sousa", "Pedro Henrique Silva",
	"Rafael Moreira Costa", "Bruno Costa Oliveira", "Gustavo Ribeiro Santos", "Marcos Vieira Pereira",
	"Thiago Araújo Costa", "José Carlos Pereira", "Luiz Fernando Silva", "Antônio Carlos Silva",
	"Maria Oliveira Costa", "Ana Paula Ferreira", "Fernanda Castro Silva", "Juliana Rocha Santos",
	"Camila Souza Lima", "Patrícia Martins Silva", "Luciana Fernandes Lima", "Isabela Mendes Costa",
	"Aline Cardoso Santos", "Tatiana Campos Silva", "Gabriela Oliveira Costa", "Renata Pereira Santos",
}

var companyNames = []string{
	"Construtora ABC Ltda", "Imobiliária Prime Negócios", "Incorporadora Moderna S.A.",
	"Construções Sul Empreendimentos Ltda", "Empreendimentos Norte Investimentos S.A.",
	"Imóveis e Cia Corretora Ltda", "Construtora Silva e Filhos S.A.", "Imobiliária Santos Premium",
	"Edificações Modernas Engenharia S.A.", "Construtora União Forte S.A.",
	"Incorporadora Horizonte Azul Ltda", "Grupo Empresarial Nova Era Ltda",
}

// Document names of the property checklist, with the probability that
// each one applies. A probability of 1 means always applicable.
var propertyDocs = []struct {
	Name    string
	Applies float64
}{
	{"Matrícula do Imóvel (até 60 dias)", 1},
	{"Certidão Negativa IPTU Atualizada", 1},
	{"Averbação de Edificação", 0.5},
	{"Habite-se", 0.6},
	{"Permissão Atividade Bancária - Poder Público", 0.7},
	{"Comprovação Legislação Local", 0.4},
	{"Inexistência de Proibição Legal", 0.3},
	{"Manifestação CILOG", 0.2},
}

var naturalDocs = []struct {
	Name    string
	Applies float64
}{
	{"CNH - Carteira Nacional de Habilitação", 0.4},
	{"RG - Registro Geral", 0.7},
	{"CPF - Cadastro de Pessoa Física", 1},
	{"Passaporte", 0.1},
	{"Carteira Profissional", 0.4},
	{"CND/CPEND - RFB e PGFN", 1},
	{"Escritura Pública (Promitente Comprador)", 0.3},
	{"Protocolo Registro de Propriedade", 0.2},
}

var juridicalDocs = []struct {
	Name    string
	Applies float64
}{
	{"CNPJ - Comprovante de Inscrição", 1},
	{"Contrato Social ou Estatuto Social", 1},
	{"Alterações Contratuais", 0.6},
	{"Certidão Simplificada - Junta Comercial", 1},
	{"CND/CPEND - RFB e PGFN", 1},
	{"Certidão de Regularidade FGTS", 1},
	{"Escritura Pública (Promitente Comprador)", 0.3},
	{"Protocolo Registro de Propriedade", 0.2},
}
