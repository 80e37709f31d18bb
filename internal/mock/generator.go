// Package mock generates synthetic catalog data: properties with a fixed
// status distribution and landlords with valid CPF/CNPJ documents.
package mock

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/matthewbaird/silic/internal/types"
	"github.com/matthewbaird/silic/internal/utils"
)

// DefaultCount is the number of properties in a demo dataset.
const DefaultCount = 100

// statusWeights is the share, in percent, of each status in a generated
// dataset, in the order of types.PropertyStatuses.
var statusWeights = []int{65, 15, 10, 8, 2}

// namespace seeds the deterministic UUIDs of generated records.
var namespace = uuid.MustParse("6f1c1f0e-3c1d-4c36-9a55-5a1c1d0e2000")

// Generator produces synthetic properties and landlords. A Generator is
// not safe for concurrent use.
type Generator struct {
	rng    *rand.Rand
	policy types.LandlordPolicy
	now    time.Time
}

// New returns a Generator seeded with seed. The same seed and policy
// always yield the same dataset.
func New(seed uint64, policy types.LandlordPolicy) *Generator {
	if !policy.Valid() {
		policy = types.PolicyStrict
	}
	return &Generator{
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		policy: policy,
		now:    time.Now().UTC().Truncate(time.Second),
	}
}

// Policy returns the landlord policy the generator honours.
func (g *Generator) Policy() types.LandlordPolicy { return g.policy }

// Distribution splits count across the five statuses following the
// 65/15/10/8/2 proportion. Counts other than 100 are rounded with the
// largest remainder method so the parts always sum to count.
func Distribution(count int) []int {
	out := make([]int, len(statusWeights))
	if count <= 0 {
		return out
	}
	type rem struct{ idx, frac int }
	rems := make([]rem, len(statusWeights))
	assigned := 0
	for i, w := range statusWeights {
		out[i] = count * w / 100
		rems[i] = rem{i, count * w % 100}
		assigned += out[i]
	}
	// Stable selection: larger remainder first, earlier status on ties.
	for assigned < count {
		best := -1
		for i, r := range rems {
			if r.frac < 0 {
				continue
			}
			if best < 0 || r.frac > rems[best].frac {
				best = i
			}
		}
		out[rems[best].idx]++
		rems[best].frac = -1
		assigned++
	}
	return out
}

// Properties generates exactly count properties. Codes run from 20000001
// upward in generation order.
func (g *Generator) Properties(count int) ([]types.Property, error) {
	if count < 0 {
		return nil, fmt.Errorf("count must be >= 0, got %d", count)
	}
	if count > 9999 {
		return nil, fmt.Errorf("count %d exceeds the 4-digit code range", count)
	}
	props := make([]types.Property, 0, count)
	seq := 1
	for i, n := range Distribution(count) {
		status := types.PropertyStatuses[i]
		for j := 0; j < n; j++ {
			props = append(props, g.property(seq, status))
			seq++
		}
	}
	return props, nil
}

func (g *Generator) property(seq int, status types.PropertyStatus) types.Property {
	c := pick(g.rng, cities)
	code := fmt.Sprintf("2000%04d", seq)
	p := types.Property{
		ID:           uuid.NewSHA1(namespace, []byte("imovel:"+code)).String(),
		Code:         code,
		Denomination: fmt.Sprintf("ED - CAIXA %s %s, %s", c.Name, pick(g.rng, complements), c.UF),
		Address:      g.street(),
		Neighborhood: pick(g.rng, neighborhood),
		City:         c.Name,
		State:        c.UF,
		PostalCode:   g.cep(),
		Status:       status,
		Validity:     types.DateRange{Start: g.date("2022-01-01", "2023-12-31")},
		IPTU:         g.iptu(),
		Documents:    g.checklist(propertyDocs, propertyDocStatus),
		CreatedAt:    g.now,
	}
	if status == types.StatusDeactivated || status == types.StatusDemobilizing {
		end := g.date("2023-06-01", "2024-12-31")
		p.Validity.End = &end
	}
	if g.rng.Float64() > 0.8 {
		p.ITR = fmt.Sprintf("%010d", g.rng.Int64N(10_000_000_000))
	}
	return p
}

// Landlords is the primary landlord generator. Properties whose status the
// policy requires get one or two landlords; the others get zero or one.
// Every third landlord is a legal entity.
func (g *Generator) Landlords(props []types.Property) ([]types.Landlord, error) {
	var out []types.Landlord
	for _, p := range props {
		var n int
		switch {
		case g.policy.Requires(p.Status):
			n = 1 + g.rng.IntN(4)/3
		case p.Status == types.StatusDeactivated:
		default:
			n = g.rng.IntN(3) / 2
		}
		for k := 0; k < n; k++ {
			seq := len(out) + 1
			out = append(out, g.landlord(seq, p, seq%3 == 0))
		}
	}
	if missing := Violations(props, out, g.policy); len(missing) > 0 {
		return nil, fmt.Errorf("%d properties left without a required landlord", len(missing))
	}
	return out, nil
}

func (g *Generator) landlord(seq int, p types.Property, juridical bool) types.Landlord {
	c := pick(g.rng, cities)
	l := types.Landlord{
		ID:         uuid.NewSHA1(namespace, []byte(fmt.Sprintf("locador:%s:%d", p.Code, seq))).String(),
		PropertyID: p.ID,
		Address: types.Address{
			Street:       g.street(),
			Neighborhood: pick(g.rng, neighborhood),
			City:         c.Name,
			State:        c.UF,
			PostalCode:   g.cep(),
		},
		Phone:    fmt.Sprintf("(%s) 9%04d-%04d", c.DDD, g.rng.IntN(10000), g.rng.IntN(10000)),
		LinkedAt: g.date("2020-01-01", "2024-06-30"),
		Notes:    "Locador do imóvel " + p.Code,
	}
	if juridical {
		l.Type = types.LandlordJuridical
		l.Name = pick(g.rng, companyNames)
		l.Document = utils.GenerateCNPJ(g.rng)
		l.Documents = g.checklist(juridicalDocs, landlordDocStatus)
		if g.rng.IntN(2) == 0 {
			rep := pick(g.rng, naturalNames)
			l.Representative = &types.LegalRepresentative{
				Name:     rep,
				Document: utils.GenerateCPF(g.rng),
				Email:    emailFor(rep, "representante.com.br"),
			}
			l.Documents["Ata de Assembleia - Designação de Representante"] = landlordDocStatus(g.rng)
			l.Documents["Procuração do Representante Legal"] = landlordDocStatus(g.rng)
		}
	} else {
		l.Type = types.LandlordNatural
		l.Name = pick(g.rng, naturalNames)
		l.Document = utils.GenerateCPF(g.rng)
		l.Documents = g.checklist(naturalDocs, landlordDocStatus)
		l.HasSpouse = g.rng.Float64() < 0.3
		l.LongContract = g.rng.Float64() < 0.2
		if l.HasSpouse {
			l.Documents["RG do Cônjuge"] = landlordDocStatus(g.rng)
			l.Documents["CPF do Cônjuge"] = landlordDocStatus(g.rng)
		}
		if l.LongContract {
			l.Documents["Certidão de Regularidade FGTS"] = landlordDocStatus(g.rng)
			l.Documents["Declaração de Bens e Direitos"] = landlordDocStatus(g.rng)
		}
	}
	l.Email = emailFor(l.Name, "email.com.br")
	return l
}

// SimpleLandlords is the fallback generator: one landlord per property the
// policy requires (per active property under PolicyNone), every third one
// a legal entity, with a short checklist.
func (g *Generator) SimpleLandlords(props []types.Property) ([]types.Landlord, error) {
	var out []types.Landlord
	for i, p := range props {
		need := g.policy.Requires(p.Status)
		if g.policy == types.PolicyNone {
			need = p.Status == types.StatusActive
		}
		if !need {
			continue
		}
		id := i + 1
		l := types.Landlord{
			ID:         uuid.NewSHA1(namespace, []byte(fmt.Sprintf("locador-simples:%s", p.Code))).String(),
			PropertyID: p.ID,
			Email:      fmt.Sprintf("locador%d@email.com", id),
			Phone:      fmt.Sprintf("(11) 9%04d-%04d", g.rng.IntN(10000), g.rng.IntN(10000)),
			Address:    types.Address{Street: fmt.Sprintf("Rua das Flores, %d", id*10), City: "São Paulo", State: "SP", PostalCode: "01234-567"},
			LinkedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Notes:      "Locador do imóvel " + p.Code,
		}
		if id%3 == 0 {
			l.Type, l.Name, l.Document = types.LandlordJuridical, fmt.Sprintf("Empresa Locadora %d Ltda", id), utils.GenerateCNPJ(g.rng)
		} else {
			l.Type, l.Name, l.Document = types.LandlordNatural, fmt.Sprintf("João Silva Santos %d", id), utils.GenerateCPF(g.rng)
		}
		l.Documents = types.Checklist{
			"CPF":                  types.Doc(types.DocDelivered),
			"RG":                   types.Doc(types.DocDelivered),
			"Comprovante de Renda": types.Doc(types.DocPending),
		}
		out = append(out, l)
	}
	if len(out) == 0 && len(props) > 0 {
		return nil, errors.New("no property qualifies for a landlord")
	}
	return out, nil
}

// BasicLandlords is the last-resort generator: one landlord for each of
// the first min(50, len(props)) properties, one in four a legal entity.
func (g *Generator) BasicLandlords(props []types.Property) ([]types.Landlord, error) {
	n := min(50, len(props))
	out := make([]types.Landlord, 0, n)
	for i := 0; i < n; i++ {
		id := i + 1
		l := types.Landlord{
			ID:         uuid.NewSHA1(namespace, []byte(fmt.Sprintf("locador-basico:%d", id))).String(),
			PropertyID: props[i].ID,
			Email:      fmt.Sprintf("locador%d@email.com", id),
			Phone:      fmt.Sprintf("(11) 99999-%04d", id),
			Address:    types.Address{Street: fmt.Sprintf("Rua Básica, %d", id*100), City: "São Paulo", State: "SP", PostalCode: "01234-567"},
			LinkedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Notes:      "Locador gerado automaticamente (fallback)",
			Documents: types.Checklist{
				"CPF":                  types.Doc(types.DocDelivered),
				"RG":                   types.Doc(types.DocDelivered),
				"Comprovante de Renda": types.Doc(types.DocDelivered),
			},
		}
		if i%4 == 0 {
			l.Type, l.Name, l.Document = types.LandlordJuridical, fmt.Sprintf("Empresa %d Ltda", id), utils.GenerateCNPJ(g.rng)
		} else {
			l.Type, l.Name, l.Document = types.LandlordNatural, fmt.Sprintf("João Silva %d", id), utils.GenerateCPF(g.rng)
		}
		out = append(out, l)
	}
	return out, nil
}

// Violations returns the codes of properties the policy requires to have a
// landlord but which have none in landlords.
func Violations(props []types.Property, landlords []types.Landlord, policy types.LandlordPolicy) []string {
	has := make(map[string]bool, len(landlords))
	for _, l := range landlords {
		has[l.PropertyID] = true
	}
	var out []string
	for _, p := range props {
		if policy.Requires(p.Status) && !has[p.ID] {
			out = append(out, p.Code)
		}
	}
	return out
}

func (g *Generator) checklist(docs []struct {
	Name    string
	Applies float64
}, status func(*rand.Rand) *types.DocumentStatus) types.Checklist {
	c := make(types.Checklist, len(docs))
	for _, d := range docs {
		if d.Applies < 1 && g.rng.Float64() >= d.Applies {
			c[d.Name] = nil
			continue
		}
		c[d.Name] = status(g.rng)
	}
	return c
}

// propertyDocStatus draws 75% delivered, 15% pending, 10% in review.
func propertyDocStatus(rng *rand.Rand) *types.DocumentStatus {
	switch r := rng.Float64(); {
	case r < 0.75:
		return types.Doc(types.DocDelivered)
	case r < 0.90:
		return types.Doc(types.DocPending)
	default:
		return types.Doc(types.DocInReview)
	}
}

// landlordDocStatus draws 70% delivered, 15% pending, 10% in review and
// 5% rejected.
func landlordDocStatus(rng *rand.Rand) *types.DocumentStatus {
	switch r := rng.Float64(); {
	case r < 0.70:
		return types.Doc(types.DocDelivered)
	case r < 0.85:
		return types.Doc(types.DocPending)
	case r < 0.95:
		return types.Doc(types.DocInReview)
	default:
		return types.Doc(types.DocRejected)
	}
}

func (g *Generator) street() string {
	return fmt.Sprintf("%s %s, %d", pick(g.rng, streetKinds), pick(g.rng, streetNames), 1+g.rng.IntN(9999))
}

func (g *Generator) cep() string {
	return fmt.Sprintf("%05d-%03d", g.rng.IntN(100000), g.rng.IntN(1000))
}

func (g *Generator) iptu() string {
	b := make([]byte, 3)
	for i := range b {
		b[i] = byte('A' + g.rng.IntN(26))
	}
	return fmt.Sprintf("%s%06d", b, g.rng.IntN(1000000))
}

// date returns a uniformly drawn day between from and to, both YYYY-MM-DD.
func (g *Generator) date(from, to string) time.Time {
	a, _ := time.Parse(time.DateOnly, from)
	b, _ := time.Parse(time.DateOnly, to)
	days := int(b.Sub(a).Hours() / 24)
	return a.AddDate(0, 0, g.rng.IntN(days+1))
}

func pick[T any](rng *rand.Rand, s []T) T { return s[rng.IntN(len(s))] }

// emailFor builds an ASCII mailbox from a display name.
func emailFor(name, domain string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, strings.ToLower(name))
	if err != nil {
		plain = strings.ToLower(name)
	}
	fields := strings.FieldsFunc(plain, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(fields) == 0 {
		return "contato@" + domain
	}
	local := fields[0]
	if len(fields) > 1 {
		local += "." + fields[len(fields)-1]
	}
	return local + "@" + domain
}
