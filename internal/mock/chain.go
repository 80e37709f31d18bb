package mock

import (
	"fmt"
	"log"
	"time"

	"github.com/matthewbaird/silic/internal/types"
)

// LandlordFunc generates landlords for a set of properties.
type LandlordFunc func(props []types.Property) ([]types.Landlord, error)

// Tier is one named step of a degrade chain.
type Tier struct {
	Name string
	Fn   LandlordFunc
}

// Chain runs each tier in order and returns the landlords of the first one
// that succeeds with a non-empty result. Failures and panics are logged and
// the next tier is tried. When every tier fails the result is empty; Chain
// never returns an error.
func Chain(props []types.Property, tiers ...Tier) []types.Landlord {
	if len(props) == 0 {
		return nil
	}
	for _, t := range tiers {
		out, err := runTier(t, props)
		if err != nil {
			log.Printf("mock: %s landlord generator failed: %v", t.Name, err)
			continue
		}
		if len(out) == 0 {
			log.Printf("mock: %s landlord generator produced no landlords", t.Name)
			continue
		}
		return out
	}
	log.Printf("mock: every landlord generator failed, continuing with none")
	return nil
}

func runTier(t Tier, props []types.Property) (out []types.Landlord, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return t.Fn(props)
}

// Tiers returns the generator's primary, fallback and last-resort landlord
// generators.
func (g *Generator) Tiers() []Tier {
	return []Tier{
		{Name: "primary", Fn: g.Landlords},
		{Name: "fallback", Fn: g.SimpleLandlords},
		{Name: "basic", Fn: g.BasicLandlords},
	}
}

// Dataset generates a complete demo dataset of count properties. An
// invalid count falls back to DefaultCount.
func (g *Generator) Dataset(count int) types.Dataset {
	props, err := g.Properties(count)
	if err != nil {
		log.Printf("mock: %v, generating %d properties instead", err, DefaultCount)
		props, _ = g.Properties(DefaultCount)
	}
	landlords := Chain(props, g.Tiers()...)
	log.Printf("mock: generated %d properties, %d landlords (policy %s)", len(props), len(landlords), g.policy)
	return types.Dataset{
		Properties:  props,
		Landlords:   landlords,
		Source:      "generator",
		GeneratedAt: time.Now().UTC(),
	}
}
