// cmd/gendata writes a generated catalog in SAP export shape, the same file
// the server reads from DATA_PATH.
//
//	go run ./cmd/gendata -count 250 -seed 7 -out dados-sap.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/matthewbaird/silic/internal/mock"
	"github.com/matthewbaird/silic/internal/sapdata"
	"github.com/matthewbaird/silic/internal/types"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("gendata: ")

	count := flag.Int("count", mock.DefaultCount, "number of properties")
	seed := flag.Uint64("seed", 1, "generator seed")
	policy := flag.String("policy", string(types.PolicyStrict), "landlord policy: strict, lenient or none")
	out := flag.String("out", "-", "output file, - for stdout")
	flag.Parse()

	p := types.LandlordPolicy(*policy)
	if !p.Valid() {
		log.Fatalf("unknown policy %q", *policy)
	}

	ds := mock.New(*seed, p).Dataset(*count)
	export, dropped := sapdata.FromDataset(ds)
	if dropped > 0 {
		log.Printf("%d extra landlords left out, the export carries one per property", dropped)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		log.Fatalf("encoding export: %v", err)
	}
	data = append(data, '\n')

	if *out == "-" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatalf("writing %s: %v", *out, err)
	}
	fmt.Printf("wrote %d properties and %d landlords to %s\n",
		len(export.Properties), len(export.Landlords), *out)
}
