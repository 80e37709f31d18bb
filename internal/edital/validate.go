package edital

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/encoding/jsonschema"

	"github.com/matthewbaird/silic/internal/form"
)

// ErrUnknownSection is returned when validating a section id that the form
// does not declare.
var ErrUnknownSection = errors.New("unknown section")

// Validator checks section data against the section's JSON schema. Schemas
// are compiled to CUE once, up front.
type Validator struct {
	mu      sync.Mutex
	ctx     *cue.Context
	schemas map[string]cue.Value
	fields  map[string][]string
}

// NewValidator compiles every section schema of a.
func NewValidator(a *Adapted) (*Validator, error) {
	v := &Validator{
		ctx:     cuecontext.New(),
		schemas: make(map[string]cue.Value, len(a.Sections)),
		fields:  make(map[string][]string, len(a.Sections)),
	}
	for _, s := range a.Sections {
		raw, err := json.Marshal(s.Schema)
		if err != nil {
			return nil, fmt.Errorf("encoding schema of section %s: %w", s.ID, err)
		}
		src := v.ctx.CompileBytes(raw)
		if err := src.Err(); err != nil {
			return nil, fmt.Errorf("compiling schema of section %s: %w", s.ID, err)
		}
		file, err := jsonschema.Extract(src, &jsonschema.Config{})
		if err != nil {
			return nil, fmt.Errorf("extracting schema of section %s: %w", s.ID, err)
		}
		schema := v.ctx.BuildFile(file)
		if err := schema.Err(); err != nil {
			return nil, fmt.Errorf("building schema of section %s: %w", s.ID, err)
		}
		v.schemas[s.ID] = schema
		v.fields[s.ID] = s.FieldIDs
	}
	return v, nil
}

// Validate checks the fields of data that belong to section id. Other keys
// are ignored. Failures come back as a *form.ValidationError keyed by field
// id.
func (v *Validator) Validate(id string, data map[string]any) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	schema, ok := v.schemas[id]
	if !ok {
		return fmt.Errorf("validating section %s: %w", id, ErrUnknownSection)
	}
	subset := make(map[string]any)
	for _, f := range v.fields[id] {
		if val, ok := data[f]; ok && val != nil {
			subset[f] = val
		}
	}
	raw, err := json.Marshal(subset)
	if err != nil {
		return fmt.Errorf("encoding section %s: %w", id, err)
	}
	doc := v.ctx.CompileBytes(raw)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("compiling section %s: %w", id, err)
	}

	err = schema.Unify(doc).Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}
	verr := &form.ValidationError{Fields: make(map[string]string)}
	for _, e := range cueerrors.Errors(err) {
		key := id
		if p := e.Path(); len(p) > 0 {
			key = p[0]
		}
		if _, seen := verr.Fields[key]; seen {
			continue
		}
		format, args := e.Msg()
		verr.Fields[key] = fmt.Sprintf(format, args...)
	}
	return verr
}
