// Package edital adapts the edital form description into per-section JSON
// schemas, derives mock values and chips for catalog-backed fields, validates
// section data and drives the drag-and-drop insertion of chips into the
// document text.
package edital

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
)

//go:embed default_schema.json
var defaultSchema []byte

// Field is one form field descriptor.
type Field struct {
	ID          string           `json:"id"`
	Label       string           `json:"label"`
	Type        string           `json:"tipo"`
	Origin      string           `json:"origem"`
	SilicPath   string           `json:"silic_path,omitempty"`
	Required    bool             `json:"obrigatorio,omitempty"`
	Derivation  string           `json:"derivacao,omitempty"`
	Tokens      []string         `json:"tokens_docx,omitempty"`
	Validations []string         `json:"validacoes,omitempty"`
	Rules       []map[string]any `json:"regras,omitempty"`
	// Example replaces the type's mock value. It must satisfy the field's
	// regex rule, if any.
	Example any `json:"exemplo,omitempty"`
}

// Group is a titled section of fields.
type Group struct {
	ID          string   `json:"id"`
	Title       string   `json:"titulo"`
	Fields      []Field  `json:"campos"`
	Validations []string `json:"validacoes_grupo,omitempty"`
}

// Form is the full form description.
type Form struct {
	SchemaVersion    string         `json:"schema_version"`
	Product          string         `json:"produto"`
	Artifact         string         `json:"artefato"`
	UI               map[string]any `json:"ui"`
	DragModes        []string       `json:"modos_insercao_drag_drop,omitempty"`
	DocumentStatuses []string       `json:"status_documento,omitempty"`
	Groups           []Group        `json:"grupos"`
	DetectedTokens   []string       `json:"tokens_docx_detectados,omitempty"`
}

// Parse decodes a form description, checks field ids are unique and that
// every example matches its field's regex rule.
func Parse(data []byte) (*Form, error) {
	var f Form
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding edital schema: %w", err)
	}
	seen := make(map[string]string)
	for _, g := range f.Groups {
		if g.ID == "" {
			return nil, fmt.Errorf("edital schema: group without id")
		}
		for _, c := range g.Fields {
			if c.ID == "" {
				return nil, fmt.Errorf("edital schema: field without id in group %s", g.ID)
			}
			if prev, dup := seen[c.ID]; dup {
				return nil, fmt.Errorf("edital schema: field %s declared in %s and %s", c.ID, prev, g.ID)
			}
			seen[c.ID] = g.ID
			if err := checkExample(c); err != nil {
				return nil, fmt.Errorf("edital schema: field %s: %w", c.ID, err)
			}
		}
	}
	return &f, nil
}

func checkExample(c Field) error {
	rule := regexRule(c.Validations)
	if rule == "" {
		return nil
	}
	re, err := regexp.Compile(rule)
	if err != nil {
		return fmt.Errorf("regex rule: %w", err)
	}
	if c.Example == nil {
		return nil
	}
	ex, ok := c.Example.(string)
	if !ok || !re.MatchString(ex) {
		return fmt.Errorf("example %v does not match %s", c.Example, rule)
	}
	return nil
}

// Default returns the built-in form description.
func Default() *Form {
	f, err := Parse(defaultSchema)
	if err != nil {
		panic(err)
	}
	return f
}

// LoadFile reads a form description from path. An empty path selects the
// built-in one.
func LoadFile(path string) (*Form, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading edital schema: %w", err)
	}
	return Parse(data)
}
