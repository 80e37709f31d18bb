package edital

import (
	"slices"
	"strings"

	"github.com/matthewbaird/silic/internal/utils"
)

// Drag modes.
const (
	ModeToken = "inserir_variavel"
	ModeValue = "inserir_valor"
)

var defaultDragModes = []string{ModeToken, ModeValue}

const (
	cpfPattern  = `^\d{3}\.\d{3}\.\d{3}-\d{2}$`
	cnpjPattern = `^\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}$`
)

// Section is one sub-form: a JSON schema object, its UI hints and the ids
// of its fields in declaration order.
type Section struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Schema   map[string]any `json:"schema"`
	UISchema map[string]any `json:"uiSchema"`
	FieldIDs []string       `json:"fieldIds"`
}

// Chip is a draggable handle for a field that comes from the catalog.
type Chip struct {
	ID        string   `json:"id"`
	Label     string   `json:"label"`
	Origin    string   `json:"origin"`
	Tokens    []string `json:"tokens,omitempty"`
	SilicPath string   `json:"silicPath,omitempty"`
	MockValue any      `json:"mockValue"`
	Type      string   `json:"tipo"`
}

// Token returns the bracketed placeholder inserted in token mode.
func (c Chip) Token() string {
	if len(c.Tokens) > 0 && c.Tokens[0] != "" {
		return "[" + c.Tokens[0] + "]"
	}
	return "[" + c.ID + "]"
}

// Adapted is the form description turned into renderable sections.
type Adapted struct {
	Sections    []Section      `json:"sections"`
	InitialData map[string]any `json:"initialData"`
	Chips       []Chip         `json:"silicFields"`
	DragModes   []string       `json:"dragModes"`
	Raw         *Form          `json:"raw"`
}

// Adapt builds one schema per group, the initial data from mock values and
// the chip list.
func Adapt(f *Form) *Adapted {
	out := &Adapted{
		Sections:    make([]Section, 0, len(f.Groups)),
		InitialData: make(map[string]any),
		Chips:       []Chip{},
		Raw:         f,
	}
	for _, g := range f.Groups {
		properties := make(map[string]any)
		ui := make(map[string]any)
		var required []string
		ids := make([]string, 0, len(g.Fields))

		for _, c := range g.Fields {
			mock := MockValue(c)
			out.InitialData[c.ID] = mock
			properties[c.ID] = fieldSchema(c, mock)
			if c.Required {
				required = append(required, c.ID)
			}
			if hint := fieldUI(c); hint != nil {
				ui[c.ID] = hint
			}
			ids = append(ids, c.ID)

			if fromCatalog(c.Origin) {
				out.Chips = append(out.Chips, Chip{
					ID:        c.ID,
					Label:     c.Label,
					Origin:    c.Origin,
					Tokens:    c.Tokens,
					SilicPath: c.SilicPath,
					MockValue: mock,
					Type:      c.Type,
				})
			}
		}

		schema := map[string]any{"type": "object", "properties": properties}
		if len(required) > 0 {
			schema["required"] = required
		}
		out.Sections = append(out.Sections, Section{
			ID:       g.ID,
			Title:    g.Title,
			Schema:   schema,
			UISchema: ui,
			FieldIDs: ids,
		})
	}

	out.DragModes = f.DragModes
	if len(out.DragModes) == 0 {
		out.DragModes = defaultDragModes
	}
	return out
}

// Section looks a section up by id.
func (a *Adapted) Section(id string) (Section, bool) {
	for _, s := range a.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

// Chip looks a chip up by field id.
func (a *Adapted) Chip(id string) (Chip, bool) {
	for _, c := range a.Chips {
		if c.ID == id {
			return c, true
		}
	}
	return Chip{}, false
}

// DefaultMode is the first declared drag mode.
func (a *Adapted) DefaultMode() string {
	if len(a.DragModes) == 0 {
		return ModeToken
	}
	return a.DragModes[0]
}

func fromCatalog(origin string) bool {
	return slices.Contains(strings.Split(strings.ToLower(origin), "|"), "silic")
}

func normalizeType(tipo string) string {
	if tipo == "" {
		return "string"
	}
	return strings.ToLower(tipo)
}

// MockValue derives the placeholder value shown before the operator edits
// a field.
func MockValue(c Field) any {
	if c.Example != nil {
		return c.Example
	}
	label := c.Label
	if label == "" {
		label = c.ID
	}
	switch normalizeType(c.Type) {
	case "int":
		return 1
	case "money":
		return 1500.5
	case "percent":
		return 10
	case "boolean":
		return false
	case "date":
		return "2025-01-10"
	case "time":
		return "10:00"
	case "uf":
		return "DF"
	case "cpf":
		return "123.456.789-00"
	case "cnpj":
		return "12.345.678/0001-90"
	case "text":
		return "Texto para " + label
	}
	return label + " (mock)"
}

func jsonType(tipo string) string {
	switch tipo {
	case "int":
		return "integer"
	case "boolean":
		return "boolean"
	case "money", "percent":
		return "number"
	}
	return "string"
}

func fieldSchema(c Field, mock any) map[string]any {
	tipo := normalizeType(c.Type)
	title := c.Label
	if title == "" {
		title = c.ID
	}
	s := map[string]any{"type": jsonType(tipo), "title": title}
	if mock != nil {
		s["default"] = mock
	}

	switch tipo {
	case "date":
		s["format"] = "date"
	case "time":
		s["format"] = "time"
	case "money":
		s["minimum"] = 0
		s["multipleOf"] = 0.01
	case "percent":
		s["minimum"] = 0
		s["maximum"] = 100
		s["multipleOf"] = 0.01
	case "uf":
		codes := make([]string, len(utils.States))
		for i, st := range utils.States {
			codes[i] = st.Code
		}
		s["enum"] = codes
	case "cpf":
		s["pattern"] = cpfPattern
	case "cnpj":
		s["pattern"] = cnpjPattern
	}
	if re := regexRule(c.Validations); re != "" {
		s["pattern"] = re
	}
	return s
}

func regexRule(validations []string) string {
	for _, v := range validations {
		if re, ok := strings.CutPrefix(v, "regex:"); ok {
			return re
		}
	}
	return ""
}

func fieldUI(c Field) map[string]any {
	switch normalizeType(c.Type) {
	case "text":
		return map[string]any{
			"ui:widget":  "textarea",
			"ui:options": map[string]any{"rows": 5},
		}
	case "money", "percent":
		return map[string]any{
			"ui:widget":  "updown",
			"ui:options": map[string]any{"step": 0.01, "inputType": "number"},
		}
	case "int":
		return map[string]any{
			"ui:widget":  "updown",
			"ui:options": map[string]any{"step": 1, "inputType": "number"},
		}
	case "uf":
		names := make([]string, len(utils.States))
		for i, st := range utils.States {
			names[i] = st.Name
		}
		return map[string]any{"ui:enumNames": names}
	}
	return nil
}
