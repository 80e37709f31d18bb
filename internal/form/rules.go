// Package form holds the declarative field validators shared by every tab
// of the property detail modal and by the manual add form.
package form

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

// DateLayout is the DD/MM/YYYY layout used by every date field.
const DateLayout = "02/01/2006"

// Rule validates one field. Empty values only fail when Required is set;
// otherwise Pattern and Check run against non-empty values.
type Rule struct {
	Field    string
	Label    string
	Required bool
	Pattern  *regexp.Regexp
	Check    func(string) bool
	Message  string
}

// Table is an ordered list of rules, one per field of a form.
type Table []Rule

// Fields returns the field names of the table in order.
func (t Table) Fields() []string {
	out := make([]string, len(t))
	for i, r := range t {
		out[i] = r.Field
	}
	return out
}

// Validate runs every rule against values and returns nil when all pass.
// Unknown keys in values are ignored.
func (t Table) Validate(values map[string]string) *ValidationError {
	var verr *ValidationError
	for _, r := range t {
		if msg := r.check(strings.TrimSpace(values[r.Field])); msg != "" {
			if verr == nil {
				verr = &ValidationError{Fields: make(map[string]string)}
			}
			verr.Fields[r.Field] = msg
		}
	}
	return verr
}

func (r Rule) check(v string) string {
	label := r.Label
	if label == "" {
		label = r.Field
	}
	if v == "" {
		if r.Required {
			return label + " é obrigatório"
		}
		return ""
	}
	if r.Pattern != nil && !r.Pattern.MatchString(v) {
		return r.message(label)
	}
	if r.Check != nil && !r.Check(v) {
		return r.message(label)
	}
	return ""
}

func (r Rule) message(label string) string {
	if r.Message != "" {
		return r.Message
	}
	return label + " inválido"
}

// ValidationError lists the invalid fields of a form with a message each.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid fields: %s", strings.Join(names, ", "))
}

// Has reports whether field was marked invalid.
func (e *ValidationError) Has(field string) bool {
	_, ok := e.Fields[field]
	return ok
}

// ValidDate reports whether s is a real calendar day in DD/MM/YYYY.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ParseDate parses a DD/MM/YYYY date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}
