package form

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Values flattens a struct with string fields into its JSON-tagged field
// map.
func Values(v any) (map[string]string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding form values: %w", err)
	}
	out := make(map[string]string)
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decoding form values: %w", err)
	}
	return out, nil
}

// Decode fills dst from a field map, the inverse of Values.
func Decode(values map[string]string, dst any) error {
	b, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encoding form values: %w", err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("decoding form values: %w", err)
	}
	return nil
}

// Trim returns a copy of values with surrounding whitespace removed, the
// form Validate checks and the one that should be stored.
func Trim(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = strings.TrimSpace(v)
	}
	return out
}
