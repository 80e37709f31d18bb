package edital

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Empty is what an unset value renders as.
const Empty = "—"

var brl = message.NewPrinter(language.BrazilianPortuguese)

// FormatValue renders value the way it is inserted into the document for a
// field of type tipo.
func FormatValue(tipo string, value any) string {
	if value == nil {
		return Empty
	}
	if s, ok := value.(string); ok && s == "" {
		return Empty
	}

	switch normalizeType(tipo) {
	case "money":
		return "R$ " + brl.Sprintf("%.2f", number(value))
	case "percent":
		return strconv.FormatFloat(number(value), 'f', -1, 64) + "%"
	}
	if b, ok := value.(bool); ok {
		if b {
			return "Sim"
		}
		return "Não"
	}
	if s, ok := value.(string); ok && normalizeType(tipo) == "date" && strings.Contains(s, "-") {
		if parts := strings.Split(s, "-"); len(parts) == 3 {
			return parts[2] + "/" + parts[1] + "/" + parts[0]
		}
	}
	return text(value)
}

// number coerces a form value to a float; anything unparsable is zero.
func number(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		f, _ = n.Float64()
	case string:
		f, _ = strconv.ParseFloat(strings.TrimSpace(n), 64)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func text(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
