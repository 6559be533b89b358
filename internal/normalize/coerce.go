package normalize

import (
	"encoding/json"
	"strconv"
	"strings"
)

var currencyStripper = strings.NewReplacer(",", "", "$", "", "€", "", "£", "")

// ToNumber converts a value of unknown shape into a number. Numeric inputs
// pass through unchanged; strings are stripped of thousands separators and
// currency symbols before parsing. This is a lossy, best-effort conversion:
// model replies are not schema-guaranteed, so any parse failure yields 0.
func ToNumber(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		cleaned := strings.TrimSpace(currencyStripper.Replace(t))
		if strings.Contains(cleaned, ".") {
			f, err := strconv.ParseFloat(cleaned, 64)
			if err != nil {
				return 0
			}
			return f
		}
		n, err := strconv.ParseInt(cleaned, 10, 64)
		if err != nil {
			return 0
		}
		return float64(n)
	}
	return 0
}

// ToOptionalNumber is the absent-preserving variant used for quantity and
// unit price: nil, missing, and uncoercible values stay absent instead of
// collapsing to zero. Only numeric types and numeric-looking strings produce
// a value; anything else (bool, object, array) is uncoercible.
func ToOptionalNumber(v any) *float64 {
	switch t := v.(type) {
	case float64, float32, int, int64, json.Number:
		f := ToNumber(t)
		return &f
	case string:
		cleaned := strings.TrimSpace(currencyStripper.Replace(t))
		if cleaned == "" || strings.EqualFold(cleaned, "null") {
			return nil
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}
