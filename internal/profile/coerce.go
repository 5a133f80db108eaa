package profile

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

func coerceBool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		lower := strings.ToLower(strings.TrimSpace(val))
		return lower == "true" || lower == "yes"
	case float64:
		return val != 0
	case int:
		return val != 0
	default:
		return false
	}
}

// coerceFloat returns NaN when v carries no usable number.
func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case int32:
		return float64(val)
	case uint:
		return float64(val)
	case uint64:
		return float64(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}

// coerceMap accepts both decoded JSON (map[string]any) and YAML (map[any]any) objects.
func coerceMap(v any) map[string]any {
	switch val := v.(type) {
	case map[string]any:
		return val
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[coerceString(k)] = item
		}
		return out
	default:
		return nil
	}
}

// firstYears returns the first finite non-negative number among values.
func firstYears(values ...any) (float64, bool) {
	for _, v := range values {
		if m := coerceMap(v); m != nil {
			v = m["years"]
		}
		f := coerceFloat(v)
		if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
			continue
		}
		return f, true
	}
	return 0, false
}

// coerceLocation flattens "City, ST" strings and {city, state} objects.
func coerceLocation(v any) string {
	if m := coerceMap(v); m != nil {
		parts := make([]string, 0, 2)
		for _, key := range []string{"city", "state"} {
			if s := coerceString(m[key]); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	}
	if s, ok := v.(string); ok {
		return strings.Trim(strings.TrimSpace(s), ", ")
	}
	return ""
}
