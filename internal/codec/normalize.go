package codec

import (
	"encoding/json"
	"fmt"
	"math"
)

// maxExactInt bounds the integral floats Normalize turns into int; beyond it
// float64 no longer holds every integer exactly.
const maxExactInt = 1 << 53

// Normalize converts a decoded value into the canonical in-memory form.
// Numbers with no fractional part become int whatever their source type, so
// 1000.0 set in memory equals the 1000 read back from JSON.
func Normalize(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i)
		}
		if f, err := t.Float64(); err == nil {
			return Normalize(f)
		}
		return t.String()
	case int8:
		return int(t)
	case int16:
		return int(t)
	case int32:
		return int(t)
	case int64:
		return int(t)
	case uint8:
		return int(t)
	case uint16:
		return int(t)
	case uint32:
		return int(t)
	case uint64:
		if t > math.MaxInt64 {
			return float64(t)
		}
		return int(t)
	case uint:
		if t > math.MaxInt64 {
			return float64(t)
		}
		return int(t)
	case float32:
		return Normalize(float64(t))
	case float64:
		if t == math.Trunc(t) && math.Abs(t) <= maxExactInt {
			return int(t)
		}
		return t
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = Normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = Normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Normalize(val)
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Normalize(val)
		}
		return out
	default:
		return v
	}
}

// normalizeDocument normalizes the top level of a decoded document.
func normalizeDocument(doc map[string]any) map[string]any {
	if doc == nil {
		return map[string]any{}
	}
	return Normalize(doc).(map[string]any)
}
