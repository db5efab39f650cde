package graph

import (
	"encoding/json"
	"fmt"
	"strings"
)

// canonicalString converts an opaque value to a stable string form. It is the
// comparison key used by the no_duplicates rule, mapping-table lookups, and
// the property index.
//
// Normalization rules:
//   - nil: "null"
//   - string: as-is
//   - signed/unsigned integers: decimal
//   - floats: "%.6f"
//   - bool: "true" / "false"
//   - anything else (maps, slices, structs): JSON, falling back to %v when
//     the value is not marshalable
func canonicalString(v any) string {
	if v == nil {
		return "null"
	}

	switch val := v.(type) {
	case string:
		return val
	case int:
		return fmt.Sprintf("%d", val)
	case int8:
		return fmt.Sprintf("%d", val)
	case int16:
		return fmt.Sprintf("%d", val)
	case int32:
		return fmt.Sprintf("%d", val)
	case int64:
		return fmt.Sprintf("%d", val)
	case uint:
		return fmt.Sprintf("%d", val)
	case uint8:
		return fmt.Sprintf("%d", val)
	case uint16:
		return fmt.Sprintf("%d", val)
	case uint32:
		return fmt.Sprintf("%d", val)
	case uint64:
		return fmt.Sprintf("%d", val)
	case float32:
		return fmt.Sprintf("%.6f", val)
	case float64:
		return fmt.Sprintf("%.6f", val)
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}

// toFloat reports v as a float64 when it carries any numeric Go type.
func toFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	case float32:
		return float64(val), true
	case float64:
		return val, true
	default:
		return 0, false
	}
}

// CompareValues orders two opaque values: numerically when both are numeric,
// otherwise by canonical string form. It is the natural order used by the
// ordering rule when no comparator is supplied.
func CompareValues(a, b any) int {
	fa, aok := toFloat(a)
	fb, bok := toFloat(b)
	if aok && bok {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(canonicalString(a), canonicalString(b))
}

// valuesEqual reports whether two opaque values compare equal under the
// canonical string form.
func valuesEqual(a, b any) bool {
	return canonicalString(a) == canonicalString(b)
}
