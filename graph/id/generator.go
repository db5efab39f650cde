package id

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Deterministic creates a content-addressable ID from a prefix and
// identifying parts.
//
// ID Generation Algorithm:
//  1. Build a canonical string: prefix:part1=val1|part2=val2 (sorted keys)
//  2. Normalize values: strings byte-exact (map keys are case-sensitive),
//     integers as decimal, complex values as JSON
//  3. SHA-256 hash the canonical string
//  4. Base64url encode the first 12 bytes (no padding)
//  5. Return {prefix}:{encoded}
//
// The same prefix and parts always produce the same ID.
func Deterministic(prefix string, parts map[string]any) string {
	keys := make([]string, 0, len(parts))
	for k := range parts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, normalizeValue(parts[k])))
	}

	canonical := fmt.Sprintf("%s:%s", prefix, strings.Join(pairs, "|"))
	hash := sha256.Sum256([]byte(canonical))
	encoded := base64.RawURLEncoding.EncodeToString(hash[:12])
	return fmt.Sprintf("%s:%s", prefix, encoded)
}

// Random creates a fresh uuid-backed ID under the given prefix.
func Random(prefix string) string {
	return fmt.Sprintf("%s:%s", prefix, uuid.NewString())
}

// normalizeValue converts a part value to its canonical string
// representation: strings byte-exact, integers as decimal, floats with six
// decimal places, nil as "null", and anything else as JSON.
func normalizeValue(val any) string {
	if val == nil {
		return "null"
	}
	switch v := val.(type) {
	case string:
		return v
	case int:
		return fmt.Sprintf("%d", v)
	case int32:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case uint:
		return fmt.Sprintf("%d", v)
	case uint32:
		return fmt.Sprintf("%d", v)
	case uint64:
		return fmt.Sprintf("%d", v)
	case float32:
		return fmt.Sprintf("%.6f", v)
	case float64:
		return fmt.Sprintf("%.6f", v)
	case bool:
		if v {
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
