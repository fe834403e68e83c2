package utils

import (
	"math"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// Record is a schema-loose upstream JSON object. Polymarket payloads rename and
// retype fields between endpoints, so every accessor takes a list of fallback keys.
type Record map[string]any

// Value returns the first present non-nil value among keys.
func (r Record) Value(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := r[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// Str returns the first non-blank string among keys. Numbers are formatted.
func (r Record) Str(keys ...string) string {
	for _, k := range keys {
		v, ok := r[k]
		if !ok || v == nil {
			continue
		}
		switch v.(type) {
		case map[string]any, []any:
			continue
		}
		s, err := cast.ToStringE(v)
		if err != nil {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}

// Float returns the first finite non-zero number among keys, 0 otherwise.
// Numeric strings are accepted; garbage reads as 0.
func (r Record) Float(keys ...string) float64 {
	for _, k := range keys {
		if f := ToFloat(r[k]); f != 0 {
			return f
		}
	}
	return 0
}

// Int is Float truncated towards zero.
func (r Record) Int(keys ...string) int64 {
	return int64(r.Float(keys...))
}

// Bool reports whether any of keys holds a truthy value.
func (r Record) Bool(keys ...string) bool {
	for _, k := range keys {
		if b, err := cast.ToBoolE(r[k]); err == nil && b {
			return true
		}
	}
	return false
}

// Obj returns the nested object stored under key, nil when absent or of another type.
func (r Record) Obj(key string) Record {
	if m, ok := r[key].(map[string]any); ok {
		return Record(m)
	}
	return nil
}

// List returns the nested array stored under key as records, skipping non-object items.
func (r Record) List(key string) []Record {
	return AsRecords(r[key])
}

// Keys returns the record keys in sorted order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AsRecords converts a decoded JSON array into records.
func AsRecords(v any) []Record {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]Record, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Record(m))
		}
	}
	return out
}

// ToFloat coerces any JSON scalar into a finite float64.
func ToFloat(v any) float64 {
	if v == nil {
		return 0
	}
	if s, ok := v.(string); ok {
		v = strings.TrimSpace(s)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0
	}
	return Finite(f)
}

// Finite maps NaN and ±Inf to 0.
func Finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
