// README: Schemaless catalog record and tolerant field accessors.
package catalog

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Record is one document of a catalog collection. Data holds the raw fields
// exactly as the backing store returned them.
type Record struct {
	ID   string
	Data map[string]any
}

func (r Record) Raw(key string) any {
	if r.Data == nil {
		return nil
	}
	return r.Data[key]
}

// Has reports whether any of keys is present with a non-nil value.
func (r Record) Has(keys ...string) bool {
	for _, k := range keys {
		if r.Raw(k) != nil {
			return true
		}
	}
	return false
}

// String returns the first non-empty string among keys.
func (r Record) String(keys ...string) string {
	for _, k := range keys {
		if s, ok := r.Raw(k).(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}

// Float returns the first numeric value among keys. Numbers stored as text
// by older clients are accepted.
func (r Record) Float(keys ...string) (float64, bool) {
	for _, k := range keys {
		if f, ok := toFloat(r.Raw(k)); ok {
			return f, true
		}
	}
	return 0, false
}

// Bool returns the flag stored at key, or def when absent or unparseable.
func (r Record) Bool(key string, def bool) bool {
	switch v := r.Raw(key).(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return def
}

// Time decodes instants written as time.Time, RFC3339 or date text, epoch
// milliseconds, or a {seconds, nanoseconds} map.
func (r Record) Time(key string) (time.Time, bool) {
	return toTime(r.Raw(key))
}

// List returns the slice stored at key, or nil.
func (r Record) List(key string) []any {
	switch v := r.Raw(key).(type) {
	case []any:
		return v
	case []map[string]any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out
	case []string:
		out := make([]any, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out
	}
	return nil
}

// toFloat reads a finite number. NaN and infinities, including their text
// spellings, are treated as absent.
func toFloat(v any) (float64, bool) {
	f, ok := rawFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func rawFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	return 0, false
}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04", "2006-01-02"}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil || t.IsZero() {
			return time.Time{}, false
		}
		return *t, true
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
	case map[string]any:
		secs, ok := toFloat(t["seconds"])
		if !ok {
			secs, ok = toFloat(t["_seconds"])
		}
		if !ok {
			return time.Time{}, false
		}
		nanos, _ := toFloat(t["nanoseconds"])
		if nanos == 0 {
			nanos, _ = toFloat(t["_nanoseconds"])
		}
		return time.Unix(int64(secs), int64(nanos)).UTC(), true
	default:
		if ms, ok := toFloat(v); ok {
			return time.UnixMilli(int64(ms)).UTC(), true
		}
	}
	return time.Time{}, false
}
