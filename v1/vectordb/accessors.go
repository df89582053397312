package vectordb

import (
	"fmt"
	"strconv"
)

// FieldAccessor reads one value out of a search result.
type FieldAccessor func(SearchResult) (any, bool)

// PayloadField reads payload[key].
func PayloadField(key string) FieldAccessor {
	return func(r SearchResult) (any, bool) {
		v, ok := r.Payload[key]
		if !ok || v == nil {
			return nil, false
		}
		return v, true
	}
}

// PointID reads the point id.
func PointID() FieldAccessor {
	return func(r SearchResult) (any, bool) {
		if r.ID == "" {
			return nil, false
		}
		return r.ID, true
	}
}

// Older collections used other payload names for the same data. Each list is
// tried in order and the first key that yields a value wins.
var (
	ChunkNumberKeys = []string{FieldChunkNumber, "chunk_id", "id_chunk"}
	OwningIDKeys    = []string{FieldOwningID, "requirement_id"}
	TextKeys        = []string{FieldText, "content"}
)

var (
	ChunkNumberAccessors = payloadFields(ChunkNumberKeys)
	OwningIDAccessors    = payloadFields(OwningIDKeys)
	TextAccessors        = payloadFields(TextKeys)
)

// PayloadKeys lists every payload key read by the accessor lists. A payload
// selector built from it never hides a fallback name.
func PayloadKeys() []string {
	keys := make([]string, 0, len(ChunkNumberKeys)+len(OwningIDKeys)+len(TextKeys))
	keys = append(keys, ChunkNumberKeys...)
	keys = append(keys, TextKeys...)
	keys = append(keys, OwningIDKeys...)
	return keys
}

func payloadFields(keys []string) []FieldAccessor {
	out := make([]FieldAccessor, len(keys))
	for i, k := range keys {
		out[i] = PayloadField(k)
	}
	return out
}

// Lookup returns the first value produced by accessors.
func Lookup(r SearchResult, accessors ...FieldAccessor) (any, bool) {
	for _, a := range accessors {
		if v, ok := a(r); ok {
			return v, true
		}
	}
	return nil, false
}

// LookupInt is Lookup converted to int64. Values that are not integral are skipped.
func LookupInt(r SearchResult, accessors ...FieldAccessor) (int64, bool) {
	for _, a := range accessors {
		v, ok := a(r)
		if !ok {
			continue
		}
		if n, ok := toInt64(v); ok {
			return n, true
		}
	}
	return 0, false
}

// LookupString is Lookup rendered as a string.
func LookupString(r SearchResult, accessors ...FieldAccessor) (string, bool) {
	v, ok := Lookup(r, accessors...)
	if !ok {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprint(v), true
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	case float64:
		if n != float64(int64(n)) {
			return 0, false
		}
		return int64(n), true
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		return i, err == nil
	default:
		return 0, false
	}
}
