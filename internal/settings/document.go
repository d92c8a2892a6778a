package settings

import (
	"maps"
	"slices"

	"github.com/valderan/docker-simple-manager/internal/codec"
)

// Reserved top-level document fields. They are metadata, owned by no group.
const (
	VersionKey       = "version"
	SchemaVersionKey = "schema_version"
)

// Document is the untyped top-level mapping mirroring the on-disk shape:
// metadata fields plus one mapping per group.
type Document map[string]any

// Clone returns a deep copy of d.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	return Document(deepCopy(map[string]any(d)).(map[string]any))
}

// Keys returns the top-level keys in sorted order.
func (d Document) Keys() []string {
	return slices.Sorted(maps.Keys(d))
}

// merge overlays incoming onto base one level deep: when both sides hold a
// mapping under the same key the mappings are merged with incoming winning,
// otherwise incoming replaces the base value. base is modified and returned.
func merge(base, incoming Document) Document {
	for k, v := range incoming {
		in, inMap := v.(map[string]any)
		cur, curMap := base[k].(map[string]any)
		if inMap && curMap {
			for ik, iv := range in {
				cur[ik] = deepCopy(iv)
			}
			continue
		}
		base[k] = deepCopy(v)
	}
	return base
}

// deepCopy copies the container types a document can hold. Scalars are
// returned as is.
func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = deepCopy(val)
		}
		return out
	case Document:
		return deepCopy(map[string]any(t))
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = deepCopy(val)
		}
		return out
	case []string:
		return slices.Clone(t)
	default:
		return v
	}
}

// normalize brings a caller-supplied value into the form decoded documents
// use, so a value set in memory compares equal to the same value after a
// save and load.
func normalize(v any) any {
	switch t := v.(type) {
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(t))
		for k, s := range t {
			out[k] = s
		}
		return out
	case map[string]int:
		out := make(map[string]any, len(t))
		for k, n := range t {
			out[k] = n
		}
		return out
	case Document:
		return codec.Normalize(map[string]any(t))
	default:
		return codec.Normalize(v)
	}
}
