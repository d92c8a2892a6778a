package settings

import (
	"slices"

	"github.com/valderan/docker-simple-manager/internal/validator"
)

// Diff lists the keys whose values differ between two documents, as
// changes from before to after. Group payloads are compared key by key;
// other top-level fields are reported with an empty Group. Keys missing on
// one side appear with a nil value on that side.
func Diff(before, after Document) []Change {
	var changes []Change
	for _, top := range unionKeys(before, after) {
		b, bOK := before[top].(map[string]any)
		a, aOK := after[top].(map[string]any)
		if bOK && aOK {
			for _, key := range unionKeys(b, a) {
				if !validator.Equal(b[key], a[key]) {
					changes = append(changes, Change{Group: top, Key: key, Old: b[key], New: a[key]})
				}
			}
			continue
		}
		if !validator.Equal(before[top], after[top]) {
			changes = append(changes, Change{Key: top, Old: before[top], New: after[top]})
		}
	}
	return changes
}

func unionKeys[M ~map[string]any](a, b M) []string {
	keys := make([]string, 0, len(a)+len(b))
	for k := range a {
		keys = append(keys, k)
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}
