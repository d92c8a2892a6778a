package settings

import (
	"fmt"
	"maps"
	"slices"

	"github.com/valderan/docker-simple-manager/internal/validator"
)

// Check reports every problem Load would hit with doc, without changing the
// registry: rule violations and malformed groups as errors, ignored keys and
// newer-than-supported versions as warnings, pending migrations as info.
// Values are checked as written, before any migration.
func (r *Registry) Check(doc Document) *validator.Result {
	res := &validator.Result{}

	from := declaredVersion(doc)
	switch {
	case from.Less(r.current):
		if pending := r.pipeline.Pending(from); len(pending) > 0 {
			res.AddInfo(VersionKey,
				fmt.Sprintf("document will be migrated to %s (%d step(s))", r.current, len(pending)),
				from.String())
		}
	case r.current.Less(from):
		res.AddWarning(VersionKey,
			fmt.Sprintf("document is newer than this build (%s); unknown fields are kept but not checked", r.current),
			from.String())
	}

	for _, name := range r.order {
		raw, present := doc[name]
		if !present {
			continue
		}
		payload, ok := raw.(map[string]any)
		if !ok {
			res.AddError(name, fmt.Sprintf("expected a mapping of settings, got %s", validator.KindOf(raw)), raw)
			continue
		}

		g := r.groups[name]
		for _, key := range g.keys {
			value, ok := payload[key]
			if !ok {
				continue
			}
			res.Check(name+"."+key, g.rules[key], normalize(value))
		}
		for _, key := range slices.Sorted(maps.Keys(payload)) {
			if !g.Has(key) {
				res.AddWarning(name+"."+key, "unknown key is ignored", nil)
			}
		}
	}

	return res
}
