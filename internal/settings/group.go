package settings

import (
	"fmt"
	"slices"

	"github.com/valderan/docker-simple-manager/internal/validator"
)

// Field declares one key of a group: its default and the rule new values
// must pass. A nil Rule accepts anything.
type Field struct {
	Key     string
	Default any
	Rule    validator.Validator
}

// FieldSchema describes a key for building settings forms.
type FieldSchema struct {
	Type    string `json:"type" yaml:"type"`
	Default any    `json:"default" yaml:"default"`
	Rule    string `json:"rule" yaml:"rule"`
}

// Group is a named, fixed set of keys with defaults, rules and current
// values. Keys cannot be added or removed after construction.
type Group struct {
	name     string
	keys     []string
	defaults map[string]any
	rules    map[string]validator.Validator
	values   map[string]any
}

// NewGroup builds a group and initializes it to its defaults. It panics on
// an empty or duplicate key, since groups are compiled in.
func NewGroup(name string, fields ...Field) *Group {
	g := &Group{
		name:     name,
		keys:     make([]string, 0, len(fields)),
		defaults: make(map[string]any, len(fields)),
		rules:    make(map[string]validator.Validator, len(fields)),
	}
	for _, f := range fields {
		if f.Key == "" {
			panic(fmt.Sprintf("settings: group %q has a field without a key", name))
		}
		if _, dup := g.defaults[f.Key]; dup {
			panic(fmt.Sprintf("settings: group %q declares %q twice", name, f.Key))
		}
		g.keys = append(g.keys, f.Key)
		g.defaults[f.Key] = normalize(f.Default)
		if f.Rule != nil {
			g.rules[f.Key] = f.Rule
		}
	}
	g.Reset()
	return g
}

// Name returns the group name.
func (g *Group) Name() string { return g.name }

// Keys returns the keys in declaration order.
func (g *Group) Keys() []string { return slices.Clone(g.keys) }

// Has reports whether key belongs to the group.
func (g *Group) Has(key string) bool {
	_, ok := g.defaults[key]
	return ok
}

// Rule returns the rule attached to key, or nil.
func (g *Group) Rule(key string) validator.Validator {
	return g.rules[key]
}

// Get returns a copy of the current value of key.
func (g *Group) Get(key string) (any, error) {
	def, ok := g.defaults[key]
	if !ok {
		return nil, notFound(g.name, key)
	}
	if v, ok := g.values[key]; ok {
		return deepCopy(v), nil
	}
	return deepCopy(def), nil
}

// Set validates value against the rule for key and stores it. On failure the
// current value is left untouched.
func (g *Group) Set(key string, value any) error {
	if !g.Has(key) {
		return notFound(g.name, key)
	}
	value = normalize(value)
	if ok, reason := g.Validate(key, value); !ok {
		return invalid(g.name, key, value, reason)
	}
	g.values[key] = value
	return nil
}

// Validate applies the rule for key without storing anything.
func (g *Group) Validate(key string, value any) (bool, string) {
	if !g.Has(key) {
		return false, fmt.Sprintf("unknown key %q in group %q", key, g.name)
	}
	rule := g.rules[key]
	if rule == nil {
		return true, ""
	}
	return rule.Validate(value)
}

// ToMap returns a copy of all current values.
func (g *Group) ToMap() map[string]any {
	out := make(map[string]any, len(g.keys))
	for _, k := range g.keys {
		v, _ := g.Get(k)
		out[k] = v
	}
	return out
}

// FromMap applies every known key of data. Unknown keys are ignored so newer
// documents still load. All values are validated before any is stored: if
// one fails, the group is unchanged and the first failure in key order is
// returned.
func (g *Group) FromMap(data map[string]any) error {
	staged, err := g.stage(data)
	if err != nil {
		return err
	}
	g.values = staged
	return nil
}

// stage returns the values the group would hold after FromMap(data).
func (g *Group) stage(data map[string]any) (map[string]any, error) {
	staged := make(map[string]any, len(g.keys))
	for _, k := range g.keys {
		staged[k] = g.values[k]
	}
	for _, k := range g.keys {
		raw, ok := data[k]
		if !ok {
			continue
		}
		v := normalize(raw)
		if ok, reason := g.Validate(k, v); !ok {
			return nil, invalid(g.name, k, v, reason)
		}
		staged[k] = v
	}
	return staged, nil
}

// Default returns a copy of the default for key.
func (g *Group) Default(key string) (any, error) {
	def, ok := g.defaults[key]
	if !ok {
		return nil, notFound(g.name, key)
	}
	return deepCopy(def), nil
}

// Defaults returns a copy of every default.
func (g *Group) Defaults() map[string]any {
	return deepCopy(g.defaults).(map[string]any)
}

// Schema describes every key: the kind of its default, the default itself
// and its rule.
func (g *Group) Schema() map[string]FieldSchema {
	out := make(map[string]FieldSchema, len(g.keys))
	for _, k := range g.keys {
		def := g.defaults[k]
		out[k] = FieldSchema{
			Type:    validator.KindOf(def).String(),
			Default: deepCopy(def),
			Rule:    validator.Describe(g.rules[k]),
		}
	}
	return out
}

// Reset restores every value to a fresh copy of its default.
func (g *Group) Reset() {
	g.values = deepCopy(g.defaults).(map[string]any)
}
