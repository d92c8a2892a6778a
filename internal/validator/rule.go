package validator

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Kind classifies a runtime value for type checks and schema output.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindMap
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "other"
	}
}

// KindOf reports the kind of v.
func KindOf(v any) Kind {
	if v == nil {
		return KindNull
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Bool:
		return KindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindInt
	case reflect.Float32, reflect.Float64:
		return KindFloat
	case reflect.String:
		return KindString
	case reflect.Slice, reflect.Array:
		return KindList
	case reflect.Map:
		return KindMap
	default:
		return KindOther
	}
}

// Validator is a pure rule over a candidate value. Validate never panics; it
// returns true and an empty reason on success, false and a human-readable
// reason otherwise.
//
// The set of implementations is closed: TypeCheck, Range, Enum, Pattern and
// Composite.
type Validator interface {
	Validate(value any) (bool, string)
	rule()
}

// TypeCheck passes when the value's kind is one of Kinds.
type TypeCheck struct {
	Kinds []Kind
}

// NewTypeCheck returns a TypeCheck accepting any of kinds.
func NewTypeCheck(kinds ...Kind) TypeCheck {
	return TypeCheck{Kinds: kinds}
}

func (TypeCheck) rule() {}

// Validate implements Validator.
func (c TypeCheck) Validate(value any) (bool, string) {
	got := KindOf(value)
	for _, k := range c.Kinds {
		if k == got {
			return true, ""
		}
	}
	return false, fmt.Sprintf("expected value of type %s, got %s", c.expected(), got)
}

func (c TypeCheck) expected() string {
	names := make([]string, len(c.Kinds))
	for i, k := range c.Kinds {
		names[i] = k.String()
	}
	return strings.Join(names, " or ")
}

// Range passes for numeric values inside the inclusive [Min, Max] interval.
// A nil bound is unbounded.
type Range struct {
	Min *float64
	Max *float64
}

// Between returns a Range bounded on both sides.
func Between(min, max float64) Range {
	return Range{Min: &min, Max: &max}
}

// AtLeast returns a Range with only a lower bound.
func AtLeast(min float64) Range {
	return Range{Min: &min}
}

// AtMost returns a Range with only an upper bound.
func AtMost(max float64) Range {
	return Range{Max: &max}
}

func (Range) rule() {}

// Validate implements Validator.
func (r Range) Validate(value any) (bool, string) {
	n, ok := toFloat(value)
	if !ok {
		return false, fmt.Sprintf("expected a numeric value, got %s", KindOf(value))
	}
	if math.IsNaN(n) ||
		(r.Min != nil && n < *r.Min) ||
		(r.Max != nil && n > *r.Max) {
		return false, fmt.Sprintf("value %v is out of range [%s, %s]",
			value, formatBound(r.Min), formatBound(r.Max))
	}
	return true, ""
}

func formatBound(b *float64) string {
	if b == nil {
		return "unbounded"
	}
	return strconv.FormatFloat(*b, 'g', -1, 64)
}

// Enum passes when the value equals one of Allowed.
type Enum struct {
	Allowed []any
}

// NewEnum returns an Enum over values, in order.
func NewEnum(values ...any) Enum {
	return Enum{Allowed: values}
}

func (Enum) rule() {}

// Validate implements Validator.
func (e Enum) Validate(value any) (bool, string) {
	for _, allowed := range e.Allowed {
		if Equal(allowed, value) {
			return true, ""
		}
	}
	return false, fmt.Sprintf("value %s not in allowed values: %s",
		formatValue(value), formatList(e.Allowed))
}

// Pattern passes when a string value fully matches a regular expression.
type Pattern struct {
	expr string
	re   *regexp.Regexp
}

// NewPattern compiles expr. The whole value must match, so expr does not
// need its own anchors.
func NewPattern(expr string) (Pattern, error) {
	re, err := regexp.Compile(`^(?:` + expr + `)$`)
	if err != nil {
		return Pattern{}, errors.Wrapf(err, "compiling pattern %q", expr)
	}
	return Pattern{expr: expr, re: re}, nil
}

// MustPattern is like NewPattern but panics on an invalid expression.
// Use it for package-level rules only.
func MustPattern(expr string) Pattern {
	p, err := NewPattern(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// Expr returns the expression as given to NewPattern.
func (p Pattern) Expr() string { return p.expr }

func (Pattern) rule() {}

// Validate implements Validator.
func (p Pattern) Validate(value any) (bool, string) {
	s, ok := value.(string)
	if !ok {
		return false, fmt.Sprintf("value is not a string (got %s)", KindOf(value))
	}
	if p.re == nil {
		return false, "pattern is not compiled"
	}
	if p.re.MatchString(s) {
		return true, ""
	}
	return false, fmt.Sprintf("value %q does not match pattern %q", s, p.expr)
}

// Composite applies Rules in order and reports the first failure verbatim.
// An empty Composite always passes.
type Composite struct {
	Rules []Validator
}

// NewComposite returns a Composite over rules.
func NewComposite(rules ...Validator) Composite {
	return Composite{Rules: rules}
}

func (Composite) rule() {}

// Validate implements Validator.
func (c Composite) Validate(value any) (bool, string) {
	for _, r := range c.Rules {
		if r == nil {
			continue
		}
		if ok, reason := r.Validate(value); !ok {
			return false, reason
		}
	}
	return true, ""
}

// Describe renders a short human-readable form of a rule for schema output.
// A nil rule accepts anything.
func Describe(v Validator) string {
	switch r := v.(type) {
	case nil:
		return "any"
	case TypeCheck:
		return "type(" + r.expected() + ")"
	case Range:
		return fmt.Sprintf("range[%s, %s]", formatBound(r.Min), formatBound(r.Max))
	case Enum:
		return "enum" + formatList(r.Allowed)
	case Pattern:
		return "pattern(" + r.expr + ")"
	case Composite:
		parts := make([]string, len(r.Rules))
		for i, sub := range r.Rules {
			parts[i] = Describe(sub)
		}
		return "all(" + strings.Join(parts, ", ") + ")"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Equal compares two setting values. Numbers compare by value regardless of
// their Go type; everything else compares deeply.
func Equal(a, b any) bool {
	fa, okA := toFloat(a)
	fb, okB := toFloat(b)
	if okA && okB {
		return fa == fb
	}
	if okA != okB {
		return false
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprintf("%v", v)
}

func formatList(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatValue(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
