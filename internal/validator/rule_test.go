package validator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  Kind
	}{
		{"nil", nil, KindNull},
		{"bool", true, KindBool},
		{"int", 42, KindInt},
		{"int64", int64(42), KindInt},
		{"uint8", uint8(1), KindInt},
		{"float", 2.5, KindFloat},
		{"string", "ru", KindString},
		{"any slice", []any{"a"}, KindList},
		{"string slice", []string{"a"}, KindList},
		{"map", map[string]any{}, KindMap},
		{"struct", struct{}{}, KindOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.value))
		})
	}
}

func TestTypeCheck(t *testing.T) {
	nullableString := NewTypeCheck(KindString, KindNull)

	ok, reason := nullableString.Validate("local")
	assert.True(t, ok)
	assert.Empty(t, reason)

	ok, _ = nullableString.Validate(nil)
	assert.True(t, ok)

	ok, reason = nullableString.Validate(5)
	assert.False(t, ok)
	assert.Equal(t, "expected value of type string or null, got int", reason)

	ok, reason = NewTypeCheck(KindBool).Validate("true")
	assert.False(t, ok)
	assert.Contains(t, reason, "bool")
	assert.Contains(t, reason, "string")
}

func TestRange(t *testing.T) {
	tests := []struct {
		name       string
		rule       Range
		value      any
		wantOK     bool
		wantReason string
	}{
		{"inside", Between(1, 10), 5, true, ""},
		{"lower bound inclusive", Between(1, 10), 1, true, ""},
		{"upper bound inclusive", Between(1, 10), 10, true, ""},
		{"above", Between(1, 10), 11, false, "value 11 is out of range [1, 10]"},
		{"below", Between(800, 10000), 799, false, "value 799 is out of range [800, 10000]"},
		{"float inside", Between(0, 1), 0.5, true, ""},
		{"only min", AtLeast(0), -1, false, "value -1 is out of range [0, unbounded]"},
		{"only max", AtMost(100), 1e9, false, "value 1e+09 is out of range [unbounded, 100]"},
		{"unbounded", Range{}, math.MaxInt64, true, ""},
		{"nan", Range{}, math.NaN(), false, "value NaN is out of range [unbounded, unbounded]"},
		{"string", Between(1, 10), "5", false, "expected a numeric value, got string"},
		{"bool", Between(0, 1), true, false, "expected a numeric value, got bool"},
		{"nil", Between(0, 1), nil, false, "expected a numeric value, got null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := tt.rule.Validate(tt.value)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestRange_OutOfRangeReason(t *testing.T) {
	ok, reason := Between(1, 10).Validate(11)
	require.False(t, ok)
	assert.Contains(t, reason, "out of range")
}

func TestEnum(t *testing.T) {
	lang := NewEnum("ru", "en")

	ok, reason := lang.Validate("ru")
	assert.True(t, ok)
	assert.Equal(t, "", reason)

	ok, reason = lang.Validate("es")
	assert.False(t, ok)
	assert.Equal(t, `value "es" not in allowed values: ["ru", "en"]`, reason)

	ok, _ = lang.Validate(nil)
	assert.False(t, ok)

	numbers := NewEnum(1, 2, 3)
	ok, _ = numbers.Validate(2.0)
	assert.True(t, ok, "numbers compare by value")
	ok, _ = numbers.Validate(true)
	assert.False(t, ok, "bool is not a number")
}

func TestPattern(t *testing.T) {
	upper := MustPattern(`^[A-Z]+$`)

	ok, _ := upper.Validate("ABC")
	assert.True(t, ok)

	ok, reason := upper.Validate("abc")
	assert.False(t, ok)
	assert.Contains(t, reason, `^[A-Z]+$`)

	ok, reason = upper.Validate(12)
	assert.False(t, ok)
	assert.Contains(t, reason, "not a string")
}

func TestPattern_FullMatch(t *testing.T) {
	hex := MustPattern(`#[0-9a-fA-F]{6}`)

	ok, _ := hex.Validate("#218094")
	assert.True(t, ok)

	ok, _ = hex.Validate("color: #218094;")
	assert.False(t, ok, "a substring match is not enough")

	alt := MustPattern(`a|b`)
	ok, _ = alt.Validate("ab")
	assert.False(t, ok, "alternation must not escape the anchors")
}

func TestPattern_Invalid(t *testing.T) {
	_, err := NewPattern(`(`)
	require.Error(t, err)

	var zero Pattern
	ok, reason := zero.Validate("x")
	assert.False(t, ok)
	assert.NotEmpty(t, reason)
}

func TestComposite(t *testing.T) {
	hotkey := NewComposite(NewTypeCheck(KindString), MustPattern(`[A-Za-z0-9+\-\s]+`))

	ok, _ := hotkey.Validate("Ctrl+Alt+C")
	assert.True(t, ok)

	ok, reason := hotkey.Validate(5)
	assert.False(t, ok)
	assert.Equal(t, "expected value of type string, got int", reason, "first failure wins")

	ok, reason = hotkey.Validate("Ctrl+@")
	assert.False(t, ok)
	assert.Contains(t, reason, "does not match")

	ok, reason = NewComposite().Validate(struct{}{})
	assert.True(t, ok)
	assert.Empty(t, reason)
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		rule Validator
		want string
	}{
		{nil, "any"},
		{NewTypeCheck(KindBool), "type(bool)"},
		{Between(1, 10), "range[1, 10]"},
		{AtLeast(0), "range[0, unbounded]"},
		{NewEnum("ru", "en"), `enum["ru", "en"]`},
		{MustPattern(`\d+`), `pattern(\d+)`},
		{NewComposite(NewTypeCheck(KindString), NewEnum("a")), `all(type(string), enum["a"])`},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.rule))
		})
	}
}

func TestProperty_RangeMatchesBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lo := rapid.IntRange(-1000, 1000).Draw(rt, "lo")
		hi := rapid.IntRange(lo, 2000).Draw(rt, "hi")
		v := rapid.IntRange(-3000, 3000).Draw(rt, "v")

		ok, reason := Between(float64(lo), float64(hi)).Validate(v)
		want := v >= lo && v <= hi
		require.Equal(t, want, ok)
		if ok {
			require.Empty(t, reason)
		} else {
			require.Contains(t, reason, "out of range")
		}
	})
}

func TestProperty_EnumAcceptsExactlyMembers(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		members := rapid.SliceOfNDistinct(rapid.StringMatching(`[a-z]{1,4}`), 1, 8, rapid.ID[string]).Draw(rt, "members")
		candidate := rapid.StringMatching(`[a-z]{1,4}`).Draw(rt, "candidate")

		allowed := make([]any, len(members))
		isMember := false
		for i, m := range members {
			allowed[i] = m
			if m == candidate {
				isMember = true
			}
		}

		ok, _ := NewEnum(allowed...).Validate(candidate)
		require.Equal(t, isMember, ok)
	})
}

func TestProperty_ValidateNeverPanics(t *testing.T) {
	rules := []Validator{
		NewTypeCheck(KindInt),
		Between(0, 10),
		NewEnum("x", 1),
		MustPattern(`.*`),
		NewComposite(Between(0, 1), NewEnum(0)),
	}
	rapid.Check(t, func(rt *rapid.T) {
		value := rapid.OneOf(
			rapid.Just[any](nil),
			rapid.Map(rapid.Int(), func(i int) any { return i }),
			rapid.Map(rapid.Float64(), func(f float64) any { return f }),
			rapid.Map(rapid.String(), func(s string) any { return s }),
			rapid.Map(rapid.Bool(), func(b bool) any { return b }),
			rapid.Map(rapid.SliceOf(rapid.Int()), func(s []int) any { return s }),
		).Draw(rt, "value")
		for _, r := range rules {
			_, _ = r.Validate(value)
		}
	})
}
