package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in   string
		want Version
	}{
		{"1.1.0", Version{1, 1, 0}},
		{"0.9", Version{0, 9, 0}},
		{"2", Version{2, 0, 0}},
		{"", Version{0, 0, 0}},
		{"garbage", Version{0, 0, 0}},
		{"1.x.3", Version{1, 0, 3}},
		{"1.2.3.4", Version{1, 2, 3}},
		{"1.2.3.x.9", Version{1, 2, 3}},
		{" 1.2.3 ", Version{1, 2, 3}},
		{"-1.2.3", Version{0, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseVersion(tt.in))
		})
	}
}

func TestDeclaredVersion(t *testing.T) {
	assert.Equal(t, legacyVersion, declaredVersion(Document{}))
	assert.Equal(t, legacyVersion, declaredVersion(Document{"version": nil}))
	assert.Equal(t, Version{0, 9, 0}, declaredVersion(Document{"version": "0.9.0"}))
	assert.Equal(t, Version{1, 5, 0}, declaredVersion(Document{"version": 1.5}))
}

func genVersion() *rapid.Generator[Version] {
	return rapid.Custom(func(t *rapid.T) Version {
		return Version{
			Major: rapid.IntRange(0, 20).Draw(t, "major"),
			Minor: rapid.IntRange(0, 20).Draw(t, "minor"),
			Patch: rapid.IntRange(0, 20).Draw(t, "patch"),
		}
	})
}

func TestVersion_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := genVersion().Draw(t, "a")
		b := genVersion().Draw(t, "b")

		if ParseVersion(a.String()) != a {
			t.Fatalf("ParseVersion(%q) did not round-trip", a)
		}
		if a.Compare(b) != -b.Compare(a) {
			t.Fatalf("Compare is not antisymmetric for %s and %s", a, b)
		}
		if (a.Compare(b) == 0) != (a == b) {
			t.Fatalf("Compare(%s, %s) == 0 disagrees with ==", a, b)
		}
		if a.Less(b) && b.Less(a) {
			t.Fatalf("%s and %s are both less than each other", a, b)
		}
	})
}
