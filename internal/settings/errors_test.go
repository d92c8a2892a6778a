package settings

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestError_Messages(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "unknown key",
			err:  notFound("app", "x"),
			want: "setting 'app.x' not found",
		},
		{
			name: "unknown group",
			err:  notFound("nope", ""),
			want: "setting 'nope' not found",
		},
		{
			name: "validation",
			err:  invalid("app", "language", "es", `value "es" not in allowed values: ["ru", "en"]`),
			want: `validation error for 'app.language': value "es" not in allowed values: ["ru", "en"] (value="es")`,
		},
		{
			name: "validation of null",
			err:  invalid("projects", "default_project", nil, "bad"),
			want: "validation error for 'projects.default_project': bad (value=null)",
		},
		{
			name: "migration",
			err:  migrationFailed(Version{0, 9, 0}, Version{1, 1, 0}, "/c.json", errors.New("boom")),
			want: "failed to migrate config 0.9.0 -> 1.1.0: boom",
		},
		{
			name: "io",
			err:  ioFailed("/c.json", errors.New("permission denied")),
			want: "I/O error with settings file '/c.json': permission denied",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_IsAndKindOf(t *testing.T) {
	sentinels := map[ErrorKind]error{
		KindNotFound:   ErrNotFound,
		KindValidation: ErrValidation,
		KindMigration:  ErrMigration,
		KindIO:         ErrIO,
	}

	for kind, sentinel := range sentinels {
		t.Run(kind.String(), func(t *testing.T) {
			err := errors.Wrap(&Error{Kind: kind, Reason: "r"}, "context")

			assert.True(t, errors.Is(err, sentinel))
			for other, s := range sentinels {
				if other != kind {
					assert.False(t, errors.Is(err, s), "%s should not match %s", kind, other)
				}
			}

			got, ok := KindOf(err)
			assert.True(t, ok)
			assert.Equal(t, kind, got)
		})
	}

	_, ok := KindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestError_UnwrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := ioFailed("/c.json", cause)
	assert.True(t, errors.Is(err, cause))
}
