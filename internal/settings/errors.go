package settings

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
)

// ErrorKind classifies every failure the registry reports.
type ErrorKind int

const (
	// KindNotFound means a group or key outside the compiled-in schema was addressed.
	KindNotFound ErrorKind = iota + 1
	// KindValidation means a value failed the rule attached to its key.
	KindValidation
	// KindMigration means a registered transform failed while loading.
	KindMigration
	// KindIO means reading, writing or parsing the document failed.
	KindIO
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindMigration:
		return "migration"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Sentinels matched by errors.Is against any *Error of the same kind.
var (
	ErrNotFound   = errors.New("setting not found")
	ErrValidation = errors.New("setting validation failed")
	ErrMigration  = errors.New("settings migration failed")
	ErrIO         = errors.New("settings I/O failed")
)

// Error is the single error type returned by this package. Which fields are
// set depends on Kind:
//
//	KindNotFound    Group, Key (Key empty when the group itself is unknown)
//	KindValidation  Group, Key, Value, Reason
//	KindMigration   From, To, Reason, Path
//	KindIO          Path, Reason
type Error struct {
	Kind   ErrorKind
	Group  string
	Key    string
	Value  any
	Reason string
	From   string
	To     string
	Path   string
	// Err is the underlying cause, if any.
	Err error
}

// Setting returns the dotted "group.key" name, or just the group.
func (e *Error) Setting() string {
	if e.Key == "" {
		return e.Group
	}
	if e.Group == "" {
		return e.Key
	}
	return e.Group + "." + e.Key
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("setting '%s' not found", e.Setting())
	case KindValidation:
		return fmt.Sprintf("validation error for '%s': %s (value=%s)", e.Setting(), e.Reason, reprValue(e.Value))
	case KindMigration:
		return fmt.Sprintf("failed to migrate config %s -> %s: %s", e.From, e.To, e.Reason)
	case KindIO:
		return fmt.Sprintf("I/O error with settings file '%s': %s", e.Path, e.Reason)
	default:
		return e.Reason
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match the kind sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrMigration:
		return e.Kind == KindMigration
	case ErrIO:
		return e.Kind == KindIO
	default:
		return false
	}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return 0, false
}

func notFound(group, key string) *Error {
	return &Error{Kind: KindNotFound, Group: group, Key: key}
}

func invalid(group, key string, value any, reason string) *Error {
	return &Error{Kind: KindValidation, Group: group, Key: key, Value: value, Reason: reason}
}

func migrationFailed(from, to Version, path string, cause error) *Error {
	return &Error{
		Kind:   KindMigration,
		From:   from.String(),
		To:     to.String(),
		Path:   path,
		Reason: cause.Error(),
		Err:    cause,
	}
}

func ioFailed(path string, cause error) *Error {
	return &Error{Kind: KindIO, Path: path, Reason: cause.Error(), Err: cause}
}

func reprValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
