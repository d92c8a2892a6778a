package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// MaxWatchDebounce bounds watch_debounce.
const MaxWatchDebounce = 10 * time.Second

// Validation errors for configuration fields.
var (
	// ErrInvalidLogFormat indicates log_format is neither text nor json.
	ErrInvalidLogFormat = errors.New("unsupported log format")

	// ErrInvalidSuffix indicates a backup suffix that would not produce a sibling file.
	ErrInvalidSuffix = errors.New("invalid backup suffix")

	// ErrInvalidDuration indicates a duration outside its allowed range.
	ErrInvalidDuration = errors.New("duration out of range")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	switch cfg.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, &FieldError{Field: "log_format", Value: cfg.LogFormat, Err: ErrInvalidLogFormat})
	}

	if !strings.HasPrefix(cfg.BackupSuffix, ".") || strings.ContainsAny(cfg.BackupSuffix, `/\`) || cfg.BackupSuffix == "." {
		errs = append(errs, &FieldError{Field: "backup_suffix", Value: cfg.BackupSuffix, Err: ErrInvalidSuffix})
	}

	if cfg.WatchDebounce < 0 || cfg.WatchDebounce > MaxWatchDebounce {
		errs = append(errs, &FieldError{Field: "watch_debounce", Value: cfg.WatchDebounce.String(), Err: ErrInvalidDuration})
	}

	for field, p := range map[string]string{"settings_file": cfg.SettingsFile, "log_file": cfg.LogFile} {
		if err := validatePath(p); err != nil {
			errs = append(errs, &FieldError{Field: field, Value: p, Err: err})
		}
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Empty paths mean "use default".
	if path == "" {
		return nil
	}

	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// FieldError reports an invalid value for one config field.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
