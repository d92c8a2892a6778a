package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/valderan/docker-simple-manager/internal/codec"
	"github.com/valderan/docker-simple-manager/internal/errors"
	"github.com/valderan/docker-simple-manager/internal/logging"
	"github.com/valderan/docker-simple-manager/internal/settings"
)

var (
	successColor = color.New(color.FgGreen)
	hintColor    = color.New(color.FgYellow)
)

// openRegistry loads the settings document into the shared registry. A
// migrated document is written back so the migration runs once.
func openRegistry(cmd *cobra.Command) (*settings.Registry, error) {
	logger := logging.FromContext(cmd.Context())
	reg := holder.Get(settingsPath())
	reg.RegisterObserver(settings.NewLoggingObserver(logger))

	if err := reg.Load(""); err != nil {
		return nil, settingsError(err)
	}
	if from, ok := reg.Migrated(); ok {
		if err := reg.Save(""); err != nil {
			return nil, settingsError(err)
		}
		notef(cmd, "Migrated %s from %s to %s (previous copy kept at %s)\n",
			reg.Path(), from, reg.CurrentVersion(), reg.Backups().BackupPath(reg.Path()))
	}
	return reg, nil
}

// settingsError attaches an exit code and a hint to a registry error.
func settingsError(err error) error {
	kind, ok := settings.KindOf(err)
	if !ok {
		return err
	}
	switch kind {
	case settings.KindNotFound:
		return errors.NewUserError(err, "Run 'dsmanager schema' to list groups and keys")
	case settings.KindValidation:
		return errors.NewUserError(err, "Run 'dsmanager schema <group>' to see the allowed values")
	case settings.KindMigration:
		return errors.NewSystemError(err, "The settings file was left as it was before the migration")
	default:
		return errors.NewSystemError(err, "Check that the settings file is readable and well formed")
	}
}

// ReportError prints err and its hint to w and returns the process exit code.
func ReportError(w io.Writer, err error) int {
	if err == nil {
		return errors.ExitSuccess
	}

	var exitErr *errors.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintf(w, "Error: %v\n", err)
		return errors.ExitUser
	}

	if exitErr.Err != nil {
		fmt.Fprintf(w, "Error: %v\n", exitErr.Err)
	}
	if exitErr.Suggestion != "" {
		hintColor.Fprintf(w, "Hint: %s\n", exitErr.Suggestion)
	}
	return exitErr.Code
}

// notef writes progress output unless --quiet is set.
func notef(cmd *cobra.Command, format string, args ...any) {
	if quiet {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

// successf writes a green confirmation unless --quiet is set.
func successf(cmd *cobra.Command, format string, args ...any) {
	if quiet {
		return
	}
	successColor.Fprintf(cmd.OutOrStdout(), "✓ "+format, args...)
}

// parseValue reads a command-line value as YAML, so "1280" is a number,
// "true" a bool and "[a, b]" a list. Anything YAML reads as null without
// spelling null, such as "#218094", stays a string.
func parseValue(raw string, asString bool) (any, error) {
	if asString {
		return raw, nil
	}
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return nil, errors.NewUserError(errors.Wrapf(errors.ErrInvalidValue, "%q: %v", raw, err),
			"Quote the value or pass --string")
	}
	if v == nil {
		switch strings.TrimSpace(raw) {
		case "null", "~", "Null", "NULL":
			return nil, nil
		default:
			return raw, nil
		}
	}
	return codec.Normalize(v), nil
}

// formatValue renders a value for plain output: strings bare, null as
// "null", containers as compact JSON.
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case map[string]any, []any:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(data)
	default:
		return fmt.Sprint(t)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "encoding JSON output")
}
