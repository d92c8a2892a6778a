// Package commands implements the CLI commands for dsmanager.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/valderan/docker-simple-manager/cmd"
	"github.com/valderan/docker-simple-manager/internal/config"
	"github.com/valderan/docker-simple-manager/internal/errors"
	"github.com/valderan/docker-simple-manager/internal/logging"
	"github.com/valderan/docker-simple-manager/internal/paths"
	"github.com/valderan/docker-simple-manager/internal/settings"
)

// settingsFlag holds the value of the --settings flag.
var settingsFlag string

// configFlag holds the path given with --config.
var configFlag string

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// appFs is the filesystem every command reads and writes.
var appFs afero.Fs = afero.NewOsFs()

// cliConfig is the loaded dsmanager.yaml, set before any command runs.
var cliConfig = &config.Config{}

// holder owns the registry shared by the commands of one invocation.
var holder = settings.NewHolder()

// logSink is the open --log-file, closed after the command finishes.
var logSink io.Closer

func init() {
	rootCmd.PersistentFlags().StringVarP(&settingsFlag, "settings", "s", "",
		"settings document (default: $XDG_CONFIG_HOME/dsmanager/config.json)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "",
		"CLI config file (default: dsmanager.yaml in . or $XDG_CONFIG_HOME/dsmanager)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"log format: text, json (default from config, else text)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"also write logs to file in JSON format")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("dsmanager version {{.Version}}\n")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

var rootCmd = &cobra.Command{
	Use:   "dsmanager",
	Short: "Manage Docker Simple Manager settings",
	Long: `dsmanager reads, edits and validates the Docker Simple Manager settings
document.

Settings are organized in groups (app, logging, theme, hotkeys, ...). Every
key has a default and a rule; values that break the rule are rejected.
Older documents are migrated on load, after a copy of the original is kept
next to it with a .bak suffix.`,
	Example: `  # Show the app group
  dsmanager get app

  # Switch the interface language
  dsmanager set app language en

  # Check a document without changing it
  dsmanager validate

  See Also: dsmanager schema, dsmanager watch`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		if err := setupLogging(cmd); err != nil {
			return err
		}
		logger := logging.FromContext(cmd.Context())
		holder.Reset(
			settings.WithFs(appFs),
			settings.WithLogger(logger),
			settings.WithBackupSuffix(cliConfig.BackupSuffix),
		)
		return nil
	},
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return closeLogSink()
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// loadConfig reads dsmanager.yaml. The version and help commands run even
// when it is broken.
func loadConfig(cmd *cobra.Command) error {
	config.Init()
	cfg, err := config.Load(configFlag)
	if err != nil {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			cliConfig = &config.Config{}
			return nil
		}
		return errors.NewConfigError(err)
	}
	cliConfig = cfg
	return nil
}

// setupLogging builds the logger from the flags, the DSM_DEBUG variable and
// the config file, in that order of precedence.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(nil, "cannot use --quiet and --verbose together")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity
		if v == 0 {
			if val, ok := os.LookupEnv("DSM_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2
				case "2":
					v = 3
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	format := logFormat
	if format == "" {
		format = cliConfig.LogFormat
	}

	if err := closeLogSink(); err != nil {
		return err
	}
	var file io.Writer
	if path := firstNonEmpty(logFile, cliConfig.LogFile); path != "" {
		f, err := appFs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrapf(err, "opening log file %s", path), "Check the --log-file path")
		}
		file, logSink = f, f
	}

	logger := logging.New(logging.Config{
		Level:  level,
		Format: logging.Format(format),
		Output: cmd.ErrOrStderr(),
		File:   file,
	})
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))

	return nil
}

func closeLogSink() error {
	if logSink == nil {
		return nil
	}
	err := logSink.Close()
	logSink = nil
	return errors.Wrap(err, "closing log file")
}

// settingsPath returns the document the commands operate on.
func settingsPath() string {
	if settingsFlag != "" {
		return settingsFlag
	}
	return cliConfig.SettingsPath(func() string {
		return paths.ResolveSettingsFile(appFs)
	})
}

// Execute runs the root command.
func Execute() error {
	return errors.Wrap(rootCmd.Execute(), "executing root command")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
