package config

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"github.com/valderan/docker-simple-manager/internal/paths"
)

// FileName is the base name (without extension) of the CLI config file.
const FileName = "dsmanager"

// EnvPrefix prefixes environment overrides, as in DSM_SETTINGS_FILE.
const EnvPrefix = "DSM"

// Config holds the CLI's own configuration. It is separate from the
// settings document the CLI manages.
type Config struct {
	// SettingsFile is the settings document to operate on.
	SettingsFile string `mapstructure:"settings_file" yaml:"settings_file"`
	// LogFormat is "text" or "json".
	LogFormat string `mapstructure:"log_format" yaml:"log_format"`
	// LogFile, when set, receives a JSON copy of every log record.
	LogFile string `mapstructure:"log_file" yaml:"log_file"`
	// BackupSuffix is appended to the settings path to name the pre-migration backup.
	BackupSuffix string `mapstructure:"backup_suffix" yaml:"backup_suffix"`
	// WatchDebounce coalesces bursts of file events in `dsmanager watch`.
	WatchDebounce time.Duration `mapstructure:"watch_debounce" yaml:"watch_debounce"`
}

// Init resets Viper and installs search paths, env binding and defaults.
// Call this once at application startup before Load.
func Init() {
	viper.Reset()

	viper.SetConfigName(FileName)
	viper.SetConfigType("yaml")

	// Search paths, highest precedence first.
	if dir := os.Getenv(EnvPrefix + "_CONFIG_DIR"); dir != "" {
		viper.AddConfigPath(dir)
	}
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	viper.SetDefault("settings_file", "")
	viper.SetDefault("log_format", "text")
	viper.SetDefault("log_file", "")
	viper.SetDefault("backup_suffix", ".bak")
	viper.SetDefault("watch_debounce", 200*time.Millisecond)
}

// Load reads the configuration file and validates the result.
// If path is provided, it reads from that specific file and a missing file
// is an error. If path is empty, the search paths are tried and defaults are
// used when nothing is found.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			// Implicit search found nothing; defaults apply.
		case path != "" && os.IsNotExist(err):
			return nil, errors.Wrapf(err, "config file not found at %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrap(errors.Join(errs...), "validating config")
	}

	return &cfg, nil
}

// SettingsPath returns cfg.SettingsFile, or the default settings location
// when unset.
func (c *Config) SettingsPath(resolve func() string) string {
	if c != nil && c.SettingsFile != "" {
		return c.SettingsFile
	}
	return resolve()
}
