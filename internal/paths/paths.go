package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
)

// AppName names the per-user directories dsmanager creates.
const AppName = "dsmanager"

// SettingsFileName is the base name of the settings document.
const SettingsFileName = "config.json"

// legacyDirName is the dot directory under $HOME used before XDG support.
const legacyDirName = ".dsmanager"

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrInvalidPath indicates the provided path is malformed or invalid.
	ErrInvalidPath = errors.New("invalid path")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents on fsys.
// If perm is 0, DefaultDirPerm (0700) is used. Existing directories are left
// untouched.
func EnsureDir(fsys afero.Fs, path string, perm os.FileMode) error {
	if path == "" {
		return errors.Wrap(ErrInvalidPath, "empty directory path")
	}
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return fsys.MkdirAll(path, perm)
}

// Home returns the user's home directory, or "" if it cannot be determined.
// Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// StateHome returns the XDG state home directory.
// On Linux: ~/.local/state
func StateHome() string {
	return xdg.StateHome
}

// ConfigDir returns <ConfigHome>/dsmanager.
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// SettingsFile returns <ConfigHome>/dsmanager/config.json.
func SettingsFile() string {
	return filepath.Join(ConfigDir(), SettingsFileName)
}

// LogDir returns <StateHome>/dsmanager/logs, the default for the
// logging.log_dir setting.
func LogDir() string {
	return filepath.Join(StateHome(), AppName, "logs")
}

// LegacySettingsFile returns ~/.dsmanager/config.json, or "" when the home
// directory is unknown.
func LegacySettingsFile() string {
	home := Home()
	if home == "" {
		return ""
	}
	return filepath.Join(home, legacyDirName, SettingsFileName)
}

// ResolveSettingsFile picks the settings document to use when none was given.
// The XDG location wins; the legacy dot directory is used only when it holds
// a document and the XDG location does not.
func ResolveSettingsFile(fsys afero.Fs) string {
	primary := SettingsFile()
	if exists(fsys, primary) {
		return primary
	}
	if legacy := LegacySettingsFile(); legacy != "" && exists(fsys, legacy) {
		return legacy
	}
	return primary
}

func exists(fsys afero.Fs, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && !info.IsDir()
}
