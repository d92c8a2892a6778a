package doctor

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valderan/docker-simple-manager/internal/backup"
	"github.com/valderan/docker-simple-manager/internal/settings"
)

const (
	settingsDir  = "/home/user/.config/dsmanager"
	settingsPath = settingsDir + "/config.json"
	legacyPath   = "/home/user/.dsmanager/config.json"
)

func newFs(t *testing.T) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll(settingsDir, 0o700))
	return fsys
}

func writeFile(t *testing.T, fsys afero.Fs, path, content string, perm os.FileMode) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fsys, path, []byte(content), perm))
	require.NoError(t, fsys.Chmod(path, perm))
}

func TestFileCheck(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		c := NewFileCheck(newFs(t), settingsPath)
		result := c.Run()
		assert.Equal(t, SeverityInfo, result.Status)
		assert.False(t, c.CanFix())
	})

	t.Run("private file", func(t *testing.T) {
		fsys := newFs(t)
		writeFile(t, fsys, settingsPath, "{}", 0o600)

		result := NewFileCheck(fsys, settingsPath).Run()
		assert.Equal(t, SeverityPass, result.Status)
		assert.Equal(t, settingsPath, result.Details["path"])
	})

	t.Run("world readable file is fixed", func(t *testing.T) {
		fsys := newFs(t)
		writeFile(t, fsys, settingsPath, "{}", 0o644)

		c := NewFileCheck(fsys, settingsPath)
		result := c.Run()
		assert.Equal(t, SeverityWarning, result.Status)
		assert.True(t, result.Fixable)
		assert.Equal(t, "chmod 600 "+settingsPath, result.FixHint)
		assert.Equal(t, 1, c.CountFixable())

		fixes := c.Fix()
		require.Len(t, fixes, 1)
		assert.True(t, fixes[0].Fixed)
		assert.Equal(t, "chmod 0600", fixes[0].Description)

		info, err := fsys.Stat(settingsPath)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("group writable directory", func(t *testing.T) {
		fsys := newFs(t)
		require.NoError(t, fsys.Chmod(settingsDir, os.ModeDir|0o770))

		c := NewFileCheck(fsys, settingsPath)
		result := c.Run()
		assert.Equal(t, SeverityWarning, result.Status)
		assert.Contains(t, result.Details["problems"], settingsDir+": directory is writable by other users (mode 0770)")

		fixes := c.Fix()
		require.Len(t, fixes, 1)
		assert.Equal(t, "chmod 0700", fixes[0].Description)
	})

	t.Run("directory in place of file", func(t *testing.T) {
		fsys := newFs(t)
		require.NoError(t, fsys.MkdirAll(settingsPath, 0o700))

		result := NewFileCheck(fsys, settingsPath).Run()
		assert.Equal(t, SeverityError, result.Status)
	})
}

func TestDocumentCheck(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Severity
		message string
	}{
		{"missing", "", SeverityPass, "no settings document"},
		{"valid", `{"version": "1.1.0", "app": {"language": "en"}}`, SeverityPass, "document is valid for version 1.1.0"},
		{"pending migration", `{"version": "1.0.0"}`, SeverityInfo, "will be migrated to 1.1.0"},
		{"unknown key", `{"version": "1.1.0", "app": {"colour": "red"}}`, SeverityWarning, "1 warning(s)"},
		{"invalid value", `{"version": "1.1.0", "app": {"language": "es"}}`, SeverityError, "1 invalid setting(s)"},
		{"malformed", `{"app": `, SeverityError, "cannot be parsed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := newFs(t)
			if tt.content != "" {
				writeFile(t, fsys, settingsPath, tt.content, 0o600)
			}
			reg := settings.New(settings.WithFs(fsys), settings.WithPath(settingsPath))

			result := NewDocumentCheck(reg, settingsPath).Run()
			assert.Equal(t, tt.want, result.Status)
			assert.Contains(t, result.Message, tt.message)
		})
	}
}

func TestBackupCheck(t *testing.T) {
	fsys := newFs(t)
	mgr := backup.NewManager(fsys)
	c := NewBackupCheck(mgr, settingsPath)

	assert.Equal(t, SeverityPass, c.Run().Status)

	writeFile(t, fsys, settingsPath, `{"version": "1.0.0"}`, 0o600)
	snap, err := mgr.Backup(settingsPath, "migrate 1.0.0 -> 1.1.0")
	require.NoError(t, err)

	result := c.Run()
	assert.Equal(t, SeverityInfo, result.Status)
	assert.Equal(t, "migrate 1.0.0 -> 1.1.0", result.Details["reason"])

	writeFile(t, fsys, snap.BackupPath, "tampered", 0o600)
	result = c.Run()
	assert.Equal(t, SeverityWarning, result.Status)
	assert.Contains(t, result.FixHint, snap.BackupPath)
}

func TestLegacyLocationCheck(t *testing.T) {
	fsys := newFs(t)

	assert.Equal(t, SeverityPass, NewLegacyLocationCheck(fsys, settingsPath, legacyPath).Run().Status)
	assert.Equal(t, SeverityPass, NewLegacyLocationCheck(fsys, settingsPath, "").Run().Status)

	writeFile(t, fsys, legacyPath, "{}", 0o600)

	result := NewLegacyLocationCheck(fsys, settingsPath, legacyPath).Run()
	assert.Equal(t, SeverityWarning, result.Status)
	assert.Contains(t, result.FixHint, "dsmanager import "+legacyPath)

	result = NewLegacyLocationCheck(fsys, legacyPath, legacyPath).Run()
	assert.Equal(t, SeverityInfo, result.Status)
}
