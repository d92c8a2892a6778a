package commands

import (
	"testing"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubPicker(t *testing.T, pick func([]settingEntry) (int, error)) {
	t.Helper()
	orig, origTTY := pickSetting, pickerNeedsTTY
	pickSetting, pickerNeedsTTY = pick, false
	t.Cleanup(func() { pickSetting, pickerNeedsTTY = orig, origTTY })
}

func TestBrowse_PrintsSetCommand(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "set", "app", "language", "en")

	var seen []settingEntry
	stubPicker(t, func(entries []settingEntry) (int, error) {
		seen = entries
		for i, e := range entries {
			if e.Group == "app" && e.Key == "language" {
				return i, nil
			}
		}
		return 0, nil
	})

	out := env.mustRun(t, "browse")
	assert.Equal(t, "dsmanager set app language en\n", out)
	require.NotEmpty(t, seen)
	assert.Equal(t, "app", seen[0].Group)
}

func TestBrowse_Abort(t *testing.T) {
	env := newTestEnv(t)
	stubPicker(t, func([]settingEntry) (int, error) { return 0, fuzzyfinder.ErrAbort })

	out := env.mustRun(t, "browse")
	assert.Empty(t, out)
}

func TestBrowse_NeedsTerminal(t *testing.T) {
	env := newTestEnv(t)
	_, _, err := env.run(t, "browse")
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))
}

func TestSettingEntry_Preview(t *testing.T) {
	e := settingEntry{Group: "app", Key: "language", Value: "en", Default: "ru", Type: "string", Rule: "one of [ru en]"}
	preview := e.preview()
	assert.Contains(t, preview, "Setting: app.language")
	assert.Contains(t, preview, "Rule:    one of [ru en]")
	assert.Contains(t, preview, "dsmanager set app language ru")

	e.Value = "ru"
	assert.NotContains(t, e.preview(), "Changed from the default")
	assert.Equal(t, "app.language = ru", e.label())
}
