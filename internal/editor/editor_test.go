package editor

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEditorEnv(t *testing.T) {
	t.Helper()
	for _, env := range []string{"DSM_EDITOR", "EDITOR", "VISUAL"} {
		t.Setenv(env, "")
	}
}

func TestCommand_Precedence(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want []string
	}{
		{"dsm editor wins", map[string]string{"DSM_EDITOR": "micro", "EDITOR": "nvim", "VISUAL": "code"}, []string{"micro"}},
		{"editor", map[string]string{"EDITOR": "nvim", "VISUAL": "code"}, []string{"nvim"}},
		{"visual", map[string]string{"VISUAL": "code --wait"}, []string{"code", "--wait"}},
		{"blank is unset", map[string]string{"EDITOR": "  ", "VISUAL": "emacs"}, []string{"emacs"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEditorEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			assert.Equal(t, tt.want, Command())
		})
	}
}

func TestCommand_Fallback(t *testing.T) {
	clearEditorEnv(t)

	want := []string{"vi"}
	if _, err := exec.LookPath("nano"); err == nil {
		want = []string{"nano"}
	}
	assert.Equal(t, want, Command())
}

func TestOpen_PassesPathAndArgs(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script as the editor")
	}
	clearEditorEnv(t)

	dir := t.TempDir()
	script := filepath.Join(dir, "fake-editor.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho \"$@\"\n"), 0o755))
	t.Setenv("EDITOR", script+" --wait")

	var out bytes.Buffer
	target := filepath.Join(dir, "config.json")
	require.NoError(t, Open(context.Background(), target, Streams{Out: &out}))
	assert.Equal(t, "--wait "+target+"\n", out.String())
}

func TestOpen_Failure(t *testing.T) {
	clearEditorEnv(t)
	t.Setenv("EDITOR", "non-existent-binary-12345")

	err := Open(context.Background(), "config.json", Streams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "running editor non-existent-binary-12345")
}
