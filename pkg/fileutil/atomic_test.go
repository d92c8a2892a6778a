package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func TestAtomicWriteFile(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		perm    os.FileMode
		wantErr bool
	}{
		{
			name: "successful write",
			data: []byte("{\"version\": \"1.1.0\"}\n"),
			perm: 0o644,
		},
		{
			name: "empty data",
			data: []byte{},
			perm: 0o644,
		},
		{
			name: "private document",
			data: []byte("{}\n"),
			perm: 0o600,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.json")
			fsys := afero.NewOsFs()

			err := AtomicWriteFile(fsys, path, tt.data, tt.perm)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AtomicWriteFile() error = %v, wantErr %v", err, tt.wantErr)
			}

			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading file: %v", err)
			}
			if string(got) != string(tt.data) {
				t.Errorf("content = %q, want %q", got, tt.data)
			}

			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("stating file: %v", err)
			}
			if gotPerm := info.Mode().Perm(); gotPerm != tt.perm {
				t.Errorf("permissions = %o, want %o", gotPerm, tt.perm)
			}
		})
	}
}

func TestAtomicWriteFile_DirectoryNotExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent", "subdir", "file.txt")

	if err := AtomicWriteFile(afero.NewOsFs(), path, []byte("data"), 0o600); err == nil {
		t.Error("AtomicWriteFile() expected error for nonexistent directory")
	}
}

func TestAtomicWriteFile_OverwriteExisting(t *testing.T) {
	fsys := afero.NewMemMapFs()
	path := "/settings/config.json"
	if err := fsys.MkdirAll("/settings", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fsys, path, []byte("original\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := AtomicWriteFile(fsys, path, []byte("replaced\n"), 0o600); err != nil {
		t.Fatalf("AtomicWriteFile() error = %v", err)
	}

	got, err := afero.ReadFile(fsys, path)
	if err != nil {
		t.Fatalf("reading file: %v", err)
	}
	if string(got) != "replaced\n" {
		t.Errorf("content = %q, want %q", got, "replaced\n")
	}

	entries, err := afero.ReadDir(fsys, "/settings")
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) == ".tmp" {
			t.Errorf("temp file left behind: %s", entry.Name())
		}
	}
}
