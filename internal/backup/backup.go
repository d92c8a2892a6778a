package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"

	"github.com/valderan/docker-simple-manager/pkg/fileutil"
)

// Manager takes and restores sibling backups of settings documents.
type Manager struct {
	fs     afero.Fs
	suffix string
	now    func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithSuffix sets the suffix appended to document paths. Empty values are
// ignored.
func WithSuffix(suffix string) Option {
	return func(m *Manager) {
		if suffix != "" {
			m.suffix = suffix
		}
	}
}

// WithClock overrides the time source used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager creates a Manager operating on fsys.
func NewManager(fsys afero.Fs, opts ...Option) *Manager {
	m := &Manager{
		fs:     fsys,
		suffix: DefaultSuffix,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// BackupPath returns where the backup of path is kept.
func (m *Manager) BackupPath(path string) string {
	return path + m.suffix
}

// Backup copies the document at path verbatim to its backup path, replacing
// any previous backup. It returns (nil, nil) when no document exists, since
// there is nothing to protect.
func (m *Manager) Backup(path, reason string) (*Snapshot, error) {
	if path == "" {
		return nil, errors.New("document path is required")
	}

	info, err := m.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "stat %s", path)
	}
	if info.IsDir() {
		return nil, errors.Newf("%s is a directory", path)
	}

	data, err := fileutil.ReadFileWithLimit(m.fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	snap := &Snapshot{
		OriginalPath: path,
		BackupPath:   m.BackupPath(path),
		SHA256Hash:   hashBytes(data),
		Mode:         info.Mode().Perm(),
		Size:         int64(len(data)),
		CreatedAt:    m.now().UTC(),
		Reason:       reason,
	}

	if err := fileutil.AtomicWriteFile(m.fs, snap.BackupPath, data, snap.Mode); err != nil {
		return nil, errors.Wrap(err, "writing backup")
	}

	meta, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encoding backup metadata")
	}
	if err := fileutil.AtomicWriteFile(m.fs, snap.BackupPath+metaSuffix, meta, fileutil.DefaultFilePerm); err != nil {
		return nil, errors.Wrap(err, "writing backup metadata")
	}

	return snap, nil
}

// Restore copies the backup described by snap over its original path after
// checking the backup still hashes to snap.SHA256Hash.
func (m *Manager) Restore(snap *Snapshot) error {
	if snap == nil {
		return errors.Wrap(ErrNoBackupsFound, "nothing to restore")
	}

	data, err := m.verified(snap)
	if err != nil {
		return err
	}

	mode := snap.Mode
	if mode == 0 {
		mode = fileutil.DefaultFilePerm
	}
	if err := fileutil.AtomicWriteFile(m.fs, snap.OriginalPath, data, mode); err != nil {
		return errors.Wrapf(err, "restoring %s", snap.OriginalPath)
	}
	return nil
}

// Verify checks that the backup described by snap exists and, when a hash
// was recorded, still matches it.
func (m *Manager) Verify(snap *Snapshot) error {
	if snap == nil {
		return errors.Wrap(ErrNoBackupsFound, "nothing to verify")
	}
	_, err := m.verified(snap)
	return err
}

func (m *Manager) verified(snap *Snapshot) ([]byte, error) {
	data, err := fileutil.ReadFileWithLimit(m.fs, snap.BackupPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(ErrNoBackupsFound, "backup %s missing", snap.BackupPath)
		}
		return nil, errors.Wrapf(err, "reading backup %s", snap.BackupPath)
	}
	if snap.SHA256Hash != "" && hashBytes(data) != snap.SHA256Hash {
		return nil, errors.Wrapf(ErrBackupCorrupted, "%s hash mismatch", snap.BackupPath)
	}
	return data, nil
}

// Latest returns the backup recorded for the document at path.
// A backup without metadata is still returned, with an empty hash, so it
// can be restored without verification.
func (m *Manager) Latest(path string) (*Snapshot, error) {
	backupPath := m.BackupPath(path)

	info, err := m.fs.Stat(backupPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNoBackupsFound, "no backup for %s", path)
		}
		return nil, errors.Wrapf(err, "stat %s", backupPath)
	}

	meta, err := afero.ReadFile(m.fs, backupPath+metaSuffix)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Wrap(err, "reading backup metadata")
		}
		return &Snapshot{
			OriginalPath: path,
			BackupPath:   backupPath,
			Mode:         info.Mode().Perm(),
			Size:         info.Size(),
			CreatedAt:    info.ModTime().UTC(),
		}, nil
	}

	var snap Snapshot
	if err := json.Unmarshal(meta, &snap); err != nil {
		return nil, errors.Wrap(err, "parsing backup metadata")
	}
	snap.OriginalPath = path
	snap.BackupPath = backupPath
	return &snap, nil
}

// Remove deletes the backup of path and its metadata. Missing files are
// not an error.
func (m *Manager) Remove(path string) error {
	backupPath := m.BackupPath(path)
	for _, p := range []string{backupPath, backupPath + metaSuffix} {
		if err := m.fs.Remove(p); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "removing %s", p)
		}
	}
	return nil
}

func hashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
