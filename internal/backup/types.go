package backup

import (
	"io/fs"
	"time"

	"github.com/cockroachdb/errors"
)

// DefaultSuffix is appended to a document path to form its backup path.
const DefaultSuffix = ".bak"

// metaSuffix is appended to a backup path to form its metadata path.
const metaSuffix = ".meta"

// Sentinel errors for backup operations.
var (
	// ErrNoBackupsFound indicates no backup exists for the document.
	ErrNoBackupsFound = errors.New("no backups found")

	// ErrBackupCorrupted indicates the backup no longer matches the hash
	// recorded when it was taken.
	ErrBackupCorrupted = errors.New("backup corrupted")
)

// Snapshot describes one backup copy of a settings document.
// It is also stored as JSON next to the copy so a later process can verify
// and restore it.
type Snapshot struct {
	// OriginalPath is the document that was copied.
	OriginalPath string `json:"original_path"`

	// BackupPath is where the copy lives.
	BackupPath string `json:"backup_path"`

	// SHA256Hash is the hex-encoded hash of the copied bytes.
	SHA256Hash string `json:"sha256_hash"`

	// Mode is the document's permission bits at backup time.
	Mode fs.FileMode `json:"mode"`

	// Size is the number of bytes copied.
	Size int64 `json:"size"`

	// CreatedAt is when the copy was taken.
	CreatedAt time.Time `json:"created_at"`

	// Reason records what triggered the backup, such as "migrate 1.0.0 -> 1.1.0".
	Reason string `json:"reason,omitempty"`
}
