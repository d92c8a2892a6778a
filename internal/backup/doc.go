// Package backup keeps a verbatim copy of a settings document next to it
// so a failed migration can put the original bytes back.
//
// The copy lives at the document path plus a suffix (".bak" by default).
// A small JSON metadata file beside it records the SHA-256 hash, the
// permission bits and the reason the copy was taken:
//
//	~/.config/dsmanager/
//	├── config.json
//	├── config.json.bak
//	└── config.json.bak.meta
//
// Each [Manager.Backup] replaces the previous copy. [Manager.Restore]
// refuses to write a copy whose hash no longer matches, returning
// [ErrBackupCorrupted].
//
//	mgr := backup.NewManager(afero.NewOsFs())
//	snap, err := mgr.Backup(path, "migrate 1.0.0 -> 1.1.0")
//	...
//	if err := mgr.Restore(snap); err != nil {
//		...
//	}
package backup
