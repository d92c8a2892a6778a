package settings

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"

	"github.com/valderan/docker-simple-manager/internal/backup"
	"github.com/valderan/docker-simple-manager/internal/codec"
	"github.com/valderan/docker-simple-manager/internal/logging"
	"github.com/valderan/docker-simple-manager/internal/paths"
	"github.com/valderan/docker-simple-manager/pkg/fileutil"
)

// Registry owns the settings groups, the document metadata and the path the
// document is saved to. It is not safe for concurrent mutation; callers
// sharing one across goroutines must hold their own lock around it.
type Registry struct {
	path     string
	fs       afero.Fs
	logger   *slog.Logger
	pipeline *Pipeline
	backups  *backup.Manager
	suffix   string
	hub      *Hub

	order    []string
	groups   map[string]*Group
	metadata Document
	defaults Document
	current  Version
	dirty    bool

	migrated *Version
}

// Option configures a Registry.
type Option func(*Registry)

// WithPath sets the document path used when Save and Load get no path.
func WithPath(path string) Option {
	return func(r *Registry) { r.path = path }
}

// WithFs sets the filesystem. Defaults to the OS filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(r *Registry) {
		if fsys != nil {
			r.fs = fsys
		}
	}
}

// WithLogger sets the logger for the registry, its observer hub and the
// default pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithPipeline replaces the built-in migrations.
func WithPipeline(p *Pipeline) Option {
	return func(r *Registry) { r.pipeline = p }
}

// WithGroups replaces the built-in groups.
func WithGroups(groups ...*Group) Option {
	return func(r *Registry) {
		r.order = r.order[:0]
		r.groups = make(map[string]*Group, len(groups))
		for _, g := range groups {
			if _, dup := r.groups[g.Name()]; dup {
				continue
			}
			r.order = append(r.order, g.Name())
			r.groups[g.Name()] = g
		}
	}
}

// WithCurrentVersion overrides the version stamped on loaded documents.
func WithCurrentVersion(v Version) Option {
	return func(r *Registry) { r.current = v }
}

// WithBackupSuffix sets the suffix of the pre-migration backup.
func WithBackupSuffix(suffix string) Option {
	return func(r *Registry) { r.suffix = suffix }
}

// New builds a registry with every group at its defaults.
func New(opts ...Option) *Registry {
	r := &Registry{
		path:    paths.SettingsFile(),
		fs:      afero.NewOsFs(),
		logger:  logging.NewDiscard(),
		current: CurrentVersion,
	}
	WithGroups(DefaultGroups()...)(r)

	for _, opt := range opts {
		opt(r)
	}
	r.backups = backup.NewManager(r.fs, backup.WithSuffix(r.suffix))
	if r.pipeline == nil {
		r.pipeline = DefaultPipeline(WithPipelineLogger(r.logger))
	}
	r.hub = NewHub(r.logger)

	r.defaults = r.buildDefaults()
	r.metadata = r.splitMetadata(r.defaults)
	return r
}

func (r *Registry) buildDefaults() Document {
	doc := Document{
		VersionKey:       r.current.String(),
		SchemaVersionKey: SchemaVersion,
	}
	for _, name := range r.order {
		doc[name] = r.groups[name].Defaults()
	}
	return doc
}

// Path returns the document path used by Save and Load without a path.
func (r *Registry) Path() string { return r.path }

// SetPath changes where the next Save or Load without a path goes. Loaded
// state is kept.
func (r *Registry) SetPath(path string) { r.path = path }

// Dirty reports whether the registry changed since the last successful save
// or load.
func (r *Registry) Dirty() bool { return r.dirty }

// CurrentVersion returns the version stamped on loaded documents.
func (r *Registry) CurrentVersion() Version { return r.current }

// Migrated reports the version the last Load migrated from, if it migrated.
func (r *Registry) Migrated() (Version, bool) {
	if r.migrated == nil {
		return Version{}, false
	}
	return *r.migrated, true
}

// Pipeline returns the migration pipeline.
func (r *Registry) Pipeline() *Pipeline { return r.pipeline }

// Backups returns the manager that takes pre-migration backups.
func (r *Registry) Backups() *backup.Manager { return r.backups }

// GetValue returns a copy of group.key. Unknown groups and keys fail with
// KindNotFound.
func (r *Registry) GetValue(group, key string) (any, error) {
	g, ok := r.groups[group]
	if !ok {
		return nil, notFound(group, key)
	}
	return g.Get(key)
}

// GetValueOr returns group.key, or def when the group or key is unknown.
func (r *Registry) GetValueOr(group, key string, def any) any {
	v, err := r.GetValue(group, key)
	if err != nil {
		return def
	}
	return v
}

// SetValue validates and stores value, marks the registry dirty and
// notifies observers before returning. Observers are told about the change
// even when the new value equals the old one.
func (r *Registry) SetValue(group, key string, value any) error {
	g, err := r.Group(group)
	if err != nil {
		return err
	}
	old, err := g.Get(key)
	if err != nil {
		return err
	}
	if err := g.Set(key, value); err != nil {
		return err
	}
	r.dirty = true

	cur, _ := g.Get(key)
	r.logger.Log(context.Background(), logging.LevelTrace, "setting stored", "group", group, "key", key)
	r.hub.Notify(Change{Group: group, Key: key, Old: old, New: cur})
	return nil
}

// Group returns the live group called name.
func (r *Registry) Group(name string) (*Group, error) {
	g, ok := r.groups[name]
	if !ok {
		return nil, notFound(name, "")
	}
	return g, nil
}

// Groups returns the group names in order.
func (r *Registry) Groups() []string {
	return append([]string(nil), r.order...)
}

// Metadata returns a copy of the top-level fields owned by no group.
func (r *Registry) Metadata() Document {
	return r.metadata.Clone()
}

// RegisterObserver adds o; registering it again has no effect.
func (r *Registry) RegisterObserver(o Observer) { r.hub.Register(o) }

// UnregisterObserver removes o if present.
func (r *Registry) UnregisterObserver(o Observer) { r.hub.Unregister(o) }

// Snapshot returns the full document Save would write.
func (r *Registry) Snapshot() Document {
	doc := r.metadata.Clone()
	for _, name := range r.order {
		doc[name] = r.groups[name].ToMap()
	}
	return doc
}

// Save writes the document to path, or to Path() when path is empty. The
// codec follows the extension; anything but .yaml, .yml and .toml is JSON.
// Dirty is cleared only on success.
func (r *Registry) Save(path string) error {
	target := r.target(path)

	data, err := codec.ForPath(target).Marshal(r.Snapshot())
	if err != nil {
		return ioFailed(target, errors.Wrap(err, "encoding settings"))
	}
	if err := paths.EnsureDir(r.fs, filepath.Dir(target), 0); err != nil {
		return ioFailed(target, errors.Wrap(err, "creating settings directory"))
	}
	if err := fileutil.AtomicWriteFile(r.fs, target, data, fileutil.DefaultFilePerm); err != nil {
		return ioFailed(target, err)
	}

	r.dirty = false
	r.logger.Debug("settings saved", "path", target)
	return nil
}

// Load reads the document at path, or Path() when path is empty.
//
// A missing document is created from the current state. Otherwise the
// document is merged over the defaults, migrated when its version is older
// than CurrentVersion, stamped with CurrentVersion and distributed into the
// groups. Every group payload is validated before any group changes, so a
// failed Load leaves the registry as it was.
func (r *Registry) Load(path string) error {
	target := r.target(path)
	return r.load(target, target)
}

// load reads target. A migration backs up and restores backupPath, the file
// the loaded document will be saved over.
func (r *Registry) load(target, backupPath string) error {
	incoming, err := r.ReadDocument(target)
	if errors.Is(err, os.ErrNotExist) {
		r.logger.Info("settings file not found, writing defaults", "path", target)
		return r.Save(target)
	}
	if err != nil {
		return err
	}

	from := declaredVersion(incoming)
	merged := merge(r.defaults.Clone(), incoming)

	var migrated *Version
	if from.Less(r.current) {
		merged, err = r.pipeline.Apply(merged, from, r.backups, backupPath)
		if err != nil {
			return err
		}
		migrated = &from
	}
	merged[VersionKey] = r.current.String()

	staged := make(map[string]map[string]any, len(r.order))
	for _, name := range r.order {
		raw, present := merged[name]
		if !present {
			continue
		}
		payload, ok := raw.(map[string]any)
		if !ok {
			return invalid(name, "", raw, "expected a mapping of settings")
		}
		values, err := r.groups[name].stage(payload)
		if err != nil {
			return err
		}
		staged[name] = values
	}

	r.metadata = r.splitMetadata(merged)
	for name, values := range staged {
		r.groups[name].values = values
	}
	if _, err := r.Validate(); err != nil {
		return err
	}

	r.dirty = false
	r.migrated = migrated
	if migrated != nil {
		r.logger.Info("settings migrated", "path", target, "from", from.String(), "to", r.current.String())
	}
	r.logger.Debug("settings loaded", "path", target)
	return nil
}

// Reload loads the document like Load and then notifies observers of every
// group key whose value changed. Metadata changes are returned but not
// delivered. On failure nothing changes and nothing is delivered.
func (r *Registry) Reload(path string) ([]Change, error) {
	before := r.Snapshot()
	if err := r.Load(path); err != nil {
		return nil, err
	}
	changes := Diff(before, r.Snapshot())
	for _, c := range changes {
		if c.Group != "" {
			r.hub.Notify(c)
		}
	}
	return changes, nil
}

// ReadDocument reads and decodes the document at path without touching the
// registry. A missing file yields an error matching os.ErrNotExist.
func (r *Registry) ReadDocument(path string) (Document, error) {
	target := r.target(path)

	data, err := fileutil.ReadFileWithLimit(r.fs, target)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.WithStack(os.ErrNotExist)
		}
		return nil, ioFailed(target, err)
	}

	doc, err := codec.ForPath(target).Unmarshal(data)
	if err != nil {
		return nil, ioFailed(target, errors.Wrap(err, "parsing settings"))
	}
	return Document(doc), nil
}

// Validate checks every current value against its rule, groups in order and
// keys in declaration order, and fails with the first violation.
func (r *Registry) Validate() (bool, error) {
	for _, name := range r.order {
		g := r.groups[name]
		for _, key := range g.keys {
			value, _ := g.Get(key)
			if ok, reason := g.Validate(key, value); !ok {
				return false, invalid(name, key, value, reason)
			}
		}
	}
	return true, nil
}

// Reset restores every group to its defaults and marks the registry dirty.
// Metadata is kept.
func (r *Registry) Reset() {
	for _, name := range r.order {
		r.groups[name].Reset()
	}
	r.dirty = true
}

// Export saves the document to path.
func (r *Registry) Export(path string) error {
	if path == "" {
		return ioFailed(path, errors.New("export path is required"))
	}
	return r.Save(path)
}

// Import loads the document at path and saves it to Path() so it is adopted
// durably. When the imported document needs migrating, the backup is taken
// of the document at Path(), which the import replaces; the import source
// is only read.
func (r *Registry) Import(path string) error {
	if path == "" {
		return ioFailed(path, errors.New("import path is required"))
	}
	if _, err := r.fs.Stat(path); err != nil {
		return ioFailed(path, err)
	}
	if err := r.load(path, r.path); err != nil {
		return err
	}
	r.dirty = true
	return r.Save(r.path)
}

func (r *Registry) target(path string) string {
	if path != "" {
		return path
	}
	return r.path
}

func (r *Registry) splitMetadata(doc Document) Document {
	meta := make(Document, len(doc))
	for k, v := range doc {
		if _, owned := r.groups[k]; !owned {
			meta[k] = deepCopy(v)
		}
	}
	return meta
}
