package settings

import (
	"log/slog"
	"slices"

	"github.com/cockroachdb/errors"

	"github.com/valderan/docker-simple-manager/internal/backup"
	"github.com/valderan/docker-simple-manager/internal/logging"
)

// Transform rewrites a document toward a newer version. It may modify and
// return doc or build a new one.
type Transform func(doc Document) (Document, error)

// Migration is a transform registered for the version it produces.
type Migration struct {
	To          Version
	Description string
	Transform   Transform
}

// Pipeline holds migrations keyed by target version.
type Pipeline struct {
	steps  map[Version]Migration
	logger *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithPipelineLogger sets the logger used to report applied and failed steps.
func WithPipelineLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPipeline returns an empty pipeline.
func NewPipeline(opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		steps:  make(map[Version]Migration),
		logger: logging.NewDiscard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// DefaultPipeline returns a pipeline with the built-in migrations.
func DefaultPipeline(opts ...PipelineOption) *Pipeline {
	p := NewPipeline(opts...)
	p.Register(Migration{
		To:          Version{1, 1, 0},
		Description: "add notifications group",
		Transform:   migrateTo110,
	})
	return p
}

// Register adds m. A later registration for the same target version
// replaces the earlier one.
func (p *Pipeline) Register(m Migration) {
	p.steps[m.To] = m
}

// Versions returns every registered target version in ascending order.
func (p *Pipeline) Versions() []Version {
	out := make([]Version, 0, len(p.steps))
	for v := range p.steps {
		out = append(out, v)
	}
	slices.SortFunc(out, Version.Compare)
	return out
}

// Pending returns the migrations that apply to a document declared at from,
// in the order they would run.
func (p *Pipeline) Pending(from Version) []Migration {
	var out []Migration
	for _, v := range p.Versions() {
		if from.Less(v) {
			out = append(out, p.steps[v])
		}
	}
	return out
}

// Apply runs every pending migration over a copy of doc.
//
// When there is at least one pending step and backups is not nil, the file
// at path is copied aside first. If a step fails, that copy is put back over
// path and a KindMigration error is returned; the caller never sees a
// partially migrated document.
func (p *Pipeline) Apply(doc Document, from Version, backups *backup.Manager, path string) (Document, error) {
	pending := p.Pending(from)
	if len(pending) == 0 {
		return doc, nil
	}

	var snap *backup.Snapshot
	if backups != nil && path != "" {
		var err error
		snap, err = backups.Backup(path, "migrate "+from.String()+" -> "+pending[len(pending)-1].To.String())
		if err != nil {
			return nil, ioFailed(path, errors.Wrap(err, "backing up before migration"))
		}
		if snap != nil {
			p.logger.Debug("settings backed up", "path", path, "backup", snap.BackupPath)
		}
	}

	work := doc.Clone()
	for _, m := range pending {
		next, err := runTransform(m, work)
		if err != nil {
			p.logger.Error("settings migration failed", "from", from.String(), "to", m.To.String(), "error", err)
			failure := migrationFailed(from, m.To, path, err)
			if snap != nil {
				if rerr := backups.Restore(snap); rerr != nil {
					return nil, errors.CombineErrors(failure, errors.Wrap(rerr, "restoring backup"))
				}
				p.logger.Info("settings restored from backup", "path", path)
			}
			return nil, failure
		}
		work = next
		p.logger.Info("settings migration applied", "to", m.To.String(), "description", m.Description)
	}
	return work, nil
}

func runTransform(m Migration, doc Document) (out Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("transform panicked: %v", r)
		}
	}()
	if m.Transform == nil {
		return nil, errors.New("no transform registered")
	}
	out, err = m.Transform(doc)
	if err == nil && out == nil {
		err = errors.New("transform returned no document")
	}
	return out, err
}

// migrateTo110 introduces the notifications group.
func migrateTo110(doc Document) (Document, error) {
	if _, ok := doc[GroupNotifications]; !ok {
		doc[GroupNotifications] = map[string]any{
			"enabled":                  true,
			"show_container_updates":   true,
			"show_build_notifications": true,
		}
	}
	doc[VersionKey] = "1.1.0"
	doc[SchemaVersionKey] = 2
	return doc, nil
}
