package doctor

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/afero"

	"github.com/valderan/docker-simple-manager/internal/backup"
	"github.com/valderan/docker-simple-manager/internal/errors"
	"github.com/valderan/docker-simple-manager/internal/settings"
)

// FileCheck validates the settings file and its directory: both must be
// usable, and neither may be open to other users.
type FileCheck struct {
	PermissionFixer
	path string
}

var (
	_ Check = (*FileCheck)(nil)
	_ Fixer = (*FileCheck)(nil)
)

// NewFileCheck creates a check for the settings file at path.
func NewFileCheck(fsys afero.Fs, path string) *FileCheck {
	return &FileCheck{PermissionFixer: PermissionFixer{fs: fsys}, path: path}
}

// Name returns the unique identifier for this check.
func (c *FileCheck) Name() string { return "settings-file" }

// Category returns the grouping for this check.
func (c *FileCheck) Category() string { return "filesystem" }

// Run executes the check.
func (c *FileCheck) Run() *CheckResult {
	var issues []pathIssue
	issues = append(issues, c.checkDirectory(filepath.Dir(c.path))...)

	fileIssues, exists := c.checkFile(c.path)
	issues = append(issues, fileIssues...)
	c.setIssues(issues)

	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"path": c.path},
	}

	if len(issues) == 0 {
		if exists {
			result.Status = SeverityPass
			result.Message = "settings file is readable and private"
		} else {
			result.Status = SeverityInfo
			result.Message = "settings file does not exist yet; defaults apply"
		}
		return result
	}

	problems := make([]string, 0, len(issues))
	for _, issue := range issues {
		if issue.Severity > result.Status {
			result.Status = issue.Severity
		}
		if issue.Fixable {
			result.Fixable = true
		}
		if result.FixHint == "" && issue.FixHint != "" {
			result.FixHint = issue.FixHint
		}
		problems = append(problems, fmt.Sprintf("%s: %s", issue.Path, issue.Problem))
	}
	result.Message = fmt.Sprintf("%d problem(s) with the settings file or directory", len(issues))
	result.Details["problems"] = problems
	return result
}

func (c *FileCheck) checkFile(path string) ([]pathIssue, bool) {
	info, err := c.fs.Stat(path)
	if os.IsNotExist(err) {
		return nil, false
	}
	if err != nil {
		return []pathIssue{{
			Path:     path,
			Kind:     "file",
			Problem:  fmt.Sprintf("cannot stat file: %v", err),
			Severity: SeverityError,
		}}, false
	}
	if info.IsDir() {
		return []pathIssue{{
			Path:     path,
			Kind:     "file",
			Problem:  "expected a file but found a directory",
			Severity: SeverityError,
		}}, true
	}

	f, err := c.fs.Open(path)
	if err != nil {
		return []pathIssue{{
			Path:     path,
			Kind:     "file",
			Problem:  "file is not readable",
			Severity: SeverityError,
			Mode:     info.Mode(),
			FixHint:  "chmod 600 " + path,
		}}, true
	}
	_ = f.Close()

	if runtime.GOOS == "windows" {
		return nil, true
	}
	return c.checkPermissions(path, "file", info.Mode()), true
}

func (c *FileCheck) checkDirectory(path string) []pathIssue {
	info, err := c.fs.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return []pathIssue{{
			Path:     path,
			Kind:     "directory",
			Problem:  fmt.Sprintf("cannot stat directory: %v", err),
			Severity: SeverityError,
		}}
	}
	if !info.IsDir() {
		return []pathIssue{{
			Path:     path,
			Kind:     "directory",
			Problem:  "expected directory but found file",
			Severity: SeverityError,
		}}
	}

	var issues []pathIssue
	if !c.isWritable(path) {
		issues = append(issues, pathIssue{
			Path:     path,
			Kind:     "directory",
			Problem:  "directory is not writable; settings cannot be saved",
			Severity: SeverityError,
			Mode:     info.Mode(),
			FixHint:  "chmod u+w " + path,
		})
	}
	if runtime.GOOS != "windows" {
		issues = append(issues, c.checkPermissions(path, "directory", info.Mode())...)
	}
	return issues
}

// checkPermissions flags group and world access. Write access is a warning
// either way; read access only matters for the file itself.
func (c *FileCheck) checkPermissions(path, kind string, mode os.FileMode) []pathIssue {
	perm := mode.Perm()
	target := secureFilePerm
	if kind == "directory" {
		target = secureDirPerm
	}
	hint := fmt.Sprintf("chmod %o %s", target, path)

	switch {
	case perm&0o022 != 0:
		return []pathIssue{{
			Path:     path,
			Kind:     kind,
			Problem:  fmt.Sprintf("%s is writable by other users (mode %s)", kind, formatPermissions(mode)),
			Severity: SeverityWarning,
			Mode:     mode,
			Fixable:  true,
			FixHint:  hint,
		}}
	case kind == "file" && perm&0o044 != 0:
		return []pathIssue{{
			Path:     path,
			Kind:     kind,
			Problem:  fmt.Sprintf("file is readable by other users (mode %s, expected %s)", formatPermissions(mode), formatPermissions(target)),
			Severity: SeverityWarning,
			Mode:     mode,
			Fixable:  true,
			FixHint:  hint,
		}}
	default:
		return nil
	}
}

// isWritable probes the directory by creating and removing a temp file.
func (c *FileCheck) isWritable(dir string) bool {
	f, err := afero.TempFile(c.fs, dir, ".dsmanager-doctor-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = c.fs.Remove(name)
	return true
}

func formatPermissions(mode os.FileMode) string {
	return fmt.Sprintf("%04o", mode.Perm())
}

// DocumentCheck parses the settings document and checks every value the
// way a load would, without loading it.
type DocumentCheck struct {
	reg  *settings.Registry
	path string
}

var _ Check = (*DocumentCheck)(nil)

// NewDocumentCheck creates a check of the document at path against reg's
// groups and migrations.
func NewDocumentCheck(reg *settings.Registry, path string) *DocumentCheck {
	return &DocumentCheck{reg: reg, path: path}
}

// Name returns the unique identifier for this check.
func (c *DocumentCheck) Name() string { return "settings-document" }

// Category returns the grouping for this check.
func (c *DocumentCheck) Category() string { return "settings" }

// Run executes the check.
func (c *DocumentCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
		Details:  map[string]any{"path": c.path},
	}

	doc, err := c.reg.ReadDocument(c.path)
	if errors.Is(err, os.ErrNotExist) {
		result.Status = SeverityPass
		result.Message = "no settings document; it will be created with defaults"
		return result
	}
	if err != nil {
		result.Status = SeverityError
		result.Message = "settings document cannot be parsed"
		result.Details["error"] = err.Error()
		result.FixHint = "Repair the file by hand, run 'dsmanager backup restore', or run 'dsmanager reset'"
		return result
	}

	check := c.reg.Check(doc)
	describe := func(issues []string) { result.Details["issues"] = issues }

	switch {
	case check.HasErrors():
		result.Status = SeverityError
		result.Message = fmt.Sprintf("%d invalid setting(s); the document will not load", len(check.Errors()))
		result.FixHint = "Run 'dsmanager validate' for details, then 'dsmanager set' or 'dsmanager reset'"
		describe(issueStrings(check.Errors()))
	case check.HasWarnings():
		result.Status = SeverityWarning
		result.Message = fmt.Sprintf("document loads with %d warning(s)", len(check.Warnings()))
		describe(issueStrings(check.Warnings()))
	case len(check.Infos()) > 0:
		result.Status = SeverityInfo
		result.Message = check.Infos()[0].Message
	default:
		result.Status = SeverityPass
		result.Message = fmt.Sprintf("document is valid for version %s", c.reg.CurrentVersion())
	}
	return result
}

func issueStrings[E interface{ Error() string }](issues []E) []string {
	out := make([]string, len(issues))
	for i, issue := range issues {
		out[i] = issue.Error()
	}
	return out
}

// BackupCheck reports the pre-migration backup of the document and whether
// it still matches the hash taken with it.
type BackupCheck struct {
	backups *backup.Manager
	path    string
}

var _ Check = (*BackupCheck)(nil)

// NewBackupCheck creates a check of the backup kept for path.
func NewBackupCheck(backups *backup.Manager, path string) *BackupCheck {
	return &BackupCheck{backups: backups, path: path}
}

// Name returns the unique identifier for this check.
func (c *BackupCheck) Name() string { return "settings-backup" }

// Category returns the grouping for this check.
func (c *BackupCheck) Category() string { return "settings" }

// Run executes the check.
func (c *BackupCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category()}

	snap, err := c.backups.Latest(c.path)
	if errors.Is(err, backup.ErrNoBackupsFound) {
		result.Status = SeverityPass
		result.Message = "no pre-migration backup"
		return result
	}
	if err != nil {
		result.Status = SeverityWarning
		result.Message = "backup cannot be read"
		result.Details = map[string]any{"error": err.Error()}
		return result
	}

	result.Details = map[string]any{
		"backup":  snap.BackupPath,
		"created": snap.CreatedAt.Format(time.RFC3339),
	}
	if snap.Reason != "" {
		result.Details["reason"] = snap.Reason
	}

	if err := c.backups.Verify(snap); err != nil {
		result.Status = SeverityWarning
		result.Message = "backup does not match the hash recorded when it was taken"
		result.Details["error"] = err.Error()
		result.FixHint = "Inspect " + snap.BackupPath + " before restoring it"
		return result
	}

	result.Status = SeverityInfo
	result.Message = "pre-migration backup available; 'dsmanager backup restore' puts it back"
	return result
}

// LegacyLocationCheck looks for a document in the pre-XDG location.
type LegacyLocationCheck struct {
	fs     afero.Fs
	path   string
	legacy string
}

var _ Check = (*LegacyLocationCheck)(nil)

// NewLegacyLocationCheck compares the document in use, path, with the
// legacy location.
func NewLegacyLocationCheck(fsys afero.Fs, path, legacy string) *LegacyLocationCheck {
	return &LegacyLocationCheck{fs: fsys, path: path, legacy: legacy}
}

// Name returns the unique identifier for this check.
func (c *LegacyLocationCheck) Name() string { return "legacy-location" }

// Category returns the grouping for this check.
func (c *LegacyLocationCheck) Category() string { return "filesystem" }

// Run executes the check.
func (c *LegacyLocationCheck) Run() *CheckResult {
	result := &CheckResult{Name: c.Name(), Category: c.Category(), Status: SeverityPass}

	if c.legacy == "" {
		result.Message = "no home directory; legacy location not checked"
		return result
	}
	exists, _ := afero.Exists(c.fs, c.legacy)
	switch {
	case !exists:
		result.Message = "no document in the legacy location"
	case filepath.Clean(c.legacy) == filepath.Clean(c.path):
		result.Status = SeverityInfo
		result.Message = "using the legacy location " + c.legacy
		result.FixHint = "Move it to the XDG config directory with 'dsmanager import " + c.legacy + "'"
	default:
		result.Status = SeverityWarning
		result.Message = "a document in the legacy location is ignored: " + c.legacy
		result.FixHint = "Adopt it with 'dsmanager import " + c.legacy + "' or delete it"
	}
	return result
}
