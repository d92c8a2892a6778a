package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/valderan/docker-simple-manager/internal/backup"
	"github.com/valderan/docker-simple-manager/internal/errors"
)

var (
	backupInfoJSON bool
	restoreKeep    bool
)

func init() {
	backupInfoCmd.Flags().BoolVar(&backupInfoJSON, "json", false, "Output in JSON format")
	backupRestoreCmd.Flags().BoolVar(&restoreKeep, "keep", false, "Keep the backup after restoring it")
	backupCmd.AddCommand(backupInfoCmd, backupRestoreCmd)
	rootCmd.AddCommand(backupCmd)
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Inspect and restore the pre-migration backup",
	Long: `Before an older settings document is migrated, an exact copy of it is kept
next to it (config.json.bak by default, see backup_suffix). These commands
show and restore that copy.`,
}

var backupInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the backup of the settings document",
	Example: `  dsmanager backup info
  dsmanager backup info --json

  See Also: dsmanager backup restore`,
	Args: cobra.NoArgs,
	RunE: runBackupInfo,
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Put the backup back in place of the settings document",
	Long: `Copy the backup over the settings document, after checking the backup
still matches the hash recorded when it was taken. The backup is removed
afterwards unless --keep is given.

The restored document is migrated again the next time it is loaded.`,
	Example: `  dsmanager backup restore
  dsmanager backup restore --keep

  See Also: dsmanager backup info`,
	Args: cobra.NoArgs,
	RunE: runBackupRestore,
}

func runBackupInfo(cmd *cobra.Command, _ []string) error {
	reg := holder.Get(settingsPath())
	snap, err := reg.Backups().Latest(reg.Path())
	if err != nil {
		return backupError(err)
	}

	if backupInfoJSON {
		return writeJSON(cmd.OutOrStdout(), snap)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Document:\t%s\n", snap.OriginalPath)
	fmt.Fprintf(w, "Backup:\t%s\n", snap.BackupPath)
	fmt.Fprintf(w, "Created:\t%s\n", snap.CreatedAt.Local().Format(time.RFC3339))
	fmt.Fprintf(w, "Size:\t%d bytes\n", snap.Size)
	if snap.Reason != "" {
		fmt.Fprintf(w, "Reason:\t%s\n", snap.Reason)
	}
	if snap.SHA256Hash != "" {
		fmt.Fprintf(w, "SHA-256:\t%s\n", snap.SHA256Hash)
	} else {
		fmt.Fprintf(w, "SHA-256:\t(not recorded)\n")
	}
	return w.Flush()
}

func runBackupRestore(cmd *cobra.Command, _ []string) error {
	reg := holder.Get(settingsPath())
	mgr := reg.Backups()

	snap, err := mgr.Latest(reg.Path())
	if err != nil {
		return backupError(err)
	}
	if err := mgr.Restore(snap); err != nil {
		return backupError(err)
	}
	if !restoreKeep {
		if err := mgr.Remove(reg.Path()); err != nil {
			return errors.NewSystemError(err, "The document was restored; remove the backup by hand")
		}
	}

	successf(cmd, "Restored %s from %s\n", snap.OriginalPath, snap.BackupPath)
	return nil
}

func backupError(err error) error {
	switch {
	case errors.Is(err, backup.ErrNoBackupsFound):
		return errors.NewUserError(err, "A backup is only taken when an older document is migrated")
	case errors.Is(err, backup.ErrBackupCorrupted):
		return errors.NewSystemError(err, "The backup changed since it was taken; inspect it before copying it by hand")
	default:
		return errors.NewSystemError(err, "")
	}
}
