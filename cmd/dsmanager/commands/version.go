package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/valderan/docker-simple-manager/cmd"
	"github.com/valderan/docker-simple-manager/internal/settings"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long: `Print the version, commit and build date of dsmanager, and the settings
document version it reads and writes.`,
	Run: func(c *cobra.Command, _ []string) {
		w := c.OutOrStdout()
		fmt.Fprintf(w, "dsmanager version %s\n", cmd.Version)
		fmt.Fprintf(w, "  commit:    %s\n", cmd.Commit)
		fmt.Fprintf(w, "  built:     %s\n", cmd.Date)
		fmt.Fprintf(w, "  go:        %s\n", runtime.Version())
		fmt.Fprintf(w, "  settings:  %s (schema %d)\n", settings.CurrentVersion, settings.SchemaVersion)
	},
}
