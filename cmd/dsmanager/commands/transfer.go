package commands

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Write the settings to another file",
	Long: `Write the current settings, including fields outside the groups, to path.

The format follows the extension: .yaml and .yml write YAML, .toml writes
TOML and anything else writes JSON. TOML has no null, so unset optional
values are left out and come back as defaults on import.`,
	Example: `  # Share settings as YAML
  dsmanager export ./dsmanager-settings.yaml

  See Also: dsmanager import`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Adopt settings from another file",
	Long: `Load settings from path and save them as the settings document.

The file goes through the same merge, migration and validation as the
settings document itself; if any value is rejected nothing changes.`,
	Example: `  # Check, then adopt exported settings
  dsmanager validate ./dsmanager-settings.yaml
  dsmanager import ./dsmanager-settings.yaml

  See Also: dsmanager export, dsmanager validate`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runExport(cmd *cobra.Command, args []string) error {
	reg, err := openRegistry(cmd)
	if err != nil {
		return err
	}
	if err := reg.Export(args[0]); err != nil {
		return settingsError(err)
	}
	successf(cmd, "Exported settings to %s\n", args[0])
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	reg := holder.Get(settingsPath())
	if err := reg.Import(args[0]); err != nil {
		return settingsError(err)
	}
	successf(cmd, "Imported settings from %s into %s\n", args[0], reg.Path())
	return nil
}
