package commands

import (
	"github.com/spf13/cobra"

	"github.com/valderan/docker-simple-manager/internal/codec"
	"github.com/valderan/docker-simple-manager/internal/errors"
	"github.com/valderan/docker-simple-manager/internal/settings"
	"github.com/valderan/docker-simple-manager/pkg/fileutil"
)

var resetGroup string

func init() {
	resetCmd.Flags().StringVar(&resetGroup, "group", "", "Reset only this group")
	rootCmd.AddCommand(resetCmd)
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	Long: `Restore every group, or one group with --group, to its defaults and save
the document. Fields outside the groups, such as the document version, are
kept.

A document that no longer loads, because a value breaks its rule or the
file does not parse, can still be reset. Without --group it is replaced by
the defaults. With --group only that group is rewritten in the stored
document, and the result must then load.`,
	Example: `  # Reset everything
  dsmanager reset

  # Reset only the hotkeys
  dsmanager reset --group hotkeys

  See Also: dsmanager schema, dsmanager backup restore`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func runReset(cmd *cobra.Command, _ []string) error {
	reg, err := openRegistry(cmd)
	if err != nil {
		if reg, err = recoverForReset(cmd, err); err != nil {
			return err
		}
	}

	if resetGroup != "" {
		g, err := reg.Group(resetGroup)
		if err != nil {
			return settingsError(err)
		}
		for _, key := range g.Keys() {
			def, _ := g.Default(key)
			if err := reg.SetValue(resetGroup, key, def); err != nil {
				return settingsError(err)
			}
		}
	} else {
		reg.Reset()
	}

	if err := reg.Save(""); err != nil {
		return settingsError(err)
	}

	if resetGroup != "" {
		successf(cmd, "Reset %s to defaults\n", resetGroup)
	} else {
		successf(cmd, "Reset all settings to defaults\n")
	}
	return nil
}

// recoverForReset handles a document that failed to load. The registry
// still holds the defaults because a failed load changes nothing.
func recoverForReset(cmd *cobra.Command, loadErr error) (*settings.Registry, error) {
	kind, ok := settings.KindOf(loadErr)
	if !ok || (kind != settings.KindValidation && kind != settings.KindIO) {
		return nil, loadErr
	}
	reg := holder.Get(settingsPath())
	if resetGroup == "" {
		notef(cmd, "Settings could not be loaded (%v); replacing them with defaults\n", loadErr)
		return reg, nil
	}

	g, err := reg.Group(resetGroup)
	if err != nil {
		return nil, settingsError(err)
	}
	wholeReset := "Run 'dsmanager reset' without --group to replace the whole document"
	doc, err := reg.ReadDocument("")
	if err != nil {
		return nil, errors.NewUserError(err, wholeReset)
	}
	doc[resetGroup] = g.Defaults()

	data, err := codec.ForPath(reg.Path()).Marshal(doc)
	if err != nil {
		return nil, errors.NewSystemError(err, "")
	}
	if err := fileutil.AtomicWriteFile(appFs, reg.Path(), data, fileutil.DefaultFilePerm); err != nil {
		return nil, errors.NewSystemError(errors.Wrapf(err, "writing %s", reg.Path()), "")
	}
	if err := reg.Load(""); err != nil {
		return nil, errors.NewUserError(err, wholeReset)
	}
	return reg, nil
}
