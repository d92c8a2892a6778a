package commands

import (
	"github.com/spf13/cobra"

	"github.com/valderan/docker-simple-manager/internal/editor"
	"github.com/valderan/docker-simple-manager/internal/errors"
	"github.com/valderan/docker-simple-manager/internal/validator"
)

func init() {
	rootCmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the settings document in $EDITOR",
	Long: `Open the settings document in your editor, then check the result.

The editor is taken from $DSM_EDITOR, $EDITOR or $VISUAL, falling back to
nano and then vi. The document is created with defaults first when it does
not exist. Problems found after the editor exits are reported the way
'dsmanager validate' reports them; the file is kept as you saved it.`,
	Example: `  dsmanager edit
  EDITOR="code --wait" dsmanager edit

  See Also: dsmanager validate, dsmanager set`,
	Args: cobra.NoArgs,
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, _ []string) error {
	reg, err := openRegistry(cmd)
	if err != nil {
		return err
	}
	path := reg.Path()

	notef(cmd, "Location: %s\n", path)
	streams := editor.Streams{In: cmd.InOrStdin(), Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}
	if err := editor.Open(cmd.Context(), path, streams); err != nil {
		return errors.NewUserError(err, "Set $EDITOR or $DSM_EDITOR to an installed editor")
	}

	doc, err := reg.ReadDocument(path)
	if err != nil {
		return settingsError(err)
	}
	result := reg.Check(doc)
	if !result.HasErrors() && !result.HasWarnings() {
		successf(cmd, "Settings are valid\n")
		return nil
	}
	if err := validator.NewReporter(cmd.OutOrStdout(), validator.FormatText).Report(result); err != nil {
		return err
	}
	if result.HasErrors() {
		return errors.NewUserError(
			errors.Newf("%s has %d invalid setting(s)", path, len(result.Errors())),
			"Run 'dsmanager edit' again or 'dsmanager reset'")
	}
	return nil
}
