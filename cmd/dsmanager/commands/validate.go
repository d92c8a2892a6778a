package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/valderan/docker-simple-manager/internal/errors"
	"github.com/valderan/docker-simple-manager/internal/validator"
)

var validateJSON bool

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check a settings document without changing it",
	Long: `Check every value of a settings document against its rule.

Reports rule violations and malformed groups as errors, keys this build
does not know as warnings, and pending migrations as notes. The document
is not migrated, rewritten or backed up. Without a path the configured
settings document is checked.`,
	Example: `  # Check the current settings
  dsmanager validate

  # Check a file before importing it
  dsmanager validate ./exported.yaml --json

  See Also: dsmanager import, dsmanager schema`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	reg := holder.Get(settingsPath())
	path := reg.Path()
	if len(args) == 1 {
		path = args[0]
	}

	doc, err := reg.ReadDocument(path)
	if errors.Is(err, os.ErrNotExist) {
		notef(cmd, "No settings file at %s; defaults apply\n", path)
		return nil
	}
	if err != nil {
		return settingsError(err)
	}

	result := reg.Check(doc)
	for i := range result.Issues {
		result.Issues[i].Context = map[string]string{"file": path}
	}

	format := validator.FormatText
	if validateJSON {
		format = validator.FormatJSON
	}
	if err := validator.NewReporter(cmd.OutOrStdout(), format).Report(result); err != nil {
		return err
	}

	if result.HasErrors() {
		return errors.NewUserError(
			errors.Newf("%s has %d invalid setting(s)", path, len(result.Errors())),
			"Fix the values listed above or run 'dsmanager reset'")
	}
	return nil
}
