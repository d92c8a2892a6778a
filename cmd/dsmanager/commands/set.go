package commands

import (
	"github.com/spf13/cobra"
)

var setString bool

func init() {
	setCmd.Flags().BoolVar(&setString, "string", false, "Store the value as a string without parsing it")
	rootCmd.AddCommand(setCmd)
}

var setCmd = &cobra.Command{
	Use:   "set <group> <key> <value>",
	Short: "Change a setting",
	Long: `Validate and store a new value for group.key, then save the document.

The value is read as YAML: 1280 is a number, true a bool, "[a, b]" a list
and "{name: 240}" a mapping. Use --string to store the text as is. The
document is left untouched when the value breaks the key's rule.`,
	Example: `  # Switch the interface language
  dsmanager set app language en

  # Change a list
  dsmanager set ui_state open_tabs "[containers, images]"

  # Keep a numeric-looking value as text
  dsmanager set hotkeys switch_tab_1 1 --string

  See Also: dsmanager get, dsmanager schema, dsmanager reset`,
	Args: cobra.ExactArgs(3),
	RunE: runSet,
}

func runSet(cmd *cobra.Command, args []string) error {
	group, key := args[0], args[1]

	value, err := parseValue(args[2], setString)
	if err != nil {
		return err
	}

	reg, err := openRegistry(cmd)
	if err != nil {
		return err
	}
	if err := reg.SetValue(group, key, value); err != nil {
		return settingsError(err)
	}
	if err := reg.Save(""); err != nil {
		return settingsError(err)
	}

	stored, _ := reg.GetValue(group, key)
	successf(cmd, "Set %s.%s = %s\n", group, key, formatValue(stored))
	return nil
}
