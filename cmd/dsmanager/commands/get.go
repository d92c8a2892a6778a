package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/valderan/docker-simple-manager/internal/codec"
	"github.com/valderan/docker-simple-manager/internal/errors"
)

var getJSON bool

func init() {
	getCmd.Flags().BoolVar(&getJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <group> [key]",
	Short: "Print a setting or a whole group",
	Long: `Print the value of group.key, or every key of a group when no key is given.

Without --json, a single value is printed bare (strings unquoted, lists and
mappings as compact JSON) and a group is printed as YAML.`,
	Example: `  # Print one value
  dsmanager get app language

  # Print a group
  dsmanager get hotkeys

  # Print a group as JSON
  dsmanager get theme --json

  See Also: dsmanager set, dsmanager schema`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	reg, err := openRegistry(cmd)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()

	if len(args) == 2 {
		v, err := reg.GetValue(args[0], args[1])
		if err != nil {
			return settingsError(err)
		}
		if getJSON {
			return writeJSON(w, v)
		}
		fmt.Fprintln(w, formatValue(v))
		return nil
	}

	g, err := reg.Group(args[0])
	if err != nil {
		return settingsError(err)
	}
	values := g.ToMap()
	if getJSON {
		return writeJSON(w, values)
	}
	data, err := codec.YAML{}.Marshal(values)
	if err != nil {
		return errors.Wrap(err, "rendering group")
	}
	_, err = w.Write(data)
	return errors.Wrap(err, "writing output")
}
