package commands

import (
	"fmt"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/valderan/docker-simple-manager/internal/errors"
	"github.com/valderan/docker-simple-manager/internal/logging"
	"github.com/valderan/docker-simple-manager/internal/settings"
	"github.com/valderan/docker-simple-manager/internal/validator"
)

// settingEntry is one row of the browse list.
type settingEntry struct {
	Group   string
	Key     string
	Value   any
	Default any
	Type    string
	Rule    string
}

func (e settingEntry) label() string {
	return fmt.Sprintf("%s.%s = %s", e.Group, e.Key, formatValue(e.Value))
}

func (e settingEntry) preview() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Setting: %s.%s\n", e.Group, e.Key)
	fmt.Fprintf(&b, "Value:   %s\n", formatValue(e.Value))
	fmt.Fprintf(&b, "Default: %s\n", formatValue(e.Default))
	fmt.Fprintf(&b, "Type:    %s\n", e.Type)
	if e.Rule != "" {
		fmt.Fprintf(&b, "Rule:    %s\n", e.Rule)
	}
	if !validator.Equal(e.Value, e.Default) {
		fmt.Fprintf(&b, "\nChanged from the default. Reset with:\n  dsmanager set %s %s %s\n",
			e.Group, e.Key, formatValue(e.Default))
	}
	return b.String()
}

// pickSetting chooses one entry. Tests replace it and clear pickerNeedsTTY.
var (
	pickerNeedsTTY = true
	pickSetting    = func(entries []settingEntry) (int, error) {
		return fuzzyfinder.Find(
			entries,
			func(i int) string { return entries[i].label() },
			fuzzyfinder.WithPromptString("setting> "),
			fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
				if i < 0 {
					return ""
				}
				return entries[i].preview()
			}),
		)
	}
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Pick a setting interactively",
	Long: `Fuzzy-search every setting by group, key and value, with its default
and rule in a preview pane. The chosen setting is printed as a 'dsmanager set'
command line ready to edit.

Requires an interactive terminal.`,
	Example: `  dsmanager browse

  See Also: dsmanager get, dsmanager schema`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	if pickerNeedsTTY && !logging.IsTTY(cmd.OutOrStdout()) {
		return errors.NewUserError(errors.New("browse needs an interactive terminal"),
			"Use 'dsmanager get' or 'dsmanager schema' instead")
	}

	reg, err := openRegistry(cmd)
	if err != nil {
		return err
	}
	entries := settingEntries(reg)

	idx, err := pickSetting(entries)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.Wrap(err, "interactive selection failed")
	}

	e := entries[idx]
	fmt.Fprintf(cmd.OutOrStdout(), "dsmanager set %s %s %s\n", e.Group, e.Key, formatValue(e.Value))
	return nil
}

func settingEntries(reg *settings.Registry) []settingEntry {
	var entries []settingEntry
	for _, name := range reg.Groups() {
		g, _ := reg.Group(name)
		schema := g.Schema()
		for _, key := range g.Keys() {
			value, _ := g.Get(key)
			f := schema[key]
			entries = append(entries, settingEntry{
				Group:   name,
				Key:     key,
				Value:   value,
				Default: f.Default,
				Type:    f.Type,
				Rule:    f.Rule,
			})
		}
	}
	return entries
}
