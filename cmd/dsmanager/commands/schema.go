package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/valderan/docker-simple-manager/internal/settings"
)

var schemaJSON bool

func init() {
	schemaCmd.Flags().BoolVar(&schemaJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(schemaCmd)
}

var schemaCmd = &cobra.Command{
	Use:   "schema [group]",
	Short: "List groups, keys, defaults and rules",
	Long: `List every key of every group, or of one group, with the type of its
default, the default itself and the rule new values must satisfy.

The schema is compiled in; no settings file is read.`,
	Example: `  # Whole schema
  dsmanager schema

  # One group as JSON
  dsmanager schema app --json

  See Also: dsmanager get, dsmanager set`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSchema,
}

func runSchema(cmd *cobra.Command, args []string) error {
	reg := holder.Get(settingsPath())

	names := reg.Groups()
	if len(args) == 1 {
		if _, err := reg.Group(args[0]); err != nil {
			return settingsError(err)
		}
		names = args[:1]
	}

	if schemaJSON {
		out := make(map[string]map[string]settings.FieldSchema, len(names))
		for _, name := range names {
			g, _ := reg.Group(name)
			out[name] = g.Schema()
		}
		return writeJSON(cmd.OutOrStdout(), out)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for i, name := range names {
		g, _ := reg.Group(name)
		schema := g.Schema()

		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "[%s]\n", name)
		fmt.Fprintln(w, "  KEY\tTYPE\tDEFAULT\tRULE")
		for _, key := range g.Keys() {
			f := schema[key]
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", key, f.Type, formatValue(f.Default), f.Rule)
		}
	}
	return w.Flush()
}
