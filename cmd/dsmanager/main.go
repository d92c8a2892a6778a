// Package main is the entry point for the dsmanager CLI.
package main

import (
	"os"

	"github.com/valderan/docker-simple-manager/cmd/dsmanager/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(commands.ReportError(os.Stderr, err))
	}
}
