// Package cmd holds build metadata injected via ldflags, for example
//
//	-ldflags "-X github.com/valderan/docker-simple-manager/cmd.Version=1.1.0"
package cmd

// Build-time variables set via ldflags.
var (
	// Version is the release version of the build.
	Version = "dev"
	// Commit is the git commit SHA of the build.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)
