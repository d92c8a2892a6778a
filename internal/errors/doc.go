// Package errors provides error handling conventions for the dsmanager CLI.
//
// It re-exports the github.com/cockroachdb/errors constructors used across
// the command layer, defines the ExitError type that carries a process exit
// code and an optional suggestion, and fixes the exit code constants.
//
// # Exit Codes
//
//   - ExitSuccess (0): command completed successfully
//   - ExitUser (1): the caller addressed an unknown setting or supplied an
//     invalid value
//   - ExitSystem (2): the settings document could not be read, written or
//     migrated
//
// # ExitError
//
//	err := dsmerrors.NewUserError(err, "Run: dsmanager schema app")
//	var exitErr *dsmerrors.ExitError
//	if errors.As(err, &exitErr) {
//	    os.Exit(exitErr.Code)
//	}
package errors
