// Package logging provides structured logging for dsmanager on top of
// [log/slog].
//
// Text output goes through [Handler], which colorizes on terminals and
// masks secrets: attributes whose key names a credential, values that look
// like registry or forge tokens, and passwords embedded in Docker host URLs.
// JSON output applies the same masking.
//
//	logger := logging.New(logging.Config{
//		Level:  logging.LevelFromVerbosity(2),
//		Format: logging.FormatText,
//	})
//	logger.Debug("setting changed", "group", "app", "key", "language")
//
// Commands retrieve the logger with [FromContext]. Tests use [ForTest].
package logging
