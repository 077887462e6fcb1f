// Package logging provides structured logging utilities for fleet-policy components.
//
// It wraps the standard library slog package with project defaults and
// conventions for consistent logging across the CLI and the API server:
// structured JSON output to stderr, environment-based log level configuration
// (LOG_LEVEL), automatic module and version context, and source location
// tracking for debug logs.
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("themis", "v1.0.0")
//
//	    slog.Info("generating bundle", "policy", name)
//	    slog.Error("generation failed", "error", err)
//	}
//
// Setting an explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("themis", "v1.0.0", "debug")
//
// The LOG_LEVEL environment variable controls verbosity when no explicit
// level is given (DEBUG, INFO, WARN, ERROR; case-insensitive; default INFO).
package logging
