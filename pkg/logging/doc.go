// Package logging provides structured logging utilities for secenum.
//
// # Overview
//
// This package wraps the standard library slog package with secenum-specific
// defaults and conventions for consistent logging across all components. It
// supports environment-based log level configuration, module/version context
// injection, and automatic source location tracking for debug logs.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: detailed diagnostic information with source location
//   - INFO: general informational messages (default)
//   - WARN/WARNING: potentially problematic situations, e.g. a degraded read
//   - ERROR: failures requiring attention
//
// # Usage
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("secenum", version)
//
//	    slog.Info("starting scan", "session", sessionID)
//	    slog.Warn("could not read uptime", "path", "/proc/uptime")
//	    slog.Error("package listing failed", "error", err)
//	}
//
// Setting an explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("secenum", version, "warn")
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity:
//
//	LOG_LEVEL=debug secenum scan
//
// If LOG_LEVEL is not set, defaults to INFO level.
//
// # Output Format
//
// All logs are written to stderr in JSON format:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "starting scan",
//	    "module": "secenum",
//	    "version": "v0.1.0",
//	    "session": "1c7b..."
//	}
package logging
