// Package logging provides structured logging for portdeck.
//
// This package wraps a zap logger with convenience functions for the logging
// patterns used throughout the application. It provides both general logging
// functions and theme-specific helpers.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Subscription lifecycle, every applied appearance
//   - Info: Mode changes, source selection
//   - Warn: Recovered failures (host query, preference read)
//   - Error: Failures surfaced to the user (preference write)
//
// # Structured Logging
//
// All log functions use structured fields:
//
//	logging.Warn("Host appearance query failed",
//	    zap.String("source", "gsettings"),
//	    zap.Error(err),
//	)
//
// # Specialized Logging
//
//	logging.LogModeChange("light", "system")
//	logging.LogAppearance("host", true)
//	logging.LogSubscription("gsettings", "opened", 3)
//
// # Configuration
//
// Logging is silent unless a level is given or PORTDECK_LOG_LEVEL is set:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// The interactive dashboard owns stdout, so it logs to the file named by
// PORTDECK_LOG_FILE (or --log-file) instead.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use.
package logging
