// Package prefs persists the user's theme mode across restarts.
//
// FileStore keeps it under theme_mode in the portdeck config file; the
// prefstest subpackage has an in-memory Store for tests. Stores return
// theme.DefaultMode when nothing has been stored, and also when the stored
// value cannot be read, in which case the error wraps ErrRead so callers can log and carry
// on. Write failures wrap ErrWrite.
package prefs
