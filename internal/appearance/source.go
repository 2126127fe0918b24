package appearance

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"time"
)

// Source kinds accepted by New. They match the config file values.
const (
	KindAuto        = "auto"
	KindGSettings   = "gsettings"
	KindCommand     = "command"
	KindGTKSettings = "gtk-settings"
	KindTerminal    = "terminal"
	KindEnv         = "env"
)

// Kinds lists every accepted kind, for flag help and validation.
var Kinds = []string{KindAuto, KindGSettings, KindCommand, KindGTKSettings, KindTerminal, KindEnv}

// Options tunes the sources built by New.
type Options struct {
	PollInterval time.Duration // Polling period for command sources
	GTKSettings  string        // settings.ini override for the gtk-settings source
}

// New builds the source for kind. KindAuto picks the best source for the
// running platform.
func New(kind string, opts Options) (Source, error) {
	switch kind {
	case KindAuto, "":
		return Detect(opts), nil
	case KindGSettings:
		return NewGSettingsSource(), nil
	case KindCommand:
		if runtime.GOOS == "windows" {
			return NewWindowsSource(opts.PollInterval), nil
		}
		return NewMacOSSource(opts.PollInterval), nil
	case KindGTKSettings:
		return NewGTKSettingsSource(opts.GTKSettings), nil
	case KindTerminal:
		return NewTerminalSource(), nil
	case KindEnv:
		return NewEnvSource(), nil
	default:
		return nil, fmt.Errorf("unknown appearance source %q (valid: %v)", kind, Kinds)
	}
}

// Detect chooses a source for the current platform:
//   - macOS: `defaults`
//   - Windows: `reg query`
//   - elsewhere: gsettings if installed, then GTK_THEME if set, then
//     settings.ini if present, then the terminal background
func Detect(opts Options) Source {
	return detect(runtime.GOOS, opts, exec.LookPath, os.Getenv, fileExists)
}

func detect(goos string, opts Options, lookPath func(string) (string, error), getenv func(string) string, exists func(string) bool) Source {
	switch goos {
	case "darwin":
		return NewMacOSSource(opts.PollInterval)
	case "windows":
		return NewWindowsSource(opts.PollInterval)
	}

	if _, err := lookPath("gsettings"); err == nil {
		return NewGSettingsSource()
	}
	if getenv(GTKThemeEnvVar) != "" {
		return NewEnvSource()
	}
	gtk := NewGTKSettingsSource(opts.GTKSettings)
	if gtk.Path != "" && exists(gtk.Path) {
		return gtk
	}
	return NewTerminalSource()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
