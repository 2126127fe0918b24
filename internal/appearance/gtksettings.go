package appearance

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/muurk/portdeck/internal/logging"
	"go.uber.org/zap"
)

const (
	preferDarkKey   = "gtk-application-prefer-dark-theme"
	gtkThemeNameKey = "gtk-theme-name"
)

// GTKSettingsSource reads the GTK 3 settings.ini and watches it for
// changes. It covers desktops without gsettings (XFCE, sway, i3 setups).
type GTKSettingsSource struct {
	Path string
}

// DefaultGTKSettingsPath returns $XDG_CONFIG_HOME/gtk-3.0/settings.ini,
// falling back to ~/.config.
func DefaultGTKSettingsPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "gtk-3.0", "settings.ini")
}

// NewGTKSettingsSource creates a source for path, or the default location
// when path is empty.
func NewGTKSettingsSource(path string) *GTKSettingsSource {
	if path == "" {
		path = DefaultGTKSettingsPath()
	}
	return &GTKSettingsSource{Path: path}
}

// Name implements Source.
func (s *GTKSettingsSource) Name() string {
	return "gtk-settings"
}

// Query implements Source.
func (s *GTKSettingsSource) Query(ctx context.Context) (Appearance, error) {
	if err := ctx.Err(); err != nil {
		return Light, queryError(s.Name(), err)
	}
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return Light, queryError(s.Name(), err)
	}
	defer func() { _ = f.Close() }()

	a, err := parseGTKSettings(bufio.NewScanner(f))
	if err != nil {
		return Light, queryError(s.Name(), err)
	}
	return a, nil
}

// Subscribe implements Source. The parent directory is watched rather than
// the file itself because most tools replace settings.ini with a rename.
func (s *GTKSettingsSource) Subscribe(ctx context.Context, onChange func(Appearance)) (Subscription, error) {
	initial, err := s.Query(ctx)
	if err != nil {
		return nil, subscribeError(s.Name(), err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, subscribeError(s.Name(), err)
	}
	if err := watcher.Add(filepath.Dir(s.Path)); err != nil {
		_ = watcher.Close()
		return nil, subscribeError(s.Name(), err)
	}

	n := newNotifier(s.Name(), onChange)
	n.cleanup = func() { _ = watcher.Close() }
	n.deliver(initial)

	target := filepath.Clean(s.Path)
	go func() {
		for {
			select {
			case <-n.done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				a, err := s.Query(context.Background())
				if err != nil {
					logging.Debug("Re-reading GTK settings failed",
						zap.String("path", s.Path),
						zap.Error(err),
					)
					continue
				}
				if !n.deliver(a) {
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logging.Warn("GTK settings watcher error", zap.Error(err))
			}
		}
	}()

	return n, nil
}

// parseGTKSettings looks for the [Settings] keys that express a dark
// preference. An explicit prefer-dark flag wins over the theme name.
func parseGTKSettings(scanner *bufio.Scanner) (Appearance, error) {
	var (
		preferDark  *bool
		themeIsDark bool
		sawTheme    bool
	)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "[") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.ToLower(strings.TrimSpace(value))

		switch key {
		case preferDarkKey:
			dark := value == "1" || value == "true"
			preferDark = &dark
		case gtkThemeNameKey:
			sawTheme = true
			themeIsDark = strings.Contains(value, "dark")
		}
	}
	if err := scanner.Err(); err != nil {
		return Light, err
	}

	switch {
	case preferDark != nil && *preferDark:
		return Dark, nil
	case sawTheme:
		return FromDark(themeIsDark), nil
	case preferDark != nil:
		return Light, nil
	default:
		return Light, fmt.Errorf("%w: no %s or %s", ErrUnrecognized, preferDarkKey, gtkThemeNameKey)
	}
}
