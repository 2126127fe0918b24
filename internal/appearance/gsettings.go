package appearance

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/muurk/portdeck/internal/logging"
	"go.uber.org/zap"
)

const (
	gnomeInterfaceSchema = "org.gnome.desktop.interface"
	colorSchemeKey       = "color-scheme"
	gtkThemeKey          = "gtk-theme"
)

// monitorFunc starts a long-running change stream for key. The returned
// reader is closed by the caller; the process is expected to exit when ctx
// is done.
type monitorFunc func(ctx context.Context, key string) (io.ReadCloser, error)

// GSettingsSource reads the GNOME color scheme and subscribes through
// `gsettings monitor`, which pushes a line per change.
type GSettingsSource struct {
	run     runFunc
	monitor monitorFunc
}

// NewGSettingsSource creates a source backed by the gsettings binary.
func NewGSettingsSource() *GSettingsSource {
	return &GSettingsSource{
		run:     execOutput,
		monitor: execMonitor,
	}
}

func execMonitor(ctx context.Context, key string) (io.ReadCloser, error) {
	cmd := exec.CommandContext(ctx, "gsettings", "monitor", gnomeInterfaceSchema, key)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	go func() {
		// Reap the process once the context kills it.
		_ = cmd.Wait()
	}()
	return stdout, nil
}

// Name implements Source.
func (s *GSettingsSource) Name() string {
	return "gsettings"
}

// Query implements Source. GNOME 42+ exposes color-scheme; older releases
// only have a theme name, which is checked for a "dark" suffix.
func (s *GSettingsSource) Query(ctx context.Context) (Appearance, error) {
	a, _, err := s.query(ctx)
	return a, err
}

// query also reports which key answered, so Subscribe monitors the same one.
func (s *GSettingsSource) query(ctx context.Context) (Appearance, string, error) {
	out, err := s.run(ctx, "gsettings", "get", gnomeInterfaceSchema, colorSchemeKey)
	if err == nil {
		if a, ok := parseColorScheme(string(out)); ok {
			return a, colorSchemeKey, nil
		}
	} else if errors.Is(err, exec.ErrNotFound) {
		return Light, "", queryError(s.Name(), fmt.Errorf("%w: %v", ErrUnavailable, err))
	}

	out, err = s.run(ctx, "gsettings", "get", gnomeInterfaceSchema, gtkThemeKey)
	if err != nil {
		return Light, "", queryError(s.Name(), err)
	}
	return parseThemeName(string(out)), gtkThemeKey, nil
}

// Subscribe implements Source. It monitors color-scheme, or gtk-theme on
// releases without color-scheme.
func (s *GSettingsSource) Subscribe(ctx context.Context, onChange func(Appearance)) (Subscription, error) {
	initial, key, err := s.query(ctx)
	if err != nil {
		return nil, subscribeError(s.Name(), err)
	}

	monCtx, cancel := context.WithCancel(context.Background())
	stream, err := s.monitor(monCtx, key)
	if err != nil {
		cancel()
		return nil, subscribeError(s.Name(), err)
	}

	n := newNotifier(s.Name(), onChange)
	n.cleanup = func() {
		cancel()
		_ = stream.Close()
	}
	n.deliver(initial)

	go func() {
		scanner := bufio.NewScanner(stream)
		for scanner.Scan() {
			a, ok := parseMonitorLine(scanner.Text(), key)
			if !ok {
				continue
			}
			if !n.deliver(a) {
				return
			}
		}
		select {
		case <-n.done():
		default:
			logging.Warn("gsettings monitor exited; appearance changes will no longer be observed",
				zap.String("key", key),
				zap.Error(scanner.Err()),
			)
		}
	}()

	return n, nil
}

// parseColorScheme interprets the output of `gsettings get ... color-scheme`:
// 'prefer-dark', 'prefer-light' or 'default'.
func parseColorScheme(out string) (Appearance, bool) {
	return Parse(out)
}

// parseThemeName treats any GTK theme whose name mentions "dark" as dark.
func parseThemeName(out string) Appearance {
	return FromDark(strings.Contains(strings.ToLower(out), "dark"))
}

// parseMonitorLine interprets one line of `gsettings monitor` for key, e.g.
//
//	color-scheme: 'prefer-dark'
//	gtk-theme: 'Adwaita-dark'
func parseMonitorLine(line, key string) (Appearance, bool) {
	name, value, found := strings.Cut(line, ":")
	if !found || strings.TrimSpace(name) != key {
		return Light, false
	}
	if key == gtkThemeKey {
		return parseThemeName(value), true
	}
	return parseColorScheme(value)
}
