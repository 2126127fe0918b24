package appearance

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// runFunc executes a command and returns its stdout.
type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

func execOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// CommandSource asks the host for its appearance by running a command and
// parsing its output. Subscriptions poll the same command.
type CommandSource struct {
	name     string
	command  []string
	parse    func(out []byte, err error) (Appearance, error)
	interval time.Duration
	run      runFunc
}

// NewMacOSSource reads AppleInterfaceStyle through `defaults`.
func NewMacOSSource(interval time.Duration) *CommandSource {
	return &CommandSource{
		name:     "defaults",
		command:  []string{"defaults", "read", "-g", "AppleInterfaceStyle"},
		parse:    parseAppleInterfaceStyle,
		interval: interval,
		run:      execOutput,
	}
}

// NewWindowsSource reads AppsUseLightTheme from the registry through `reg`.
func NewWindowsSource(interval time.Duration) *CommandSource {
	return &CommandSource{
		name: "registry",
		command: []string{"reg", "query",
			`HKCU\Software\Microsoft\Windows\CurrentVersion\Themes\Personalize`,
			"/v", "AppsUseLightTheme"},
		parse:    parseAppsUseLightTheme,
		interval: interval,
		run:      execOutput,
	}
}

// Name implements Source.
func (s *CommandSource) Name() string {
	return s.name
}

// Query implements Source.
func (s *CommandSource) Query(ctx context.Context) (Appearance, error) {
	out, err := s.run(ctx, s.command[0], s.command[1:]...)
	if errors.Is(err, exec.ErrNotFound) {
		return Light, queryError(s.name, fmt.Errorf("%w: %v", ErrUnavailable, err))
	}
	a, err := s.parse(out, err)
	if err != nil {
		return Light, queryError(s.name, err)
	}
	return a, nil
}

// Subscribe implements Source by polling Query.
func (s *CommandSource) Subscribe(ctx context.Context, onChange func(Appearance)) (Subscription, error) {
	return pollSubscribe(ctx, s.name, s.interval, s.Query, onChange)
}

// parseAppleInterfaceStyle interprets `defaults read -g AppleInterfaceStyle`.
// The key only exists in dark mode; a non-zero exit means light.
func parseAppleInterfaceStyle(out []byte, err error) (Appearance, error) {
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return Light, nil
		}
		return Light, err
	}
	if strings.TrimSpace(string(out)) == "Dark" {
		return Dark, nil
	}
	return Light, nil
}

// parseAppsUseLightTheme interprets `reg query ... /v AppsUseLightTheme`,
// whose value line looks like:
//
//	AppsUseLightTheme    REG_DWORD    0x0
func parseAppsUseLightTheme(out []byte, err error) (Appearance, error) {
	if err != nil {
		return Light, err
	}
	for _, line := range strings.Split(string(out), "\n") {
		fields := strings.Fields(line)
		if len(fields) != 3 || fields[0] != "AppsUseLightTheme" || fields[1] != "REG_DWORD" {
			continue
		}
		switch fields[2] {
		case "0x0":
			return Dark, nil
		case "0x1":
			return Light, nil
		}
		return Light, fmt.Errorf("%w: %s", ErrUnrecognized, fields[2])
	}
	return Light, fmt.Errorf("%w: AppsUseLightTheme not present", ErrUnrecognized)
}
