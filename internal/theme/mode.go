package theme

import (
	"errors"
	"fmt"
	"strings"
)

// Mode is the user's stored theme preference.
type Mode string

const (
	ModeLight  Mode = "light"
	ModeDark   Mode = "dark"
	ModeSystem Mode = "system"
)

// DefaultMode applies when no preference has been stored.
const DefaultMode = ModeLight

// Modes lists every mode in picker order.
var Modes = [...]Mode{ModeLight, ModeDark, ModeSystem}

// ErrUnknownMode is returned when a mode string is not recognised.
var ErrUnknownMode = errors.New("unknown theme mode")

// ParseMode parses a mode name, ignoring case and surrounding whitespace.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return DefaultMode, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
	return m, nil
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeLight, ModeDark, ModeSystem:
		return true
	}
	return false
}

// FollowsHost reports whether the effective appearance depends on the host.
func (m Mode) FollowsHost() bool {
	return m == ModeSystem
}

func (m Mode) String() string {
	return string(m)
}

// Label is the display name shown in pickers.
func (m Mode) Label() string {
	switch m {
	case ModeLight:
		return "Light"
	case ModeDark:
		return "Dark"
	case ModeSystem:
		return "System"
	}
	return string(m)
}

// Description is the one-line hint shown under the label.
func (m Mode) Description() string {
	switch m {
	case ModeLight:
		return "Bright theme"
	case ModeDark:
		return "Dark theme"
	case ModeSystem:
		return "Follow the system theme"
	}
	return ""
}
