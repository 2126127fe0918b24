package theme

import "github.com/muurk/portdeck/internal/appearance"

// Resolve maps a mode and the host's current appearance to the effective
// appearance. host is only consulted for ModeSystem.
func Resolve(mode Mode, host appearance.Appearance) appearance.Appearance {
	switch mode {
	case ModeDark:
		return appearance.Dark
	case ModeSystem:
		return host
	default:
		return appearance.Light
	}
}
