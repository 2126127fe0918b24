// Package config provides user configuration management for portdeck.
//
// This package manages a YAML configuration file holding the persisted theme
// preference and the host appearance source settings. The file follows
// OS-specific conventions for its location.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/portdeck/config.yaml or $HOME/.config/portdeck/config.yaml
//   - macOS: $HOME/.config/portdeck/config.yaml
//   - Windows: %LOCALAPPDATA%\portdeck\config.yaml
//
// PORTDECK_CONFIG overrides the location entirely.
//
// # File Format
//
//	version: 1
//	theme_mode: system
//	appearance:
//	  source: auto          # auto, gsettings, command, gtk-settings, terminal, env
//	  poll_interval: 5      # seconds, for polling sources
//
// # Usage Example
//
//	path, err := config.GetConfigPath()
//	if err != nil {
//	    return err
//	}
//	err = config.Update(path, func(c *config.Config) {
//	    c.ThemeMode = "dark"
//	})
//
// # Thread Safety
//
// Save and Update are serialized by package-level mutexes and write
// atomically through a temporary file and rename.
package config
