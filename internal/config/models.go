package config

import (
	"time"

	"github.com/muurk/portdeck/internal/appearance"
)

// CurrentVersion is the only config schema version this build understands.
const CurrentVersion = 1

// Config represents the entire user configuration file.
type Config struct {
	Version int `yaml:"version"`

	// ThemeMode is the persisted theme preference ("light", "dark" or
	// "system"). Empty means never set.
	ThemeMode string `yaml:"theme_mode,omitempty"`

	Appearance *AppearanceConfig `yaml:"appearance,omitempty"`
}

// AppearanceConfig selects and tunes the host appearance source.
type AppearanceConfig struct {
	Source       string `yaml:"source"`                 // One of appearance.Kinds
	PollInterval int    `yaml:"poll_interval"`          // Seconds between polls for polling sources
	GTKSettings  string `yaml:"gtk_settings,omitempty"` // settings.ini path override
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Version: CurrentVersion,
		Appearance: &AppearanceConfig{
			Source:       appearance.KindAuto,
			PollInterval: int(appearance.DefaultPollInterval / time.Second),
		},
	}
}

// Poll returns the configured poll interval, falling back to the default
// for unset or non-positive values.
func (a *AppearanceConfig) Poll() time.Duration {
	if a == nil || a.PollInterval <= 0 {
		return appearance.DefaultPollInterval
	}
	return time.Duration(a.PollInterval) * time.Second
}

// SourceKind returns the configured source, or appearance.KindAuto when unset.
func (a *AppearanceConfig) SourceKind() string {
	if a == nil || a.Source == "" {
		return appearance.KindAuto
	}
	return a.Source
}
