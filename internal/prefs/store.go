package prefs

import (
	"context"
	"errors"
	"fmt"

	"github.com/muurk/portdeck/internal/config"
	"github.com/muurk/portdeck/internal/theme"
)

var (
	// ErrRead wraps failures to read the stored preference. The value
	// returned alongside it is always theme.DefaultMode.
	ErrRead = errors.New("reading theme preference")

	// ErrWrite wraps failures to persist the preference.
	ErrWrite = errors.New("writing theme preference")
)

// Store persists the user's theme mode.
type Store interface {
	// Get returns the stored mode, or theme.DefaultMode when nothing is
	// stored. On error it still returns theme.DefaultMode.
	Get(ctx context.Context) (theme.Mode, error)

	// Set stores mode.
	Set(ctx context.Context, mode theme.Mode) error
}

// FileStore keeps the mode in the portdeck YAML config file under the
// theme_mode key.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the config file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultFileStore creates a store backed by the platform config file.
func DefaultFileStore() (*FileStore, error) {
	path, err := config.GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("locating config file: %w", err)
	}
	return NewFileStore(path), nil
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Get implements Store.
func (s *FileStore) Get(ctx context.Context) (theme.Mode, error) {
	if err := ctx.Err(); err != nil {
		return theme.DefaultMode, fmt.Errorf("%w: %v", ErrRead, err)
	}

	cfg, err := config.Load(s.path)
	if err != nil {
		return theme.DefaultMode, fmt.Errorf("%w: %v", ErrRead, err)
	}
	if cfg.ThemeMode == "" {
		return theme.DefaultMode, nil
	}

	mode, err := theme.ParseMode(cfg.ThemeMode)
	if err != nil {
		return theme.DefaultMode, fmt.Errorf("%w: %v", ErrRead, err)
	}
	return mode, nil
}

// Set implements Store.
func (s *FileStore) Set(ctx context.Context, mode theme.Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %w: %q", ErrWrite, theme.ErrUnknownMode, mode)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}

	err := config.Update(s.path, func(c *config.Config) {
		c.ThemeMode = mode.String()
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}
