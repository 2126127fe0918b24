// Package prefstest provides an in-memory prefs.Store for tests, with
// failure injection.
package prefstest

import (
	"context"
	"fmt"
	"sync"

	"github.com/muurk/portdeck/internal/prefs"
	"github.com/muurk/portdeck/internal/theme"
)

var _ prefs.Store = (*MemoryStore)(nil)

// MemoryStore is an in-process prefs.Store. ReadErr and WriteErr inject failures.
type MemoryStore struct {
	mu       sync.Mutex
	mode     theme.Mode
	stored   bool
	writes   int
	ReadErr  error
	WriteErr error
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// NewMemoryStoreWith creates a store that already holds mode.
func NewMemoryStoreWith(mode theme.Mode) *MemoryStore {
	return &MemoryStore{mode: mode, stored: true}
}

// Get implements prefs.Store.
func (s *MemoryStore) Get(ctx context.Context) (theme.Mode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ReadErr != nil {
		return theme.DefaultMode, fmt.Errorf("%w: %v", prefs.ErrRead, s.ReadErr)
	}
	if !s.stored {
		return theme.DefaultMode, nil
	}
	return s.mode, nil
}

// Set implements prefs.Store.
func (s *MemoryStore) Set(ctx context.Context, mode theme.Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.WriteErr != nil {
		return fmt.Errorf("%w: %v", prefs.ErrWrite, s.WriteErr)
	}
	s.mode = mode
	s.stored = true
	s.writes++
	return nil
}

// Stored returns the stored mode and whether anything was stored.
func (s *MemoryStore) Stored() (theme.Mode, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode, s.stored
}

// Writes returns the number of successful Set calls.
func (s *MemoryStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// SetFailures changes the injected errors under the store lock.
func (s *MemoryStore) SetFailures(readErr, writeErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ReadErr = readErr
	s.WriteErr = writeErr
}
