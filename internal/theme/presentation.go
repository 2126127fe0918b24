package theme

import (
	"sync"

	"github.com/muurk/portdeck/internal/appearance"
)

// Applier sets the effective appearance of the UI.
type Applier interface {
	Apply(a appearance.Appearance)
}

// Flag is a process-wide "is dark" presentation flag observed by the render
// layer. Apply is idempotent: observers hear about actual changes only.
type Flag struct {
	mu        sync.Mutex
	dark      bool
	applied   bool
	observers map[int]func(appearance.Appearance)
	nextID    int
}

// Presentation is the flag the render layer reads.
var Presentation = NewFlag()

// NewFlag creates an unapplied flag (reads as light).
func NewFlag() *Flag {
	return &Flag{observers: make(map[int]func(appearance.Appearance))}
}

// Apply implements Applier.
func (f *Flag) Apply(a appearance.Appearance) {
	f.mu.Lock()
	dark := a.IsDark()
	if f.applied && f.dark == dark {
		f.mu.Unlock()
		return
	}
	f.dark = dark
	f.applied = true
	observers := make([]func(appearance.Appearance), 0, len(f.observers))
	for _, fn := range f.observers {
		observers = append(observers, fn)
	}
	f.mu.Unlock()

	for _, fn := range observers {
		fn(a)
	}
}

// IsDark reports the current flag value.
func (f *Flag) IsDark() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dark
}

// Appearance returns the current flag value as an Appearance.
func (f *Flag) Appearance() appearance.Appearance {
	return appearance.FromDark(f.IsDark())
}

// Observe registers fn to be called after every change. The returned func
// removes the observer.
func (f *Flag) Observe(fn func(appearance.Appearance)) (stop func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextID
	f.nextID++
	f.observers[id] = fn

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.observers, id)
	}
}
