package controller

import "errors"

// Failure categories. Only ErrPersistenceWrite and the lifecycle errors are
// returned to callers; the rest are logged and recovered.
var (
	// ErrPersistenceRead: stored preference unreadable; recovered as light.
	ErrPersistenceRead = errors.New("persistence read failure")

	// ErrPersistenceWrite: preference not saved. In-memory state still
	// advances, so the choice holds until restart.
	ErrPersistenceWrite = errors.New("persistence write failure")

	// ErrHostQuery: host appearance unreadable; recovered as light.
	ErrHostQuery = errors.New("host query failure")

	// ErrHostSubscribe: no live subscription; system mode stays static
	// until the next SetMode.
	ErrHostSubscribe = errors.New("host subscribe failure")

	// ErrNotBootstrapped is returned by SetMode before Bootstrap.
	ErrNotBootstrapped = errors.New("theme controller not bootstrapped")

	// ErrAlreadyBootstrapped is returned by a second Bootstrap.
	ErrAlreadyBootstrapped = errors.New("theme controller already bootstrapped")

	// ErrClosed is returned by operations after Close.
	ErrClosed = errors.New("theme controller closed")
)
