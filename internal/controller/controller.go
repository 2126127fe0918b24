package controller

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/muurk/portdeck/internal/appearance"
	"github.com/muurk/portdeck/internal/logging"
	"github.com/muurk/portdeck/internal/prefs"
	"github.com/muurk/portdeck/internal/theme"
)

type state int

const (
	stateUninitialized state = iota
	stateActive
	stateClosed
)

// hostEvent is a host notification posted to the controller inbox.
type hostEvent struct {
	generation uint64
	appearance appearance.Appearance
}

// Controller owns the theme mode, its persistence, the applied appearance
// and the host subscription.
type Controller struct {
	store   prefs.Store
	source  appearance.Source
	applier theme.Applier

	// opMu serializes Bootstrap, SetMode, Close and host event handling
	// across their blocking calls.
	opMu  sync.Mutex
	lease lease

	// mu guards the fields below for readers that must not wait on opMu.
	mu         sync.RWMutex
	state      state
	mode       theme.Mode
	subscribed bool

	inbox    chan hostEvent
	done     chan struct{}
	loopDone chan struct{}
}

// New creates an uninitialized controller. A nil applier means
// theme.Presentation.
func New(store prefs.Store, source appearance.Source, applier theme.Applier) *Controller {
	if applier == nil {
		applier = theme.Presentation
	}
	return &Controller{
		store:    store,
		source:   source,
		applier:  applier,
		lease:    lease{source: source},
		mode:     theme.DefaultMode,
		inbox:    make(chan hostEvent, 1),
		done:     make(chan struct{}),
		loopDone: make(chan struct{}),
	}
}

// Bootstrap loads the stored mode, applies it and, in system mode, starts
// following the host.
func (c *Controller) Bootstrap(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	switch c.currentState() {
	case stateActive:
		return ErrAlreadyBootstrapped
	case stateClosed:
		return ErrClosed
	}

	mode, err := c.store.Get(ctx)
	if err != nil {
		logging.Warn("Stored theme preference unreadable, using default",
			zap.String("default", theme.DefaultMode.String()),
			zap.Error(fmt.Errorf("%w: %w", ErrPersistenceRead, err)),
		)
		mode = theme.DefaultMode
	}

	c.mu.Lock()
	c.state = stateActive
	c.mode = mode
	c.mu.Unlock()

	go c.run()

	c.reconcile(ctx)

	logging.Info("Theme controller bootstrapped",
		zap.String("mode", mode.String()),
		zap.String("source", c.source.Name()),
		zap.Bool("subscribed", c.Subscribed()),
	)
	return nil
}

// Mode returns the current mode.
func (c *Controller) Mode() theme.Mode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mode
}

// Subscribed reports whether a host subscription is live.
func (c *Controller) Subscribed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.subscribed
}

// SetMode persists mode, applies it and reconciles the host subscription.
// Calls are serialized; a call made while another is in flight waits for
// it. A persistence failure is returned wrapped in ErrPersistenceWrite, but
// the new mode is applied regardless.
func (c *Controller) SetMode(ctx context.Context, mode theme.Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", theme.ErrUnknownMode, mode)
	}

	c.opMu.Lock()
	defer c.opMu.Unlock()

	switch c.currentState() {
	case stateUninitialized:
		return ErrNotBootstrapped
	case stateClosed:
		return ErrClosed
	}

	var persistErr error
	if err := c.store.Set(ctx, mode); err != nil {
		persistErr = fmt.Errorf("%w: %w", ErrPersistenceWrite, err)
		logging.Error("Theme preference not saved; it will not survive a restart",
			zap.String("mode", mode.String()),
			zap.Error(err),
		)
	}

	c.mu.Lock()
	prev := c.mode
	c.mode = mode
	c.mu.Unlock()

	c.reconcile(ctx)
	logging.LogModeChange(prev.String(), mode.String())

	return persistErr
}

// Close releases the host subscription and stops event processing. It is
// safe to call more than once.
func (c *Controller) Close() {
	c.opMu.Lock()
	prev := c.currentState()
	if prev == stateClosed {
		c.opMu.Unlock()
		return
	}

	c.lease.release()
	c.mu.Lock()
	c.state = stateClosed
	c.subscribed = false
	c.mu.Unlock()
	close(c.done)
	c.opMu.Unlock()

	if prev == stateActive {
		<-c.loopDone
	}
}

// reconcile makes the applied appearance and the subscription match the
// current mode. The old subscription is always released before anything
// else so two can never be live at once. Caller holds opMu.
func (c *Controller) reconcile(ctx context.Context) {
	c.lease.release()
	c.setSubscribed(false)

	mode := c.Mode()
	if !mode.FollowsHost() {
		// The host value is ignored for fixed modes.
		c.apply(theme.Resolve(mode, appearance.Light), "resolve")
		return
	}

	host, err := c.source.Query(ctx)
	if err != nil {
		logging.Warn("Host appearance query failed, assuming light without following changes",
			zap.String("source", c.source.Name()),
			zap.Error(fmt.Errorf("%w: %w", ErrHostQuery, err)),
		)
		c.apply(appearance.Light, "fallback")
		return
	}
	c.apply(theme.Resolve(mode, host), "resolve")

	if err := c.lease.acquire(ctx, c.post); err != nil {
		logging.Warn("Host appearance subscription failed; system theme will not follow changes",
			zap.String("source", c.source.Name()),
			zap.Error(fmt.Errorf("%w: %w", ErrHostSubscribe, err)),
		)
		return
	}
	c.setSubscribed(true)
}

func (c *Controller) apply(a appearance.Appearance, origin string) {
	c.applier.Apply(a)
	logging.LogAppearance(origin, a.IsDark())
}

// post hands a host notification to the event loop without blocking. Only
// the newest pending event matters, so an unconsumed one is replaced.
func (c *Controller) post(generation uint64, a appearance.Appearance) {
	ev := hostEvent{generation: generation, appearance: a}
	for {
		select {
		case <-c.done:
			return
		case c.inbox <- ev:
			return
		default:
		}
		select {
		case <-c.inbox:
		default:
		}
	}
}

// run is the single consumer of host events.
func (c *Controller) run() {
	defer close(c.loopDone)
	for {
		select {
		case <-c.done:
			return
		case ev := <-c.inbox:
			c.handleHostEvent(ev)
		}
	}
}

func (c *Controller) handleHostEvent(ev hostEvent) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	if c.currentState() != stateActive || !c.Mode().FollowsHost() || !c.lease.current(ev.generation) {
		logging.Debug("Dropping stale host notification",
			zap.Uint64("generation", ev.generation),
			zap.String("appearance", ev.appearance.String()),
		)
		return
	}
	c.apply(ev.appearance, "host")
}

func (c *Controller) currentState() state {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Controller) setSubscribed(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribed = v
}
