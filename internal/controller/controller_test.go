package controller

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/muurk/portdeck/internal/appearance"
	"github.com/muurk/portdeck/internal/prefs"
	"github.com/muurk/portdeck/internal/prefs/prefstest"
	"github.com/muurk/portdeck/internal/theme"
)

// fakeSource is a host whose appearance the test controls. Emit notifies
// every live subscription, so a leaked one shows up as a double apply.
type fakeSource struct {
	mu           sync.Mutex
	host         appearance.Appearance
	queryErr     error
	subscribeErr error
	subs         map[int]func(appearance.Appearance)
	nextID       int
	opened       int
	maxActive    int
	callbacks    []func(appearance.Appearance)

	// flipTo, when set, becomes the host value during Subscribe, which then
	// announces it to the new callback the way real sources do.
	flipTo *appearance.Appearance

	// queryGate, when set, blocks Query until closed; queryEntered is
	// signalled on entry.
	queryGate    chan struct{}
	queryEntered chan struct{}
}

func newFakeSource(host appearance.Appearance) *fakeSource {
	return &fakeSource{host: host, subs: make(map[int]func(appearance.Appearance))}
}

func (s *fakeSource) Name() string { return "fake" }

func (s *fakeSource) Query(ctx context.Context) (appearance.Appearance, error) {
	s.mu.Lock()
	gate, entered := s.queryGate, s.queryEntered
	s.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if gate != nil {
		<-gate
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queryErr != nil {
		return appearance.Light, s.queryErr
	}
	return s.host, nil
}

func (s *fakeSource) Subscribe(ctx context.Context, onChange func(appearance.Appearance)) (appearance.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subscribeErr != nil {
		return nil, s.subscribeErr
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = onChange
	s.callbacks = append(s.callbacks, onChange)
	s.opened++
	if len(s.subs) > s.maxActive {
		s.maxActive = len(s.subs)
	}
	if s.flipTo != nil {
		s.host = *s.flipTo
		s.flipTo = nil
		onChange(s.host)
	}
	return &fakeSubscription{src: s, id: id}, nil
}

// FlipOnSubscribe makes the next Subscribe observe a instead of the value
// the preceding Query returned.
func (s *fakeSource) FlipOnSubscribe(a appearance.Appearance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flipTo = &a
}

// Emit changes the host appearance and notifies live subscriptions.
func (s *fakeSource) Emit(a appearance.Appearance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.host = a
	for _, fn := range s.subs {
		fn(a)
	}
}

func (s *fakeSource) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

func (s *fakeSource) Opened() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opened
}

func (s *fakeSource) MaxActive() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxActive
}

// Callback returns the callback registered by the i-th Subscribe call, for
// simulating a notification that races with Cancel.
func (s *fakeSource) Callback(i int) func(appearance.Appearance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.callbacks[i]
}

func (s *fakeSource) SetHost(a appearance.Appearance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.host = a
}

func (s *fakeSource) SetErrors(queryErr, subscribeErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queryErr = queryErr
	s.subscribeErr = subscribeErr
}

type fakeSubscription struct {
	src *fakeSource
	id  int
}

func (f *fakeSubscription) Cancel() {
	f.src.mu.Lock()
	defer f.src.mu.Unlock()
	delete(f.src.subs, f.id)
}

// recordingApplier records every Apply call, including redundant ones.
type recordingApplier struct {
	mu      sync.Mutex
	history []appearance.Appearance
}

func (r *recordingApplier) Apply(a appearance.Appearance) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, a)
}

func (r *recordingApplier) Last() (appearance.Appearance, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.history) == 0 {
		return appearance.Light, false
	}
	return r.history[len(r.history)-1], true
}

func (r *recordingApplier) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.history)
}

type harness struct {
	store   *prefstest.MemoryStore
	source  *fakeSource
	applier *recordingApplier
	ctrl    *Controller
}

func newHarness(t *testing.T, store *prefstest.MemoryStore, host appearance.Appearance) *harness {
	t.Helper()
	h := &harness{
		store:   store,
		source:  newFakeSource(host),
		applier: &recordingApplier{},
	}
	h.ctrl = New(h.store, h.source, h.applier)
	t.Cleanup(h.ctrl.Close)
	return h
}

func (h *harness) bootstrap(t *testing.T) {
	t.Helper()
	if err := h.ctrl.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
}

func (h *harness) assertApplied(t *testing.T, want appearance.Appearance) {
	t.Helper()
	got, ok := h.applier.Last()
	if !ok {
		t.Fatalf("nothing applied, want %v", want)
	}
	if got != want {
		t.Fatalf("applied %v, want %v", got, want)
	}
}

// assertSubscriptionInvariant checks that exactly one subscription is live
// in system mode and none otherwise.
func (h *harness) assertSubscriptionInvariant(t *testing.T) {
	t.Helper()
	want := 0
	if h.ctrl.Mode() == theme.ModeSystem {
		want = 1
	}
	if got := h.source.Active(); got != want {
		t.Fatalf("mode %v has %d live subscriptions, want %d", h.ctrl.Mode(), got, want)
	}
	if h.ctrl.Subscribed() != (want == 1) {
		t.Fatalf("Subscribed() = %v with %d live subscriptions", h.ctrl.Subscribed(), want)
	}
}

func waitForApplied(t *testing.T, r *recordingApplier, want appearance.Appearance) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if got, ok := r.Last(); ok && got == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	got, _ := r.Last()
	t.Fatalf("applied %v, want %v within deadline", got, want)
}

// settle gives the event loop time to process anything in flight.
func settle() {
	time.Sleep(20 * time.Millisecond)
}

func TestBootstrapNoStoredPreference(t *testing.T) {
	h := newHarness(t, prefstest.NewMemoryStore(), appearance.Dark)
	h.bootstrap(t)

	if h.ctrl.Mode() != theme.ModeLight {
		t.Errorf("Mode() = %v, want light", h.ctrl.Mode())
	}
	h.assertApplied(t, appearance.Light)
	h.assertSubscriptionInvariant(t)
	if h.source.Opened() != 0 {
		t.Errorf("opened %d subscriptions, want 0", h.source.Opened())
	}
}

func TestBootstrapStoredDark(t *testing.T) {
	h := newHarness(t, prefstest.NewMemoryStoreWith(theme.ModeDark), appearance.Light)
	h.bootstrap(t)

	h.assertApplied(t, appearance.Dark)
	h.assertSubscriptionInvariant(t)
}

func TestBootstrapStoredSystem(t *testing.T) {
	h := newHarness(t, prefstest.NewMemoryStoreWith(theme.ModeSystem), appearance.Dark)
	h.bootstrap(t)

	h.assertApplied(t, appearance.Dark)
	if h.source.Opened() != 1 {
		t.Errorf("opened %d subscriptions, want 1", h.source.Opened())
	}
	h.assertSubscriptionInvariant(t)
}

func TestSetModeLightFromSystem(t *testing.T) {
	h := newHarness(t, prefstest.NewMemoryStoreWith(theme.ModeSystem), appearance.Dark)
	h.bootstrap(t)

	if err := h.ctrl.SetMode(context.Background(), theme.ModeLight); err != nil {
		t.Fatalf("SetMode() error = %v", err)
	}

	if stored, _ := h.store.Stored(); stored != theme.ModeLight {
		t.Errorf("stored %v, want light", stored)
	}
	h.assertApplied(t, appearance.Light)
	if h.source.Active() != 0 {
		t.Errorf("%d subscriptions still live, want 0", h.source.Active())
	}
	h.assertSubscriptionInvariant(t)
}

func TestSetModeSystemFromDark(t *testing.T) {
	h := newHarness(t, prefstest.NewMemoryStoreWith(theme.ModeDark), appearance.Light)
	h.bootstrap(t)

	if err := h.ctrl.SetMode(context.Background(), theme.ModeSystem); err != nil {
		t.Fatalf("SetMode() error = %v", err)
	}

	if stored, _ := h.store.Stored(); stored != theme.ModeSystem {
		t.Errorf("stored %v, want system", stored)
	}
	h.assertApplied(t, appearance.Light)
	if h.source.Opened() != 1 {
		t.Errorf("opened %d subscriptions, want 1", h.source.Opened())
	}
	h.assertSubscriptionInvariant(t)
}

func TestHostNotificationAppliesWithoutPersisting(t *testing.T) {
	h := newHarness(t, prefstest.NewMemoryStoreWith(theme.ModeSystem), appearance.Light)
	h.bootstrap(t)
	writes := h.store.Writes()

	h.source.Emit(appearance.Dark)

	waitForApplied(t, h.applier, appearance.Dark)
	if h.store.Writes() != writes {
		t.Errorf("host notification wrote the store (%d writes, want %d)", h.store.Writes(), writes)
	}
	if stored, _ := h.store.Stored(); stored != theme.ModeSystem {
		t.Errorf("stored %v, want system", stored)
	}
	if h.ctrl.Mode() != theme.ModeSystem {
		t.Errorf("Mode() = %v, want system", h.ctrl.Mode())
	}
}

func TestRestartRestoresEffectiveAppearance(t *testing.T) {
	for _, mode := range theme.Modes {
		for _, host := range []appearance.Appearance{appearance.Light, appearance.Dark} {
			t.Run(mode.String()+"/"+host.String(), func(t *testing.T) {
				store := prefstest.NewMemoryStore()

				first := newHarness(t, store, host)
				first.bootstrap(t)
				if err := first.ctrl.SetMode(context.Background(), mode); err != nil {
					t.Fatalf("SetMode() error = %v", err)
				}
				first.ctrl.Close()

				second := newHarness(t, store, host)
				second.bootstrap(t)

				second.assertApplied(t, theme.Resolve(mode, host))
				if second.ctrl.Mode() != mode {
					t.Errorf("Mode() after restart = %v, want %v", second.ctrl.Mode(), mode)
				}
				second.assertSubscriptionInvariant(t)
			})
		}
	}
}

func TestSetModeTwiceKeepsSingleSubscription(t *testing.T) {
	h := newHarness(t, prefstest.NewMemoryStore(), appearance.Light)
	h.bootstrap(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := h.ctrl.SetMode(ctx, theme.ModeSystem); err != nil {
			t.Fatalf("SetMode() error = %v", err)
		}
	}
	h.assertSubscriptionInvariant(t)

	before := h.applier.Count()
	h.source.Emit(appearance.Dark)
	waitForApplied(t, h.applier, appearance.Dark)
	settle()
	if got := h.applier.Count() - before; got != 1 {
		t.Errorf("one host notification caused %d applies, want 1", got)
	}

	for i := 0; i < 2; i++ {
		if err := h.ctrl.SetMode(ctx, theme.ModeDark); err != nil {
			t.Fatalf("SetMode() error = %v", err)
		}
	}
	h.assertSubscriptionInvariant(t)
	if h.source.MaxActive() != 1 {
		t.Errorf("up to %d subscriptions were live at once, want 1", h.source.MaxActive())
	}
}

func TestConcurrentSetModeNeverLeaksSubscriptions(t *testing.T) {
	h := newHarness(t, prefstest.NewMemoryStore(), appearance.Dark)
	h.bootstrap(t)

	rng := rand.New(rand.NewSource(1))
	modes := make([]theme.Mode, 64)
	for i := range modes {
		modes[i] = theme.Modes[rng.Intn(len(theme.Modes))]
	}

	var wg sync.WaitGroup
	for _, m := range modes {
		wg.Add(1)
		go func(m theme.Mode) {
			defer wg.Done()
			if err := h.ctrl.SetMode(context.Background(), m); err != nil {
				t.Errorf("SetMode(%v) error = %v", m, err)
			}
		}(m)
		go h.source.Emit(appearance.FromDark(rng.Intn(2) == 0))
	}
	wg.Wait()

	if h.source.MaxActive() > 1 {
		t.Errorf("up to %d subscriptions were live at once, want at most 1", h.source.MaxActive())
	}
	h.assertSubscriptionInvariant(t)
}

func TestNotificationFromCancelledSubscriptionIsIgnored(t *testing.T) {
	h := newHarness(t, prefstest.NewMemoryStoreWith(theme.ModeSystem), appearance.Light)
	h.bootstrap(t)
	stale := h.source.Callback(0)

	// Re-selecting system replaces the subscription.
	if err := h.ctrl.SetMode(context.Background(), theme.ModeSystem); err != nil {
		t.Fatal(err)
	}
	stale(appearance.Dark)
	settle()
	h.assertApplied(t, appearance.Light)

	if err := h.ctrl.SetMode(context.Background(), theme.ModeLight); err != nil {
		t.Fatal(err)
	}
	h.source.Callback(1)(appearance.Dark)
	settle()
	h.assertApplied(t, appearance.Light)
}

func TestHostQueryFailureFallsBackToLight(t *testing.T) {
	h := newHarness(t, prefstest.NewMemoryStoreWith(theme.ModeSystem), appearance.Dark)
	h.source.SetErrors(errors.New("no display"), nil)
	h.bootstrap(t)

	h.assertApplied(t, appearance.Light)
	if h.ctrl.Subscribed() || h.source.Active() != 0 {
		t.Error("query failure should leave no live subscription")
	}
	if h.ctrl.Mode() != theme.ModeSystem {
		t.Errorf("Mode() = %v, want system", h.ctrl.Mode())
	}

	// The host recovers; re-selecting system picks it up.
	h.source.SetErrors(nil, nil)
	if err := h.ctrl.SetMode(context.Background(), theme.ModeSystem); err != nil {
		t.Fatal(err)
	}
	h.assertApplied(t, appearance.Dark)
	h.assertSubscriptionInvariant(t)
}

func TestHostSubscribeFailureKeepsQueriedValue(t *testing.T) {
	h := newHarness(t, prefstest.NewMemoryStore(), appearance.Dark)
	h.bootstrap(t)
	h.source.SetErrors(nil, errors.New("bus unavailable"))

	if err := h.ctrl.SetMode(context.Background(), theme.ModeSystem); err != nil {
		t.Fatalf("SetMode() should not surface host failures, got %v", err)
	}

	h.assertApplied(t, appearance.Dark)
	if h.ctrl.Subscribed() || h.source.Active() != 0 {
		t.Error("subscribe failure should leave no live subscription")
	}
}

func TestPersistenceWriteFailureStillAdvances(t *testing.T) {
	store := prefstest.NewMemoryStore()
	h := newHarness(t, store, appearance.Dark)
	h.bootstrap(t)
	store.SetFailures(nil, errors.New("read-only filesystem"))

	err := h.ctrl.SetMode(context.Background(), theme.ModeSystem)
	if !errors.Is(err, ErrPersistenceWrite) || !errors.Is(err, prefs.ErrWrite) {
		t.Fatalf("SetMode() error = %v, want ErrPersistenceWrite", err)
	}

	if h.ctrl.Mode() != theme.ModeSystem {
		t.Errorf("Mode() = %v, want system", h.ctrl.Mode())
	}
	h.assertApplied(t, appearance.Dark)
	h.assertSubscriptionInvariant(t)
	if _, stored := store.Stored(); stored {
		t.Error("nothing should have been stored")
	}
}

func TestPersistenceReadFailureUsesDefault(t *testing.T) {
	store := prefstest.NewMemoryStoreWith(theme.ModeDark)
	store.SetFailures(errors.New("corrupt"), nil)
	h := newHarness(t, store, appearance.Dark)
	h.bootstrap(t)

	if h.ctrl.Mode() != theme.ModeLight {
		t.Errorf("Mode() = %v, want light", h.ctrl.Mode())
	}
	h.assertApplied(t, appearance.Light)
}

func TestLifecycleErrors(t *testing.T) {
	h := newHarness(t, prefstest.NewMemoryStore(), appearance.Light)
	ctx := context.Background()

	if err := h.ctrl.SetMode(ctx, theme.ModeDark); !errors.Is(err, ErrNotBootstrapped) {
		t.Errorf("SetMode() before Bootstrap error = %v, want ErrNotBootstrapped", err)
	}
	if h.store.Writes() != 0 {
		t.Error("SetMode() before Bootstrap should not persist")
	}

	h.bootstrap(t)
	if err := h.ctrl.Bootstrap(ctx); !errors.Is(err, ErrAlreadyBootstrapped) {
		t.Errorf("second Bootstrap() error = %v, want ErrAlreadyBootstrapped", err)
	}

	if err := h.ctrl.SetMode(ctx, theme.Mode("sepia")); !errors.Is(err, theme.ErrUnknownMode) {
		t.Errorf("SetMode(sepia) error = %v, want ErrUnknownMode", err)
	}
	if h.store.Writes() != 0 {
		t.Error("invalid mode should not persist")
	}

	h.ctrl.Close()
	if err := h.ctrl.SetMode(ctx, theme.ModeDark); !errors.Is(err, ErrClosed) {
		t.Errorf("SetMode() after Close error = %v, want ErrClosed", err)
	}
	if err := h.ctrl.Bootstrap(ctx); !errors.Is(err, ErrClosed) {
		t.Errorf("Bootstrap() after Close error = %v, want ErrClosed", err)
	}
}

func TestCloseReleasesSubscription(t *testing.T) {
	h := newHarness(t, prefstest.NewMemoryStoreWith(theme.ModeSystem), appearance.Light)
	h.bootstrap(t)

	h.ctrl.Close()
	h.ctrl.Close()

	if h.source.Active() != 0 {
		t.Errorf("%d subscriptions live after Close, want 0", h.source.Active())
	}
	if h.ctrl.Subscribed() {
		t.Error("Subscribed() should be false after Close")
	}

	before := h.applier.Count()
	h.source.Callback(0)(appearance.Dark)
	settle()
	if h.applier.Count() != before {
		t.Error("notification after Close should be ignored")
	}
}

func TestCloseBeforeBootstrap(t *testing.T) {
	h := newHarness(t, prefstest.NewMemoryStore(), appearance.Light)
	done := make(chan struct{})
	go func() {
		h.ctrl.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close() before Bootstrap should not block")
	}
}

func TestSetModeCallsAreSerialized(t *testing.T) {
	h := newHarness(t, prefstest.NewMemoryStore(), appearance.Dark)
	h.bootstrap(t)

	gate := make(chan struct{})
	entered := make(chan struct{}, 1)
	h.source.mu.Lock()
	h.source.queryGate = gate
	h.source.queryEntered = entered
	h.source.mu.Unlock()

	ctx := context.Background()
	firstDone := make(chan error, 1)
	go func() { firstDone <- h.ctrl.SetMode(ctx, theme.ModeSystem) }()
	<-entered

	secondDone := make(chan error, 1)
	go func() { secondDone <- h.ctrl.SetMode(ctx, theme.ModeLight) }()

	select {
	case <-secondDone:
		t.Fatal("second SetMode completed while the first was blocked on the host")
	case <-time.After(50 * time.Millisecond):
	}

	close(gate)
	if err := <-firstDone; err != nil {
		t.Fatal(err)
	}
	if err := <-secondDone; err != nil {
		t.Fatal(err)
	}

	if h.ctrl.Mode() != theme.ModeLight {
		t.Errorf("Mode() = %v, want light (the queued call runs last)", h.ctrl.Mode())
	}
	h.assertApplied(t, appearance.Light)
	h.assertSubscriptionInvariant(t)
	if h.source.MaxActive() != 1 {
		t.Errorf("up to %d subscriptions were live at once, want 1", h.source.MaxActive())
	}
}

func TestPostCoalescesPendingEvents(t *testing.T) {
	c := New(prefstest.NewMemoryStore(), newFakeSource(appearance.Light), &recordingApplier{})

	// No event loop is running, so posts pile up in the inbox.
	c.post(1, appearance.Dark)
	c.post(1, appearance.Light)
	c.post(2, appearance.Dark)

	select {
	case ev := <-c.inbox:
		if ev.generation != 2 || ev.appearance != appearance.Dark {
			t.Errorf("inbox holds %+v, want the newest event", ev)
		}
	default:
		t.Fatal("inbox should hold one event")
	}
	c.Close()
}

func TestHostChangeBetweenQueryAndSubscribeIsApplied(t *testing.T) {
	t.Run("bootstrap", func(t *testing.T) {
		h := newHarness(t, prefstest.NewMemoryStoreWith(theme.ModeSystem), appearance.Light)
		h.source.FlipOnSubscribe(appearance.Dark)
		h.bootstrap(t)

		waitForApplied(t, h.applier, appearance.Dark)
		h.assertSubscriptionInvariant(t)
	})

	t.Run("set mode", func(t *testing.T) {
		h := newHarness(t, prefstest.NewMemoryStoreWith(theme.ModeLight), appearance.Dark)
		h.bootstrap(t)

		h.source.FlipOnSubscribe(appearance.Light)
		if err := h.ctrl.SetMode(context.Background(), theme.ModeSystem); err != nil {
			t.Fatalf("SetMode() error = %v", err)
		}

		waitForApplied(t, h.applier, appearance.Light)
		settle()
		h.assertApplied(t, appearance.Light)
		h.assertSubscriptionInvariant(t)
	})
}
