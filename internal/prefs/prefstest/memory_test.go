package prefstest

import (
	"context"
	"errors"
	"testing"

	"github.com/muurk/portdeck/internal/prefs"
	"github.com/muurk/portdeck/internal/theme"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if mode, err := store.Get(ctx); err != nil || mode != theme.ModeLight {
		t.Fatalf("Get() on empty store = (%v, %v), want light", mode, err)
	}
	if _, ok := store.Stored(); ok {
		t.Error("empty store should report nothing stored")
	}

	if err := store.Set(ctx, theme.ModeSystem); err != nil {
		t.Fatal(err)
	}
	if mode, _ := store.Get(ctx); mode != theme.ModeSystem {
		t.Errorf("Get() = %v, want system", mode)
	}

	store.SetFailures(errors.New("disk gone"), errors.New("disk full"))
	if mode, err := store.Get(ctx); !errors.Is(err, prefs.ErrRead) || mode != theme.DefaultMode {
		t.Errorf("Get() = (%v, %v), want default with prefs.ErrRead", mode, err)
	}
	if err := store.Set(ctx, theme.ModeDark); !errors.Is(err, prefs.ErrWrite) {
		t.Errorf("Set() error = %v, want prefs.ErrWrite", err)
	}
	if store.Writes() != 1 {
		t.Errorf("Writes() = %d, want 1", store.Writes())
	}
	if mode, _ := NewMemoryStoreWith(theme.ModeDark).Stored(); mode != theme.ModeDark {
		t.Errorf("NewMemoryStoreWith().Stored() = %v, want dark", mode)
	}
}
