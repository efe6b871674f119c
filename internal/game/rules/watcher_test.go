package rules

import "testing"

type countingWatcher struct {
	*BaseWatcher
	seen int
}

func newCountingWatcher(key string) *countingWatcher {
	w := &countingWatcher{BaseWatcher: NewBaseWatcher(WatcherScopeGame)}
	w.SetKey(key)
	return w
}

func (w *countingWatcher) Watch(Event) { w.seen++ }
func (w *countingWatcher) Reset()      { w.seen = 0 }

func TestWatcherRegistryNotify(t *testing.T) {
	registry := NewWatcherRegistry()
	a := newCountingWatcher("a")
	b := newCountingWatcher("b")
	registry.AddWatcher(a)
	registry.AddWatcher(b)
	registry.AddWatcher(nil)

	registry.NotifyWatchers(Event{Type: EventCardDrawn})
	registry.NotifyWatchers(Event{Type: EventCardGained})

	if a.seen != 2 || b.seen != 2 {
		t.Fatalf("expected both watchers to see 2 events, got %d and %d", a.seen, b.seen)
	}
}

func TestWatcherRegistryAddRemove(t *testing.T) {
	registry := NewWatcherRegistry()
	w := newCountingWatcher("stats")
	registry.AddWatcher(w)

	if registry.GetWatcher("stats") == nil {
		t.Fatal("expected watcher retrievable by key")
	}

	registry.RemoveWatcher("stats")
	if registry.GetWatcher("stats") != nil {
		t.Fatal("expected watcher removed")
	}
	registry.NotifyWatchers(Event{Type: EventCardDrawn})
	if w.seen != 0 {
		t.Fatal("removed watcher must not receive events")
	}
}

func TestWatcherRegistryResetAll(t *testing.T) {
	registry := NewWatcherRegistry()
	w := newCountingWatcher("stats")
	registry.AddWatcher(w)

	registry.NotifyWatchers(Event{Type: EventCardDrawn})
	if w.seen != 1 {
		t.Fatalf("expected 1 event, got %d", w.seen)
	}

	registry.ResetAll()
	if w.seen != 0 {
		t.Fatal("expected reset to clear accumulated state")
	}
}

func TestWatcherScopeString(t *testing.T) {
	if WatcherScopeGame.String() != "GAME" || WatcherScopePlayer.String() != "PLAYER" {
		t.Fatal("unexpected scope names")
	}
	if WatcherScope(9).String() != "UNKNOWN" {
		t.Fatal("unexpected fallback scope name")
	}
}
