package lifecycle

import "testing"

func TestObserverNotifiesTransitions(t *testing.T) {
	observer := NewObserver()

	var got []AppState
	sub := observer.Subscribe(func(prev, next AppState) {
		got = append(got, prev, next)
	})
	defer sub.Cancel()

	observer.SetState(StateBackground)
	observer.SetState(StateBackground) // duplicate, ignored
	observer.SetState(StateActive)

	want := []AppState{StateActive, StateBackground, StateBackground, StateActive}
	if len(got) != len(want) {
		t.Fatalf("transitions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("transitions = %v, want %v", got, want)
		}
	}
}

func TestSubscriptionCancelStopsDelivery(t *testing.T) {
	observer := NewObserver()

	calls := 0
	sub := observer.Subscribe(func(prev, next AppState) { calls++ })

	observer.SetState(StateBackground)
	sub.Cancel()
	sub.Cancel() // safe to repeat
	observer.SetState(StateActive)

	if calls != 1 {
		t.Fatalf("listener called %d times after cancel, want 1", calls)
	}
}

func TestWatchForegroundTriggersOnlyOnReEntry(t *testing.T) {
	observer := NewObserver()

	authenticated := true
	relocks := 0
	sub := WatchForeground(observer, func() bool { return authenticated }, func() { relocks++ })
	defer sub.Cancel()

	observer.SetState(StateBackground) // leaving: no relock
	observer.SetState(StateActive)     // re-entry: relock
	if relocks != 1 {
		t.Fatalf("relocks = %d, want 1", relocks)
	}

	observer.SetState(StateInactive)
	observer.SetState(StateActive) // inactive counts as leaving too
	if relocks != 2 {
		t.Fatalf("relocks = %d, want 2", relocks)
	}

	authenticated = false
	observer.SetState(StateBackground)
	observer.SetState(StateActive) // no session, no relock
	if relocks != 2 {
		t.Fatalf("relocks = %d, want 2 with no session", relocks)
	}
}
