// Package lifecycle tracks the host application's foreground state and lets
// the session core react to re-entry. Subscriptions are explicit handles so
// teardown paths cannot leak observers.
package lifecycle

import "sync"

// AppState mirrors the host platform's application state values.
type AppState string

const (
	StateActive     AppState = "active"
	StateInactive   AppState = "inactive"
	StateBackground AppState = "background"
)

// Listener receives every state transition with its previous state.
type Listener func(prev, next AppState)

// Observer fans application-state changes out to subscribers.
type Observer struct {
	mu     sync.Mutex
	state  AppState
	subs   map[int]Listener
	nextID int
}

// NewObserver starts in the active state, matching a freshly launched app.
func NewObserver() *Observer {
	return &Observer{state: StateActive, subs: make(map[int]Listener)}
}

// State returns the last reported application state.
func (o *Observer) State() AppState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Subscribe registers a listener and returns its handle. The caller must
// cancel the handle on teardown.
func (o *Observer) Subscribe(fn Listener) *Subscription {
	o.mu.Lock()
	id := o.nextID
	o.nextID++
	o.subs[id] = fn
	o.mu.Unlock()
	return &Subscription{observer: o, id: id}
}

// SetState records a platform state change and notifies subscribers with the
// transition. Reporting the current state again is ignored.
func (o *Observer) SetState(next AppState) {
	o.mu.Lock()
	prev := o.state
	if prev == next {
		o.mu.Unlock()
		return
	}
	o.state = next
	listeners := make([]Listener, 0, len(o.subs))
	for _, fn := range o.subs {
		listeners = append(listeners, fn)
	}
	o.mu.Unlock()

	for _, fn := range listeners {
		fn(prev, next)
	}
}

// Subscription is a disposable handle for a registered listener.
type Subscription struct {
	observer *Observer
	id       int
	once     sync.Once
}

// Cancel releases the listener. Safe to call more than once.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.observer.mu.Lock()
		delete(s.observer.subs, s.id)
		s.observer.mu.Unlock()
	})
}

// WatchForeground subscribes a re-lock trigger: whenever the app returns to
// the foreground from background or inactive while authenticated() holds,
// relock fires. All other transitions are ignored.
func WatchForeground(o *Observer, authenticated func() bool, relock func()) *Subscription {
	return o.Subscribe(func(prev, next AppState) {
		if next != StateActive {
			return
		}
		if prev != StateBackground && prev != StateInactive {
			return
		}
		if authenticated() {
			relock()
		}
	})
}
