// Package pingate enforces the re-entry PIN check. While a session is active
// the gate must be Unlocked before any authenticated screen is shown, and it
// re-locks on every foreground re-entry.
package pingate

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/milkchain/milkchain/internal/session"
)

// State of the gate. Locked and Unlocked apply only while a session exists;
// without one the gate is Inactive.
type State int

const (
	Inactive State = iota
	Locked
	Unlocked
)

func (s State) String() string {
	switch s {
	case Locked:
		return "locked"
	case Unlocked:
		return "unlocked"
	default:
		return "inactive"
	}
}

// DefaultPinLength is the current product design; the gate itself only
// forwards the code, the server decides.
const DefaultPinLength = 4

// Verifier checks a PIN against the platform. *api.Client satisfies it.
type Verifier interface {
	VerifyPin(ctx context.Context, pin string) error
}

// Gate is the re-entry guard state machine.
type Gate struct {
	verifier  Verifier
	logger    *slog.Logger
	pinLength int

	mu    sync.Mutex
	state State
}

// New builds a gate in the Inactive state.
func New(verifier Verifier, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{verifier: verifier, logger: logger, pinLength: DefaultPinLength}
}

// State returns the current gate state.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// PinLength returns the expected code length, for the entry surface.
func (g *Gate) PinLength() int { return g.pinLength }

// SessionStarted implements session.Hook: a fresh login or restore
// immediately requires the PIN.
func (g *Gate) SessionStarted(session.User) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = Locked
}

// SessionEnded implements session.Hook: logout retires the gate.
func (g *Gate) SessionEnded() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = Inactive
}

// Lock re-arms the gate for a new foreground period. A previous unlock never
// carries over. No-op while Inactive.
func (g *Gate) Lock() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == Inactive {
		return
	}
	g.state = Locked
}

// VerifyPin submits the code for server-side verification. True transitions
// the gate to Unlocked; any failure, wrong code or network, keeps it Locked.
// The gate never unlocks on error.
func (g *Gate) VerifyPin(ctx context.Context, code string) bool {
	if g.State() == Inactive {
		return false
	}

	code = strings.TrimSpace(code)
	if err := g.verifier.VerifyPin(ctx, code); err != nil {
		g.logger.Debug("pin verification failed", "error", err)
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == Inactive {
		// Logged out while the request was in flight.
		return false
	}
	g.state = Unlocked
	return true
}
