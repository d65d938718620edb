// Package session owns the "who is logged in" state of the MilkChain client:
// login, restore-on-start, logout, and the role gate deciding whether an
// account may use this app at all.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/milkchain/milkchain/internal/api"
	"github.com/milkchain/milkchain/internal/credstore"
)

// Method selects which login endpoint variant is called.
type Method string

const (
	MethodEmail Method = "email"
	MethodPhone Method = "phone"
)

const (
	genericLoginFailure    = "unable to sign in, please try again"
	genericRegisterFailure = "unable to register, please try again"
)

// Hook observes session transitions. The PIN gate implements it so the
// re-entry lock engages the moment a session starts.
type Hook interface {
	SessionStarted(User)
	SessionEnded()
}

// Manager is the single source of truth for the active session. It is the
// only writer of the credential store and of the shared client's
// Authorization header.
type Manager struct {
	store  credstore.Store
	client *api.Client
	logger *slog.Logger

	mu      sync.Mutex
	current *User
	hooks   []Hook
}

// NewManager builds a session manager over the given store and shared client.
func NewManager(store credstore.Store, client *api.Client, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{store: store, client: client, logger: logger}
}

// AddHook registers a transition observer. Not safe to call concurrently
// with session operations; wire hooks at composition time.
func (m *Manager) AddHook(h Hook) {
	m.hooks = append(m.hooks, h)
}

// Login authenticates with the platform and, for a supported role,
// establishes the session: token and user are persisted, the Authorization
// header is applied, and only then does the success result return, so callers
// may immediately issue authenticated requests.
func (m *Manager) Login(ctx context.Context, identifier, credential string, method Method) Result {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || credential == "" {
		return failure(ErrValidation.Error(), ErrValidation)
	}

	var (
		res api.LoginResult
		err error
	)
	switch method {
	case MethodPhone:
		res, err = m.client.LoginPhone(ctx, identifier, credential)
	default:
		res, err = m.client.Login(ctx, identifier, credential)
	}
	if err != nil {
		return failure(extractMessage(err, genericLoginFailure), err)
	}

	if res.RequiresPayment {
		user := userFromAPI(res.User)
		if err := m.writeJSON(ctx, credstore.KeyPendingUser, user); err != nil {
			m.logger.Warn("persist pending user", "error", err)
		}
		message := res.Message
		if message == "" {
			message = "onboarding payment required"
		}
		return Result{Outcome: OutcomePending, User: &user, Message: message}
	}

	user := userFromAPI(res.User)
	if !user.Role.Supported() {
		return failure(
			fmt.Sprintf("the %q role is not supported here, please use the MilkChain admin platform", user.Role),
			ErrUnsupportedRole,
		)
	}

	// Ordering contract: token, then user, then header, then result.
	if err := m.store.Set(ctx, credstore.KeyAuthToken, res.Token); err != nil {
		return failure(genericLoginFailure, fmt.Errorf("persist token: %w", err))
	}
	if err := m.writeJSON(ctx, credstore.KeyUserData, user); err != nil {
		// Never leave the store half written.
		if derr := m.store.Delete(ctx, credstore.KeyAuthToken); derr != nil {
			m.logger.Warn("rollback token after failed user write", "error", derr)
		}
		return failure(genericLoginFailure, fmt.Errorf("persist user: %w", err))
	}

	m.client.SetToken(res.Token)

	m.mu.Lock()
	m.current = &user
	m.mu.Unlock()

	for _, h := range m.hooks {
		h.SessionStarted(user)
	}

	return Result{Outcome: OutcomeSuccess, User: &user, Message: res.Message}
}

// CheckAuth restores a persisted session at process start. It reports true
// only when both token and user are stored and the stored role is still
// supported; a stale unsupported role triggers a full logout so no invalid
// state survives. Storage failures read as "no session".
func (m *Manager) CheckAuth(ctx context.Context) bool {
	token, err := m.store.Get(ctx, credstore.KeyAuthToken)
	if err != nil {
		if !errors.Is(err, credstore.ErrNotFound) {
			m.logger.Warn("read stored token", "error", err)
		}
		return false
	}

	raw, err := m.store.Get(ctx, credstore.KeyUserData)
	if err != nil {
		if !errors.Is(err, credstore.ErrNotFound) {
			m.logger.Warn("read stored user", "error", err)
		}
		return false
	}

	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		m.logger.Warn("stored user is corrupt, clearing session", "error", err)
		m.Logout(ctx)
		return false
	}

	if !user.Role.Supported() {
		m.logger.Warn("stored role is not supported, clearing session", "role", user.Role.String())
		m.Logout(ctx)
		return false
	}

	m.client.SetToken(token)

	m.mu.Lock()
	m.current = &user
	m.mu.Unlock()

	for _, h := range m.hooks {
		h.SessionStarted(user)
	}

	return true
}

// Logout clears the persisted credentials, the Authorization header, and the
// in-memory session. Idempotent; storage failures are logged, never raised.
func (m *Manager) Logout(ctx context.Context) {
	for _, key := range []string{credstore.KeyAuthToken, credstore.KeyUserData, credstore.KeyPendingUser} {
		if err := m.store.Delete(ctx, key); err != nil {
			m.logger.Warn("clear stored credential", "key", key, "error", err)
		}
	}

	m.client.ClearToken()

	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	for _, h := range m.hooks {
		h.SessionEnded()
	}
}

// Register creates a provisional account. When the server reports an
// outstanding onboarding fee the provisional profile is persisted as the
// pending user and a pending result routes the caller to payment completion.
func (m *Manager) Register(ctx context.Context, input api.RegisterInput) Result {
	if strings.TrimSpace(input.Phone) == "" || input.Password == "" {
		return failure(ErrValidation.Error(), ErrValidation)
	}

	res, err := m.client.Register(ctx, input)
	if err != nil {
		return failure(extractMessage(err, genericRegisterFailure), err)
	}

	user := userFromAPI(res.User)
	if res.PaymentRequired {
		if err := m.writeJSON(ctx, credstore.KeyPendingUser, user); err != nil {
			m.logger.Warn("persist pending user", "error", err)
		}
		message := res.Message
		if message == "" {
			message = "onboarding payment required"
		}
		return Result{Outcome: OutcomePending, User: &user, Message: message, Fee: res.OnboardingFee}
	}

	// No token is issued on registration; the account still logs in normally.
	message := res.Message
	if message == "" {
		message = "registration complete, please sign in"
	}
	return Result{Outcome: OutcomeSuccess, User: &user, Message: message}
}

// Current returns the in-memory session user, if any.
func (m *Manager) Current() (User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return User{}, false
	}
	return *m.current, true
}

// Authenticated reports whether a session is active.
func (m *Manager) Authenticated() bool {
	_, ok := m.Current()
	return ok
}

// HasRole reports whether the active session holds the given role.
func (m *Manager) HasRole(role Role) bool {
	user, ok := m.Current()
	return ok && user.Role == role
}

// IsSupportedRole reports whether the active session's role is in the
// supported set. Always true for sessions this manager establishes; kept as
// a pure query for callers that branch on it.
func (m *Manager) IsSupportedRole() bool {
	user, ok := m.Current()
	return ok && user.Role.Supported()
}

// PendingUser returns the stored provisional profile awaiting payment, if
// any. Informational only: a pending user never substitutes for a session.
func (m *Manager) PendingUser(ctx context.Context) (User, bool) {
	raw, err := m.store.Get(ctx, credstore.KeyPendingUser)
	if err != nil {
		if !errors.Is(err, credstore.ErrNotFound) {
			m.logger.Warn("read pending user", "error", err)
		}
		return User{}, false
	}
	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		m.logger.Warn("stored pending user is corrupt", "error", err)
		return User{}, false
	}
	return user, true
}

// ClearPendingUser removes the provisional profile, called once payment
// verification succeeds.
func (m *Manager) ClearPendingUser(ctx context.Context) {
	if err := m.store.Delete(ctx, credstore.KeyPendingUser); err != nil {
		m.logger.Warn("clear pending user", "error", err)
	}
}

func (m *Manager) writeJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return m.store.Set(ctx, key, string(data))
}

// extractMessage prefers the server's payload message over transport detail.
func extractMessage(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
