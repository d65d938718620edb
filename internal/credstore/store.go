// Package credstore provides the persistent key/value store the session
// manager keeps credentials in between process restarts.
package credstore

import (
	"context"
	"errors"
)

// Keys written by the session manager. No other component writes to the store.
const (
	KeyAuthToken   = "authToken"
	KeyUserData    = "userData"
	KeyPendingUser = "pendingUser"
)

// ErrNotFound is returned by Get when the key has no stored value.
var ErrNotFound = errors.New("credstore: key not found")

// Store persists string values by key across process restarts.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
