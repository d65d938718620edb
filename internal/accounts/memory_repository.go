package accounts

import (
	"context"
	"errors"
	"sync"
)

type memoryRepository struct {
	mu       sync.RWMutex
	accounts map[string]Account // keyed by ID
}

// NewMemoryRepository builds an in-memory account store for development and
// testing.
func NewMemoryRepository() Repository {
	return &memoryRepository{accounts: make(map[string]Account)}
}

func (r *memoryRepository) Create(_ context.Context, account Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.accounts {
		if existing.Phone == account.Phone || (account.Email != "" && existing.Email == account.Email) {
			return errors.New("account exists")
		}
	}
	r.accounts[account.ID] = account
	return nil
}

func (r *memoryRepository) FindByEmail(_ context.Context, email string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, account := range r.accounts {
		if account.Email == email {
			return account, nil
		}
	}
	return Account{}, ErrNotFound
}

func (r *memoryRepository) FindByPhone(_ context.Context, phone string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, account := range r.accounts {
		if account.Phone == phone {
			return account, nil
		}
	}
	return Account{}, ErrNotFound
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.accounts[id]
	if !ok {
		return Account{}, ErrNotFound
	}
	return account, nil
}

func (r *memoryRepository) MarkPaid(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return ErrNotFound
	}
	account.PaymentDue = false
	account.Status = StatusActive
	r.accounts[id] = account
	return nil
}
