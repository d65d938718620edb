package devserver

import (
	"time"

	"github.com/google/uuid"

	"github.com/milkchain/milkchain/internal/accounts"
)

// testAccount builds a minimal account for token tests.
func testAccount() accounts.Account {
	return accounts.Account{
		ID:        uuid.New().String(),
		Name:      "Test Farmer",
		Phone:     "+254700000000",
		Role:      "farmer",
		Status:    accounts.StatusActive,
		CreatedAt: time.Now().UTC(),
	}
}
