package accounts

import "time"

// Account statuses as exposed to clients.
const (
	StatusActive         = "active"
	StatusPendingPayment = "pending_payment"
)

// Account is a registered platform user as the dev server stores it. Role is
// issued verbatim, including roles the mobile client refuses, so client-side
// role gating stays exercisable.
type Account struct {
	ID           string
	Name         string
	Phone        string
	Email        string
	Role         string
	County       string
	Status       string
	PasswordHash []byte
	PINHash      []byte
	PaymentDue   bool
	CreatedAt    time.Time
}

// RegisterInput carries the onboarding fields.
type RegisterInput struct {
	Name     string
	Phone    string
	Email    string
	Password string
	PIN      string
	Role     string
	County   string
}
