package accounts

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials covers unknown identifiers and wrong passwords
	// alike, so lookups are not distinguishable from the outside.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidPIN is returned when the re-entry PIN does not match.
	ErrInvalidPIN = errors.New("invalid PIN")
)

// Roles the platform issues. The mobile client serves only the first three;
// admin roles exist so client-side gating can be exercised.
var issuableRoles = map[string]bool{
	"farmer":        true,
	"attendant":     true,
	"kcc_attendant": true,
	"admin":         true,
	"kcc_admin":     true,
}

// Service manages the account lifecycle for the dev server.
type Service struct {
	repo Repository
}

// NewService creates an account service over the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a provisional account with the onboarding fee outstanding.
// Password and PIN are stored as bcrypt hashes.
func (s *Service) Register(ctx context.Context, input RegisterInput) (Account, error) {
	input.Phone = strings.TrimSpace(input.Phone)
	input.Email = strings.TrimSpace(input.Email)
	if input.Phone == "" {
		return Account{}, errors.New("phone is required")
	}
	if len(input.Password) < 6 {
		return Account{}, errors.New("password must be at least 6 characters")
	}
	if len(input.PIN) < 4 {
		return Account{}, errors.New("PIN must be at least 4 digits")
	}

	role := strings.TrimSpace(input.Role)
	if role == "" {
		role = "farmer"
	}
	if !issuableRoles[role] {
		return Account{}, errors.New("unknown role")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}
	pinHash, err := bcrypt.GenerateFromPassword([]byte(input.PIN), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}

	account := Account{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Phone:        input.Phone,
		Email:        input.Email,
		Role:         role,
		County:       input.County,
		Status:       StatusPendingPayment,
		PasswordHash: passwordHash,
		PINHash:      pinHash,
		PaymentDue:   true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, account); err != nil {
		return Account{}, err
	}

	return account, nil
}

// AuthenticateEmail verifies an email/password pair.
func (s *Service) AuthenticateEmail(ctx context.Context, email, password string) (Account, error) {
	account, err := s.repo.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return Account{}, ErrInvalidCredentials
	}
	return s.checkPassword(account, password)
}

// AuthenticatePhone verifies a phone/password pair.
func (s *Service) AuthenticatePhone(ctx context.Context, phone, password string) (Account, error) {
	account, err := s.repo.FindByPhone(ctx, strings.TrimSpace(phone))
	if err != nil {
		return Account{}, ErrInvalidCredentials
	}
	return s.checkPassword(account, password)
}

func (s *Service) checkPassword(account Account, password string) (Account, error) {
	if err := bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)); err != nil {
		return Account{}, ErrInvalidCredentials
	}
	return account, nil
}

// VerifyPIN checks the re-entry PIN for an authenticated account.
func (s *Service) VerifyPIN(ctx context.Context, accountID, pin string) error {
	account, err := s.repo.FindByID(ctx, accountID)
	if err != nil {
		return ErrInvalidPIN
	}
	if err := bcrypt.CompareHashAndPassword(account.PINHash, []byte(pin)); err != nil {
		return ErrInvalidPIN
	}
	return nil
}

// CompletePayment settles the onboarding fee and activates the account.
func (s *Service) CompletePayment(ctx context.Context, accountID string) (Account, error) {
	if err := s.repo.MarkPaid(ctx, accountID); err != nil {
		return Account{}, err
	}
	return s.repo.FindByID(ctx, accountID)
}
