package accounts

import (
	"context"
	"errors"
	"testing"
)

func newTestService() *Service {
	return NewService(NewMemoryRepository())
}

func registerInput() RegisterInput {
	return RegisterInput{
		Name:     "Wanjiku Kamau",
		Phone:    "+254700000001",
		Email:    "wanjiku@example.com",
		Password: "secret123",
		PIN:      "4321",
		Role:     "farmer",
		County:   "Nyandarua",
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	account, err := svc.Register(ctx, registerInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if account.Status != StatusPendingPayment || !account.PaymentDue {
		t.Fatalf("new account should owe the onboarding fee: %+v", account)
	}

	byEmail, err := svc.AuthenticateEmail(ctx, "wanjiku@example.com", "secret123")
	if err != nil {
		t.Fatalf("authenticate email: %v", err)
	}
	byPhone, err := svc.AuthenticatePhone(ctx, "+254700000001", "secret123")
	if err != nil {
		t.Fatalf("authenticate phone: %v", err)
	}
	if byEmail.ID != account.ID || byPhone.ID != account.ID {
		t.Fatal("authentication resolved a different account")
	}

	if _, err := svc.AuthenticateEmail(ctx, "wanjiku@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.AuthenticatePhone(ctx, "+254799999999", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown phone, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*RegisterInput)
	}{
		{"missing phone", func(in *RegisterInput) { in.Phone = " " }},
		{"short password", func(in *RegisterInput) { in.Password = "abc" }},
		{"short pin", func(in *RegisterInput) { in.PIN = "12" }},
		{"unknown role", func(in *RegisterInput) { in.Role = "driver" }},
	}
	for _, tc := range cases {
		in := registerInput()
		tc.mutate(&in)
		if _, err := svc.Register(ctx, in); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestRegisterDuplicatePhone(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerInput()); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, registerInput()); err == nil {
		t.Fatal("expected duplicate error")
	}
}

func TestVerifyPIN(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	account, err := svc.Register(ctx, registerInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.VerifyPIN(ctx, account.ID, "4321"); err != nil {
		t.Fatalf("verify pin: %v", err)
	}
	if err := svc.VerifyPIN(ctx, account.ID, "0000"); !errors.Is(err, ErrInvalidPIN) {
		t.Fatalf("expected ErrInvalidPIN, got %v", err)
	}
	if err := svc.VerifyPIN(ctx, "no-such-account", "4321"); !errors.Is(err, ErrInvalidPIN) {
		t.Fatalf("expected ErrInvalidPIN for unknown account, got %v", err)
	}
}

func TestCompletePaymentActivates(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	account, err := svc.Register(ctx, registerInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	paid, err := svc.CompletePayment(ctx, account.ID)
	if err != nil {
		t.Fatalf("complete payment: %v", err)
	}
	if paid.PaymentDue || paid.Status != StatusActive {
		t.Fatalf("account not activated: %+v", paid)
	}

	if _, err := svc.CompletePayment(ctx, "no-such-account"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
