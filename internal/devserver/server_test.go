package devserver

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/milkchain/milkchain/internal/config"
	"github.com/milkchain/milkchain/internal/logging"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Server{
		AppName:       "milkchain-test",
		AppEnv:        "development",
		Port:          "0",
		TokenSecret:   "test-secret",
		TokenTTL:      time.Hour,
		OnboardingFee: 500,
	}
	srv, err := New(cfg, nil, nil, logging.Discard())
	if err != nil {
		t.Fatalf("build server: %v", err)
	}
	return srv
}

func postJSON(t *testing.T, srv *Server, path, bearer string, body any) (int, map[string]any) {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(fiber.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+bearer)
	}
	resp, err := srv.App().Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, decoded
}

func TestAuthLifecycleEndToEnd(t *testing.T) {
	srv := newTestServer(t)

	register := map[string]string{
		"name": "Wanjiku Kamau", "phone": "+254700000001", "email": "wanjiku@example.com",
		"password": "secret123", "pin": "4321", "role": "farmer", "county": "Nyandarua",
	}
	status, body := postJSON(t, srv, "/api/v1/auth/register", "", register)
	if status != fiber.StatusOK || body["success"] != true {
		t.Fatalf("register: %d %v", status, body)
	}
	data := body["data"].(map[string]any)
	if data["paymentRequired"] != true {
		t.Fatalf("register should require payment: %v", data)
	}
	if fee, ok := data["onboardingFee"].(float64); !ok || fee != 500 {
		t.Fatalf("onboardingFee = %v", data["onboardingFee"])
	}
	userID := data["user"].(map[string]any)["id"].(string)

	// Login before payment reports the pending condition, no token.
	status, body = postJSON(t, srv, "/api/v1/auth/login", "", map[string]string{
		"email": "wanjiku@example.com", "password": "secret123",
	})
	if status != fiber.StatusOK || body["success"] != true {
		t.Fatalf("pending login: %d %v", status, body)
	}
	data = body["data"].(map[string]any)
	if data["requiresPayment"] != true {
		t.Fatalf("expected requiresPayment: %v", data)
	}
	if _, hasToken := data["token"]; hasToken {
		t.Fatal("pending login issued a token")
	}

	status, body = postJSON(t, srv, "/api/v1/auth/complete-payment", "", map[string]string{"userId": userID})
	if status != fiber.StatusOK || body["success"] != true {
		t.Fatalf("complete payment: %d %v", status, body)
	}

	// Phone login now issues a token.
	status, body = postJSON(t, srv, "/api/v1/auth/login-phone", "", map[string]string{
		"phone": "+254700000001", "password": "secret123",
	})
	if status != fiber.StatusOK || body["success"] != true {
		t.Fatalf("login: %d %v", status, body)
	}
	data = body["data"].(map[string]any)
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatalf("no token issued: %v", data)
	}
	if role := data["user"].(map[string]any)["role"]; role != "farmer" {
		t.Fatalf("role = %v", role)
	}

	// PIN verification: wrong code rejected, right code accepted.
	status, body = postJSON(t, srv, "/api/v1/auth/verify-pin", token, map[string]string{"pin": "0000"})
	if status != fiber.StatusUnauthorized || body["success"] != false {
		t.Fatalf("wrong pin: %d %v", status, body)
	}
	status, body = postJSON(t, srv, "/api/v1/auth/verify-pin", token, map[string]string{"pin": "4321"})
	if status != fiber.StatusOK || body["success"] != true {
		t.Fatalf("right pin: %d %v", status, body)
	}
}

func TestVerifyPinRequiresBearer(t *testing.T) {
	srv := newTestServer(t)

	status, body := postJSON(t, srv, "/api/v1/auth/verify-pin", "", map[string]string{"pin": "4321"})
	if status != fiber.StatusUnauthorized || body["success"] != false {
		t.Fatalf("missing bearer: %d %v", status, body)
	}

	status, body = postJSON(t, srv, "/api/v1/auth/verify-pin", "not-a-token", map[string]string{"pin": "4321"})
	if status != fiber.StatusUnauthorized || body["success"] != false {
		t.Fatalf("garbage bearer: %d %v", status, body)
	}
}

func TestLoginFailureUsesEnvelope(t *testing.T) {
	srv := newTestServer(t)

	status, body := postJSON(t, srv, "/api/v1/auth/login", "", map[string]string{
		"email": "nobody@example.com", "password": "whatever",
	})
	if status != fiber.StatusUnauthorized {
		t.Fatalf("status = %d", status)
	}
	if body["success"] != false {
		t.Fatalf("expected success=false envelope: %v", body)
	}
	if msg, _ := body["message"].(string); msg == "" {
		t.Fatalf("expected a message: %v", body)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	account := testAccount()
	token, err := signToken(account, []byte("s3cret"), time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	sub, err := parseToken(token, []byte("s3cret"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sub != account.ID {
		t.Fatalf("sub = %q, want %q", sub, account.ID)
	}

	if _, err := parseToken(token, []byte("wrong")); err == nil {
		t.Fatal("expected signature mismatch")
	}

	expired, err := signToken(account, []byte("s3cret"), -time.Minute)
	if err != nil {
		t.Fatalf("sign expired: %v", err)
	}
	if _, err := parseToken(expired, []byte("s3cret")); err == nil {
		t.Fatal("expected expiry error")
	}
}
