package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/milkchain/milkchain/internal/logging"
)

func TestAuthorizationHeaderFollowsToken(t *testing.T) {
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL, Logger: logging.Discard()})
	ctx := context.Background()

	if err := client.VerifyPin(ctx, "1234"); err != nil {
		t.Fatalf("request: %v", err)
	}
	client.SetToken("tok-1")
	if err := client.VerifyPin(ctx, "1234"); err != nil {
		t.Fatalf("request: %v", err)
	}
	client.ClearToken()
	if err := client.VerifyPin(ctx, "1234"); err != nil {
		t.Fatalf("request: %v", err)
	}

	want := []string{"", "Bearer tok-1", ""}
	if len(seen) != len(want) {
		t.Fatalf("headers = %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("headers = %v, want %v", seen, want)
		}
	}
}

func TestServerFailureCarriesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "invalid PIN"})
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL, Logger: logging.Discard()})

	err := client.VerifyPin(context.Background(), "0000")
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Message != "invalid PIN" {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

func TestSuccessEnvelopeFalseIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 200 with success:false still counts as failure.
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "nope"})
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL, Logger: logging.Discard()})
	if err := client.VerifyPin(context.Background(), "0000"); err == nil {
		t.Fatal("expected error for success:false")
	}
}

func TestLoginDecodesData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "a@b.c" || body["password"] != "pw" {
			t.Errorf("body = %v", body)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "welcome back",
			"data": map[string]any{
				"user":  map[string]string{"id": "u-1", "role": "farmer"},
				"token": "tok-1",
			},
		})
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL, Logger: logging.Discard()})
	res, err := client.Login(context.Background(), "a@b.c", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Token != "tok-1" || res.User.Role != "farmer" || res.Message != "welcome back" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestBaseURLTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/verify-pin" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	}))
	defer srv.Close()

	client := New(Config{BaseURL: srv.URL + "/api/v1/", Logger: logging.Discard()})
	if err := client.VerifyPin(context.Background(), "1234"); err != nil {
		t.Fatalf("request: %v", err)
	}
}
