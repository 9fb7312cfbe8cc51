package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/pinkcart/api/internal/domain/user"
)

func TestGenerateVerifyRoundTrip(t *testing.T) {
	svc := NewService("test-secret", time.Hour)
	data := user.UserData{ID: "u1", Email: "admin@pinkcart.co.ke", Name: "Admin", Role: user.RoleAdmin}

	token, err := svc.Generate(data)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	got, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.ID != data.ID || got.Email != data.Email || got.Role != data.Role {
		t.Fatalf("claims mismatch: %+v", got)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := issued
	svc := NewService("test-secret", 7*24*time.Hour).WithClock(func() time.Time { return now })

	token, err := svc.Generate(user.UserData{ID: "u1", Email: "a@b.c", Role: user.RoleAdmin})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	now = issued.Add(7*24*time.Hour - time.Minute)
	if _, err := svc.Verify(token); err != nil {
		t.Fatalf("token should still verify before expiry: %v", err)
	}

	now = issued.Add(7*24*time.Hour + time.Minute)
	if _, err := svc.Verify(token); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := NewService("secret-a", time.Hour).Generate(user.UserData{ID: "u1", Role: user.RoleAdmin})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := NewService("secret-b", time.Hour).Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	svc := NewService("test-secret", time.Hour)
	if _, err := svc.Verify("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
