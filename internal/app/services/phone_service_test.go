package services

import (
	"context"
	"errors"
	"testing"

	"github.com/pinkcart/api/internal/app/repositories"
)

func TestSavePhoneNumber(t *testing.T) {
	svc := NewPhoneService(repositories.NewInMemoryPhoneRepo())

	p, err := svc.Save(context.Background(), SavePhoneInput{PhoneNumber: "0712 345 678", IPAddress: "41.90.0.1", UserAgent: "test"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if p.PhoneNumber != "0712345678" {
		t.Fatalf("expected normalized number, got %q", p.PhoneNumber)
	}
	if p.CreatedAt.IsZero() {
		t.Fatalf("expected createdAt to be set")
	}
}

func TestSavePhoneNumberValidation(t *testing.T) {
	svc := NewPhoneService(repositories.NewInMemoryPhoneRepo())
	ctx := context.Background()

	for i, raw := range []string{"", "12345", "0812345678", "071234567890", "+254712345678"} {
		_, err := svc.Save(ctx, SavePhoneInput{PhoneNumber: raw})
		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("case %d (%q): expected validation error, got %v", i, raw, err)
		}
	}

	// 01xx landline-style mobile numbers are accepted.
	if _, err := svc.Save(ctx, SavePhoneInput{PhoneNumber: "0112345678"}); err != nil {
		t.Fatalf("expected 01 prefix accepted, got %v", err)
	}
}

func TestSavePhoneNumberDuplicate(t *testing.T) {
	svc := NewPhoneService(repositories.NewInMemoryPhoneRepo())
	ctx := context.Background()

	if _, err := svc.Save(ctx, SavePhoneInput{PhoneNumber: "0712345678"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	_, err := svc.Save(ctx, SavePhoneInput{PhoneNumber: "0712345678"})
	if !errors.Is(err, repositories.ErrPhoneNumberExists) {
		t.Fatalf("expected ErrPhoneNumberExists, got %v", err)
	}
}
