package services

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/pinkcart/api/internal/app/repositories"
	"github.com/pinkcart/api/internal/domain/shipment"
)

// Kenyan mobile numbers: 10 digits, 07xx or 01xx prefixes.
var kenyanPhone = regexp.MustCompile(`^0[17]\d{8}$`)

type SavePhoneInput struct {
	PhoneNumber string `json:"phoneNumber"`
	IPAddress   string `json:"-"`
	UserAgent   string `json:"-"`
}

type PhoneService interface {
	Save(ctx context.Context, in SavePhoneInput) (*shipment.PhoneNumber, error)
	List(ctx context.Context) ([]*shipment.PhoneNumber, error)
}

type phoneService struct {
	phones repositories.PhoneNumberRepository
}

func NewPhoneService(phones repositories.PhoneNumberRepository) PhoneService {
	return &phoneService{phones: phones}
}

func (s *phoneService) Save(ctx context.Context, in SavePhoneInput) (*shipment.PhoneNumber, error) {
	number := normalizePhone(in.PhoneNumber)
	if number == "" {
		return nil, validationErr("phoneNumber", "phoneNumber is required")
	}
	if !kenyanPhone.MatchString(number) {
		return nil, validationErr("phoneNumber", "enter a valid phone number, e.g. 0712345678")
	}

	p := &shipment.PhoneNumber{
		PhoneNumber: number,
		CreatedAt:   time.Now().UTC(),
		IPAddress:   strings.TrimSpace(in.IPAddress),
		UserAgent:   strings.TrimSpace(in.UserAgent),
	}
	if err := s.phones.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *phoneService) List(ctx context.Context) ([]*shipment.PhoneNumber, error) {
	return s.phones.List(ctx)
}

func normalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
