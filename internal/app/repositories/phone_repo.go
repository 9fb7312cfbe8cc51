package repositories

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/pinkcart/api/internal/domain/shipment"
)

var ErrPhoneNumberExists = errors.New("phone number already registered")

type PhoneNumberRepository interface {
	Create(ctx context.Context, p *shipment.PhoneNumber) error
	List(ctx context.Context) ([]*shipment.PhoneNumber, error)
}

type inMemoryPhoneRepo struct {
	mu      sync.RWMutex
	numbers map[string]*shipment.PhoneNumber
}

func NewInMemoryPhoneRepo() PhoneNumberRepository {
	return &inMemoryPhoneRepo{numbers: make(map[string]*shipment.PhoneNumber)}
}

func (r *inMemoryPhoneRepo) Create(ctx context.Context, p *shipment.PhoneNumber) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.numbers {
		if existing.PhoneNumber == p.PhoneNumber {
			return ErrPhoneNumberExists
		}
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	cp := *p
	r.numbers[p.ID] = &cp
	return nil
}

func (r *inMemoryPhoneRepo) List(ctx context.Context) ([]*shipment.PhoneNumber, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*shipment.PhoneNumber, 0, len(r.numbers))
	for _, p := range r.numbers {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
