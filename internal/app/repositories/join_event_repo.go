package repositories

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pinkcart/api/internal/domain/shipment"
)

var ErrJoinEventNotFound = errors.New("join event not found")

type JoinEventRepository interface {
	Create(ctx context.Context, e *shipment.JoinEvent) error
	// ListSince returns events with joinedAt >= since, newest first, capped
	// at limit. The store does not guarantee insertion order, so the sort is
	// always explicit.
	ListSince(ctx context.Context, since time.Time, limit int64) ([]*shipment.JoinEvent, error)
	GetByID(ctx context.Context, id string) (*shipment.JoinEvent, error)
}

type inMemoryJoinEventRepo struct {
	mu     sync.RWMutex
	events map[string]*shipment.JoinEvent
}

func NewInMemoryJoinEventRepo() JoinEventRepository {
	return &inMemoryJoinEventRepo{events: make(map[string]*shipment.JoinEvent)}
}

func (r *inMemoryJoinEventRepo) Create(ctx context.Context, e *shipment.JoinEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	cp := *e
	r.events[e.ID] = &cp
	return nil
}

func (r *inMemoryJoinEventRepo) ListSince(ctx context.Context, since time.Time, limit int64) ([]*shipment.JoinEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*shipment.JoinEvent, 0)
	for _, e := range r.events {
		if e.JoinedAt.Before(since) {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].JoinedAt.After(out[j].JoinedAt)
	})
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *inMemoryJoinEventRepo) GetByID(ctx context.Context, id string) (*shipment.JoinEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.events[id]
	if !ok {
		return nil, ErrJoinEventNotFound
	}
	cp := *e
	return &cp, nil
}
