package repositories

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/pinkcart/api/internal/domain/catalog"
)

var (
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category already exists")
)

type CategoryRepository interface {
	Create(ctx context.Context, c *catalog.Category) error
	// List returns every category; activeOnly restricts to active ones.
	// Order is sortOrder ascending, then createdAt descending.
	List(ctx context.Context, activeOnly bool) ([]*catalog.Category, error)
	GetByID(ctx context.Context, id string) (*catalog.Category, error)
	Update(ctx context.Context, c *catalog.Category) error
	Delete(ctx context.Context, id string) error
}

type inMemoryCategoryRepo struct {
	mu         sync.RWMutex
	categories map[string]*catalog.Category
}

func NewInMemoryCategoryRepo() CategoryRepository {
	return &inMemoryCategoryRepo{categories: make(map[string]*catalog.Category)}
}

func (r *inMemoryCategoryRepo) Create(ctx context.Context, c *catalog.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.categories {
		if strings.EqualFold(existing.Name, c.Name) {
			return ErrCategoryAlreadyExists
		}
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *inMemoryCategoryRepo) List(ctx context.Context, activeOnly bool) ([]*catalog.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*catalog.Category, 0, len(r.categories))
	for _, c := range r.categories {
		if activeOnly && !c.IsActive {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *inMemoryCategoryRepo) GetByID(ctx context.Context, id string) (*catalog.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *inMemoryCategoryRepo) Update(ctx context.Context, c *catalog.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[c.ID]; !ok {
		return ErrCategoryNotFound
	}
	for id, existing := range r.categories {
		if id != c.ID && strings.EqualFold(existing.Name, c.Name) {
			return ErrCategoryAlreadyExists
		}
	}
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *inMemoryCategoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return ErrCategoryNotFound
	}
	delete(r.categories, id)
	return nil
}
