package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pinkcart/api/internal/app/repositories"
	"github.com/pinkcart/api/internal/domain/catalog"
	"github.com/pinkcart/api/internal/domain/order"
	"github.com/pinkcart/api/internal/domain/user"
)

type OrderService interface {
	Create(ctx context.Context, in order.CreateOrderInput) (*order.OrderView, error)
	List(ctx context.Context) ([]*order.OrderView, error)
	GetByID(ctx context.Context, id string) (*order.OrderView, error)
	Update(ctx context.Context, id string, in order.UpdateOrderInput) (*order.OrderView, error)
	Delete(ctx context.Context, id string) error
}

type orderService struct {
	orders   repositories.OrderRepository
	users    repositories.UserRepository
	products repositories.ProductRepository
}

func NewOrderService(orders repositories.OrderRepository, users repositories.UserRepository, products repositories.ProductRepository) OrderService {
	return &orderService{orders: orders, users: users, products: products}
}

func (s *orderService) Create(ctx context.Context, in order.CreateOrderInput) (*order.OrderView, error) {
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return nil, validationErr("userId", "userId is required")
	}
	productID := strings.TrimSpace(in.ProductID)
	if productID == "" {
		return nil, validationErr("productId", "productId is required")
	}
	quantity := in.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return nil, validationErr("quantity", "quantity must be at least 1")
	}
	status := in.Status
	if status == "" {
		status = order.StatusPending
	}
	if !status.Valid() {
		return nil, validationErr("status", "unknown order status")
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, validationErr("userId", "user not found")
		}
		return nil, err
	}
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil, validationErr("productId", "product not found")
		}
		return nil, err
	}

	now := time.Now().UTC()
	o := &order.Order{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, err
	}
	return view(o, u, p), nil
}

func (s *orderService) List(ctx context.Context) ([]*order.OrderView, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}

	// Orders for the same user or product repeat often, cache the lookups.
	users := map[string]*user.User{}
	products := map[string]*catalog.Product{}
	views := make([]*order.OrderView, 0, len(orders))
	for _, o := range orders {
		u, ok := users[o.UserID]
		if !ok {
			u, _ = s.users.GetByID(ctx, o.UserID)
			users[o.UserID] = u
		}
		p, ok := products[o.ProductID]
		if !ok {
			p, _ = s.products.GetByID(ctx, o.ProductID)
			products[o.ProductID] = p
		}
		views = append(views, view(o, u, p))
	}
	return views, nil
}

func (s *orderService) GetByID(ctx context.Context, id string) (*order.OrderView, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u, _ := s.users.GetByID(ctx, o.UserID)
	p, _ := s.products.GetByID(ctx, o.ProductID)
	return view(o, u, p), nil
}

func (s *orderService) Update(ctx context.Context, id string, in order.UpdateOrderInput) (*order.OrderView, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Quantity != nil {
		if *in.Quantity < 1 {
			return nil, validationErr("quantity", "quantity must be at least 1")
		}
		o.Quantity = *in.Quantity
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, validationErr("status", "unknown order status")
		}
		o.Status = *in.Status
	}
	o.UpdatedAt = time.Now().UTC()
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}
	u, _ := s.users.GetByID(ctx, o.UserID)
	p, _ := s.products.GetByID(ctx, o.ProductID)
	return view(o, u, p), nil
}

func (s *orderService) Delete(ctx context.Context, id string) error {
	return s.orders.Delete(ctx, id)
}

func view(o *order.Order, u *user.User, p *catalog.Product) *order.OrderView {
	v := &order.OrderView{Order: *o}
	if u != nil {
		v.User = &order.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
	}
	if p != nil {
		v.Product = &order.ProductSummary{ID: p.ID, Name: p.Name, Price: p.Price, Image: p.PrimaryImage()}
	}
	return v
}
