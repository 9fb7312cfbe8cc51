package services

import (
	"context"
	"errors"
	"testing"

	"github.com/pinkcart/api/internal/app/repositories"
	"github.com/pinkcart/api/internal/domain/catalog"
	"github.com/pinkcart/api/internal/domain/order"
	"github.com/pinkcart/api/internal/domain/user"
)

type orderFixture struct {
	svc       OrderService
	userID    string
	productID string
}

func newOrderFixture(t *testing.T) orderFixture {
	t.Helper()
	ctx := context.Background()

	users := repositories.NewInMemoryUserRepo()
	u := &user.User{Email: "shopper@pinkcart.co.ke", Name: "Shopper", Role: user.RoleUser}
	if err := users.Create(ctx, u); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	products := repositories.NewInMemoryProductRepo()
	p := &catalog.Product{Name: "Linen Dress", Price: 2500, Category: "dresses"}
	if err := products.Create(ctx, p); err != nil {
		t.Fatalf("seed product: %v", err)
	}

	return orderFixture{
		svc:       NewOrderService(repositories.NewInMemoryOrderRepo(), users, products),
		userID:    u.ID,
		productID: p.ID,
	}
}

func TestCreateOrderDefaults(t *testing.T) {
	f := newOrderFixture(t)

	v, err := f.svc.Create(context.Background(), order.CreateOrderInput{UserID: f.userID, ProductID: f.productID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if v.Quantity != 1 {
		t.Fatalf("expected quantity default 1, got %d", v.Quantity)
	}
	if v.Status != order.StatusPending {
		t.Fatalf("expected PENDING, got %s", v.Status)
	}
	if v.User == nil || v.User.Email != "shopper@pinkcart.co.ke" {
		t.Fatalf("expected user summary on view")
	}
	if v.Product == nil || v.Product.Name != "Linen Dress" {
		t.Fatalf("expected product summary on view")
	}
}

func TestCreateOrderUnknownReferences(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, order.CreateOrderInput{UserID: "ghost", ProductID: f.productID})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("unknown user: expected validation error, got %v", err)
	}

	_, err = f.svc.Create(ctx, order.CreateOrderInput{UserID: f.userID, ProductID: "ghost"})
	if !errors.As(err, &vErr) {
		t.Fatalf("unknown product: expected validation error, got %v", err)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	v, err := f.svc.Create(ctx, order.CreateOrderInput{UserID: f.userID, ProductID: f.productID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	shipped := order.StatusShipped
	updated, err := f.svc.Update(ctx, v.ID, order.UpdateOrderInput{Status: &shipped})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != order.StatusShipped {
		t.Fatalf("expected SHIPPED, got %s", updated.Status)
	}

	bogus := order.Status("LOST")
	if _, err := f.svc.Update(ctx, v.ID, order.UpdateOrderInput{Status: &bogus}); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func TestDeleteOrder(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	v, err := f.svc.Create(ctx, order.CreateOrderInput{UserID: f.userID, ProductID: f.productID})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := f.svc.Delete(ctx, v.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := f.svc.GetByID(ctx, v.ID); !errors.Is(err, repositories.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}
