package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pinkcart/api/internal/app/repositories"
	"github.com/pinkcart/api/internal/app/services"
	"github.com/pinkcart/api/internal/domain/catalog"
	"github.com/pinkcart/api/internal/domain/shipment"
	"github.com/pinkcart/api/pkg/logger"
)

func newJoinService(joins repositories.JoinEventRepository) services.JoinService {
	return services.NewJoinService(joins, repositories.NewInMemoryProductRepo(), nil, logger.InitForTests().Sub("joins"))
}

func TestRecordJoin(t *testing.T) {
	repo := repositories.NewInMemoryJoinEventRepo()
	svc := newJoinService(repo)
	ctx := context.Background()

	ev, err := svc.Record(ctx, shipment.RecordJoinInput{
		DisplayName: "  Asha  ",
		ProductID:   "prod-1",
		ProductName: "Linen Dress",
	})
	if err != nil {
		t.Fatalf("expected nil err got %v", err)
	}
	if ev.ID == "" {
		t.Fatalf("expected generated id")
	}
	if ev.DisplayName != "Asha" {
		t.Fatalf("expected trimmed name, got %q", ev.DisplayName)
	}
	if ev.JoinedAt.IsZero() {
		t.Fatalf("expected joinedAt to be set")
	}

	stored, err := repo.GetByID(ctx, ev.ID)
	if err != nil {
		t.Fatalf("expected stored event, got %v", err)
	}
	if stored.ProductName != "Linen Dress" {
		t.Fatalf("product name mismatch: %q", stored.ProductName)
	}
}

func TestRecordJoinValidation(t *testing.T) {
	svc := newJoinService(repositories.NewInMemoryJoinEventRepo())
	ctx := context.Background()

	cases := []shipment.RecordJoinInput{
		{DisplayName: "   ", ProductID: "p", ProductName: "n"},
		{DisplayName: "Asha", ProductID: "", ProductName: "n"},
		{DisplayName: "Asha", ProductID: "p", ProductName: "  "},
	}
	for i, in := range cases {
		_, err := svc.Record(ctx, in)
		var vErr *services.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestRecordJoinUnknownProductStillRecorded(t *testing.T) {
	repo := repositories.NewInMemoryJoinEventRepo()
	svc := newJoinService(repo)

	ev, err := svc.Record(context.Background(), shipment.RecordJoinInput{
		DisplayName: "Asha",
		ProductID:   "missing-product",
		ProductName: "Linen Dress",
	})
	if err != nil {
		t.Fatalf("expected join to be recorded despite missing product, got %v", err)
	}
	if ev.ProductID != "missing-product" {
		t.Fatalf("product id mismatch: %q", ev.ProductID)
	}
}

func TestRecentReturnsOnlyLastFiveMinutes(t *testing.T) {
	repo := repositories.NewInMemoryJoinEventRepo()
	svc := newJoinService(repo)
	ctx := context.Background()

	now := time.Now().UTC()
	old := &shipment.JoinEvent{DisplayName: "Old", ProductID: "p", ProductName: "Linen Dress", JoinedAt: now.Add(-10 * time.Minute)}
	fresh := &shipment.JoinEvent{DisplayName: "Fresh", ProductID: "p", ProductName: "Linen Dress", JoinedAt: now.Add(-time.Minute)}
	if err := repo.Create(ctx, old); err != nil {
		t.Fatalf("seed old: %v", err)
	}
	if err := repo.Create(ctx, fresh); err != nil {
		t.Fatalf("seed fresh: %v", err)
	}

	notifications, err := svc.Recent(ctx)
	if err != nil {
		t.Fatalf("expected nil err got %v", err)
	}
	if len(notifications) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifications))
	}
	if notifications[0].DisplayName != "Fresh" {
		t.Fatalf("expected fresh event, got %q", notifications[0].DisplayName)
	}
}

func TestRecentCapsAtTenNewestFirst(t *testing.T) {
	repo := repositories.NewInMemoryJoinEventRepo()
	svc := newJoinService(repo)
	ctx := context.Background()

	now := time.Now().UTC()
	for i := 0; i < 15; i++ {
		ev := &shipment.JoinEvent{
			DisplayName: "Customer",
			ProductID:   "p",
			ProductName: "Linen Dress",
			JoinedAt:    now.Add(-time.Duration(i) * time.Second),
		}
		if err := repo.Create(ctx, ev); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	notifications, err := svc.Recent(ctx)
	if err != nil {
		t.Fatalf("expected nil err got %v", err)
	}
	if len(notifications) != 10 {
		t.Fatalf("expected 10 notifications, got %d", len(notifications))
	}
	for i := 1; i < len(notifications); i++ {
		if notifications[i].JoinedAt.After(notifications[i-1].JoinedAt) {
			t.Fatalf("expected newest-first order at index %d", i)
		}
	}
}

func TestJoinKeepsProductNameAfterRename(t *testing.T) {
	products := repositories.NewInMemoryProductRepo()
	joins := repositories.NewInMemoryJoinEventRepo()
	joinSvc := services.NewJoinService(joins, products, nil, logger.InitForTests().Sub("joins"))
	catalogSvc := services.NewCatalogService(products, repositories.NewInMemoryCategoryRepo(), nil, "254700000000", "https://pinkcart.co.ke")
	ctx := context.Background()

	price := 2500.0
	product, err := catalogSvc.CreateProduct(ctx, catalog.ProductInput{
		Name:     "Linen Dress",
		Price:    &price,
		Category: "Dresses",
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	ev, err := joinSvc.Record(ctx, shipment.RecordJoinInput{
		DisplayName: "Asha",
		ProductID:   product.ID,
		ProductName: product.Name,
	})
	if err != nil {
		t.Fatalf("record join: %v", err)
	}

	if _, err := catalogSvc.UpdateProduct(ctx, product.ID, catalog.ProductInput{
		Name:     "Linen Maxi Dress",
		Price:    &price,
		Category: "Dresses",
	}); err != nil {
		t.Fatalf("rename product: %v", err)
	}

	stored, err := joins.GetByID(ctx, ev.ID)
	if err != nil {
		t.Fatalf("load join: %v", err)
	}
	if stored.ProductName != "Linen Dress" {
		t.Fatalf("join must keep the name it was recorded with, got %q", stored.ProductName)
	}

	notifications, err := joinSvc.Recent(ctx)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(notifications) != 1 || notifications[0].ProductName != "Linen Dress" {
		t.Fatalf("notification must carry the recorded name, got %+v", notifications)
	}
}

func TestRecentIsStableAcrossCalls(t *testing.T) {
	repo := repositories.NewInMemoryJoinEventRepo()
	svc := newJoinService(repo)
	ctx := context.Background()

	now := time.Now().UTC()
	for i := 0; i < 3; i++ {
		ev := &shipment.JoinEvent{
			DisplayName: "Customer",
			ProductID:   "p",
			ProductName: "Linen Dress",
			JoinedAt:    now.Add(-time.Duration(i+1) * time.Second),
		}
		if err := repo.Create(ctx, ev); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	first, err := svc.Recent(ctx)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := svc.Recent(ctx)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("expected identical result sets, got %d then %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID || !first[i].JoinedAt.Equal(second[i].JoinedAt) {
			t.Fatalf("result %d changed between calls: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestRecentCustomersUsesDayWindow(t *testing.T) {
	repo := repositories.NewInMemoryJoinEventRepo()
	svc := newJoinService(repo)
	ctx := context.Background()

	now := time.Now().UTC()
	yesterday := &shipment.JoinEvent{DisplayName: "Yesterday", ProductID: "p", ProductName: "Linen Dress", JoinedAt: now.Add(-23 * time.Hour)}
	lastWeek := &shipment.JoinEvent{DisplayName: "LastWeek", ProductID: "p", ProductName: "Linen Dress", JoinedAt: now.Add(-7 * 24 * time.Hour)}
	if err := repo.Create(ctx, yesterday); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := repo.Create(ctx, lastWeek); err != nil {
		t.Fatalf("seed: %v", err)
	}

	events, err := svc.RecentCustomers(ctx)
	if err != nil {
		t.Fatalf("expected nil err got %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 customer, got %d", len(events))
	}
	if events[0].DisplayName != "Yesterday" {
		t.Fatalf("expected yesterday's customer, got %q", events[0].DisplayName)
	}
}
