package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pinkcart/api/internal/app/repositories"
	"github.com/pinkcart/api/internal/app/services"
	"github.com/pinkcart/api/internal/domain/shipment"
	"github.com/pinkcart/api/pkg/logger"
)

func TestNotificationsEnvelope(t *testing.T) {
	repo := repositories.NewInMemoryJoinEventRepo()
	ev := &shipment.JoinEvent{DisplayName: "Asha", ProductID: "p", ProductName: "Linen Dress", JoinedAt: time.Now().UTC()}
	if err := repo.Create(context.Background(), ev); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := services.NewJoinService(repo, repositories.NewInMemoryProductRepo(), nil, logger.InitForTests().Sub("joins"))
	ctrl := NewJoinController(svc)

	rec := httptest.NewRecorder()
	ctrl.Notifications(rec, httptest.NewRequest(http.MethodGet, "/api/notifications", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if cc := rec.Header().Get("Cache-Control"); cc == "" {
		t.Fatalf("expected no-store cache headers")
	}

	var payload struct {
		Notifications []shipment.Notification `json:"notifications"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if len(payload.Notifications) != 1 {
		t.Fatalf("expected 1 notification inside envelope, got %d", len(payload.Notifications))
	}
	if payload.Notifications[0].DisplayName != "Asha" {
		t.Fatalf("notification mismatch: %+v", payload.Notifications[0])
	}
}

func TestNotificationsEnvelopePresentWhenEmpty(t *testing.T) {
	svc := services.NewJoinService(repositories.NewInMemoryJoinEventRepo(), repositories.NewInMemoryProductRepo(), nil, logger.InitForTests().Sub("joins"))
	ctrl := NewJoinController(svc)

	rec := httptest.NewRecorder()
	ctrl.Notifications(rec, httptest.NewRequest(http.MethodGet, "/api/notifications", nil))

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := payload["notifications"]; !ok {
		t.Fatalf("expected notifications key even with no events, body: %s", rec.Body.String())
	}
}
