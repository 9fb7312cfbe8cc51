package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/pinkcart/api/internal/app/repositories"
	"github.com/pinkcart/api/internal/domain/shipment"
	"github.com/pinkcart/api/pkg/eventlog"
	"github.com/sirupsen/logrus"
)

const (
	notificationWindow = 5 * time.Minute
	notificationLimit  = 10
	customerWindow     = 24 * time.Hour
	customerLimit      = 50
)

type JoinService interface {
	Record(ctx context.Context, in shipment.RecordJoinInput) (*shipment.JoinEvent, error)
	Recent(ctx context.Context) ([]shipment.Notification, error)
	RecentCustomers(ctx context.Context) ([]*shipment.JoinEvent, error)
}

type joinService struct {
	joins    repositories.JoinEventRepository
	products repositories.ProductRepository
	audit    *eventlog.Writer
	log      *logrus.Entry
	now      func() time.Time
}

func NewJoinService(joins repositories.JoinEventRepository, products repositories.ProductRepository, audit *eventlog.Writer, log *logrus.Entry) JoinService {
	return &joinService{joins: joins, products: products, audit: audit, log: log, now: time.Now}
}

func (s *joinService) Record(ctx context.Context, in shipment.RecordJoinInput) (*shipment.JoinEvent, error) {
	name := strings.TrimSpace(in.DisplayName)
	if name == "" {
		return nil, validationErr("name", "name is required")
	}
	productID := strings.TrimSpace(in.ProductID)
	if productID == "" {
		return nil, validationErr("productId", "productId is required")
	}
	productName := strings.TrimSpace(in.ProductName)
	if productName == "" {
		return nil, validationErr("productName", "productName is required")
	}

	// The shipment feed stays available even when the catalog entry has been
	// removed, so a missing product is only worth a warning.
	if s.products != nil {
		if _, err := s.products.GetByID(ctx, productID); err != nil {
			if errors.Is(err, repositories.ErrProductNotFound) {
				s.log.WithField("productId", productID).Warn("join recorded for unknown product")
			} else {
				s.log.WithError(err).Warn("product lookup failed while recording join")
			}
		}
	}

	ev := &shipment.JoinEvent{
		DisplayName: name,
		ProductID:   productID,
		ProductName: productName,
		JoinedAt:    s.now().UTC(),
	}
	if err := s.joins.Create(ctx, ev); err != nil {
		return nil, err
	}

	if s.audit != nil {
		if err := s.audit.Write(productID, ev); err != nil {
			s.log.WithError(err).Warn("failed to append join audit record")
		}
	}
	return ev, nil
}

func (s *joinService) Recent(ctx context.Context) ([]shipment.Notification, error) {
	since := s.now().UTC().Add(-notificationWindow)
	events, err := s.joins.ListSince(ctx, since, notificationLimit)
	if err != nil {
		return nil, err
	}
	notifications := make([]shipment.Notification, 0, len(events))
	for _, ev := range events {
		notifications = append(notifications, ev.Notification())
	}
	return notifications, nil
}

func (s *joinService) RecentCustomers(ctx context.Context) ([]*shipment.JoinEvent, error) {
	since := s.now().UTC().Add(-customerWindow)
	return s.joins.ListSince(ctx, since, customerLimit)
}
