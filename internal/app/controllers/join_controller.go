package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/pinkcart/api/internal/app/services"
	"github.com/pinkcart/api/internal/domain/shipment"
)

type JoinController struct {
	service services.JoinService
}

func NewJoinController(s services.JoinService) *JoinController {
	return &JoinController{service: s}
}

// Record handles POST /api/customers: a storefront visitor joining a group
// shipment.
func (c *JoinController) Record(w http.ResponseWriter, r *http.Request) {
	var in shipment.RecordJoinInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	ev, err := c.service.Record(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ev)
}

// Notifications serves the polling feed of joins from the last five minutes.
// Responses must never be cached or polling clients would replay stale toasts.
func (c *JoinController) Notifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := c.service.Recent(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	writeJSON(w, http.StatusOK, map[string][]shipment.Notification{"notifications": notifications})
}

// RecentCustomers lists the last day of joins for the admin dashboard.
func (c *JoinController) RecentCustomers(w http.ResponseWriter, r *http.Request) {
	events, err := c.service.RecentCustomers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}
