package controllers

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"github.com/pinkcart/api/internal/app/services"
)

type PhoneController struct {
	service services.PhoneService
}

func NewPhoneController(s services.PhoneService) *PhoneController {
	return &PhoneController{service: s}
}

// Save handles POST /api/phone-numbers: storefront visitors leaving a contact
// number for shipment updates.
func (c *PhoneController) Save(w http.ResponseWriter, r *http.Request) {
	var in services.SavePhoneInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	in.IPAddress = clientIP(r)
	in.UserAgent = r.UserAgent()

	p, err := c.service.Save(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (c *PhoneController) List(w http.ResponseWriter, r *http.Request) {
	numbers, err := c.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, numbers)
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
