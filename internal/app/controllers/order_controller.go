package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/pinkcart/api/internal/app/services"
	"github.com/pinkcart/api/internal/domain/order"
)

type OrderController struct {
	service services.OrderService
}

func NewOrderController(s services.OrderService) *OrderController {
	return &OrderController{service: s}
}

func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	var in order.CreateOrderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	v, err := c.service.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	views, err := c.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (c *OrderController) GetByID(w http.ResponseWriter, r *http.Request, id string) {
	v, err := c.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (c *OrderController) Update(w http.ResponseWriter, r *http.Request, id string) {
	var in order.UpdateOrderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	v, err := c.service.Update(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (c *OrderController) Delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := c.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "order deleted"})
}
