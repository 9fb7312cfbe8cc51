package controllers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/pinkcart/api/internal/app/services"
)

type ExportController struct {
	joins  services.JoinService
	orders services.OrderService
	phones services.PhoneService
}

func NewExportController(joins services.JoinService, orders services.OrderService, phones services.PhoneService) *ExportController {
	return &ExportController{joins: joins, orders: orders, phones: phones}
}

// Export streams one of the admin datasets as a CSV download.
func (c *ExportController) Export(w http.ResponseWriter, r *http.Request, dataset string) {
	switch dataset {
	case "customers":
		c.exportCustomers(w, r)
	case "orders":
		c.exportOrders(w, r)
	case "phone-numbers":
		c.exportPhoneNumbers(w, r)
	default:
		writeError(w, http.StatusNotFound, errors.New("unknown export dataset"))
	}
}

func (c *ExportController) exportCustomers(w http.ResponseWriter, r *http.Request) {
	events, err := c.joins.RecentCustomers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	cw := beginCSV(w, "customers")
	_ = cw.Write([]string{"name", "productId", "productName", "joinedAt"})
	for _, ev := range events {
		_ = cw.Write([]string{ev.DisplayName, ev.ProductID, ev.ProductName, ev.JoinedAt.Format(time.RFC3339)})
	}
	cw.Flush()
}

func (c *ExportController) exportOrders(w http.ResponseWriter, r *http.Request) {
	views, err := c.orders.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	cw := beginCSV(w, "orders")
	_ = cw.Write([]string{"id", "user", "email", "product", "quantity", "status", "createdAt"})
	for _, v := range views {
		userName, email, productName := "", "", ""
		if v.User != nil {
			userName, email = v.User.Name, v.User.Email
		}
		if v.Product != nil {
			productName = v.Product.Name
		}
		_ = cw.Write([]string{
			v.ID, userName, email, productName,
			strconv.Itoa(v.Quantity), string(v.Status),
			v.CreatedAt.Format(time.RFC3339),
		})
	}
	cw.Flush()
}

func (c *ExportController) exportPhoneNumbers(w http.ResponseWriter, r *http.Request) {
	numbers, err := c.phones.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	cw := beginCSV(w, "phone-numbers")
	_ = cw.Write([]string{"phoneNumber", "createdAt"})
	for _, p := range numbers {
		_ = cw.Write([]string{p.PhoneNumber, p.CreatedAt.Format(time.RFC3339)})
	}
	cw.Flush()
}

func beginCSV(w http.ResponseWriter, name string) *csv.Writer {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s-%s.csv", name, time.Now().UTC().Format("20060102")))
	w.WriteHeader(http.StatusOK)
	return csv.NewWriter(w)
}
