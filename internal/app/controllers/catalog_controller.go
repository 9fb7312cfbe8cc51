package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/pinkcart/api/internal/app/services"
	"github.com/pinkcart/api/internal/domain/catalog"
)

type CatalogController struct {
	service services.CatalogService
}

func NewCatalogController(s services.CatalogService) *CatalogController {
	return &CatalogController{service: s}
}

func (c *CatalogController) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := c.service.ListProducts(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (c *CatalogController) GetProduct(w http.ResponseWriter, r *http.Request, id string) {
	p, err := c.service.GetProduct(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (c *CatalogController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in catalog.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	p, err := c.service.CreateProduct(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (c *CatalogController) UpdateProduct(w http.ResponseWriter, r *http.Request, id string) {
	var in catalog.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	p, err := c.service.UpdateProduct(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (c *CatalogController) DeleteProduct(w http.ResponseWriter, r *http.Request, id string) {
	if err := c.service.DeleteProduct(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

func (c *CatalogController) ShareQR(w http.ResponseWriter, r *http.Request, id string) {
	url, err := c.service.ShareQR(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

// ListActiveCategories backs the public storefront: retired categories are
// never exposed there.
func (c *CatalogController) ListActiveCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.service.ListCategories(r.Context(), true)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (c *CatalogController) ListCategories(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	categories, err := c.service.ListCategories(r.Context(), activeOnly)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (c *CatalogController) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in catalog.CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	cat, err := c.service.CreateCategory(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cat)
}

func (c *CatalogController) UpdateCategory(w http.ResponseWriter, r *http.Request, id string) {
	var in catalog.CategoryInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	cat, err := c.service.UpdateCategory(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

func (c *CatalogController) DeleteCategory(w http.ResponseWriter, r *http.Request, id string) {
	if err := c.service.DeleteCategory(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "category deleted"})
}
