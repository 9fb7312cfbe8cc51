package http

import (
	"encoding/json"
	stdhttp "net/http"
	"os"
	"strings"
	"sync"

	"github.com/pinkcart/api/internal/app/controllers"
	"github.com/pinkcart/api/internal/domain/user"
	"github.com/pinkcart/api/internal/platform/auth"
	"github.com/pinkcart/api/internal/platform/middleware"
	"github.com/sirupsen/logrus"
	yaml "gopkg.in/yaml.v3"
)

type RouterConfig struct {
	CatalogCtrl   *controllers.CatalogController
	JoinCtrl      *controllers.JoinController
	OrderCtrl     *controllers.OrderController
	UserCtrl      *controllers.UserController
	AuthCtrl      *controllers.AuthController
	UploadCtrl    *controllers.UploadController
	PhoneCtrl     *controllers.PhoneController
	ExportCtrl    *controllers.ExportController
	Verifier      *auth.Service
	Logger        *logrus.Entry
	SwaggerEnable bool
}

func NewRouter(cfg RouterConfig) stdhttp.Handler {
	mux := stdhttp.NewServeMux()

	// Root endpoint - API information
	mux.HandleFunc("/", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		// Only handle exact root path
		if r.URL.Path != "/" {
			w.WriteHeader(stdhttp.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{
				"error": "endpoint not found",
			})
			return
		}
		if r.Method != stdhttp.MethodGet {
			w.WriteHeader(stdhttp.StatusMethodNotAllowed)
			json.NewEncoder(w).Encode(map[string]string{
				"error": "method not allowed",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":      "ok",
			"name":        "PinkCart API",
			"version":     "0.1.0",
			"description": "Group shipping storefront API",
			"endpoints": map[string]string{
				"health":        "/health",
				"products":      "/api/products",
				"categories":    "/api/categories",
				"customers":     "/api/customers",
				"notifications": "/api/notifications",
				"documentation": "/docs",
			},
		})
	})

	mux.HandleFunc("/health", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status": "ok",
		})
	})

	splitSegments := func(path string) []string {
		raw := strings.Split(path, "/")
		out := make([]string, 0, len(raw))
		for _, segment := range raw {
			if segment == "" {
				continue
			}
			out = append(out, segment)
		}
		return out
	}

	// --- Documentation endpoints (if enabled) ---
	if cfg.SwaggerEnable {
		var (
			once     sync.Once
			yamlData []byte
			yamlErr  error
		)
		loadYAML := func() ([]byte, error) {
			once.Do(func() { yamlData, yamlErr = os.ReadFile("docs/openapi.yaml") })
			return yamlData, yamlErr
		}
		mux.HandleFunc("/openapi.yaml", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			data, err := loadYAML()
			if err != nil {
				w.WriteHeader(stdhttp.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
			w.Write(data)
		})
		mux.HandleFunc("/openapi.json", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			data, err := loadYAML()
			if err != nil {
				w.WriteHeader(stdhttp.StatusNotFound)
				return
			}
			var v interface{}
			if err := yaml.Unmarshal(data, &v); err != nil {
				w.WriteHeader(stdhttp.StatusInternalServerError)
				return
			}
			// YAML lib decodes map[interface{}]interface{}; re-marshal via generic map by JSON roundtrip
			jsonBytes, err := json.Marshal(v)
			if err != nil {
				w.WriteHeader(stdhttp.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.Write(jsonBytes)
		})
		mux.HandleFunc("/docs", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			// Simple Swagger UI (CDN)
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte(`<!DOCTYPE html><html><head><title>API Docs</title><link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css"/></head><body><div id="swagger-ui"></div><script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script><script>window.onload=()=>{SwaggerUIBundle({url:'/openapi.yaml',dom_id:'#swagger-ui'});};</script></body></html>`))
		})
	}

	// Public catalog routes
	mux.HandleFunc("/api/products", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		if r.Method != stdhttp.MethodGet {
			w.WriteHeader(stdhttp.StatusMethodNotAllowed)
			return
		}
		cfg.CatalogCtrl.ListProducts(w, r)
	})
	mux.HandleFunc("/api/products/", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		segments := splitSegments(strings.TrimPrefix(r.URL.Path, "/api/products/"))
		switch {
		case len(segments) == 1:
			if r.Method != stdhttp.MethodGet {
				w.WriteHeader(stdhttp.StatusMethodNotAllowed)
				return
			}
			cfg.CatalogCtrl.GetProduct(w, r, segments[0])
		case len(segments) == 2 && segments[1] == "share-qr":
			if r.Method != stdhttp.MethodGet {
				w.WriteHeader(stdhttp.StatusMethodNotAllowed)
				return
			}
			cfg.CatalogCtrl.ShareQR(w, r, segments[0])
		default:
			w.WriteHeader(stdhttp.StatusNotFound)
		}
	})

	mux.HandleFunc("/api/categories", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		if r.Method != stdhttp.MethodGet {
			w.WriteHeader(stdhttp.StatusMethodNotAllowed)
			return
		}
		cfg.CatalogCtrl.ListActiveCategories(w, r)
	})

	// Storefront visitor routes
	mux.HandleFunc("/api/customers", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		switch r.Method {
		case stdhttp.MethodPost:
			cfg.JoinCtrl.Record(w, r)
		case stdhttp.MethodGet:
			cfg.JoinCtrl.RecentCustomers(w, r)
		default:
			w.WriteHeader(stdhttp.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/api/notifications", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		if r.Method != stdhttp.MethodGet {
			w.WriteHeader(stdhttp.StatusMethodNotAllowed)
			return
		}
		cfg.JoinCtrl.Notifications(w, r)
	})
	mux.HandleFunc("/api/phone-numbers", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		if r.Method != stdhttp.MethodPost {
			w.WriteHeader(stdhttp.StatusMethodNotAllowed)
			return
		}
		cfg.PhoneCtrl.Save(w, r)
	})

	// Session routes. Exact-path registrations take precedence over the
	// guarded /api/admin/ subtree, so login and logout stay reachable.
	mux.HandleFunc("/api/admin/login", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		if r.Method != stdhttp.MethodPost {
			w.WriteHeader(stdhttp.StatusMethodNotAllowed)
			return
		}
		cfg.AuthCtrl.Login(w, r)
	})
	mux.HandleFunc("/api/admin/logout", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		if r.Method != stdhttp.MethodPost {
			w.WriteHeader(stdhttp.StatusMethodNotAllowed)
			return
		}
		cfg.AuthCtrl.Logout(w, r)
	})

	// Admin routes, all behind the session guard
	adminMux := stdhttp.NewServeMux()
	adminMux.HandleFunc("/api/admin/me", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		if r.Method != stdhttp.MethodGet {
			w.WriteHeader(stdhttp.StatusMethodNotAllowed)
			return
		}
		cfg.AuthCtrl.Me(w, r)
	})
	adminMux.HandleFunc("/api/admin/products", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		switch r.Method {
		case stdhttp.MethodGet:
			cfg.CatalogCtrl.ListProducts(w, r)
		case stdhttp.MethodPost:
			cfg.CatalogCtrl.CreateProduct(w, r)
		default:
			w.WriteHeader(stdhttp.StatusMethodNotAllowed)
		}
	})
	adminMux.HandleFunc("/api/admin/products/", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		segments := splitSegments(strings.TrimPrefix(r.URL.Path, "/api/admin/products/"))
		if len(segments) != 1 {
			w.WriteHeader(stdhttp.StatusNotFound)
			return
		}
		switch r.Method {
		case stdhttp.MethodGet:
			cfg.CatalogCtrl.GetProduct(w, r, segments[0])
		case stdhttp.MethodPut:
			cfg.CatalogCtrl.UpdateProduct(w, r, segments[0])
		case stdhttp.MethodDelete:
			cfg.CatalogCtrl.DeleteProduct(w, r, segments[0])
		default:
			w.WriteHeader(stdhttp.StatusMethodNotAllowed)
		}
	})
	adminMux.HandleFunc("/api/admin/categories", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		switch r.Method {
		case stdhttp.MethodGet:
			cfg.CatalogCtrl.ListCategories(w, r)
		case stdhttp.MethodPost:
			cfg.CatalogCtrl.CreateCategory(w, r)
		default:
			w.WriteHeader(stdhttp.StatusMethodNotAllowed)
		}
	})
	adminMux.HandleFunc("/api/admin/categories/", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		segments := splitSegments(strings.TrimPrefix(r.URL.Path, "/api/admin/categories/"))
		if len(segments) != 1 {
			w.WriteHeader(stdhttp.StatusNotFound)
			return
		}
		switch r.Method {
		case stdhttp.MethodPut:
			cfg.CatalogCtrl.UpdateCategory(w, r, segments[0])
		case stdhttp.MethodDelete:
			cfg.CatalogCtrl.DeleteCategory(w, r, segments[0])
		default:
			w.WriteHeader(stdhttp.StatusMethodNotAllowed)
		}
	})
	adminMux.HandleFunc("/api/admin/orders", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		switch r.Method {
		case stdhttp.MethodGet:
			cfg.OrderCtrl.List(w, r)
		case stdhttp.MethodPost:
			cfg.OrderCtrl.Create(w, r)
		default:
			w.WriteHeader(stdhttp.StatusMethodNotAllowed)
		}
	})
	adminMux.HandleFunc("/api/admin/orders/", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		segments := splitSegments(strings.TrimPrefix(r.URL.Path, "/api/admin/orders/"))
		if len(segments) != 1 {
			w.WriteHeader(stdhttp.StatusNotFound)
			return
		}
		switch r.Method {
		case stdhttp.MethodGet:
			cfg.OrderCtrl.GetByID(w, r, segments[0])
		case stdhttp.MethodPut:
			cfg.OrderCtrl.Update(w, r, segments[0])
		case stdhttp.MethodDelete:
			cfg.OrderCtrl.Delete(w, r, segments[0])
		default:
			w.WriteHeader(stdhttp.StatusMethodNotAllowed)
		}
	})
	adminMux.HandleFunc("/api/admin/users", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		if r.Method != stdhttp.MethodGet {
			w.WriteHeader(stdhttp.StatusMethodNotAllowed)
			return
		}
		cfg.UserCtrl.List(w, r)
	})
	adminMux.HandleFunc("/api/admin/phone-numbers", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		if r.Method != stdhttp.MethodGet {
			w.WriteHeader(stdhttp.StatusMethodNotAllowed)
			return
		}
		cfg.PhoneCtrl.List(w, r)
	})
	adminMux.HandleFunc("/api/admin/upload", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		switch r.Method {
		case stdhttp.MethodPost:
			cfg.UploadCtrl.Upload(w, r)
		case stdhttp.MethodDelete:
			cfg.UploadCtrl.Delete(w, r, "")
		default:
			w.WriteHeader(stdhttp.StatusMethodNotAllowed)
		}
	})
	adminMux.HandleFunc("/api/admin/upload/", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		if r.Method != stdhttp.MethodDelete {
			w.WriteHeader(stdhttp.StatusMethodNotAllowed)
			return
		}
		// Storage keys contain slashes, keep the raw remainder.
		key := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/admin/upload/"), "/")
		cfg.UploadCtrl.Delete(w, r, key)
	})
	adminMux.HandleFunc("/api/admin/export/", func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		if r.Method != stdhttp.MethodGet {
			w.WriteHeader(stdhttp.StatusMethodNotAllowed)
			return
		}
		segments := splitSegments(strings.TrimPrefix(r.URL.Path, "/api/admin/export/"))
		if len(segments) != 1 {
			w.WriteHeader(stdhttp.StatusNotFound)
			return
		}
		cfg.ExportCtrl.Export(w, r, segments[0])
	})

	requireAdmin := middleware.RequireRole(cfg.Verifier, user.RoleAdmin)
	mux.Handle("/api/admin/", requireAdmin(adminMux))

	// Middlewares wrap
	var handler stdhttp.Handler = mux
	handler = middleware.Logging(cfg.Logger)(handler)
	handler = middleware.CORS(handler) // Apply CORS to all routes
	return handler
}
