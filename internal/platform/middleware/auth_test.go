package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pinkcart/api/internal/domain/user"
	"github.com/pinkcart/api/internal/platform/auth"
)

func guardedHandler(t *testing.T, verifier *auth.Service, minRole user.Role) http.Handler {
	t.Helper()
	return RequireRole(verifier, minRole)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFromContext(r.Context())
		if !ok {
			t.Fatal("expected user in context")
		}
		w.Write([]byte(u.Email))
	}))
}

func TestRequireRoleMissingToken(t *testing.T) {
	verifier := auth.NewService("test-secret", time.Hour)
	handler := guardedHandler(t, verifier, user.RoleAdmin)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRoleInvalidToken(t *testing.T) {
	verifier := auth.NewService("test-secret", time.Hour)
	handler := guardedHandler(t, verifier, user.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "garbage"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRoleExpiredToken(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := issued
	verifier := auth.NewService("test-secret", time.Hour).WithClock(func() time.Time { return now })

	token, err := verifier.Generate(user.UserData{ID: "u1", Email: "a@b.c", Role: user.RoleAdmin})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	now = issued.Add(2 * time.Hour)

	handler := guardedHandler(t, verifier, user.RoleAdmin)
	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", rec.Code)
	}
}

func TestRequireRoleInsufficientRole(t *testing.T) {
	verifier := auth.NewService("test-secret", time.Hour)
	token, err := verifier.Generate(user.UserData{ID: "u1", Email: "user@b.c", Role: user.RoleUser})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	handler := guardedHandler(t, verifier, user.RoleAdmin)
	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireRoleAcceptsCookieAndBearer(t *testing.T) {
	verifier := auth.NewService("test-secret", time.Hour)
	token, err := verifier.Generate(user.UserData{ID: "u1", Email: "admin@b.c", Role: user.RoleSuperAdmin})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	handler := guardedHandler(t, verifier, user.RoleAdmin)

	withCookie := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	withCookie.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, withCookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("cookie: expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "admin@b.c" {
		t.Fatalf("expected user attached to context, got %q", rec.Body.String())
	}

	withBearer := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
	withBearer.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, withBearer)
	if rec.Code != http.StatusOK {
		t.Fatalf("bearer: expected 200, got %d", rec.Code)
	}
}
