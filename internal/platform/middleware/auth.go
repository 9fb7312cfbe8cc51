package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pinkcart/api/internal/domain/user"
	"github.com/pinkcart/api/internal/platform/auth"
)

type contextKey string

const userContextKey contextKey = "authUser"

// SessionCookie is the HTTP-only cookie carrying the session token.
const SessionCookie = "auth-token"

// UserFromContext returns the authenticated user attached by RequireRole.
func UserFromContext(ctx context.Context) (*user.UserData, bool) {
	u, ok := ctx.Value(userContextKey).(*user.UserData)
	return u, ok
}

func extractToken(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

func denyJSON(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// RequireRole validates the session token and rejects callers below minRole
// before the wrapped handler runs. Missing or invalid token is 401; a valid
// token with an insufficient role is 403.
func RequireRole(verifier *auth.Service, minRole user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				denyJSON(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			u, err := verifier.Verify(token)
			if err != nil {
				denyJSON(w, http.StatusUnauthorized, "not authenticated")
				return
			}
			if !u.Role.AtLeast(minRole) {
				denyJSON(w, http.StatusForbidden, "access denied, admin privileges required")
				return
			}
			ctx := context.WithValue(r.Context(), userContextKey, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
