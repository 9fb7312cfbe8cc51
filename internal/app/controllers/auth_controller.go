package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/pinkcart/api/internal/app/services"
	"github.com/pinkcart/api/internal/domain/user"
	"github.com/pinkcart/api/internal/platform/middleware"
)

type AuthController struct {
	service      services.AuthService
	tokenTTL     time.Duration
	secureCookie bool
}

func NewAuthController(s services.AuthService, tokenTTL time.Duration, secureCookie bool) *AuthController {
	return &AuthController{service: s, tokenTTL: tokenTTL, secureCookie: secureCookie}
}

type loginResponse struct {
	Message string         `json:"message"`
	User    *user.UserData `json:"user"`
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in user.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	data, token, err := c.service.Login(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.tokenTTL / time.Second),
		HttpOnly: true,
		Secure:   c.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, loginResponse{Message: "login successful", User: data})
}

func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me returns the identity attached by the session guard.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	data, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, errors.New("not authenticated"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]*user.UserData{"user": data})
}
