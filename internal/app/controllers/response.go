package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pinkcart/api/internal/app/repositories"
	"github.com/pinkcart/api/internal/app/services"
)

var ErrInvalidParam = errors.New("invalid param")

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// writeServiceError translates service and repository errors into HTTP
// statuses so the individual handlers only deal with the happy path.
func writeServiceError(w http.ResponseWriter, err error) {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, repositories.ErrProductNotFound),
		errors.Is(err, repositories.ErrCategoryNotFound),
		errors.Is(err, repositories.ErrOrderNotFound),
		errors.Is(err, repositories.ErrUserNotFound),
		errors.Is(err, repositories.ErrJoinEventNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, repositories.ErrCategoryAlreadyExists),
		errors.Is(err, repositories.ErrUserAlreadyExists),
		errors.Is(err, repositories.ErrPhoneNumberExists):
		writeError(w, http.StatusConflict, err)
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err)
	case errors.Is(err, services.ErrAdminRequired):
		writeError(w, http.StatusForbidden, err)
	case errors.Is(err, services.ErrStorageDisabled):
		writeError(w, http.StatusServiceUnavailable, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}
