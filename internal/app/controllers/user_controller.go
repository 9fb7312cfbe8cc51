package controllers

import (
	"net/http"

	"github.com/pinkcart/api/internal/app/services"
)

type UserController struct {
	service services.UserService
}

func NewUserController(s services.UserService) *UserController {
	return &UserController{service: s}
}

func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	users, err := c.service.ListShoppers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}
