package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pinkcart/api/internal/app/services"
)

type UploadController struct {
	service services.ImageService
}

func NewUploadController(s services.ImageService) *UploadController {
	return &UploadController{service: s}
}

// Upload accepts a multipart form with a single "image" part and stores it as
// a catalog image.
func (c *UploadController) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(services.MaxImageSize); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid multipart form"))
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.New("image is required"))
		return
	}
	defer file.Close()

	img, err := c.service.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, img)
}

// Delete removes a stored image. The key usually arrives as a path remainder
// (it contains slashes); a JSON body with public_id works as well.
func (c *UploadController) Delete(w http.ResponseWriter, r *http.Request, storageID string) {
	if storageID == "" {
		var in struct {
			StorageID string `json:"public_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		storageID = in.StorageID
	}
	if err := c.service.Delete(r.Context(), storageID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "image deleted"})
}
