package services

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pinkcart/api/pkg/storage"
)

// MaxImageSize caps catalog image uploads at 5 MiB.
const MaxImageSize = 5 << 20

type UploadedImage struct {
	URL       string `json:"url"`
	StorageID string `json:"public_id"`
}

type ImageService interface {
	Upload(ctx context.Context, filename, contentType string, size int64, body io.Reader) (*UploadedImage, error)
	Delete(ctx context.Context, storageID string) error
}

type imageService struct {
	storage storage.Service
}

func NewImageService(st storage.Service) ImageService {
	return &imageService{storage: st}
}

func (s *imageService) Upload(ctx context.Context, filename, contentType string, size int64, body io.Reader) (*UploadedImage, error) {
	if s.storage == nil {
		return nil, ErrStorageDisabled
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, validationErr("file", "only image uploads are allowed")
	}
	if size <= 0 {
		return nil, validationErr("file", "file is empty")
	}
	if size > MaxImageSize {
		return nil, validationErr("file", "image exceeds the 5MB limit")
	}

	key := fmt.Sprintf("products/%s%s", uuid.NewString(), imageExt(filename, contentType))
	url, err := s.storage.PutObject(ctx, storage.UploadInput{
		Key:         key,
		ContentType: contentType,
		Body:        io.LimitReader(body, MaxImageSize),
		Size:        size,
	})
	if err != nil {
		return nil, err
	}
	return &UploadedImage{URL: url, StorageID: key}, nil
}

func (s *imageService) Delete(ctx context.Context, storageID string) error {
	if s.storage == nil {
		return ErrStorageDisabled
	}
	storageID = strings.TrimSpace(storageID)
	if storageID == "" {
		return validationErr("public_id", "public_id is required")
	}
	return s.storage.DeleteObject(ctx, storageID)
}

func imageExt(filename, contentType string) string {
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" {
		return ext
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".bin"
}
