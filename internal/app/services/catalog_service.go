package services

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/pinkcart/api/internal/app/repositories"
	"github.com/pinkcart/api/internal/domain/catalog"
	"github.com/pinkcart/api/pkg/storage"
	qrcode "github.com/skip2/go-qrcode"
)

type CatalogService interface {
	ListProducts(ctx context.Context) ([]*catalog.Product, error)
	GetProduct(ctx context.Context, id string) (*catalog.Product, error)
	CreateProduct(ctx context.Context, in catalog.ProductInput) (*catalog.Product, error)
	UpdateProduct(ctx context.Context, id string, in catalog.ProductInput) (*catalog.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ShareQR(ctx context.Context, id string) (string, error)

	ListCategories(ctx context.Context, activeOnly bool) ([]*catalog.Category, error)
	CreateCategory(ctx context.Context, in catalog.CategoryInput) (*catalog.Category, error)
	UpdateCategory(ctx context.Context, id string, in catalog.CategoryInput) (*catalog.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

type catalogService struct {
	products   repositories.ProductRepository
	categories repositories.CategoryRepository
	storage    storage.Service
	waNumber   string
	baseURL    string
}

func NewCatalogService(products repositories.ProductRepository, categories repositories.CategoryRepository, st storage.Service, waNumber, baseURL string) CatalogService {
	return &catalogService{
		products:   products,
		categories: categories,
		storage:    st,
		waNumber:   strings.TrimSpace(waNumber),
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
	}
}

func (s *catalogService) ListProducts(ctx context.Context) ([]*catalog.Product, error) {
	return s.products.List(ctx)
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *catalogService) CreateProduct(ctx context.Context, in catalog.ProductInput) (*catalog.Product, error) {
	p, err := productFromInput(in)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateProduct replaces the editable fields wholesale. The admin form always
// posts the full document, so concurrent edits resolve last write wins.
func (s *catalogService) UpdateProduct(ctx context.Context, id string, in catalog.ProductInput) (*catalog.Product, error) {
	existing, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p, err := productFromInput(in)
	if err != nil {
		return nil, err
	}
	p.ID = existing.ID
	p.JoinedCount = existing.JoinedCount
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

// ShareQR renders a QR code that opens a WhatsApp chat pre-filled with the
// product link, stores the PNG, and returns its public URL.
func (s *catalogService) ShareQR(ctx context.Context, id string) (string, error) {
	if s.storage == nil {
		return "", ErrStorageDisabled
	}
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	link := s.shareLink(p)
	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("products/%s/share-qr.png", p.ID)
	return s.storage.PutObject(ctx, storage.UploadInput{
		Key:         key,
		ContentType: "image/png",
		Body:        bytes.NewReader(png),
		Size:        int64(len(png)),
	})
}

func (s *catalogService) shareLink(p *catalog.Product) string {
	productURL := fmt.Sprintf("%s/product/%s", s.baseURL, p.ID)
	if s.waNumber == "" {
		return productURL
	}
	text := fmt.Sprintf("Hi! I want to join the group shipment for %s %s", p.Name, productURL)
	return fmt.Sprintf("https://wa.me/%s?text=%s", s.waNumber, url.QueryEscape(text))
}

func (s *catalogService) ListCategories(ctx context.Context, activeOnly bool) ([]*catalog.Category, error) {
	return s.categories.List(ctx, activeOnly)
}

func (s *catalogService) CreateCategory(ctx context.Context, in catalog.CategoryInput) (*catalog.Category, error) {
	c, err := categoryFromInput(in)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, id string, in catalog.CategoryInput) (*catalog.Category, error) {
	existing, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c, err := categoryFromInput(in)
	if err != nil {
		return nil, err
	}
	c.ID = existing.ID
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *catalogService) DeleteCategory(ctx context.Context, id string) error {
	return s.categories.Delete(ctx, id)
}

func productFromInput(in catalog.ProductInput) (*catalog.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, validationErr("name", "name is required")
	}
	if in.Price == nil {
		return nil, validationErr("price", "price is required")
	}
	if *in.Price < 0 {
		return nil, validationErr("price", "price must not be negative")
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return nil, validationErr("category", "category is required")
	}
	if in.OriginalPrice < 0 {
		return nil, validationErr("originalPrice", "originalPrice must not be negative")
	}

	inStock := true
	if in.InStock != nil {
		inStock = *in.InStock
	}
	images := in.Images
	if images == nil {
		images = []string{}
	}
	features := in.Features
	if features == nil {
		features = []string{}
	}

	return &catalog.Product{
		Name:             name,
		Price:            *in.Price,
		OriginalPrice:    in.OriginalPrice,
		Image:            strings.TrimSpace(in.Image),
		StorageID:        strings.TrimSpace(in.StorageID),
		Images:           images,
		StorageIDs:       in.StorageIDs,
		Category:         category,
		Description:      strings.TrimSpace(in.Description),
		Features:         features,
		InStock:          inStock,
		ShippingEstimate: strings.TrimSpace(in.ShippingEstimate),
	}, nil
}

func categoryFromInput(in catalog.CategoryInput) (*catalog.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, validationErr("name", "name is required")
	}
	if in.SortOrder < 0 {
		return nil, validationErr("sortOrder", "sortOrder must not be negative")
	}

	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}

	return &catalog.Category{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Image:       strings.TrimSpace(in.Image),
		StorageID:   strings.TrimSpace(in.StorageID),
		IsActive:    isActive,
		SortOrder:   in.SortOrder,
	}, nil
}
