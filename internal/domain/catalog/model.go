package catalog

import "time"

type Product struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Price            float64   `json:"price"`
	OriginalPrice    float64   `json:"originalPrice,omitempty"`
	Image            string    `json:"image,omitempty"`
	StorageID        string    `json:"storageId,omitempty"`
	Images           []string  `json:"images"`
	StorageIDs       []string  `json:"storageIds,omitempty"`
	Category         string    `json:"category"`
	Description      string    `json:"description,omitempty"`
	Features         []string  `json:"features"`
	InStock          bool      `json:"inStock"`
	JoinedCount      int       `json:"joinedCount"`
	ShippingEstimate string    `json:"shippingEstimate,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// PrimaryImage picks the display image: first gallery entry, else the legacy
// single-image field.
func (p *Product) PrimaryImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return p.Image
}

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	StorageID   string    `json:"storageId,omitempty"`
	IsActive    bool      `json:"isActive"`
	SortOrder   int       `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ProductInput struct {
	Name             string   `json:"name"`
	Price            *float64 `json:"price"`
	OriginalPrice    float64  `json:"originalPrice"`
	Image            string   `json:"image"`
	StorageID        string   `json:"storageId"`
	Images           []string `json:"images"`
	StorageIDs       []string `json:"storageIds"`
	Category         string   `json:"category"`
	Description      string   `json:"description"`
	Features         []string `json:"features"`
	InStock          *bool    `json:"inStock"`
	ShippingEstimate string   `json:"shippingEstimate"`
}

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	StorageID   string `json:"storageId"`
	IsActive    *bool  `json:"isActive"`
	SortOrder   int    `json:"sortOrder"`
}
