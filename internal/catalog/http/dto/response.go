package dto

import (
	"time"

	"github.com/allisson/vmadmin/internal/catalog/domain"
)

// ProductResponse represents a product in API responses.
type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Status      string    `json:"status"`
	ImageURL    *string   `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MapProductToResponse converts a domain product to an API response.
func MapProductToResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID.String(),
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
		Status:      string(product.Status),
		ImageURL:    product.ImageURL,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

// ListProductsResponse is the catalog listing served to vending machines.
type ListProductsResponse struct {
	Success bool              `json:"success"`
	Data    []ProductResponse `json:"data"`
	Count   int               `json:"count"`
}

// MapProductsToListResponse converts a slice of domain products to a list API response.
func MapProductsToListResponse(products []*domain.Product) ListProductsResponse {
	data := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		data = append(data, MapProductToResponse(product))
	}
	return ListProductsResponse{
		Success: true,
		Data:    data,
		Count:   len(data),
	}
}
