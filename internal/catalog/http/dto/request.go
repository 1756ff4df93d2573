// Package dto provides data transfer objects for the catalog endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/allisson/vmadmin/internal/catalog/domain"
	customValidation "github.com/allisson/vmadmin/internal/validation"
)

// ProductRequest contains the writable fields of a product for create and update.
type ProductRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Status      string  `json:"status"`
	ImageURL    *string `json:"image_url"`
}

// Validate checks if the product request is valid.
func (r *ProductRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Price, validation.Min(0.0)),
		validation.Field(&r.Stock, validation.Min(0)),
		validation.Field(&r.Status, validation.In(string(domain.StatusActive), string(domain.StatusInactive))),
		validation.Field(&r.ImageURL, validation.NilOrNotEmpty, customValidation.HTTPURL),
	)
}

// ToInput converts the request to the use case input.
func (r *ProductRequest) ToInput() domain.ProductInput {
	return domain.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		Status:      domain.ProductStatus(r.Status),
		ImageURL:    r.ImageURL,
	}
}
