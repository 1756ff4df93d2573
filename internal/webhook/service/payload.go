package service

import (
	"time"

	catalogDomain "github.com/allisson/vmadmin/internal/catalog/domain"
)

// ProductSnapshot renders a product the way it appears inside webhook payloads.
func ProductSnapshot(product *catalogDomain.Product) map[string]any {
	return map[string]any{
		"id":          product.ID.String(),
		"name":        product.Name,
		"description": product.Description,
		"price":       product.Price,
		"stock":       product.Stock,
		"status":      string(product.Status),
		"active":      product.IsActive(),
		"image_url":   product.ImageURL,
		"created_at":  product.CreatedAt.UTC().Format(time.RFC3339),
		"updated_at":  product.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// ProductSnapshots renders a product list for the "products" field of an envelope.
func ProductSnapshots(products []*catalogDomain.Product) []any {
	snapshots := make([]any, 0, len(products))
	for _, product := range products {
		snapshots = append(snapshots, ProductSnapshot(product))
	}
	return snapshots
}

// FormatProductEvent builds the event data for a catalog mutation.
func FormatProductEvent(product *catalogDomain.Product, action catalogDomain.Action) map[string]any {
	return map[string]any{
		"action":  string(action),
		"product": ProductSnapshot(product),
		"metadata": map[string]any{
			"admin_action":  true,
			"source_system": "vending_machine_admin",
		},
	}
}
