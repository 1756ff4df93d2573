package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	catalogDomain "github.com/allisson/vmadmin/internal/catalog/domain"
)

func TestFormatProductEvent(t *testing.T) {
	created := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	product := &catalogDomain.Product{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      "Granola bar",
		Price:     6.9,
		Stock:     15,
		Status:    catalogDomain.StatusActive,
		CreatedAt: created,
		UpdatedAt: created,
	}

	event := FormatProductEvent(product, catalogDomain.ActionStatusToggle)

	assert.Equal(t, "status_toggle", event["action"])
	snapshot := event["product"].(map[string]any)
	assert.Equal(t, product.ID.String(), snapshot["id"])
	assert.Equal(t, "Granola bar", snapshot["name"])
	assert.Equal(t, 6.9, snapshot["price"])
	assert.Equal(t, true, snapshot["active"])
	assert.Equal(t, "2025-05-01T10:00:00Z", snapshot["created_at"])
	metadata := event["metadata"].(map[string]any)
	assert.Equal(t, true, metadata["admin_action"])
	assert.Equal(t, "vending_machine_admin", metadata["source_system"])
}

func TestProductSnapshots(t *testing.T) {
	assert.Equal(t, []any{}, ProductSnapshots(nil))

	products := []*catalogDomain.Product{
		{ID: uuid.Must(uuid.NewV7()), Name: "a", Status: catalogDomain.StatusActive},
		{ID: uuid.Must(uuid.NewV7()), Name: "b", Status: catalogDomain.StatusActive},
	}
	snapshots := ProductSnapshots(products)
	assert.Len(t, snapshots, 2)
	assert.Equal(t, "a", snapshots[0].(map[string]any)["name"])
}
