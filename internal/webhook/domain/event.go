package domain

import (
	"time"

	catalogDomain "github.com/allisson/vmadmin/internal/catalog/domain"
)

// Event types announced to the webhook endpoint.
const (
	EventProductCreated       = "product_created"
	EventProductUpdated       = "product_updated"
	EventProductDeleted       = "product_deleted"
	EventProductStatusChanged = "product_status_changed"
	EventWebhookTest          = "webhook_test"
)

// Source identifies this system in every envelope.
const Source = "vending_machine_admin"

// TimestampLayout is RFC 3339 with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// EventForAction maps a catalog mutation to its event type.
func EventForAction(action catalogDomain.Action) string {
	switch action {
	case catalogDomain.ActionCreate:
		return EventProductCreated
	case catalogDomain.ActionUpdate:
		return EventProductUpdated
	case catalogDomain.ActionDelete:
		return EventProductDeleted
	case catalogDomain.ActionStatusToggle:
		return EventProductStatusChanged
	}
	return "product_" + string(action)
}

// Envelope is the JSON document delivered for every event.
type Envelope struct {
	Event     string         `json:"event"`
	Timestamp string         `json:"timestamp"`
	Source    string         `json:"source"`
	Data      map[string]any `json:"data"`
}

// NewEnvelope builds an envelope. Data holds eventData merged with the active product
// snapshot under "products" and "total_products".
func NewEnvelope(eventType string, eventData map[string]any, products []any, at time.Time) Envelope {
	data := make(map[string]any, len(eventData)+2)
	for k, v := range eventData {
		data[k] = v
	}
	if products == nil {
		products = []any{}
	}
	data["products"] = products
	data["total_products"] = len(products)

	return Envelope{
		Event:     eventType,
		Timestamp: at.UTC().Format(TimestampLayout),
		Source:    Source,
		Data:      data,
	}
}
