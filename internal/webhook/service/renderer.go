package service

import (
	"encoding/json"
	"strings"

	"github.com/allisson/vmadmin/internal/webhook/domain"
)

// Template placeholders replaced literally in the configured body template.
const (
	PlaceholderEventType = "{{event_type}}"
	PlaceholderTimestamp = "{{timestamp}}"
	PlaceholderData      = "{{data}}"
)

// PlaceholderRenderer substitutes the template placeholders. An empty template or a
// data value that cannot be encoded yields the envelope JSON instead.
type PlaceholderRenderer struct{}

// NewPlaceholderRenderer creates a PlaceholderRenderer.
func NewPlaceholderRenderer() *PlaceholderRenderer {
	return &PlaceholderRenderer{}
}

// Render implements BodyRenderer.
func (r *PlaceholderRenderer) Render(template string, envelope domain.Envelope) string {
	fallback := envelopeJSON(envelope)
	if strings.TrimSpace(template) == "" {
		return fallback
	}

	data, err := json.Marshal(envelope.Data)
	if err != nil {
		return fallback
	}

	return strings.NewReplacer(
		PlaceholderEventType, envelope.Event,
		PlaceholderTimestamp, envelope.Timestamp,
		PlaceholderData, string(data),
	).Replace(template)
}

func envelopeJSON(envelope domain.Envelope) string {
	body, err := json.Marshal(envelope)
	if err != nil {
		// Only unencodable event data gets here; send the envelope without it.
		envelope.Data = map[string]any{}
		body, _ = json.Marshal(envelope)
	}
	return string(body)
}
