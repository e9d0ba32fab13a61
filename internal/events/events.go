// Package events announces listing and contact changes on a message broker.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	PropertyCreated     = "property.created"
	PropertyUpdated     = "property.updated"
	PropertyDeleted     = "property.deleted"
	PropertyImagesAdded = "property.images_added"
	ContactCreated      = "contact.created"
	ContactStatusUpdate = "contact.status_updated"
	ContactDeleted      = "contact.deleted"
)

// Event is the envelope written to the broker.
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    interface{} `json:"payload"`
}

func NewEvent(eventType string, payload interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NoopPublisher drops every event. It is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }

func (NoopPublisher) Close() error { return nil }
