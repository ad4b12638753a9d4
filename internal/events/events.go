// Package events decouples the tutoring service from the persistence
// pipeline. The service emits persist requests without knowing which
// handlers process them; the task runner picks them up and writes to
// the gateway in the background.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Persist event types. Each names the entity the payload carries.
const (
	PersistProfile = "persist.profile"
	PersistMessage = "persist.message"
	PersistSession = "persist.session"
)

// PersistRequestEvent asks the background pipeline to write one entity
// to the store. The payload is the entity serialized as JSON so the
// emitting service needs no dependency on the store layer.
type PersistRequestEvent struct {
	// ID uniquely identifies this event.
	ID uuid.UUID `json:"id"`

	// Type is one of the Persist* constants.
	Type string `json:"type"`

	// Payload is the entity to persist, serialized as JSON.
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is when the event was created.
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into v.
func (e *PersistRequestEvent) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewPersistRequestEvent creates a persist request of the given type
// carrying payload serialized as JSON.
func NewPersistRequestEvent(eventType string, payload any) (*PersistRequestEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &PersistRequestEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EventHandler processes emitted events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	HandleEvent(ctx context.Context, event *PersistRequestEvent) error
}

// EventEmitter publishes events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *PersistRequestEvent) error
}
