package event

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/seatbook/seatbook/internal/domain/entity"
)

// Event records one change to the entity store: a create or a lifecycle
// transition on one record. Subscribers use it to re-derive their views.
type Event struct {
	ID       string      `json:"id"`
	Type     Type        `json:"type"`
	Kind     entity.Kind `json:"kind"`
	EntityID string      `json:"entity_id"`
	ActorID  string      `json:"actor_id"`

	Payload   map[string]interface{} `json:"payload,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// New creates a change event with an auto-generated ID and timestamp
func New(eventType Type, kind entity.Kind, entityID, actorID string, payload map[string]interface{}) *Event {
	return &Event{
		ID:        generateID(),
		Type:      eventType,
		Kind:      kind,
		EntityID:  entityID,
		ActorID:   actorID,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// GetPayloadString retrieves a string value from the payload
func (e *Event) GetPayloadString(key string) string {
	if val, ok := e.Payload[key]; ok {
		if s, ok := val.(string); ok {
			return s
		}
	}
	return ""
}

// generateID creates a random hex event ID
func generateID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "evt-" + time.Now().Format("20060102150405.000000000")
	}
	return hex.EncodeToString(b)
}
