package request

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies a lifecycle event published to the event topic
type EventType string

const (
	EventSubmitted     EventType = "request.submitted"
	EventStatusChanged EventType = "request.status_changed"
)

// Event is the message published for downstream consumers whenever a
// request's lifecycle advances. Publishing is best-effort: the portal never
// fails a transition because an event could not be written.
type Event struct {
	Type          EventType   `json:"type"`
	RequestID     uuid.UUID   `json:"request_id"`
	AgentID       uuid.UUID   `json:"agent_id"`
	ServiceType   ServiceType `json:"service_type"`
	FromStatus    Status      `json:"from_status,omitempty"`
	ToStatus      Status      `json:"to_status"`
	CorrelationID string      `json:"correlation_id,omitempty"`
	OccurredAt    time.Time   `json:"occurred_at"`
}
