// Package audit defines the append-only trail of request lifecycle events
// kept alongside the relational store for operator review.
package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/Experiencepwunkr/globomail/internal/domain/request"
)

// EventKind identifies the lifecycle event an audit record captures
type EventKind string

const (
	EventSubmitted     EventKind = "submitted"
	EventStatusChanged EventKind = "status_changed"
)

// Record is one immutable audit trail entry. Records are written best-effort
// after the relational write succeeds and are never updated or deleted.
type Record struct {
	RequestID     uuid.UUID           `json:"request_id" bson:"request_id"`
	Event         EventKind           `json:"event" bson:"event"`
	ServiceType   request.ServiceType `json:"service_type" bson:"service_type"`
	FromStatus    request.Status      `json:"from_status,omitempty" bson:"from_status,omitempty"`
	ToStatus      request.Status      `json:"to_status" bson:"to_status"`
	Actor         string              `json:"actor,omitempty" bson:"actor,omitempty"`
	ResultMessage string              `json:"result_message,omitempty" bson:"result_message,omitempty"`
	CorrelationID string              `json:"correlation_id,omitempty" bson:"correlation_id,omitempty"`
	RecordedAt    time.Time           `json:"recorded_at" bson:"recorded_at"`
}
