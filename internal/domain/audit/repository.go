package audit

import (
	"context"

	"github.com/google/uuid"
)

// Repository manages audit record persistence
type Repository interface {
	Create(ctx context.Context, record *Record) error

	// GetByRequestID returns a request's trail in chronological order
	GetByRequestID(ctx context.Context, requestID uuid.UUID) ([]*Record, error)
}
