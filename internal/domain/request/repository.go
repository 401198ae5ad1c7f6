package request

import (
	"context"

	"github.com/google/uuid"
)

// RequestWithAgent bundles a request with the owning agent's contact details
// for operator listings and notification composition
type RequestWithAgent struct {
	Request    *Request
	AgentName  string
	AgentEmail string
}

// Repository defines request persistence operations
type Repository interface {
	Create(ctx context.Context, req *Request) error
	GetByID(ctx context.Context, id uuid.UUID) (*Request, error)

	// GetByIDWithAgent joins the owning agent's name and email for
	// fulfillment and operator review
	GetByIDWithAgent(ctx context.Context, id uuid.UUID) (*RequestWithAgent, error)

	// GetByPaymentReference returns nil, nil when no row carries the reference
	GetByPaymentReference(ctx context.Context, reference string) (*Request, error)

	// Update persists the request conditioned on the previous version,
	// returning ErrConcurrentModification when the row changed underneath
	Update(ctx context.Context, req *Request) error

	// ListOpen returns all non-terminal submitted requests, newest first
	ListOpen(ctx context.Context) ([]*RequestWithAgent, error)

	// ListByAgentID returns all of an agent's requests, newest first
	ListByAgentID(ctx context.Context, agentID uuid.UUID) ([]*Request, error)
}

// ErrRequestNotFound indicates missing request
type ErrRequestNotFound struct {
	RequestID uuid.UUID
}

func (e ErrRequestNotFound) Error() string {
	return "request not found: " + e.RequestID.String()
}

// Is implements errors.Is matching; a target with a nil ID matches any
// ErrRequestNotFound
func (e ErrRequestNotFound) Is(target error) bool {
	t, ok := target.(ErrRequestNotFound)
	if !ok {
		return false
	}
	if t.RequestID == uuid.Nil {
		return true
	}
	return e.RequestID == t.RequestID
}

// ErrConcurrentModification indicates optimistic lock failure
type ErrConcurrentModification struct {
	RequestID uuid.UUID
}

func (e ErrConcurrentModification) Error() string {
	return "concurrent modification detected for request: " + e.RequestID.String()
}

// ErrDuplicateReference indicates payment reference uniqueness violation
type ErrDuplicateReference struct {
	Reference string
}

func (e ErrDuplicateReference) Error() string {
	return "request with payment reference already exists: " + e.Reference
}
