package agent

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines agent persistence operations
type Repository interface {
	Create(ctx context.Context, agent *Agent) error
	GetByID(ctx context.Context, id uuid.UUID) (*Agent, error)

	// GetByEmail returns nil, nil when no agent has the given email
	GetByEmail(ctx context.Context, email string) (*Agent, error)
}

// ErrAgentNotFound indicates missing agent
type ErrAgentNotFound struct {
	AgentID uuid.UUID
}

func (e ErrAgentNotFound) Error() string {
	return "agent not found: " + e.AgentID.String()
}

// Is matches any ErrAgentNotFound when the target carries a nil ID
func (e ErrAgentNotFound) Is(target error) bool {
	t, ok := target.(ErrAgentNotFound)
	if !ok {
		return false
	}
	if t.AgentID == uuid.Nil {
		return true
	}
	return e.AgentID == t.AgentID
}

// ErrDuplicateEmail indicates email uniqueness violation
type ErrDuplicateEmail struct {
	Email string
}

func (e ErrDuplicateEmail) Error() string {
	return "agent with email already exists: " + e.Email
}
