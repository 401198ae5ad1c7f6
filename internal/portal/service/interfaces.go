package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Experiencepwunkr/globomail/internal/domain/agent"
	"github.com/Experiencepwunkr/globomail/internal/domain/audit"
	"github.com/Experiencepwunkr/globomail/internal/domain/request"
)

// ErrInvalidCredentials indicates a failed login attempt. Wrong email and
// wrong password collapse into the same error on purpose.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrPaymentInvalid indicates a submission whose payment reference does not
// resolve to a confirmed, unconsumed payment owned by the caller
type ErrPaymentInvalid struct {
	Reference string
	Reason    string
}

func (e ErrPaymentInvalid) Error() string {
	return "payment reference " + e.Reference + " rejected: " + e.Reason
}

// AgentService defines agent registration and authentication operations
type AgentService interface {
	// Register creates a new agent account with a hashed password
	// Returns agent.ErrDuplicateEmail if the email is already taken
	Register(ctx context.Context, name, email, phone, password string, role agent.Role) (*agent.Agent, error)

	// Login verifies credentials and issues a session token
	// Returns ErrInvalidCredentials on any mismatch
	Login(ctx context.Context, email, password string) (string, *agent.Agent, error)

	// GetAgentByID retrieves an agent by ID
	// Returns agent.ErrAgentNotFound if the agent doesn't exist
	GetAgentByID(ctx context.Context, id uuid.UUID) (*agent.Agent, error)
}

// IntakeService defines payment recording and request submission operations
type IntakeService interface {
	// RecordPayment creates the request row for a confirmed payment
	// Returns request.ErrDuplicateReference if the reference was seen before
	RecordPayment(ctx context.Context, agentID uuid.UUID, serviceType request.ServiceType, reference string, amount int64) (*request.Request, error)

	// Submit validates the intake payload against the service schema, checks
	// the payment reference resolves to the caller's unconsumed payment for
	// the same service, attaches the metadata, and moves the request to
	// pending. Returns request.ErrMissingFields or ErrPaymentInvalid.
	Submit(ctx context.Context, agentID uuid.UUID, serviceType request.ServiceType, paymentReference string, payload map[string]any, consent bool, correlationID string) (*request.Request, error)

	// ListByAgent returns the caller's requests, newest first
	ListByAgent(ctx context.Context, agentID uuid.UUID) ([]*request.Request, error)
}

// FulfillmentService defines operator-side request processing operations
type FulfillmentService interface {
	// ListOpen returns all pending and processing requests with agent details
	ListOpen(ctx context.Context) ([]*request.RequestWithAgent, error)

	// UpdateStatus drives a request through the lifecycle table. Terminal
	// transitions attach the result and dispatch exactly one outcome
	// notification. Returns request.ErrRequestNotFound,
	// request.ErrInvalidTransition, request.ErrResultRequired, or
	// request.ErrConcurrentModification.
	UpdateStatus(ctx context.Context, requestID uuid.UUID, to request.Status, result *request.Result, actor string, correlationID string) (*request.Request, error)

	// History returns a request's audit trail in chronological order
	History(ctx context.Context, requestID uuid.UUID) ([]*audit.Record, error)
}

// OutcomeNotifier dispatches the terminal-state notification for a request
type OutcomeNotifier interface {
	NotifyOutcome(req *request.Request, agentName, agentEmail string)
}
