// Package request models a service request's lifecycle: a payment-funded row
// that an agent submits against and an operator drives to a terminal state.
package request

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ServiceType identifies a portal service offering
type ServiceType string

const (
	ServiceNINValidation   ServiceType = "nin_validation"
	ServiceBVNRetrieval    ServiceType = "bvn_retrieval"
	ServiceCACRegistration ServiceType = "cac_registration"
	ServiceTINRegistration ServiceType = "tin_registration"
	ServicePersonalization ServiceType = "personalization"
)

// serviceLabels maps service types to the human-readable names used in
// notifications and listings
var serviceLabels = map[ServiceType]string{
	ServiceNINValidation:   "NIN Validation",
	ServiceBVNRetrieval:    "BVN Retrieval",
	ServiceCACRegistration: "CAC Registration",
	ServiceTINRegistration: "TIN Registration",
	ServicePersonalization: "Document Personalization",
}

// ErrUnknownServiceType indicates a service type outside the offering set
var ErrUnknownServiceType = errors.New("unknown service type")

// ParseServiceType converts a wire value into a ServiceType
func ParseServiceType(s string) (ServiceType, error) {
	st := ServiceType(s)
	if _, ok := serviceLabels[st]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownServiceType, s)
	}
	return st, nil
}

// Label returns the human-readable service name
func (s ServiceType) Label() string {
	if label, ok := serviceLabels[s]; ok {
		return label
	}
	return string(s)
}

// Status defines request processing states. AwaitingSubmission is the state
// of a row whose payment has been confirmed but whose service details have
// not been submitted yet.
type Status string

const (
	StatusAwaitingSubmission Status = "awaiting_submission"
	StatusPending            Status = "pending"
	StatusProcessing         Status = "processing"
	StatusCompleted          Status = "completed"
	StatusFailed             Status = "failed"
)

// ParseStatus converts a wire value into a Status
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusAwaitingSubmission, StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// IsTerminal reports whether the status accepts no further transitions
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// transitions is the closed table of legal (from, to) pairs. Anything not
// listed here is rejected, including every transition out of a terminal state.
var transitions = map[Status][]Status{
	StatusAwaitingSubmission: {StatusPending},
	StatusPending:            {StatusProcessing, StatusFailed},
	StatusProcessing:         {StatusCompleted, StatusFailed},
}

// CanTransition reports whether from -> to is a legal transition
func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Result is the fulfillment payload attached on a terminal transition.
// FileURLs lists deliverable artifacts produced for completed requests.
type Result struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	FileURLs []string `json:"fileUrls,omitempty"`
}

// Request represents a single service request lifecycle record. The row is
// created when a payment is recorded and reused through submission and
// fulfillment; PaymentReference is immutable after creation. Amount is
// stored in kobo.
type Request struct {
	ID               uuid.UUID      `json:"id"`
	AgentID          uuid.UUID      `json:"agent_id"`
	ServiceType      ServiceType    `json:"service_type"`
	Status           Status         `json:"status"`
	PaymentReference string         `json:"payment_reference"`
	Amount           int64          `json:"amount"`
	Metadata         map[string]any `json:"metadata,omitempty"`
	Result           *Result        `json:"result,omitempty"`
	Version          int            `json:"version"` // For optimistic locking
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	CompletedAt      *time.Time     `json:"completed_at,omitempty"`
	FailedAt         *time.Time     `json:"failed_at,omitempty"`
}

// Request validation errors
var (
	ErrEmptyPaymentReference = errors.New("payment reference cannot be empty")
	ErrResultRequired        = errors.New("a result with a message is required for terminal transitions")
	ErrMetadataRequired      = errors.New("submission metadata cannot be empty")
)

// NewFromPayment creates the request row for a confirmed payment. The row
// starts in AwaitingSubmission and carries no metadata until the agent
// submits the service details.
func NewFromPayment(agentID uuid.UUID, serviceType ServiceType, paymentReference string, amount int64) (*Request, error) {
	if paymentReference == "" {
		return nil, ErrEmptyPaymentReference
	}
	if _, ok := serviceLabels[serviceType]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownServiceType, serviceType)
	}

	now := time.Now()
	return &Request{
		ID:               uuid.New(),
		AgentID:          agentID,
		ServiceType:      serviceType,
		Status:           StatusAwaitingSubmission,
		PaymentReference: paymentReference,
		Amount:           amount,
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// Submit attaches the intake metadata and moves the request to Pending.
// Metadata is set exactly once here and never mutated afterwards.
func (r *Request) Submit(metadata map[string]any) error {
	if len(metadata) == 0 {
		return ErrMetadataRequired
	}
	if !CanTransition(r.Status, StatusPending) {
		return ErrInvalidTransition{From: r.Status, To: StatusPending}
	}

	r.Metadata = metadata
	r.Status = StatusPending
	r.UpdatedAt = time.Now()
	r.Version++
	return nil
}

// Transition moves the request to the target status, attaching the result
// and stamping the matching terminal timestamp. Terminal targets require a
// result carrying a message.
func (r *Request) Transition(to Status, result *Result) error {
	if !CanTransition(r.Status, to) {
		return ErrInvalidTransition{From: r.Status, To: to}
	}
	if to.IsTerminal() && (result == nil || result.Message == "") {
		return ErrResultRequired
	}

	now := time.Now()
	r.Status = to
	r.UpdatedAt = now
	r.Version++

	if result != nil {
		r.Result = result
	}
	switch to {
	case StatusCompleted:
		r.CompletedAt = &now
	case StatusFailed:
		r.FailedAt = &now
	}
	return nil
}

// ErrInvalidTransition indicates a (from, to) pair outside the transition table
type ErrInvalidTransition struct {
	From Status
	To   Status
}

func (e ErrInvalidTransition) Error() string {
	return fmt.Sprintf("illegal status transition from %s to %s", e.From, e.To)
}
