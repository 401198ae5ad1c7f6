package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Experiencepwunkr/globomail/internal/domain/audit"
	"github.com/Experiencepwunkr/globomail/internal/domain/request"
	"github.com/Experiencepwunkr/globomail/internal/platform/messaging/producers"
)

// IntakeServiceImpl implements the IntakeService interface
type IntakeServiceImpl struct {
	logger      *slog.Logger
	requestRepo request.Repository
	auditRepo   audit.Repository
	publisher   producers.MessagePublisher
}

// NewIntakeService creates a new intake service
func NewIntakeService(logger *slog.Logger, requestRepo request.Repository, auditRepo audit.Repository, publisher producers.MessagePublisher) IntakeService {
	return &IntakeServiceImpl{
		logger:      logger,
		requestRepo: requestRepo,
		auditRepo:   auditRepo,
		publisher:   publisher,
	}
}

// RecordPayment creates the awaiting-submission row for a confirmed payment
func (s *IntakeServiceImpl) RecordPayment(ctx context.Context, agentID uuid.UUID, serviceType request.ServiceType, reference string, amount int64) (*request.Request, error) {
	existing, err := s.requestRepo.GetByPaymentReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, request.ErrDuplicateReference{Reference: reference}
	}

	req, err := request.NewFromPayment(agentID, serviceType, reference, amount)
	if err != nil {
		return nil, err
	}

	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.logger.Info("Payment recorded",
		"request_id", req.ID.String(),
		"agent_id", agentID.String(),
		"service_type", string(serviceType),
		"payment_reference", reference,
	)
	return req, nil
}

// Submit validates and attaches the intake payload, moving the request from
// awaiting_submission to pending. Validation runs before any lookup so the
// agent gets the full list of missing fields in one round trip.
func (s *IntakeServiceImpl) Submit(ctx context.Context, agentID uuid.UUID, serviceType request.ServiceType, paymentReference string, payload map[string]any, consent bool, correlationID string) (*request.Request, error) {
	if err := request.ValidateSubmission(serviceType, payload, consent); err != nil {
		return nil, err
	}

	if paymentReference == "" {
		return nil, ErrPaymentInvalid{Reference: paymentReference, Reason: "payment reference is required"}
	}

	req, err := s.requestRepo.GetByPaymentReference(ctx, paymentReference)
	if err != nil {
		return nil, err
	}
	switch {
	case req == nil:
		return nil, ErrPaymentInvalid{Reference: paymentReference, Reason: "no confirmed payment found"}
	case req.AgentID != agentID:
		return nil, ErrPaymentInvalid{Reference: paymentReference, Reason: "payment belongs to another agent"}
	case req.ServiceType != serviceType:
		return nil, ErrPaymentInvalid{Reference: paymentReference, Reason: "payment was made for a different service"}
	case req.Status != request.StatusAwaitingSubmission:
		return nil, ErrPaymentInvalid{Reference: paymentReference, Reason: "payment has already been used"}
	}

	if err := req.Submit(payload); err != nil {
		return nil, err
	}

	if err := s.requestRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	s.logger.Info("Request submitted",
		"request_id", req.ID.String(),
		"agent_id", agentID.String(),
		"service_type", string(serviceType),
	)

	recordAudit(ctx, s.logger, s.auditRepo, &audit.Record{
		RequestID:     req.ID,
		Event:         audit.EventSubmitted,
		ServiceType:   req.ServiceType,
		FromStatus:    request.StatusAwaitingSubmission,
		ToStatus:      req.Status,
		Actor:         agentID.String(),
		CorrelationID: correlationID,
		RecordedAt:    time.Now(),
	})
	publishEvent(ctx, s.logger, s.publisher, req, request.EventSubmitted, request.StatusAwaitingSubmission, correlationID)

	return req, nil
}

// ListByAgent returns the caller's requests, newest first
func (s *IntakeServiceImpl) ListByAgent(ctx context.Context, agentID uuid.UUID) ([]*request.Request, error) {
	return s.requestRepo.ListByAgentID(ctx, agentID)
}
