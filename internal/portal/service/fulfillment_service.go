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

// FulfillmentServiceImpl implements the FulfillmentService interface
type FulfillmentServiceImpl struct {
	logger      *slog.Logger
	requestRepo request.Repository
	auditRepo   audit.Repository
	publisher   producers.MessagePublisher
	notifier    OutcomeNotifier
}

// NewFulfillmentService creates a new fulfillment service
func NewFulfillmentService(logger *slog.Logger, requestRepo request.Repository, auditRepo audit.Repository, publisher producers.MessagePublisher, notifier OutcomeNotifier) FulfillmentService {
	return &FulfillmentServiceImpl{
		logger:      logger,
		requestRepo: requestRepo,
		auditRepo:   auditRepo,
		publisher:   publisher,
		notifier:    notifier,
	}
}

// ListOpen returns all pending and processing requests with agent details
func (s *FulfillmentServiceImpl) ListOpen(ctx context.Context) ([]*request.RequestWithAgent, error) {
	return s.requestRepo.ListOpen(ctx)
}

// UpdateStatus drives a request to the target status. The transition is
// validated and persisted first; the audit record, lifecycle event, and
// outcome notification all run after the write and never roll it back.
func (s *FulfillmentServiceImpl) UpdateStatus(ctx context.Context, requestID uuid.UUID, to request.Status, result *request.Result, actor string, correlationID string) (*request.Request, error) {
	rwa, err := s.requestRepo.GetByIDWithAgent(ctx, requestID)
	if err != nil {
		return nil, err
	}
	req := rwa.Request
	from := req.Status

	if err := req.Transition(to, result); err != nil {
		return nil, err
	}

	if err := s.requestRepo.Update(ctx, req); err != nil {
		return nil, err
	}

	s.logger.Info("Request status updated",
		"request_id", req.ID.String(),
		"from", string(from),
		"to", string(req.Status),
		"actor", actor,
	)

	resultMessage := ""
	if result != nil {
		resultMessage = result.Message
	}
	recordAudit(ctx, s.logger, s.auditRepo, &audit.Record{
		RequestID:     req.ID,
		Event:         audit.EventStatusChanged,
		ServiceType:   req.ServiceType,
		FromStatus:    from,
		ToStatus:      req.Status,
		Actor:         actor,
		ResultMessage: resultMessage,
		CorrelationID: correlationID,
		RecordedAt:    time.Now(),
	})
	publishEvent(ctx, s.logger, s.publisher, req, request.EventStatusChanged, from, correlationID)

	// Exactly one notification per request, on entry to a terminal state
	if req.Status.IsTerminal() && s.notifier != nil {
		s.notifier.NotifyOutcome(req, rwa.AgentName, rwa.AgentEmail)
	}

	return req, nil
}

// History returns a request's audit trail, verifying the request exists first
func (s *FulfillmentServiceImpl) History(ctx context.Context, requestID uuid.UUID) ([]*audit.Record, error) {
	if _, err := s.requestRepo.GetByID(ctx, requestID); err != nil {
		return nil, err
	}
	return s.auditRepo.GetByRequestID(ctx, requestID)
}
