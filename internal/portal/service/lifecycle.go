package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Experiencepwunkr/globomail/internal/domain/audit"
	"github.com/Experiencepwunkr/globomail/internal/domain/request"
	"github.com/Experiencepwunkr/globomail/internal/platform/messaging/producers"
)

// recordAudit writes a lifecycle record to the audit trail. Failures are
// logged and swallowed; the trail is a best-effort companion to the
// relational store, never a participant in the transition.
func recordAudit(ctx context.Context, logger *slog.Logger, auditRepo audit.Repository, record *audit.Record) {
	if auditRepo == nil {
		return
	}
	if err := auditRepo.Create(ctx, record); err != nil {
		logger.Error("Failed to write audit record",
			"request_id", record.RequestID.String(),
			"event", string(record.Event),
			"error", err,
		)
	}
}

// publishEvent emits a lifecycle event for downstream consumers. Like the
// audit trail, publishing never fails the operation that triggered it.
func publishEvent(ctx context.Context, logger *slog.Logger, publisher producers.MessagePublisher, req *request.Request, eventType request.EventType, from request.Status, correlationID string) {
	if publisher == nil {
		return
	}

	event := request.Event{
		Type:          eventType,
		RequestID:     req.ID,
		AgentID:       req.AgentID,
		ServiceType:   req.ServiceType,
		FromStatus:    from,
		ToStatus:      req.Status,
		CorrelationID: correlationID,
		OccurredAt:    time.Now(),
	}

	if err := publisher.Publish(ctx, req.ID.String(), event); err != nil {
		logger.Error("Failed to publish lifecycle event",
			"request_id", req.ID.String(),
			"type", string(eventType),
			"error", err,
		)
	}
}
