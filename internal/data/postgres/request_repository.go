package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Experiencepwunkr/globomail/internal/domain/request"
	"github.com/Experiencepwunkr/globomail/internal/platform/persistence"
)

// RequestRepository implements the request.Repository interface for PostgreSQL
type RequestRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewRequestRepository creates a new PostgreSQL request repository.
// It expects db.Pool() to satisfy persistence.Querier.
func NewRequestRepository(logger *slog.Logger, db *persistence.PostgresDB) request.Repository {
	return &RequestRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// Create stores a new request row. The unique index on payment_reference
// makes a duplicate reference a constraint error.
func (r *RequestRepository) Create(ctx context.Context, req *request.Request) error {
	query := `
		INSERT INTO service_requests (id, agent_id, service_type, status, payment_reference, amount, metadata, result, version, created_at, updated_at, completed_at, failed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.querier.Exec(ctx, query,
		req.ID,
		req.AgentID,
		req.ServiceType,
		req.Status,
		req.PaymentReference,
		req.Amount,
		req.Metadata,
		req.Result,
		req.Version,
		req.CreatedAt,
		req.UpdatedAt,
		req.CompletedAt,
		req.FailedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create request", "payment_reference", req.PaymentReference, "error", err)
		return fmt.Errorf("failed to create request: %w", err)
	}

	return nil
}

// GetByID retrieves a request by its ID
func (r *RequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*request.Request, error) {
	query := `
		SELECT id, agent_id, service_type, status, payment_reference, amount, metadata, result, version, created_at, updated_at, completed_at, failed_at
		FROM service_requests
		WHERE id = $1
	`

	req, err := r.scanRequest(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, request.ErrRequestNotFound{RequestID: id}
		}
		r.logger.Error("Failed to get request", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	return req, nil
}

// GetByIDWithAgent retrieves a request joined with the owning agent's
// name and email
func (r *RequestRepository) GetByIDWithAgent(ctx context.Context, id uuid.UUID) (*request.RequestWithAgent, error) {
	query := `
		SELECT r.id, r.agent_id, r.service_type, r.status, r.payment_reference, r.amount, r.metadata, r.result, r.version, r.created_at, r.updated_at, r.completed_at, r.failed_at,
		       a.name, a.email
		FROM service_requests r
		JOIN agents a ON a.id = r.agent_id
		WHERE r.id = $1
	`

	var req request.Request
	var withAgent request.RequestWithAgent
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&req.ID,
		&req.AgentID,
		&req.ServiceType,
		&req.Status,
		&req.PaymentReference,
		&req.Amount,
		&req.Metadata,
		&req.Result,
		&req.Version,
		&req.CreatedAt,
		&req.UpdatedAt,
		&req.CompletedAt,
		&req.FailedAt,
		&withAgent.AgentName,
		&withAgent.AgentEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, request.ErrRequestNotFound{RequestID: id}
		}
		r.logger.Error("Failed to get request with agent", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get request with agent: %w", err)
	}

	withAgent.Request = &req
	return &withAgent, nil
}

// GetByPaymentReference retrieves a request by its payment reference
func (r *RequestRepository) GetByPaymentReference(ctx context.Context, reference string) (*request.Request, error) {
	query := `
		SELECT id, agent_id, service_type, status, payment_reference, amount, metadata, result, version, created_at, updated_at, completed_at, failed_at
		FROM service_requests
		WHERE payment_reference = $1
	`

	req, err := r.scanRequest(r.querier.QueryRow(ctx, query, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Return nil, nil when no request carries the reference
		}
		r.logger.Error("Failed to get request by payment reference", "payment_reference", reference, "error", err)
		return nil, fmt.Errorf("failed to get request by payment reference: %w", err)
	}

	return req, nil
}

// Update persists the request using optimistic locking. Returns
// ErrConcurrentModification if the row was modified between read and update.
func (r *RequestRepository) Update(ctx context.Context, req *request.Request) error {
	query := `
		UPDATE service_requests
		SET status = $1, metadata = $2, result = $3, version = $4, updated_at = $5, completed_at = $6, failed_at = $7
		WHERE id = $8 AND version = $9
	`

	result, err := r.querier.Exec(ctx, query,
		req.Status,
		req.Metadata,
		req.Result,
		req.Version,
		req.UpdatedAt,
		req.CompletedAt,
		req.FailedAt,
		req.ID,
		req.Version-1, // Check previous version for optimistic locking
	)
	if err != nil {
		r.logger.Error("Failed to update request", "id", req.ID.String(), "error", err)
		return fmt.Errorf("failed to update request: %w", err)
	}

	if result.RowsAffected() == 0 {
		return request.ErrConcurrentModification{RequestID: req.ID}
	}

	return nil
}

// ListOpen retrieves all submitted requests still awaiting fulfillment,
// newest first, with agent contact details for the operator review screen
func (r *RequestRepository) ListOpen(ctx context.Context) ([]*request.RequestWithAgent, error) {
	query := `
		SELECT r.id, r.agent_id, r.service_type, r.status, r.payment_reference, r.amount, r.metadata, r.result, r.version, r.created_at, r.updated_at, r.completed_at, r.failed_at,
		       a.name, a.email
		FROM service_requests r
		JOIN agents a ON a.id = r.agent_id
		WHERE r.status IN ('pending', 'processing')
		ORDER BY r.created_at DESC
	`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list open requests", "error", err)
		return nil, fmt.Errorf("failed to list open requests: %w", err)
	}
	defer rows.Close()

	var results []*request.RequestWithAgent
	for rows.Next() {
		var req request.Request
		var withAgent request.RequestWithAgent
		err := rows.Scan(
			&req.ID,
			&req.AgentID,
			&req.ServiceType,
			&req.Status,
			&req.PaymentReference,
			&req.Amount,
			&req.Metadata,
			&req.Result,
			&req.Version,
			&req.CreatedAt,
			&req.UpdatedAt,
			&req.CompletedAt,
			&req.FailedAt,
			&withAgent.AgentName,
			&withAgent.AgentEmail,
		)
		if err != nil {
			r.logger.Error("Failed to scan open request row", "error", err)
			return nil, fmt.Errorf("failed to scan open request row: %w", err)
		}
		withAgent.Request = &req
		results = append(results, &withAgent)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate open requests: %w", err)
	}

	return results, nil
}

// ListByAgentID retrieves all of an agent's requests, newest first
func (r *RequestRepository) ListByAgentID(ctx context.Context, agentID uuid.UUID) ([]*request.Request, error) {
	query := `
		SELECT id, agent_id, service_type, status, payment_reference, amount, metadata, result, version, created_at, updated_at, completed_at, failed_at
		FROM service_requests
		WHERE agent_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.querier.Query(ctx, query, agentID)
	if err != nil {
		r.logger.Error("Failed to list requests by agent", "agent_id", agentID.String(), "error", err)
		return nil, fmt.Errorf("failed to list requests by agent: %w", err)
	}
	defer rows.Close()

	var results []*request.Request
	for rows.Next() {
		req, err := r.scanRequest(rows)
		if err != nil {
			r.logger.Error("Failed to scan request row", "agent_id", agentID.String(), "error", err)
			return nil, fmt.Errorf("failed to scan request row: %w", err)
		}
		results = append(results, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate agent requests: %w", err)
	}

	return results, nil
}

// scanRequest scans the canonical column set into a Request
func (r *RequestRepository) scanRequest(row pgx.Row) (*request.Request, error) {
	var req request.Request
	err := row.Scan(
		&req.ID,
		&req.AgentID,
		&req.ServiceType,
		&req.Status,
		&req.PaymentReference,
		&req.Amount,
		&req.Metadata,
		&req.Result,
		&req.Version,
		&req.CreatedAt,
		&req.UpdatedAt,
		&req.CompletedAt,
		&req.FailedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}
