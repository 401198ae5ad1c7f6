// Package postgres provides PostgreSQL implementations of the domain
// repositories. It handles all database operations for agents and service
// requests, including the optimistic concurrency discipline on request rows.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Experiencepwunkr/globomail/internal/domain/agent"
	"github.com/Experiencepwunkr/globomail/internal/platform/persistence"
)

// AgentRepository implements the agent.Repository interface for PostgreSQL
type AgentRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewAgentRepository creates a new PostgreSQL agent repository.
// It expects db.Pool() to satisfy persistence.Querier.
func NewAgentRepository(logger *slog.Logger, db *persistence.PostgresDB) agent.Repository {
	return &AgentRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// Create stores a new agent in the database. If an agent with the same email
// already exists, a database constraint error will be returned.
func (r *AgentRepository) Create(ctx context.Context, a *agent.Agent) error {
	query := `
		INSERT INTO agents (id, name, email, phone, password_hash, role, wallet_balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.querier.Exec(ctx, query,
		a.ID,
		a.Name,
		a.Email,
		a.Phone,
		a.PasswordHash,
		a.Role,
		a.WalletBalance,
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create agent", "error", err)
		return fmt.Errorf("failed to create agent: %w", err)
	}

	return nil
}

// GetByID retrieves an agent by its ID
func (r *AgentRepository) GetByID(ctx context.Context, id uuid.UUID) (*agent.Agent, error) {
	query := `
		SELECT id, name, email, phone, password_hash, role, wallet_balance, created_at, updated_at
		FROM agents
		WHERE id = $1
	`

	var a agent.Agent
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&a.Phone,
		&a.PasswordHash,
		&a.Role,
		&a.WalletBalance,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, agent.ErrAgentNotFound{AgentID: id}
		}
		r.logger.Error("Failed to get agent", "id", id.String(), "error", err)
		return nil, fmt.Errorf("failed to get agent: %w", err)
	}

	return &a, nil
}

// GetByEmail retrieves an agent by email
func (r *AgentRepository) GetByEmail(ctx context.Context, email string) (*agent.Agent, error) {
	query := `
		SELECT id, name, email, phone, password_hash, role, wallet_balance, created_at, updated_at
		FROM agents
		WHERE email = $1
	`

	var a agent.Agent
	err := r.querier.QueryRow(ctx, query, email).Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&a.Phone,
		&a.PasswordHash,
		&a.Role,
		&a.WalletBalance,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // Return nil, nil when no agent is found with the given email
		}
		r.logger.Error("Failed to get agent by email", "email", email, "error", err)
		return nil, fmt.Errorf("failed to get agent by email: %w", err)
	}

	return &a, nil
}
