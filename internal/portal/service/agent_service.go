package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Experiencepwunkr/globomail/internal/domain/agent"
	"github.com/Experiencepwunkr/globomail/internal/portal/auth"
)

// minPasswordLength is enforced before hashing so weak credentials never
// reach the store
const minPasswordLength = 8

// AgentServiceImpl implements the AgentService interface
type AgentServiceImpl struct {
	agentRepo  agent.Repository
	tokens     *auth.TokenManager
	bcryptCost int
}

// NewAgentService creates a new agent service
func NewAgentService(agentRepo agent.Repository, tokens *auth.TokenManager, bcryptCost int) AgentService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AgentServiceImpl{
		agentRepo:  agentRepo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new agent account, checking for duplicate emails
func (s *AgentServiceImpl) Register(ctx context.Context, name, email, phone, password string, role agent.Role) (*agent.Agent, error) {
	if len(password) < minPasswordLength {
		return nil, agent.ErrWeakPassword
	}

	existing, err := s.agentRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, agent.ErrDuplicateEmail{Email: email}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	a, err := agent.NewAgent(name, email, phone, string(hash), role)
	if err != nil {
		return nil, err
	}

	if err := s.agentRepo.Create(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

// Login verifies credentials and issues a session token
func (s *AgentServiceImpl) Login(ctx context.Context, email, password string) (string, *agent.Agent, error) {
	a, err := s.agentRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if a == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(a.ID, a.Role)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return token, a, nil
}

// GetAgentByID retrieves an agent by its ID, returns ErrAgentNotFound if not found
func (s *AgentServiceImpl) GetAgentByID(ctx context.Context, id uuid.UUID) (*agent.Agent, error) {
	return s.agentRepo.GetByID(ctx, id)
}
