package agent

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrEmptyName    = errors.New("agent name cannot be empty")
	ErrEmptyEmail   = errors.New("agent email cannot be empty")
	ErrEmptyPhone   = errors.New("agent phone cannot be empty")
	ErrWeakPassword = errors.New("password must be at least 8 characters")
	ErrInvalidRole  = errors.New("invalid agent role")
)

// Role distinguishes submitting agents from back-office operators
type Role string

const (
	RoleAgent Role = "agent"
	RoleAdmin Role = "admin"
)

// Agent represents a registered portal agent who submits service requests
// and receives outcome notifications. WalletBalance is stored in kobo.
type Agent struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	PasswordHash  string    `json:"-"`
	Role          Role      `json:"role"`
	WalletBalance int64     `json:"wallet_balance"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewAgent creates a new agent with the given details. The password hash is
// produced by the caller so this package stays free of hashing concerns.
func NewAgent(name, email, phone, passwordHash string, role Role) (*Agent, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if strings.TrimSpace(email) == "" {
		return nil, ErrEmptyEmail
	}
	if strings.TrimSpace(phone) == "" {
		return nil, ErrEmptyPhone
	}
	if role == "" {
		role = RoleAgent
	}
	if role != RoleAgent && role != RoleAdmin {
		return nil, ErrInvalidRole
	}

	now := time.Now()
	return &Agent{
		ID:            uuid.New(),
		Name:          name,
		Email:         strings.ToLower(strings.TrimSpace(email)),
		Phone:         phone,
		PasswordHash:  passwordHash,
		Role:          role,
		WalletBalance: 0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// IsAdmin reports whether the agent may perform fulfillment operations
func (a *Agent) IsAdmin() bool {
	return a.Role == RoleAdmin
}
