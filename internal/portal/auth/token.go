// Package auth issues and verifies the server-side session tokens that carry
// principal identity into intake and fulfillment operations.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Experiencepwunkr/globomail/internal/domain/agent"
)

// ErrInvalidToken signals a token that failed parsing or validation
var ErrInvalidToken = errors.New("invalid token")

// Claims is the verified identity extracted from a token
type Claims struct {
	AgentID uuid.UUID
	Role    agent.Role
}

// TokenManager signs and verifies HMAC session tokens
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a token manager with the given signing secret and
// token lifetime
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue creates a signed token for the given agent
func (tm *TokenManager) Issue(agentID uuid.UUID, role agent.Role) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"agent_id": agentID.String(),
		"role":     string(role),
		"iat":      now.Unix(),
		"exp":      now.Add(tm.ttl).Unix(),
	})

	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify validates a token and returns the claims it carries
func (tm *TokenManager) Verify(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return tm.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	agentIDStr, ok := claims["agent_id"].(string)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	agentID, err := uuid.Parse(agentIDStr)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	roleStr, ok := claims["role"].(string)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	return Claims{AgentID: agentID, Role: agent.Role(roleStr)}, nil
}
