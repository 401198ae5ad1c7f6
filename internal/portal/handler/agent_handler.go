package handler

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/Experiencepwunkr/globomail/internal/domain/agent"
	"github.com/Experiencepwunkr/globomail/internal/portal/middleware"
	"github.com/Experiencepwunkr/globomail/internal/portal/service"
)

// AgentHandler handles HTTP requests for agent registration and authentication
type AgentHandler struct {
	agentService service.AgentService
	logger       *slog.Logger
}

// NewAgentHandler creates a new agent handler
func NewAgentHandler(logger *slog.Logger, agentService service.AgentService) *AgentHandler {
	return &AgentHandler{
		agentService: agentService,
		logger:       logger,
	}
}

// Register handles agent account creation, rejecting duplicate emails and
// weak passwords
func (h *AgentHandler) Register(c *gin.Context) {
	var req RegisterAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	a, err := h.agentService.Register(c.Request.Context(), req.Name, req.Email, req.Phone, req.Password, agent.RoleAgent)
	if err != nil {
		var duplicateErr agent.ErrDuplicateEmail
		switch {
		case errors.As(err, &duplicateErr):
			h.logger.Warn("Attempt to register with duplicate email", "email", duplicateErr.Email)
			RespondConflict(c, "An account with this email already exists")
		case errors.Is(err, agent.ErrWeakPassword):
			RespondBadRequest(c, agent.ErrWeakPassword.Error())
		case errors.Is(err, agent.ErrEmptyName), errors.Is(err, agent.ErrEmptyEmail), errors.Is(err, agent.ErrEmptyPhone):
			RespondBadRequest(c, err.Error())
		default:
			h.logger.Error("Failed to register agent", "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondCreated(c, mapAgentToResponse(a))
}

// Login verifies credentials and returns a session token. Unknown emails and
// wrong passwords produce the same 401.
func (h *AgentHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	token, a, err := h.agentService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			RespondUnauthorized(c, "Invalid email or password")
			return
		}
		h.logger.Error("Failed to log agent in", "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, LoginResponse{
		Token: token,
		Agent: mapAgentToResponse(a),
	})
}

// Me returns the profile of the authenticated agent
func (h *AgentHandler) Me(c *gin.Context) {
	agentID, ok := middleware.GetAgentID(c)
	if !ok {
		RespondUnauthorized(c, "Authentication required")
		return
	}

	a, err := h.agentService.GetAgentByID(c.Request.Context(), agentID)
	if err != nil {
		if errors.Is(err, agent.ErrAgentNotFound{}) {
			RespondNotFound(c, "Agent not found")
			return
		}
		h.logger.Error("Failed to get agent", "agent_id", agentID.String(), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapAgentToResponse(a))
}
