package handler

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/Experiencepwunkr/globomail/internal/domain/request"
	"github.com/Experiencepwunkr/globomail/internal/portal/middleware"
	"github.com/Experiencepwunkr/globomail/internal/portal/service"
)

// RequestHandler handles HTTP requests for service request intake
type RequestHandler struct {
	intakeService service.IntakeService
	logger        *slog.Logger
}

// NewRequestHandler creates a new request handler
func NewRequestHandler(logger *slog.Logger, intakeService service.IntakeService) *RequestHandler {
	return &RequestHandler{
		intakeService: intakeService,
		logger:        logger,
	}
}

// Submit handles a service request submission. The body carries the
// service-specific form fields at the top level plus the consent flag and the
// payment reference; everything except those two control fields becomes the
// request metadata.
func (h *RequestHandler) Submit(c *gin.Context) {
	serviceType, err := request.ParseServiceType(c.Param("serviceType"))
	if err != nil {
		RespondBadRequest(c, "Unknown service type: "+c.Param("serviceType"))
		return
	}

	agentID, ok := middleware.GetAgentID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	consent, _ := body["consent"].(bool)
	paymentReference, _ := body["paymentReference"].(string)
	delete(body, "consent")
	delete(body, "paymentReference")

	correlationID := middleware.GetCorrelationID(c)
	req, err := h.intakeService.Submit(c.Request.Context(), agentID, serviceType, paymentReference, body, consent, correlationID)
	if err != nil {
		var missingErr request.ErrMissingFields
		var paymentErr service.ErrPaymentInvalid
		switch {
		case errors.As(err, &missingErr):
			RespondBadRequest(c, missingErr.Error())
		case errors.As(err, &paymentErr):
			h.logger.Warn("Submission rejected for invalid payment",
				"agent_id", agentID.String(),
				"payment_reference", paymentErr.Reference,
				"reason", paymentErr.Reason,
			)
			RespondForbidden(c, "Payment could not be verified: "+paymentErr.Reason)
		case errors.Is(err, request.ErrUnknownServiceType):
			RespondBadRequest(c, err.Error())
		default:
			h.logger.Error("Failed to submit request", "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondCreated(c, SubmitResponse{
		Success:   true,
		RequestID: req.ID.String(),
	})
}

// MyRequests lists the authenticated agent's requests, newest first
func (h *RequestHandler) MyRequests(c *gin.Context) {
	agentID, ok := middleware.GetAgentID(c)
	if !ok {
		RespondUnauthorized(c, "")
		return
	}

	requests, err := h.intakeService.ListByAgent(c.Request.Context(), agentID)
	if err != nil {
		h.logger.Error("Failed to list agent requests", "agent_id", agentID.String(), "error", err)
		RespondInternalError(c)
		return
	}

	response := RequestListResponse{Requests: make([]RequestResponse, 0, len(requests))}
	for _, req := range requests {
		response.Requests = append(response.Requests, mapRequestToResponse(req))
	}

	RespondOK(c, response)
}
