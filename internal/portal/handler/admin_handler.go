package handler

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Experiencepwunkr/globomail/internal/domain/request"
	"github.com/Experiencepwunkr/globomail/internal/portal/middleware"
	"github.com/Experiencepwunkr/globomail/internal/portal/service"
)

// AdminHandler handles HTTP requests for back-office fulfillment operations
type AdminHandler struct {
	fulfillmentService service.FulfillmentService
	intakeService      service.IntakeService
	logger             *slog.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(logger *slog.Logger, fulfillmentService service.FulfillmentService, intakeService service.IntakeService) *AdminHandler {
	return &AdminHandler{
		fulfillmentService: fulfillmentService,
		intakeService:      intakeService,
		logger:             logger,
	}
}

// ListOpen returns the operator queue of pending and processing requests
func (h *AdminHandler) ListOpen(c *gin.Context) {
	open, err := h.fulfillmentService.ListOpen(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list open requests", "error", err)
		RespondInternalError(c)
		return
	}

	response := OpenRequestListResponse{Requests: make([]OpenRequestResponse, 0, len(open))}
	for _, rwa := range open {
		response.Requests = append(response.Requests, OpenRequestResponse{
			RequestResponse: mapRequestToResponse(rwa.Request),
			AgentName:       rwa.AgentName,
			AgentEmail:      rwa.AgentEmail,
		})
	}

	RespondOK(c, response)
}

// UpdateStatus drives a request to the target status. Terminal targets
// require a result payload carrying a message.
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid request ID")
		return
	}

	var body UpdateRequestStatus
	if err := c.ShouldBindJSON(&body); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	to, err := request.ParseStatus(body.Status)
	if err != nil {
		RespondBadRequest(c, err.Error())
		return
	}

	var result *request.Result
	if body.Result != nil {
		result = &request.Result{
			Success:  body.Result.Success,
			Message:  body.Result.Message,
			FileURLs: body.Result.FileURLs,
		}
	}

	actor := ""
	if adminID, ok := middleware.GetAgentID(c); ok {
		actor = adminID.String()
	}

	correlationID := middleware.GetCorrelationID(c)
	req, err := h.fulfillmentService.UpdateStatus(c.Request.Context(), requestID, to, result, actor, correlationID)
	if err != nil {
		var transitionErr request.ErrInvalidTransition
		var concurrentErr request.ErrConcurrentModification
		switch {
		case errors.Is(err, request.ErrRequestNotFound{}):
			RespondNotFound(c, "Request not found")
		case errors.As(err, &transitionErr):
			RespondConflict(c, transitionErr.Error())
		case errors.As(err, &concurrentErr):
			RespondConflict(c, "Request was modified concurrently, retry with fresh state")
		case errors.Is(err, request.ErrResultRequired):
			RespondBadRequest(c, request.ErrResultRequired.Error())
		default:
			h.logger.Error("Failed to update request status", "request_id", requestID.String(), "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondOK(c, UpdateStatusResponse{
		Success: true,
		Transaction: TransactionSnapshot{
			ID:     req.ID.String(),
			Status: string(req.Status),
			Result: mapResultToPayload(req.Result),
		},
	})
}

// History returns a request's audit trail in chronological order
func (h *AdminHandler) History(c *gin.Context) {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondBadRequest(c, "Invalid request ID")
		return
	}

	records, err := h.fulfillmentService.History(c.Request.Context(), requestID)
	if err != nil {
		if errors.Is(err, request.ErrRequestNotFound{}) {
			RespondNotFound(c, "Request not found")
			return
		}
		h.logger.Error("Failed to load request history", "request_id", requestID.String(), "error", err)
		RespondInternalError(c)
		return
	}

	response := HistoryResponse{
		RequestID: requestID.String(),
		History:   make([]AuditRecordResponse, 0, len(records)),
	}
	for _, record := range records {
		response.History = append(response.History, mapAuditRecordToResponse(record))
	}

	RespondOK(c, response)
}

// RecordPayment registers a confirmed payment, creating the row an agent
// submits against. Exposed to back-office operators reconciling provider
// callbacks.
func (h *AdminHandler) RecordPayment(c *gin.Context) {
	var body RecordPaymentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	agentID, err := uuid.Parse(body.AgentID)
	if err != nil {
		RespondBadRequest(c, "Invalid agent ID")
		return
	}

	serviceType, err := request.ParseServiceType(body.ServiceType)
	if err != nil {
		RespondBadRequest(c, "Unknown service type: "+body.ServiceType)
		return
	}

	req, err := h.intakeService.RecordPayment(c.Request.Context(), agentID, serviceType, body.Reference, body.Amount)
	if err != nil {
		var duplicateErr request.ErrDuplicateReference
		switch {
		case errors.As(err, &duplicateErr):
			RespondConflict(c, "A payment with this reference was already recorded")
		case errors.Is(err, request.ErrEmptyPaymentReference):
			RespondBadRequest(c, err.Error())
		default:
			h.logger.Error("Failed to record payment", "reference", body.Reference, "error", err)
			RespondInternalError(c)
		}
		return
	}

	RespondCreated(c, mapRequestToResponse(req))
}
