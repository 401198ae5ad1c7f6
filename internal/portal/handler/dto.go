package handler

import (
	"time"

	"github.com/Experiencepwunkr/globomail/internal/domain/agent"
	"github.com/Experiencepwunkr/globomail/internal/domain/audit"
	"github.com/Experiencepwunkr/globomail/internal/domain/request"
)

// RegisterAgentRequest represents a request to register a new agent
type RegisterAgentRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AgentResponse represents an agent in API responses
type AgentResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Role          string `json:"role"`
	WalletBalance int64  `json:"wallet_balance"`
	CreatedAt     string `json:"created_at"`
}

// LoginResponse carries the issued session token alongside the agent
type LoginResponse struct {
	Token string        `json:"token"`
	Agent AgentResponse `json:"agent"`
}

// RecordPaymentRequest represents a confirmed payment to record
type RecordPaymentRequest struct {
	AgentID     string `json:"agent_id" binding:"required,uuid"`
	ServiceType string `json:"service_type" binding:"required"`
	Reference   string `json:"reference" binding:"required"`
	Amount      int64  `json:"amount" binding:"required,gt=0"`
}

// ResultPayload represents the fulfillment outcome attached on terminal
// status updates
type ResultPayload struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	FileURLs []string `json:"fileUrls,omitempty"`
}

// UpdateRequestStatus represents an operator's status update
type UpdateRequestStatus struct {
	Status string         `json:"status" binding:"required"`
	Result *ResultPayload `json:"result,omitempty"`
}

// SubmitResponse acknowledges a successful service request submission
type SubmitResponse struct {
	Success   bool   `json:"success"`
	RequestID string `json:"requestId"`
}

// UpdateStatusResponse acknowledges a successful status update
type UpdateStatusResponse struct {
	Success     bool                `json:"success"`
	Transaction TransactionSnapshot `json:"transaction"`
}

// TransactionSnapshot is the post-update view of a request
type TransactionSnapshot struct {
	ID     string         `json:"id"`
	Status string         `json:"status"`
	Result *ResultPayload `json:"result,omitempty"`
}

// RequestResponse represents a service request in API responses
type RequestResponse struct {
	ID               string         `json:"id"`
	AgentID          string         `json:"agent_id"`
	ServiceType      string         `json:"service_type"`
	ServiceLabel     string         `json:"service_label"`
	Status           string         `json:"status"`
	PaymentReference string         `json:"payment_reference"`
	Amount           int64          `json:"amount"`
	Metadata         map[string]any `json:"metadata,omitempty"`
	Result           *ResultPayload `json:"result,omitempty"`
	CreatedAt        string         `json:"created_at"`
	UpdatedAt        string         `json:"updated_at"`
	CompletedAt      string         `json:"completed_at,omitempty"`
	FailedAt         string         `json:"failed_at,omitempty"`
}

// RequestListResponse represents a list of requests in API responses
type RequestListResponse struct {
	Requests []RequestResponse `json:"requests"`
}

// OpenRequestResponse represents a submitted request with the owning agent's
// contact details for the operator queue
type OpenRequestResponse struct {
	RequestResponse
	AgentName  string `json:"agent_name"`
	AgentEmail string `json:"agent_email"`
}

// OpenRequestListResponse represents the operator queue in API responses
type OpenRequestListResponse struct {
	Requests []OpenRequestResponse `json:"requests"`
}

// AuditRecordResponse represents one audit trail entry in API responses
type AuditRecordResponse struct {
	Event         string `json:"event"`
	FromStatus    string `json:"from_status,omitempty"`
	ToStatus      string `json:"to_status"`
	Actor         string `json:"actor,omitempty"`
	ResultMessage string `json:"result_message,omitempty"`
	RecordedAt    string `json:"recorded_at"`
}

// HistoryResponse represents a request's audit trail in API responses
type HistoryResponse struct {
	RequestID string                `json:"request_id"`
	History   []AuditRecordResponse `json:"history"`
}

// mapAgentToResponse maps an agent entity to an agent response DTO
func mapAgentToResponse(a *agent.Agent) AgentResponse {
	return AgentResponse{
		ID:            a.ID.String(),
		Name:          a.Name,
		Email:         a.Email,
		Phone:         a.Phone,
		Role:          string(a.Role),
		WalletBalance: a.WalletBalance,
		CreatedAt:     a.CreatedAt.Format(time.RFC3339),
	}
}

// mapRequestToResponse maps a request entity to a request response DTO
func mapRequestToResponse(req *request.Request) RequestResponse {
	resp := RequestResponse{
		ID:               req.ID.String(),
		AgentID:          req.AgentID.String(),
		ServiceType:      string(req.ServiceType),
		ServiceLabel:     req.ServiceType.Label(),
		Status:           string(req.Status),
		PaymentReference: req.PaymentReference,
		Amount:           req.Amount,
		Metadata:         req.Metadata,
		Result:           mapResultToPayload(req.Result),
		CreatedAt:        req.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        req.UpdatedAt.Format(time.RFC3339),
	}
	if req.CompletedAt != nil {
		resp.CompletedAt = req.CompletedAt.Format(time.RFC3339)
	}
	if req.FailedAt != nil {
		resp.FailedAt = req.FailedAt.Format(time.RFC3339)
	}
	return resp
}

func mapResultToPayload(result *request.Result) *ResultPayload {
	if result == nil {
		return nil
	}
	return &ResultPayload{
		Success:  result.Success,
		Message:  result.Message,
		FileURLs: result.FileURLs,
	}
}

// mapAuditRecordToResponse maps an audit record to a response DTO
func mapAuditRecordToResponse(record *audit.Record) AuditRecordResponse {
	return AuditRecordResponse{
		Event:         string(record.Event),
		FromStatus:    string(record.FromStatus),
		ToStatus:      string(record.ToStatus),
		Actor:         record.Actor,
		ResultMessage: record.ResultMessage,
		RecordedAt:    record.RecordedAt.Format(time.RFC3339),
	}
}
