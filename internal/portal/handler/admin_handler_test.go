package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Experiencepwunkr/globomail/internal/domain/agent"
	"github.com/Experiencepwunkr/globomail/internal/domain/audit"
	"github.com/Experiencepwunkr/globomail/internal/domain/request"
)

func TestAdminHandler_ListOpen(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	adminID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockFulfillment := new(MockFulfillmentService)
		handler := NewAdminHandler(logger, mockFulfillment, nil)

		req1, err := request.NewFromPayment(uuid.New(), request.ServiceNINValidation, "PAY1", 100000)
		require.NoError(t, err)
		require.NoError(t, req1.Submit(map[string]any{"fullName": "Ada", "nin": "123", "phone": "080"}))

		open := []*request.RequestWithAgent{{
			Request:    req1,
			AgentName:  "Ada Obi",
			AgentEmail: "ada@example.test",
		}}
		mockFulfillment.On("ListOpen", mock.Anything).Return(open, nil)

		router := setupTestRouter()
		router.GET("/admin/requests", authAs(adminID, agent.RoleAdmin), handler.ListOpen)

		req, _ := http.NewRequest(http.MethodGet, "/admin/requests", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var topLevelResponse Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &topLevelResponse))

		var responseBody OpenRequestListResponse
		dataBytes, err := json.Marshal(topLevelResponse.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(dataBytes, &responseBody))

		require.Len(t, responseBody.Requests, 1)
		assert.Equal(t, "Ada Obi", responseBody.Requests[0].AgentName)
		assert.Equal(t, "pending", responseBody.Requests[0].Status)
		mockFulfillment.AssertExpectations(t)
	})
}

func TestAdminHandler_UpdateStatus(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	adminID := uuid.New()

	completedRequest := func(t *testing.T) *request.Request {
		t.Helper()
		req, err := request.NewFromPayment(uuid.New(), request.ServiceBVNRetrieval, "PAY1", 150000)
		require.NoError(t, err)
		require.NoError(t, req.Submit(map[string]any{"fullName": "Ada", "dob": "1990-04-12", "phone": "080"}))
		require.NoError(t, req.Transition(request.StatusProcessing, nil))
		require.NoError(t, req.Transition(request.StatusCompleted, &request.Result{Success: true, Message: "Verified"}))
		return req
	}

	t.Run("CompletedWithResult", func(t *testing.T) {
		mockFulfillment := new(MockFulfillmentService)
		handler := NewAdminHandler(logger, mockFulfillment, nil)

		updated := completedRequest(t)
		expectedResult := &request.Result{Success: true, Message: "Verified", FileURLs: []string{"https://files.example/slip.pdf"}}
		mockFulfillment.On("UpdateStatus", mock.Anything, updated.ID, request.StatusCompleted, expectedResult, adminID.String(), mock.AnythingOfType("string")).
			Return(updated, nil)

		router := setupTestRouter()
		router.POST("/admin/requests/:id/update", authAs(adminID, agent.RoleAdmin), handler.UpdateStatus)

		body, _ := json.Marshal(UpdateRequestStatus{
			Status: "completed",
			Result: &ResultPayload{Success: true, Message: "Verified", FileURLs: []string{"https://files.example/slip.pdf"}},
		})
		req, _ := http.NewRequest(http.MethodPost, "/admin/requests/"+updated.ID.String()+"/update", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var topLevelResponse Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &topLevelResponse))

		var responseBody UpdateStatusResponse
		dataBytes, err := json.Marshal(topLevelResponse.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(dataBytes, &responseBody))

		assert.True(t, responseBody.Success)
		assert.Equal(t, updated.ID.String(), responseBody.Transaction.ID)
		assert.Equal(t, "completed", responseBody.Transaction.Status)
		require.NotNil(t, responseBody.Transaction.Result)
		assert.Equal(t, "Verified", responseBody.Transaction.Result.Message)
		mockFulfillment.AssertExpectations(t)
	})

	t.Run("InvalidRequestID", func(t *testing.T) {
		mockFulfillment := new(MockFulfillmentService)
		handler := NewAdminHandler(logger, mockFulfillment, nil)

		router := setupTestRouter()
		router.POST("/admin/requests/:id/update", authAs(adminID, agent.RoleAdmin), handler.UpdateStatus)

		body, _ := json.Marshal(UpdateRequestStatus{Status: "processing"})
		req, _ := http.NewRequest(http.MethodPost, "/admin/requests/not-a-uuid/update", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockFulfillment.AssertExpectations(t)
	})

	t.Run("UnknownStatus", func(t *testing.T) {
		mockFulfillment := new(MockFulfillmentService)
		handler := NewAdminHandler(logger, mockFulfillment, nil)

		router := setupTestRouter()
		router.POST("/admin/requests/:id/update", authAs(adminID, agent.RoleAdmin), handler.UpdateStatus)

		body, _ := json.Marshal(UpdateRequestStatus{Status: "archived"})
		req, _ := http.NewRequest(http.MethodPost, "/admin/requests/"+uuid.New().String()+"/update", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockFulfillment.AssertExpectations(t)
	})

	t.Run("RequestNotFound", func(t *testing.T) {
		mockFulfillment := new(MockFulfillmentService)
		handler := NewAdminHandler(logger, mockFulfillment, nil)

		requestID := uuid.New()
		mockFulfillment.On("UpdateStatus", mock.Anything, requestID, request.StatusProcessing, (*request.Result)(nil), adminID.String(), mock.AnythingOfType("string")).
			Return(nil, request.ErrRequestNotFound{RequestID: requestID})

		router := setupTestRouter()
		router.POST("/admin/requests/:id/update", authAs(adminID, agent.RoleAdmin), handler.UpdateStatus)

		body, _ := json.Marshal(UpdateRequestStatus{Status: "processing"})
		req, _ := http.NewRequest(http.MethodPost, "/admin/requests/"+requestID.String()+"/update", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockFulfillment.AssertExpectations(t)
	})

	t.Run("IllegalTransition", func(t *testing.T) {
		mockFulfillment := new(MockFulfillmentService)
		handler := NewAdminHandler(logger, mockFulfillment, nil)

		requestID := uuid.New()
		mockFulfillment.On("UpdateStatus", mock.Anything, requestID, request.StatusPending, (*request.Result)(nil), adminID.String(), mock.AnythingOfType("string")).
			Return(nil, request.ErrInvalidTransition{From: request.StatusCompleted, To: request.StatusPending})

		router := setupTestRouter()
		router.POST("/admin/requests/:id/update", authAs(adminID, agent.RoleAdmin), handler.UpdateStatus)

		body, _ := json.Marshal(UpdateRequestStatus{Status: "pending"})
		req, _ := http.NewRequest(http.MethodPost, "/admin/requests/"+requestID.String()+"/update", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		mockFulfillment.AssertExpectations(t)
	})

	t.Run("ConcurrentModification", func(t *testing.T) {
		mockFulfillment := new(MockFulfillmentService)
		handler := NewAdminHandler(logger, mockFulfillment, nil)

		requestID := uuid.New()
		mockFulfillment.On("UpdateStatus", mock.Anything, requestID, request.StatusProcessing, (*request.Result)(nil), adminID.String(), mock.AnythingOfType("string")).
			Return(nil, request.ErrConcurrentModification{RequestID: requestID})

		router := setupTestRouter()
		router.POST("/admin/requests/:id/update", authAs(adminID, agent.RoleAdmin), handler.UpdateStatus)

		body, _ := json.Marshal(UpdateRequestStatus{Status: "processing"})
		req, _ := http.NewRequest(http.MethodPost, "/admin/requests/"+requestID.String()+"/update", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		mockFulfillment.AssertExpectations(t)
	})

	t.Run("TerminalWithoutResult", func(t *testing.T) {
		mockFulfillment := new(MockFulfillmentService)
		handler := NewAdminHandler(logger, mockFulfillment, nil)

		requestID := uuid.New()
		mockFulfillment.On("UpdateStatus", mock.Anything, requestID, request.StatusFailed, (*request.Result)(nil), adminID.String(), mock.AnythingOfType("string")).
			Return(nil, request.ErrResultRequired)

		router := setupTestRouter()
		router.POST("/admin/requests/:id/update", authAs(adminID, agent.RoleAdmin), handler.UpdateStatus)

		body, _ := json.Marshal(UpdateRequestStatus{Status: "failed"})
		req, _ := http.NewRequest(http.MethodPost, "/admin/requests/"+requestID.String()+"/update", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockFulfillment.AssertExpectations(t)
	})
}

func TestAdminHandler_History(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	adminID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockFulfillment := new(MockFulfillmentService)
		handler := NewAdminHandler(logger, mockFulfillment, nil)

		requestID := uuid.New()
		records := []*audit.Record{
			{RequestID: requestID, Event: audit.EventSubmitted, ToStatus: request.StatusPending, RecordedAt: time.Now()},
			{RequestID: requestID, Event: audit.EventStatusChanged, FromStatus: request.StatusPending, ToStatus: request.StatusProcessing, RecordedAt: time.Now()},
		}
		mockFulfillment.On("History", mock.Anything, requestID).Return(records, nil)

		router := setupTestRouter()
		router.GET("/admin/requests/:id/history", authAs(adminID, agent.RoleAdmin), handler.History)

		req, _ := http.NewRequest(http.MethodGet, "/admin/requests/"+requestID.String()+"/history", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var topLevelResponse Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &topLevelResponse))

		var responseBody HistoryResponse
		dataBytes, err := json.Marshal(topLevelResponse.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(dataBytes, &responseBody))

		assert.Equal(t, requestID.String(), responseBody.RequestID)
		require.Len(t, responseBody.History, 2)
		assert.Equal(t, "submitted", responseBody.History[0].Event)
		assert.Equal(t, "status_changed", responseBody.History[1].Event)
		mockFulfillment.AssertExpectations(t)
	})

	t.Run("RequestNotFound", func(t *testing.T) {
		mockFulfillment := new(MockFulfillmentService)
		handler := NewAdminHandler(logger, mockFulfillment, nil)

		requestID := uuid.New()
		mockFulfillment.On("History", mock.Anything, requestID).Return(nil, request.ErrRequestNotFound{RequestID: requestID})

		router := setupTestRouter()
		router.GET("/admin/requests/:id/history", authAs(adminID, agent.RoleAdmin), handler.History)

		req, _ := http.NewRequest(http.MethodGet, "/admin/requests/"+requestID.String()+"/history", nil)
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		mockFulfillment.AssertExpectations(t)
	})
}

func TestAdminHandler_RecordPayment(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	adminID := uuid.New()
	agentID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mockIntake := new(MockIntakeService)
		handler := NewAdminHandler(logger, nil, mockIntake)

		created, err := request.NewFromPayment(agentID, request.ServiceTINRegistration, "PAY789", 250000)
		require.NoError(t, err)
		mockIntake.On("RecordPayment", mock.Anything, agentID, request.ServiceTINRegistration, "PAY789", int64(250000)).
			Return(created, nil)

		router := setupTestRouter()
		router.POST("/admin/payments", authAs(adminID, agent.RoleAdmin), handler.RecordPayment)

		body, _ := json.Marshal(RecordPaymentRequest{
			AgentID:     agentID.String(),
			ServiceType: "tin_registration",
			Reference:   "PAY789",
			Amount:      250000,
		})
		req, _ := http.NewRequest(http.MethodPost, "/admin/payments", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var topLevelResponse Response
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &topLevelResponse))

		var responseBody RequestResponse
		dataBytes, err := json.Marshal(topLevelResponse.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(dataBytes, &responseBody))

		assert.Equal(t, created.ID.String(), responseBody.ID)
		assert.Equal(t, "awaiting_submission", responseBody.Status)
		mockIntake.AssertExpectations(t)
	})

	t.Run("DuplicateReference", func(t *testing.T) {
		mockIntake := new(MockIntakeService)
		handler := NewAdminHandler(logger, nil, mockIntake)

		mockIntake.On("RecordPayment", mock.Anything, agentID, request.ServiceTINRegistration, "PAY789", int64(250000)).
			Return(nil, request.ErrDuplicateReference{Reference: "PAY789"})

		router := setupTestRouter()
		router.POST("/admin/payments", authAs(adminID, agent.RoleAdmin), handler.RecordPayment)

		body, _ := json.Marshal(RecordPaymentRequest{
			AgentID:     agentID.String(),
			ServiceType: "tin_registration",
			Reference:   "PAY789",
			Amount:      250000,
		})
		req, _ := http.NewRequest(http.MethodPost, "/admin/payments", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		mockIntake.AssertExpectations(t)
	})

	t.Run("UnknownServiceType", func(t *testing.T) {
		mockIntake := new(MockIntakeService)
		handler := NewAdminHandler(logger, nil, mockIntake)

		router := setupTestRouter()
		router.POST("/admin/payments", authAs(adminID, agent.RoleAdmin), handler.RecordPayment)

		body, _ := json.Marshal(RecordPaymentRequest{
			AgentID:     agentID.String(),
			ServiceType: "passport_renewal",
			Reference:   "PAY789",
			Amount:      250000,
		})
		req, _ := http.NewRequest(http.MethodPost, "/admin/payments", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()

		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockIntake.AssertExpectations(t)
	})
}
