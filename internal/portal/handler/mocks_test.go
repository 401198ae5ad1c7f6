package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/Experiencepwunkr/globomail/internal/domain/agent"
	"github.com/Experiencepwunkr/globomail/internal/domain/audit"
	"github.com/Experiencepwunkr/globomail/internal/domain/request"
	"github.com/Experiencepwunkr/globomail/internal/portal/middleware"
	"github.com/Experiencepwunkr/globomail/internal/portal/service"
)

type MockAgentService struct {
	mock.Mock
}

func (m *MockAgentService) Register(ctx context.Context, name, email, phone, password string, role agent.Role) (*agent.Agent, error) {
	args := m.Called(ctx, name, email, phone, password, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agent.Agent), args.Error(1)
}

func (m *MockAgentService) Login(ctx context.Context, email, password string) (string, *agent.Agent, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*agent.Agent), args.Error(2)
}

func (m *MockAgentService) GetAgentByID(ctx context.Context, id uuid.UUID) (*agent.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*agent.Agent), args.Error(1)
}

type MockIntakeService struct {
	mock.Mock
}

func (m *MockIntakeService) RecordPayment(ctx context.Context, agentID uuid.UUID, serviceType request.ServiceType, reference string, amount int64) (*request.Request, error) {
	args := m.Called(ctx, agentID, serviceType, reference, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*request.Request), args.Error(1)
}

func (m *MockIntakeService) Submit(ctx context.Context, agentID uuid.UUID, serviceType request.ServiceType, paymentReference string, payload map[string]any, consent bool, correlationID string) (*request.Request, error) {
	args := m.Called(ctx, agentID, serviceType, paymentReference, payload, consent, correlationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*request.Request), args.Error(1)
}

func (m *MockIntakeService) ListByAgent(ctx context.Context, agentID uuid.UUID) ([]*request.Request, error) {
	args := m.Called(ctx, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*request.Request), args.Error(1)
}

type MockFulfillmentService struct {
	mock.Mock
}

func (m *MockFulfillmentService) ListOpen(ctx context.Context) ([]*request.RequestWithAgent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*request.RequestWithAgent), args.Error(1)
}

func (m *MockFulfillmentService) UpdateStatus(ctx context.Context, requestID uuid.UUID, to request.Status, result *request.Result, actor string, correlationID string) (*request.Request, error) {
	args := m.Called(ctx, requestID, to, result, actor, correlationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*request.Request), args.Error(1)
}

func (m *MockFulfillmentService) History(ctx context.Context, requestID uuid.UUID) ([]*audit.Record, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*audit.Record), args.Error(1)
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.Default()
	return r
}

// authAs injects the caller identity the auth middleware would set
func authAs(agentID uuid.UUID, role agent.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.AgentIDKey, agentID)
		c.Set(middleware.AgentRoleKey, role)
		c.Next()
	}
}

var _ service.AgentService = (*MockAgentService)(nil)
var _ service.IntakeService = (*MockIntakeService)(nil)
var _ service.FulfillmentService = (*MockFulfillmentService)(nil)
