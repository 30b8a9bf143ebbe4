package handlers

import (
	"context"
	"time"

	"controlling_servo/internal/models"
	"controlling_servo/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockServo struct {
	setResp  models.ServoState
	setErr   error
	homeResp models.ServoState
	homeErr  error

	setCalls  int
	homeCalls int
	lastSet   int
	lastEvent string
}

func (m *mockServo) SetPosition(ctx context.Context, deg int) (models.ServoState, error) {
	m.setCalls++
	m.lastSet = deg
	if m.setErr != nil {
		return models.ServoState{}, m.setErr
	}
	if m.setResp.State == "" {
		return models.ServoState{Position: deg, State: models.StateFor(deg)}, nil
	}
	return m.setResp, nil
}

func (m *mockServo) Home(ctx context.Context, eventType, description string) (models.ServoState, error) {
	m.homeCalls++
	m.lastEvent = eventType
	return m.homeResp, m.homeErr
}

type mockMonitoring struct {
	status service.Status
}

func (m *mockMonitoring) GetStatus(ctx context.Context) service.Status {
	return m.status
}

type mockEventLog struct {
	resp       []models.ServoEvent
	err        error
	lastFilter service.LogFilter
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.ServoEvent, error) {
	m.lastFilter = f
	return m.resp, m.err
}

type mockWatchdog struct{}

func (m *mockWatchdog) Run(ctx context.Context, tick time.Duration) {}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
