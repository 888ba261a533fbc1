package handlers

import (
	"context"
	"net/http"
	"time"

	"reflow_oven/internal/models"
	"reflow_oven/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(ctx context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockOven struct {
	startErr    error
	stopErr     error
	startCalled int
	stopCalled  int
}

func (m *mockOven) StartRun(ctx context.Context) error {
	m.startCalled++
	return m.startErr
}
func (m *mockOven) StopRun(ctx context.Context) error {
	m.stopCalled++
	return m.stopErr
}

type mockProfiles struct {
	listResp    []service.ProfileSummary
	currentResp service.ProfileDetail

	selectResp int
	selectErr  error
	lastSelect int

	renameResp string
	renameErr  error
	lastRename string

	setResp     int
	setErr      error
	lastSetPos  int
	lastSetVal  int
	saveErr     error
	saveCalled  int
	setpointC   float64
	lastSeconds float64
}

func (m *mockProfiles) List(ctx context.Context) []service.ProfileSummary { return m.listResp }
func (m *mockProfiles) Current(ctx context.Context) service.ProfileDetail { return m.currentResp }
func (m *mockProfiles) Select(ctx context.Context, idx int) (int, error) {
	m.lastSelect = idx
	return m.selectResp, m.selectErr
}
func (m *mockProfiles) Rename(ctx context.Context, name string) (string, error) {
	m.lastRename = name
	return m.renameResp, m.renameErr
}
func (m *mockProfiles) SetSetpoint(ctx context.Context, pos, value int) (int, error) {
	m.lastSetPos = pos
	m.lastSetVal = value
	return m.setResp, m.setErr
}
func (m *mockProfiles) Save(ctx context.Context) error {
	m.saveCalled++
	return m.saveErr
}
func (m *mockProfiles) SetpointAt(ctx context.Context, seconds float64) float64 {
	m.lastSeconds = seconds
	return m.setpointC
}

type mockMonitoring struct {
	state models.OvenState
	err   error
}

func (m *mockMonitoring) GetState(ctx context.Context) (models.OvenState, error) {
	return m.state, m.err
}

type mockEventLog struct {
	resp     []models.OvenEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.OvenEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func addHeaders(req *http.Request, hdr http.Header) {
	for k, vv := range hdr {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
}
