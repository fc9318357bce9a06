package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/freelancehub/internal/api/handlers"
	"github.com/pratik-mahalle/freelancehub/internal/auth"
	"github.com/pratik-mahalle/freelancehub/internal/config"
	"github.com/pratik-mahalle/freelancehub/internal/domain/profile"
	"github.com/pratik-mahalle/freelancehub/internal/gateway"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/validator"
	"github.com/pratik-mahalle/freelancehub/internal/repository"
	"github.com/pratik-mahalle/freelancehub/internal/services"
	"github.com/pratik-mahalle/freelancehub/internal/testutil"
)

const testSecret = "router-test-secret"

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

type testServer struct {
	t       *testing.T
	handler http.Handler
	store   *gateway.SQLStore
}

func newTestServer(t *testing.T) *testServer {
	store := testutil.NewTestStore(t)
	log := testutil.NewTestLogger()
	val := validator.New()
	cfg := &config.Config{
		Server: config.ServerConfig{FrontendURL: "http://localhost:5173", RateLimitRPS: 1000, RateLimitBurst: 1000},
	}

	authProvider := gateway.NewJWTAuthProvider(testSecret, log)
	profiles := repository.NewProfileRepository(store)
	clients := repository.NewClientRepository(store)
	projects := repository.NewProjectRepository(store)
	invoices := repository.NewInvoiceRepository(store)
	timeEntries := repository.NewTimeEntryRepository(store)

	ents := services.NewEntitlementService(profiles, authProvider, log)
	insights := services.NewInsightService(timeEntries, invoices, projects, clients, nil, services.InsightConfig{}, log)

	h := &Handlers{
		Health:      handlers.NewHealthHandler(config.BackendSQL, store, log),
		Auth:        handlers.NewAuthHandler(authProvider, log),
		Entitlement: handlers.NewEntitlementHandler(ents, log),
		Insight:     handlers.NewInsightHandler(insights, ents, log),
		Client:      handlers.NewClientHandler(services.NewClientService(clients, ents, log), log, val),
		Project:     handlers.NewProjectHandler(services.NewProjectService(projects, ents, log), log, val),
		Invoice:     handlers.NewInvoiceHandler(services.NewInvoiceService(invoices, ents, log, nil), log, val),
		TimeEntry:   handlers.NewTimeEntryHandler(services.NewTimeEntryService(timeEntries, ents, log), log, val),
	}

	return &testServer{t: t, handler: New(t.Context(), cfg, log, authProvider, h), store: store}
}

func (s *testServer) token(userID, email string) string {
	tok, err := auth.MintAccessToken(userID, email, testSecret, time.Hour)
	require.NoError(s.t, err)
	return tok
}

func (s *testServer) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.RemoteAddr = "192.0.2.1:1234"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)

	var env envelope
	_ = json.Unmarshal(rr.Body.Bytes(), &env)
	return rr, env
}

func (s *testServer) expireTrial(userID string) {
	ended := time.Now().UTC().Add(-48 * time.Hour).Truncate(time.Second)
	started := ended.Add(-profile.DefaultTrialLength)
	require.NoError(s.t, repository.NewProfileRepository(s.store).Create(context.Background(), &profile.Profile{
		ID:                 userID,
		SubscriptionStatus: profile.StatusTrial,
		SubscriptionPlan:   profile.PlanFree,
		TrialStartedAt:     &started,
		TrialEndsAt:        &ended,
	}))
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)

	rr, _ := s.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	rr, env := s.do(http.MethodGet, "/readyz", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ready","gateway":"sql"}`, string(env.Data))
}

func TestRouter_EntitlementRequiresSession(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name  string
		token string
	}{
		{"no token", ""},
		{"garbage token", "not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, env := s.do(http.MethodGet, "/api/v1/entitlement", tt.token, nil)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Equal(t, "UNAUTHENTICATED", env.Error.Code)
		})
	}
}

func TestRouter_EntitlementCreatesTrial(t *testing.T) {
	s := newTestServer(t)
	tok := s.token("u1", "u1@example.com")

	rr, env := s.do(http.MethodGet, "/api/v1/entitlement", tok, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var info struct {
		State          string `json:"state"`
		Status         string `json:"status"`
		DaysRemaining  int    `json:"daysRemaining"`
		CanUseFeatures bool   `json:"canUseFeatures"`
		Limits         struct {
			MaxClients int `json:"maxClients"`
		} `json:"limits"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &info))
	assert.Equal(t, "allowed", info.State)
	assert.Equal(t, "trial", info.Status)
	assert.Equal(t, 14, info.DaysRemaining)
	assert.True(t, info.CanUseFeatures)
	assert.Equal(t, 10, info.Limits.MaxClients)

	rows, err := s.store.Select(context.Background(), gateway.From("profiles").Eq("id", "u1"))
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestRouter_LimitCheck(t *testing.T) {
	s := newTestServer(t)
	s.expireTrial("late")

	rr, env := s.do(http.MethodGet, "/api/v1/entitlement/limits/clients", s.token("late", ""), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"feature":"clients","reached":true}`, string(env.Data))

	rr, _ = s.do(http.MethodGet, "/api/v1/entitlement/limits/teleport", s.token("late", ""), nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRouter_BlockedUserGets402OnCreate(t *testing.T) {
	s := newTestServer(t)
	s.expireTrial("late")
	tok := s.token("late", "late@example.com")

	rr, env := s.do(http.MethodPost, "/api/v1/clients", tok, map[string]string{"name": "Acme"})
	assert.Equal(t, http.StatusPaymentRequired, rr.Code)
	assert.Equal(t, "PLAN_LIMIT_REACHED", env.Error.Code)
	assert.JSONEq(t, `{"feature":"clients"}`, string(env.Error.Details))

	rr, _ = s.do(http.MethodGet, "/api/v1/insights", tok, nil)
	assert.Equal(t, http.StatusPaymentRequired, rr.Code)

	// reads stay available
	rr, _ = s.do(http.MethodGet, "/api/v1/clients", tok, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_ClientLifecycle(t *testing.T) {
	s := newTestServer(t)
	tok := s.token("u1", "u1@example.com")

	rr, env := s.do(http.MethodPost, "/api/v1/clients", tok, map[string]string{"email": "not-an-email"})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	rr, env = s.do(http.MethodPost, "/api/v1/clients", tok, map[string]string{"name": "Acme", "email": "ops@acme.test"})
	require.Equal(t, http.StatusCreated, rr.Code)
	var created struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotEmpty(t, created.ID)

	rr, env = s.do(http.MethodPut, "/api/v1/clients/"+created.ID, tok, map[string]string{"company": "Acme Corp"})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, string(env.Data), "Acme Corp")

	// another user cannot see it
	rr, _ = s.do(http.MethodGet, "/api/v1/clients/"+created.ID, s.token("u2", ""), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr, _ = s.do(http.MethodDelete, "/api/v1/clients/"+created.ID, tok, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_InvoiceFlowAndInsights(t *testing.T) {
	s := newTestServer(t)
	tok := s.token("u1", "u1@example.com")
	today := time.Now().UTC().Format(time.DateOnly)

	rr, env := s.do(http.MethodPost, "/api/v1/invoices", tok, map[string]string{
		"number": "INV-1", "total": "1500.00", "issueDate": today,
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	var inv struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		Total  string `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &inv))
	assert.Equal(t, "draft", inv.Status)
	assert.Equal(t, "1500.00", inv.Total)

	rr, _ = s.do(http.MethodPost, "/api/v1/invoices/"+inv.ID+"/pay", tok, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rr, env = s.do(http.MethodPost, "/api/v1/invoices/"+inv.ID+"/send", tok, nil)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	rr, _ = s.do(http.MethodPost, "/api/v1/time-entries", tok, map[string]interface{}{
		"startTime": time.Now().UTC().Add(-2 * time.Hour).Format(time.RFC3339), "durationMinutes": 90, "billable": true,
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr, env = s.do(http.MethodGet, "/api/v1/insights", tok, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var insights []struct {
		ID    string `json:"id"`
		Value string `json:"value"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &insights))
	require.NotEmpty(t, insights)
	assert.Equal(t, "productivity", insights[0].ID)
	assert.Equal(t, "100%", insights[0].Value)

	rr, env = s.do(http.MethodGet, "/api/v1/insights/summary", tok, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, string(env.Data), `"source":"template"`)
}

func TestRouter_LogoutAlwaysSucceeds(t *testing.T) {
	s := newTestServer(t)
	rr, _ := s.do(http.MethodPost, "/api/v1/auth/logout", s.token("u1", ""), nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}
