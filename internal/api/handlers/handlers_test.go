package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/freelancehub/internal/api/middleware"
	"github.com/pratik-mahalle/freelancehub/internal/domain/insight"
	"github.com/pratik-mahalle/freelancehub/internal/domain/project"
	"github.com/pratik-mahalle/freelancehub/internal/gateway"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/errors"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/validator"
	"github.com/pratik-mahalle/freelancehub/internal/repository"
	"github.com/pratik-mahalle/freelancehub/internal/services"
	"github.com/pratik-mahalle/freelancehub/internal/testutil"
)

func withUser(req *http.Request, id string) *http.Request {
	return req.WithContext(context.WithValue(req.Context(), middleware.UserKey, &gateway.User{ID: id}))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeData(t *testing.T, rr *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	require.NoError(t, json.Unmarshal(env.Data, dst))
}

func newProjectHandler(t *testing.T) (*ProjectHandler, project.Service) {
	log := testutil.NewTestLogger()
	store := testutil.NewTestStore(t)
	ents := services.NewEntitlementService(testutil.NewMockProfileRepository(), testutil.NewFakeAuthProvider(nil), log)
	svc := services.NewProjectService(repository.NewProjectRepository(store), ents, log)
	return NewProjectHandler(svc, log, validator.New()), svc
}

func TestProjectHandler_List(t *testing.T) {
	handler, svc := newProjectHandler(t)
	ctx := context.Background()
	_, err := svc.Create(ctx, "u1", "", &project.Project{Name: "Site", Status: project.StatusActive})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u1", "", &project.Project{Name: "Logo", Status: project.StatusCompleted})
	require.NoError(t, err)

	tests := []struct {
		name          string
		userID        string
		queryParams   string
		expectedCount int
	}{
		{name: "all projects", userID: "u1", expectedCount: 2},
		{name: "status filter", userID: "u1", queryParams: "?status=completed", expectedCount: 1},
		{name: "multiple statuses", userID: "u1", queryParams: "?status=active,completed", expectedCount: 2},
		{name: "other user sees nothing", userID: "u2", expectedCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withUser(httptest.NewRequest(http.MethodGet, "/api/v1/projects"+tt.queryParams, nil), tt.userID)
			rr := httptest.NewRecorder()

			handler.List(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)
			var out []map[string]interface{}
			decodeData(t, rr, &out)
			assert.Len(t, out, tt.expectedCount)
		})
	}
}

func TestProjectHandler_Create(t *testing.T) {
	handler, _ := newProjectHandler(t)

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{name: "valid", body: `{"name":"Site","budget":"2500.00","startDate":"2026-10-01","endDate":"2026-12-01"}`, expectedStatus: http.StatusCreated},
		{name: "missing name", body: `{"budget":"10"}`, expectedStatus: http.StatusBadRequest},
		{name: "unknown status", body: `{"name":"Site","status":"archived"}`, expectedStatus: http.StatusBadRequest},
		{name: "bad date", body: `{"name":"Site","startDate":"01/10/2026"}`, expectedStatus: http.StatusBadRequest},
		{name: "end before start", body: `{"name":"Site","startDate":"2026-10-02","endDate":"2026-10-01"}`, expectedStatus: http.StatusBadRequest},
		{name: "malformed json", body: `{"name":`, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/projects", bytes.NewBufferString(tt.body)), "u1")
			rr := httptest.NewRecorder()

			handler.Create(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code, rr.Body.String())
		})
	}
}

func TestProjectHandler_GetNotFound(t *testing.T) {
	handler, _ := newProjectHandler(t)

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/v1/projects/missing", nil), "u1")
	req = withURLParam(req, "id", "missing")
	rr := httptest.NewRecorder()

	handler.Get(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandlers_RequireUser(t *testing.T) {
	handler, _ := newProjectHandler(t)
	rr := httptest.NewRecorder()

	handler.List(rr, httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

type stubInsights struct {
	insights []insight.Insight
	err      error
}

func (s *stubInsights) Generate(ctx context.Context, userID string) ([]insight.Insight, error) {
	return s.insights, s.err
}

func (s *stubInsights) Summarize(ctx context.Context, userID string) (*insight.Summary, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &insight.Summary{Text: "Billable Ratio: 75%.", Source: services.SummarySourceTemplate, Insights: s.insights}, nil
}

func TestInsightHandler(t *testing.T) {
	log := testutil.NewTestLogger()
	ents := services.NewEntitlementService(testutil.NewMockProfileRepository(), testutil.NewFakeAuthProvider(nil), log)
	cards := []insight.Insight{{ID: "productivity", Title: "Billable Ratio", Value: "75%", Trend: insight.TrendUp}}

	t.Run("list", func(t *testing.T) {
		handler := NewInsightHandler(&stubInsights{insights: cards}, ents, log)
		rr := httptest.NewRecorder()
		handler.List(rr, withUser(httptest.NewRequest(http.MethodGet, "/api/v1/insights", nil), "u1"))

		require.Equal(t, http.StatusOK, rr.Code)
		var out []map[string]string
		decodeData(t, rr, &out)
		require.Len(t, out, 1)
		assert.Equal(t, "75%", out[0]["value"])
	})

	t.Run("summary", func(t *testing.T) {
		handler := NewInsightHandler(&stubInsights{insights: cards}, ents, log)
		rr := httptest.NewRecorder()
		handler.Summary(rr, withUser(httptest.NewRequest(http.MethodGet, "/api/v1/insights/summary", nil), "u1"))

		require.Equal(t, http.StatusOK, rr.Code)
		var out struct {
			Summary string `json:"summary"`
			Source  string `json:"source"`
		}
		decodeData(t, rr, &out)
		assert.Equal(t, "template", out.Source)
	})

	t.Run("service failure", func(t *testing.T) {
		failure := errors.GatewayError("select on invoices failed", stderrors.New("connection reset"))
		handler := NewInsightHandler(&stubInsights{err: failure}, ents, log)
		rr := httptest.NewRecorder()
		handler.List(rr, withUser(httptest.NewRequest(http.MethodGet, "/api/v1/insights", nil), "u1"))

		assert.Equal(t, failure.StatusCode, rr.Code)
		assert.Contains(t, rr.Body.String(), "GATEWAY_ERROR")
	})
}
