package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/freelancehub/internal/pkg/errors"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/logger"
)

func newTestREST(t *testing.T, handler http.HandlerFunc) *RESTClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewRESTClient(RESTConfig{URL: srv.URL + "/", AnonKey: "anon"}, logger.Nop())
}

func TestRESTClient_SelectBuildsPostgRESTQuery(t *testing.T) {
	var got *http.Request
	c := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		_, _ = io.WriteString(w, `[{"id":"p1","total":700.5,"billable":true}]`)
	})

	ctx := WithAccessToken(context.Background(), "user-token")
	since := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	rows, err := c.Select(ctx, From("invoices").
		Select("id", "total").
		Eq("user_id", "u1").
		Gte("issue_date", since).
		In("status", "sent", "overdue").
		OrderBy("issue_date", true).
		Limit(10))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "/rest/v1/invoices", got.URL.Path)
	q := got.URL.Query()
	assert.Equal(t, "id,total", q.Get("select"))
	assert.Equal(t, "eq.u1", q.Get("user_id"))
	assert.Equal(t, "gte.2026-10-01T00:00:00Z", q.Get("issue_date"))
	assert.Equal(t, "in.(sent,overdue)", q.Get("status"))
	assert.Equal(t, "issue_date.desc", q.Get("order"))
	assert.Equal(t, "10", q.Get("limit"))
	assert.Equal(t, "anon", got.Header.Get("apikey"))
	assert.Equal(t, "Bearer user-token", got.Header.Get("Authorization"))

	assert.Equal(t, "700.5", rows[0].Decimal("total").String())
	assert.True(t, rows[0].Bool("billable"))
}

func TestRESTClient_NilFiltersUseIsNull(t *testing.T) {
	var got url.Values
	c := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		_, _ = io.WriteString(w, `[]`)
	})

	var paidAt *time.Time
	_, err := c.Select(context.Background(), From("invoices").
		Eq("client_id", nil).
		Neq("project_id", nil).
		Eq("paid_at", paidAt).
		Eq("status", "draft"))
	require.NoError(t, err)

	assert.Equal(t, "is.null", got.Get("client_id"))
	assert.Equal(t, "not.is.null", got.Get("project_id"))
	assert.Equal(t, "is.null", got.Get("paid_at"))
	assert.Equal(t, "eq.draft", got.Get("status"))
}

func TestRESTClient_InsertReturnsRepresentation(t *testing.T) {
	c := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))
		assert.Equal(t, "Bearer anon", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "2026-10-29T12:00:00Z", body["trial_ends_at"])

		body["id"] = "new-id"
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode([]map[string]any{body})
	})

	row, err := c.Insert(context.Background(), "profiles", Row{
		"email":         "a@example.com",
		"trial_ends_at": time.Date(2026, 10, 29, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "new-id", row.String("id"))
	assert.Equal(t, time.Date(2026, 10, 29, 12, 0, 0, 0, time.UTC), *row.Time("trial_ends_at"))
}

func TestRESTClient_ErrorIsGatewayError(t *testing.T) {
	c := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"code":"XX000","message":"boom"}`)
	})

	_, err := c.Select(context.Background(), From("clients"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeGateway))
	assert.Contains(t, err.Error(), "boom")
}

func TestRESTClient_CurrentUser(t *testing.T) {
	c := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		if r.Header.Get("Authorization") != "Bearer good" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"message":"invalid JWT"}`)
			return
		}
		_, _ = io.WriteString(w, `{"id":"u1","email":"a@example.com","role":"authenticated"}`)
	})

	user, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user, "no token means no session")

	user, err = c.CurrentUser(WithAccessToken(context.Background(), "bad"))
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = c.CurrentUser(WithAccessToken(context.Background(), "good"))
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "a@example.com", user.Email)
}

func TestRESTClient_DeleteCountsRows(t *testing.T) {
	c := newTestREST(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "eq.c1", r.URL.Query().Get("id"))
		_, _ = io.WriteString(w, `[{"id":"c1"}]`)
	})

	n, err := c.Delete(context.Background(), "clients", Eq("id", "c1"), Eq("user_id", "u1"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
