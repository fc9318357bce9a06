package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL + "/", Token: "tok"})
}

func TestClient_UnwrapsData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/insights", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"productivity","title":"Billable Ratio","value":"75%"}]}`))
	})

	insights, err := c.Insights(context.Background())
	require.NoError(t, err)
	require.Len(t, insights, 1)
	assert.Equal(t, "75%", insights[0].Value)
}

func TestClient_DecodesErrorEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"PLAN_LIMIT_REACHED","message":"Upgrade required","details":{"feature":"clients"}}}`))
	})

	_, err := c.Clients().Create(context.Background(), CreateClientRequest{Name: "Acme"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.IsPlanLimit())
	assert.Equal(t, "PLAN_LIMIT_REACHED", apiErr.Code)
	assert.JSONEq(t, `{"feature":"clients"}`, string(apiErr.Details))
}

func TestClient_NonJSONError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	err := c.Ping(context.Background())
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.IsServerError())
	assert.Equal(t, "bad gateway", apiErr.Message)
}

func TestClient_ListQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sent,overdue", r.URL.Query().Get("status"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	})

	out, err := c.Invoices().List(context.Background(), &InvoiceListOptions{
		ListOptions: ListOptions{Limit: 5, Status: "sent,overdue"},
	})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestClient_LogoutClearsToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":true,"message":"Logged out"}`))
	})

	require.NoError(t, c.Logout(context.Background()))
	assert.Empty(t, c.GetToken())
}
