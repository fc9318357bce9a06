package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pratik-mahalle/freelancehub/internal/pkg/errors"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/logger"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/metrics"
)

const backendREST = "rest"

// APIError is a non-2xx answer from the hosted backend
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Hint       string `json:"hint,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("gateway error [%s]: %s (status: %d)", e.Code, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("gateway error: %s (status: %d)", e.Message, e.StatusCode)
}

// RESTConfig holds the hosted backend settings
type RESTConfig struct {
	URL        string
	AnonKey    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// RESTClient talks to a hosted backend exposing a PostgREST data API under
// /rest/v1 and a GoTrue auth API under /auth/v1. It implements DataStore,
// AuthProvider and Pinger.
type RESTClient struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewRESTClient creates a REST gateway client
func NewRESTClient(cfg RESTConfig, log *logger.Logger) *RESTClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &RESTClient{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		anonKey:    cfg.AnonKey,
		httpClient: httpClient,
		logger:     log,
	}
}

// Select implements DataStore
func (c *RESTClient) Select(ctx context.Context, q Query) ([]Row, error) {
	params := url.Values{}
	if len(q.Columns) > 0 {
		params.Set("select", strings.Join(q.Columns, ","))
	} else {
		params.Set("select", "*")
	}
	addFilterParams(params, q.Filters)
	if len(q.Orders) > 0 {
		terms := make([]string, 0, len(q.Orders))
		for _, o := range q.Orders {
			dir := "asc"
			if o.Desc {
				dir = "desc"
			}
			terms = append(terms, o.Column+"."+dir)
		}
		params.Set("order", strings.Join(terms, ","))
	}
	if q.Max > 0 {
		params.Set("limit", strconv.Itoa(q.Max))
	}

	var rows []Row
	err := c.call(ctx, "select", q.Table, http.MethodGet, "/rest/v1/"+q.Table, params, nil, &rows)
	return rows, err
}

// Insert implements DataStore
func (c *RESTClient) Insert(ctx context.Context, table string, row Row) (Row, error) {
	var rows []Row
	if err := c.call(ctx, "insert", table, http.MethodPost, "/rest/v1/"+table, nil, encodeRow(row), &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.GatewayError("insert returned no representation", nil)
	}
	return rows[0], nil
}

// Update implements DataStore
func (c *RESTClient) Update(ctx context.Context, table string, values Row, filters ...Filter) ([]Row, error) {
	params := url.Values{}
	addFilterParams(params, filters)
	var rows []Row
	err := c.call(ctx, "update", table, http.MethodPatch, "/rest/v1/"+table, params, encodeRow(values), &rows)
	return rows, err
}

// Delete implements DataStore
func (c *RESTClient) Delete(ctx context.Context, table string, filters ...Filter) (int, error) {
	params := url.Values{}
	addFilterParams(params, filters)
	var rows []Row
	if err := c.call(ctx, "delete", table, http.MethodDelete, "/rest/v1/"+table, params, nil, &rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// CurrentUser implements AuthProvider. A rejected or missing token is "no session".
func (c *RESTClient) CurrentUser(ctx context.Context) (*User, error) {
	if AccessToken(ctx) == "" {
		return nil, nil
	}
	var user User
	err := c.call(ctx, "current_user", "auth", http.MethodGet, "/auth/v1/user", nil, nil, &user)
	if err != nil {
		var apiErr *APIError
		if stderrors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden) {
			return nil, nil
		}
		return nil, err
	}
	if user.ID == "" {
		return nil, nil
	}
	return &user, nil
}

// SignOut implements AuthProvider
func (c *RESTClient) SignOut(ctx context.Context) error {
	if AccessToken(ctx) == "" {
		return nil
	}
	return c.call(ctx, "sign_out", "auth", http.MethodPost, "/auth/v1/logout", nil, nil, nil)
}

// Ping implements Pinger
func (c *RESTClient) Ping(ctx context.Context) error {
	return c.call(ctx, "ping", "auth", http.MethodGet, "/auth/v1/health", nil, nil, nil)
}

func (c *RESTClient) call(ctx context.Context, op, table, method, path string, params url.Values, body, result interface{}) error {
	start := time.Now()
	err := c.doRequest(ctx, method, path, params, body, result)
	metrics.RecordGatewayCall(backendREST, op, table, time.Since(start), err)
	if err != nil {
		c.logger.WithFields(map[string]interface{}{
			"backend":   backendREST,
			"operation": op,
			"table":     table,
		}).Debugf("gateway call failed: %v", err)
		return errors.GatewayError(fmt.Sprintf("%s on %s failed", op, table), err)
	}
	return nil
}

func (c *RESTClient) doRequest(ctx context.Context, method, path string, params url.Values, body, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", c.anonKey)
	if token := AccessToken(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.anonKey)
	}
	if method != http.MethodGet {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if jsonErr := json.Unmarshal(respBody, apiErr); jsonErr != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(respBody))
		}
		return apiErr
	}

	if result != nil && len(bytes.TrimSpace(respBody)) > 0 {
		dec := json.NewDecoder(bytes.NewReader(respBody))
		dec.UseNumber()
		if err := dec.Decode(result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

func addFilterParams(params url.Values, filters []Filter) {
	for _, f := range filters {
		if f.Op != OpIn && encodeValue(f.Value) == nil {
			switch f.Op {
			case OpEq:
				params.Add(f.Column, "is.null")
				continue
			case OpNeq:
				params.Add(f.Column, "not.is.null")
				continue
			}
		}
		params.Add(f.Column, string(f.Op)+"."+formatFilterValue(f))
	}
}

func formatFilterValue(f Filter) string {
	if f.Op == OpIn {
		values, _ := f.Value.([]any)
		parts := make([]string, 0, len(values))
		for _, v := range values {
			parts = append(parts, quoteListItem(scalarString(encodeValue(v))))
		}
		return "(" + strings.Join(parts, ",") + ")"
	}
	return scalarString(encodeValue(f.Value))
}

func scalarString(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

// quoteListItem quotes values that would break PostgREST list syntax
func quoteListItem(s string) string {
	if strings.ContainsAny(s, ",()\"") {
		return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
	}
	return s
}
