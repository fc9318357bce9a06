package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

func listQuery(opts *ListOptions) url.Values {
	query := url.Values{}
	if opts == nil {
		return query
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Status != "" {
		query.Set("status", opts.Status)
	}
	return query
}

func withQuery(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}

// ClientService handles client API calls
type ClientService struct {
	client *Client
}

// CreateClientRequest represents a request to create a client
type CreateClientRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Company string `json:"company,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// UpdateClientRequest represents a partial client update
type UpdateClientRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Company *string `json:"company,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

// List retrieves the user's clients
func (s *ClientService) List(ctx context.Context, opts *ListOptions) ([]CRMClient, error) {
	var out []CRMClient
	if err := s.client.doRequest(ctx, "GET", withQuery("/api/v1/clients", listQuery(opts)), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get retrieves a client by ID
func (s *ClientService) Get(ctx context.Context, id string) (*CRMClient, error) {
	var out CRMClient
	if err := s.client.doRequest(ctx, "GET", "/api/v1/clients/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create creates a client
func (s *ClientService) Create(ctx context.Context, req CreateClientRequest) (*CRMClient, error) {
	var out CRMClient
	if err := s.client.doRequest(ctx, "POST", "/api/v1/clients", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update applies a partial update to a client
func (s *ClientService) Update(ctx context.Context, id string, req UpdateClientRequest) (*CRMClient, error) {
	var out CRMClient
	if err := s.client.doRequest(ctx, "PUT", "/api/v1/clients/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete deletes a client
func (s *ClientService) Delete(ctx context.Context, id string) error {
	return s.client.doRequest(ctx, "DELETE", "/api/v1/clients/"+url.PathEscape(id), nil, nil)
}

// ProjectService handles project API calls
type ProjectService struct {
	client *Client
}

// CreateProjectRequest represents a request to create a project
type CreateProjectRequest struct {
	ClientID    string `json:"clientId,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	EndDate     string `json:"endDate,omitempty"`
	Budget      string `json:"budget,omitempty"`
}

// List retrieves the user's projects
func (s *ProjectService) List(ctx context.Context, opts *ListOptions) ([]Project, error) {
	var out []Project
	if err := s.client.doRequest(ctx, "GET", withQuery("/api/v1/projects", listQuery(opts)), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create creates a project
func (s *ProjectService) Create(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	var out Project
	if err := s.client.doRequest(ctx, "POST", "/api/v1/projects", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete deletes a project
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	return s.client.doRequest(ctx, "DELETE", "/api/v1/projects/"+url.PathEscape(id), nil, nil)
}

// InvoiceService handles invoice API calls
type InvoiceService struct {
	client *Client
}

// CreateInvoiceRequest represents a request to create an invoice
type CreateInvoiceRequest struct {
	ClientID  string `json:"clientId,omitempty"`
	ProjectID string `json:"projectId,omitempty"`
	Number    string `json:"number"`
	Status    string `json:"status,omitempty"`
	Total     string `json:"total"`
	Currency  string `json:"currency,omitempty"`
	IssueDate string `json:"issueDate,omitempty"`
	DueDate   string `json:"dueDate,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// InvoiceListOptions narrows an invoice listing
type InvoiceListOptions struct {
	ListOptions
	From *time.Time
	To   *time.Time
}

// List retrieves the user's invoices
func (s *InvoiceService) List(ctx context.Context, opts *InvoiceListOptions) ([]Invoice, error) {
	query := url.Values{}
	if opts != nil {
		query = listQuery(&opts.ListOptions)
		if opts.From != nil {
			query.Set("from", opts.From.Format(time.DateOnly))
		}
		if opts.To != nil {
			query.Set("to", opts.To.Format(time.DateOnly))
		}
	}

	var out []Invoice
	if err := s.client.doRequest(ctx, "GET", withQuery("/api/v1/invoices", query), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create creates an invoice
func (s *InvoiceService) Create(ctx context.Context, req CreateInvoiceRequest) (*Invoice, error) {
	var out Invoice
	if err := s.client.doRequest(ctx, "POST", "/api/v1/invoices", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Send moves a draft invoice to sent
func (s *InvoiceService) Send(ctx context.Context, id string) (*Invoice, error) {
	return s.transition(ctx, id, "send")
}

// Pay marks an invoice as paid
func (s *InvoiceService) Pay(ctx context.Context, id string) (*Invoice, error) {
	return s.transition(ctx, id, "pay")
}

func (s *InvoiceService) transition(ctx context.Context, id, action string) (*Invoice, error) {
	var out Invoice
	path := fmt.Sprintf("/api/v1/invoices/%s/%s", url.PathEscape(id), action)
	if err := s.client.doRequest(ctx, "POST", path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TimeEntryService handles time tracking API calls
type TimeEntryService struct {
	client *Client
}

// CreateTimeEntryRequest represents a request to log time
type CreateTimeEntryRequest struct {
	ProjectID       string    `json:"projectId,omitempty"`
	Description     string    `json:"description,omitempty"`
	StartTime       time.Time `json:"startTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Billable        bool      `json:"billable"`
}

// List retrieves time entries, optionally for one project or since a time
func (s *TimeEntryService) List(ctx context.Context, projectID string, since *time.Time) ([]TimeEntry, error) {
	query := url.Values{}
	if projectID != "" {
		query.Set("projectId", projectID)
	}
	if since != nil {
		query.Set("since", since.UTC().Format(time.RFC3339))
	}

	var out []TimeEntry
	if err := s.client.doRequest(ctx, "GET", withQuery("/api/v1/time-entries", query), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create logs a time entry
func (s *TimeEntryService) Create(ctx context.Context, req CreateTimeEntryRequest) (*TimeEntry, error) {
	var out TimeEntry
	if err := s.client.doRequest(ctx, "POST", "/api/v1/time-entries", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
