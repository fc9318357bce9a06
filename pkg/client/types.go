package client

import "time"

// HealthResponse is returned by the probe endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Gateway string `json:"gateway,omitempty"`
}

// Limits holds plan quotas. -1 means unlimited.
type Limits struct {
	MaxClients   int `json:"maxClients"`
	MaxProjects  int `json:"maxProjects"`
	MaxStorageGB int `json:"maxStorageGb"`
}

// Entitlement is the trial and subscription state of the session user
type Entitlement struct {
	State                 string     `json:"state"`
	Status                string     `json:"status"`
	Plan                  string     `json:"plan"`
	DaysRemaining         int        `json:"daysRemaining"`
	IsExpired             bool       `json:"isExpired"`
	CanUseFeatures        bool       `json:"canUseFeatures"`
	HasActiveSubscription bool       `json:"hasActiveSubscription"`
	TrialEndsAt           *time.Time `json:"trialEndsAt,omitempty"`
	CurrentPeriodEnd      *time.Time `json:"currentPeriodEnd,omitempty"`
	Limits                Limits     `json:"limits"`
}

// LimitCheck answers whether a feature is blocked
type LimitCheck struct {
	Feature string `json:"feature"`
	Reached bool   `json:"reached"`
}

// Insight is one dashboard card
type Insight struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Value       string `json:"value"`
	Description string `json:"description"`
	Trend       string `json:"trend"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
}

// InsightSummary is a narrative over the current insights
type InsightSummary struct {
	Summary  string    `json:"summary"`
	Source   string    `json:"source"`
	Insights []Insight `json:"insights"`
}

// CRMClient is a customer of the freelancer
type CRMClient struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Company   string    `json:"company,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Project is a piece of work for a client
type Project struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"clientId,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	StartDate   string    `json:"startDate,omitempty"`
	EndDate     string    `json:"endDate,omitempty"`
	Budget      string    `json:"budget"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Invoice is a bill sent to a client. Amounts are decimal strings.
type Invoice struct {
	ID        string     `json:"id"`
	ClientID  string     `json:"clientId,omitempty"`
	ProjectID string     `json:"projectId,omitempty"`
	Number    string     `json:"number"`
	Status    string     `json:"status"`
	Total     string     `json:"total"`
	Currency  string     `json:"currency"`
	IssueDate string     `json:"issueDate"`
	DueDate   string     `json:"dueDate,omitempty"`
	PaidAt    *time.Time `json:"paidAt,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// TimeEntry is a tracked block of work
type TimeEntry struct {
	ID              string    `json:"id"`
	ProjectID       string    `json:"projectId,omitempty"`
	Description     string    `json:"description,omitempty"`
	StartTime       time.Time `json:"startTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Billable        bool      `json:"billable"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ListOptions contains common list parameters
type ListOptions struct {
	Limit  int
	Status string // comma separated
}
