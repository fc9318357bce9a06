package project

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status of a project
type Status string

// Project statuses
const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusOnHold    Status = "on_hold"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusOnHold, StatusCancelled:
		return true
	}
	return false
}

// Project is a piece of work, optionally for a client
type Project struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	ClientID    string          `json:"client_id,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Status      Status          `json:"status"`
	StartDate   *time.Time      `json:"start_date,omitempty"`
	EndDate     *time.Time      `json:"end_date,omitempty"`
	Budget      decimal.Decimal `json:"budget"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Filter narrows a project listing
type Filter struct {
	Statuses []Status
	Limit    int
}
