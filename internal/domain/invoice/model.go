package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status of an invoice
type Status string

// Invoice statuses
const (
	StatusDraft     Status = "draft"
	StatusSent      Status = "sent"
	StatusPaid      Status = "paid"
	StatusOverdue   Status = "overdue"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusCancelled:
		return true
	}
	return false
}

// Pending statuses count as outstanding revenue
var PendingStatuses = []Status{StatusSent, StatusOverdue}

// Invoice is a bill sent to a client
type Invoice struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	ClientID  string          `json:"client_id,omitempty"`
	ProjectID string          `json:"project_id,omitempty"`
	Number    string          `json:"number"`
	Status    Status          `json:"status"`
	Total     decimal.Decimal `json:"total"`
	Currency  string          `json:"currency"`
	IssueDate time.Time       `json:"issue_date"`
	DueDate   *time.Time      `json:"due_date,omitempty"`
	PaidAt    *time.Time      `json:"paid_at,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// IsPending reports whether the invoice is awaiting payment
func (i *Invoice) IsPending() bool {
	return i.Status == StatusSent || i.Status == StatusOverdue
}

// Filter narrows an invoice listing. IssuedFrom is inclusive, IssuedBefore exclusive.
type Filter struct {
	Statuses     []Status
	IssuedFrom   *time.Time
	IssuedBefore *time.Time
	Limit        int
}
