package dto

import (
	"time"

	"github.com/pratik-mahalle/freelancehub/internal/domain/invoice"
)

// InvoiceDTO represents an invoice in API responses
type InvoiceDTO struct {
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

// CreateInvoiceRequest represents an invoice creation request
type CreateInvoiceRequest struct {
	ClientID  string `json:"clientId,omitempty"`
	ProjectID string `json:"projectId,omitempty"`
	Number    string `json:"number" validate:"required,max=64"`
	Status    string `json:"status,omitempty" validate:"omitempty,oneof=draft sent paid overdue cancelled"`
	Total     string `json:"total" validate:"required,money"`
	Currency  string `json:"currency,omitempty" validate:"omitempty,len=3"`
	IssueDate string `json:"issueDate,omitempty" validate:"isodate"`
	DueDate   string `json:"dueDate,omitempty" validate:"isodate"`
	Notes     string `json:"notes,omitempty"`
}

// UpdateInvoiceRequest represents a partial invoice update
type UpdateInvoiceRequest struct {
	ClientID  *string `json:"clientId,omitempty"`
	ProjectID *string `json:"projectId,omitempty"`
	Number    *string `json:"number,omitempty" validate:"omitempty,min=1,max=64"`
	Status    *string `json:"status,omitempty" validate:"omitempty,oneof=draft sent paid overdue cancelled"`
	Total     *string `json:"total,omitempty" validate:"omitempty,money"`
	Currency  *string `json:"currency,omitempty" validate:"omitempty,len=3"`
	IssueDate *string `json:"issueDate,omitempty" validate:"omitempty,isodate"`
	DueDate   *string `json:"dueDate,omitempty" validate:"omitempty,isodate"`
	Notes     *string `json:"notes,omitempty"`
}

// ToInvoice builds an invoice from a validated request
func (r CreateInvoiceRequest) ToInvoice() *invoice.Invoice {
	inv := &invoice.Invoice{
		ClientID:  r.ClientID,
		ProjectID: r.ProjectID,
		Number:    r.Number,
		Status:    invoice.Status(r.Status),
		Total:     parseMoney(r.Total),
		Currency:  r.Currency,
		DueDate:   parseDate(r.DueDate),
		Notes:     r.Notes,
	}
	if issued := parseDate(r.IssueDate); issued != nil {
		inv.IssueDate = *issued
	}
	return inv
}

// Apply copies the set fields onto inv
func (r UpdateInvoiceRequest) Apply(inv *invoice.Invoice) {
	if r.ClientID != nil {
		inv.ClientID = *r.ClientID
	}
	if r.ProjectID != nil {
		inv.ProjectID = *r.ProjectID
	}
	if r.Number != nil {
		inv.Number = *r.Number
	}
	if r.Status != nil {
		inv.Status = invoice.Status(*r.Status)
	}
	if r.Total != nil {
		inv.Total = parseMoney(*r.Total)
	}
	if r.Currency != nil {
		inv.Currency = *r.Currency
	}
	if r.IssueDate != nil {
		if issued := parseDate(*r.IssueDate); issued != nil {
			inv.IssueDate = *issued
		}
	}
	if r.DueDate != nil {
		inv.DueDate = parseDate(*r.DueDate)
	}
	if r.Notes != nil {
		inv.Notes = *r.Notes
	}
}

// FromInvoice converts an invoice
func FromInvoice(inv *invoice.Invoice) InvoiceDTO {
	issued := inv.IssueDate
	return InvoiceDTO{
		ID:        inv.ID,
		ClientID:  inv.ClientID,
		ProjectID: inv.ProjectID,
		Number:    inv.Number,
		Status:    string(inv.Status),
		Total:     inv.Total.StringFixed(2),
		Currency:  inv.Currency,
		IssueDate: formatDate(&issued),
		DueDate:   formatDate(inv.DueDate),
		PaidAt:    inv.PaidAt,
		Notes:     inv.Notes,
		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
	}
}

// FromInvoices converts a list of invoices
func FromInvoices(in []*invoice.Invoice) []InvoiceDTO {
	out := make([]InvoiceDTO, len(in))
	for i, inv := range in {
		out[i] = FromInvoice(inv)
	}
	return out
}
