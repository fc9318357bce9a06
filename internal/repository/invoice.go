package repository

import (
	"context"
	"time"

	"github.com/pratik-mahalle/freelancehub/internal/domain/invoice"
	"github.com/pratik-mahalle/freelancehub/internal/gateway"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/errors"
)

// InvoiceRepository implements invoice.Repository
type InvoiceRepository struct {
	store gateway.DataStore
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(store gateway.DataStore) invoice.Repository {
	return &InvoiceRepository{store: store}
}

// Create creates a new invoice
func (r *InvoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	now := nowUTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	if inv.Status == "" {
		inv.Status = invoice.StatusDraft
	}
	if inv.Currency == "" {
		inv.Currency = "USD"
	}
	if inv.IssueDate.IsZero() {
		inv.IssueDate = now
	}

	values := invoiceValues(inv)
	values["user_id"] = inv.UserID
	values["created_at"] = now
	if inv.ID != "" {
		values["id"] = inv.ID
	}

	row, err := r.store.Insert(ctx, tableInvoices, values)
	if err != nil {
		return err
	}
	*inv = *invoiceFromRow(row)
	return nil
}

// GetByID retrieves an invoice by ID
func (r *InvoiceRepository) GetByID(ctx context.Context, userID, id string) (*invoice.Invoice, error) {
	row, err := gateway.First(ctx, r.store, gateway.From(tableInvoices).Eq("user_id", userID).Eq("id", id))
	if err != nil {
		return nil, lookupError(err, "Invoice")
	}
	return invoiceFromRow(row), nil
}

// List retrieves a user's invoices, most recently issued first
func (r *InvoiceRepository) List(ctx context.Context, userID string, filter invoice.Filter) ([]*invoice.Invoice, error) {
	q := gateway.From(tableInvoices).Eq("user_id", userID)
	if len(filter.Statuses) > 0 {
		statuses := make([]any, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		q = q.In("status", statuses...)
	}
	if filter.IssuedFrom != nil {
		q = q.Gte("issue_date", gateway.Date(*filter.IssuedFrom))
	}
	if filter.IssuedBefore != nil {
		q = q.Lt("issue_date", gateway.Date(*filter.IssuedBefore))
	}

	rows, err := r.store.Select(ctx, q.OrderBy("issue_date", true).Limit(orDefault(filter.Limit, 1000)))
	if err != nil {
		return nil, err
	}
	out := make([]*invoice.Invoice, 0, len(rows))
	for _, row := range rows {
		out = append(out, invoiceFromRow(row))
	}
	return out, nil
}

// Update updates an invoice
func (r *InvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	inv.UpdatedAt = nowUTC()
	rows, err := r.store.Update(ctx, tableInvoices, invoiceValues(inv),
		gateway.Eq("id", inv.ID), gateway.Eq("user_id", inv.UserID))
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return errors.NotFound("Invoice")
	}
	*inv = *invoiceFromRow(rows[0])
	return nil
}

// Delete deletes an invoice
func (r *InvoiceRepository) Delete(ctx context.Context, userID, id string) error {
	n, err := r.store.Delete(ctx, tableInvoices, gateway.Eq("id", id), gateway.Eq("user_id", userID))
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.NotFound("Invoice")
	}
	return nil
}

// MarkOverdue moves sent invoices due before dueBefore to overdue
func (r *InvoiceRepository) MarkOverdue(ctx context.Context, dueBefore time.Time) (int, error) {
	rows, err := r.store.Update(ctx, tableInvoices,
		gateway.Row{"status": string(invoice.StatusOverdue), "updated_at": nowUTC()},
		gateway.Eq("status", string(invoice.StatusSent)),
		gateway.Where("due_date", gateway.OpLt, gateway.Date(dueBefore)),
	)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func invoiceValues(inv *invoice.Invoice) gateway.Row {
	return gateway.Row{
		"client_id":  nullString(inv.ClientID),
		"project_id": nullString(inv.ProjectID),
		"number":     inv.Number,
		"status":     string(inv.Status),
		"total":      inv.Total,
		"currency":   inv.Currency,
		"issue_date": gateway.Date(inv.IssueDate),
		"due_date":   nullDate(inv.DueDate),
		"paid_at":    inv.PaidAt,
		"notes":      nullString(inv.Notes),
		"updated_at": inv.UpdatedAt,
	}
}

func invoiceFromRow(row gateway.Row) *invoice.Invoice {
	return &invoice.Invoice{
		ID:        row.String("id"),
		UserID:    row.String("user_id"),
		ClientID:  row.String("client_id"),
		ProjectID: row.String("project_id"),
		Number:    row.String("number"),
		Status:    invoice.Status(row.String("status")),
		Total:     row.Decimal("total"),
		Currency:  row.String("currency"),
		IssueDate: row.TimeOr("issue_date", time.Time{}),
		DueDate:   row.Time("due_date"),
		PaidAt:    row.Time("paid_at"),
		Notes:     row.String("notes"),
		CreatedAt: row.TimeOr("created_at", nowUTC()),
		UpdatedAt: row.TimeOr("updated_at", nowUTC()),
	}
}
