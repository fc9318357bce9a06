package services

import (
	"context"
	"fmt"
	"time"

	"github.com/pratik-mahalle/freelancehub/internal/domain/entitlement"
	"github.com/pratik-mahalle/freelancehub/internal/domain/invoice"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/errors"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/logger"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/metrics"
)

// InvoiceService implements invoice.Service
type InvoiceService struct {
	repo         invoice.Repository
	entitlements entitlement.Service
	logger       *logger.Logger
	now          func() time.Time
}

// NewInvoiceService creates a new invoice service. now may be nil.
func NewInvoiceService(repo invoice.Repository, entitlements entitlement.Service, log *logger.Logger, now func() time.Time) invoice.Service {
	if now == nil {
		now = time.Now
	}
	return &InvoiceService{
		repo:         repo,
		entitlements: entitlements,
		logger:       log,
		now:          now,
	}
}

// Create creates an invoice once the plan allows it
func (s *InvoiceService) Create(ctx context.Context, userID, email string, inv *invoice.Invoice) (*invoice.Invoice, error) {
	if err := validateInvoice(inv); err != nil {
		return nil, err
	}
	if err := s.entitlements.Require(ctx, userID, email, entitlement.FeatureInvoices); err != nil {
		return nil, err
	}

	inv.UserID = userID
	if inv.Status == invoice.StatusPaid && inv.PaidAt == nil {
		paidAt := s.now().UTC()
		inv.PaidAt = &paidAt
	}
	if err := s.repo.Create(ctx, inv); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create invoice")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"invoice_id": inv.ID,
		"user_id":    userID,
		"status":     inv.Status,
	}).Info("Invoice created")

	return inv, nil
}

// Get retrieves an invoice
func (s *InvoiceService) Get(ctx context.Context, userID, id string) (*invoice.Invoice, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// List lists a user's invoices
func (s *InvoiceService) List(ctx context.Context, userID string, filter invoice.Filter) ([]*invoice.Invoice, error) {
	return s.repo.List(ctx, userID, filter)
}

// Update updates an invoice. A status change must be an allowed transition.
func (s *InvoiceService) Update(ctx context.Context, inv *invoice.Invoice) (*invoice.Invoice, error) {
	if err := validateInvoice(inv); err != nil {
		return nil, err
	}

	stored, err := s.repo.GetByID(ctx, inv.UserID, inv.ID)
	if err != nil {
		return nil, err
	}
	if inv.Status == "" {
		inv.Status = stored.Status
	}
	inv.PaidAt = stored.PaidAt
	if inv.Status != stored.Status {
		if !canTransition(stored.Status, inv.Status) {
			return nil, transitionConflict(stored.Status, inv.Status)
		}
		s.stampPaid(inv)
	}

	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Delete deletes an invoice
func (s *InvoiceService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}

// invoiceTransitions lists the statuses each status may move to by hand.
// Overdue is set only by the sweep.
var invoiceTransitions = map[invoice.Status][]invoice.Status{
	invoice.StatusDraft:   {invoice.StatusSent, invoice.StatusPaid, invoice.StatusCancelled},
	invoice.StatusSent:    {invoice.StatusPaid, invoice.StatusCancelled},
	invoice.StatusOverdue: {invoice.StatusPaid, invoice.StatusCancelled},
}

func canTransition(from, to invoice.Status) bool {
	for _, next := range invoiceTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func transitionConflict(from, to invoice.Status) error {
	return errors.Conflict(fmt.Sprintf("invoice is %s and cannot become %s", from, to))
}

func (s *InvoiceService) stampPaid(inv *invoice.Invoice) {
	if inv.Status == invoice.StatusPaid {
		paidAt := s.now().UTC()
		inv.PaidAt = &paidAt
	}
}

// MarkSent moves a draft invoice to sent
func (s *InvoiceService) MarkSent(ctx context.Context, userID, id string) (*invoice.Invoice, error) {
	return s.transition(ctx, userID, id, invoice.StatusSent)
}

// MarkPaid records payment of a draft, sent or overdue invoice
func (s *InvoiceService) MarkPaid(ctx context.Context, userID, id string) (*invoice.Invoice, error) {
	return s.transition(ctx, userID, id, invoice.StatusPaid)
}

func (s *InvoiceService) transition(ctx context.Context, userID, id string, to invoice.Status) (*invoice.Invoice, error) {
	inv, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(inv.Status, to) {
		return nil, transitionConflict(inv.Status, to)
	}

	inv.Status = to
	s.stampPaid(inv)
	if err := s.repo.Update(ctx, inv); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update invoice status")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"invoice_id": id,
		"user_id":    userID,
		"status":     to,
	}).Info("Invoice status changed")

	return inv, nil
}

// SweepOverdue marks every sent invoice due before today as overdue
func (s *InvoiceService) SweepOverdue(ctx context.Context) (int, error) {
	today := startOfDay(s.now().UTC())
	n, err := s.repo.MarkOverdue(ctx, today)
	if err != nil {
		return 0, err
	}
	metrics.AddInvoicesMarkedOverdue(n)
	return n, nil
}

func validateInvoice(inv *invoice.Invoice) error {
	if inv.Number == "" {
		return errors.BadRequest("invoice number is required")
	}
	if inv.Status != "" && !inv.Status.Valid() {
		return errors.BadRequest(fmt.Sprintf("unknown invoice status %q", inv.Status))
	}
	if inv.Total.IsNegative() {
		return errors.BadRequest("total must not be negative")
	}
	return nil
}
