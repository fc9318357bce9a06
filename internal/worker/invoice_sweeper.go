package worker

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/pratik-mahalle/freelancehub/internal/pkg/logger"
)

// OverdueSweeper is the part of the invoice service the sweeper drives
type OverdueSweeper interface {
	SweepOverdue(ctx context.Context) (int, error)
}

// InvoiceSweeper periodically moves sent invoices past their due date to overdue
type InvoiceSweeper struct {
	invoices OverdueSweeper
	schedule cron.Schedule
	expr     string
	logger   *logger.Logger

	mu      sync.Mutex
	running bool
}

// NewInvoiceSweeper creates a sweeper. expr is a standard cron expression
// or a descriptor such as "@hourly".
func NewInvoiceSweeper(invoices OverdueSweeper, expr string, log *logger.Logger) (*InvoiceSweeper, error) {
	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", expr, err)
	}
	return &InvoiceSweeper{
		invoices: invoices,
		schedule: schedule,
		expr:     expr,
		logger:   log.With("worker", "invoice_sweeper"),
	}, nil
}

// Start runs an initial sweep, then sweeps on schedule until ctx is done
func (s *InvoiceSweeper) Start(ctx context.Context) {
	s.logger.With("schedule", s.expr).Info("Starting invoice sweeper worker")

	scheduler := cron.New()
	scheduler.Schedule(s.schedule, cron.FuncJob(func() { s.Sweep(ctx) }))

	s.Sweep(ctx)
	scheduler.Start()

	<-ctx.Done()
	<-scheduler.Stop().Done()
	s.logger.Info("Invoice sweeper worker stopped")
}

// Sweep runs one pass. Overlapping runs are skipped and failures are only logged.
func (s *InvoiceSweeper) Sweep(ctx context.Context) int {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.logger.Warn("Previous sweep still running, skipping")
		return 0
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	if ctx.Err() != nil {
		return 0
	}

	n, err := s.invoices.SweepOverdue(ctx)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to mark overdue invoices")
		return 0
	}
	if n > 0 {
		s.logger.With("invoices", n).Info("Marked invoices overdue")
	}
	return n
}
