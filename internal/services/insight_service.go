package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/pratik-mahalle/freelancehub/internal/domain/client"
	"github.com/pratik-mahalle/freelancehub/internal/domain/insight"
	"github.com/pratik-mahalle/freelancehub/internal/domain/invoice"
	"github.com/pratik-mahalle/freelancehub/internal/domain/project"
	"github.com/pratik-mahalle/freelancehub/internal/domain/timeentry"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/errors"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/logger"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/metrics"
)

// pendingHighWatermark is the outstanding amount above which cashflow is high priority
var pendingHighWatermark = decimal.NewFromInt(5000)

// slotFunc computes one insight. A nil insight with a nil error means
// there is not enough data for the slot.
type slotFunc func(ctx context.Context, userID string, now time.Time) (*insight.Insight, error)

// InsightService implements insight.Service
type InsightService struct {
	timeEntries timeentry.Repository
	invoices    invoice.Repository
	projects    project.Repository
	clients     client.Repository
	summarizer  Summarizer
	logger      *logger.Logger

	now      func() time.Time
	location *time.Location
	currency string
	timeout  time.Duration
	slots    map[insight.Slot]slotFunc
}

// InsightConfig holds the insight engine settings
type InsightConfig struct {
	CurrencySymbol string
	Timeout        time.Duration
	Location       *time.Location
	Now            func() time.Time
}

// NewInsightService creates a new insight service. summarizer may be nil.
func NewInsightService(
	timeEntries timeentry.Repository,
	invoices invoice.Repository,
	projects project.Repository,
	clients client.Repository,
	summarizer Summarizer,
	cfg InsightConfig,
	log *logger.Logger,
) insight.Service {
	s := &InsightService{
		timeEntries: timeEntries,
		invoices:    invoices,
		projects:    projects,
		clients:     clients,
		summarizer:  summarizer,
		logger:      log,
		now:         cfg.Now,
		location:    cfg.Location,
		currency:    cfg.CurrencySymbol,
		timeout:     cfg.Timeout,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.location == nil {
		s.location = time.UTC
	}
	if s.currency == "" {
		s.currency = "$"
	}
	if s.summarizer == nil {
		s.summarizer = TemplateSummarizer{}
	}
	s.slots = map[insight.Slot]slotFunc{
		insight.SlotProductivity:      s.productivity,
		insight.SlotTopClient:         s.topClient,
		insight.SlotTimeAnalysis:      s.timeAnalysis,
		insight.SlotCashflow:          s.cashflow,
		insight.SlotProjectEfficiency: s.projectEfficiency,
		insight.SlotWorkPatterns:      s.workPatterns,
	}
	return s
}

// Generate runs all slots concurrently and returns their insights in slot order
func (s *InsightService) Generate(ctx context.Context, userID string) ([]insight.Insight, error) {
	if userID == "" {
		return nil, errors.Unauthenticated("Sign in to see insights")
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	now := s.now().In(s.location)
	log := s.logger.With("user_id", userID)

	results := make([]*insight.Insight, len(insight.Slots))
	var g errgroup.Group
	for i, slot := range insight.Slots {
		fn := s.slots[slot]
		g.Go(func() error {
			results[i] = s.runSlot(ctx, log, slot, fn, userID, now)
			return nil
		})
	}
	_ = g.Wait()

	out := make([]insight.Insight, 0, insight.MaxInsights)
	for _, ins := range results {
		if ins == nil {
			continue
		}
		out = append(out, *ins)
		if len(out) == insight.MaxInsights {
			break
		}
	}

	metrics.RecordInsightGeneration(time.Since(start))
	log.WithFields(map[string]interface{}{
		"insights": len(out),
		"duration": time.Since(start).String(),
	}).Debug("Insights generated")

	return out, nil
}

// runSlot isolates a slot: errors and panics are logged and yield no insight
func (s *InsightService) runSlot(ctx context.Context, log *logger.Logger, slot insight.Slot, fn slotFunc, userID string, now time.Time) (result *insight.Insight) {
	defer func() {
		if r := recover(); r != nil {
			err := errors.InsightError(string(slot), fmt.Errorf("panic: %v", r))
			log.With("slot", slot).ErrorWithErr(err, "Insight slot panicked")
			metrics.RecordInsightSlot(string(slot), "failed")
			result = nil
		}
	}()

	ins, err := fn(ctx, userID, now)
	if err != nil {
		log.With("slot", slot).ErrorWithErr(errors.InsightError(string(slot), err), "Insight slot failed")
		metrics.RecordInsightSlot(string(slot), "failed")
		return nil
	}
	if ins == nil {
		metrics.RecordInsightSlot(string(slot), "empty")
		return nil
	}
	metrics.RecordInsightSlot(string(slot), "generated")
	return ins
}

// Summarize generates insights and narrates them
func (s *InsightService) Summarize(ctx context.Context, userID string) (*insight.Summary, error) {
	insights, err := s.Generate(ctx, userID)
	if err != nil {
		return nil, err
	}

	text, err := s.summarizer.Summarize(ctx, insights)
	source := s.summarizer.Source()
	if err != nil {
		s.logger.With("user_id", userID).WarnWithErr(err, "Insight summary failed, using template")
		fallback := TemplateSummarizer{}
		text, _ = fallback.Summarize(ctx, insights)
		source = fallback.Source()
	}

	return &insight.Summary{Text: text, Source: source, Insights: insights}, nil
}

func (s *InsightService) entriesSince(ctx context.Context, userID string, since time.Time) ([]*timeentry.Entry, error) {
	return s.timeEntries.List(ctx, userID, timeentry.Filter{Since: &since})
}

func (s *InsightService) invoicesThisMonth(ctx context.Context, userID string, now time.Time, statuses ...invoice.Status) ([]*invoice.Invoice, error) {
	from := startOfMonth(now)
	before := from.AddDate(0, 1, 0)
	return s.invoices.List(ctx, userID, invoice.Filter{
		Statuses:     statuses,
		IssuedFrom:   &from,
		IssuedBefore: &before,
	})
}

// productivity: billable share of the last 7 days of tracked time
func (s *InsightService) productivity(ctx context.Context, userID string, now time.Time) (*insight.Insight, error) {
	entries, err := s.entriesSince(ctx, userID, now.AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}

	total, billable := 0, 0
	for _, e := range entries {
		total += e.DurationMinutes
		if e.Billable {
			billable += e.DurationMinutes
		}
	}
	if total == 0 {
		return nil, nil
	}

	rate := float64(billable) / float64(total)
	trend := threeWayTrend(rate, 0.7, 0.5)
	return &insight.Insight{
		ID:    insight.SlotProductivity,
		Title: "Billable Ratio",
		Value: fmt.Sprintf("%d%%", percent(rate)),
		Description: fmt.Sprintf("%s of your %s tracked hours in the last 7 days were billable.",
			formatHours(billable), formatHours(total)),
		Trend:    trend,
		Category: insight.CategoryProductivity,
		Priority: priorityForTrend(trend),
	}, nil
}

// topClient: client with the most paid revenue this calendar month
func (s *InsightService) topClient(ctx context.Context, userID string, now time.Time) (*insight.Insight, error) {
	paid, err := s.invoicesThisMonth(ctx, userID, now, invoice.StatusPaid)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	sums := make(map[string]decimal.Decimal)
	var order []string
	for _, inv := range paid {
		total = total.Add(inv.Total)
		if inv.ClientID == "" {
			continue
		}
		if _, seen := sums[inv.ClientID]; !seen {
			order = append(order, inv.ClientID)
		}
		sums[inv.ClientID] = sums[inv.ClientID].Add(inv.Total)
	}
	if len(order) == 0 || !total.IsPositive() {
		return nil, nil
	}

	topID := order[0]
	for _, id := range order[1:] {
		if sums[id].GreaterThan(sums[topID]) {
			topID = id
		}
	}

	name := "Your top client"
	if c, err := s.clients.GetByID(ctx, userID, topID); err == nil && c.Name != "" {
		name = c.Name
	} else if err != nil {
		s.logger.WithFields(map[string]interface{}{"user_id": userID, "client_id": topID}).
			WarnWithErr(err, "Client name lookup failed")
	}

	share := percent(ratio(sums[topID], total))
	return &insight.Insight{
		ID:    insight.SlotTopClient,
		Title: "Top Client",
		Value: formatCurrency(s.currency, sums[topID]),
		Description: fmt.Sprintf("%s brought in %d%% of this month's paid revenue (%s of %s).",
			name, share, formatCurrency(s.currency, sums[topID]), formatCurrency(s.currency, total)),
		Trend:    insight.TrendUp,
		Category: insight.CategoryClients,
		Priority: insight.PriorityHigh,
	}, nil
}

// timeAnalysis: project with the most tracked time in the last 30 days
func (s *InsightService) timeAnalysis(ctx context.Context, userID string, now time.Time) (*insight.Insight, error) {
	entries, err := s.entriesSince(ctx, userID, now.AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	total := 0
	sums := make(map[string]int)
	var order []string
	for _, e := range entries {
		total += e.DurationMinutes
		if e.ProjectID == "" {
			continue
		}
		if _, seen := sums[e.ProjectID]; !seen {
			order = append(order, e.ProjectID)
		}
		sums[e.ProjectID] += e.DurationMinutes
	}
	if total == 0 || len(order) == 0 {
		return nil, nil
	}

	topID := order[0]
	for _, id := range order[1:] {
		if sums[id] > sums[topID] {
			topID = id
		}
	}

	name := "Your busiest project"
	if p, err := s.projects.GetByID(ctx, userID, topID); err == nil && p.Name != "" {
		name = p.Name
	} else if err != nil {
		s.logger.WithFields(map[string]interface{}{"user_id": userID, "project_id": topID}).
			WarnWithErr(err, "Project name lookup failed")
	}

	share := percent(float64(sums[topID]) / float64(total))
	return &insight.Insight{
		ID:    insight.SlotTimeAnalysis,
		Title: "Time Focus",
		Value: formatHours(sums[topID]) + "h",
		Description: fmt.Sprintf("%s took %d%% of your tracked time over the last 30 days (%s of %s hours).",
			name, share, formatHours(sums[topID]), formatHours(total)),
		Trend:    insight.TrendStable,
		Category: insight.CategoryTime,
		Priority: insight.PriorityMedium,
	}, nil
}

// cashflow: outstanding revenue and collection rate this calendar month
func (s *InsightService) cashflow(ctx context.Context, userID string, now time.Time) (*insight.Insight, error) {
	invoices, err := s.invoicesThisMonth(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	if len(invoices) == 0 {
		return nil, nil
	}

	paid, pending := decimal.Zero, decimal.Zero
	for _, inv := range invoices {
		switch {
		case inv.Status == invoice.StatusPaid:
			paid = paid.Add(inv.Total)
		case inv.IsPending():
			pending = pending.Add(inv.Total)
		}
	}
	invoiced := paid.Add(pending)
	if invoiced.IsZero() {
		return nil, nil
	}

	rate := ratio(paid, invoiced)
	priority := insight.PriorityMedium
	if pending.GreaterThan(pendingHighWatermark) {
		priority = insight.PriorityHigh
	}

	return &insight.Insight{
		ID:    insight.SlotCashflow,
		Title: "Cash Flow",
		Value: formatCurrency(s.currency, pending),
		Description: fmt.Sprintf("%s is still outstanding this month; you have collected %d%% of %s invoiced.",
			formatCurrency(s.currency, pending), percent(rate), formatCurrency(s.currency, invoiced)),
		Trend:    threeWayTrend(rate, 0.8, 0.6),
		Category: insight.CategoryRevenue,
		Priority: priority,
	}, nil
}

// projectEfficiency: completion rate and share of completed projects whose
// end date has not passed yet
func (s *InsightService) projectEfficiency(ctx context.Context, userID string, now time.Time) (*insight.Insight, error) {
	projects, err := s.projects.List(ctx, userID, project.Filter{
		Statuses: []project.Status{project.StatusCompleted, project.StatusActive},
	})
	if err != nil {
		return nil, err
	}

	today := startOfDay(now)
	completed, active, onTime := 0, 0, 0
	for _, p := range projects {
		switch p.Status {
		case project.StatusActive:
			active++
		case project.StatusCompleted:
			completed++
			if p.EndDate != nil && !calendarDate(*p.EndDate, now.Location()).Before(today) {
				onTime++
			}
		}
	}
	if completed+active == 0 {
		return nil, nil
	}

	completion := float64(completed) / float64(completed+active)
	onTimeRate := 0.0
	if completed > 0 {
		onTimeRate = float64(onTime) / float64(completed)
	}

	return &insight.Insight{
		ID:    insight.SlotProjectEfficiency,
		Title: "Project Delivery",
		Value: fmt.Sprintf("%d%%", percent(completion)),
		Description: fmt.Sprintf("%d of %d projects are completed, and %d%% of completed projects are within their end date.",
			completed, completed+active, percent(onTimeRate)),
		Trend:    threeWayTrend(onTimeRate, 0.8, 0.6),
		Category: insight.CategoryProjects,
		Priority: insight.PriorityMedium,
	}, nil
}

// workPatterns: weekday with the most tracked time in the last 30 days
func (s *InsightService) workPatterns(ctx context.Context, userID string, now time.Time) (*insight.Insight, error) {
	entries, err := s.entriesSince(ctx, userID, now.AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	total := 0
	byDay := make(map[time.Weekday]int, 7)
	for _, e := range entries {
		total += e.DurationMinutes
		byDay[e.StartTime.In(now.Location()).Weekday()] += e.DurationMinutes
	}
	if total == 0 {
		return nil, nil
	}

	best := weekdayOrder[0]
	for _, d := range weekdayOrder[1:] {
		if byDay[d] > byDay[best] {
			best = d
		}
	}

	share := percent(float64(byDay[best]) / float64(total))
	return &insight.Insight{
		ID:    insight.SlotWorkPatterns,
		Title: "Peak Day",
		Value: best.String(),
		Description: fmt.Sprintf("%s is your most productive day with %s hours, %d%% of your time over the last 30 days.",
			best, formatHours(byDay[best]), share),
		Trend:    insight.TrendStable,
		Category: insight.CategoryProductivity,
		Priority: insight.PriorityLow,
	}, nil
}
