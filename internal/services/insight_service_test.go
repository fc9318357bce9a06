package services

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/freelancehub/internal/domain/client"
	"github.com/pratik-mahalle/freelancehub/internal/domain/insight"
	"github.com/pratik-mahalle/freelancehub/internal/domain/invoice"
	"github.com/pratik-mahalle/freelancehub/internal/domain/project"
	"github.com/pratik-mahalle/freelancehub/internal/domain/timeentry"
	"github.com/pratik-mahalle/freelancehub/internal/repository"
	"github.com/pratik-mahalle/freelancehub/internal/testutil"
)

const insightUser = "user-1"

type insightFixture struct {
	t           *testing.T
	ctx         context.Context
	timeEntries timeentry.Repository
	invoices    invoice.Repository
	projects    project.Repository
	clients     client.Repository
}

func newInsightFixture(t *testing.T) *insightFixture {
	store := testutil.NewTestStore(t)
	return &insightFixture{
		t:           t,
		ctx:         context.Background(),
		timeEntries: repository.NewTimeEntryRepository(store),
		invoices:    repository.NewInvoiceRepository(store),
		projects:    repository.NewProjectRepository(store),
		clients:     repository.NewClientRepository(store),
	}
}

func (f *insightFixture) service(summarizer Summarizer) *InsightService {
	return NewInsightService(f.timeEntries, f.invoices, f.projects, f.clients, summarizer,
		InsightConfig{CurrencySymbol: "$", Now: testutil.FixedClock(testNow)},
		testutil.NewTestLogger()).(*InsightService)
}

func (f *insightFixture) entry(projectID string, start time.Time, minutes int, billable bool) {
	e := &timeentry.Entry{
		UserID:          insightUser,
		ProjectID:       projectID,
		StartTime:       start,
		DurationMinutes: minutes,
		Billable:        billable,
	}
	require.NoError(f.t, f.timeEntries.Create(f.ctx, e))
}

func (f *insightFixture) invoice(clientID string, status invoice.Status, total int64, issued time.Time) {
	inv := &invoice.Invoice{
		UserID:    insightUser,
		ClientID:  clientID,
		Number:    "INV-" + clientID + "-" + string(status),
		Status:    status,
		Total:     decimal.NewFromInt(total),
		IssueDate: issued,
	}
	require.NoError(f.t, f.invoices.Create(f.ctx, inv))
}

func (f *insightFixture) client(name string) string {
	c := &client.Client{UserID: insightUser, Name: name}
	require.NoError(f.t, f.clients.Create(f.ctx, c))
	return c.ID
}

func (f *insightFixture) project(name string, status project.Status, end *time.Time) string {
	p := &project.Project{UserID: insightUser, Name: name, Status: status, EndDate: end}
	require.NoError(f.t, f.projects.Create(f.ctx, p))
	return p.ID
}

func findInsight(insights []insight.Insight, slot insight.Slot) *insight.Insight {
	for i := range insights {
		if insights[i].ID == slot {
			return &insights[i]
		}
	}
	return nil
}

func slotIDs(insights []insight.Insight) []insight.Slot {
	ids := make([]insight.Slot, len(insights))
	for i, ins := range insights {
		ids[i] = ins.ID
	}
	return ids
}

func TestInsightService_ProductivityRatio(t *testing.T) {
	f := newInsightFixture(t)
	f.entry("", testNow.Add(-24*time.Hour), 450, true)
	f.entry("", testNow.Add(-48*time.Hour), 150, false)
	// outside the 7 day window
	f.entry("", testNow.AddDate(0, 0, -9), 600, false)

	insights, err := f.service(nil).Generate(f.ctx, insightUser)
	require.NoError(t, err)

	ins := findInsight(insights, insight.SlotProductivity)
	require.NotNil(t, ins)
	assert.Equal(t, "75%", ins.Value)
	assert.Equal(t, insight.TrendUp, ins.Trend)
	assert.Equal(t, insight.PriorityHigh, ins.Priority)
	assert.Equal(t, insight.CategoryProductivity, ins.Category)
	assert.Contains(t, ins.Description, "7.5 of your 10")
}

func TestInsightService_ProductivityTrendBands(t *testing.T) {
	tests := []struct {
		name     string
		billable int
		trend    insight.Trend
		priority insight.Priority
	}{
		{"above 70 percent", 71, insight.TrendUp, insight.PriorityHigh},
		{"exactly 70 percent", 70, insight.TrendStable, insight.PriorityMedium},
		{"above 50 percent", 51, insight.TrendStable, insight.PriorityMedium},
		{"exactly 50 percent", 50, insight.TrendDown, insight.PriorityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newInsightFixture(t)
			f.entry("", testNow.Add(-time.Hour), tt.billable, true)
			f.entry("", testNow.Add(-2*time.Hour), 100-tt.billable, false)

			insights, err := f.service(nil).Generate(f.ctx, insightUser)
			require.NoError(t, err)

			ins := findInsight(insights, insight.SlotProductivity)
			require.NotNil(t, ins)
			assert.Equal(t, tt.trend, ins.Trend)
			assert.Equal(t, tt.priority, ins.Priority)
		})
	}
}

func TestInsightService_NoRecentEntriesOmitsProductivity(t *testing.T) {
	f := newInsightFixture(t)
	f.entry("", testNow.AddDate(0, 0, -10), 120, true)

	insights, err := f.service(nil).Generate(f.ctx, insightUser)
	require.NoError(t, err)

	assert.Nil(t, findInsight(insights, insight.SlotProductivity))
	// the 30 day slots still see the entry
	assert.NotNil(t, findInsight(insights, insight.SlotWorkPatterns))
}

func TestInsightService_EmptyHistoryYieldsNoInsights(t *testing.T) {
	f := newInsightFixture(t)

	insights, err := f.service(nil).Generate(f.ctx, insightUser)
	require.NoError(t, err)
	assert.Empty(t, insights)
}

func TestInsightService_TopClient(t *testing.T) {
	f := newInsightFixture(t)
	acme := f.client("Acme")
	globex := f.client("Globex")
	monthStart := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	f.invoice(acme, invoice.StatusPaid, 700, monthStart.AddDate(0, 0, 2))
	f.invoice(globex, invoice.StatusPaid, 300, monthStart.AddDate(0, 0, 4))
	// last month and unpaid invoices do not count
	f.invoice(globex, invoice.StatusPaid, 5000, monthStart.AddDate(0, 0, -3))
	f.invoice(globex, invoice.StatusSent, 2000, monthStart.AddDate(0, 0, 5))

	insights, err := f.service(nil).Generate(f.ctx, insightUser)
	require.NoError(t, err)

	ins := findInsight(insights, insight.SlotTopClient)
	require.NotNil(t, ins)
	assert.Equal(t, "$700", ins.Value)
	assert.Contains(t, ins.Description, "Acme")
	assert.Contains(t, ins.Description, "70%")
	assert.Equal(t, insight.TrendUp, ins.Trend)
	assert.Equal(t, insight.PriorityHigh, ins.Priority)
}

func TestInsightService_TopClientUnknownNameFallsBack(t *testing.T) {
	f := newInsightFixture(t)
	f.invoice("deleted-client", invoice.StatusPaid, 12500, testNow.AddDate(0, 0, -1))

	insights, err := f.service(nil).Generate(f.ctx, insightUser)
	require.NoError(t, err)

	ins := findInsight(insights, insight.SlotTopClient)
	require.NotNil(t, ins)
	assert.Equal(t, "$12,500", ins.Value)
	assert.Contains(t, ins.Description, "Your top client")
	assert.Contains(t, ins.Description, "100%")
}

func TestInsightService_TimeAnalysis(t *testing.T) {
	f := newInsightFixture(t)
	site := f.project("Website", project.StatusActive, nil)
	app := f.project("Mobile app", project.StatusActive, nil)

	f.entry(site, testNow.AddDate(0, 0, -3), 180, true)
	f.entry(app, testNow.AddDate(0, 0, -20), 90, true)
	f.entry("", testNow.AddDate(0, 0, -1), 30, false)

	insights, err := f.service(nil).Generate(f.ctx, insightUser)
	require.NoError(t, err)

	ins := findInsight(insights, insight.SlotTimeAnalysis)
	require.NotNil(t, ins)
	assert.Equal(t, "3h", ins.Value)
	assert.Contains(t, ins.Description, "Website")
	assert.Contains(t, ins.Description, "60%")
	assert.Equal(t, insight.TrendStable, ins.Trend)
	assert.Equal(t, insight.PriorityMedium, ins.Priority)
}

func TestInsightService_Cashflow(t *testing.T) {
	f := newInsightFixture(t)
	issued := testNow.AddDate(0, 0, -5)
	f.invoice("c1", invoice.StatusPaid, 1000, issued)
	f.invoice("c1", invoice.StatusSent, 4000, issued)
	f.invoice("c2", invoice.StatusOverdue, 2000, issued)
	f.invoice("c2", invoice.StatusDraft, 9000, issued)

	insights, err := f.service(nil).Generate(f.ctx, insightUser)
	require.NoError(t, err)

	ins := findInsight(insights, insight.SlotCashflow)
	require.NotNil(t, ins)
	assert.Equal(t, "$6,000", ins.Value)
	assert.Contains(t, ins.Description, "14%")
	assert.Equal(t, insight.TrendDown, ins.Trend)
	assert.Equal(t, insight.PriorityHigh, ins.Priority)
	assert.Equal(t, insight.CategoryRevenue, ins.Category)
}

func TestInsightService_CashflowOnlyDraftsOmitted(t *testing.T) {
	f := newInsightFixture(t)
	f.invoice("c1", invoice.StatusDraft, 1000, testNow)

	insights, err := f.service(nil).Generate(f.ctx, insightUser)
	require.NoError(t, err)
	assert.Nil(t, findInsight(insights, insight.SlotCashflow))
}

func TestInsightService_ProjectEfficiency(t *testing.T) {
	f := newInsightFixture(t)
	tomorrow := testNow.AddDate(0, 0, 1)
	yesterday := testNow.AddDate(0, 0, -1)
	today := testNow

	f.project("A", project.StatusCompleted, &tomorrow)
	f.project("B", project.StatusCompleted, &yesterday)
	f.project("C", project.StatusCompleted, &today)
	f.project("D", project.StatusActive, nil)
	f.project("E", project.StatusOnHold, nil)

	insights, err := f.service(nil).Generate(f.ctx, insightUser)
	require.NoError(t, err)

	ins := findInsight(insights, insight.SlotProjectEfficiency)
	require.NotNil(t, ins)
	assert.Equal(t, "75%", ins.Value)
	// two of three completed projects have not passed their end date
	assert.Contains(t, ins.Description, "67%")
	assert.Equal(t, insight.TrendStable, ins.Trend)
	assert.Equal(t, insight.PriorityMedium, ins.Priority)
}

func TestInsightService_ProjectEfficiencyKeepsEndDateWestOfUTC(t *testing.T) {
	f := newInsightFixture(t)
	today := testNow
	f.project("C", project.StatusCompleted, &today)
	f.project("D", project.StatusActive, nil)

	svc := NewInsightService(f.timeEntries, f.invoices, f.projects, f.clients, nil,
		InsightConfig{Now: testutil.FixedClock(testNow), Location: time.FixedZone("UTC-8", -8*60*60)},
		testutil.NewTestLogger())
	insights, err := svc.Generate(f.ctx, insightUser)
	require.NoError(t, err)

	ins := findInsight(insights, insight.SlotProjectEfficiency)
	require.NotNil(t, ins)
	assert.Equal(t, "50%", ins.Value)
	assert.Contains(t, ins.Description, "100% of completed projects")
	assert.Equal(t, insight.TrendUp, ins.Trend)
}

func TestInsightService_WorkPatternsTieGoesToEarlierDay(t *testing.T) {
	f := newInsightFixture(t)
	// testNow is a Thursday
	monday := time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC)
	wednesday := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	f.entry("", wednesday, 120, true)
	f.entry("", monday, 120, true)

	insights, err := f.service(nil).Generate(f.ctx, insightUser)
	require.NoError(t, err)

	ins := findInsight(insights, insight.SlotWorkPatterns)
	require.NotNil(t, ins)
	assert.Equal(t, "Monday", ins.Value)
	assert.Contains(t, ins.Description, "50%")
	assert.Equal(t, insight.PriorityLow, ins.Priority)
}

func TestInsightService_AllSlotsInFixedOrder(t *testing.T) {
	f := newInsightFixture(t)
	acme := f.client("Acme")
	site := f.project("Website", project.StatusActive, nil)
	end := testNow.AddDate(0, 0, 3)
	f.project("Done", project.StatusCompleted, &end)
	f.entry(site, testNow.Add(-time.Hour), 240, true)
	f.invoice(acme, invoice.StatusPaid, 800, testNow.AddDate(0, 0, -2))
	f.invoice(acme, invoice.StatusSent, 200, testNow.AddDate(0, 0, -2))

	insights, err := f.service(nil).Generate(f.ctx, insightUser)
	require.NoError(t, err)

	require.LessOrEqual(t, len(insights), insight.MaxInsights)
	assert.Equal(t, insight.Slots, slotIDs(insights))
}

type failingTimeEntries struct {
	timeentry.Repository
}

func (failingTimeEntries) List(context.Context, string, timeentry.Filter) ([]*timeentry.Entry, error) {
	return nil, stderrors.New("connection reset")
}

type panickingProjects struct {
	project.Repository
}

func (panickingProjects) List(context.Context, string, project.Filter) ([]*project.Project, error) {
	panic("boom")
}

func TestInsightService_SlotFailuresAreIsolated(t *testing.T) {
	f := newInsightFixture(t)
	f.invoice("c1", invoice.StatusPaid, 500, testNow.AddDate(0, 0, -1))
	f.invoice("c1", invoice.StatusSent, 500, testNow.AddDate(0, 0, -1))

	svc := NewInsightService(failingTimeEntries{}, f.invoices, panickingProjects{f.projects}, f.clients, nil,
		InsightConfig{Now: testutil.FixedClock(testNow)}, testutil.NewTestLogger())

	insights, err := svc.Generate(f.ctx, insightUser)
	require.NoError(t, err)
	assert.Equal(t, []insight.Slot{insight.SlotTopClient, insight.SlotCashflow}, slotIDs(insights))
}

func TestInsightService_RequiresUser(t *testing.T) {
	f := newInsightFixture(t)
	_, err := f.service(nil).Generate(f.ctx, "")
	require.Error(t, err)
}

type fakeChat struct {
	content string
	err     error
	prompt  string
}

func (c *fakeChat) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if len(req.Messages) > 0 {
		c.prompt = req.Messages[0].Content
	}
	if c.err != nil {
		return openai.ChatCompletionResponse{}, c.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: c.content}}},
	}, nil
}

func TestInsightService_SummarizeWithAI(t *testing.T) {
	f := newInsightFixture(t)
	f.entry("", testNow.Add(-time.Hour), 60, true)
	chat := &fakeChat{content: "  Great week. Keep billing.  "}

	summary, err := f.service(NewOpenAISummarizer(chat, "")).Summarize(f.ctx, insightUser)
	require.NoError(t, err)

	assert.Equal(t, SummarySourceAI, summary.Source)
	assert.Equal(t, "Great week. Keep billing.", summary.Text)
	assert.Contains(t, chat.prompt, "Billable Ratio: 100%")
	assert.NotEmpty(t, summary.Insights)
}

func TestInsightService_SummarizeFallsBackToTemplate(t *testing.T) {
	f := newInsightFixture(t)
	f.entry("", testNow.Add(-time.Hour), 60, true)
	chat := &fakeChat{err: stderrors.New("quota exceeded")}

	summary, err := f.service(NewOpenAISummarizer(chat, "")).Summarize(f.ctx, insightUser)
	require.NoError(t, err)

	assert.Equal(t, SummarySourceTemplate, summary.Source)
	assert.Contains(t, summary.Text, "Billable Ratio: 100%")
}

func TestNewSummarizer_WithoutKeyUsesTemplate(t *testing.T) {
	s := NewSummarizer("", "")
	assert.Equal(t, SummarySourceTemplate, s.Source())

	text, err := s.Summarize(context.Background(), nil)
	require.NoError(t, err)
	assert.Contains(t, text, "Not enough activity")
}

func TestInsightFormatting(t *testing.T) {
	assert.Equal(t, "7.5", formatHours(450))
	assert.Equal(t, "10", formatHours(600))
	assert.Equal(t, "0.1", formatHours(5))
	assert.Equal(t, 75, percent(0.75))
	assert.Equal(t, 67, percent(2.0/3.0))
	assert.Equal(t, "$1,234,568", formatCurrency("$", decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "€0", formatCurrency("€", decimal.Zero))
}
