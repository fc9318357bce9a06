package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/freelancehub/internal/domain/client"
	"github.com/pratik-mahalle/freelancehub/internal/domain/entitlement"
	"github.com/pratik-mahalle/freelancehub/internal/domain/invoice"
	"github.com/pratik-mahalle/freelancehub/internal/domain/profile"
	"github.com/pratik-mahalle/freelancehub/internal/domain/project"
	"github.com/pratik-mahalle/freelancehub/internal/domain/timeentry"
	"github.com/pratik-mahalle/freelancehub/internal/gateway"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/errors"
	"github.com/pratik-mahalle/freelancehub/internal/repository"
	"github.com/pratik-mahalle/freelancehub/internal/testutil"
)

type crmFixture struct {
	store        *gateway.SQLStore
	entitlements entitlement.Service
	clients      client.Service
	projects     project.Service
	invoices     invoice.Service
	timeEntries  timeentry.Service
}

// newCRMFixture wires the record services over sqlite. "expired" has an
// ended trial; every other user gets a fresh one on first use.
func newCRMFixture(t *testing.T) *crmFixture {
	store := testutil.NewTestStore(t)
	log := testutil.NewTestLogger()
	profiles := repository.NewProfileRepository(store)

	ended := testNow.Add(-time.Hour)
	started := ended.Add(-profile.DefaultTrialLength)
	require.NoError(t, profiles.Create(context.Background(), &profile.Profile{
		ID:                 "expired",
		SubscriptionStatus: profile.StatusTrial,
		SubscriptionPlan:   profile.PlanFree,
		TrialStartedAt:     &started,
		TrialEndsAt:        &ended,
	}))

	ents := newTestEntitlementService(profiles, testutil.NewFakeAuthProvider(nil))
	return &crmFixture{
		store:        store,
		entitlements: ents,
		clients:      NewClientService(repository.NewClientRepository(store), ents, log),
		projects:     NewProjectService(repository.NewProjectRepository(store), ents, log),
		invoices:     NewInvoiceService(repository.NewInvoiceRepository(store), ents, log, testutil.FixedClock(testNow)),
		timeEntries:  NewTimeEntryService(repository.NewTimeEntryRepository(store), ents, log),
	}
}

func TestCRMServices_CreateBlockedWhenTrialEnded(t *testing.T) {
	f := newCRMFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		feature entitlement.Feature
		create  func() error
	}{
		{"client", entitlement.FeatureClients, func() error {
			_, err := f.clients.Create(ctx, "expired", "", &client.Client{Name: "Acme"})
			return err
		}},
		{"project", entitlement.FeatureProjects, func() error {
			_, err := f.projects.Create(ctx, "expired", "", &project.Project{Name: "Site"})
			return err
		}},
		{"invoice", entitlement.FeatureInvoices, func() error {
			_, err := f.invoices.Create(ctx, "expired", "", &invoice.Invoice{Number: "INV-1"})
			return err
		}},
		{"time entry", entitlement.FeatureTimeTracking, func() error {
			_, err := f.timeEntries.Create(ctx, "expired", "", &timeentry.Entry{StartTime: testNow, DurationMinutes: 30})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.create()
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodePlanLimit))

			appErr, ok := errors.As(err)
			require.True(t, ok)
			assert.Equal(t, map[string]string{"feature": string(tt.feature)}, appErr.Details)
		})
	}
}

func TestClientService_CRUDIsScopedToUser(t *testing.T) {
	f := newCRMFixture(t)
	ctx := context.Background()

	c, err := f.clients.Create(ctx, "u1", "u1@example.com", &client.Client{Name: "Acme", Email: "ops@acme.test"})
	require.NoError(t, err)
	require.NotEmpty(t, c.ID)
	assert.Equal(t, "u1", c.UserID)

	_, err = f.clients.Get(ctx, "u2", c.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))

	c.Company = "Acme Corp"
	updated, err := f.clients.Update(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", updated.Company)

	list, err := f.clients.List(ctx, "u1", client.Filter{})
	require.NoError(t, err)
	require.Len(t, list, 1)

	assert.True(t, errors.Is(f.clients.Delete(ctx, "u2", c.ID), errors.ErrCodeNotFound))
	require.NoError(t, f.clients.Delete(ctx, "u1", c.ID))
}

func TestProjectService_Validation(t *testing.T) {
	f := newCRMFixture(t)
	ctx := context.Background()
	start := testNow
	end := testNow.AddDate(0, 0, -1)

	tests := []struct {
		name string
		p    *project.Project
	}{
		{"unknown status", &project.Project{Name: "A", Status: "paused"}},
		{"end before start", &project.Project{Name: "A", StartDate: &start, EndDate: &end}},
		{"negative budget", &project.Project{Name: "A", Budget: decimal.NewFromInt(-1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.projects.Create(ctx, "u1", "", tt.p)
			assert.True(t, errors.Is(err, errors.ErrCodeBadRequest))
		})
	}

	p, err := f.projects.Create(ctx, "u1", "", &project.Project{Name: "Site", Budget: decimal.NewFromInt(2500)})
	require.NoError(t, err)
	assert.Equal(t, project.StatusActive, p.Status)
	assert.True(t, decimal.NewFromInt(2500).Equal(p.Budget))
}

func TestInvoiceService_StatusTransitions(t *testing.T) {
	f := newCRMFixture(t)
	ctx := context.Background()

	inv, err := f.invoices.Create(ctx, "u1", "", &invoice.Invoice{Number: "INV-7", Total: decimal.NewFromInt(900)})
	require.NoError(t, err)
	assert.Equal(t, invoice.StatusDraft, inv.Status)

	sent, err := f.invoices.MarkSent(ctx, "u1", inv.ID)
	require.NoError(t, err)
	assert.Equal(t, invoice.StatusSent, sent.Status)

	_, err = f.invoices.MarkSent(ctx, "u1", inv.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeConflict))

	paid, err := f.invoices.MarkPaid(ctx, "u1", inv.ID)
	require.NoError(t, err)
	assert.Equal(t, invoice.StatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)
	assert.Equal(t, testNow, *paid.PaidAt)

	_, err = f.invoices.MarkPaid(ctx, "u1", inv.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeConflict))
}

func TestInvoiceService_UpdateFollowsTransitions(t *testing.T) {
	f := newCRMFixture(t)
	ctx := context.Background()

	inv, err := f.invoices.Create(ctx, "u1", "", &invoice.Invoice{Number: "INV-8", Total: decimal.NewFromInt(400)})
	require.NoError(t, err)

	edit := func(status invoice.Status) (*invoice.Invoice, error) {
		cur, err := f.invoices.Get(ctx, "u1", inv.ID)
		require.NoError(t, err)
		cur.Status = status
		cur.Notes = "edited " + string(status)
		return f.invoices.Update(ctx, cur)
	}

	_, err = edit(invoice.StatusOverdue)
	assert.True(t, errors.Is(err, errors.ErrCodeConflict), "overdue is set by the sweep only")

	paid, err := edit(invoice.StatusPaid)
	require.NoError(t, err)
	assert.Equal(t, invoice.StatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)
	assert.Equal(t, testNow, *paid.PaidAt)

	tests := []invoice.Status{invoice.StatusDraft, invoice.StatusSent, invoice.StatusCancelled}
	for _, to := range tests {
		t.Run("paid to "+string(to), func(t *testing.T) {
			_, err := edit(to)
			assert.True(t, errors.Is(err, errors.ErrCodeConflict))
		})
	}

	// unchanged status still allows edits to other fields
	same, err := edit(invoice.StatusPaid)
	require.NoError(t, err)
	assert.Equal(t, "edited paid", same.Notes)
	require.NotNil(t, same.PaidAt)

	got, err := f.invoices.Get(ctx, "u1", inv.ID)
	require.NoError(t, err)
	assert.Equal(t, invoice.StatusPaid, got.Status)
}

func TestInvoiceService_SweepOverdue(t *testing.T) {
	f := newCRMFixture(t)
	ctx := context.Background()
	pastDue := testNow.AddDate(0, 0, -3)
	dueToday := testNow
	future := testNow.AddDate(0, 0, 10)

	create := func(number string, status invoice.Status, due *time.Time) string {
		inv, err := f.invoices.Create(ctx, "u1", "", &invoice.Invoice{Number: number, Status: status, DueDate: due})
		require.NoError(t, err)
		return inv.ID
	}
	late := create("INV-1", invoice.StatusSent, &pastDue)
	create("INV-2", invoice.StatusSent, &dueToday)
	create("INV-3", invoice.StatusSent, &future)
	create("INV-4", invoice.StatusDraft, &pastDue)

	n, err := f.invoices.SweepOverdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := f.invoices.Get(ctx, "u1", late)
	require.NoError(t, err)
	assert.Equal(t, invoice.StatusOverdue, got.Status)

	n, err = f.invoices.SweepOverdue(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTimeEntryService_Validation(t *testing.T) {
	f := newCRMFixture(t)
	ctx := context.Background()

	_, err := f.timeEntries.Create(ctx, "u1", "", &timeentry.Entry{DurationMinutes: 30})
	assert.True(t, errors.Is(err, errors.ErrCodeBadRequest))

	_, err = f.timeEntries.Create(ctx, "u1", "", &timeentry.Entry{StartTime: testNow})
	assert.True(t, errors.Is(err, errors.ErrCodeBadRequest))

	e, err := f.timeEntries.Create(ctx, "u1", "", &timeentry.Entry{StartTime: testNow, DurationMinutes: 45, Billable: true})
	require.NoError(t, err)
	assert.True(t, e.Billable)
	assert.Equal(t, testNow, e.StartTime)
}
