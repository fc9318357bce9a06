package repository

import (
	"context"
	"time"

	"github.com/pratik-mahalle/freelancehub/internal/domain/timeentry"
	"github.com/pratik-mahalle/freelancehub/internal/gateway"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/errors"
)

// TimeEntryRepository implements timeentry.Repository
type TimeEntryRepository struct {
	store gateway.DataStore
}

// NewTimeEntryRepository creates a new time entry repository
func NewTimeEntryRepository(store gateway.DataStore) timeentry.Repository {
	return &TimeEntryRepository{store: store}
}

// Create creates a new time entry
func (r *TimeEntryRepository) Create(ctx context.Context, e *timeentry.Entry) error {
	now := nowUTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	values := timeEntryValues(e)
	values["user_id"] = e.UserID
	values["created_at"] = now
	if e.ID != "" {
		values["id"] = e.ID
	}

	row, err := r.store.Insert(ctx, tableTimeEntries, values)
	if err != nil {
		return err
	}
	*e = *timeEntryFromRow(row)
	return nil
}

// GetByID retrieves a time entry by ID
func (r *TimeEntryRepository) GetByID(ctx context.Context, userID, id string) (*timeentry.Entry, error) {
	row, err := gateway.First(ctx, r.store, gateway.From(tableTimeEntries).Eq("user_id", userID).Eq("id", id))
	if err != nil {
		return nil, lookupError(err, "Time entry")
	}
	return timeEntryFromRow(row), nil
}

// List retrieves a user's time entries, most recent first
func (r *TimeEntryRepository) List(ctx context.Context, userID string, filter timeentry.Filter) ([]*timeentry.Entry, error) {
	q := gateway.From(tableTimeEntries).Eq("user_id", userID)
	if filter.ProjectID != "" {
		q = q.Eq("project_id", filter.ProjectID)
	}
	if filter.Since != nil {
		q = q.Gte("start_time", *filter.Since)
	}

	rows, err := r.store.Select(ctx, q.OrderBy("start_time", true).Limit(orDefault(filter.Limit, 5000)))
	if err != nil {
		return nil, err
	}
	out := make([]*timeentry.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, timeEntryFromRow(row))
	}
	return out, nil
}

// Update updates a time entry
func (r *TimeEntryRepository) Update(ctx context.Context, e *timeentry.Entry) error {
	e.UpdatedAt = nowUTC()
	rows, err := r.store.Update(ctx, tableTimeEntries, timeEntryValues(e),
		gateway.Eq("id", e.ID), gateway.Eq("user_id", e.UserID))
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return errors.NotFound("Time entry")
	}
	*e = *timeEntryFromRow(rows[0])
	return nil
}

// Delete deletes a time entry
func (r *TimeEntryRepository) Delete(ctx context.Context, userID, id string) error {
	n, err := r.store.Delete(ctx, tableTimeEntries, gateway.Eq("id", id), gateway.Eq("user_id", userID))
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.NotFound("Time entry")
	}
	return nil
}

func timeEntryValues(e *timeentry.Entry) gateway.Row {
	return gateway.Row{
		"project_id":       nullString(e.ProjectID),
		"description":      nullString(e.Description),
		"start_time":       e.StartTime,
		"duration_minutes": e.DurationMinutes,
		"billable":         e.Billable,
		"updated_at":       e.UpdatedAt,
	}
}

func timeEntryFromRow(row gateway.Row) *timeentry.Entry {
	return &timeentry.Entry{
		ID:              row.String("id"),
		UserID:          row.String("user_id"),
		ProjectID:       row.String("project_id"),
		Description:     row.String("description"),
		StartTime:       row.TimeOr("start_time", time.Time{}),
		DurationMinutes: row.Int("duration_minutes"),
		Billable:        row.Bool("billable"),
		CreatedAt:       row.TimeOr("created_at", nowUTC()),
		UpdatedAt:       row.TimeOr("updated_at", nowUTC()),
	}
}
