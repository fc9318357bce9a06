package repository

import (
	"context"

	"github.com/pratik-mahalle/freelancehub/internal/domain/project"
	"github.com/pratik-mahalle/freelancehub/internal/gateway"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/errors"
)

// ProjectRepository implements project.Repository
type ProjectRepository struct {
	store gateway.DataStore
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(store gateway.DataStore) project.Repository {
	return &ProjectRepository{store: store}
}

// Create creates a new project
func (r *ProjectRepository) Create(ctx context.Context, p *project.Project) error {
	now := nowUTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = project.StatusActive
	}

	values := projectValues(p)
	values["user_id"] = p.UserID
	values["created_at"] = now
	if p.ID != "" {
		values["id"] = p.ID
	}

	row, err := r.store.Insert(ctx, tableProjects, values)
	if err != nil {
		return err
	}
	*p = *projectFromRow(row)
	return nil
}

// GetByID retrieves a project by ID
func (r *ProjectRepository) GetByID(ctx context.Context, userID, id string) (*project.Project, error) {
	row, err := gateway.First(ctx, r.store, gateway.From(tableProjects).Eq("user_id", userID).Eq("id", id))
	if err != nil {
		return nil, lookupError(err, "Project")
	}
	return projectFromRow(row), nil
}

// List retrieves a user's projects, newest first
func (r *ProjectRepository) List(ctx context.Context, userID string, filter project.Filter) ([]*project.Project, error) {
	q := gateway.From(tableProjects).Eq("user_id", userID)
	if len(filter.Statuses) > 0 {
		statuses := make([]any, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		q = q.In("status", statuses...)
	}
	rows, err := r.store.Select(ctx, q.OrderBy("created_at", true).Limit(orDefault(filter.Limit, 1000)))
	if err != nil {
		return nil, err
	}
	out := make([]*project.Project, 0, len(rows))
	for _, row := range rows {
		out = append(out, projectFromRow(row))
	}
	return out, nil
}

// Update updates a project
func (r *ProjectRepository) Update(ctx context.Context, p *project.Project) error {
	p.UpdatedAt = nowUTC()
	rows, err := r.store.Update(ctx, tableProjects, projectValues(p),
		gateway.Eq("id", p.ID), gateway.Eq("user_id", p.UserID))
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return errors.NotFound("Project")
	}
	*p = *projectFromRow(rows[0])
	return nil
}

// Delete deletes a project
func (r *ProjectRepository) Delete(ctx context.Context, userID, id string) error {
	n, err := r.store.Delete(ctx, tableProjects, gateway.Eq("id", id), gateway.Eq("user_id", userID))
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.NotFound("Project")
	}
	return nil
}

func projectValues(p *project.Project) gateway.Row {
	return gateway.Row{
		"client_id":   nullString(p.ClientID),
		"name":        p.Name,
		"description": nullString(p.Description),
		"status":      string(p.Status),
		"start_date":  nullDate(p.StartDate),
		"end_date":    nullDate(p.EndDate),
		"budget":      p.Budget,
		"updated_at":  p.UpdatedAt,
	}
}

func projectFromRow(row gateway.Row) *project.Project {
	return &project.Project{
		ID:          row.String("id"),
		UserID:      row.String("user_id"),
		ClientID:    row.String("client_id"),
		Name:        row.String("name"),
		Description: row.String("description"),
		Status:      project.Status(row.String("status")),
		StartDate:   row.Time("start_date"),
		EndDate:     row.Time("end_date"),
		Budget:      row.Decimal("budget"),
		CreatedAt:   row.TimeOr("created_at", nowUTC()),
		UpdatedAt:   row.TimeOr("updated_at", nowUTC()),
	}
}
