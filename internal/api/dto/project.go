package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pratik-mahalle/freelancehub/internal/domain/project"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"clientId,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	StartDate   string    `json:"startDate,omitempty"`
	EndDate     string    `json:"endDate,omitempty"`
	Budget      string    `json:"budget"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateProjectRequest represents a project creation request
type CreateProjectRequest struct {
	ClientID    string `json:"clientId,omitempty"`
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty" validate:"omitempty,oneof=active completed on_hold cancelled"`
	StartDate   string `json:"startDate,omitempty" validate:"isodate"`
	EndDate     string `json:"endDate,omitempty" validate:"isodate"`
	Budget      string `json:"budget,omitempty" validate:"money"`
}

// UpdateProjectRequest represents a partial project update
type UpdateProjectRequest struct {
	ClientID    *string `json:"clientId,omitempty"`
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=active completed on_hold cancelled"`
	StartDate   *string `json:"startDate,omitempty" validate:"omitempty,isodate"`
	EndDate     *string `json:"endDate,omitempty" validate:"omitempty,isodate"`
	Budget      *string `json:"budget,omitempty" validate:"omitempty,money"`
}

// ToProject builds a project from a validated request
func (r CreateProjectRequest) ToProject() *project.Project {
	return &project.Project{
		ClientID:    r.ClientID,
		Name:        r.Name,
		Description: r.Description,
		Status:      project.Status(r.Status),
		StartDate:   parseDate(r.StartDate),
		EndDate:     parseDate(r.EndDate),
		Budget:      parseMoney(r.Budget),
	}
}

// Apply copies the set fields onto p
func (r UpdateProjectRequest) Apply(p *project.Project) {
	if r.ClientID != nil {
		p.ClientID = *r.ClientID
	}
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Status != nil {
		p.Status = project.Status(*r.Status)
	}
	if r.StartDate != nil {
		p.StartDate = parseDate(*r.StartDate)
	}
	if r.EndDate != nil {
		p.EndDate = parseDate(*r.EndDate)
	}
	if r.Budget != nil {
		p.Budget = parseMoney(*r.Budget)
	}
}

// FromProject converts a project
func FromProject(p *project.Project) ProjectDTO {
	return ProjectDTO{
		ID:          p.ID,
		ClientID:    p.ClientID,
		Name:        p.Name,
		Description: p.Description,
		Status:      string(p.Status),
		StartDate:   formatDate(p.StartDate),
		EndDate:     formatDate(p.EndDate),
		Budget:      p.Budget.StringFixed(2),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// FromProjects converts a list of projects
func FromProjects(in []*project.Project) []ProjectDTO {
	out := make([]ProjectDTO, len(in))
	for i, p := range in {
		out[i] = FromProject(p)
	}
	return out
}

// parseDate reads a YYYY-MM-DD value already checked by the isodate tag
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil
	}
	return &t
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.DateOnly)
}

// parseMoney reads an amount already checked by the money tag
func parseMoney(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
