package dto

import (
	"time"

	"github.com/pratik-mahalle/freelancehub/internal/domain/timeentry"
)

// TimeEntryDTO represents tracked time in API responses
type TimeEntryDTO struct {
	ID              string    `json:"id"`
	ProjectID       string    `json:"projectId,omitempty"`
	Description     string    `json:"description,omitempty"`
	StartTime       time.Time `json:"startTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Billable        bool      `json:"billable"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// CreateTimeEntryRequest represents a time entry creation request
type CreateTimeEntryRequest struct {
	ProjectID       string    `json:"projectId,omitempty"`
	Description     string    `json:"description,omitempty" validate:"max=500"`
	StartTime       time.Time `json:"startTime" validate:"required"`
	DurationMinutes int       `json:"durationMinutes" validate:"required,gt=0,lte=1440"`
	Billable        bool      `json:"billable"`
}

// UpdateTimeEntryRequest represents a partial time entry update
type UpdateTimeEntryRequest struct {
	ProjectID       *string    `json:"projectId,omitempty"`
	Description     *string    `json:"description,omitempty" validate:"omitempty,max=500"`
	StartTime       *time.Time `json:"startTime,omitempty"`
	DurationMinutes *int       `json:"durationMinutes,omitempty" validate:"omitempty,gt=0,lte=1440"`
	Billable        *bool      `json:"billable,omitempty"`
}

// ToEntry builds a time entry from the request
func (r CreateTimeEntryRequest) ToEntry() *timeentry.Entry {
	return &timeentry.Entry{
		ProjectID:       r.ProjectID,
		Description:     r.Description,
		StartTime:       r.StartTime.UTC(),
		DurationMinutes: r.DurationMinutes,
		Billable:        r.Billable,
	}
}

// Apply copies the set fields onto e
func (r UpdateTimeEntryRequest) Apply(e *timeentry.Entry) {
	if r.ProjectID != nil {
		e.ProjectID = *r.ProjectID
	}
	if r.Description != nil {
		e.Description = *r.Description
	}
	if r.StartTime != nil {
		e.StartTime = r.StartTime.UTC()
	}
	if r.DurationMinutes != nil {
		e.DurationMinutes = *r.DurationMinutes
	}
	if r.Billable != nil {
		e.Billable = *r.Billable
	}
}

// FromTimeEntry converts a time entry
func FromTimeEntry(e *timeentry.Entry) TimeEntryDTO {
	return TimeEntryDTO{
		ID:              e.ID,
		ProjectID:       e.ProjectID,
		Description:     e.Description,
		StartTime:       e.StartTime,
		DurationMinutes: e.DurationMinutes,
		Billable:        e.Billable,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

// FromTimeEntries converts a list of time entries
func FromTimeEntries(in []*timeentry.Entry) []TimeEntryDTO {
	out := make([]TimeEntryDTO, len(in))
	for i, e := range in {
		out[i] = FromTimeEntry(e)
	}
	return out
}
